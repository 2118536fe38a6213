package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/photospot-app/photospot-backend/internal/adapter/handler/dto/request"
	"github.com/photospot-app/photospot-backend/internal/adapter/handler/dto/response"
	"github.com/photospot-app/photospot-backend/internal/domain"
	"github.com/photospot-app/photospot-backend/internal/domain/entity"
	"github.com/photospot-app/photospot-backend/internal/pkg/httputil"
	"github.com/photospot-app/photospot-backend/internal/usecase/auth"
)

type AuthHandler struct {
	authSvc AuthService
}

func NewAuthHandler(authSvc AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req request.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}

	profile, err := h.authSvc.Register(c.Request.Context(), auth.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Role:        entity.Role(req.Role),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProfileExists):
			httputil.ErrorWithCode(c, http.StatusConflict, "CONFLICT", "email already registered")
		case errors.Is(err, domain.ErrForbidden):
			httputil.ErrorWithCode(c, http.StatusForbidden, "FORBIDDEN", "role not allowed")
		default:
			httputil.InternalError(c)
		}
		return
	}

	httputil.Created(c, response.ProfileFromEntity(profile))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}

	pair, profile, err := h.authSvc.Login(c.Request.Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			httputil.ErrorWithCode(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid credentials")
			return
		}
		httputil.InternalError(c)
		return
	}

	httputil.OK(c, response.LoginResponse{
		Tokens:  response.TokensFromPair(pair),
		Profile: response.ProfileFromEntity(profile),
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req request.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}

	pair, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTokenInvalid),
			errors.Is(err, domain.ErrTokenExpired),
			errors.Is(err, domain.ErrTokenRevoked):
			httputil.ErrorWithCode(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid refresh token")
		default:
			httputil.InternalError(c)
		}
		return
	}

	httputil.OK(c, response.TokensFromPair(pair))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	userID := httputil.GetUserID(c)

	if err := h.authSvc.Logout(c.Request.Context(), userID); err != nil {
		httputil.InternalError(c)
		return
	}

	httputil.NoContent(c)
}
