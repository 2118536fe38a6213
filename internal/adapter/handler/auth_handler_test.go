package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/photospot-app/photospot-backend/internal/adapter/handler"
	"github.com/photospot-app/photospot-backend/internal/domain"
	"github.com/photospot-app/photospot-backend/internal/domain/entity"
	"github.com/photospot-app/photospot-backend/internal/mocks"
	"github.com/photospot-app/photospot-backend/internal/usecase/auth"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("registers an enthusiast", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		authSvc := mocks.NewMockAuthService(ctrl)
		h := handler.NewAuthHandler(authSvc)

		router := setupRouter()
		router.POST("/register", h.Register)

		profile := &entity.Profile{
			ID:          uuid.New(),
			Email:       "ana@example.com",
			DisplayName: "Ana",
			Role:        entity.RoleEnthusiast,
			CreatedAt:   time.Now().UTC(),
		}

		authSvc.EXPECT().Register(gomock.Any(), gomock.Any()).Return(profile, nil)

		body := `{"email":"ana@example.com","password":"correct-horse","display_name":"Ana"}`
		req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "ana@example.com", resp["email"])
		assert.Equal(t, "enthusiast", resp["role"])
	})

	t.Run("returns conflict for duplicate email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		authSvc := mocks.NewMockAuthService(ctrl)
		h := handler.NewAuthHandler(authSvc)

		router := setupRouter()
		router.POST("/register", h.Register)

		authSvc.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, domain.ErrProfileExists)

		body := `{"email":"ana@example.com","password":"correct-horse","display_name":"Ana"}`
		req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "CONFLICT")
	})

	t.Run("rejects moderator self-registration at binding", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		authSvc := mocks.NewMockAuthService(ctrl)
		h := handler.NewAuthHandler(authSvc)

		router := setupRouter()
		router.POST("/register", h.Register)

		body := `{"email":"ana@example.com","password":"correct-horse","display_name":"Ana","role":"moderator"}`
		req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("logs in with valid credentials", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		authSvc := mocks.NewMockAuthService(ctrl)
		h := handler.NewAuthHandler(authSvc)

		router := setupRouter()
		router.POST("/login", h.Login)

		pair := &auth.TokenPair{
			AccessToken:  "access",
			RefreshToken: "refresh",
			ExpiresAt:    time.Now().Add(15 * time.Minute),
		}
		profile := &entity.Profile{
			ID:          uuid.New(),
			Email:       "ana@example.com",
			DisplayName: "Ana",
			Role:        entity.RolePhotographer,
		}

		authSvc.EXPECT().Login(gomock.Any(), auth.LoginInput{
			Email:    "ana@example.com",
			Password: "correct-horse",
		}).Return(pair, profile, nil)

		body := `{"email":"ana@example.com","password":"correct-horse"}`
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		tokens := resp["tokens"].(map[string]any)
		assert.Equal(t, "access", tokens["access_token"])
	})

	t.Run("returns unauthorized for bad credentials", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		authSvc := mocks.NewMockAuthService(ctrl)
		h := handler.NewAuthHandler(authSvc)

		router := setupRouter()
		router.POST("/login", h.Login)

		authSvc.EXPECT().Login(gomock.Any(), gomock.Any()).Return(nil, nil, domain.ErrInvalidCredentials)

		body := `{"email":"ana@example.com","password":"wrong"}`
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
	})
}

func TestAuthHandler_Refresh(t *testing.T) {
	t.Run("returns unauthorized for revoked token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		authSvc := mocks.NewMockAuthService(ctrl)
		h := handler.NewAuthHandler(authSvc)

		router := setupRouter()
		router.POST("/refresh", h.Refresh)

		authSvc.EXPECT().Refresh(gomock.Any(), "stale").Return(nil, domain.ErrTokenRevoked)

		body := `{"refresh_token":"stale"}`
		req := httptest.NewRequest(http.MethodPost, "/refresh", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
