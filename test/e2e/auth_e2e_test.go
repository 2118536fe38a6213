package e2e_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper to create a user and get access token
func createUserAndLogin(t *testing.T, app *TestApp, email, role string) string {
	t.Helper()

	registerReq := map[string]string{
		"email":        email,
		"password":     "password123",
		"display_name": "Test User",
	}
	if role != "" {
		registerReq["role"] = role
	}
	resp, err := app.post("/auth/register", registerReq, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	return login(t, app, email)
}

func login(t *testing.T, app *TestApp, email string) string {
	t.Helper()

	loginReq := map[string]string{
		"email":    email,
		"password": "password123",
	}
	resp, err := app.post("/auth/login", loginReq, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var loginResp struct {
		Tokens struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
		} `json:"tokens"`
	}
	parseResponse(t, resp, &loginResp)
	return loginResp.Tokens.AccessToken
}

func TestE2E_Auth_Flow(t *testing.T) {
	app := setupTestApp(t)
	defer app.cleanup(t)

	t.Run("register", func(t *testing.T) {
		resp, err := app.post("/auth/register", map[string]string{
			"email":        "flow@example.com",
			"password":     "password123",
			"display_name": "Flow",
			"role":         "photographer",
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var profile map[string]any
		parseResponse(t, resp, &profile)
		assert.Equal(t, "flow@example.com", profile["email"])
		assert.Equal(t, "photographer", profile["role"])
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		resp, err := app.post("/auth/register", map[string]string{
			"email":        "flow@example.com",
			"password":     "password123",
			"display_name": "Flow Again",
		}, nil)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("moderator role is rejected at registration", func(t *testing.T) {
		resp, err := app.post("/auth/register", map[string]string{
			"email":        "mod@example.com",
			"password":     "password123",
			"display_name": "Mod",
			"role":         "moderator",
		}, nil)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	var refreshToken string

	t.Run("login", func(t *testing.T) {
		resp, err := app.post("/auth/login", map[string]string{
			"email":    "flow@example.com",
			"password": "password123",
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var loginResp struct {
			Tokens struct {
				AccessToken  string `json:"access_token"`
				RefreshToken string `json:"refresh_token"`
			} `json:"tokens"`
			Profile struct {
				Email string `json:"email"`
			} `json:"profile"`
		}
		parseResponse(t, resp, &loginResp)
		assert.NotEmpty(t, loginResp.Tokens.AccessToken)
		assert.NotEmpty(t, loginResp.Tokens.RefreshToken)
		assert.Equal(t, "flow@example.com", loginResp.Profile.Email)
		refreshToken = loginResp.Tokens.RefreshToken
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		resp, err := app.post("/auth/login", map[string]string{
			"email":    "flow@example.com",
			"password": "not-the-password",
		}, nil)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("refresh rotates the token", func(t *testing.T) {
		resp, err := app.post("/auth/refresh", map[string]string{
			"refresh_token": refreshToken,
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var tokens struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
		}
		parseResponse(t, resp, &tokens)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEqual(t, refreshToken, tokens.RefreshToken)

		// The old token was rotated out.
		resp, err = app.post("/auth/refresh", map[string]string{
			"refresh_token": refreshToken,
		}, nil)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		refreshToken = tokens.RefreshToken
	})

	t.Run("logout revokes refresh tokens", func(t *testing.T) {
		token := login(t, app, "flow@example.com")

		resp, err := app.post("/auth/logout", nil, authHeader(token))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp, err = app.post("/auth/refresh", map[string]string{
			"refresh_token": refreshToken,
		}, nil)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestE2E_Auth_ProtectedRoutes(t *testing.T) {
	app := setupTestApp(t)
	defer app.cleanup(t)

	for i, path := range []string{"/auth/logout"} {
		resp, err := app.post(path, nil, nil)
		require.NoError(t, err, fmt.Sprintf("case %d", i))
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}
