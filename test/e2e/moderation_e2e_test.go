package e2e_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestE2E_Moderation(t *testing.T) {
	app := setupTestApp(t)
	defer app.cleanup(t)

	ownerToken := createUserAndLogin(t, app, "uploader@example.com", "photographer")

	resp, err := app.post("/auth/register", map[string]string{
		"email":        "queue-mod@example.com",
		"password":     "password123",
		"display_name": "Queue Mod",
	}, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	app.promoteToModerator(t, "queue-mod@example.com")
	modToken := login(t, app, "queue-mod@example.com")

	firstID := uploadPhoto(t, app, ownerToken, map[string]string{"title": "First"})
	secondID := uploadPhoto(t, app, ownerToken, map[string]string{"title": "Second"})

	t.Run("regular users cannot reach the queue", func(t *testing.T) {
		resp, err := app.get("/moderation/photos", authHeader(ownerToken))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		resp, err = app.get("/moderation/photos", nil)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("queue lists pending photos", func(t *testing.T) {
		resp, err := app.get("/moderation/photos", authHeader(modToken))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var list struct {
			Data []map[string]any `json:"data"`
			Meta struct {
				Total int `json:"total"`
			} `json:"meta"`
		}
		parseResponse(t, resp, &list)
		assert.Len(t, list.Data, 2)
		assert.Equal(t, 2, list.Meta.Total)
		for _, item := range list.Data {
			assert.Equal(t, "pending", item["status"])
		}
	})

	t.Run("approve clears the photo from the queue", func(t *testing.T) {
		resp, err := app.post("/moderation/photos/"+firstID+"/approve", nil, authHeader(modToken))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp, err = app.get("/moderation/photos", authHeader(modToken))
		require.NoError(t, err)
		var list struct {
			Data []map[string]any `json:"data"`
		}
		parseResponse(t, resp, &list)
		assert.Len(t, list.Data, 1)
	})

	t.Run("deciding twice conflicts", func(t *testing.T) {
		resp, err := app.post("/moderation/photos/"+firstID+"/approve", nil, authHeader(modToken))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)

		resp, err = app.post("/moderation/photos/"+firstID+"/reject", nil, authHeader(modToken))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("rejected photo never reaches the public listing", func(t *testing.T) {
		resp, err := app.post("/moderation/photos/"+secondID+"/reject", nil, authHeader(modToken))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp, err = app.get("/photos", nil)
		require.NoError(t, err)
		var list struct {
			Data []map[string]any `json:"data"`
		}
		parseResponse(t, resp, &list)
		require.Len(t, list.Data, 1)
		assert.Equal(t, firstID, list.Data[0]["id"])
	})
}
