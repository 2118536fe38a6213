package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/photospot-app/photospot-backend/internal/adapter/handler"
	pgRepo "github.com/photospot-app/photospot-backend/internal/adapter/repository/postgres"
	"github.com/photospot-app/photospot-backend/internal/adapter/storage"
	"github.com/photospot-app/photospot-backend/internal/infrastructure/auth"
	"github.com/photospot-app/photospot-backend/internal/infrastructure/config"
	"github.com/photospot-app/photospot-backend/internal/infrastructure/database"
	"github.com/photospot-app/photospot-backend/internal/infrastructure/middleware"
	"github.com/photospot-app/photospot-backend/internal/infrastructure/server"
	authUC "github.com/photospot-app/photospot-backend/internal/usecase/auth"
	"github.com/photospot-app/photospot-backend/internal/usecase/favorite"
	"github.com/photospot-app/photospot-backend/internal/usecase/moderation"
	"github.com/photospot-app/photospot-backend/internal/usecase/photo"
	"github.com/photospot-app/photospot-backend/internal/usecase/upload"
)

const (
	testDBUser     = "testuser"
	testDBPassword = "testpass"
	testDBName     = "testdb"
	testJWTSecret  = "test-secret-key-for-e2e-tests"
	apiBasePath    = "/api/v1"
)

type TestApp struct {
	Server     *httptest.Server
	Pool       *pgxpool.Pool
	Container  testcontainers.Container
	BaseURL    string
	httpClient *http.Client
}

func setupTestApp(t *testing.T) *TestApp {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping e2e test in short mode")
	}

	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgis/postgis:16-3.4-alpine",
		postgres.WithDatabase(testDBName),
		postgres.WithUsername(testDBUser),
		postgres.WithPassword(testDBPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dbCfg := config.DatabaseConfig{
		Host:     host,
		Port:     port.Int(),
		User:     testDBUser,
		Password: testDBPassword,
		Name:     testDBName,
		SSLMode:  "disable",
	}

	require.NoError(t, database.RunMigrations(ctx, dbCfg))

	pool, err := pgxpool.New(ctx, dbCfg.DSN())
	require.NoError(t, err)

	profileRepo := pgRepo.NewProfileRepo(pool)
	photoRepo := pgRepo.NewPhotoRepo(pool)
	favoriteRepo := pgRepo.NewFavoriteRepo(pool)
	refreshTokenRepo := pgRepo.NewRefreshTokenRepo(pool)

	jwtSvc := auth.NewJWTService(testJWTSecret, 15*time.Minute)
	passwordHasher := auth.NewPasswordHasher(4) // Lower cost for faster tests

	// Stubs keep e2e tests off S3 and Redis.
	stubStorage := &stubImageStorage{}
	stubProcessor := &stubImageProcessor{}
	stubTotals := newStubTotalCache()

	authSvc := authUC.NewService(profileRepo, refreshTokenRepo, jwtSvc, passwordHasher, 24*time.Hour)
	photoSvc := photo.NewService(photoRepo, profileRepo, favoriteRepo, stubTotals)
	uploadSvc := upload.NewService(photoRepo, stubStorage, stubProcessor)
	moderationSvc := moderation.NewService(photoRepo)
	favoriteSvc := favorite.NewService(photoRepo, favoriteRepo)

	authHandler := handler.NewAuthHandler(authSvc)
	photoHandler := handler.NewPhotoHandler(photoSvc)
	uploadHandler := handler.NewUploadHandler(uploadSvc)
	moderationHandler := handler.NewModerationHandler(moderationSvc)
	favoriteHandler := handler.NewFavoriteHandler(favoriteSvc)

	authMiddleware := middleware.NewAuthMiddleware(jwtSvc)

	logger, _ := zap.NewDevelopment()
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:       authHandler,
		PhotoHandler:      photoHandler,
		UploadHandler:     uploadHandler,
		ModerationHandler: moderationHandler,
		FavoriteHandler:   favoriteHandler,
		AuthMiddleware:    authMiddleware,
		Logger:            logger,
		Environment:       "test",
	})

	ts := httptest.NewServer(router.Engine())

	return &TestApp{
		Server:    ts,
		Pool:      pool,
		Container: pgContainer,
		BaseURL:   ts.URL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (app *TestApp) cleanup(t *testing.T) {
	t.Helper()

	app.Server.Close()
	app.Pool.Close()

	ctx := context.Background()
	if err := app.Container.Terminate(ctx); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

func (app *TestApp) request(method, path string, body any, headers map[string]string) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	fullPath := apiBasePath + path
	req, err := http.NewRequest(method, app.BaseURL+fullPath, bodyReader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return app.httpClient.Do(req)
}

func (app *TestApp) get(path string, headers map[string]string) (*http.Response, error) {
	return app.request(http.MethodGet, path, nil, headers)
}

func (app *TestApp) post(path string, body any, headers map[string]string) (*http.Response, error) {
	return app.request(http.MethodPost, path, body, headers)
}

func (app *TestApp) put(path string, headers map[string]string) (*http.Response, error) {
	return app.request(http.MethodPut, path, nil, headers)
}

func (app *TestApp) delete(path string, headers map[string]string) (*http.Response, error) {
	return app.request(http.MethodDelete, path, nil, headers)
}

// postMultipart submits an upload form with a small fake image payload.
func (app *TestApp) postMultipart(path string, fields map[string]string, headers map[string]string) (*http.Response, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, err
		}
	}
	part, err := w.CreateFormFile("file", "photo.jpg")
	if err != nil {
		return nil, err
	}
	if _, err := part.Write([]byte("fake-jpeg-bytes")); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, app.BaseURL+apiBasePath+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return app.httpClient.Do(req)
}

func parseResponse(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	if dest != nil {
		err = json.Unmarshal(body, dest)
		require.NoError(t, err, "response body: %s", string(body))
	}
}

func authHeader(token string) map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + token,
	}
}

// promoteToModerator elevates a registered profile directly in the database.
// Moderators cannot self-register, so tests promote before logging in.
func (app *TestApp) promoteToModerator(t *testing.T, email string) {
	t.Helper()
	_, err := app.Pool.Exec(context.Background(),
		`UPDATE profiles SET role = 'moderator' WHERE email = $1`, email)
	require.NoError(t, err)
}

// Stub implementations keeping e2e tests off external services.

type stubImageStorage struct{}

func (s *stubImageStorage) Upload(ctx context.Context, key string, reader io.Reader, contentType string, size int64) error {
	return nil
}

func (s *stubImageStorage) Delete(ctx context.Context, key string) error {
	return nil
}

func (s *stubImageStorage) GetURL(key string) string {
	return "https://stub-storage.example.com/" + key
}

func (s *stubImageStorage) GetSignedURL(key string, expiry time.Duration) (string, error) {
	return "https://stub-storage.example.com/" + key + "?signed=true", nil
}

type stubImageProcessor struct{}

func (s *stubImageProcessor) Process(reader io.Reader) (*storage.ProcessedImage, error) {
	data, _ := io.ReadAll(reader)
	return &storage.ProcessedImage{
		Data:          bytes.NewReader(data),
		Size:          int64(len(data)),
		Width:         800,
		Height:        600,
		Thumbnail:     bytes.NewReader(data),
		ThumbnailSize: int64(len(data)),
	}, nil
}

type stubTotalCache struct {
	mu     sync.Mutex
	totals map[string]int
}

func newStubTotalCache() *stubTotalCache {
	return &stubTotalCache{totals: make(map[string]int)}
}

func (s *stubTotalCache) GetTotal(ctx context.Context, key string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total, ok := s.totals[key]
	return total, ok
}

func (s *stubTotalCache) SetTotal(ctx context.Context, key string, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totals[key] = total
}
