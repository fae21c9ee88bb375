package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"iwork_backend/internal/app"
	"iwork_backend/internal/cache"
	"iwork_backend/internal/config"
	"iwork_backend/internal/logger"
	"iwork_backend/internal/models"
	"iwork_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// TestServer hosts the full router against a test database. Each test runs
// inside its own transaction: requests sent through SendRequest carry the
// transaction in the request context, DBMiddleware picks it up, and the
// rollback at the end of the test leaves the database untouched.
type TestServer struct {
	Router *gin.Engine
	DB     *gorm.DB
}

// NewTestServer connects to the database named by DATABASE_URL, migrates the
// schema and builds the router. Caching is disabled so transactional data
// never leaks between tests through Redis.
func NewTestServer(t *testing.T) *TestServer {
	gin.SetMode(gin.TestMode)

	cfg := config.Load()
	logger.Init("test")

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database (%s): %v", cfg.Database.DSN, err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.AccountSettings{},
		&models.RefreshToken{},
		&models.Company{},
		&models.Review{},
		&models.AIScannerFlag{},
		&models.FileAttachment{},
		&models.Salary{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	router := app.SetupRouter(cfg, db, cache.NewRedisCache(nil))

	return &TestServer{
		Router: router,
		DB:     db,
	}
}

func (ts *TestServer) Close() {
	sqlDB, err := ts.DB.DB()
	if err == nil {
		sqlDB.Close()
	}
}

// BeginTransaction opens the per-test transaction.
func (ts *TestServer) BeginTransaction(t *testing.T) *gorm.DB {
	tx := ts.DB.Begin()
	if tx.Error != nil {
		t.Fatalf("Failed to begin test transaction: %v", tx.Error)
	}
	return tx
}

func (ts *TestServer) RollbackTransaction(t *testing.T, tx *gorm.DB) {
	if err := tx.Rollback().Error; err != nil && err != gorm.ErrInvalidTransaction {
		t.Logf("Rollback of test transaction failed: %v", err)
	}
}

// SendRequest performs an in-process request against the router. The
// transaction rides in the request context so every handler sees the
// test's uncommitted data.
func (ts *TestServer) SendRequest(t *testing.T, tx *gorm.DB, method, path, token string, body interface{}) (*http.Response, string) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, path, reqBody)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	if tx != nil {
		req = req.WithContext(context.WithValue(req.Context(), contextkeys.DBContextKey, tx))
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	ts.Router.ServeHTTP(rec, req)

	res := rec.Result()
	resBodyBytes, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}
	res.Body.Close()

	return res, string(resBodyBytes)
}
