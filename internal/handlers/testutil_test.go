package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"review-system-api/config"
	"review-system-api/internal/database"
	"review-system-api/internal/middleware"
	"review-system-api/internal/router"
	"review-system-api/internal/storage"
)

const testSecret = "test-secret"

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:           testSecret,
		ChanneliAuthURL:     "https://channeli.in/oauth/authorise",
		ChanneliClientID:    "test-client",
		ChanneliRedirectURL: "http://localhost:8080/login/channeli/callback",
		ChanneliState:       "test-state",
		FrontendURL:         "http://localhost:5173",
	}
}

// setupApp wires the real router against a throwaway SQLite database
// migrated with the production schema, so constraint and cascade
// behavior matches what the handlers rely on.
func setupApp(t *testing.T) *echo.Echo {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	database.DB = db
	if err := database.Migrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	store, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create file store: %v", err)
	}

	return router.New(testConfig(), store)
}

func authToken(t *testing.T, userID uint) string {
	t.Helper()

	claims := &middleware.JWTClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return tokenString
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func doMultipart(t *testing.T, e *echo.Echo, path, token string, fields map[string]string, fileName, contents string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("failed to write form field %s: %v", k, err)
		}
	}
	if fileName != "" {
		fw, err := w.CreateFormFile("file", fileName)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := fw.Write([]byte(contents)); err != nil {
			t.Fatalf("failed to write form file: %v", err)
		}
	}
	w.Close()

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
}

// createJSON posts a payload and returns the created row's id.
func createJSON(t *testing.T, e *echo.Echo, path, body, token string) uint {
	t.Helper()

	rec := doJSON(t, e, http.MethodPost, path, body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST %s = %d, want 201; body: %s", path, rec.Code, rec.Body.String())
	}
	var created struct {
		ID uint `json:"id"`
	}
	decodeJSON(t, rec, &created)
	if created.ID == 0 {
		t.Fatalf("POST %s returned no id: %s", path, rec.Body.String())
	}
	return created.ID
}
