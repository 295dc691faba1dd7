package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/nutrigoal/internal/db"
	"gorm.io/gorm"
)

const (
	testSecretKey = "nutrigoal-test-secret-key-0123456789"
	testPassword  = "StrongPass1"
)

type testApp struct {
	app      *fiber.App
	database *gorm.DB
	handler  *Handler
}

func newTestApp(t *testing.T) testApp {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "nutrigoal-api-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	handler, err := NewHandler(database, Options{SecretKey: testSecretKey, Location: time.UTC})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	app.Use(handler.metrics.Middleware)
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return testApp{app: app, database: database, handler: handler}
}

type testResponse struct {
	status  int
	body    []byte
	cookies []*http.Cookie
}

func (response testResponse) decode(t *testing.T, target any) {
	t.Helper()
	if err := json.Unmarshal(response.body, target); err != nil {
		t.Fatalf("decode response %s: %v", string(response.body), err)
	}
}

func (response testResponse) errorMessage(t *testing.T) string {
	t.Helper()
	payload := map[string]string{}
	response.decode(t, &payload)
	return payload["error"]
}

func (env testApp) do(t *testing.T, method string, path string, token string, payload any) testResponse {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("%s %s read body failed: %v", method, path, err)
	}
	return testResponse{status: response.StatusCode, body: raw, cookies: response.Cookies()}
}

func (env testApp) expect(t *testing.T, method string, path string, token string, payload any, status int) testResponse {
	t.Helper()

	response := env.do(t, method, path, token, payload)
	if response.status != status {
		t.Fatalf("%s %s expected status %d, got %d: %s", method, path, status, response.status, string(response.body))
	}
	return response
}

type sessionPayload struct {
	Token string   `json:"token"`
	User  userView `json:"user"`
}

func (env testApp) register(t *testing.T, email string) sessionPayload {
	t.Helper()

	response := env.expect(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":    email,
		"password": testPassword,
	}, http.StatusCreated)

	session := sessionPayload{}
	response.decode(t, &session)
	if session.Token == "" {
		t.Fatal("expected token in register response")
	}
	return session
}

type namedRecord struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Abbreviation *string `json:"abbreviation"`
}

func (env testApp) gramUnitID(t *testing.T, token string) uint {
	t.Helper()

	units := make([]namedRecord, 0)
	env.expect(t, http.MethodGet, "/api/units", token, nil, http.StatusOK).decode(t, &units)
	for _, unit := range units {
		if unit.Abbreviation != nil && *unit.Abbreviation == "g" {
			return unit.ID
		}
	}
	t.Fatal("gram unit not seeded")
	return 0
}

func (env testApp) nutrientID(t *testing.T, token string, name string) uint {
	t.Helper()

	nutrients := make([]namedRecord, 0)
	env.expect(t, http.MethodGet, "/api/nutrients", token, nil, http.StatusOK).decode(t, &nutrients)
	for _, nutrient := range nutrients {
		if nutrient.Name == name {
			return nutrient.ID
		}
	}
	t.Fatalf("nutrient %s not found", name)
	return 0
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}
