package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	accountsvc "github.com/soundrift/soundrift-backend/internal/accounts"
	"github.com/soundrift/soundrift-backend/pkg/config"
	"github.com/soundrift/soundrift-backend/pkg/logger"
)

func testRouter() http.Handler {
	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.JWT.Secret = "router-test-secret"
	cfg.JWT.Issuer = "soundrift"
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(cfg, logg, healthyPinger{}, nil, healthyPinger{}, stubAccounts{}, nil, nil)
}

func TestHealthEndpoints(t *testing.T) {
	router := testRouter()

	for _, path := range []string{"/health/live", "/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	router := testRouter()

	for _, route := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/albums/"},
		{http.MethodPost, "/api/v1/albums/"},
		{http.MethodGet, "/api/v1/admin/tracks/"},
		{http.MethodGet, "/api/v1/songs/"},
		{http.MethodGet, "/api/v1/users/hello"},
	} {
		req := httptest.NewRequest(route.method, route.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", route.method, route.path, rec.Code)
		}
	}
}

func TestRegisterRouteIsPublic(t *testing.T) {
	router := testRouter()

	body := `{"name":"Ada Artist","email":"ada@example.com","password":"longenough"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

type healthyPinger struct{}

func (healthyPinger) Ping(ctx context.Context) error { return nil }

type stubAccounts struct{}

func (stubAccounts) Register(ctx context.Context, req accountsvc.RegisterRequest) (*accountsvc.AuthResponse, error) {
	return &accountsvc.AuthResponse{AccessToken: "token"}, nil
}

func (stubAccounts) Login(ctx context.Context, req accountsvc.LoginRequest) (*accountsvc.AuthResponse, error) {
	return &accountsvc.AuthResponse{AccessToken: "token"}, nil
}

func (stubAccounts) Hello(name string) string { return "Hello " + name + "!" }
