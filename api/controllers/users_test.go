package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/soundrift/soundrift-backend/api/middleware"
	accountsvc "github.com/soundrift/soundrift-backend/internal/accounts"
	"github.com/soundrift/soundrift-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func TestRegister(t *testing.T) {
	logg := testLogger()

	t.Run("success", func(t *testing.T) {
		stub := &stubAccountService{}
		body := `{"name":"Ada Artist","email":"ada@example.com","password":"longenough"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users/register", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		Register(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.registered == nil || stub.registered.Email != "ada@example.com" {
			t.Fatalf("expected register call, got %+v", stub.registered)
		}
	})

	t.Run("invalid payload", func(t *testing.T) {
		body := `{"name":"Ada Artist","email":"not-an-email","password":"longenough"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users/register", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		Register(&stubAccountService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("nil service", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users/register", strings.NewReader("{}"))
		rec := httptest.NewRecorder()

		Register(nil, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})
}

func TestHello(t *testing.T) {
	logg := testLogger()

	t.Run("missing user", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/hello", nil)
		rec := httptest.NewRecorder()

		Hello(&stubAccountService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctx := middleware.WithUser(context.Background(), "id", "Ada Artist", "ada@example.com")
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/hello", nil).WithContext(ctx)
		rec := httptest.NewRecorder()

		Hello(&stubAccountService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var envelope struct {
			Success bool              `json:"success"`
			Data    map[string]string `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if envelope.Data["message"] != "Hello Ada Artist!" {
			t.Fatalf("unexpected greeting %q", envelope.Data["message"])
		}
	})
}

type stubAccountService struct {
	registered *accountsvc.RegisterRequest
}

func (s *stubAccountService) Register(ctx context.Context, req accountsvc.RegisterRequest) (*accountsvc.AuthResponse, error) {
	s.registered = &req
	return &accountsvc.AuthResponse{AccessToken: "token"}, nil
}

func (s *stubAccountService) Login(ctx context.Context, req accountsvc.LoginRequest) (*accountsvc.AuthResponse, error) {
	return &accountsvc.AuthResponse{AccessToken: "token"}, nil
}

func (s *stubAccountService) Hello(name string) string {
	return "Hello " + name + "!"
}
