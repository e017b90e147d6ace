package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/folio-labs/portfolio-api/internal/core/domain"
	"github.com/folio-labs/portfolio-api/internal/core/ports"
)

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) error {
			if in.Username != "alice" || in.Email != "a@example.com" || in.Password != "pw1" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newContext(http.MethodPost, "/register", `{"username":"alice","email":"a@example.com","password":"pw1"}`, "")
	assertStatus(t, handler.Register(c), rec, http.StatusCreated)

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if _, ok := resp["success"]; !ok {
		t.Fatalf("expected success field, got %v", resp)
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) error {
			return domain.ErrUserExists
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newContext(http.MethodPost, "/register", `{"username":"bob","email":"b@x.com","password":"pw"}`, "")
	if err := handler.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Register_MissingField(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) error {
			t.Fatalf("should not be called")
			return nil
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newContext(http.MethodPost, "/register", `{"username":"bob","password":"pw"}`, "")
	err := handler.Register(c)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) error {
			t.Fatalf("should not be called")
			return nil
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newContext(http.MethodPost, "/register", "not-json", "")
	assertHTTPError(t, handler.Register(c), http.StatusBadRequest)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, error) {
			if username != "alice" || password != "pw1" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return "token123", nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newContext(http.MethodPost, "/login", `{"username":"alice","password":"pw1"}`, "")
	assertStatus(t, handler.Login(c), rec, http.StatusOK)

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
	if len(resp) != 1 {
		t.Fatalf("expected only the token field, got %v", resp)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, error) {
			return "", domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newContext(http.MethodPost, "/login", `{"username":"alice","password":"bad"}`, "")
	err := handler.Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("no body must be written on failure, got %s", rec.Body.String())
	}
}

func TestAuthHandler_Login_EmptyBodyReachesService(t *testing.T) {
	called := false
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, error) {
			called = true
			return "", domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newContext(http.MethodPost, "/login", `{}`, "")
	if err := handler.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if !called {
		t.Fatalf("missing fields are a credential failure, service must decide")
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, error) {
			t.Fatalf("should not be called")
			return "", nil
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newContext(http.MethodPost, "/login", "{bad", "")
	assertHTTPError(t, handler.Login(c), http.StatusBadRequest)
}

func TestAuthHandler_UpdateSettings(t *testing.T) {
	stub := &stubAuthService{
		settingsFn: func(ctx context.Context, userID string, in ports.SettingsInput) error {
			if userID != "u1" || in.Email != "new@x.com" || in.Password != "pw2" {
				t.Fatalf("unexpected args: %s %+v", userID, in)
			}
			if meta := ports.RequestMetaFrom(ctx); meta.RemoteIP == "" {
				t.Fatalf("request meta not propagated")
			}
			return nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newContext(http.MethodPut, "/settings", `{"email":"new@x.com","password":"pw2"}`, "u1")
	assertStatus(t, handler.UpdateSettings(c), rec, http.StatusOK)
}

func TestAuthHandler_UpdateSettings_RequiresBothFields(t *testing.T) {
	stub := &stubAuthService{
		settingsFn: func(ctx context.Context, userID string, in ports.SettingsInput) error {
			t.Fatalf("should not be called")
			return nil
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newContext(http.MethodPut, "/settings", `{"email":"new@x.com"}`, "u1")
	if err := handler.UpdateSettings(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAuthHandler_UpdateSettings_WithoutSubject(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{})

	c, _ := newContext(http.MethodPut, "/settings", `{"email":"new@x.com","password":"pw"}`, "")
	assertHTTPError(t, handler.UpdateSettings(c), http.StatusForbidden)
}
