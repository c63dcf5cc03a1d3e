package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/sustaincity/city-backend/internal/core/domain"
	"github.com/sustaincity/city-backend/internal/core/ports"
)

type stubAuthService struct {
	loginErr    error
	registerErr error
	role        string // role passed to the last Register call
}

func (s *stubAuthService) Login(_ context.Context, username, _ string) (string, *domain.User, error) {
	if s.loginErr != nil {
		return "", nil, s.loginErr
	}
	return "tok123", &domain.User{ID: 1, Username: username, Role: domain.RoleGovernmentAdmin}, nil
}

func (s *stubAuthService) Register(_ context.Context, role string, in ports.RegisterInput) (string, *domain.User, error) {
	s.role = role
	if s.registerErr != nil {
		return "", nil, s.registerErr
	}
	return "tok456", &domain.User{ID: 2, Username: in.Username, Role: role}, nil
}

func newJSONContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})
	c, rec := newJSONContext(t, http.MethodPost, "/api/auth/login", `{"username":"admin","password":"admin123"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("login handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"token":"tok123"`) {
		t.Fatalf("response missing token: %s", body)
	}
	if strings.Contains(body, "password") {
		t.Fatalf("response must never carry password material: %s", body)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{loginErr: domain.ErrInvalidCredentials})
	c, _ := newJSONContext(t, http.MethodPost, "/api/auth/login", `{"username":"admin","password":"wrong"}`)

	err := h.Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials to propagate, got %v", err)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})
	c, _ := newJSONContext(t, http.MethodPost, "/api/auth/login", `{"username":"admin"}`)

	err := h.Login(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing password, got %v", err)
	}
}

func TestAuthHandler_RegisterCityManager_FixedRole(t *testing.T) {
	stub := &stubAuthService{}
	h := NewAuthHandler(stub)
	// A role in the payload is ignored; the endpoint fixes it.
	c, rec := newJSONContext(t, http.MethodPost, "/api/auth/register/city-manager",
		`{"username":"eve","password":"pw123456","email":"eve@city.gov","name":"Eve","role":"ROLE_GOVERNMENT_ADMIN"}`)

	if err := h.RegisterCityManager(c); err != nil {
		t.Fatalf("register handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.role != domain.RoleCityManager {
		t.Fatalf("endpoint must fix the role, got %s", stub.role)
	}
}

func TestAuthHandler_RegisterServiceProviderAdmin_FixedRole(t *testing.T) {
	stub := &stubAuthService{}
	h := NewAuthHandler(stub)
	c, _ := newJSONContext(t, http.MethodPost, "/api/auth/register/service-provider-admin",
		`{"username":"eve","password":"pw123456"}`)

	if err := h.RegisterServiceProviderAdmin(c); err != nil {
		t.Fatalf("register handler error: %v", err)
	}
	if stub.role != domain.RoleServiceProviderAdmin {
		t.Fatalf("endpoint must fix the role, got %s", stub.role)
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{registerErr: domain.ErrUserExists})
	c, _ := newJSONContext(t, http.MethodPost, "/api/auth/register/city-manager",
		`{"username":"taken","password":"pw123456"}`)

	if err := h.RegisterCityManager(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists to propagate, got %v", err)
	}
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})
	c, _ := newJSONContext(t, http.MethodPost, "/api/auth/register/city-manager",
		`{"username":"eve","password":"abc"}`)

	err := h.RegisterCityManager(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for short password, got %v", err)
	}
}
