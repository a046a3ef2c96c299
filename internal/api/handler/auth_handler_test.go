package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/vitrine/storefront/internal/api/middleware"
	"github.com/vitrine/storefront/internal/core/domain"
	"github.com/vitrine/storefront/internal/core/ports"
)

var testCookie = CookieConfig{Name: "sessionid", TTL: time.Hour}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		registerFn: func(_ context.Context, in ports.RegisterInput) (*domain.Account, error) {
			if in.Username != "alice" || in.Email != "a@x.com" || in.Password != "Passw0rd!" || in.PasswordConfirm != "Passw0rd!" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Account{ID: 1, Username: in.Username, Email: in.Email}, nil
		},
	}
	h := NewAuthHandler(stub, newMemSessions(), testCookie, zerolog.Nop())

	body := `{"username":" alice ","email":"a@x.com","password":"Passw0rd!","password_confirm":"Passw0rd!"}`
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/register/", body), rec)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp registerResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.User.Username != "alice" || resp.User.IsStaff {
		t.Fatalf("unexpected user payload: %+v", resp.User)
	}
}

func TestAuthHandler_Register_StructuralValidation(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.Account, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, newMemSessions(), testCookie, zerolog.Nop())

	body := `{"username":"bad name!","email":"not-an-email","password":"x"}`
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/register/", body), httptest.NewRecorder())

	err := h.Register(c)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, field := range []string{"username", "email", "password_confirm"} {
		if len(verr.Fields[field]) == 0 {
			t.Fatalf("expected error on %s, got %v", field, verr.Fields)
		}
	}
}

func TestAuthHandler_Register_ServiceErrorPropagates(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.Account, error) {
			return nil, domain.NewValidationError("email", "A user with this email already exists.")
		},
	}
	h := NewAuthHandler(stub, newMemSessions(), testCookie, zerolog.Nop())

	body := `{"username":"alice","email":"a@x.com","password":"Passw0rd!","password_confirm":"Passw0rd!"}`
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/register/", body), httptest.NewRecorder())

	var verr *domain.ValidationError
	if err := h.Register(c); !errors.As(err, &verr) || len(verr.Fields["email"]) != 1 {
		t.Fatalf("expected email validation error, got %v", err)
	}
}

func TestAuthHandler_Register_MalformedBody(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(&stubAuthService{}, newMemSessions(), testCookie, zerolog.Nop())

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/register/", `{"username":`), rec)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_StartsSession(t *testing.T) {
	e := newEcho()
	sessions := newMemSessions()
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (*ports.LoginResult, error) {
			if email != "root@x.com" || password != "Passw0rd!" {
				t.Fatalf("unexpected credentials %q %q", email, password)
			}
			return &ports.LoginResult{
				Account:     &domain.Account{ID: 9, Username: "root", Email: email, IsStaff: true},
				Area:        domain.AreaAdmin,
				RedirectURL: "/admin/",
			}, nil
		},
	}
	h := NewAuthHandler(stub, sessions, testCookie, zerolog.Nop())

	req := jsonRequest(http.MethodPost, "/api/auth/login/", `{"email":"root@x.com","password":"Passw0rd!"}`)
	req.AddCookie(&http.Cookie{Name: "sessionid", Value: "stale"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.RedirectURL != "/admin/" || !resp.User.IsStaff {
		t.Fatalf("unexpected response: %+v", resp)
	}

	if len(sessions.deleted) != 1 || sessions.deleted[0] != "stale" {
		t.Fatalf("expected stale session to be discarded, got %v", sessions.deleted)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "sessionid" || !cookies[0].HttpOnly {
		t.Fatalf("unexpected cookies: %+v", cookies)
	}
	if _, ok := sessions.sessions[cookies[0].Value]; !ok {
		t.Fatalf("cookie does not reference a stored session")
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newEcho()
	sessions := newMemSessions()
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (*ports.LoginResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub, sessions, testCookie, zerolog.Nop())

	c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/login/", `{"email":"a@x.com","password":"nope"}`), httptest.NewRecorder())

	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(sessions.sessions) != 0 {
		t.Fatalf("no session must be created on failure")
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e := newEcho()
	sessions := newMemSessions()
	sess, _ := sessions.Create(context.Background(), 3)
	h := NewAuthHandler(&stubAuthService{}, sessions, testCookie, zerolog.Nop())

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/auth/logout/", nil), rec)
	c.Set(middleware.AccountKey, &domain.Account{ID: 3})
	c.Set(middleware.SessionIDKey, sess.ID)

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if _, ok := sessions.sessions[sess.ID]; ok {
		t.Fatalf("expected session to be deleted")
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected cookie to be cleared, got %+v", cookies)
	}
}

func TestAuthHandler_MeRequiresAccount(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(&stubAuthService{}, newMemSessions(), testCookie, zerolog.Nop())

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/auth/me/", nil), httptest.NewRecorder())
	if err := h.Me(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}

	rec := httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/api/auth/me/", nil), rec)
	c.Set(middleware.AccountKey, &domain.Account{ID: 4, Username: "bob", Email: "b@x.com"})
	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var got domain.PublicAccount
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil || got.Username != "bob" {
		t.Fatalf("unexpected body %s (%v)", rec.Body.String(), err)
	}
}
