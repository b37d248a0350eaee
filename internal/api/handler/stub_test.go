package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/jabbapizza/web/internal/api/view"
	"github.com/jabbapizza/web/internal/core/domain"
)

type stubAuthService struct {
	loginFn    func(ctx context.Context, cookie string, creds domain.Credentials) (*domain.AuthResult, error)
	registerFn func(ctx context.Context, cookie string, req domain.RegistrationRequest) (*domain.AuthResult, error)
}

func (s *stubAuthService) Login(ctx context.Context, cookie string, creds domain.Credentials) (*domain.AuthResult, error) {
	return s.loginFn(ctx, cookie, creds)
}

func (s *stubAuthService) Register(ctx context.Context, cookie string, req domain.RegistrationRequest) (*domain.AuthResult, error) {
	return s.registerFn(ctx, cookie, req)
}

type stubSessions struct {
	checkFn func(ctx context.Context, cookie string) domain.Decision
}

func (s *stubSessions) Check(ctx context.Context, cookie string) domain.Decision {
	return s.checkFn(ctx, cookie)
}

func newEcho(t *testing.T) *echo.Echo {
	t.Helper()
	r, err := view.NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	e := echo.New()
	e.Renderer = r
	e.Validator = NewValidator()
	return e
}

var testSessionKey = []byte("handler-test-session-key-32bytes")

// withSessions runs h behind the flash session middleware. Every call gets a
// fresh cookie store sharing one key, as separate requests to one server would.
func withSessions(h echo.HandlerFunc) echo.HandlerFunc {
	return session.Middleware(sessions.NewCookieStore(testSessionKey))(h)
}

func formRequest(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func jsonRequest(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func statusErr(op string, code int) error {
	return &domain.AuthError{Op: op, Kind: domain.KindStatus, StatusCode: code}
}
