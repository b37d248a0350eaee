package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"

	"github.com/jabbapizza/web/internal/core/domain"
)

func TestAuthService_Login_Success(t *testing.T) {
	gw := &stubGateway{
		loginFn: func(_ context.Context, cookie string, creds domain.Credentials) (*domain.AuthResult, error) {
			if cookie != "sid=1" {
				t.Fatalf("cookie not forwarded: %q", cookie)
			}
			if creds.Username != "bob" || creds.Password != "right" {
				t.Fatalf("unexpected creds: %+v", creds)
			}
			return &domain.AuthResult{StatusCode: http.StatusOK, SetCookies: []string{"sid=2; Path=/"}}, nil
		},
	}
	svc := NewAuthService(gw, zerolog.Nop())

	res, err := svc.Login(context.Background(), "sid=1", domain.Credentials{Username: "bob", Password: "right"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if res == nil || len(res.SetCookies) != 1 {
		t.Fatalf("expected relayed cookie, got %+v", res)
	}
}

func TestAuthService_Login_Rejected(t *testing.T) {
	backendErr := &domain.AuthError{Op: "login", Kind: domain.KindStatus, StatusCode: http.StatusUnauthorized}
	gw := &stubGateway{
		loginFn: func(context.Context, string, domain.Credentials) (*domain.AuthResult, error) {
			return nil, backendErr
		},
	}
	svc := NewAuthService(gw, zerolog.Nop())

	_, err := svc.Login(context.Background(), "", domain.Credentials{Username: "bob", Password: "wrong"})
	if !errors.Is(err, backendErr) {
		t.Fatalf("expected backend error, got %v", err)
	}
	if domain.KindOf(err) != domain.KindStatus {
		t.Fatalf("expected status kind, got %s", domain.KindOf(err))
	}
}

func TestAuthService_Login_Validation(t *testing.T) {
	gw := &stubGateway{
		loginFn: func(context.Context, string, domain.Credentials) (*domain.AuthResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	svc := NewAuthService(gw, zerolog.Nop())

	if _, err := svc.Login(context.Background(), "", domain.Credentials{Username: "bob"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "", domain.Credentials{Password: "x"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	want := domain.RegistrationRequest{
		Username:  "bib",
		Password:  "fortuna",
		Email:     "bib@palace.io",
		FirstName: "Bib",
		LastName:  "Fortuna",
	}
	gw := &stubGateway{
		registerFn: func(_ context.Context, _ string, req domain.RegistrationRequest) (*domain.AuthResult, error) {
			if req != want {
				t.Fatalf("unexpected request: %+v", req)
			}
			return &domain.AuthResult{StatusCode: http.StatusCreated}, nil
		},
	}
	svc := NewAuthService(gw, zerolog.Nop())

	res, err := svc.Register(context.Background(), "", want)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	gw := &stubGateway{
		registerFn: func(context.Context, string, domain.RegistrationRequest) (*domain.AuthResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	svc := NewAuthService(gw, zerolog.Nop())

	_, err := svc.Register(context.Background(), "", domain.RegistrationRequest{Username: "bib", Password: "x"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuthService_Register_Conflict(t *testing.T) {
	gw := &stubGateway{
		registerFn: func(context.Context, string, domain.RegistrationRequest) (*domain.AuthResult, error) {
			return nil, &domain.AuthError{Op: "register", Kind: domain.KindStatus, StatusCode: http.StatusConflict}
		},
	}
	svc := NewAuthService(gw, zerolog.Nop())

	_, err := svc.Register(context.Background(), "", domain.RegistrationRequest{
		Username: "u", Password: "p", Email: "e@x.io", FirstName: "f", LastName: "l",
	})
	if domain.StatusOf(err) != http.StatusConflict {
		t.Fatalf("expected 409, got %v", err)
	}
}
