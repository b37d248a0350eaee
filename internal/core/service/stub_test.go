package service

import (
	"context"

	"github.com/jabbapizza/web/internal/core/domain"
)

type stubGateway struct {
	sessionFn  func(ctx context.Context, cookie string) (map[string]any, error)
	loginFn    func(ctx context.Context, cookie string, creds domain.Credentials) (*domain.AuthResult, error)
	registerFn func(ctx context.Context, cookie string, req domain.RegistrationRequest) (*domain.AuthResult, error)

	sessionCalls int
}

func (g *stubGateway) SessionStatus(ctx context.Context, cookie string) (map[string]any, error) {
	g.sessionCalls++
	return g.sessionFn(ctx, cookie)
}

func (g *stubGateway) Login(ctx context.Context, cookie string, creds domain.Credentials) (*domain.AuthResult, error) {
	return g.loginFn(ctx, cookie, creds)
}

func (g *stubGateway) Register(ctx context.Context, cookie string, req domain.RegistrationRequest) (*domain.AuthResult, error) {
	return g.registerFn(ctx, cookie, req)
}
