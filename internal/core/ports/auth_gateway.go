package ports

import (
	"context"

	"github.com/jabbapizza/web/internal/core/domain"
)

// AuthGateway is the external auth API. cookie is the browser's raw Cookie
// header and is forwarded unchanged.
type AuthGateway interface {
	SessionStatus(ctx context.Context, cookie string) (map[string]any, error)
	Login(ctx context.Context, cookie string, creds domain.Credentials) (*domain.AuthResult, error)
	Register(ctx context.Context, cookie string, req domain.RegistrationRequest) (*domain.AuthResult, error)
}
