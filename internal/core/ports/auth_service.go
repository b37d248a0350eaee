package ports

import (
	"context"

	"github.com/jabbapizza/web/internal/core/domain"
)

type AuthService interface {
	Login(ctx context.Context, cookie string, creds domain.Credentials) (*domain.AuthResult, error)
	Register(ctx context.Context, cookie string, req domain.RegistrationRequest) (*domain.AuthResult, error)
}
