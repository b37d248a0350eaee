package ports

import (
	"context"

	"github.com/jabbapizza/web/internal/core/domain"
)

// SessionService checks the backend once per guarded request.
type SessionService interface {
	Check(ctx context.Context, cookie string) domain.Decision
}
