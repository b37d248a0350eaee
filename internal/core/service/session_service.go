package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jabbapizza/web/internal/pkg/metrics"
	"github.com/jabbapizza/web/internal/core/domain"
	"github.com/jabbapizza/web/internal/core/ports"
)

type sessionService struct {
	gateway ports.AuthGateway
	claims  *ClaimsDecoder
	log     zerolog.Logger
}

// NewSessionService returns a SessionService that asks gateway on every call.
func NewSessionService(gateway ports.AuthGateway, claims *ClaimsDecoder, log zerolog.Logger) ports.SessionService {
	if claims == nil {
		claims = NewClaimsDecoder("")
	}
	return &sessionService{gateway: gateway, claims: claims, log: log}
}

// Check runs Loading → {Authenticated, Unauthenticated} for one request.
// Nothing is cached: the next request starts from Loading again.
func (s *sessionService) Check(ctx context.Context, cookie string) domain.Decision {
	decision := domain.Decision{State: domain.StateLoading}

	payload, err := s.gateway.SessionStatus(ctx, cookie)
	var session *domain.Session
	if err == nil {
		session, err = s.session(payload)
	}
	decision = decision.Resolve(session, err)

	result := domain.StateAuthenticated.String()
	if !decision.Authenticated() {
		result = string(decision.Kind)
	}
	metrics.SessionChecksTotal.WithLabelValues(result).Inc()

	s.log.Debug().
		Err(err).
		Str("state", decision.State.String()).
		Str("kind", string(decision.Kind)).
		Msg("session checked")

	return decision
}

func (s *sessionService) session(payload map[string]any) (*domain.Session, error) {
	session := &domain.Session{Payload: payload}
	tok := session.Token()
	if tok == "" {
		return session, nil
	}

	claims, err := s.claims.Decode(tok)
	if err != nil {
		if !s.claims.Verifying() {
			// opaque token: still a session, just nothing to greet with
			s.log.Debug().Err(err).Msg("session token not readable")
			return session, nil
		}
		return nil, &domain.AuthError{Op: "session", Kind: domain.KindMalformed, Err: err}
	}
	session.Claims = claims
	return session, nil
}
