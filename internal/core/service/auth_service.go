package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jabbapizza/web/internal/pkg/metrics"
	"github.com/jabbapizza/web/internal/core/domain"
	"github.com/jabbapizza/web/internal/core/ports"
)

const (
	actionLogin    = "login"
	actionRegister = "register"
	outcomeSuccess = "success"
)

// AuthService submits login and registration input to the backend.
type AuthService struct {
	gateway ports.AuthGateway
	log     zerolog.Logger
}

func NewAuthService(gateway ports.AuthGateway, log zerolog.Logger) *AuthService {
	return &AuthService{gateway: gateway, log: log}
}

func (s *AuthService) Login(ctx context.Context, cookie string, creds domain.Credentials) (*domain.AuthResult, error) {
	if !creds.Complete() {
		s.record(actionLogin, domain.KindInvalidInput)
		return nil, fmt.Errorf("login: %w", domain.ErrInvalidInput)
	}

	res, err := s.gateway.Login(ctx, cookie, creds)
	if err != nil {
		kind := domain.KindOf(err)
		s.record(actionLogin, kind)
		s.log.Info().
			Err(err).
			Str("username", creds.Username).
			Str("kind", string(kind)).
			Msg("login rejected")
		return nil, err
	}

	s.record(actionLogin, domain.KindNone)
	s.log.Info().Str("username", creds.Username).Msg("login accepted")
	return res, nil
}

func (s *AuthService) Register(ctx context.Context, cookie string, req domain.RegistrationRequest) (*domain.AuthResult, error) {
	if !req.Complete() {
		s.record(actionRegister, domain.KindInvalidInput)
		return nil, fmt.Errorf("register: %w", domain.ErrInvalidInput)
	}

	res, err := s.gateway.Register(ctx, cookie, req)
	if err != nil {
		kind := domain.KindOf(err)
		s.record(actionRegister, kind)
		s.log.Info().
			Err(err).
			Str("username", req.Username).
			Str("email", req.Email).
			Str("kind", string(kind)).
			Msg("registration rejected")
		return nil, err
	}

	s.record(actionRegister, domain.KindNone)
	s.log.Info().Str("username", req.Username).Msg("account registered")
	return res, nil
}

func (s *AuthService) record(action string, kind domain.ErrorKind) {
	outcome := outcomeSuccess
	if kind != domain.KindNone {
		outcome = string(kind)
	}
	metrics.AuthSubmissionsTotal.WithLabelValues(action, outcome).Inc()
}
