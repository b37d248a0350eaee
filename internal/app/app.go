// Package app wires the web tier together and runs its HTTP server until the
// process is told to stop.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jabbapizza/web/internal/api"
	"github.com/jabbapizza/web/internal/core/service"
	"github.com/jabbapizza/web/internal/infrastructure/backend"
	"github.com/jabbapizza/web/internal/infrastructure/config"
	"github.com/jabbapizza/web/internal/infrastructure/db/redis"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config *config.Config
	log    zerolog.Logger
	echo   *echo.Echo

	rdb *goredis.Client
}

// NewApp builds every component from cfg. Redis is dialled only when
// REDIS_ADDR is set; otherwise flashes live in signed browser cookies.
func NewApp(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	client := backend.New(backend.Config{
		BaseURL:      cfg.Backend.URL,
		SessionPath:  cfg.Backend.SessionPath,
		LoginPath:    cfg.Backend.LoginPath,
		RegisterPath: cfg.Backend.RegisterPath,
		HealthPath:   cfg.Backend.HealthPath,
		Timeout:      cfg.Backend.Timeout,
	})

	a := &App{config: cfg, log: log}

	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, fmt.Errorf("redis init error: %w", err)
		}
		a.rdb = rdb
	}

	e, err := api.NewRouter(api.Dependencies{
		Sessions:     service.NewSessionService(client, service.NewClaimsDecoder(cfg.JWTSecret), log),
		Auth:         service.NewAuthService(client, log),
		SessionStore: newSessionStore(cfg, a.rdb, log),
		Backend:      client,
		Redis:        a.rdb,
		Log:          log,
	})
	if err != nil {
		a.close()
		return nil, fmt.Errorf("router init error: %w", err)
	}
	a.echo = e

	return a, nil
}

// Handler exposes the HTTP handler, mostly for tests.
func (a *App) Handler() http.Handler {
	return a.echo
}

// Run serves until ctx is cancelled or SIGINT/SIGTERM arrives, then drains
// in-flight requests for up to shutdownTimeout.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer a.close()

	errCh := make(chan error, 1)
	go func() {
		a.log.Info().
			Str("addr", a.config.Addr()).
			Str("backend", a.config.Backend.URL).
			Bool("redis", a.rdb != nil).
			Msg("starting web tier")
		errCh <- a.echo.Start(a.config.Addr())
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newSessionStore picks where flash sessions live. Cookies are marked Secure
// in production.
func newSessionStore(cfg *config.Config, rdb *goredis.Client, log zerolog.Logger) sessions.Store {
	key := []byte(cfg.Flash.Secret)
	if len(key) == 0 {
		log.Warn().Msg("SESSION_SECRET not set, flash sessions will not survive a restart")
		key = securecookie.GenerateRandomKey(32)
	}

	if rdb != nil {
		store := redis.NewSessionStore(rdb, cfg.Flash.TTL, key)
		store.Options.Secure = cfg.Production()
		return store
	}

	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.Production(),
		SameSite: http.SameSiteLaxMode,
	}
	store.MaxAge(int(cfg.Flash.TTL.Seconds()))
	return store
}

func (a *App) close() {
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.log.Warn().Err(err).Msg("redis close")
		}
	}
}
