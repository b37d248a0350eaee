package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/jabbapizza/web/docs"
	"github.com/jabbapizza/web/internal/api/handler"
	"github.com/jabbapizza/web/internal/api/middleware"
	"github.com/jabbapizza/web/internal/api/view"
	"github.com/jabbapizza/web/internal/core/domain"
	"github.com/jabbapizza/web/internal/core/ports"
	"github.com/jabbapizza/web/internal/infrastructure/http/handlers"
)

// Dependencies is everything the router needs. Redis is optional. A nil
// SessionStore falls back to a cookie store with a per-process key; nil
// registerer/gatherer fall back to the Prometheus defaults.
type Dependencies struct {
	Sessions     ports.SessionService
	Auth         ports.AuthService
	SessionStore sessions.Store
	Backend      handlers.Pinger
	Redis        *redis.Client
	Log          zerolog.Logger

	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) (*echo.Echo, error) {
	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, err
	}
	if deps.SessionStore == nil {
		deps.SessionStore = sessions.NewCookieStore(securecookie.GenerateRandomKey(32))
	}
	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(session.Middleware(deps.SessionStore))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "pizza_web",
		Subsystem:  "http",
		Registerer: deps.Registerer,
		Skipper: func(c echo.Context) bool {
			p := c.Request().URL.Path
			return p == "/metrics" || strings.HasPrefix(p, "/static/") || strings.HasPrefix(p, "/swagger/")
		},
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Log)
	viewHandler := handler.NewViewHandler(deps.Sessions, deps.Log)
	guard := middleware.RequireSession(deps.Sessions)

	// --- Views ---
	views := viewHandlers(authHandler, viewHandler)
	for _, r := range domain.Routes {
		h, ok := views[r.View]
		if !ok {
			continue
		}
		if r.Protected {
			e.GET(r.Path, h, guard)
		} else {
			e.GET(r.Path, h)
		}
	}
	e.POST(domain.PathLogin, authHandler.SubmitLogin)
	e.POST(domain.PathRegister, authHandler.SubmitRegister)

	// --- JSON API ---
	apiGroup := e.Group("/api")
	apiGroup.GET("/home", viewHandler.Home)
	apiGroup.GET("/session", viewHandler.Session)
	apiGroup.POST("/login", authHandler.APILogin)
	apiGroup.POST("/register", authHandler.APIRegister)

	// --- Health checks (no session required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Backend, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Ops ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/static/*", echo.WrapHandler(http.StripPrefix("/static/", http.FileServerFS(view.Static()))))

	return e, nil
}

func viewHandlers(auth *handler.AuthHandler, views *handler.ViewHandler) map[domain.View]echo.HandlerFunc {
	return map[domain.View]echo.HandlerFunc{
		domain.ViewLanding:  views.Landing,
		domain.ViewLogin:    auth.ShowLogin,
		domain.ViewRegister: auth.ShowRegister,
	}
}
