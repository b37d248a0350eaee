package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jabbapizza/web/internal/core/domain"
	"github.com/jabbapizza/web/internal/core/ports"
)

// SessionKey is the echo context key holding the *domain.Session of an
// authenticated request.
const SessionKey = "session"

// RequireSession checks the backend session for every request and lets it
// through only when the check reports Authenticated. Everything else is sent
// to the login view.
func RequireSession(sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			decision := sessions.Check(ctx, c.Request().Header.Get(echo.HeaderCookie))

			// client went away while we waited on the backend
			if ctx.Err() != nil {
				return nil
			}

			if !decision.Authenticated() {
				return c.Redirect(http.StatusFound, domain.PathLogin)
			}

			c.Set(SessionKey, decision.Session)
			return next(c)
		}
	}
}
