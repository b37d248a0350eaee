package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/jabbapizza/web/internal/api/view"
	"github.com/jabbapizza/web/internal/core/domain"
	"github.com/jabbapizza/web/internal/core/ports"
)

const homeMessage = "Hello, in Jabba pizza"

// ViewHandler serves the landing view and the session/home JSON endpoints.
type ViewHandler struct {
	sessions ports.SessionService
	log      zerolog.Logger
}

func NewViewHandler(sessions ports.SessionService, log zerolog.Logger) *ViewHandler {
	return &ViewHandler{
		sessions: sessions,
		log:      log,
	}
}

// Landing renders the landing view for /, /orders, /restaurants and /news.
// It only runs behind RequireSession.
func (h *ViewHandler) Landing(c echo.Context) error {
	return c.Render(http.StatusOK, string(domain.ViewLanding), view.LandingPage{
		Page: page(c, "", takeFlash(c, h.log)),
	})
}

// Home returns the welcome message.
//
// @Summary      Welcome message
// @Tags         home
// @Produce      json
// @Success      200  {object}  homeResponse
// @Router       /api/home [get]
func (h *ViewHandler) Home(c echo.Context) error {
	return c.JSON(http.StatusOK, homeResponse{Message: homeMessage})
}

// Session reports the result of a session check for the calling browser.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/session [get]
func (h *ViewHandler) Session(c echo.Context) error {
	ctx := c.Request().Context()
	decision := h.sessions.Check(ctx, browserCookie(c))
	if ctx.Err() != nil {
		return nil
	}
	if !decision.Authenticated() {
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: domain.ErrUnauthenticated.Error()})
	}

	return c.JSON(http.StatusOK, sessionResponse{
		Authenticated: true,
		User:          decision.Session.DisplayName(),
		Session:       decision.Session.Payload,
	})
}
