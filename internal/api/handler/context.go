package handler

import (
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/jabbapizza/web/internal/api/middleware"
	"github.com/jabbapizza/web/internal/api/view"
	"github.com/jabbapizza/web/internal/core/domain"
)

// flashSession names the browser session carrying flash messages.
const flashSession = "jp_flash"

// ctxSession returns the session stored by the RequireSession middleware,
// or nil on unguarded routes.
func ctxSession(c echo.Context) *domain.Session {
	s, _ := c.Get(middleware.SessionKey).(*domain.Session)
	return s
}

// browserCookie is the raw Cookie header forwarded to the backend.
func browserCookie(c echo.Context) string {
	return c.Request().Header.Get(echo.HeaderCookie)
}

// relayCookies copies the backend's Set-Cookie headers onto the response.
func relayCookies(c echo.Context, res *domain.AuthResult) {
	if res == nil {
		return
	}
	for _, v := range res.SetCookies {
		c.Response().Header().Add(echo.HeaderSetCookie, v)
	}
}

// addFlash queues a message for the next rendered view. A session failure
// only costs the message, never the redirect.
func addFlash(c echo.Context, log zerolog.Logger, level, msg string) {
	sess, err := session.Get(flashSession, c)
	if err != nil {
		log.Warn().Err(err).Msg("flash session unavailable")
		return
	}
	sess.AddFlash(msg, level)
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		log.Warn().Err(err).Msg("flash not stored")
	}
}

// takeFlash returns the pending flash, if any, and consumes it.
func takeFlash(c echo.Context, log zerolog.Logger) *domain.Flash {
	sess, err := session.Get(flashSession, c)
	if err != nil {
		log.Warn().Err(err).Msg("flash session unavailable")
		return nil
	}
	for _, level := range domain.FlashLevels {
		msgs := sess.Flashes(level)
		if len(msgs) == 0 {
			continue
		}
		if err := sess.Save(c.Request(), c.Response()); err != nil {
			log.Warn().Err(err).Msg("flash not cleared")
		}
		msg, _ := msgs[0].(string)
		return &domain.Flash{Level: level, Message: msg}
	}
	return nil
}

// page builds the layout data shared by every view.
func page(c echo.Context, title string, flash *domain.Flash) view.Page {
	return view.Page{
		Title: title,
		Path:  c.Request().URL.Path,
		User:  ctxSession(c).DisplayName(),
		Flash: flash,
	}
}
