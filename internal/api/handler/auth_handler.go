package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/jabbapizza/web/internal/api/view"
	"github.com/jabbapizza/web/internal/core/domain"
	"github.com/jabbapizza/web/internal/core/ports"
)

const (
	msgLoginFailed      = "Incorrect username or password"
	msgRegistered       = "Account created. Please sign in."
	msgRegisterExists   = "An account with these details already exists"
	msgRegisterInvalid  = "Please check your details and try again"
	msgRegisterFailed   = "Registration failed, please try again later"
	msgInvalidSubmitted = "invalid form submission"
)

// AuthHandler serves the login and registration views and their submissions.
type AuthHandler struct {
	authService ports.AuthService
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		log:         log,
	}
}

// --- Login ---

// ShowLogin handles GET /login.
func (h *AuthHandler) ShowLogin(c echo.Context) error {
	return h.renderLogin(c, http.StatusOK, view.LoginPage{
		Page: page(c, "Sign in", takeFlash(c, h.log)),
	})
}

// SubmitLogin handles POST /login. Only a 2xx from the backend navigates
// home; every failure stays on the form with the same message.
func (h *AuthHandler) SubmitLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return h.renderLogin(c, http.StatusBadRequest, h.loginPage(c, req, msgInvalidSubmitted))
	}
	if err := c.Validate(&req); err != nil {
		return h.renderLogin(c, http.StatusBadRequest, h.loginPage(c, req, err.Error()))
	}

	ctx := c.Request().Context()
	res, err := h.authService.Login(ctx, browserCookie(c), req.credentials())
	if ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return h.renderLogin(c, http.StatusUnauthorized, h.loginPage(c, req, msgLoginFailed))
	}

	relayCookies(c, res)
	return c.Redirect(http.StatusSeeOther, domain.PathHome)
}

// APILogin authenticates against the backend and relays its session cookies.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  statusResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/login [post]
func (h *AuthHandler) APILogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	ctx := c.Request().Context()
	res, err := h.authService.Login(ctx, browserCookie(c), req.credentials())
	if ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: msgLoginFailed})
	}

	relayCookies(c, res)
	return c.JSON(http.StatusOK, statusResponse{Status: "ok"})
}

func (h *AuthHandler) loginPage(c echo.Context, req loginRequest, msg string) view.LoginPage {
	return view.LoginPage{
		Page:     page(c, "Sign in", nil),
		Username: req.Username,
		Error:    msg,
	}
}

func (h *AuthHandler) renderLogin(c echo.Context, code int, p view.LoginPage) error {
	return c.Render(code, string(domain.ViewLogin), p)
}

// --- Registration ---

// ShowRegister handles GET /register.
func (h *AuthHandler) ShowRegister(c echo.Context) error {
	return h.renderRegister(c, http.StatusOK, view.RegisterPage{
		Page: page(c, "Create an account", takeFlash(c, h.log)),
	})
}

// SubmitRegister handles POST /register. On success the user lands on the
// login view with a one-shot confirmation.
func (h *AuthHandler) SubmitRegister(c echo.Context) error {
	var form registerForm
	if err := c.Bind(&form); err != nil {
		return h.renderRegister(c, http.StatusBadRequest, h.registerPage(c, form, msgInvalidSubmitted))
	}
	if err := c.Validate(&form); err != nil {
		return h.renderRegister(c, http.StatusBadRequest, h.registerPage(c, form, err.Error()))
	}

	ctx := c.Request().Context()
	res, err := h.authService.Register(ctx, browserCookie(c), form.registration())
	if ctx.Err() != nil {
		return nil
	}
	if err != nil {
		code, msg := registerFailure(err)
		return h.renderRegister(c, code, h.registerPage(c, form, msg))
	}

	relayCookies(c, res)
	addFlash(c, h.log, domain.FlashSuccess, msgRegistered)
	return c.Redirect(http.StatusSeeOther, domain.PathLogin)
}

// APIRegister creates an account on the backend.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  statusResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /api/register [post]
func (h *AuthHandler) APIRegister(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	ctx := c.Request().Context()
	res, err := h.authService.Register(ctx, browserCookie(c), req.registration())
	if ctx.Err() != nil {
		return nil
	}
	if err != nil {
		code, msg := registerFailure(err)
		return c.JSON(code, errorResponse{Error: msg})
	}

	relayCookies(c, res)
	return c.JSON(http.StatusCreated, statusResponse{Status: "created"})
}

func (h *AuthHandler) registerPage(c echo.Context, f registerForm, msg string) view.RegisterPage {
	return view.RegisterPage{
		Page:      page(c, "Create an account", nil),
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Username:  f.Username,
		Email:     f.Email,
		Error:     msg,
	}
}

func (h *AuthHandler) renderRegister(c echo.Context, code int, p view.RegisterPage) error {
	return c.Render(code, string(domain.ViewRegister), p)
}

// registerFailure picks the status and user-facing text for a failed registration.
func registerFailure(err error) (int, string) {
	if domain.KindOf(err) == domain.KindInvalidInput {
		return http.StatusBadRequest, msgRegisterInvalid
	}
	switch domain.StatusOf(err) {
	case http.StatusConflict:
		return http.StatusConflict, msgRegisterExists
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return http.StatusBadRequest, msgRegisterInvalid
	}
	return http.StatusBadGateway, msgRegisterFailed
}
