package handler

import "github.com/jabbapizza/web/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type statusResponse struct {
	Status string `json:"status"`
}

// --- Request types ---

type loginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

func (r loginRequest) credentials() domain.Credentials {
	return domain.Credentials{Username: r.Username, Password: r.Password}
}

// registerRequest is the JSON body of POST /api/register. It mirrors the
// backend body exactly.
type registerRequest struct {
	Username  string `json:"username"   validate:"required"`
	Password  string `json:"password"   validate:"required"`
	Email     string `json:"email"      validate:"required,email"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
}

func (r registerRequest) registration() domain.RegistrationRequest {
	return domain.RegistrationRequest{
		Username:  r.Username,
		Password:  r.Password,
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
	}
}

// registerForm is the HTML form. Its camelCase names are remapped to the
// backend's snake_case body by registration; repeatPassword never leaves the
// web tier.
type registerForm struct {
	FirstName      string `form:"firstName"      json:"firstName"      validate:"required"`
	LastName       string `form:"lastName"       json:"lastName"       validate:"required"`
	Username       string `form:"username"       json:"username"       validate:"required"`
	Email          string `form:"email"          json:"email"          validate:"required,email"`
	Password       string `form:"password"       json:"password"       validate:"required"`
	RepeatPassword string `form:"repeatPassword" json:"repeatPassword" validate:"required,eqfield=Password"`
}

func (f registerForm) registration() domain.RegistrationRequest {
	return domain.RegistrationRequest{
		Username:  f.Username,
		Password:  f.Password,
		Email:     f.Email,
		FirstName: f.FirstName,
		LastName:  f.LastName,
	}
}

// --- Response types ---

type homeResponse struct {
	Message string `json:"message"`
}

type sessionResponse struct {
	Authenticated bool           `json:"authenticated"`
	User          string         `json:"user,omitempty"`
	Session       map[string]any `json:"session,omitempty"`
}
