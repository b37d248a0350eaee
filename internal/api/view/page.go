package view

import "github.com/jabbapizza/web/internal/core/domain"

// Page carries what the layout needs on every view.
type Page struct {
	Title string
	Path  string
	// User is the display name of the signed-in user, empty when anonymous.
	User  string
	Flash *domain.Flash
}

type LandingPage struct {
	Page
}

type LoginPage struct {
	Page
	Username string
	Error    string
}

// RegisterPage keeps the non-secret fields so a failed submission can be
// corrected without retyping everything.
type RegisterPage struct {
	Page
	FirstName string
	LastName  string
	Username  string
	Email     string
	Error     string
}

type ErrorPage struct {
	Page
	Code    int
	Message string
}
