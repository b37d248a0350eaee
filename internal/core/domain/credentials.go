package domain

// Credentials are the login input. They live for one submission only.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Complete reports whether both fields are present.
func (c Credentials) Complete() bool {
	return c.Username != "" && c.Password != ""
}

// RegistrationRequest is the exact body sent to the backend's register endpoint.
type RegistrationRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Complete reports whether every field is present.
func (r RegistrationRequest) Complete() bool {
	return r.Username != "" && r.Password != "" && r.Email != "" &&
		r.FirstName != "" && r.LastName != ""
}

// AuthResult describes a successful backend write.
type AuthResult struct {
	StatusCode int
	// SetCookies holds raw Set-Cookie header values to relay to the browser.
	SetCookies []string
}
