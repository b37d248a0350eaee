package domain

import "time"

// GuardState is the route guard's view of the current request.
type GuardState int

const (
	StateLoading GuardState = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s GuardState) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "loading"
	}
}

// Claims are the display fields carried by a session token.
type Claims struct {
	Email     string    `json:"email,omitempty"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Session is derived from one session-status response. It is never stored.
type Session struct {
	Payload map[string]any `json:"payload"`
	Claims  *Claims        `json:"claims,omitempty"`
}

// Token returns the payload's "token" field, if any.
func (s *Session) Token() string {
	if s == nil {
		return ""
	}
	tok, _ := s.Payload["token"].(string)
	return tok
}

// DisplayName picks the friendliest name the session knows about.
func (s *Session) DisplayName() string {
	if s == nil {
		return ""
	}
	if s.Claims != nil {
		if s.Claims.FirstName != "" {
			return s.Claims.FirstName
		}
		if s.Claims.Email != "" {
			return s.Claims.Email
		}
	}
	if user, ok := s.Payload["user"].(string); ok {
		return user
	}
	return ""
}

// Decision is the outcome of probing the session for a single request.
type Decision struct {
	State   GuardState
	Session *Session
	Kind    ErrorKind
}

// Authenticated reports whether the protected view may render.
func (d Decision) Authenticated() bool {
	return d.State == StateAuthenticated
}

// Resolve moves a Loading decision to its terminal state. A terminal
// decision is returned unchanged.
func (d Decision) Resolve(session *Session, err error) Decision {
	if d.State != StateLoading {
		return d
	}
	if err != nil {
		return Decision{State: StateUnauthenticated, Kind: KindOf(err)}
	}
	return Decision{State: StateAuthenticated, Session: session}
}
