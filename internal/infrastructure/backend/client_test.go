package backend

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jabbapizza/web/internal/core/domain"
)

func newTestClient(url string) *Client {
	return New(Config{
		BaseURL:      url + "/",
		SessionPath:  "/token",
		LoginPath:    "/login",
		RegisterPath: "/register",
		HealthPath:   "/health",
		Timeout:      2 * time.Second,
	})
}

func authError(t *testing.T, err error) *domain.AuthError {
	t.Helper()
	var ae *domain.AuthError
	if !errors.As(err, &ae) {
		t.Fatalf("expected *domain.AuthError, got %T: %v", err, err)
	}
	return ae
}

func TestSessionStatus_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/token" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Cookie") != "session=abc" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"user":"a"}`)
	}))
	defer srv.Close()

	payload, err := newTestClient(srv.URL).SessionStatus(context.Background(), "session=abc")
	if err != nil {
		t.Fatalf("SessionStatus() error: %v", err)
	}
	if payload["user"] != "a" {
		t.Errorf("payload[user] = %v, want %q", payload["user"], "a")
	}
}

func TestSessionStatus_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"detail":"Not authenticated"}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).SessionStatus(context.Background(), "")
	ae := authError(t, err)
	if ae.Kind != domain.KindStatus || ae.StatusCode != http.StatusUnauthorized {
		t.Errorf("got kind=%s status=%d, want status/401", ae.Kind, ae.StatusCode)
	}
	if ae.Message != "Not authenticated" {
		t.Errorf("Message = %q, want %q", ae.Message, "Not authenticated")
	}
}

func TestSessionStatus_RedirectNotFollowed(t *testing.T) {
	var followed atomic.Bool
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/sso", http.StatusFound)
	})
	mux.HandleFunc("/sso", func(w http.ResponseWriter, _ *http.Request) {
		followed.Store(true)
		_, _ = io.WriteString(w, `{"user":"nobody"}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	_, err := newTestClient(srv.URL).SessionStatus(context.Background(), "")
	ae := authError(t, err)
	if ae.StatusCode != http.StatusFound {
		t.Errorf("StatusCode = %d, want 302", ae.StatusCode)
	}
	if followed.Load() {
		t.Errorf("redirect must not be followed")
	}
}

func TestSessionStatus_Malformed(t *testing.T) {
	for name, body := range map[string]string{
		"html":  "<html>login</html>",
		"null":  "null",
		"array": `["a"]`,
		"empty": "",
	} {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, body)
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL).SessionStatus(context.Background(), "")
			if ae := authError(t, err); ae.Kind != domain.KindMalformed {
				t.Errorf("Kind = %s, want malformed", ae.Kind)
			}
		})
	}
}

func TestSessionStatus_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestClient(url).SessionStatus(context.Background(), "")
	if ae := authError(t, err); ae.Kind != domain.KindTransport {
		t.Errorf("Kind = %s, want transport", ae.Kind)
	}
}

func TestSessionStatus_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, SessionPath: "/token", Timeout: 50 * time.Millisecond})
	_, err := c.SessionStatus(context.Background(), "")
	if ae := authError(t, err); ae.Kind != domain.KindTransport {
		t.Errorf("Kind = %s, want transport", ae.Kind)
	}
}

func TestSessionStatus_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(srv.URL).SessionStatus(ctx, "")
	if ae := authError(t, err); ae.Kind != domain.KindCanceled {
		t.Errorf("Kind = %s, want canceled", ae.Kind)
	}
}

func TestLogin_SendsExactBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/login" {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if r.Header.Get("Content-Type") != "application/json" {
			w.WriteHeader(http.StatusUnsupportedMediaType)
			return
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"username":"bob","password":"wrong"}` {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":"invalid credentials"}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Login(context.Background(), "", domain.Credentials{Username: "bob", Password: "wrong"})
	ae := authError(t, err)
	if ae.StatusCode != http.StatusUnauthorized {
		t.Fatalf("StatusCode = %d, want 401", ae.StatusCode)
	}
	if ae.Message != "invalid credentials" {
		t.Errorf("Message = %q, want %q", ae.Message, "invalid credentials")
	}
}

func TestLogin_RelaysCookies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Cookie") != "csrftoken=x" {
			t.Errorf("Cookie = %q, want forwarded browser cookie", r.Header.Get("Cookie"))
		}
		w.Header().Add("Set-Cookie", "session=new; Path=/; HttpOnly")
		w.Header().Add("Set-Cookie", "seen=1; Path=/")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	res, err := newTestClient(srv.URL).Login(context.Background(), "csrftoken=x", domain.Credentials{Username: "bob", Password: "right"})
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", res.StatusCode)
	}
	if len(res.SetCookies) != 2 || res.SetCookies[0] != "session=new; Path=/; HttpOnly" {
		t.Errorf("SetCookies = %v", res.SetCookies)
	}
}

func TestRegister_SendsExactBody(t *testing.T) {
	bodies := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/register" {
			http.NotFound(w, r)
			return
		}
		body, _ := io.ReadAll(r.Body)
		bodies <- string(body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	res, err := newTestClient(srv.URL).Register(context.Background(), "", domain.RegistrationRequest{
		Username:  "bib",
		Password:  "fortuna",
		Email:     "bib@palace.io",
		FirstName: "Bib",
		LastName:  "Fortuna",
	})
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if res.StatusCode != http.StatusCreated {
		t.Errorf("StatusCode = %d, want 201", res.StatusCode)
	}
	want := `{"username":"bib","password":"fortuna","email":"bib@palace.io","first_name":"Bib","last_name":"Fortuna"}`
	if got := <-bodies; got != want {
		t.Errorf("body = %s, want %s", got, want)
	}
}

func TestPing(t *testing.T) {
	var healthy atomic.Bool
	healthy.Store(true)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" || !healthy.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("Ping() error: %v", err)
	}
	healthy.Store(false)
	if err := c.Ping(context.Background()); err == nil {
		t.Fatal("expected error for unhealthy backend")
	}
}
