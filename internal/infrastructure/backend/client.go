// Package backend is the HTTP client for the external auth API.
//
// Every call forwards the browser's Cookie header, never follows redirects,
// and reports failures as *domain.AuthError so callers can branch on the kind.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jabbapizza/web/internal/pkg/metrics"
	"github.com/jabbapizza/web/internal/core/domain"
)

const (
	opSession  = "session"
	opLogin    = "login"
	opRegister = "register"
	opHealth   = "health"

	maxErrorBody = 1 << 20
)

// Config holds the endpoint layout of the auth API.
type Config struct {
	BaseURL      string
	SessionPath  string
	LoginPath    string
	RegisterPath string
	HealthPath   string
	// Timeout bounds each call. Zero means no client-side timeout.
	Timeout time.Duration
}

// Client is the auth API client. It satisfies ports.AuthGateway.
type Client struct {
	baseURL    string
	cfg        Config
	httpClient *http.Client
}

// New creates a new auth API client.
func New(cfg Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		cfg:     cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			// A redirect from the session endpoint means "go log in"; it is
			// surfaced as a non-2xx status instead of being followed.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// SessionStatus asks whether the browser session behind cookie is authenticated
// and returns the decoded session payload.
func (c *Client) SessionStatus(ctx context.Context, cookie string) (map[string]any, error) {
	var payload map[string]any
	if _, err := c.doRequest(ctx, opSession, http.MethodGet, c.cfg.SessionPath, cookie, nil, &payload); err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, &domain.AuthError{Op: opSession, Kind: domain.KindMalformed, Message: "empty session payload"}
	}
	return payload, nil
}

// Login posts {username, password}.
func (c *Client) Login(ctx context.Context, cookie string, creds domain.Credentials) (*domain.AuthResult, error) {
	return c.doRequest(ctx, opLogin, http.MethodPost, c.cfg.LoginPath, cookie, creds, nil)
}

// Register posts {username, password, email, first_name, last_name}.
func (c *Client) Register(ctx context.Context, cookie string, req domain.RegistrationRequest) (*domain.AuthResult, error) {
	return c.doRequest(ctx, opRegister, http.MethodPost, c.cfg.RegisterPath, cookie, req, nil)
}

// Ping checks the backend's health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.doRequest(ctx, opHealth, http.MethodGet, c.cfg.HealthPath, "", nil, nil)
	return err
}

func (c *Client) doRequest(ctx context.Context, op, method, path, cookie string, body any, out any) (*domain.AuthResult, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: marshal body: %w", op, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("%s: create request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		observe(op, "error", start)
		return nil, &domain.AuthError{Op: op, Kind: failureKind(ctx), Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close
	observe(op, strconv.Itoa(resp.StatusCode), start)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.AuthError{
			Op:         op,
			Kind:       domain.KindStatus,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.Body),
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			kind := domain.KindMalformed
			if ctx.Err() != nil {
				kind = domain.KindCanceled
			}
			return nil, &domain.AuthError{Op: op, Kind: kind, StatusCode: resp.StatusCode, Err: err}
		}
	}

	return &domain.AuthResult{
		StatusCode: resp.StatusCode,
		SetCookies: resp.Header.Values("Set-Cookie"),
	}, nil
}

// failureKind separates a caller that went away from a backend that did.
func failureKind(ctx context.Context) domain.ErrorKind {
	if ctx.Err() != nil {
		return domain.KindCanceled
	}
	return domain.KindTransport
}

// errorMessage extracts {"error": ...} or {"detail": ...} from an error body,
// falling back to the trimmed raw text.
func errorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil {
		return ""
	}
	var apiErr struct {
		Error  string `json:"error"`
		Detail any    `json:"detail"`
	}
	if json.Unmarshal(raw, &apiErr) == nil {
		if apiErr.Error != "" {
			return apiErr.Error
		}
		if s, ok := apiErr.Detail.(string); ok && s != "" {
			return s
		}
	}
	return strings.TrimSpace(string(raw))
}

func observe(op, code string, start time.Time) {
	metrics.BackendRequestDuration.WithLabelValues(op, code).Observe(time.Since(start).Seconds())
}
