package redis

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"
)

func init() {
	// flashes are stored as []interface{} inside session values
	gob.Register([]interface{}{})
}

// SessionStore is a gorilla sessions.Store that keeps session values in Redis.
// The browser only holds the signed session id.
// Key format: session:<uuid>
type SessionStore struct {
	client  *redis.Client
	codecs  []securecookie.Codec
	ttl     time.Duration
	Options *sessions.Options
}

// NewSessionStore creates a SessionStore. keyPairs sign the session id cookie,
// as in sessions.NewCookieStore.
func NewSessionStore(client *redis.Client, ttl time.Duration, keyPairs ...[]byte) *SessionStore {
	return &SessionStore{
		client: client,
		codecs: securecookie.CodecsFromPairs(keyPairs...),
		ttl:    ttl,
		Options: &sessions.Options{
			Path:     "/",
			MaxAge:   int(ttl.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
	}
}

// Get returns the session cached in the request registry, loading it once.
func (s *SessionStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

// New loads the session named by the request cookie. A missing, forged or
// expired id yields a fresh empty session.
func (s *SessionStore) New(r *http.Request, name string) (*sessions.Session, error) {
	session := sessions.NewSession(s, name)
	opts := *s.Options
	session.Options = &opts
	session.IsNew = true

	c, err := r.Cookie(name)
	if err != nil {
		return session, nil
	}
	if err := securecookie.DecodeMulti(name, c.Value, &session.ID, s.codecs...); err != nil {
		session.ID = ""
		return session, nil
	}

	found, err := s.load(r.Context(), session)
	if err != nil {
		return session, fmt.Errorf("session load: %w", err)
	}
	session.IsNew = !found
	return session, nil
}

// Save writes the values to Redis and refreshes the id cookie. An empty
// session or a negative MaxAge removes both.
func (s *SessionStore) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	ctx := r.Context()
	if session.Options.MaxAge < 0 || len(session.Values) == 0 {
		if session.ID != "" {
			if err := s.client.Del(ctx, s.key(session.ID)).Err(); err != nil {
				return fmt.Errorf("session delete: %w", err)
			}
		}
		opts := *session.Options
		opts.MaxAge = -1
		http.SetCookie(w, sessions.NewCookie(session.Name(), "", &opts))
		return nil
	}

	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(session.Values); err != nil {
		return fmt.Errorf("session encode: %w", err)
	}
	if err := s.client.Set(ctx, s.key(session.ID), buf.Bytes(), s.ttl).Err(); err != nil {
		return fmt.Errorf("session save: %w", err)
	}

	encoded, err := securecookie.EncodeMulti(session.Name(), session.ID, s.codecs...)
	if err != nil {
		return fmt.Errorf("session cookie: %w", err)
	}
	http.SetCookie(w, sessions.NewCookie(session.Name(), encoded, session.Options))
	return nil
}

func (s *SessionStore) load(ctx context.Context, session *sessions.Session) (bool, error) {
	data, err := s.client.Get(ctx, s.key(session.ID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, gob.NewDecoder(bytes.NewReader(data)).Decode(&session.Values)
}

func (s *SessionStore) key(id string) string {
	return "session:" + id
}
