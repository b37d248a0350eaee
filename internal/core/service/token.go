package service

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jabbapizza/web/internal/core/domain"
)

var errUnexpectedAlg = errors.New("unexpected signing method")

// ClaimsDecoder reads display claims from the token in a session payload.
// With a secret the token must carry a valid HS256 signature; without one the
// claims are read unverified and are only fit for display.
type ClaimsDecoder struct {
	secret []byte
}

func NewClaimsDecoder(secret string) *ClaimsDecoder {
	return &ClaimsDecoder{secret: []byte(secret)}
}

// Verifying reports whether tokens are checked against a secret.
func (d *ClaimsDecoder) Verifying() bool {
	return len(d.secret) > 0
}

func (d *ClaimsDecoder) Decode(token string) (*domain.Claims, error) {
	claims := jwt.MapClaims{}

	if d.Verifying() {
		tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, errUnexpectedAlg
			}
			return d.secret, nil
		})
		if err != nil {
			return nil, fmt.Errorf("decode token: %w", err)
		}
		if !tkn.Valid {
			return nil, fmt.Errorf("decode token: %w", jwt.ErrTokenSignatureInvalid)
		}
	} else if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}

	out := &domain.Claims{}
	out.Email, _ = claims["email"].(string)
	out.FirstName, _ = claims["first_name"].(string)
	out.LastName, _ = claims["last_name"].(string)
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time.UTC()
	}
	return out, nil
}
