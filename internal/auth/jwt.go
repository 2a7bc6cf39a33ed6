// Package auth issues and verifies the bearer tokens that identify players.
package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/andrewpolewoy/kokodi/internal/domain"
)

// TokenProvider signs and parses HS256 JWTs whose subject is the user id.
type TokenProvider struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenProvider creates a provider with the given signing secret and token
// lifetime.
func NewTokenProvider(secret string, ttl time.Duration) *TokenProvider {
	return &TokenProvider{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

type claims struct {
	jwt.RegisteredClaims
	Login string `json:"login"`
}

// Generate returns a signed token for the user.
func (p *TokenProvider) Generate(user domain.User) (string, error) {
	now := p.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
		},
		Login: user.Login,
	})
	return token.SignedString(p.secret)
}

// Parse verifies a token and returns the user id it identifies. Any
// verification failure maps to an Unauthenticated domain error.
func (p *TokenProvider) Parse(tokenString string) (int64, error) {
	var parsed claims
	_, err := jwt.ParseWithClaims(tokenString, &parsed, func(token *jwt.Token) (any, error) {
		return p.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil {
		return 0, domain.WrapError(domain.CodeUnauthenticated, "invalid token", err)
	}

	userID, err := strconv.ParseInt(parsed.Subject, 10, 64)
	if err != nil {
		return 0, domain.WrapError(domain.CodeUnauthenticated, "invalid token subject", err)
	}
	return userID, nil
}
