// Package auth issues and verifies identity tokens, hashes passwords and
// gates requests by role. It has no knowledge of HTTP.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token verification failures.
var (
	ErrExpiredToken   = errors.New("auth: token has expired")
	ErrMalformedToken = errors.New("auth: malformed token")
)

// TokenKind distinguishes the two tokens of a pair.
type TokenKind string

const (
	AccessToken  TokenKind = "access"
	RefreshToken TokenKind = "refresh"
)

// Claims is the signed payload: {client_id, exp}. typ and iat are informational.
type Claims struct {
	ClientID string    `json:"client_id"`
	Kind     TokenKind `json:"typ,omitempty"`
	jwt.RegisteredClaims
}

// TokenPair is what login and refresh hand back to the caller.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// TokenConfig configures a Codec.
type TokenConfig struct {
	Secret          string
	Algorithm       string // HS256 (default), HS384 or HS512
	AccessLifetime  time.Duration
	RefreshLifetime time.Duration
	Now             func() time.Time
}

// Codec signs and verifies identity tokens with a shared secret.
// There is no revocation: a token is valid until it expires.
type Codec struct {
	secret  []byte
	method  *jwt.SigningMethodHMAC
	access  time.Duration
	refresh time.Duration
	now     func() time.Time
}

// NewCodec validates cfg and returns a ready Codec.
func NewCodec(cfg TokenConfig) (*Codec, error) {
	if cfg.Secret == "" {
		return nil, errors.New("auth: empty signing secret")
	}

	var method *jwt.SigningMethodHMAC
	switch cfg.Algorithm {
	case "", "HS256":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("auth: unsupported signing algorithm %q", cfg.Algorithm)
	}

	c := &Codec{
		secret:  []byte(cfg.Secret),
		method:  method,
		access:  cfg.AccessLifetime,
		refresh: cfg.RefreshLifetime,
		now:     cfg.Now,
	}
	if c.access <= 0 {
		c.access = 15 * time.Minute
	}
	if c.refresh <= 0 {
		c.refresh = 1440 * time.Minute
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c, nil
}

// Issue signs a token of the given kind for identity.
func (c *Codec) Issue(identity string, kind TokenKind) (string, error) {
	lifetime := c.access
	if kind == RefreshToken {
		lifetime = c.refresh
	}

	now := c.now()
	claims := Claims{
		ClientID: identity,
		Kind:     kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
}

// IssuePair signs an access and a refresh token for the same identity.
func (c *Codec) IssuePair(identity string) (TokenPair, error) {
	access, err := c.Issue(identity, AccessToken)
	if err != nil {
		return TokenPair{}, fmt.Errorf("auth: sign access token: %w", err)
	}
	refresh, err := c.Issue(identity, RefreshToken)
	if err != nil {
		return TokenPair{}, fmt.Errorf("auth: sign refresh token: %w", err)
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Verify checks signature and expiry and returns the embedded identity.
func (c *Codec) Verify(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.ClientID == "" {
		return "", ErrMalformedToken
	}

	return claims.ClientID, nil
}
