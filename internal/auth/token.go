package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed lifetime of a session token.
const TokenTTL = 7 * 24 * time.Hour

var ErrMissingSecret = errors.New("jwt secret is required")

// Payload is what a session token vouches for.
type Payload struct {
	StaffID  string `json:"sub"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Nickname string `json:"nickname"`
	Company  string `json:"company"`
}

// Claims represents JWT token claims
type Claims struct {
	Email    string `json:"email"`
	Role     string `json:"role"`
	Nickname string `json:"nickname"`
	Company  string `json:"company"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies HS256 session tokens with a single server secret.
type TokenCodec struct {
	secret []byte
	now    func() time.Time
}

type CodecOption func(*TokenCodec)

// WithClock replaces time.Now for signing and expiry checks.
func WithClock(now func() time.Time) CodecOption {
	return func(c *TokenCodec) {
		c.now = now
	}
}

func NewTokenCodec(secret string, opts ...CodecOption) (*TokenCodec, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	c := &TokenCodec{secret: []byte(secret), now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *TokenCodec) Sign(p Payload) (string, error) {
	issuedAt := c.now()
	claims := &Claims{
		Email:    p.Email,
		Role:     p.Role,
		Nickname: p.Nickname,
		Company:  p.Company,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.StaffID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify returns the payload of a valid token. Every failure, whether a bad signature,
// an expired or malformed token, or missing identity claims, is reported as false.
func (c *TokenCodec) Verify(tokenString string) (*Payload, bool) {
	if tokenString == "" {
		return nil, false
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !token.Valid {
		return nil, false
	}

	if claims.Subject == "" || claims.Role == "" || claims.Company == "" {
		return nil, false
	}

	return &Payload{
		StaffID:  claims.Subject,
		Email:    claims.Email,
		Role:     claims.Role,
		Nickname: claims.Nickname,
		Company:  claims.Company,
	}, true
}
