package token

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sufield/taskhub/internal/domain"
	"github.com/sufield/taskhub/internal/ports"
)

// JWTIssuer issues and verifies HS256 session tokens. The token subject
// carries the user id; expiry comes from the configured TTL. The token
// is only a credential — the auth service additionally checks it
// against the user's stored current token.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	clock  ports.Clock
}

// NewJWTIssuer creates an issuer. The TTL bounds how long a token
// verifies even if it is never revoked by a later login.
func NewJWTIssuer(secret []byte, ttl time.Duration, clock ports.Clock) *JWTIssuer {
	return &JWTIssuer{
		secret: secret,
		ttl:    ttl,
		clock:  clock,
	}
}

func (i *JWTIssuer) Issue(ctx context.Context, user *domain.User) (string, error) {
	now := i.clock.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(user.ID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (i *JWTIssuer) Verify(ctx context.Context, token string) (uint, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.clock.Now),
	)
	if err != nil || !parsed.Valid {
		return 0, domain.ErrUnauthenticated
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return 0, domain.ErrUnauthenticated
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, domain.ErrUnauthenticated
	}
	return uint(id), nil
}

var _ ports.TokenIssuer = (*JWTIssuer)(nil)
