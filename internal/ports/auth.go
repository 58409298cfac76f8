package ports

import (
	"context"
	"time"

	"github.com/sufield/taskhub/internal/domain"
)

// TokenIssuer issues and verifies opaque bearer tokens. The token is a
// credential only; whether it is still the user's live session is the
// auth service's concern, not the issuer's.
//
// Error Contract:
// - Verify returns domain.ErrUnauthenticated for malformed, forged, or
//   expired tokens
type TokenIssuer interface {
	// Issue mints a signed token identifying the user.
	Issue(ctx context.Context, user *domain.User) (string, error)

	// Verify checks the token's signature and expiry and returns the
	// user id it was issued for.
	Verify(ctx context.Context, token string) (uint, error)
}

// PasswordHasher is a one-way salted password hashing primitive.
//
// Error Contract:
// - Compare returns domain.ErrInvalidCredentials on mismatch
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// Clock supplies the current time. Injected so the status derivation
// and token expiry are testable against a fixed instant.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock is the real wall clock.
var SystemClock Clock = ClockFunc(time.Now)
