package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sufield/taskhub/internal/adapters/outbound/inmemory"
	"github.com/sufield/taskhub/internal/adapters/outbound/token"
	"github.com/sufield/taskhub/internal/app"
	"github.com/sufield/taskhub/internal/domain"
	"github.com/sufield/taskhub/internal/ports"
)

func newAuthService(t *testing.T) (*app.AuthService, *inmemory.UserStore) {
	t.Helper()
	users := inmemory.NewUserStore()
	clock := ports.ClockFunc(func() time.Time {
		return time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	})
	issuer := token.NewJWTIssuer([]byte("test-secret"), time.Hour, clock)
	hasher := token.NewBcryptHasherWithCost(bcrypt.MinCost)
	return app.NewAuthService(users, issuer, hasher), users
}

func TestRegisterThenLogin_Succeeds(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	auth, _ := newAuthService(t)

	registered, err := auth.Register(ctx, "Alice", "alice@example.com", "password123")
	require.NoError(t, err)
	assert.NotZero(t, registered.ID)
	assert.Nil(t, registered.CurrentToken, "registration must not log the user in")

	tok, user, err := auth.Login(ctx, "alice@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, tok)
	assert.Equal(t, registered.ID, user.ID)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "alice@example.com", user.Email)
}

func TestRegister_DuplicateEmailRejected(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	auth, users := newAuthService(t)

	_, err := auth.Register(ctx, "Alice", "alice@example.com", "password123")
	require.NoError(t, err)

	_, err = auth.Register(ctx, "Imposter", "alice@example.com", "different-pass")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	all, err := users.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1, "no duplicate user may be created")
}

func TestLogin_RejectsBadCredentials(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	auth, _ := newAuthService(t)

	_, err := auth.Register(ctx, "Alice", "alice@example.com", "password123")
	require.NoError(t, err)

	_, _, err = auth.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, _, err = auth.Login(ctx, "alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

// TestLogin_Invariant_SingleLiveToken: logging in a second time revokes
// the first session's token even though it would still verify
// cryptographically.
func TestLogin_Invariant_SingleLiveToken(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	auth, _ := newAuthService(t)

	_, err := auth.Register(ctx, "Alice", "alice@example.com", "password123")
	require.NoError(t, err)

	firstToken, _, err := auth.Login(ctx, "alice@example.com", "password123")
	require.NoError(t, err)

	user, err := auth.Authenticate(ctx, firstToken)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)

	// Second login: last login wins, first token is dead.
	secondToken, _, err := auth.Login(ctx, "alice@example.com", "password123")
	require.NoError(t, err)

	_, err = auth.Authenticate(ctx, firstToken)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = auth.Authenticate(ctx, secondToken)
	assert.NoError(t, err)
}

func TestLogout_ClearsSessionAndIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	auth, _ := newAuthService(t)

	_, err := auth.Register(ctx, "Alice", "alice@example.com", "password123")
	require.NoError(t, err)

	tok, user, err := auth.Login(ctx, "alice@example.com", "password123")
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx, user))

	_, err = auth.Authenticate(ctx, tok)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	// Logging out twice is not an error.
	assert.NoError(t, auth.Logout(ctx, user))
}

func TestAuthenticate_RejectsGarbageTokens(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	auth, _ := newAuthService(t)

	_, err := auth.Authenticate(ctx, "not-a-token")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = auth.Authenticate(ctx, "")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
