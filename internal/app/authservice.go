package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/sufield/taskhub/internal/domain"
	"github.com/sufield/taskhub/internal/ports"
)

// AuthService implements registration, login, logout, and per-request
// token resolution. A user has at most one live session: logging in
// overwrites the previous token, which revokes it everywhere else.
type AuthService struct {
	users  ports.UserRepository
	tokens ports.TokenIssuer
	hasher ports.PasswordHasher
}

// NewAuthService wires the auth rules to their collaborators.
func NewAuthService(users ports.UserRepository, tokens ports.TokenIssuer, hasher ports.PasswordHasher) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		hasher: hasher,
	}
}

// Register creates a user with a hashed password. It does not log the
// user in. Returns domain.ErrEmailTaken if the email is registered.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials, issues a fresh session token, and stores
// it as the user's current token. Any previously issued token is
// invalidated by the overwrite; there is nothing to revoke explicitly,
// so login never fails on account of an old session.
// Returns domain.ErrInvalidCredentials for unknown email or wrong
// password, without distinguishing the two.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(ctx, user)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	if err := s.users.SetCurrentToken(ctx, user.ID, &token); err != nil {
		return "", nil, fmt.Errorf("store session token: %w", err)
	}
	user.CurrentToken = &token

	return token, user, nil
}

// Logout clears the user's session token. Idempotent: logging out a
// user with no live session is not an error.
func (s *AuthService) Logout(ctx context.Context, user *domain.User) error {
	if err := s.users.SetCurrentToken(ctx, user.ID, nil); err != nil {
		return fmt.Errorf("clear session token: %w", err)
	}
	user.CurrentToken = nil
	return nil
}

// Authenticate resolves a bearer token to the acting user. The token
// must verify (signature, expiry) and must still be the user's current
// session token — an older token from before a re-login verifies fine
// but no longer matches, which is what enforces single-session.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	userID, err := s.tokens.Verify(ctx, token)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	if !user.HasToken(token) {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}

// ListUsers returns all users, for the assignee picker. Handlers expose
// only name and email from the result.
func (s *AuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.ListAll(ctx)
}
