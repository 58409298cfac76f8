package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sufield/taskhub/internal/domain"
	"github.com/sufield/taskhub/internal/ports"
)

// UserStore is an in-memory ports.UserRepository. Safe for concurrent
// use; each operation is atomic under a single mutex, mirroring the
// single-row atomicity the rules layer assumes of the real store.
type UserStore struct {
	mu     sync.RWMutex
	nextID uint
	users  map[uint]*domain.User
}

// NewUserStore creates an empty user store.
func NewUserStore() *UserStore {
	return &UserStore{
		nextID: 1,
		users:  make(map[uint]*domain.User),
	}
}

func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}

	user.ID = s.nextID
	s.nextID++
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	s.users[user.ID] = cloneUser(user)
	return nil
}

func (s *UserStore) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(user), nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *UserStore) SetCurrentToken(ctx context.Context, id uint, token *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	if token == nil {
		user.CurrentToken = nil
	} else {
		t := *token
		user.CurrentToken = &t
	}
	user.UpdatedAt = time.Now()
	return nil
}

func (s *UserStore) ListAll(ctx context.Context) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*domain.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, cloneUser(user))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// cloneUser keeps callers from mutating the store's copy in place.
func cloneUser(u *domain.User) *domain.User {
	c := *u
	if u.CurrentToken != nil {
		t := *u.CurrentToken
		c.CurrentToken = &t
	}
	return &c
}

var _ ports.UserRepository = (*UserStore)(nil)
