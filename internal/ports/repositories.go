package ports

import (
	"context"

	"github.com/sufield/taskhub/internal/domain"
)

// UserRepository is the storage port for user records.
//
// Error Contract:
// - Create returns domain.ErrEmailTaken if the email is already registered
// - FindByID / FindByEmail return domain.ErrUserNotFound on a miss
// - SetCurrentToken returns domain.ErrUserNotFound if the user does not exist
type UserRepository interface {
	// Create persists a new user. The caller supplies the password hash;
	// repositories never see plaintext passwords.
	Create(ctx context.Context, user *domain.User) error

	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// SetCurrentToken overwrites the user's session token. A nil token
	// clears the session (logout). Overwriting is the whole invalidation
	// mechanism: there is no session table.
	SetCurrentToken(ctx context.Context, id uint, token *string) error

	// ListAll returns every user. The API exposes only name and email
	// from the result; trimming is the handler's job.
	ListAll(ctx context.Context) ([]*domain.User, error)
}

// TaskFilter narrows a task listing. A nil Priority means no filter.
type TaskFilter struct {
	Priority *domain.Priority
}

// TaskRepository is the storage port for task records.
//
// Error Contract:
// - FindByID returns domain.ErrTaskNotFound on a miss
// - Update and Delete return domain.ErrTaskNotFound if the row is gone
// - ListByAssignee orders by due date ascending with NULL due dates last
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	FindByID(ctx context.Context, id uint) (*domain.Task, error)
	ListByAssignee(ctx context.Context, assigneeID uint, filter TaskFilter) ([]*domain.Task, error)

	// Update writes the full row. Concurrent updates are last-write-wins;
	// the store guarantees only single-row atomicity.
	Update(ctx context.Context, task *domain.Task) error

	Delete(ctx context.Context, id uint) error
}
