package domain

import "errors"

// Sentinel errors for domain failures.
// Check with errors.Is(); wrap with fmt.Errorf("%w", ...) for context.

var (
	// ErrInvalidCredentials indicates a login attempt with an unknown
	// email or a wrong password. The two cases are deliberately not
	// distinguished.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthenticated indicates a request whose bearer token did not
	// resolve to a user with a live session.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrEmailTaken indicates a registration with an email that already
	// belongs to a user.
	ErrEmailTaken = errors.New("email already registered")

	// ErrUserNotFound indicates a user lookup miss.
	ErrUserNotFound = errors.New("user not found")

	// ErrTaskNotFound indicates a task lookup miss at the store level.
	ErrTaskNotFound = errors.New("task not found")

	// ErrTaskNotVisible indicates the acting user may not see or mutate
	// the task. Collapses "does not exist" and "exists but not yours"
	// so existence never leaks.
	ErrTaskNotVisible = errors.New("task not found or unauthorized")

	// ErrAssigneeNotFound indicates an assignee email that resolves to
	// no user. Unlike task visibility this is reported distinctly: it
	// names a user, not a task.
	ErrAssigneeNotFound = errors.New("assignee not found")

	// ErrInvalidPriority indicates a priority outside low|medium|high.
	ErrInvalidPriority = errors.New("priority must be one of low, medium, high")
)
