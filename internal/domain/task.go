package domain

import "time"

// Priority is the urgency bucket of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority validates a priority string. The empty string is not a
// priority; callers that want a default should apply PriorityMedium
// before parsing.
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(s); p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	}
	return "", ErrInvalidPriority
}

// Task is a unit of work created by one user and assigned to exactly one
// user. The creator is immutable; the assignee changes only through
// reassignment by the creator.
type Task struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    Priority   `gorm:"size:16;not null;default:medium" json:"priority"`
	IsCompleted bool       `gorm:"not null;default:false" json:"is_completed"`
	CreatorID   uint       `gorm:"not null;index" json:"creator_id"`
	AssigneeID  uint       `gorm:"not null;index" json:"assignee_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// VisibleTo reports whether a user may read or mutate the task through
// the assignee-only operations (get, update, toggle completion).
func (t *Task) VisibleTo(u *User) bool {
	return t.AssigneeID == u.ID
}

// DeletableBy reports whether a user may delete the task. Deletion is
// broader than the other mutations: both the assignee and the creator
// qualify.
func (t *Task) DeletableBy(u *User) bool {
	return t.AssigneeID == u.ID || t.CreatorID == u.ID
}

// OwnedBy reports whether the user is the task's creator. Only the
// creator may reassign.
func (t *Task) OwnedBy(u *User) bool {
	return t.CreatorID == u.ID
}
