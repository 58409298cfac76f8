package httpapi

import (
	"time"

	"github.com/sufield/taskhub/internal/domain"
)

// taskPayload is the wire shape of a task. Status is derived at
// serialization time from the clock — never read from storage.
type taskPayload struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	DueDate     *string         `json:"due_date"`
	Priority    domain.Priority `json:"priority"`
	IsCompleted bool            `json:"is_completed"`
	Status      domain.Status   `json:"status"`
	CreatorID   uint            `json:"creator_id"`
	AssigneeID  uint            `json:"assignee_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func toTaskPayload(t *domain.Task, now time.Time) taskPayload {
	p := taskPayload{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		IsCompleted: t.IsCompleted,
		Status:      t.StatusAt(now),
		CreatorID:   t.CreatorID,
		AssigneeID:  t.AssigneeID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.DueDate != nil {
		due := t.DueDate.Format(dueDateLayout)
		p.DueDate = &due
	}
	return p
}

func toTaskPayloads(tasks []*domain.Task, now time.Time) []taskPayload {
	payloads := make([]taskPayload, len(tasks))
	for i, t := range tasks {
		payloads[i] = toTaskPayload(t, now)
	}
	return payloads
}

// userPayload is the directory view of a user: name and email only.
type userPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func toUserPayloads(users []*domain.User) []userPayload {
	payloads := make([]userPayload, len(users))
	for i, u := range users {
		payloads[i] = userPayload{Name: u.Name, Email: u.Email}
	}
	return payloads
}

// sessionUserPayload is the authenticated user's own view, returned
// from login.
type sessionUserPayload struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
