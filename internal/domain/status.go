package domain

import "time"

// Status is the read-time classification of a task. It is derived from
// (is_completed, due_date, now) on every read and never persisted.
type Status string

const (
	// StatusDone: the task is completed, regardless of due date.
	StatusDone Status = "done"
	// StatusMissed: incomplete and due strictly before today.
	StatusMissed Status = "missed"
	// StatusToday: incomplete and due today.
	StatusToday Status = "today"
	// StatusUpcoming: incomplete and due in the future, or without a
	// due date at all.
	StatusUpcoming Status = "upcoming"
)

// StatusAt computes the task's derived status as of the given instant.
// Comparison is by calendar date in now's location, not by instant.
func (t *Task) StatusAt(now time.Time) Status {
	if t.IsCompleted {
		return StatusDone
	}
	if t.DueDate == nil {
		return StatusUpcoming
	}
	today := truncateToDate(now)
	due := truncateToDate(t.DueDate.In(now.Location()))
	switch {
	case due.Before(today):
		return StatusMissed
	case due.Equal(today):
		return StatusToday
	default:
		return StatusUpcoming
	}
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
