package inmemory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sufield/taskhub/internal/adapters/outbound/inmemory"
	"github.com/sufield/taskhub/internal/domain"
	"github.com/sufield/taskhub/internal/ports"
)

func TestTaskStore_ListByAssignee_NullsLastOrdering(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := inmemory.NewTaskStore()

	base := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	later := base.AddDate(0, 0, 7)
	sooner := base.AddDate(0, 0, 1)

	for _, task := range []*domain.Task{
		{Title: "undated", AssigneeID: 1, CreatorID: 1, Priority: domain.PriorityMedium},
		{Title: "later", DueDate: &later, AssigneeID: 1, CreatorID: 1, Priority: domain.PriorityMedium},
		{Title: "sooner", DueDate: &sooner, AssigneeID: 1, CreatorID: 1, Priority: domain.PriorityMedium},
		{Title: "other user", DueDate: &sooner, AssigneeID: 2, CreatorID: 1, Priority: domain.PriorityMedium},
	} {
		require.NoError(t, store.Create(ctx, task))
	}

	tasks, err := store.ListByAssignee(ctx, 1, ports.TaskFilter{})
	require.NoError(t, err)

	titles := make([]string, len(tasks))
	for i, task := range tasks {
		titles[i] = task.Title
	}
	assert.Equal(t, []string{"sooner", "later", "undated"}, titles)
}

func TestTaskStore_MissesReportNotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := inmemory.NewTaskStore()

	_, err := store.FindByID(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	assert.ErrorIs(t, store.Delete(ctx, 1), domain.ErrTaskNotFound)
	assert.ErrorIs(t, store.Update(ctx, &domain.Task{ID: 1}), domain.ErrTaskNotFound)
}

func TestTaskStore_ClonesOnReadAndWrite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := inmemory.NewTaskStore()

	task := &domain.Task{Title: "original", AssigneeID: 1, CreatorID: 1, Priority: domain.PriorityMedium}
	require.NoError(t, store.Create(ctx, task))

	got, err := store.FindByID(ctx, task.ID)
	require.NoError(t, err)
	got.Title = "mutated by caller"

	again, err := store.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", again.Title, "store copies must not alias caller memory")
}

func TestUserStore_EmailUniqueness(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := inmemory.NewUserStore()

	require.NoError(t, store.Create(ctx, &domain.User{Name: "A", Email: "a@example.com", PasswordHash: "x"}))
	err := store.Create(ctx, &domain.User{Name: "B", Email: "a@example.com", PasswordHash: "y"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}
