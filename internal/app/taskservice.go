package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sufield/taskhub/internal/domain"
	"github.com/sufield/taskhub/internal/ports"
)

// TaskService enforces the task access and lifecycle rules. Every
// operation takes the acting user explicitly; visibility failures are
// reported as domain.ErrTaskNotVisible whether the task is missing or
// merely someone else's.
type TaskService struct {
	tasks ports.TaskRepository
	users ports.UserRepository
	clock ports.Clock
}

// NewTaskService wires the task rules to their collaborators.
func NewTaskService(tasks ports.TaskRepository, users ports.UserRepository, clock ports.Clock) *TaskService {
	return &TaskService{
		tasks: tasks,
		users: users,
		clock: clock,
	}
}

// CreateTaskInput carries the fields of a new task. AssigneeEmail is
// resolved to a user id before persistence; Priority defaults to
// medium when empty.
type CreateTaskInput struct {
	Title         string
	Description   string
	DueDate       *time.Time
	Priority      domain.Priority
	AssigneeEmail string
}

// UpdateTaskInput carries a partial update: nil fields keep their
// previous values.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Priority    *domain.Priority
}

// CreateTask resolves the assignee email and persists a new task with
// the acting user as its immutable creator.
// Returns domain.ErrAssigneeNotFound if the email matches no user.
func (s *TaskService) CreateTask(ctx context.Context, in CreateTaskInput, creator *domain.User) (*domain.Task, error) {
	assignee, err := s.users.FindByEmail(ctx, in.AssigneeEmail)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrAssigneeNotFound
		}
		return nil, fmt.Errorf("resolve assignee: %w", err)
	}

	priority := in.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	task := &domain.Task{
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Priority:    priority,
		CreatorID:   creator.ID,
		AssigneeID:  assignee.ID,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// ListTasks returns the tasks assigned to the user, optionally filtered
// to a single priority, ordered by due date ascending with undated
// tasks last.
func (s *TaskService) ListTasks(ctx context.Context, user *domain.User, priority *domain.Priority) ([]*domain.Task, error) {
	tasks, err := s.tasks.ListByAssignee(ctx, user.ID, ports.TaskFilter{Priority: priority})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns the task if the acting user is its assignee;
// otherwise domain.ErrTaskNotVisible.
func (s *TaskService) GetTask(ctx context.Context, id uint, user *domain.User) (*domain.Task, error) {
	return s.visibleTask(ctx, id, user)
}

// UpdateTask applies a partial update under the same assignee-only
// visibility rule as GetTask. Fields absent from the input retain
// their previous values.
func (s *TaskService) UpdateTask(ctx context.Context, id uint, in UpdateTaskInput, user *domain.User) (*domain.Task, error) {
	task, err := s.visibleTask(ctx, id, user)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.DueDate != nil {
		task.DueDate = in.DueDate
	}
	if in.Priority != nil {
		task.Priority = *in.Priority
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

// DeleteTask permanently removes the task. Both the assignee and the
// creator may delete; anyone else gets domain.ErrTaskNotVisible.
func (s *TaskService) DeleteTask(ctx context.Context, id uint, user *domain.User) error {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return domain.ErrTaskNotVisible
		}
		return fmt.Errorf("find task: %w", err)
	}
	if !task.DeletableBy(user) {
		return domain.ErrTaskNotVisible
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// AssignTask transfers the task to a new assignee. Only the creator may
// reassign. The transfer is total: the new assignee gains get/update/
// toggle rights and the old assignee loses them.
// Returns domain.ErrTaskNotVisible if the acting user is not the
// creator, domain.ErrAssigneeNotFound if the email matches no user (in
// which case the task is left untouched).
func (s *TaskService) AssignTask(ctx context.Context, id uint, assigneeEmail string, creator *domain.User) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return nil, domain.ErrTaskNotVisible
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	if !task.OwnedBy(creator) {
		return nil, domain.ErrTaskNotVisible
	}

	assignee, err := s.users.FindByEmail(ctx, assigneeEmail)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrAssigneeNotFound
		}
		return nil, fmt.Errorf("resolve assignee: %w", err)
	}

	task.AssigneeID = assignee.ID
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("assign task: %w", err)
	}
	return task, nil
}

// ToggleCompletion flips is_completed under the assignee-only rule.
// Applying it twice restores the original value.
func (s *TaskService) ToggleCompletion(ctx context.Context, id uint, user *domain.User) (*domain.Task, error) {
	task, err := s.visibleTask(ctx, id, user)
	if err != nil {
		return nil, err
	}

	task.IsCompleted = !task.IsCompleted
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("toggle completion: %w", err)
	}
	return task, nil
}

// Now exposes the service clock so handlers derive task status from the
// same instant the rules do.
func (s *TaskService) Now() time.Time {
	return s.clock.Now()
}

// visibleTask loads a task under the assignee-only rule, collapsing
// "missing" and "not yours" into ErrTaskNotVisible.
func (s *TaskService) visibleTask(ctx context.Context, id uint, user *domain.User) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return nil, domain.ErrTaskNotVisible
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	if !task.VisibleTo(user) {
		return nil, domain.ErrTaskNotVisible
	}
	return task, nil
}
