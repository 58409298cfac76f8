package gormstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/sufield/taskhub/internal/domain"
	"github.com/sufield/taskhub/internal/ports"
)

// TaskStore is the gorm-backed ports.TaskRepository.
type TaskStore struct {
	db *gorm.DB
}

// NewTaskStore wraps an open gorm connection.
func NewTaskStore(db *gorm.DB) *TaskStore {
	return &TaskStore{db: db}
}

func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	if err := s.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (s *TaskStore) FindByID(ctx context.Context, id uint) (*domain.Task, error) {
	var task domain.Task
	if err := s.db.WithContext(ctx).First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("select task: %w", err)
	}
	return &task, nil
}

// ListByAssignee orders by due date ascending. NULLS LAST is explicit:
// undated tasks sort after every dated one, so the soonest-due work
// leads the list.
func (s *TaskStore) ListByAssignee(ctx context.Context, assigneeID uint, filter ports.TaskFilter) ([]*domain.Task, error) {
	q := s.db.WithContext(ctx).Where("assignee_id = ?", assigneeID)
	if filter.Priority != nil {
		q = q.Where("priority = ?", *filter.Priority)
	}

	var tasks []*domain.Task
	if err := q.Order("due_date ASC NULLS LAST").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("select tasks: %w", err)
	}
	return tasks, nil
}

// Update saves the whole row. Last-write-wins under concurrency; only
// the single-row write itself is atomic.
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	res := s.db.WithContext(ctx).Model(task).Select("*").Omit("id", "created_at").Updates(task)
	if res.Error != nil {
		return fmt.Errorf("update task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (s *TaskStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&domain.Task{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

var _ ports.TaskRepository = (*TaskStore)(nil)
