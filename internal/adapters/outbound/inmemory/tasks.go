package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sufield/taskhub/internal/domain"
	"github.com/sufield/taskhub/internal/ports"
)

// TaskStore is an in-memory ports.TaskRepository.
type TaskStore struct {
	mu     sync.RWMutex
	nextID uint
	tasks  map[uint]*domain.Task
}

// NewTaskStore creates an empty task store.
func NewTaskStore() *TaskStore {
	return &TaskStore{
		nextID: 1,
		tasks:  make(map[uint]*domain.Task),
	}
}

func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task.ID = s.nextID
	s.nextID++
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	s.tasks[task.ID] = cloneTask(task)
	return nil
}

func (s *TaskStore) FindByID(ctx context.Context, id uint) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return cloneTask(task), nil
}

// ListByAssignee orders by due date ascending with undated tasks last,
// matching the gorm store's NULLS LAST ordering.
func (s *TaskStore) ListByAssignee(ctx context.Context, assigneeID uint, filter ports.TaskFilter) ([]*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var tasks []*domain.Task
	for _, task := range s.tasks {
		if task.AssigneeID != assigneeID {
			continue
		}
		if filter.Priority != nil && task.Priority != *filter.Priority {
			continue
		}
		tasks = append(tasks, cloneTask(task))
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i].DueDate, tasks[j].DueDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
	return tasks, nil
}

func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.tasks[task.ID]
	if !ok {
		return domain.ErrTaskNotFound
	}

	task.CreatedAt = existing.CreatedAt
	task.UpdatedAt = time.Now()
	s.tasks[task.ID] = cloneTask(task)
	return nil
}

func (s *TaskStore) Delete(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(s.tasks, id)
	return nil
}

func cloneTask(t *domain.Task) *domain.Task {
	c := *t
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	return &c
}

var _ ports.TaskRepository = (*TaskStore)(nil)
