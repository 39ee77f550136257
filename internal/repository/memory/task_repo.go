package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dkearns/tasktrack/internal/domain"
)

type taskRepository struct {
	mu     sync.RWMutex
	tasks  map[uint]domain.Task
	nextID uint
}

func NewTaskRepository() *taskRepository {
	return &taskRepository{tasks: make(map[uint]domain.Task), nextID: 1}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if task.ID == 0 {
		task.ID = r.nextID
		r.nextID++
	}
	r.tasks[task.ID] = *task
	return nil
}

func (r *taskRepository) GetByID(ctx context.Context, id, userID uint) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok || task.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return &task, nil
}

func (r *taskRepository) ListByUser(ctx context.Context, userID uint) ([]*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := make([]*domain.Task, 0)
	for _, task := range r.tasks {
		if task.UserID == userID {
			t := task
			tasks = append(tasks, &t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].ID < tasks[j].ID
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
	return tasks, nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.tasks[task.ID]
	if !ok || existing.UserID != task.UserID {
		return domain.ErrNotFound
	}
	r.tasks[task.ID] = *task
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id, userID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok || task.UserID != userID {
		return false, nil
	}
	delete(r.tasks, id)
	return true, nil
}

func (r *taskRepository) Stats(ctx context.Context, userID uint, now time.Time) (*domain.TaskStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var stats domain.TaskStats
	for _, task := range r.tasks {
		if task.UserID != userID {
			continue
		}
		stats.Total++
		if task.Completed {
			stats.Completed++
			continue
		}
		stats.Pending++
		if task.Overdue(now) {
			stats.Overdue++
		}
	}
	return &stats, nil
}
