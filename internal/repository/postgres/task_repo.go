package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/dkearns/tasktrack/internal/domain"
	"gorm.io/gorm"
)

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *taskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepository) GetByID(ctx context.Context, id, userID uint) (*domain.Task, error) {
	var task domain.Task
	err := r.db.WithContext(ctx).
		First(&task, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) ListByUser(ctx context.Context, userID uint) ([]*domain.Task, error) {
	var tasks []*domain.Task
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	// Save writes all fields, including zero values, so partial-update
	// merging happens in the service before the task reaches here.
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *taskRepository) Delete(ctx context.Context, id, userID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Delete(&domain.Task{}, "id = ? AND user_id = ?", id, userID)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *taskRepository) Stats(ctx context.Context, userID uint, now time.Time) (*domain.TaskStats, error) {
	var stats domain.TaskStats
	err := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Where("user_id = ?", userID).
		Select("COUNT(*) AS total, COUNT(*) FILTER (WHERE completed) AS completed").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	stats.Pending = stats.Total - stats.Completed

	// Due dates live in the database as raw strings; parse them here
	// rather than casting in SQL so a malformed value cannot fail the query.
	var open []*domain.Task
	err = r.db.WithContext(ctx).
		Where("user_id = ? AND completed = false AND due_date <> ''", userID).
		Find(&open).Error
	if err != nil {
		return nil, err
	}
	for _, task := range open {
		if task.Overdue(now) {
			stats.Overdue++
		}
	}

	return &stats, nil
}
