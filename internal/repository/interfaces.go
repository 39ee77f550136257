package repository

import (
	"context"
	"time"

	"github.com/dkearns/tasktrack/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uint) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// TaskRepository scopes every operation by the owning user. Lookups for a
// task that exists but belongs to someone else report domain.ErrNotFound,
// identically to a task that does not exist at all.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id, userID uint) (*domain.Task, error)
	ListByUser(ctx context.Context, userID uint) ([]*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id, userID uint) (bool, error)
	Stats(ctx context.Context, userID uint, now time.Time) (*domain.TaskStats, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByToken(ctx context.Context, token string) (*domain.Session, error)
	// Delete is idempotent: removing an absent token is not an error.
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type Repositories struct {
	User    UserRepository
	Task    TaskRepository
	Session SessionRepository
}
