package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/dkearns/tasktrack/internal/domain"
	"github.com/dkearns/tasktrack/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_DuplicateIdentity(t *testing.T) {
	repo := memory.NewUserRepository()
	ctx := context.Background()

	first := &domain.User{Username: "alice", Email: "a@x.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, first))
	assert.NotZero(t, first.ID)

	tests := []struct {
		name string
		user *domain.User
	}{
		{
			name: "duplicate username",
			user: &domain.User{Username: "alice", Email: "other@x.com", PasswordHash: "hash"},
		},
		{
			name: "duplicate email",
			user: &domain.User{Username: "other", Email: "a@x.com", PasswordHash: "hash"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(ctx, tt.user)
			assert.ErrorIs(t, err, domain.ErrDuplicateIdentity)
		})
	}
}

func TestUserRepository_Lookups(t *testing.T) {
	repo := memory.NewUserRepository()
	ctx := context.Background()

	user := &domain.User{Username: "alice", Email: "a@x.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, user))

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	byName, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	byEmail, err := repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = repo.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTaskRepository_OwnershipScoping(t *testing.T) {
	repo := memory.NewTaskRepository()
	ctx := context.Background()

	task := &domain.Task{UserID: 1, Title: "mine", Priority: domain.PriorityMedium}
	require.NoError(t, repo.Create(ctx, task))

	got, err := repo.GetByID(ctx, task.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "mine", got.Title)

	// Another user's lookup is indistinguishable from a missing task
	_, err = repo.GetByID(ctx, task.ID, 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	deleted, err := repo.Delete(ctx, task.ID, 2)
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = repo.Delete(ctx, task.ID, 1)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = repo.GetByID(ctx, task.ID, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTaskRepository_ListOrdering(t *testing.T) {
	repo := memory.NewTaskRepository()
	ctx := context.Background()

	base := time.Now()
	for i, title := range []string{"first", "second", "third"} {
		task := &domain.Task{
			UserID:    1,
			Title:     title,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, repo.Create(ctx, task))
	}
	require.NoError(t, repo.Create(ctx, &domain.Task{UserID: 2, Title: "other user"}))

	tasks, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "first", tasks[0].Title)
	assert.Equal(t, "second", tasks[1].Title)
	assert.Equal(t, "third", tasks[2].Title)
}

func TestTaskRepository_Stats(t *testing.T) {
	repo := memory.NewTaskRepository()
	ctx := context.Background()
	now := time.Now()

	yesterday := now.AddDate(0, 0, -1).Format(domain.DueDateLayout)
	tomorrow := now.AddDate(0, 0, 1).Format(domain.DueDateLayout)

	tasks := []*domain.Task{
		{UserID: 1, Title: "done", Completed: true},
		{UserID: 1, Title: "open"},
		{UserID: 1, Title: "late", DueDate: yesterday},
		{UserID: 1, Title: "future", DueDate: tomorrow},
		{UserID: 1, Title: "done late", DueDate: yesterday, Completed: true},
		{UserID: 2, Title: "someone else", DueDate: yesterday},
	}
	for _, task := range tasks {
		require.NoError(t, repo.Create(ctx, task))
	}

	stats, err := repo.Stats(ctx, 1, now)
	require.NoError(t, err)

	assert.Equal(t, int64(5), stats.Total)
	assert.Equal(t, int64(2), stats.Completed)
	assert.Equal(t, int64(3), stats.Pending)
	assert.Equal(t, int64(1), stats.Overdue)
	assert.Equal(t, stats.Total, stats.Pending+stats.Completed)
	assert.LessOrEqual(t, stats.Overdue, stats.Pending)
}

func TestSessionRepository_Lifecycle(t *testing.T) {
	repo := memory.NewSessionRepository()
	ctx := context.Background()
	now := time.Now()

	session := &domain.Session{
		Token:     "token-1",
		UserID:    1,
		ExpiresAt: now.Add(time.Hour),
		CreatedAt: now,
	}
	require.NoError(t, repo.Create(ctx, session))

	got, err := repo.GetByToken(ctx, "token-1")
	require.NoError(t, err)
	assert.Equal(t, uint(1), got.UserID)
	assert.False(t, got.Expired(now))

	require.NoError(t, repo.Delete(ctx, "token-1"))
	_, err = repo.GetByToken(ctx, "token-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Deleting an absent token is a no-op success
	require.NoError(t, repo.Delete(ctx, "token-1"))
}

func TestSessionRepository_DeleteExpired(t *testing.T) {
	repo := memory.NewSessionRepository()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.Create(ctx, &domain.Session{
		Token:     "stale",
		UserID:    1,
		ExpiresAt: now.Add(-time.Minute),
	}))
	require.NoError(t, repo.Create(ctx, &domain.Session{
		Token:     "live",
		UserID:    1,
		ExpiresAt: now.Add(time.Hour),
	}))

	removed, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = repo.GetByToken(ctx, "stale")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.GetByToken(ctx, "live")
	assert.NoError(t, err)
}
