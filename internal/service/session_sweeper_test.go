package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/dkearns/tasktrack/internal/domain"
	"github.com/dkearns/tasktrack/internal/repository/memory"
	"github.com/dkearns/tasktrack/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSessionSweeper_ReclaimsExpired(t *testing.T) {
	repo := memory.NewSessionRepository()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, repo.Create(ctx, &domain.Session{
		Token:     "stale",
		UserID:    1,
		ExpiresAt: time.Now().Add(-time.Minute),
	}))
	require.NoError(t, repo.Create(ctx, &domain.Session{
		Token:     "live",
		UserID:    1,
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	service.StartSessionSweeper(ctx, repo, 10*time.Millisecond, zap.NewNop())

	assert.Eventually(t, func() bool {
		_, err := repo.GetByToken(ctx, "stale")
		return err != nil
	}, time.Second, 10*time.Millisecond, "expired session was not reclaimed")

	_, err := repo.GetByToken(ctx, "live")
	assert.NoError(t, err)
}
