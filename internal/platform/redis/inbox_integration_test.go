//go:build integration

package redis_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/tasknest-api/internal/config"
	"github.com/phrazzld/tasknest-api/internal/events"
	"github.com/phrazzld/tasknest-api/internal/platform/logger"
	"github.com/phrazzld/tasknest-api/internal/platform/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestRedis(t *testing.T) *redis.Inbox {
	t.Helper()

	addr := os.Getenv("TASKNEST_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TASKNEST_TEST_REDIS_ADDR not set")
	}

	rdb, err := redis.Open(context.Background(), config.RedisConfig{Addr: addr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	log, _ := logger.NewTestLogger()
	prefix := "tasknest-test:" + uuid.NewString()
	t.Cleanup(func() {
		keys, _ := rdb.Keys(context.Background(), prefix+":*").Result()
		if len(keys) > 0 {
			_ = rdb.Del(context.Background(), keys...).Err()
		}
	})
	return redis.NewInbox(rdb, redis.WithKeyPrefix(prefix), redis.WithSize(3), redis.WithLogger(log))
}

func TestInbox_KeepsNewestNotifications(t *testing.T) {
	inbox := openTestRedis(t)
	ctx := context.Background()
	userID := uuid.New()

	var sent []events.TaskNotification
	for i := 0; i < 5; i++ {
		n := events.TaskNotification{
			UserID:    userID,
			TaskID:    uuid.New(),
			Message:   fmt.Sprintf("Task 't%d' created successfully!", i),
			Timestamp: events.NoDueDate,
		}
		sent = append(sent, n)
		require.NoError(t, inbox.HandleNotification(ctx, n))
	}

	got, err := inbox.Recent(ctx, userID, 10)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, sent[4], got[0])
	assert.Equal(t, sent[3], got[1])
	assert.Equal(t, sent[2], got[2])

	other, err := inbox.Recent(ctx, uuid.New(), 10)
	require.NoError(t, err)
	assert.Empty(t, other)
}
