package redisstore

import (
	"context"
	"testing"
	"time"

	"synergysphere/config"
	"synergysphere/internal/entities"

	"github.com/go-redis/redis/v8"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestResetTokensIntegration(t *testing.T) {
	ctx := context.Background()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err)

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "7-alpine",
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Purge(resource) })

	addr := "localhost:" + resource.GetPort("6379/tcp")
	require.NoError(t, pool.Retry(func() error {
		c := redis.NewClient(&redis.Options{Addr: addr})
		defer func() { _ = c.Close() }()
		return c.Ping(ctx).Err()
	}))

	store := New(zap.NewNop().Sugar(), config.RedisConfig{Enabled: true, Addr: addr, KeyPrefix: "test:reset:"})
	require.NoError(t, store.OnStart(ctx))
	t.Cleanup(func() { _ = store.OnStop(ctx) })

	require.NoError(t, store.SaveResetToken(ctx, "tok", "u1", time.Minute))

	userID, err := store.ConsumeResetToken(ctx, "tok")
	require.NoError(t, err)
	require.Equal(t, "u1", userID)

	_, err = store.ConsumeResetToken(ctx, "tok")
	require.ErrorIs(t, err, entities.ErrResetTokenInvalid)

	require.NoError(t, store.SaveResetToken(ctx, "short", "u1", time.Second))
	time.Sleep(1500 * time.Millisecond)
	_, err = store.ConsumeResetToken(ctx, "short")
	require.ErrorIs(t, err, entities.ErrResetTokenInvalid)
}
