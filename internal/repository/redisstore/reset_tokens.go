// Package redisstore keeps password reset tokens in Redis with a TTL.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"synergysphere/config"
	"synergysphere/internal/entities"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ResetTokens stores token -> user id entries under a key prefix.
type ResetTokens struct {
	log    *zap.SugaredLogger
	client *redis.Client
	prefix string
}

// New creates a Redis-backed token store. The connection is checked in OnStart.
func New(log *zap.SugaredLogger, cfg config.RedisConfig) *ResetTokens {
	return &ResetTokens{
		log: log.Named("repo.redis"),
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		prefix: cfg.KeyPrefix,
	}
}

// OnStart pings the server.
func (r *ResetTokens) OnStart(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	r.log.Infow("redis ready", "addr", r.client.Options().Addr)
	return nil
}

// OnStop closes the client.
func (r *ResetTokens) OnStop(_ context.Context) error {
	return r.client.Close()
}

// SaveResetToken stores the token with an expiry.
func (r *ResetTokens) SaveResetToken(ctx context.Context, token, userID string, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.prefix+token, userID, ttl).Err(); err != nil {
		r.log.Errorw("failed to save reset token", "error", err, "user_id", userID)
		return fmt.Errorf("save reset token: %w", err)
	}
	return nil
}

// ConsumeResetToken atomically reads and deletes the token.
func (r *ResetTokens) ConsumeResetToken(ctx context.Context, token string) (string, error) {
	userID, err := r.client.GetDel(ctx, r.prefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", entities.ErrResetTokenInvalid
		}
		return "", fmt.Errorf("consume reset token: %w", err)
	}
	return userID, nil
}
