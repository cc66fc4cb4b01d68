// Package repository provides factory for repositories.
package repository

import (
	"context"
	"fmt"

	"synergysphere/config"
	"synergysphere/internal/repository/memory"
	"synergysphere/internal/repository/postgres"
	"synergysphere/internal/repository/redisstore"

	"go.uber.org/zap"
)

// Repository aggregates all persistence interfaces.
type Repository interface {
	LifecycleInterface
	UserInterface
	ProjectInterface
	TaskInterface
	MessageInterface
}

// ResetTokenStore is a reset token store with its own lifecycle.
type ResetTokenStore interface {
	LifecycleInterface
	ResetTokenInterface
}

// New constructs repository backend by name.
func New(ctx context.Context, name string, log *zap.SugaredLogger, cfg *config.Config) (Repository, error) {
	switch name {
	case "postgres":
		return postgres.New(ctx, log, cfg), nil
	case "memory":
		return memory.New(log), nil
	default:
		return nil, fmt.Errorf("unknown repo backend: %s", name)
	}
}

// NewResetTokens picks redis when enabled and the in-process store otherwise.
func NewResetTokens(log *zap.SugaredLogger, cfg *config.Config) ResetTokenStore {
	if cfg.Redis.Enabled {
		return redisstore.New(log, cfg.Redis)
	}
	return memory.NewResetTokens()
}
