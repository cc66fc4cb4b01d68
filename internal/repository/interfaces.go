// Package repository contains repository interfaces for persistence layers.
package repository

import (
	"context"
	"time"

	"synergysphere/internal/entities"
)

// LifecycleInterface describes storage startup/shutdown hooks.
type LifecycleInterface interface {
	OnStart(_ context.Context) error
	OnStop(_ context.Context) error
}

// UserInterface exposes account operations.
type UserInterface interface {
	CreateUser(ctx context.Context, user entities.User) (*entities.User, error)
	GetUser(ctx context.Context, userID string) (*entities.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

// ProjectInterface exposes projects and their member sets. AddMember and
// RemoveMember re-check requester membership and the member invariants
// atomically with the mutation.
type ProjectInterface interface {
	CreateProject(ctx context.Context, project entities.Project, creatorID string) (*entities.Project, error)
	GetProject(ctx context.Context, projectID string) (*entities.Project, error)
	ListProjectsByMember(ctx context.Context, userID string) ([]entities.Project, error)
	RenameProject(ctx context.Context, projectID, name string) (*entities.Project, error)
	DeleteProject(ctx context.Context, projectID string) error
	IsMember(ctx context.Context, projectID, userID string) (bool, error)
	AddMember(ctx context.Context, projectID, requesterID, userID string) (*entities.Project, error)
	RemoveMember(ctx context.Context, projectID, requesterID, userID string) (*entities.Project, error)
}

// TaskInterface exposes task persistence. CreateTask and UpdateTask enforce
// the assignee policy atomically with the write, so a concurrent
// RemoveMember cannot slip in between the check and the assignment.
type TaskInterface interface {
	CreateTask(ctx context.Context, task entities.Task, policy entities.AssigneePolicy) (*entities.Task, error)
	GetTask(ctx context.Context, taskID string) (*entities.Task, error)
	ListTasksByProject(ctx context.Context, projectID string) ([]entities.Task, error)
	ListTasksByProjects(ctx context.Context, projectIDs []string) ([]entities.Task, error)
	UpdateTask(ctx context.Context, taskID string, patch entities.TaskPatch, policy entities.AssigneePolicy) (*entities.Task, error)
}

// MessageInterface exposes project chat persistence.
type MessageInterface interface {
	CreateMessage(ctx context.Context, msg entities.Message) (*entities.Message, error)
	ListMessagesByProject(ctx context.Context, projectID string) ([]entities.Message, error)
}

// ResetTokenInterface stores single-use password reset tokens.
type ResetTokenInterface interface {
	SaveResetToken(ctx context.Context, token, userID string, ttl time.Duration) error
	ConsumeResetToken(ctx context.Context, token string) (string, error)
}
