package domain

import (
	"context"
	"fmt"

	"synergysphere/internal/entities"
)

// authorize is the access gate in front of every project-scoped operation:
// the project must exist and the caller must be one of its members.
func (u *Usecase) authorize(ctx context.Context, caller entities.Identity, projectID string) (*entities.Project, error) {
	if caller.UserID == "" {
		return nil, fmt.Errorf("%w: caller identity is required", entities.ErrUnauthorized)
	}
	if projectID == "" {
		return nil, fmt.Errorf("%w: project id is required", entities.ErrInvalidArgument)
	}

	project, err := u.repo.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	member, err := u.repo.IsMember(ctx, projectID, caller.UserID)
	if err != nil {
		return nil, err
	}
	if !member {
		u.log.Infow("access denied", "project_id", projectID, "user_id", caller.UserID)
		return nil, entities.ErrNotMember
	}
	return project, nil
}

// authorizeTask gates a task operation through the task's project.
func (u *Usecase) authorizeTask(ctx context.Context, caller entities.Identity, taskID string) (*entities.Task, *entities.Project, error) {
	if taskID == "" {
		return nil, nil, fmt.Errorf("%w: task id is required", entities.ErrInvalidArgument)
	}

	task, err := u.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, nil, err
	}

	project, err := u.authorize(ctx, caller, task.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	return task, project, nil
}
