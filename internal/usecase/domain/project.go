package domain

import (
	"context"
	"fmt"
	"strings"

	"synergysphere/internal/entities"
	"synergysphere/internal/progress"
)

// CreateProject creates a project with the caller as its first member.
func (u *Usecase) CreateProject(ctx context.Context, caller entities.Identity, name string) (*entities.Project, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if caller.UserID == "" {
		return nil, fmt.Errorf("%w: caller identity is required", entities.ErrUnauthorized)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: project name is required", entities.ErrInvalidArgument)
	}

	res, err := u.repo.CreateProject(ctx, entities.Project{ID: u.newID(), Name: name}, caller.UserID)
	if err != nil {
		return nil, err
	}
	u.log.Infow("project create", "project_id", res.ID, "creator", caller.UserID)
	return res, nil
}

// ListProjects returns the caller's projects with their progress.
func (u *Usecase) ListProjects(ctx context.Context, caller entities.Identity) ([]entities.ProjectOverview, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if caller.UserID == "" {
		return nil, fmt.Errorf("%w: caller identity is required", entities.ErrUnauthorized)
	}

	projects, err := u.repo.ListProjectsByMember(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return []entities.ProjectOverview{}, nil
	}

	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}
	tasks, err := u.repo.ListTasksByProjects(ctx, ids)
	if err != nil {
		return nil, err
	}
	byProject := progress.GroupByProject(tasks)

	res := make([]entities.ProjectOverview, 0, len(projects))
	for _, p := range projects {
		res = append(res, entities.ProjectOverview{
			Project:  p,
			Progress: progress.Aggregate(byProject[p.ID]),
		})
	}
	return res, nil
}

// GetProject returns a project the caller belongs to.
func (u *Usecase) GetProject(ctx context.Context, caller entities.Identity, projectID string) (*entities.Project, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	return u.authorize(ctx, caller, projectID)
}

// RenameProject changes the project name.
func (u *Usecase) RenameProject(ctx context.Context, caller entities.Identity, projectID, name string) (*entities.Project, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if _, err := u.authorize(ctx, caller, projectID); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: project name is required", entities.ErrInvalidArgument)
	}
	return u.repo.RenameProject(ctx, projectID, name)
}

// DeleteProject removes the project with its tasks and messages.
func (u *Usecase) DeleteProject(ctx context.Context, caller entities.Identity, projectID string) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if _, err := u.authorize(ctx, caller, projectID); err != nil {
		return err
	}
	if err := u.repo.DeleteProject(ctx, projectID); err != nil {
		return err
	}
	u.log.Infow("project delete", "project_id", projectID, "by", caller.UserID)
	return nil
}

// ProjectSummary returns progress and per-status counts for one project.
func (u *Usecase) ProjectSummary(ctx context.Context, caller entities.Identity, projectID string) (entities.Summary, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if _, err := u.authorize(ctx, caller, projectID); err != nil {
		return entities.Summary{}, err
	}
	tasks, err := u.repo.ListTasksByProject(ctx, projectID)
	if err != nil {
		return entities.Summary{}, err
	}
	return progress.Summarize(tasks), nil
}
