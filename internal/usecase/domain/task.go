package domain

import (
	"context"
	"fmt"
	"strings"

	"synergysphere/internal/entities"
)

// CreateTask adds a task in the "To Do" state to a project. The payload is
// validated only after the caller passed the gate.
func (u *Usecase) CreateTask(ctx context.Context, caller entities.Identity, projectID string, in entities.NewTask) (*entities.Task, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	project, err := u.authorize(ctx, caller, projectID)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: task title is required", entities.ErrInvalidArgument)
	}
	task := entities.Task{
		ID:          u.newID(),
		ProjectID:   projectID,
		Title:       title,
		Description: in.Description,
		Status:      entities.StatusToDo,
	}
	if in.DueDate != "" {
		due, err := entities.ParseDueDate(in.DueDate)
		if err != nil {
			return nil, err
		}
		task.DueDate = &due
	}
	if err := u.checkAssignee(ctx, project, in.AssigneeID); err != nil {
		return nil, err
	}
	if in.AssigneeID != nil {
		task.Assignee = &entities.UserRef{ID: *in.AssigneeID}
	}

	res, err := u.repo.CreateTask(ctx, task, u.assigneePolicy())
	if err != nil {
		return nil, err
	}
	u.log.Infow("task create", "task_id", res.ID, "project_id", projectID, "by", caller.UserID)
	return res, nil
}

// ListTasks returns the project's tasks in creation order.
func (u *Usecase) ListTasks(ctx context.Context, caller entities.Identity, projectID string) ([]entities.Task, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if _, err := u.authorize(ctx, caller, projectID); err != nil {
		return nil, err
	}
	return u.repo.ListTasksByProject(ctx, projectID)
}

// SetStatus moves a task to another state. Every transition is allowed,
// including the identity transition.
func (u *Usecase) SetStatus(ctx context.Context, caller entities.Identity, taskID, status string) (*entities.Task, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	task, _, err := u.authorizeTask(ctx, caller, taskID)
	if err != nil {
		return nil, err
	}
	next, err := entities.ParseTaskStatus(status)
	if err != nil {
		return nil, err
	}

	res, err := u.repo.UpdateTask(ctx, taskID, entities.TaskPatch{Status: &next}, u.assigneePolicy())
	if err != nil {
		return nil, err
	}
	u.log.Infow("task status", "task_id", taskID, "from", task.Status, "to", next, "by", caller.UserID)
	return res, nil
}

// UpdateTask applies a partial edit to a task.
func (u *Usecase) UpdateTask(ctx context.Context, caller entities.Identity, taskID string, edit entities.TaskEdit) (*entities.Task, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	task, project, err := u.authorizeTask(ctx, caller, taskID)
	if err != nil {
		return nil, err
	}

	patch, err := parseEdit(edit)
	if err != nil {
		return nil, err
	}
	if err := u.checkAssignee(ctx, project, patch.AssigneeID); err != nil {
		return nil, err
	}
	if patch.Empty() {
		return task, nil
	}

	res, err := u.repo.UpdateTask(ctx, taskID, patch, u.assigneePolicy())
	if err != nil {
		return nil, err
	}
	u.log.Infow("task update", "task_id", taskID, "by", caller.UserID)
	return res, nil
}

func parseEdit(edit entities.TaskEdit) (entities.TaskPatch, error) {
	patch := entities.TaskPatch{
		Description:   edit.Description,
		AssigneeID:    edit.AssigneeID,
		ClearAssignee: edit.ClearAssignee,
		ClearDueDate:  edit.ClearDueDate,
	}

	if edit.Title != nil {
		title := strings.TrimSpace(*edit.Title)
		if title == "" {
			return entities.TaskPatch{}, fmt.Errorf("%w: task title is required", entities.ErrInvalidArgument)
		}
		patch.Title = &title
	}
	if edit.Status != nil {
		s, err := entities.ParseTaskStatus(*edit.Status)
		if err != nil {
			return entities.TaskPatch{}, err
		}
		patch.Status = &s
	}
	if edit.AssigneeID != nil && edit.ClearAssignee {
		return entities.TaskPatch{}, fmt.Errorf("%w: assignee cannot be both set and cleared", entities.ErrInvalidArgument)
	}
	if edit.DueDate != nil {
		if edit.ClearDueDate {
			return entities.TaskPatch{}, fmt.Errorf("%w: due date cannot be both set and cleared", entities.ErrInvalidArgument)
		}
		due, err := entities.ParseDueDate(*edit.DueDate)
		if err != nil {
			return entities.TaskPatch{}, err
		}
		patch.DueDate = &due
	}
	return patch, nil
}

// checkAssignee applies the assignee policy against the project the gate
// loaded. The repository repeats the membership check inside its write.
func (u *Usecase) checkAssignee(ctx context.Context, project *entities.Project, assigneeID *string) error {
	if assigneeID == nil {
		return nil
	}
	if *assigneeID == "" {
		return fmt.Errorf("%w: assignee id is empty", entities.ErrInvalidArgument)
	}
	if u.strictAssignee {
		if !project.HasMember(*assigneeID) {
			return entities.ErrAssigneeNotMember
		}
		return nil
	}
	_, err := u.repo.GetUser(ctx, *assigneeID)
	return err
}

func (u *Usecase) assigneePolicy() entities.AssigneePolicy {
	if u.strictAssignee {
		return entities.AssigneeMember
	}
	return entities.AssigneeAnyUser
}
