package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"synergysphere/internal/entities"

	"github.com/jackc/pgx/v5"
)

const (
	insertTaskQuery = `
INSERT INTO tasks(id, project_id, title, description, assignee_id, due_date, status)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	selectTaskColumns = `
SELECT t.id, t.project_id, t.title, t.description, t.due_date, t.status, t.created_at, t.updated_at,
       u.id, u.name, u.email
FROM tasks t
LEFT JOIN users u ON u.id = t.assignee_id`
	selectTaskQuery            = selectTaskColumns + ` WHERE t.id=$1`
	selectTasksByProjectsQuery = selectTaskColumns + ` WHERE t.project_id = ANY($1::text[]) ORDER BY t.created_at, t.id`
	updateTaskQuery            = `
UPDATE tasks SET
    title       = COALESCE($2::text, title),
    description = COALESCE($3::text, description),
    assignee_id = CASE WHEN $4::boolean THEN NULL ELSE COALESCE($5::text, assignee_id) END,
    due_date    = CASE WHEN $6::boolean THEN NULL ELSE COALESCE($7::date, due_date) END,
    status      = COALESCE($8::text, status),
    updated_at  = NOW()
WHERE id=$1`
	taskProjectQuery        = `SELECT project_id FROM tasks WHERE id=$1`
	shareProjectQuery       = `SELECT id FROM projects WHERE id=$1 FOR SHARE`
	tasksProjectForeignKey  = "tasks_project_id_fkey"
	tasksAssigneeForeignKey = "tasks_assignee_id_fkey"
)

// CreateTask inserts a task and reads it back with the assignee populated.
func (p *Postgres) CreateTask(ctx context.Context, task entities.Task, policy entities.AssigneePolicy) (*entities.Task, error) {
	if task.Status == "" {
		task.Status = entities.StatusToDo
	}

	var res *entities.Task
	err := p.inTx(ctx, func(tx pgx.Tx) error {
		if err := p.checkAssignee(ctx, tx, task.ProjectID, task.AssigneeID(), policy); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, insertTaskQuery,
			task.ID, task.ProjectID, task.Title, task.Description, task.AssigneeID(), dateParam(task.DueDate), string(task.Status))
		if err != nil {
			if fkErr := taskForeignKeyError(err); fkErr != nil {
				return fkErr
			}
			p.log.Errorw("failed to insert task", "error", err, "project_id", task.ProjectID)
			return fmt.Errorf("insert task: %w", err)
		}
		res, err = p.readTask(ctx, tx, task.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	p.log.Infow("task created", "task_id", task.ID, "project_id", task.ProjectID)
	return res, nil
}

// GetTask fetches a task by id.
func (p *Postgres) GetTask(ctx context.Context, taskID string) (*entities.Task, error) {
	return p.readTask(ctx, p.db, taskID)
}

// ListTasksByProject returns a project's tasks in creation order.
func (p *Postgres) ListTasksByProject(ctx context.Context, projectID string) ([]entities.Task, error) {
	return p.ListTasksByProjects(ctx, []string{projectID})
}

// ListTasksByProjects returns tasks of several projects in one query.
func (p *Postgres) ListTasksByProjects(ctx context.Context, projectIDs []string) ([]entities.Task, error) {
	tasks := make([]entities.Task, 0)
	if len(projectIDs) == 0 {
		return tasks, nil
	}

	rows, err := p.db.Query(ctx, selectTasksByProjectsQuery, projectIDs)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			p.log.Errorw("failed to scan task", "error", err)
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTask applies a patch as a single UPDATE statement.
func (p *Postgres) UpdateTask(ctx context.Context, taskID string, patch entities.TaskPatch, policy entities.AssigneePolicy) (*entities.Task, error) {
	var status *string
	if patch.Status != nil {
		s := string(*patch.Status)
		status = &s
	}

	var res *entities.Task
	err := p.inTx(ctx, func(tx pgx.Tx) error {
		if patch.AssigneeID != nil && !patch.ClearAssignee && policy == entities.AssigneeMember {
			var projectID string
			if err := tx.QueryRow(ctx, taskProjectQuery, taskID).Scan(&projectID); err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return entities.ErrTaskNotFound
				}
				return fmt.Errorf("task project: %w", err)
			}
			if err := p.checkAssignee(ctx, tx, projectID, patch.AssigneeID, policy); err != nil {
				return err
			}
		}

		tag, err := tx.Exec(ctx, updateTaskQuery, taskID,
			patch.Title, patch.Description,
			patch.ClearAssignee, patch.AssigneeID,
			patch.ClearDueDate, dateParam(patch.DueDate),
			status,
		)
		if err != nil {
			if fkErr := taskForeignKeyError(err); fkErr != nil {
				return fkErr
			}
			p.log.Errorw("failed to update task", "error", err, "task_id", taskID)
			return fmt.Errorf("update task: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return entities.ErrTaskNotFound
		}
		res, err = p.readTask(ctx, tx, taskID)
		return err
	})
	if err != nil {
		return nil, err
	}

	p.log.Infow("task updated", "task_id", taskID, "status", res.Status)
	return res, nil
}

// checkAssignee holds a share lock on the project row, which RemoveMember's
// FOR UPDATE waits on, while it checks the assignee's membership.
func (p *Postgres) checkAssignee(ctx context.Context, tx pgx.Tx, projectID string, assigneeID *string, policy entities.AssigneePolicy) error {
	if assigneeID == nil || policy != entities.AssigneeMember {
		return nil
	}

	var id string
	if err := tx.QueryRow(ctx, shareProjectQuery, projectID).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.ErrProjectNotFound
		}
		return fmt.Errorf("lock project: %w", err)
	}

	var member bool
	if err := tx.QueryRow(ctx, isMemberQuery, projectID, *assigneeID).Scan(&member); err != nil {
		return fmt.Errorf("assignee membership: %w", err)
	}
	if !member {
		return entities.ErrAssigneeNotMember
	}
	return nil
}

func (p *Postgres) readTask(ctx context.Context, q querier, taskID string) (*entities.Task, error) {
	t, err := scanTask(q.QueryRow(ctx, selectTaskQuery, taskID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, err
	}
	return t, nil
}

func scanTask(row pgx.Row) (*entities.Task, error) {
	var (
		t                       entities.Task
		status                  string
		assigneeID, name, email *string
	)
	if err := row.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.DueDate, &status,
		&t.CreatedAt, &t.UpdatedAt, &assigneeID, &name, &email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}
	t.Status = entities.TaskStatus(status)
	if assigneeID != nil {
		t.Assignee = &entities.UserRef{ID: *assigneeID, Name: deref(name), Email: deref(email)}
	}
	return &t, nil
}

func taskForeignKeyError(err error) error {
	code, constraint := pgErrorCode(err)
	if code != foreignKeyViolation {
		return nil
	}
	switch constraint {
	case tasksProjectForeignKey:
		return entities.ErrProjectNotFound
	case tasksAssigneeForeignKey:
		return entities.ErrUserNotFound
	}
	return nil
}

// dateParam truncates a due date to its calendar day.
func dateParam(d *time.Time) *time.Time {
	if d == nil {
		return nil
	}
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return &day
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
