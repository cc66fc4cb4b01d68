package postgres

import (
	"context"
	"errors"
	"fmt"

	"synergysphere/internal/entities"

	"github.com/jackc/pgx/v5"
)

const (
	insertProjectQuery          = `INSERT INTO projects(id, name) VALUES ($1, $2) RETURNING created_at, updated_at`
	insertMemberQuery           = `INSERT INTO project_members(project_id, user_id) VALUES ($1, $2) ON CONFLICT (project_id, user_id) DO NOTHING`
	selectProjectQuery          = `SELECT id, name, created_at, updated_at FROM projects WHERE id=$1`
	lockProjectQuery            = `SELECT id FROM projects WHERE id=$1 FOR UPDATE`
	selectMembersQuery          = `
SELECT pm.project_id, u.id, u.name, u.email
FROM project_members pm
JOIN users u ON u.id = pm.user_id
WHERE pm.project_id = ANY($1::text[])
ORDER BY pm.project_id, pm.position`
	selectProjectsByMemberQuery = `
SELECT p.id, p.name, p.created_at, p.updated_at
FROM projects p
JOIN project_members pm ON pm.project_id = p.id
WHERE pm.user_id=$1
ORDER BY p.created_at DESC, p.id DESC`
	renameProjectQuery = `UPDATE projects SET name=$2, updated_at=NOW() WHERE id=$1`
	deleteProjectQuery = `DELETE FROM projects WHERE id=$1`
	touchProjectQuery  = `UPDATE projects SET updated_at=NOW() WHERE id=$1`
	isMemberQuery      = `SELECT EXISTS(SELECT 1 FROM project_members WHERE project_id=$1 AND user_id=$2)`
	userExistsQuery    = `SELECT EXISTS(SELECT 1 FROM users WHERE id=$1)`
	countMembersQuery  = `SELECT COUNT(*) FROM project_members WHERE project_id=$1`
	deleteMemberQuery  = `DELETE FROM project_members WHERE project_id=$1 AND user_id=$2`
)

// CreateProject inserts a project and its creator as the first member.
func (p *Postgres) CreateProject(ctx context.Context, project entities.Project, creatorID string) (*entities.Project, error) {
	var res *entities.Project
	err := p.inTx(ctx, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, insertProjectQuery, project.ID, project.Name).
			Scan(&project.CreatedAt, &project.UpdatedAt); err != nil {
			p.log.Errorw("failed to insert project", "error", err)
			return fmt.Errorf("insert project: %w", err)
		}
		if _, err := tx.Exec(ctx, insertMemberQuery, project.ID, creatorID); err != nil {
			if code, _ := pgErrorCode(err); code == foreignKeyViolation {
				return entities.ErrUserNotFound
			}
			return fmt.Errorf("insert creator: %w", err)
		}
		var err error
		res, err = p.readProject(ctx, tx, selectProjectQuery, project.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	p.log.Infow("project created", "project_id", project.ID, "creator", creatorID)
	return res, nil
}

// GetProject fetches a project with ordered members.
func (p *Postgres) GetProject(ctx context.Context, projectID string) (*entities.Project, error) {
	return p.readProject(ctx, p.db, selectProjectQuery, projectID)
}

// ListProjectsByMember returns projects the user belongs to, newest first.
func (p *Postgres) ListProjectsByMember(ctx context.Context, userID string) ([]entities.Project, error) {
	rows, err := p.db.Query(ctx, selectProjectsByMemberQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]entities.Project, 0)
	ids := make([]string, 0)
	for rows.Next() {
		var pr entities.Project
		if err := rows.Scan(&pr.ID, &pr.Name, &pr.CreatedAt, &pr.UpdatedAt); err != nil {
			p.log.Errorw("failed to scan project", "error", err, "user_id", userID)
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, pr)
		ids = append(ids, pr.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}

	members, err := p.readMembers(ctx, p.db, ids)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		projects[i].Members = members[projects[i].ID]
	}
	return projects, nil
}

// RenameProject updates the project name.
func (p *Postgres) RenameProject(ctx context.Context, projectID, name string) (*entities.Project, error) {
	var res *entities.Project
	err := p.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, renameProjectQuery, projectID, name)
		if err != nil {
			return fmt.Errorf("rename project: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return entities.ErrProjectNotFound
		}
		res, err = p.readProject(ctx, tx, selectProjectQuery, projectID)
		return err
	})
	if err != nil {
		return nil, err
	}

	p.log.Infow("project renamed", "project_id", projectID)
	return res, nil
}

// DeleteProject removes the project; tasks, messages and memberships cascade.
func (p *Postgres) DeleteProject(ctx context.Context, projectID string) error {
	tag, err := p.db.Exec(ctx, deleteProjectQuery, projectID)
	if err != nil {
		p.log.Errorw("failed to delete project", "error", err, "project_id", projectID)
		return fmt.Errorf("delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrProjectNotFound
	}
	p.log.Infow("project deleted", "project_id", projectID)
	return nil
}

// IsMember reports whether userID belongs to the project.
func (p *Postgres) IsMember(ctx context.Context, projectID, userID string) (bool, error) {
	var ok bool
	if err := p.db.QueryRow(ctx, isMemberQuery, projectID, userID).Scan(&ok); err != nil {
		return false, fmt.Errorf("is member: %w", err)
	}
	return ok, nil
}

// AddMember appends userID under a row lock on the project, so concurrent
// adds serialize and a duplicate is rejected instead of overwritten.
func (p *Postgres) AddMember(ctx context.Context, projectID, requesterID, userID string) (*entities.Project, error) {
	var res *entities.Project
	err := p.inTx(ctx, func(tx pgx.Tx) error {
		if err := p.lockProject(ctx, tx, projectID, requesterID); err != nil {
			return err
		}

		var exists bool
		if err := tx.QueryRow(ctx, userExistsQuery, userID).Scan(&exists); err != nil {
			return fmt.Errorf("user lookup: %w", err)
		}
		if !exists {
			return entities.ErrUserNotFound
		}

		tag, err := tx.Exec(ctx, insertMemberQuery, projectID, userID)
		if err != nil {
			p.log.Errorw("failed to insert member", "error", err, "project_id", projectID)
			return fmt.Errorf("insert member: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return entities.ErrAlreadyMember
		}
		if _, err := tx.Exec(ctx, touchProjectQuery, projectID); err != nil {
			return fmt.Errorf("touch project: %w", err)
		}

		res, err = p.readProject(ctx, tx, selectProjectQuery, projectID)
		return err
	})
	if err != nil {
		return nil, err
	}

	p.log.Infow("member added", "project_id", projectID, "user_id", userID)
	return res, nil
}

// RemoveMember deletes userID unless the project has a single member.
func (p *Postgres) RemoveMember(ctx context.Context, projectID, requesterID, userID string) (*entities.Project, error) {
	var res *entities.Project
	err := p.inTx(ctx, func(tx pgx.Tx) error {
		if err := p.lockProject(ctx, tx, projectID, requesterID); err != nil {
			return err
		}

		var count int
		if err := tx.QueryRow(ctx, countMembersQuery, projectID).Scan(&count); err != nil {
			return fmt.Errorf("count members: %w", err)
		}
		if count <= 1 {
			return entities.ErrLastMember
		}

		tag, err := tx.Exec(ctx, deleteMemberQuery, projectID, userID)
		if err != nil {
			return fmt.Errorf("delete member: %w", err)
		}
		if tag.RowsAffected() > 0 {
			if _, err := tx.Exec(ctx, touchProjectQuery, projectID); err != nil {
				return fmt.Errorf("touch project: %w", err)
			}
		}

		res, err = p.readProject(ctx, tx, selectProjectQuery, projectID)
		return err
	})
	if err != nil {
		return nil, err
	}

	p.log.Infow("member removed", "project_id", projectID, "user_id", userID)
	return res, nil
}

// lockProject takes the project row lock and checks the requester's membership.
func (p *Postgres) lockProject(ctx context.Context, tx pgx.Tx, projectID, requesterID string) error {
	var id string
	if err := tx.QueryRow(ctx, lockProjectQuery, projectID).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.ErrProjectNotFound
		}
		p.log.Errorw("failed to lock project", "error", err, "project_id", projectID)
		return fmt.Errorf("lock project: %w", err)
	}

	var member bool
	if err := tx.QueryRow(ctx, isMemberQuery, projectID, requesterID).Scan(&member); err != nil {
		return fmt.Errorf("is member: %w", err)
	}
	if !member {
		return entities.ErrNotMember
	}
	return nil
}

func (p *Postgres) readProject(ctx context.Context, q querier, query, projectID string) (*entities.Project, error) {
	var pr entities.Project
	if err := q.QueryRow(ctx, query, projectID).Scan(&pr.ID, &pr.Name, &pr.CreatedAt, &pr.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrProjectNotFound
		}
		return nil, fmt.Errorf("get project: %w", err)
	}

	members, err := p.readMembers(ctx, q, []string{projectID})
	if err != nil {
		return nil, err
	}
	pr.Members = members[projectID]
	return &pr, nil
}

func (p *Postgres) readMembers(ctx context.Context, q querier, projectIDs []string) (map[string][]entities.UserRef, error) {
	res := make(map[string][]entities.UserRef, len(projectIDs))
	if len(projectIDs) == 0 {
		return res, nil
	}

	rows, err := q.Query(ctx, selectMembersQuery, projectIDs)
	if err != nil {
		p.log.Errorw("failed to select members", "error", err)
		return nil, fmt.Errorf("select members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var projectID string
		var m entities.UserRef
		if err := rows.Scan(&projectID, &m.ID, &m.Name, &m.Email); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		res[projectID] = append(res[projectID], m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate members: %w", err)
	}
	return res, nil
}
