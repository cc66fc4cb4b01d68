package postgres

import (
	"context"
	"errors"
	"fmt"

	"synergysphere/internal/entities"

	"github.com/jackc/pgx/v5"
)

const (
	insertUserQuery        = `INSERT INTO users(id, name, email, password_hash) VALUES ($1, $2, $3, $4) RETURNING created_at`
	selectUserQuery        = `SELECT id, name, email, password_hash, created_at FROM users WHERE id=$1`
	selectUserByEmailQuery = `SELECT id, name, email, password_hash, created_at FROM users WHERE LOWER(email)=LOWER($1)`
	updatePasswordQuery    = `UPDATE users SET password_hash=$2 WHERE id=$1`
)

// CreateUser inserts a user; a duplicate email maps to ErrEmailTaken.
func (p *Postgres) CreateUser(ctx context.Context, user entities.User) (*entities.User, error) {
	err := p.db.QueryRow(ctx, insertUserQuery, user.ID, user.Name, user.Email, user.PasswordHash).
		Scan(&user.CreatedAt)
	if err != nil {
		if code, _ := pgErrorCode(err); code == uniqueViolation {
			return nil, entities.ErrEmailTaken
		}
		p.log.Errorw("failed to insert user", "error", err)
		return nil, fmt.Errorf("insert user: %w", err)
	}

	p.log.Infow("user created", "user_id", user.ID)
	return &user, nil
}

// GetUser fetches a user by id.
func (p *Postgres) GetUser(ctx context.Context, userID string) (*entities.User, error) {
	return p.scanUser(p.db.QueryRow(ctx, selectUserQuery, userID))
}

// GetUserByEmail fetches a user by case-insensitive email.
func (p *Postgres) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	return p.scanUser(p.db.QueryRow(ctx, selectUserByEmailQuery, email))
}

// UpdatePassword stores a new password hash.
func (p *Postgres) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	tag, err := p.db.Exec(ctx, updatePasswordQuery, userID, passwordHash)
	if err != nil {
		p.log.Errorw("failed to update password", "error", err, "user_id", userID)
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrUserNotFound
	}
	p.log.Infow("password updated", "user_id", userID)
	return nil
}

func (p *Postgres) scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}
