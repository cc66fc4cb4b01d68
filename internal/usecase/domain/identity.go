package domain

import (
	"context"
	"fmt"

	"synergysphere/internal/entities"

	"github.com/badoux/checkmail"
)

// resolveUserByEmail looks a user up by normalized email.
func (u *Usecase) resolveUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	return u.repo.GetUserByEmail(ctx, normalized)
}

func normalizeEmail(email string) (string, error) {
	normalized := entities.NormalizeEmail(email)
	if normalized == "" {
		return "", fmt.Errorf("%w: email is required", entities.ErrInvalidArgument)
	}
	if err := checkmail.ValidateFormat(normalized); err != nil {
		return "", fmt.Errorf("%w: email format is invalid", entities.ErrInvalidArgument)
	}
	return normalized, nil
}
