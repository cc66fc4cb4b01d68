package domain

import (
	"context"
	"fmt"

	"synergysphere/internal/entities"
)

// AddMember adds the user registered under email to the project.
func (u *Usecase) AddMember(ctx context.Context, caller entities.Identity, projectID, email string) (*entities.Project, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	project, err := u.authorize(ctx, caller, projectID)
	if err != nil {
		return nil, err
	}

	user, err := u.resolveUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if project.HasMember(user.ID) {
		return nil, entities.ErrAlreadyMember
	}

	res, err := u.repo.AddMember(ctx, projectID, caller.UserID, user.ID)
	if err != nil {
		return nil, err
	}
	u.log.Infow("member added", "project_id", projectID, "user_id", user.ID, "by", caller.UserID)
	return res, nil
}

// RemoveMember removes userID from the project. Removing a non-member is a
// no-op; the last member can never be removed.
func (u *Usecase) RemoveMember(ctx context.Context, caller entities.Identity, projectID, userID string) (*entities.Project, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if _, err := u.authorize(ctx, caller, projectID); err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", entities.ErrInvalidArgument)
	}

	res, err := u.repo.RemoveMember(ctx, projectID, caller.UserID, userID)
	if err != nil {
		return nil, err
	}
	u.log.Infow("member removed", "project_id", projectID, "user_id", userID, "by", caller.UserID)
	return res, nil
}

// IsMember reports whether userID belongs to the project.
func (u *Usecase) IsMember(ctx context.Context, projectID, userID string) (bool, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if projectID == "" || userID == "" {
		return false, nil
	}
	return u.repo.IsMember(ctx, projectID, userID)
}
