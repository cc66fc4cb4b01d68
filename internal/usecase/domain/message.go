package domain

import (
	"context"
	"fmt"
	"strings"

	"synergysphere/internal/entities"
)

// ListMessages returns the project chat, oldest first.
func (u *Usecase) ListMessages(ctx context.Context, caller entities.Identity, projectID string) ([]entities.Message, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if _, err := u.authorize(ctx, caller, projectID); err != nil {
		return nil, err
	}
	return u.repo.ListMessagesByProject(ctx, projectID)
}

// PostMessage appends a message from the caller to the project chat.
func (u *Usecase) PostMessage(ctx context.Context, caller entities.Identity, projectID, content string) (*entities.Message, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if _, err := u.authorize(ctx, caller, projectID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: message content is required", entities.ErrInvalidArgument)
	}

	return u.repo.CreateMessage(ctx, entities.Message{
		ID:        u.newID(),
		ProjectID: projectID,
		Sender:    entities.UserRef{ID: caller.UserID},
		Content:   content,
	})
}
