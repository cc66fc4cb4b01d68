// Package entities contains core business entities and errors.
package entities

import (
	"errors"
	"fmt"
)

// Error kinds. Every domain error wraps exactly one of them, so callers
// classify failures with errors.Is against the kind.
var (
	// ErrNotFound signals a referenced entity is absent.
	ErrNotFound = errors.New("not found")
	// ErrForbidden signals the caller is not a member of the project.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict signals a duplicate (membership, email).
	ErrConflict = errors.New("conflict")
	// ErrInvariantViolation signals the operation would break a data invariant.
	ErrInvariantViolation = errors.New("invariant violation")
	// ErrInvalidArgument signals failed input validation.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnauthorized signals missing or bad credentials.
	ErrUnauthorized = errors.New("unauthorized")
)

var (
	// ErrUserNotFound is returned when a user does not exist.
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)
	// ErrProjectNotFound signals missing project.
	ErrProjectNotFound = fmt.Errorf("project %w", ErrNotFound)
	// ErrTaskNotFound signals missing task.
	ErrTaskNotFound = fmt.Errorf("task %w", ErrNotFound)
	// ErrNotMember signals the caller lacks membership in the project.
	ErrNotMember = fmt.Errorf("%w: not a project member", ErrForbidden)
	// ErrAlreadyMember signals the user is already in the member set.
	ErrAlreadyMember = fmt.Errorf("%w: user is already a member", ErrConflict)
	// ErrEmailTaken signals signup with a registered email.
	ErrEmailTaken = fmt.Errorf("%w: user already exists", ErrConflict)
	// ErrLastMember signals an attempt to empty a project's member set.
	ErrLastMember = fmt.Errorf("%w: cannot remove the last member", ErrInvariantViolation)
	// ErrInvalidCredentials signals a failed login.
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	// ErrInvalidToken signals a bad or expired access token.
	ErrInvalidToken = fmt.Errorf("%w: invalid or expired token", ErrUnauthorized)
	// ErrAssigneeNotMember signals an assignee outside the task's project.
	ErrAssigneeNotMember = fmt.Errorf("%w: assignee must be a project member", ErrInvalidArgument)
	// ErrResetTokenInvalid signals an unknown, used or expired reset token.
	ErrResetTokenInvalid = fmt.Errorf("%w: reset token is invalid or expired", ErrInvalidArgument)
)
