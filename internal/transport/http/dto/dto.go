// Package dto holds the JSON shapes of the HTTP API.
package dto

import (
	"bytes"
	"encoding/json"
	"time"
)

// ErrorCode is the machine readable error classification.
type ErrorCode string

const (
	NotFound           ErrorCode = "NOT_FOUND"
	Forbidden          ErrorCode = "FORBIDDEN"
	Conflict           ErrorCode = "CONFLICT"
	InvariantViolation ErrorCode = "INVARIANT_VIOLATION"
	InvalidArgument    ErrorCode = "INVALID_ARGUMENT"
	Unauthorized       ErrorCode = "UNAUTHORIZED"
	Internal           ErrorCode = "INTERNAL"
)

// ErrorBody is the inner error object.
type ErrorBody struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// ErrorResponse wraps every non-2xx answer.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// User is the public user projection.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Progress is done/total with a rounded percentage.
type Progress struct {
	Total int `json:"total"`
	Done  int `json:"done"`
	Pct   int `json:"pct"`
}

// Project is a project with its populated members.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Members   []User    `json:"members"`
	Progress  *Progress `json:"progress,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StatusCount is one bucket of the per-status breakdown.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// Summary is the project progress endpoint body.
type Summary struct {
	Progress Progress      `json:"progress"`
	ByStatus []StatusCount `json:"byStatus"`
}

// Task is a task with its populated assignee.
type Task struct {
	ID          string    `json:"id"`
	Project     string    `json:"project"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Assignee    *User     `json:"assignee"`
	DueDate     *string   `json:"dueDate"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Message is a chat message with its populated sender.
type Message struct {
	ID        string    `json:"id"`
	Project   string    `json:"project"`
	Sender    User      `json:"sender"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// AuthResponse is returned by login.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// SignupRequest registers an account.
type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest exchanges credentials for a token.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordRequest asks for a reset link.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest sets a new password with a reset token.
type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

// Project scoped requests carry no validate tags: their fields are checked
// by the usecase after the access gate.

// ProjectRequest creates or renames a project.
type ProjectRequest struct {
	Name string `json:"name"`
}

// AddMemberRequest adds a user by email.
type AddMemberRequest struct {
	Email string `json:"email"`
}

// RemoveMemberRequest removes a user by id.
type RemoveMemberRequest struct {
	UserID string `json:"userId"`
}

// CreateTaskRequest creates a task in Project.
type CreateTaskRequest struct {
	Project     string  `json:"project"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Assignee    *string `json:"assignee"`
	DueDate     *string `json:"dueDate"`
}

// UpdateTaskRequest is a partial task edit. Assignee and DueDate accept an
// explicit null to clear the field.
type UpdateTaskRequest struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	Assignee    NullableString `json:"assignee"`
	DueDate     NullableString `json:"dueDate"`
	Status      *string        `json:"status"`
}

// SetStatusRequest moves a task to another state.
type SetStatusRequest struct {
	Status string `json:"status"`
}

// PostMessageRequest appends to the project chat.
type PostMessageRequest struct {
	Content string `json:"content"`
}

// NullableString tells an absent field apart from an explicit null.
type NullableString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NullableString) UnmarshalJSON(b []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}
