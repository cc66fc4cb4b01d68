// Package entities contains core business entities.
package entities

import (
	"strings"
	"time"
)

// User is a registered account.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Ref returns the public projection of the user.
func (u User) Ref() UserRef {
	return UserRef{ID: u.ID, Name: u.Name, Email: u.Email}
}

// UserRef is the projection used when a user is embedded in another entity
// (project member, task assignee, message sender).
type UserRef struct {
	ID    string
	Name  string
	Email string
}

// Identity is the authenticated caller of a usecase operation.
type Identity struct {
	UserID string
	Name   string
	Email  string
}

// NormalizeEmail trims and lower-cases an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
