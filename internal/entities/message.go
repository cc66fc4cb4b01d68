// Package entities contains core business entities.
package entities

import "time"

// Message is an append-only chat entry in a project.
type Message struct {
	ID        string
	ProjectID string
	Sender    UserRef
	Content   string
	Timestamp time.Time
}
