// Package entities contains core business entities.
package entities

import "time"

// Project groups members, tasks and messages. Members keep insertion order;
// the first one is the creator.
type Project struct {
	ID        string
	Name      string
	Members   []UserRef
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasMember reports whether userID is in the member set.
func (p Project) HasMember(userID string) bool {
	for _, m := range p.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

// MemberIDs returns member ids in order.
func (p Project) MemberIDs() []string {
	ids := make([]string, 0, len(p.Members))
	for _, m := range p.Members {
		ids = append(ids, m.ID)
	}
	return ids
}

// ProjectOverview is a dashboard row: a project with its current progress.
type ProjectOverview struct {
	Project  Project
	Progress Progress
}
