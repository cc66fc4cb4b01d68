// Package entities contains core business entities.
package entities

import (
	"fmt"
	"time"
)

// DueDateLayout is the calendar date format of task due dates.
const DueDateLayout = "2006-01-02"

// TaskStatus enumerates task workflow states. Any state may follow any other.
type TaskStatus string

const (
	// StatusToDo is the initial state.
	StatusToDo TaskStatus = "To Do"
	// StatusInProgress marks work under way.
	StatusInProgress TaskStatus = "In Progress"
	// StatusDone marks completed work; it can be reopened.
	StatusDone TaskStatus = "Done"
)

// TaskStatuses lists all states in workflow order.
var TaskStatuses = []TaskStatus{StatusToDo, StatusInProgress, StatusDone}

// Valid reports whether s is one of the known states.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// ParseTaskStatus validates a raw status value.
func ParseTaskStatus(raw string) (TaskStatus, error) {
	s := TaskStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, raw)
	}
	return s, nil
}

// Task is a unit of work inside a project.
type Task struct {
	ID          string
	ProjectID   string
	Title       string
	Description string
	Assignee    *UserRef
	DueDate     *time.Time
	Status      TaskStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AssigneeID returns the assignee id or nil.
func (t Task) AssigneeID() *string {
	if t.Assignee == nil {
		return nil
	}
	id := t.Assignee.ID
	return &id
}

// ParseDueDate accepts a calendar date or an RFC 3339 timestamp and keeps
// the date part in UTC.
func ParseDueDate(raw string) (time.Time, error) {
	if d, err := time.Parse(DueDateLayout, raw); err == nil {
		return d, nil
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: dueDate must be YYYY-MM-DD", ErrInvalidArgument)
	}
	y, m, d := ts.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

// AssigneePolicy decides who may be assigned to a task.
type AssigneePolicy int

const (
	// AssigneeMember requires the assignee to be a member of the task's project.
	AssigneeMember AssigneePolicy = iota
	// AssigneeAnyUser accepts any registered user.
	AssigneeAnyUser
)

// NewTask carries creation input as received from a client. DueDate is
// parsed with ParseDueDate; empty means no due date.
type NewTask struct {
	Title       string
	Description string
	AssigneeID  *string
	DueDate     string
}

// TaskEdit is an unparsed partial edit. Nil fields are left untouched;
// ClearAssignee and ClearDueDate unset the optional fields.
type TaskEdit struct {
	Title         *string
	Description   *string
	AssigneeID    *string
	ClearAssignee bool
	DueDate       *string
	ClearDueDate  bool
	Status        *string
}

// TaskPatch is a validated partial task edit. Nil fields are left untouched;
// ClearAssignee and ClearDueDate unset the optional fields.
type TaskPatch struct {
	Title         *string
	Description   *string
	AssigneeID    *string
	ClearAssignee bool
	DueDate       *time.Time
	ClearDueDate  bool
	Status        *TaskStatus
}

// Empty reports whether the patch changes nothing.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.AssigneeID == nil && !p.ClearAssignee &&
		p.DueDate == nil && !p.ClearDueDate && p.Status == nil
}
