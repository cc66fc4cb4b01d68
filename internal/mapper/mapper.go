// Package mapper converts between domain models and transport DTOs.
package mapper

import (
	"synergysphere/internal/entities"
	"synergysphere/internal/transport/http/dto"
)

// ToUser maps a user projection to transport model.
func ToUser(u entities.UserRef) dto.User {
	return dto.User{ID: u.ID, Name: u.Name, Email: u.Email}
}

// ToProgress maps progress to transport model.
func ToProgress(p entities.Progress) dto.Progress {
	return dto.Progress{Total: p.Total, Done: p.Done, Pct: p.Pct}
}

// ToProject maps entities.Project to transport model.
func ToProject(p entities.Project) dto.Project {
	members := make([]dto.User, 0, len(p.Members))
	for _, m := range p.Members {
		members = append(members, ToUser(m))
	}
	return dto.Project{
		ID:        p.ID,
		Name:      p.Name,
		Members:   members,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ToProjectOverviews maps dashboard rows, attaching progress to each project.
func ToProjectOverviews(list []entities.ProjectOverview) []dto.Project {
	res := make([]dto.Project, 0, len(list))
	for _, o := range list {
		p := ToProject(o.Project)
		progress := ToProgress(o.Progress)
		p.Progress = &progress
		res = append(res, p)
	}
	return res
}

// ToSummary maps a project summary to transport model.
func ToSummary(s entities.Summary) dto.Summary {
	byStatus := make([]dto.StatusCount, 0, len(s.ByStatus))
	for _, c := range s.ByStatus {
		byStatus = append(byStatus, dto.StatusCount{Status: string(c.Status), Count: c.Count})
	}
	return dto.Summary{Progress: ToProgress(s.Progress), ByStatus: byStatus}
}

// ToTask maps entities.Task to transport model.
func ToTask(t entities.Task) dto.Task {
	res := dto.Task{
		ID:          t.ID,
		Project:     t.ProjectID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.Assignee != nil {
		a := ToUser(*t.Assignee)
		res.Assignee = &a
	}
	if t.DueDate != nil {
		d := t.DueDate.Format(entities.DueDateLayout)
		res.DueDate = &d
	}
	return res
}

// ToTasks maps a task slice to transport slice.
func ToTasks(list []entities.Task) []dto.Task {
	res := make([]dto.Task, 0, len(list))
	for _, t := range list {
		res = append(res, ToTask(t))
	}
	return res
}

// ToMessage maps entities.Message to transport model.
func ToMessage(m entities.Message) dto.Message {
	return dto.Message{
		ID:        m.ID,
		Project:   m.ProjectID,
		Sender:    ToUser(m.Sender),
		Content:   m.Content,
		Timestamp: m.Timestamp,
	}
}

// ToMessages maps a message slice to transport slice.
func ToMessages(list []entities.Message) []dto.Message {
	res := make([]dto.Message, 0, len(list))
	for _, m := range list {
		res = append(res, ToMessage(m))
	}
	return res
}

// FromCreateTask builds task creation input. Fields are passed through raw
// and checked by the usecase once the caller passed the access gate.
func FromCreateTask(src dto.CreateTaskRequest) entities.NewTask {
	in := entities.NewTask{
		Title:       src.Title,
		Description: src.Description,
	}
	if src.Assignee != nil && *src.Assignee != "" {
		id := *src.Assignee
		in.AssigneeID = &id
	}
	if src.DueDate != nil {
		in.DueDate = *src.DueDate
	}
	return in
}

// FromUpdateTask builds a raw task edit. An explicit null or empty string
// clears the assignee or due date.
func FromUpdateTask(src dto.UpdateTaskRequest) entities.TaskEdit {
	edit := entities.TaskEdit{
		Title:       src.Title,
		Description: src.Description,
		Status:      src.Status,
	}

	if src.Assignee.Set {
		if src.Assignee.Value == nil || *src.Assignee.Value == "" {
			edit.ClearAssignee = true
		} else {
			edit.AssigneeID = src.Assignee.Value
		}
	}

	if src.DueDate.Set {
		if src.DueDate.Value == nil || *src.DueDate.Value == "" {
			edit.ClearDueDate = true
		} else {
			edit.DueDate = src.DueDate.Value
		}
	}
	return edit
}
