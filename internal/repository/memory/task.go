package memory

import (
	"context"
	"sort"

	"synergysphere/internal/entities"
)

// CreateTask stores a task in an existing project.
func (m *Memory) CreateTask(_ context.Context, task entities.Task, policy entities.AssigneePolicy) (*entities.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.projects[task.ProjectID]; !ok {
		return nil, entities.ErrProjectNotFound
	}
	if err := m.checkAssigneeLocked(task.ProjectID, task.AssigneeID(), policy); err != nil {
		return nil, err
	}
	now := m.now()
	task.CreatedAt = now
	task.UpdatedAt = now
	if task.Status == "" {
		task.Status = entities.StatusToDo
	}
	m.seq++
	row := &taskRow{task: task, assigneeID: task.AssigneeID(), seq: m.seq}
	m.tasks[task.ID] = row
	return m.taskLocked(row), nil
}

// GetTask returns a task with assignee populated.
func (m *Memory) GetTask(_ context.Context, taskID string) (*entities.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	row, ok := m.tasks[taskID]
	if !ok {
		return nil, entities.ErrTaskNotFound
	}
	return m.taskLocked(row), nil
}

// ListTasksByProject returns project tasks in creation order.
func (m *Memory) ListTasksByProject(ctx context.Context, projectID string) ([]entities.Task, error) {
	return m.ListTasksByProjects(ctx, []string{projectID})
}

// ListTasksByProjects returns tasks of all given projects in creation order.
func (m *Memory) ListTasksByProjects(_ context.Context, projectIDs []string) ([]entities.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	wanted := make(map[string]struct{}, len(projectIDs))
	for _, id := range projectIDs {
		wanted[id] = struct{}{}
	}

	rows := make([]*taskRow, 0)
	for _, row := range m.tasks {
		if _, ok := wanted[row.task.ProjectID]; ok {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })

	res := make([]entities.Task, 0, len(rows))
	for _, row := range rows {
		res = append(res, *m.taskLocked(row))
	}
	return res, nil
}

// UpdateTask applies a patch in one step.
func (m *Memory) UpdateTask(_ context.Context, taskID string, patch entities.TaskPatch, policy entities.AssigneePolicy) (*entities.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, ok := m.tasks[taskID]
	if !ok {
		return nil, entities.ErrTaskNotFound
	}
	if !patch.ClearAssignee {
		if err := m.checkAssigneeLocked(row.task.ProjectID, patch.AssigneeID, policy); err != nil {
			return nil, err
		}
	}

	t := row.task
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	assignee := row.assigneeID
	switch {
	case patch.ClearAssignee:
		assignee = nil
	case patch.AssigneeID != nil:
		id := *patch.AssigneeID
		assignee = &id
	}
	switch {
	case patch.ClearDueDate:
		t.DueDate = nil
	case patch.DueDate != nil:
		d := *patch.DueDate
		t.DueDate = &d
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	t.UpdatedAt = m.now()

	row.task = t
	row.assigneeID = assignee
	return m.taskLocked(row), nil
}

func (m *Memory) taskLocked(row *taskRow) *entities.Task {
	t := row.task
	t.Assignee = nil
	if row.assigneeID != nil {
		ref := m.refLocked(*row.assigneeID)
		t.Assignee = &ref
	}
	return &t
}

func (m *Memory) checkAssigneeLocked(projectID string, assigneeID *string, policy entities.AssigneePolicy) error {
	if assigneeID == nil {
		return nil
	}
	if policy == entities.AssigneeMember {
		if indexOf(m.projects[projectID].members, *assigneeID) < 0 {
			return entities.ErrAssigneeNotMember
		}
		return nil
	}
	if _, ok := m.users[*assigneeID]; !ok {
		return entities.ErrUserNotFound
	}
	return nil
}
