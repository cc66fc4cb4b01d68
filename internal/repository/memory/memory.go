// Package memory implements the repository in process memory. All
// mutations run under one lock, so membership changes are atomic.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"synergysphere/internal/entities"

	"go.uber.org/zap"
)

type projectRow struct {
	id        string
	name      string
	members   []string
	createdAt time.Time
	updatedAt time.Time
}

type taskRow struct {
	task       entities.Task
	assigneeID *string
	seq        int
}

type messageRow struct {
	msg      entities.Message
	senderID string
}

// Memory is an in-process repository.
type Memory struct {
	log *zap.SugaredLogger
	now func() time.Time

	mu       sync.RWMutex
	users    map[string]entities.User
	emails   map[string]string
	projects map[string]*projectRow
	tasks    map[string]*taskRow
	messages []messageRow
	seq      int
}

// New creates an empty in-memory repository.
func New(log *zap.SugaredLogger) *Memory {
	return &Memory{
		log:      log.Named("repo.memory"),
		now:      func() time.Time { return time.Now().UTC() },
		users:    make(map[string]entities.User),
		emails:   make(map[string]string),
		projects: make(map[string]*projectRow),
		tasks:    make(map[string]*taskRow),
	}
}

// OnStart is a no-op.
func (m *Memory) OnStart(_ context.Context) error {
	m.log.Infow("memory repository ready")
	return nil
}

// OnStop is a no-op.
func (m *Memory) OnStop(_ context.Context) error { return nil }

// CreateUser stores a user; emails are unique case-insensitively.
func (m *Memory) CreateUser(_ context.Context, user entities.User) (*entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(user.Email)
	if _, ok := m.emails[key]; ok {
		return nil, entities.ErrEmailTaken
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = m.now()
	}
	m.users[user.ID] = user
	m.emails[key] = user.ID
	return &user, nil
}

// GetUser returns a user by id.
func (m *Memory) GetUser(_ context.Context, userID string) (*entities.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[userID]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	return &u, nil
}

// GetUserByEmail returns a user by case-insensitive email.
func (m *Memory) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.emails[strings.ToLower(email)]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	u := m.users[id]
	return &u, nil
}

// UpdatePassword replaces the stored hash.
func (m *Memory) UpdatePassword(_ context.Context, userID, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[userID]
	if !ok {
		return entities.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	m.users[userID] = u
	return nil
}

// CreateProject stores a project with the creator as its only member.
func (m *Memory) CreateProject(_ context.Context, project entities.Project, creatorID string) (*entities.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[creatorID]; !ok {
		return nil, entities.ErrUserNotFound
	}
	now := m.now()
	row := &projectRow{
		id:        project.ID,
		name:      project.Name,
		members:   []string{creatorID},
		createdAt: now,
		updatedAt: now,
	}
	m.projects[row.id] = row
	m.log.Infow("project created", "project_id", row.id, "creator", creatorID)
	return m.projectLocked(row), nil
}

// GetProject returns a project with members populated.
func (m *Memory) GetProject(_ context.Context, projectID string) (*entities.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	row, ok := m.projects[projectID]
	if !ok {
		return nil, entities.ErrProjectNotFound
	}
	return m.projectLocked(row), nil
}

// ListProjectsByMember returns the user's projects, newest first.
func (m *Memory) ListProjectsByMember(_ context.Context, userID string) ([]entities.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows := make([]*projectRow, 0)
	for _, row := range m.projects {
		if indexOf(row.members, userID) >= 0 {
			rows = append(rows, row)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].createdAt.Equal(rows[j].createdAt) {
			return rows[i].id > rows[j].id
		}
		return rows[i].createdAt.After(rows[j].createdAt)
	})

	res := make([]entities.Project, 0, len(rows))
	for _, row := range rows {
		res = append(res, *m.projectLocked(row))
	}
	return res, nil
}

// RenameProject updates the project name.
func (m *Memory) RenameProject(_ context.Context, projectID, name string) (*entities.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, ok := m.projects[projectID]
	if !ok {
		return nil, entities.ErrProjectNotFound
	}
	row.name = name
	row.updatedAt = m.now()
	return m.projectLocked(row), nil
}

// DeleteProject removes a project with its tasks and messages.
func (m *Memory) DeleteProject(_ context.Context, projectID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.projects[projectID]; !ok {
		return entities.ErrProjectNotFound
	}
	delete(m.projects, projectID)
	for id, t := range m.tasks {
		if t.task.ProjectID == projectID {
			delete(m.tasks, id)
		}
	}
	kept := m.messages[:0]
	for _, msg := range m.messages {
		if msg.msg.ProjectID != projectID {
			kept = append(kept, msg)
		}
	}
	m.messages = kept
	m.log.Infow("project deleted", "project_id", projectID)
	return nil
}

// IsMember reports membership; an unknown project has no members.
func (m *Memory) IsMember(_ context.Context, projectID, userID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	row, ok := m.projects[projectID]
	if !ok {
		return false, nil
	}
	return indexOf(row.members, userID) >= 0, nil
}

// AddMember appends userID if the requester is a member and userID is not.
func (m *Memory) AddMember(_ context.Context, projectID, requesterID, userID string) (*entities.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, ok := m.projects[projectID]
	if !ok {
		return nil, entities.ErrProjectNotFound
	}
	if indexOf(row.members, requesterID) < 0 {
		return nil, entities.ErrNotMember
	}
	if _, ok := m.users[userID]; !ok {
		return nil, entities.ErrUserNotFound
	}
	if indexOf(row.members, userID) >= 0 {
		return nil, entities.ErrAlreadyMember
	}
	row.members = append(row.members, userID)
	row.updatedAt = m.now()
	m.log.Infow("member added", "project_id", projectID, "user_id", userID)
	return m.projectLocked(row), nil
}

// RemoveMember drops userID unless that would empty the member set.
func (m *Memory) RemoveMember(_ context.Context, projectID, requesterID, userID string) (*entities.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, ok := m.projects[projectID]
	if !ok {
		return nil, entities.ErrProjectNotFound
	}
	if indexOf(row.members, requesterID) < 0 {
		return nil, entities.ErrNotMember
	}
	if len(row.members) == 1 {
		return nil, entities.ErrLastMember
	}
	idx := indexOf(row.members, userID)
	if idx < 0 {
		return m.projectLocked(row), nil
	}
	members := make([]string, 0, len(row.members)-1)
	members = append(members, row.members[:idx]...)
	members = append(members, row.members[idx+1:]...)
	row.members = members
	row.updatedAt = m.now()
	m.log.Infow("member removed", "project_id", projectID, "user_id", userID)
	return m.projectLocked(row), nil
}

func (m *Memory) projectLocked(row *projectRow) *entities.Project {
	members := make([]entities.UserRef, 0, len(row.members))
	for _, id := range row.members {
		members = append(members, m.refLocked(id))
	}
	return &entities.Project{
		ID:        row.id,
		Name:      row.name,
		Members:   members,
		CreatedAt: row.createdAt,
		UpdatedAt: row.updatedAt,
	}
}

func (m *Memory) refLocked(userID string) entities.UserRef {
	if u, ok := m.users[userID]; ok {
		return u.Ref()
	}
	return entities.UserRef{ID: userID}
}

func indexOf(list []string, target string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return -1
}
