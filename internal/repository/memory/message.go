package memory

import (
	"context"

	"synergysphere/internal/entities"
)

// CreateMessage appends a chat message.
func (m *Memory) CreateMessage(_ context.Context, msg entities.Message) (*entities.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.projects[msg.ProjectID]; !ok {
		return nil, entities.ErrProjectNotFound
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = m.now()
	}
	row := messageRow{msg: msg, senderID: msg.Sender.ID}
	m.messages = append(m.messages, row)

	res := row.msg
	res.Sender = m.refLocked(row.senderID)
	return &res, nil
}

// ListMessagesByProject returns messages oldest first.
func (m *Memory) ListMessagesByProject(_ context.Context, projectID string) ([]entities.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	res := make([]entities.Message, 0)
	for _, row := range m.messages {
		if row.msg.ProjectID != projectID {
			continue
		}
		msg := row.msg
		msg.Sender = m.refLocked(row.senderID)
		res = append(res, msg)
	}
	return res, nil
}
