package memory

import (
	"context"
	"sync"
	"time"

	"synergysphere/internal/entities"
)

type resetEntry struct {
	userID    string
	expiresAt time.Time
}

// ResetTokens keeps password reset tokens in process memory.
type ResetTokens struct {
	now func() time.Time

	mu     sync.Mutex
	tokens map[string]resetEntry
}

// NewResetTokens creates an empty token store.
func NewResetTokens() *ResetTokens {
	return &ResetTokens{
		now:    time.Now,
		tokens: make(map[string]resetEntry),
	}
}

// OnStart is a no-op.
func (r *ResetTokens) OnStart(_ context.Context) error { return nil }

// OnStop is a no-op.
func (r *ResetTokens) OnStop(_ context.Context) error { return nil }

// SaveResetToken stores token for userID until ttl elapses.
func (r *ResetTokens) SaveResetToken(_ context.Context, token, userID string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for k, e := range r.tokens {
		if !now.Before(e.expiresAt) {
			delete(r.tokens, k)
		}
	}
	r.tokens[token] = resetEntry{userID: userID, expiresAt: now.Add(ttl)}
	return nil
}

// ConsumeResetToken returns the owner of token and forgets it.
func (r *ResetTokens) ConsumeResetToken(_ context.Context, token string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.tokens[token]
	delete(r.tokens, token)
	if !ok || !r.now().Before(e.expiresAt) {
		return "", entities.ErrResetTokenInvalid
	}
	return e.userID, nil
}
