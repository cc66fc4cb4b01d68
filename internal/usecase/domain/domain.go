package domain

import (
	"context"
	"time"

	"synergysphere/internal/entities"
	"synergysphere/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenIssuer signs and verifies access tokens.
type TokenIssuer interface {
	Issue(user entities.User) (string, error)
	Parse(token string) (string, error)
}

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) (bool, error)
}

// Notifier delivers a message to a user's email.
type Notifier interface {
	Notify(ctx context.Context, email, subject, body string) error
}

// Usecase struct implements all usecase interfaces.
type Usecase struct {
	ctx     context.Context
	log     *zap.SugaredLogger
	repo    repository.Repository
	timeout time.Duration

	tokens         TokenIssuer
	hasher         PasswordHasher
	resets         repository.ResetTokenInterface
	notifier       Notifier
	resetTTL       time.Duration
	resetURL       string
	strictAssignee bool
	newID          func() string
}

// Option configures optional collaborators of the usecase layer.
type Option func(*Usecase)

// WithTokens sets the access token issuer.
func WithTokens(t TokenIssuer) Option { return func(u *Usecase) { u.tokens = t } }

// WithHasher sets the password hasher.
func WithHasher(h PasswordHasher) Option { return func(u *Usecase) { u.hasher = h } }

// WithPasswordReset sets the reset token store, its TTL and the link prefix
// mailed to users.
func WithPasswordReset(store repository.ResetTokenInterface, n Notifier, ttl time.Duration, url string) Option {
	return func(u *Usecase) {
		u.resets = store
		u.notifier = n
		u.resetTTL = ttl
		u.resetURL = url
	}
}

// WithStrictAssignee requires task assignees to be project members.
func WithStrictAssignee(strict bool) Option { return func(u *Usecase) { u.strictAssignee = strict } }

// WithIDGenerator replaces uuid ids, mostly for tests.
func WithIDGenerator(fn func() string) Option { return func(u *Usecase) { u.newID = fn } }

// New constructs a new usecase layer with its dependencies.
func New(
	log *zap.SugaredLogger,
	ctx context.Context,
	repo repository.Repository,
	timeout time.Duration,
	opts ...Option,
) *Usecase {
	u := &Usecase{
		ctx:            ctx,
		log:            log,
		repo:           repo,
		timeout:        timeout,
		strictAssignee: true,
		resetTTL:       30 * time.Minute,
		newID:          uuid.NewString,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
