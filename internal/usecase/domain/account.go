package domain

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"synergysphere/internal/entities"
)

const (
	minPasswordLen = 6
	resetTokenSize = 32
)

var errAuthNotConfigured = errors.New("authentication is not configured")

// Signup registers a new account.
func (u *Usecase) Signup(ctx context.Context, name, email, password string) (*entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if u.hasher == nil {
		return nil, errAuthNotConfigured
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", entities.ErrInvalidArgument)
	}
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if err := checkPassword(password); err != nil {
		return nil, err
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	res, err := u.repo.CreateUser(ctx, entities.User{
		ID:           u.newID(),
		Name:         name,
		Email:        normalized,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}
	u.log.Infow("user signup", "user_id", res.ID)
	return res, nil
}

// Login checks credentials and issues an access token.
func (u *Usecase) Login(ctx context.Context, email, password string) (string, *entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if u.hasher == nil || u.tokens == nil {
		return "", nil, errAuthNotConfigured
	}
	normalized := entities.NormalizeEmail(email)
	if normalized == "" || password == "" {
		return "", nil, fmt.Errorf("%w: email and password are required", entities.ErrInvalidArgument)
	}

	user, err := u.repo.GetUserByEmail(ctx, normalized)
	if errors.Is(err, entities.ErrNotFound) {
		return "", nil, entities.ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	ok, err := u.hasher.Compare(user.PasswordHash, password)
	if err != nil {
		return "", nil, fmt.Errorf("compare password: %w", err)
	}
	if !ok {
		return "", nil, entities.ErrInvalidCredentials
	}

	token, err := u.tokens.Issue(*user)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

// Authenticate resolves an access token into the caller identity.
func (u *Usecase) Authenticate(ctx context.Context, token string) (entities.Identity, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if u.tokens == nil {
		return entities.Identity{}, errAuthNotConfigured
	}
	userID, err := u.tokens.Parse(token)
	if err != nil {
		return entities.Identity{}, err
	}

	user, err := u.repo.GetUser(ctx, userID)
	if errors.Is(err, entities.ErrNotFound) {
		return entities.Identity{}, entities.ErrInvalidToken
	}
	if err != nil {
		return entities.Identity{}, err
	}
	return entities.Identity{UserID: user.ID, Name: user.Name, Email: user.Email}, nil
}

// ForgotPassword mails a single-use reset link. Unknown emails succeed
// silently so the endpoint does not reveal which addresses are registered.
func (u *Usecase) ForgotPassword(ctx context.Context, email string) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if u.resets == nil {
		return errAuthNotConfigured
	}
	user, err := u.resolveUserByEmail(ctx, email)
	if errors.Is(err, entities.ErrNotFound) {
		u.log.Infow("password reset for unknown email")
		return nil
	}
	if err != nil {
		return err
	}

	token, err := newResetToken()
	if err != nil {
		return err
	}
	if err := u.resets.SaveResetToken(ctx, token, user.ID, u.resetTTL); err != nil {
		return fmt.Errorf("save reset token: %w", err)
	}

	if u.notifier != nil {
		body := fmt.Sprintf(
			"Hello %s,\n\nUse the link below to reset your password. It expires in %s.\n\n%s%s\n",
			user.Name, u.resetTTL, u.resetURL, token,
		)
		if err := u.notifier.Notify(ctx, user.Email, "Reset your password", body); err != nil {
			u.log.Warnw("reset mail failed", "user_id", user.ID, "err", err)
		}
	}
	u.log.Infow("password reset requested", "user_id", user.ID)
	return nil
}

// ResetPassword consumes a reset token and stores the new password.
func (u *Usecase) ResetPassword(ctx context.Context, token, password string) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if u.resets == nil || u.hasher == nil {
		return errAuthNotConfigured
	}
	if token == "" {
		return entities.ErrResetTokenInvalid
	}
	if err := checkPassword(password); err != nil {
		return err
	}

	userID, err := u.resets.ConsumeResetToken(ctx, token)
	if err != nil {
		return err
	}
	hash, err := u.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := u.repo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}
	u.log.Infow("password reset", "user_id", userID)
	return nil
}

func checkPassword(password string) error {
	if len(password) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", entities.ErrInvalidArgument, minPasswordLen)
	}
	return nil
}

func newResetToken() (string, error) {
	b := make([]byte, resetTokenSize)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
