package middleware

import (
	"context"
	"strings"

	"synergysphere/internal/entities"

	"github.com/gofiber/fiber/v2"
)

const identityKey = "identity"

// Authenticator resolves a bearer token into the caller identity.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (entities.Identity, error)
}

// RequireAuth rejects requests without a valid bearer token and stores the
// caller identity in the request locals. Failures go through onError.
func RequireAuth(auth Authenticator, onError fiber.ErrorHandler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return onError(c, entities.ErrInvalidToken)
		}

		id, err := auth.Authenticate(c.Context(), strings.TrimSpace(token))
		if err != nil {
			return onError(c, err)
		}
		c.Locals(identityKey, id)
		return c.Next()
	}
}

// IdentityFrom returns the identity stored by RequireAuth.
func IdentityFrom(c *fiber.Ctx) (entities.Identity, bool) {
	id, ok := c.Locals(identityKey).(entities.Identity)
	return id, ok
}
