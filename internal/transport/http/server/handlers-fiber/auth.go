package handlers_fiber

import (
	"net/http"

	"synergysphere/internal/mapper"
	"synergysphere/internal/transport/http/dto"

	"github.com/gofiber/fiber/v2"
)

// Signup registers an account.
func (h *Handler) Signup(c *fiber.Ctx) error {
	var body dto.SignupRequest
	if err := h.bind(c, &body); err != nil {
		return writeError(c, err)
	}

	user, err := h.uc.Signup(c.Context(), body.Name, body.Email, body.Password)
	if err != nil {
		h.log.Infow("signup failed", "err", err)
		return writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(mapper.ToUser(user.Ref()))
}

// Login exchanges credentials for an access token.
func (h *Handler) Login(c *fiber.Ctx) error {
	var body dto.LoginRequest
	if err := h.bind(c, &body); err != nil {
		return writeError(c, err)
	}

	token, user, err := h.uc.Login(c.Context(), body.Email, body.Password)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(dto.AuthResponse{Token: token, User: mapper.ToUser(user.Ref())})
}

// Me returns the authenticated caller.
func (h *Handler) Me(c *fiber.Ctx) error {
	id := caller(c)
	return c.Status(http.StatusOK).JSON(dto.User{ID: id.UserID, Name: id.Name, Email: id.Email})
}

// ForgotPassword sends a reset link. The answer does not depend on whether
// the email is registered.
func (h *Handler) ForgotPassword(c *fiber.Ctx) error {
	var body dto.ForgotPasswordRequest
	if err := h.bind(c, &body); err != nil {
		return writeError(c, err)
	}

	if err := h.uc.ForgotPassword(c.Context(), body.Email); err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(dto.MessageResponse{Message: "if the email is registered, a reset link has been sent"})
}

// ResetPassword sets a new password using a reset token.
func (h *Handler) ResetPassword(c *fiber.Ctx) error {
	var body dto.ResetPasswordRequest
	if err := h.bind(c, &body); err != nil {
		return writeError(c, err)
	}

	if err := h.uc.ResetPassword(c.Context(), c.Params("token"), body.Password); err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(dto.MessageResponse{Message: "password updated"})
}
