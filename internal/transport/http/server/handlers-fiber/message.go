package handlers_fiber

import (
	"net/http"

	"synergysphere/internal/mapper"
	"synergysphere/internal/transport/http/dto"

	"github.com/gofiber/fiber/v2"
)

// ListMessages returns the project chat.
func (h *Handler) ListMessages(c *fiber.Ctx) error {
	msgs, err := h.uc.ListMessages(c.Context(), caller(c), c.Params("projectId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToMessages(msgs))
}

// PostMessage appends a message from the caller.
func (h *Handler) PostMessage(c *fiber.Ctx) error {
	var body dto.PostMessageRequest
	if err := h.bind(c, &body); err != nil {
		return writeError(c, err)
	}

	msg, err := h.uc.PostMessage(c.Context(), caller(c), c.Params("projectId"), body.Content)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(mapper.ToMessage(*msg))
}
