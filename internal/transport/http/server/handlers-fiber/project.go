package handlers_fiber

import (
	"net/http"

	"synergysphere/internal/mapper"
	"synergysphere/internal/transport/http/dto"

	"github.com/gofiber/fiber/v2"
)

// CreateProject creates a project owned by the caller.
func (h *Handler) CreateProject(c *fiber.Ctx) error {
	var body dto.ProjectRequest
	if err := h.bind(c, &body); err != nil {
		return writeError(c, err)
	}

	project, err := h.uc.CreateProject(c.Context(), caller(c), body.Name)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(mapper.ToProject(*project))
}

// ListProjects returns the caller's projects with progress, newest first.
func (h *Handler) ListProjects(c *fiber.Ctx) error {
	list, err := h.uc.ListProjects(c.Context(), caller(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToProjectOverviews(list))
}

// GetProject returns one project with its members.
func (h *Handler) GetProject(c *fiber.Ctx) error {
	project, err := h.uc.GetProject(c.Context(), caller(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToProject(*project))
}

// RenameProject updates the project name.
func (h *Handler) RenameProject(c *fiber.Ctx) error {
	var body dto.ProjectRequest
	if err := h.bind(c, &body); err != nil {
		return writeError(c, err)
	}

	project, err := h.uc.RenameProject(c.Context(), caller(c), c.Params("id"), body.Name)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToProject(*project))
}

// DeleteProject removes a project with its tasks and messages.
func (h *Handler) DeleteProject(c *fiber.Ctx) error {
	if err := h.uc.DeleteProject(c.Context(), caller(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(dto.MessageResponse{Message: "project deleted"})
}

// ProjectProgress returns progress and per-status counts.
func (h *Handler) ProjectProgress(c *fiber.Ctx) error {
	summary, err := h.uc.ProjectSummary(c.Context(), caller(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToSummary(summary))
}

// AddMember adds a registered user by email.
func (h *Handler) AddMember(c *fiber.Ctx) error {
	var body dto.AddMemberRequest
	if err := h.bind(c, &body); err != nil {
		return writeError(c, err)
	}

	project, err := h.uc.AddMember(c.Context(), caller(c), c.Params("id"), body.Email)
	if err != nil {
		h.log.Infow("add member failed", "project_id", c.Params("id"), "err", err)
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToProject(*project))
}

// RemoveMember removes a user by id.
func (h *Handler) RemoveMember(c *fiber.Ctx) error {
	var body dto.RemoveMemberRequest
	if err := h.bind(c, &body); err != nil {
		return writeError(c, err)
	}

	project, err := h.uc.RemoveMember(c.Context(), caller(c), c.Params("id"), body.UserID)
	if err != nil {
		h.log.Infow("remove member failed", "project_id", c.Params("id"), "err", err)
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToProject(*project))
}
