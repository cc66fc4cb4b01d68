package handlers_fiber

import (
	"net/http"

	"synergysphere/internal/mapper"
	"synergysphere/internal/transport/http/dto"

	"github.com/gofiber/fiber/v2"
)

// CreateTask adds a task to the project named in the body.
func (h *Handler) CreateTask(c *fiber.Ctx) error {
	var body dto.CreateTaskRequest
	if err := h.bind(c, &body); err != nil {
		return writeError(c, err)
	}
	task, err := h.uc.CreateTask(c.Context(), caller(c), body.Project, mapper.FromCreateTask(body))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(mapper.ToTask(*task))
}

// ListTasks returns the tasks of a project.
func (h *Handler) ListTasks(c *fiber.Ctx) error {
	tasks, err := h.uc.ListTasks(c.Context(), caller(c), c.Params("projectId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToTasks(tasks))
}

// UpdateTask applies a partial edit.
func (h *Handler) UpdateTask(c *fiber.Ctx) error {
	var body dto.UpdateTaskRequest
	if err := h.bind(c, &body); err != nil {
		return writeError(c, err)
	}
	task, err := h.uc.UpdateTask(c.Context(), caller(c), c.Params("taskId"), mapper.FromUpdateTask(body))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToTask(*task))
}

// SetTaskStatus moves a task to another state.
func (h *Handler) SetTaskStatus(c *fiber.Ctx) error {
	var body dto.SetStatusRequest
	if err := h.bind(c, &body); err != nil {
		return writeError(c, err)
	}

	task, err := h.uc.SetStatus(c.Context(), caller(c), c.Params("taskId"), body.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToTask(*task))
}
