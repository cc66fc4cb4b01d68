package handlers_fiber

import (
	"net/http"

	"synergysphere/internal/transport/http/middleware"

	"github.com/gofiber/fiber/v2"
)

// Register mounts the API routes on app.
func (h *Handler) Register(app fiber.Router) {
	app.Get("/healthz", h.Health)

	protected := middleware.RequireAuth(h.uc, writeError)
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/signup", h.Signup)
	auth.Post("/login", h.Login)
	auth.Post("/forgot-password", h.ForgotPassword)
	auth.Post("/reset-password/:token", h.ResetPassword)
	auth.Get("/me", protected, h.Me)

	projects := api.Group("/projects", protected)
	projects.Post("/", h.CreateProject)
	projects.Get("/", h.ListProjects)
	projects.Get("/:id", h.GetProject)
	projects.Put("/:id", h.RenameProject)
	projects.Delete("/:id", h.DeleteProject)
	projects.Get("/:id/progress", h.ProjectProgress)
	projects.Post("/:id/add-member", h.AddMember)
	projects.Delete("/:id/remove-member", h.RemoveMember)

	tasks := api.Group("/tasks", protected)
	tasks.Post("/", h.CreateTask)
	tasks.Get("/:projectId", h.ListTasks)
	tasks.Put("/:taskId", h.UpdateTask)
	tasks.Put("/:taskId/status", h.SetTaskStatus)

	messages := api.Group("/messages", protected)
	messages.Get("/:projectId", h.ListMessages)
	messages.Post("/:projectId", h.PostMessage)
}

// Health answers liveness checks.
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(fiber.Map{"status": "ok"})
}
