package usecase

import (
	"context"

	"synergysphere/internal/entities"
)

// AccountUsecaseInterface abstracts signup, login and password reset.
type AccountUsecaseInterface interface {
	Signup(ctx context.Context, name, email, password string) (*entities.User, error)
	Login(ctx context.Context, email, password string) (string, *entities.User, error)
	Authenticate(ctx context.Context, token string) (entities.Identity, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
}

// ProjectUsecaseInterface abstracts project operations.
type ProjectUsecaseInterface interface {
	CreateProject(ctx context.Context, caller entities.Identity, name string) (*entities.Project, error)
	ListProjects(ctx context.Context, caller entities.Identity) ([]entities.ProjectOverview, error)
	GetProject(ctx context.Context, caller entities.Identity, projectID string) (*entities.Project, error)
	RenameProject(ctx context.Context, caller entities.Identity, projectID, name string) (*entities.Project, error)
	DeleteProject(ctx context.Context, caller entities.Identity, projectID string) error
	ProjectSummary(ctx context.Context, caller entities.Identity, projectID string) (entities.Summary, error)
}

// MembershipUsecaseInterface abstracts the member set of a project.
type MembershipUsecaseInterface interface {
	AddMember(ctx context.Context, caller entities.Identity, projectID, email string) (*entities.Project, error)
	RemoveMember(ctx context.Context, caller entities.Identity, projectID, userID string) (*entities.Project, error)
	IsMember(ctx context.Context, projectID, userID string) (bool, error)
}

// TaskUsecaseInterface abstracts task operations.
type TaskUsecaseInterface interface {
	CreateTask(ctx context.Context, caller entities.Identity, projectID string, in entities.NewTask) (*entities.Task, error)
	ListTasks(ctx context.Context, caller entities.Identity, projectID string) ([]entities.Task, error)
	SetStatus(ctx context.Context, caller entities.Identity, taskID, status string) (*entities.Task, error)
	UpdateTask(ctx context.Context, caller entities.Identity, taskID string, edit entities.TaskEdit) (*entities.Task, error)
}

// MessageUsecaseInterface abstracts project chat.
type MessageUsecaseInterface interface {
	ListMessages(ctx context.Context, caller entities.Identity, projectID string) ([]entities.Message, error)
	PostMessage(ctx context.Context, caller entities.Identity, projectID, content string) (*entities.Message, error)
}
