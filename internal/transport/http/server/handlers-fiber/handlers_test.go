package handlers_fiber

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"synergysphere/internal/auth"
	"synergysphere/internal/repository/memory"
	"synergysphere/internal/transport/http/dto"
	"synergysphere/internal/usecase"
	"synergysphere/internal/usecase/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type apiClient struct {
	t   *testing.T
	app *fiber.App
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	log := zap.NewNop().Sugar()
	jwt, err := auth.NewJWT("handler-secret", time.Hour)
	require.NoError(t, err)

	uc := usecase.New(log, context.Background(), memory.New(log), time.Second,
		domain.WithTokens(jwt),
		domain.WithHasher(auth.Bcrypt{Cost: bcrypt.MinCost}),
	)
	app := fiber.New()
	NewHandler(log, uc).Register(app)
	return &apiClient{t: t, app: app}
}

func (a *apiClient) do(method, path, token string, body interface{}, out interface{}) int {
	a.t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(a.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (a *apiClient) register(name, email string) (string, dto.User) {
	a.t.Helper()
	status := a.do(http.MethodPost, "/api/auth/signup", "", dto.SignupRequest{Name: name, Email: email, Password: "secret123"}, nil)
	require.Equal(a.t, http.StatusCreated, status)

	var res dto.AuthResponse
	status = a.do(http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: "secret123"}, &res)
	require.Equal(a.t, http.StatusOK, status)
	require.NotEmpty(a.t, res.Token)
	return res.Token, res.User
}

func TestAPI_Health(t *testing.T) {
	api := newAPI(t)
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/healthz", "", nil, nil))
}

func TestAPI_RequiresToken(t *testing.T) {
	api := newAPI(t)

	var errBody dto.ErrorResponse
	status := api.do(http.MethodGet, "/api/projects", "", nil, &errBody)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, dto.Unauthorized, errBody.Error.Code)

	status = api.do(http.MethodGet, "/api/projects", "not-a-jwt", nil, &errBody)
	require.Equal(t, http.StatusUnauthorized, status)
}

func TestAPI_SignupValidation(t *testing.T) {
	api := newAPI(t)

	var errBody dto.ErrorResponse
	status := api.do(http.MethodPost, "/api/auth/signup", "", dto.SignupRequest{Name: "A", Email: "bad", Password: "secret123"}, &errBody)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, dto.InvalidArgument, errBody.Error.Code)
	require.Contains(t, errBody.Error.Message, "email must be a valid email")

	api.register("Alice", "alice@example.com")
	status = api.do(http.MethodPost, "/api/auth/signup", "", dto.SignupRequest{Name: "A", Email: "ALICE@example.com", Password: "secret123"}, &errBody)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, dto.Conflict, errBody.Error.Code)
}

func TestAPI_ProjectMembershipFlow(t *testing.T) {
	api := newAPI(t)
	aliceTok, alice := api.register("Alice", "alice@example.com")
	bobTok, bob := api.register("Bob", "bob@example.com")

	var me dto.User
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/auth/me", aliceTok, nil, &me))
	require.Equal(t, alice, me)

	var project dto.Project
	status := api.do(http.MethodPost, "/api/projects", aliceTok, dto.ProjectRequest{Name: "Alpha"}, &project)
	require.Equal(t, http.StatusCreated, status)
	require.Len(t, project.Members, 1)

	var errBody dto.ErrorResponse
	status = api.do(http.MethodGet, "/api/projects/"+project.ID, bobTok, nil, &errBody)
	require.Equal(t, http.StatusForbidden, status)
	require.Equal(t, dto.Forbidden, errBody.Error.Code)

	status = api.do(http.MethodPost, "/api/projects/"+project.ID+"/add-member", aliceTok, dto.AddMemberRequest{Email: "bob@example.com"}, &project)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, []dto.User{alice, bob}, project.Members)

	status = api.do(http.MethodPost, "/api/projects/"+project.ID+"/add-member", bobTok, dto.AddMemberRequest{Email: "bob@example.com"}, &errBody)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, dto.Conflict, errBody.Error.Code)

	status = api.do(http.MethodDelete, "/api/projects/"+project.ID+"/remove-member", aliceTok, dto.RemoveMemberRequest{UserID: bob.ID}, &project)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, []dto.User{alice}, project.Members)

	status = api.do(http.MethodDelete, "/api/projects/"+project.ID+"/remove-member", aliceTok, dto.RemoveMemberRequest{UserID: alice.ID}, &errBody)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, dto.InvariantViolation, errBody.Error.Code)

	status = api.do(http.MethodGet, "/api/projects/missing", aliceTok, nil, &errBody)
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, dto.NotFound, errBody.Error.Code)
}

func TestAPI_TasksAndProgress(t *testing.T) {
	api := newAPI(t)
	aliceTok, alice := api.register("Alice", "alice@example.com")
	carolTok, _ := api.register("Carol", "carol@example.com")

	var project dto.Project
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/projects", aliceTok, dto.ProjectRequest{Name: "Alpha"}, &project))

	due := "2026-12-01"
	var first, second dto.Task
	status := api.do(http.MethodPost, "/api/tasks", aliceTok, dto.CreateTaskRequest{
		Project: project.ID, Title: "Brief", Assignee: &alice.ID, DueDate: &due,
	}, &first)
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, "To Do", first.Status)
	require.Equal(t, "Alice", first.Assignee.Name)
	require.Equal(t, due, *first.DueDate)

	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/tasks", aliceTok, dto.CreateTaskRequest{Project: project.ID, Title: "Deck"}, &second))

	var errBody dto.ErrorResponse
	status = api.do(http.MethodPost, "/api/tasks", carolTok, dto.CreateTaskRequest{Project: project.ID, Title: "Sneaky"}, &errBody)
	require.Equal(t, http.StatusForbidden, status)

	status = api.do(http.MethodPut, "/api/tasks/"+first.ID+"/status", aliceTok, dto.SetStatusRequest{Status: "Done"}, &first)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Done", first.Status)

	status = api.do(http.MethodPut, "/api/tasks/"+first.ID+"/status", aliceTok, dto.SetStatusRequest{Status: "Blocked"}, &errBody)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, dto.InvalidArgument, errBody.Error.Code)

	status = api.do(http.MethodPut, "/api/tasks/"+first.ID+"/status", carolTok, dto.SetStatusRequest{Status: "To Do"}, &errBody)
	require.Equal(t, http.StatusForbidden, status)

	var updated dto.Task
	status = api.do(http.MethodPut, "/api/tasks/"+first.ID, aliceTok, map[string]interface{}{"title": "Final brief", "assignee": nil}, &updated)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Final brief", updated.Title)
	require.Nil(t, updated.Assignee)
	require.Equal(t, "Done", updated.Status)

	var tasks []dto.Task
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/tasks/"+project.ID, aliceTok, nil, &tasks))
	require.Len(t, tasks, 2)
	require.Equal(t, first.ID, tasks[0].ID)

	var projects []dto.Project
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/projects", aliceTok, nil, &projects))
	require.Len(t, projects, 1)
	require.Equal(t, dto.Progress{Total: 2, Done: 1, Pct: 50}, *projects[0].Progress)

	var summary dto.Summary
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/projects/"+project.ID+"/progress", aliceTok, nil, &summary))
	require.Equal(t, 50, summary.Progress.Pct)
	require.Len(t, summary.ByStatus, 3)
}

func TestAPI_GateTakesPrecedenceOverPayload(t *testing.T) {
	api := newAPI(t)
	aliceTok, _ := api.register("Alice", "alice@example.com")
	carolTok, _ := api.register("Carol", "carol@example.com")

	var project dto.Project
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/projects", aliceTok, dto.ProjectRequest{Name: "Alpha"}, &project))
	var task dto.Task
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/tasks", aliceTok, dto.CreateTaskRequest{Project: project.ID, Title: "Brief"}, &task))

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		body   interface{}
		status int
		code   dto.ErrorCode
	}{
		{"create task empty title as outsider", http.MethodPost, "/api/tasks", carolTok,
			dto.CreateTaskRequest{Project: project.ID, Title: ""}, http.StatusForbidden, dto.Forbidden},
		{"update unknown status as outsider", http.MethodPut, "/api/tasks/" + task.ID, carolTok,
			map[string]interface{}{"status": "Blocked"}, http.StatusForbidden, dto.Forbidden},
		{"update unknown status on missing task", http.MethodPut, "/api/tasks/missing", aliceTok,
			map[string]interface{}{"status": "Blocked"}, http.StatusNotFound, dto.NotFound},
		{"set empty status as outsider", http.MethodPut, "/api/tasks/" + task.ID + "/status", carolTok,
			dto.SetStatusRequest{Status: ""}, http.StatusForbidden, dto.Forbidden},
		{"add malformed email to missing project", http.MethodPost, "/api/projects/missing/add-member", aliceTok,
			dto.AddMemberRequest{Email: "nope"}, http.StatusNotFound, dto.NotFound},
		{"post empty message as outsider", http.MethodPost, "/api/messages/" + project.ID, carolTok,
			dto.PostMessageRequest{Content: ""}, http.StatusForbidden, dto.Forbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var errBody dto.ErrorResponse
			require.Equal(t, tc.status, api.do(tc.method, tc.path, tc.token, tc.body, &errBody))
			require.Equal(t, tc.code, errBody.Error.Code)
		})
	}

	var errBody dto.ErrorResponse
	status := api.do(http.MethodPost, "/api/tasks", aliceTok, dto.CreateTaskRequest{Project: project.ID, Title: " "}, &errBody)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, dto.InvalidArgument, errBody.Error.Code)

	status = api.do(http.MethodPost, "/api/projects/"+project.ID+"/add-member", aliceTok, dto.AddMemberRequest{Email: "nope"}, &errBody)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, dto.InvalidArgument, errBody.Error.Code)
}

func TestAPI_Messages(t *testing.T) {
	api := newAPI(t)
	aliceTok, alice := api.register("Alice", "alice@example.com")
	carolTok, _ := api.register("Carol", "carol@example.com")

	var project dto.Project
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/projects", aliceTok, dto.ProjectRequest{Name: "Alpha"}, &project))

	var msg dto.Message
	status := api.do(http.MethodPost, "/api/messages/"+project.ID, aliceTok, dto.PostMessageRequest{Content: "hello team"}, &msg)
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, alice, msg.Sender)

	var errBody dto.ErrorResponse
	status = api.do(http.MethodGet, "/api/messages/"+project.ID, carolTok, nil, &errBody)
	require.Equal(t, http.StatusForbidden, status)

	var msgs []dto.Message
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/messages/"+project.ID, aliceTok, nil, &msgs))
	require.Len(t, msgs, 1)
	require.Equal(t, "hello team", msgs[0].Content)

	require.Equal(t, http.StatusOK, api.do(http.MethodDelete, "/api/projects/"+project.ID, aliceTok, nil, nil))
	require.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/api/messages/"+project.ID, aliceTok, nil, &errBody))
}
