package postgres

import (
	"context"
	"database/sql"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"synergysphere/config"
	"synergysphere/internal/entities"

	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRepositoryIntegration(t *testing.T) {
	ctx := context.Background()

	cfg, cleanup := setupPostgres(t)
	t.Cleanup(cleanup)

	repo := New(ctx, testLogger(t), cfg)
	require.NoError(t, repo.OnStart(ctx))
	t.Cleanup(func() { _ = repo.OnStop(ctx) })

	seedUsers(t, repo, "a", "b", "c")

	_, err := repo.CreateUser(ctx, entities.User{ID: "dup", Name: "Dup", Email: "A@EXAMPLE.COM", PasswordHash: "x"})
	require.ErrorIs(t, err, entities.ErrEmailTaken)

	byEmail, err := repo.GetUserByEmail(ctx, "B@example.com")
	require.NoError(t, err)
	require.Equal(t, "b", byEmail.ID)

	project, err := repo.CreateProject(ctx, entities.Project{ID: "p1", Name: "Alpha"}, "a")
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, project.MemberIDs())

	_, err = repo.AddMember(ctx, "p1", "c", "b")
	require.ErrorIs(t, err, entities.ErrNotMember)

	project, err = repo.AddMember(ctx, "p1", "a", "b")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, project.MemberIDs())

	_, err = repo.AddMember(ctx, "p1", "b", "b")
	require.ErrorIs(t, err, entities.ErrAlreadyMember)

	_, err = repo.AddMember(ctx, "p1", "a", "ghost")
	require.ErrorIs(t, err, entities.ErrUserNotFound)

	project, err = repo.RemoveMember(ctx, "p1", "a", "b")
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, project.MemberIDs())

	_, err = repo.RemoveMember(ctx, "p1", "a", "a")
	require.ErrorIs(t, err, entities.ErrLastMember)

	isMember, err := repo.IsMember(ctx, "p1", "a")
	require.NoError(t, err)
	require.True(t, isMember)

	renamed, err := repo.RenameProject(ctx, "p1", "Alpha 2")
	require.NoError(t, err)
	require.Equal(t, "Alpha 2", renamed.Name)

	projects, err := repo.ListProjectsByMember(ctx, "a")
	require.NoError(t, err)
	require.Len(t, projects, 1)
	require.Equal(t, []string{"a"}, projects[0].MemberIDs())
}

func TestTasksAndMessagesIntegration(t *testing.T) {
	ctx := context.Background()

	cfg, cleanup := setupPostgres(t)
	t.Cleanup(cleanup)

	repo := New(ctx, testLogger(t), cfg)
	require.NoError(t, repo.OnStart(ctx))
	t.Cleanup(func() { _ = repo.OnStop(ctx) })

	seedUsers(t, repo, "a", "b")
	_, err := repo.CreateProject(ctx, entities.Project{ID: "p1", Name: "Alpha"}, "a")
	require.NoError(t, err)

	due := time.Date(2026, 11, 3, 15, 30, 0, 0, time.UTC)
	task, err := repo.CreateTask(ctx, entities.Task{
		ID: "t1", ProjectID: "p1", Title: "Write docs",
		Assignee: &entities.UserRef{ID: "b"}, DueDate: &due,
	}, entities.AssigneeMember)
	require.ErrorIs(t, err, entities.ErrAssigneeNotMember)

	task, err = repo.CreateTask(ctx, entities.Task{
		ID: "t1", ProjectID: "p1", Title: "Write docs",
		Assignee: &entities.UserRef{ID: "b"}, DueDate: &due,
	}, entities.AssigneeAnyUser)
	require.NoError(t, err)
	require.Equal(t, entities.StatusToDo, task.Status)
	require.Equal(t, "b@example.com", task.Assignee.Email)
	require.Equal(t, time.Date(2026, 11, 3, 0, 0, 0, 0, time.UTC), task.DueDate.UTC())

	_, err = repo.CreateTask(ctx, entities.Task{ID: "t2", ProjectID: "missing", Title: "x"}, entities.AssigneeMember)
	require.ErrorIs(t, err, entities.ErrProjectNotFound)

	done := entities.StatusDone
	updated, err := repo.UpdateTask(ctx, "t1", entities.TaskPatch{Status: &done, ClearAssignee: true}, entities.AssigneeMember)
	require.NoError(t, err)
	require.Equal(t, entities.StatusDone, updated.Status)
	require.Nil(t, updated.Assignee)
	require.Equal(t, "Write docs", updated.Title)

	_, err = repo.UpdateTask(ctx, "missing", entities.TaskPatch{Status: &done}, entities.AssigneeMember)
	require.ErrorIs(t, err, entities.ErrTaskNotFound)

	b := "b"
	_, err = repo.UpdateTask(ctx, "t1", entities.TaskPatch{AssigneeID: &b}, entities.AssigneeMember)
	require.ErrorIs(t, err, entities.ErrAssigneeNotMember)
	_, err = repo.AddMember(ctx, "p1", "a", "b")
	require.NoError(t, err)
	updated, err = repo.UpdateTask(ctx, "t1", entities.TaskPatch{AssigneeID: &b}, entities.AssigneeMember)
	require.NoError(t, err)
	require.Equal(t, "b", updated.Assignee.ID)

	msg, err := repo.CreateMessage(ctx, entities.Message{ID: "m1", ProjectID: "p1", Sender: entities.UserRef{ID: "a"}, Content: "hello"})
	require.NoError(t, err)
	require.Equal(t, "a@example.com", msg.Sender.Email)

	msgs, err := repo.ListMessagesByProject(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	require.NoError(t, repo.DeleteProject(ctx, "p1"))
	_, err = repo.GetTask(ctx, "t1")
	require.ErrorIs(t, err, entities.ErrTaskNotFound)
	msgs, err = repo.ListMessagesByProject(ctx, "p1")
	require.NoError(t, err)
	require.Empty(t, msgs)
	require.ErrorIs(t, repo.DeleteProject(ctx, "p1"), entities.ErrProjectNotFound)
}

func TestConcurrentAddMemberIntegration(t *testing.T) {
	ctx := context.Background()

	cfg, cleanup := setupPostgres(t)
	t.Cleanup(cleanup)

	repo := New(ctx, testLogger(t), cfg)
	require.NoError(t, repo.OnStart(ctx))
	t.Cleanup(func() { _ = repo.OnStop(ctx) })

	seedUsers(t, repo, "a", "b")
	_, err := repo.CreateProject(ctx, entities.Project{ID: "p1", Name: "Alpha"}, "a")
	require.NoError(t, err)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.AddMember(ctx, "p1", "a", "b")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		if err == nil {
			ok++
			continue
		}
		require.ErrorIs(t, err, entities.ErrAlreadyMember)
	}
	require.Equal(t, 1, ok)

	project, err := repo.GetProject(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, project.MemberIDs())
}

func seedUsers(t *testing.T, repo *Postgres, ids ...string) {
	t.Helper()
	for _, id := range ids {
		_, err := repo.CreateUser(context.Background(), entities.User{
			ID: id, Name: id, Email: id + "@example.com", PasswordHash: "hash",
		})
		require.NoError(t, err)
	}
}

func setupPostgres(t *testing.T) (*config.Config, func()) {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err)

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_PASSWORD=postgres",
			"POSTGRES_USER=postgres",
			"POSTGRES_DB=synergysphere_db",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
	})
	require.NoError(t, err)

	hostPort := resource.GetPort("5432/tcp")

	port, err := strconv.Atoi(hostPort)
	require.NoError(t, err)
	migrationsDir, err := filepath.Abs(filepath.Join("..", "..", "..", "db", "migrations"))
	require.NoError(t, err)
	require.DirExists(t, migrationsDir)

	cfg := &config.Config{
		Server:  config.ServerConfig{Host: "0.0.0.0", Port: 5000, ShutdownTimeout: 5 * time.Second},
		HTTP:    config.HTTPConfig{RequestTimeout: 5 * time.Second},
		Storage: config.StorageConfig{Backend: "postgres"},
		Postgres: config.PostgresConfig{
			Host:           "localhost",
			Port:           port,
			User:           "postgres",
			Password:       "postgres",
			DBName:         "synergysphere_db",
			SSLMode:        "disable",
			MigrationsDir:  migrationsDir,
			QueryTimeout:   10 * time.Second,
			MigrateTimeout: 20 * time.Second,
			MaxConns:       8,
			MinConns:       1,
		},
	}

	require.NoError(t, pool.Retry(func() error {
		db, err := sql.Open("postgres", "host=localhost port="+hostPort+" user=postgres password=postgres dbname=synergysphere_db sslmode=disable")
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		return db.Ping()
	}))

	cleanup := func() {
		_ = pool.Purge(resource)
	}

	return cfg, cleanup
}

func testLogger(t *testing.T) *zap.SugaredLogger {
	t.Helper()

	l, _ := zap.NewDevelopment()
	t.Cleanup(func() { _ = l.Sync() })
	return l.Sugar()
}
