package mapper

import (
	"encoding/json"
	"testing"
	"time"

	"synergysphere/internal/entities"
	"synergysphere/internal/transport/http/dto"

	"github.com/stretchr/testify/require"
)

func TestFromUpdateTaskNullClearsFields(t *testing.T) {
	var req dto.UpdateTaskRequest
	require.NoError(t, json.Unmarshal([]byte(`{"assignee":null,"dueDate":null,"status":"Done"}`), &req))

	edit := FromUpdateTask(req)
	require.True(t, edit.ClearAssignee)
	require.True(t, edit.ClearDueDate)
	require.Nil(t, edit.AssigneeID)
	require.Equal(t, "Done", *edit.Status)
	require.Nil(t, edit.Title)
}

func TestFromUpdateTaskAbsentFieldsUntouched(t *testing.T) {
	var req dto.UpdateTaskRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"New"}`), &req))

	edit := FromUpdateTask(req)
	require.Equal(t, "New", *edit.Title)
	require.False(t, edit.ClearAssignee)
	require.False(t, edit.ClearDueDate)
	require.Nil(t, edit.AssigneeID)
	require.Nil(t, edit.DueDate)
	require.Nil(t, edit.Status)
}

func TestFromUpdateTaskKeepsRawValues(t *testing.T) {
	var req dto.UpdateTaskRequest
	require.NoError(t, json.Unmarshal([]byte(`{"status":"Blocked","dueDate":"someday","assignee":"u2"}`), &req))

	edit := FromUpdateTask(req)
	require.Equal(t, "Blocked", *edit.Status)
	require.Equal(t, "someday", *edit.DueDate)
	require.Equal(t, "u2", *edit.AssigneeID)
}

func TestFromCreateTask(t *testing.T) {
	empty, due := "", "2026-11-02"
	in := FromCreateTask(dto.CreateTaskRequest{Title: "Draft", Assignee: &empty, DueDate: &due})
	require.Equal(t, "Draft", in.Title)
	require.Nil(t, in.AssigneeID)
	require.Equal(t, "2026-11-02", in.DueDate)

	in = FromCreateTask(dto.CreateTaskRequest{})
	require.Empty(t, in.Title)
	require.Empty(t, in.DueDate)
}

func TestToTaskFormatsDueDate(t *testing.T) {
	due := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	res := ToTask(entities.Task{
		ID:        "t1",
		ProjectID: "p1",
		Title:     "Draft",
		Status:    entities.StatusInProgress,
		DueDate:   &due,
		Assignee:  &entities.UserRef{ID: "u1", Name: "Alice"},
	})
	require.Equal(t, "2026-01-05", *res.DueDate)
	require.Equal(t, "In Progress", res.Status)
	require.Equal(t, "Alice", res.Assignee.Name)
}

func TestToProjectOverviewsAttachesProgress(t *testing.T) {
	res := ToProjectOverviews([]entities.ProjectOverview{{
		Project:  entities.Project{ID: "p1", Name: "Alpha"},
		Progress: entities.Progress{Total: 4, Done: 2, Pct: 50},
	}})
	require.Len(t, res, 1)
	require.NotNil(t, res[0].Progress)
	require.Equal(t, 50, res[0].Progress.Pct)
	require.NotNil(t, res[0].Members)
}
