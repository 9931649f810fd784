package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"taskboard/internal/handler"
	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *boardFixture) openState(t *testing.T, token string, boardID int64) model.State {
	t.Helper()
	resp := f.do(t, http.MethodGet, fmt.Sprintf("/boards/%d/states", boardID), token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	states := decodeInto[[]model.State](t, resp)
	require.NotEmpty(t, states)
	return states[0]
}

func TestTaskHandler_DefaultPriorityAndPartialUpdate(t *testing.T) {
	f := setupBoardTest(t, repository.Options{})
	alice := f.login(t, "alice")
	board := f.createBoard(t, alice, "B1")
	open := f.openState(t, alice, board.ID)
	tasksPath := fmt.Sprintf("/boards/%d/tasks", board.ID)

	resp := f.do(t, http.MethodPost, tasksPath, alice, handler.CreateTaskRequest{
		StateID:     open.ID,
		Title:       "T1",
		Description: "first",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	task := decodeInto[model.Task](t, resp)
	assert.Equal(t, model.PriorityNormal, task.Priority)
	assert.Equal(t, board.ID, task.BoardID)

	resp = f.do(t, http.MethodPut, fmt.Sprintf("/boards/tasks/%d", task.ID), alice, map[string]string{"priority": "high"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	tasks := decodeInto[[]model.Task](t, f.do(t, http.MethodGet, tasksPath, alice, nil))
	require.Len(t, tasks, 1)
	assert.Equal(t, model.PriorityHigh, tasks[0].Priority)
	assert.Equal(t, "T1", tasks[0].Title)
	assert.Equal(t, "first", tasks[0].Description)
}

func TestTaskHandler_UpdateToUnknownStateLeavesTask(t *testing.T) {
	f := setupBoardTest(t, repository.Options{})
	alice := f.login(t, "alice")
	board := f.createBoard(t, alice, "B1")
	open := f.openState(t, alice, board.ID)

	resp := f.do(t, http.MethodPost, fmt.Sprintf("/boards/%d/tasks", board.ID), alice,
		handler.CreateTaskRequest{StateID: open.ID, Title: "T1"})
	task := decodeInto[model.Task](t, resp)

	resp = f.do(t, http.MethodPut, fmt.Sprintf("/boards/tasks/%d", task.ID), alice,
		map[string]any{"stateId": 999, "title": "changed"})
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.JSONEq(t, `{"message":"State not found"}`, resp.Body.String())

	tasks := decodeInto[[]model.Task](t, f.do(t, http.MethodGet, fmt.Sprintf("/boards/%d/tasks", board.ID), alice, nil))
	require.Len(t, tasks, 1)
	assert.Equal(t, open.ID, tasks[0].StateID)
	assert.Equal(t, "T1", tasks[0].Title)
}

func TestTaskHandler_UpdateUnknownTask(t *testing.T) {
	f := setupBoardTest(t, repository.Options{})
	alice := f.login(t, "alice")

	resp := f.do(t, http.MethodPut, "/boards/tasks/42", alice, map[string]string{"title": "x"})

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.JSONEq(t, `{"message":"Task not found"}`, resp.Body.String())
}

func TestTaskHandler_InvalidPriority(t *testing.T) {
	f := setupBoardTest(t, repository.Options{})
	alice := f.login(t, "alice")
	board := f.createBoard(t, alice, "B1")
	open := f.openState(t, alice, board.ID)

	resp := f.do(t, http.MethodPost, fmt.Sprintf("/boards/%d/tasks", board.ID), alice,
		map[string]any{"stateId": open.ID, "title": "T1", "priority": "urgent"})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestTaskHandler_DeleteIsIdempotent(t *testing.T) {
	f := setupBoardTest(t, repository.Options{})
	alice := f.login(t, "alice")

	resp := f.do(t, http.MethodDelete, "/boards/tasks/12345", alice, nil)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"message":"Task deleted"}`, resp.Body.String())
}

func TestTaskHandler_BoardIsolation(t *testing.T) {
	f := setupBoardTest(t, repository.Options{})
	alice := f.login(t, "alice")
	bob := f.login(t, "bob")
	board := f.createBoard(t, alice, "B1")
	open := f.openState(t, alice, board.ID)
	tasksPath := fmt.Sprintf("/boards/%d/tasks", board.ID)

	resp := f.do(t, http.MethodGet, tasksPath, bob, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.JSONEq(t, `{"message":"Board not found"}`, resp.Body.String())

	resp = f.do(t, http.MethodPost, tasksPath, bob, handler.CreateTaskRequest{StateID: open.ID, Title: "sneaky"})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestTaskHandler_StrictScope(t *testing.T) {
	f := setupBoardTest(t, repository.Options{StrictTaskScope: true})
	alice := f.login(t, "alice")
	bob := f.login(t, "bob")
	board := f.createBoard(t, alice, "B1")
	open := f.openState(t, alice, board.ID)
	tasksPath := fmt.Sprintf("/boards/%d/tasks", board.ID)

	resp := f.do(t, http.MethodPost, tasksPath, alice, handler.CreateTaskRequest{StateID: 999, Title: "T"})
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.JSONEq(t, `{"message":"State not found"}`, resp.Body.String())

	resp = f.do(t, http.MethodPost, tasksPath, alice, handler.CreateTaskRequest{StateID: open.ID, Title: "T"})
	require.Equal(t, http.StatusCreated, resp.Code)
	task := decodeInto[model.Task](t, resp)
	taskPath := fmt.Sprintf("/boards/tasks/%d", task.ID)

	resp = f.do(t, http.MethodPut, taskPath, bob, map[string]string{"title": "mine now"})
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = f.do(t, http.MethodDelete, taskPath, bob, nil)
	assert.Equal(t, http.StatusOK, resp.Code)

	tasks := decodeInto[[]model.Task](t, f.do(t, http.MethodGet, tasksPath, alice, nil))
	require.Len(t, tasks, 1)
	assert.Equal(t, "T", tasks[0].Title)
}
