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

func TestStateHandler_DefaultStateOnNewBoard(t *testing.T) {
	f := setupBoardTest(t, repository.Options{})
	alice := f.login(t, "alice")
	board := f.createBoard(t, alice, "Roadmap")

	resp := f.do(t, http.MethodGet, fmt.Sprintf("/boards/%d/states", board.ID), alice, nil)

	require.Equal(t, http.StatusOK, resp.Code)
	states := decodeInto[[]model.State](t, resp)
	require.Len(t, states, 1)
	assert.Equal(t, "OPEN", states[0].Name)
	assert.Equal(t, board.ID, states[0].BoardID)
}

func TestStateHandler_CreateUpdateDelete(t *testing.T) {
	f := setupBoardTest(t, repository.Options{})
	alice := f.login(t, "alice")
	board := f.createBoard(t, alice, "Roadmap")
	statesPath := fmt.Sprintf("/boards/%d/states", board.ID)

	resp := f.do(t, http.MethodPost, statesPath, alice, handler.CreateStateRequest{Name: "IN_PROGRESS"})
	require.Equal(t, http.StatusCreated, resp.Code)
	state := decodeInto[model.State](t, resp)
	assert.Equal(t, "IN_PROGRESS", state.Name)
	assert.Equal(t, board.ID, state.BoardID)

	statePath := fmt.Sprintf("%s/%d", statesPath, state.ID)

	// omitted name keeps the current one
	resp = f.do(t, http.MethodPut, statePath, alice, map[string]any{})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "IN_PROGRESS", decodeInto[model.State](t, resp).Name)

	resp = f.do(t, http.MethodPut, statePath, alice, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = f.do(t, http.MethodPut, statePath, alice, map[string]string{"name": "DOING"})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "DOING", decodeInto[model.State](t, resp).Name)

	resp = f.do(t, http.MethodDelete, statePath, alice, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"message":"State deleted"}`, resp.Body.String())

	resp = f.do(t, http.MethodGet, statesPath, alice, nil)
	assert.Len(t, decodeInto[[]model.State](t, resp), 1)
}

func TestStateHandler_OwnershipIsolation(t *testing.T) {
	f := setupBoardTest(t, repository.Options{})
	alice := f.login(t, "alice")
	bob := f.login(t, "bob")
	board := f.createBoard(t, alice, "Roadmap")
	statesPath := fmt.Sprintf("/boards/%d/states", board.ID)

	resp := f.do(t, http.MethodGet, statesPath, bob, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.JSONEq(t, `{"message":"Board not found"}`, resp.Body.String())

	resp = f.do(t, http.MethodPost, statesPath, bob, handler.CreateStateRequest{Name: "MINE"})
	assert.Equal(t, http.StatusNotFound, resp.Code)

	states := decodeInto[[]model.State](t, f.do(t, http.MethodGet, statesPath, alice, nil))
	statePath := fmt.Sprintf("%s/%d", statesPath, states[0].ID)

	resp = f.do(t, http.MethodPut, statePath, bob, map[string]string{"name": "HACKED"})
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.JSONEq(t, `{"message":"State not found"}`, resp.Body.String())

	resp = f.do(t, http.MethodDelete, statePath, bob, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestStateHandler_DeleteEdgeCases(t *testing.T) {
	f := setupBoardTest(t, repository.Options{})
	alice := f.login(t, "alice")
	board := f.createBoard(t, alice, "Roadmap")
	other := f.createBoard(t, alice, "Other")
	states := decodeInto[[]model.State](t, f.do(t, http.MethodGet, fmt.Sprintf("/boards/%d/states", board.ID), alice, nil))
	otherStates := decodeInto[[]model.State](t, f.do(t, http.MethodGet, fmt.Sprintf("/boards/%d/states", other.ID), alice, nil))

	resp := f.do(t, http.MethodDelete, fmt.Sprintf("/boards/999/states/%d", states[0].ID), alice, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.JSONEq(t, `{"message":"Board not found"}`, resp.Body.String())

	resp = f.do(t, http.MethodDelete, fmt.Sprintf("/boards/%d/states/%d", board.ID, otherStates[0].ID), alice, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.JSONEq(t, `{"message":"State not found"}`, resp.Body.String())

	resp = f.do(t, http.MethodPost, fmt.Sprintf("/boards/%d/tasks", board.ID), alice,
		handler.CreateTaskRequest{StateID: states[0].ID, Title: "pinned"})
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = f.do(t, http.MethodDelete, fmt.Sprintf("/boards/%d/states/%d", board.ID, states[0].ID), alice, nil)
	assert.Equal(t, http.StatusConflict, resp.Code)
	assert.JSONEq(t, `{"message":"State has tasks"}`, resp.Body.String())
}

func TestStateHandler_InvalidID(t *testing.T) {
	f := setupBoardTest(t, repository.Options{})
	alice := f.login(t, "alice")

	resp := f.do(t, http.MethodGet, "/boards/abc/states", alice, nil)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.JSONEq(t, `{"message":"Invalid board ID format"}`, resp.Body.String())
}
