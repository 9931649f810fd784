package handler

import (
	"net/http"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
)

type StateHandler struct {
	boardRepo repository.BoardRepositoryInterface
}

func NewStateHandler(boardRepo repository.BoardRepositoryInterface) *StateHandler {
	return &StateHandler{boardRepo: boardRepo}
}

type CreateStateRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateStateRequest struct {
	Name *string `json:"name"`
}

// GetAll godoc
// @Summary   List the states of a board
// @Tags      States
// @Produce   json
// @Security  BearerAuth
// @Param     boardId path int true "Board ID"
// @Success   200 {array}  model.State
// @Failure   404 {object} MessageResponse
// @Router    /boards/{boardId}/states [get]
func (h *StateHandler) GetAll(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseID(c, "boardId", "board")
	if !ok {
		return
	}

	states, err := h.boardRepo.ListStates(c.Request.Context(), boardID, userID)
	if err != nil {
		respondRepoError(c, err)
		return
	}

	c.JSON(http.StatusOK, states)
}

// Create godoc
// @Summary   Add a state to a board
// @Tags      States
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     boardId path int true "Board ID"
// @Param     body body CreateStateRequest true "State"
// @Success   201 {object} model.State
// @Failure   404 {object} MessageResponse
// @Router    /boards/{boardId}/states [post]
func (h *StateHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseID(c, "boardId", "board")
	if !ok {
		return
	}

	var req CreateStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid request")
		return
	}

	state := &model.State{BoardID: boardID, Name: req.Name}
	if err := h.boardRepo.CreateState(c.Request.Context(), userID, state); err != nil {
		respondRepoError(c, err)
		return
	}

	c.JSON(http.StatusCreated, state)
}

// Update renames a state; an omitted name leaves it unchanged
// @Summary   Update a state
// @Tags      States
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     boardId path int true "Board ID"
// @Param     stateId path int true "State ID"
// @Param     body body UpdateStateRequest false "Fields to change"
// @Success   200 {object} model.State
// @Failure   404 {object} MessageResponse
// @Router    /boards/{boardId}/states/{stateId} [put]
func (h *StateHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	stateID, ok := parseID(c, "stateId", "state")
	if !ok {
		return
	}

	var req UpdateStateRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid request")
		return
	}

	state, err := h.boardRepo.UpdateState(c.Request.Context(), stateID, userID, req.Name)
	if err != nil {
		respondRepoError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// Delete godoc
// @Summary   Delete a state
// @Tags      States
// @Produce   json
// @Security  BearerAuth
// @Param     boardId path int true "Board ID"
// @Param     stateId path int true "State ID"
// @Success   200 {object} MessageResponse
// @Failure   404 {object} MessageResponse
// @Failure   409 {object} MessageResponse
// @Router    /boards/{boardId}/states/{stateId} [delete]
func (h *StateHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseID(c, "boardId", "board")
	if !ok {
		return
	}
	stateID, ok := parseID(c, "stateId", "state")
	if !ok {
		return
	}

	if err := h.boardRepo.DeleteState(c.Request.Context(), boardID, stateID, userID); err != nil {
		respondRepoError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "State deleted")
}
