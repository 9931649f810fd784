package handler

import (
	"net/http"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	boardRepo repository.BoardRepositoryInterface
}

func NewTaskHandler(boardRepo repository.BoardRepositoryInterface) *TaskHandler {
	return &TaskHandler{boardRepo: boardRepo}
}

// CreateTaskRequest представляет запрос на создание задачи
type CreateTaskRequest struct {
	StateID     int64          `json:"stateId" binding:"required"`
	Title       string         `json:"title" binding:"required"`
	Description string         `json:"description"`
	Priority    model.Priority `json:"priority" binding:"omitempty,priority"`
}

// UpdateTaskRequest is a partial update; absent or null fields are kept.
type UpdateTaskRequest struct {
	StateID     *int64          `json:"stateId"`
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Priority    *model.Priority `json:"priority" binding:"omitempty,priority"`
}

// GetAll godoc
// @Summary   List the tasks of a board
// @Tags      Tasks
// @Produce   json
// @Security  BearerAuth
// @Param     boardId path int true "Board ID"
// @Success   200 {array}  model.Task
// @Failure   404 {object} MessageResponse
// @Router    /boards/{boardId}/tasks [get]
func (h *TaskHandler) GetAll(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseID(c, "boardId", "board")
	if !ok {
		return
	}

	tasks, err := h.boardRepo.ListTasks(c.Request.Context(), boardID, userID)
	if err != nil {
		respondRepoError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// Create godoc
// @Summary   Create a task on a board
// @Tags      Tasks
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     boardId path int true "Board ID"
// @Param     body body CreateTaskRequest true "Task"
// @Success   201 {object} model.Task
// @Failure   400 {object} MessageResponse
// @Failure   404 {object} MessageResponse
// @Router    /boards/{boardId}/tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseID(c, "boardId", "board")
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid request")
		return
	}

	task := &model.Task{
		BoardID:     boardID,
		StateID:     req.StateID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
	}
	if err := h.boardRepo.CreateTask(c.Request.Context(), userID, task); err != nil {
		respondRepoError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// Update godoc
// @Summary   Update a task
// @Tags      Tasks
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     taskId path int true "Task ID"
// @Param     body body UpdateTaskRequest false "Fields to change"
// @Success   200 {object} model.Task
// @Failure   404 {object} MessageResponse
// @Router    /boards/tasks/{taskId} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := parseID(c, "taskId", "task")
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid request")
		return
	}

	task, err := h.boardRepo.UpdateTask(c.Request.Context(), taskID, userID, repository.TaskPatch{
		StateID:     req.StateID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
	})
	if err != nil {
		respondRepoError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// Delete removes a task; unknown ids still report success
// @Summary   Delete a task
// @Tags      Tasks
// @Produce   json
// @Security  BearerAuth
// @Param     taskId path int true "Task ID"
// @Success   200 {object} MessageResponse
// @Router    /boards/tasks/{taskId} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := parseID(c, "taskId", "task")
	if !ok {
		return
	}

	if err := h.boardRepo.DeleteTask(c.Request.Context(), taskID, userID); err != nil {
		respondRepoError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Task deleted")
}
