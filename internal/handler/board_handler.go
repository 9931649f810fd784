package handler

import (
	"net/http"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
)

type BoardHandler struct {
	boardRepo repository.BoardRepositoryInterface
}

func NewBoardHandler(boardRepo repository.BoardRepositoryInterface) *BoardHandler {
	return &BoardHandler{
		boardRepo: boardRepo,
	}
}

type CreateBoardRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// Create creates a new board, with its OPEN state, for the authenticated user
// @Summary   Create a board
// @Tags      Boards
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body body CreateBoardRequest true "Board"
// @Success   201 {object} model.Board
// @Failure   400 {object} MessageResponse
// @Failure   401 {object} MessageResponse
// @Router    /boards [post]
func (h *BoardHandler) Create(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid request")
		return
	}

	board := &model.Board{
		Title:       req.Title,
		Description: req.Description,
		OwnerID:     ownerID,
	}
	if err := h.boardRepo.CreateBoard(c.Request.Context(), board); err != nil {
		respondRepoError(c, err)
		return
	}

	c.JSON(http.StatusCreated, board)
}

// GetAll lists the caller's boards in creation order
// @Summary   List boards
// @Tags      Boards
// @Produce   json
// @Security  BearerAuth
// @Success   200 {array}  model.Board
// @Failure   401 {object} MessageResponse
// @Router    /boards [get]
func (h *BoardHandler) GetAll(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	boards, err := h.boardRepo.ListBoards(c.Request.Context(), ownerID)
	if err != nil {
		respondRepoError(c, err)
		return
	}

	c.JSON(http.StatusOK, boards)
}
