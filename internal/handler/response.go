package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"sync"

	"taskboard/internal/middleware"
	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// MessageResponse is the body of every failure and of acknowledgements.
type MessageResponse struct {
	Message string `json:"message"`
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, MessageResponse{Message: message})
}

// respondRepoError maps repository errors onto HTTP responses. Anything
// unexpected is recorded on the context for the request logger.
func respondRepoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrBoardNotFound):
		respondMessage(c, http.StatusNotFound, "Board not found")
	case errors.Is(err, repository.ErrStateNotFound):
		respondMessage(c, http.StatusNotFound, "State not found")
	case errors.Is(err, repository.ErrTaskNotFound):
		respondMessage(c, http.StatusNotFound, "Task not found")
	case errors.Is(err, repository.ErrStateInUse):
		respondMessage(c, http.StatusConflict, "State has tasks")
	default:
		_ = c.Error(err)
		respondMessage(c, http.StatusInternalServerError, "Internal server error")
	}
}

// currentUserID writes a 401 when the auth middleware did not run.
func currentUserID(c *gin.Context) (int64, bool) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		respondMessage(c, http.StatusUnauthorized, "Token missing")
		return 0, false
	}
	return userID, true
}

// parseID converts a path parameter to int64 with error handling.
func parseID(c *gin.Context, name, label string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid "+label+" ID format")
		return 0, false
	}
	return id, true
}

// bindOptionalJSON binds a body that may be absent altogether.
func bindOptionalJSON(c *gin.Context, obj any) error {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return nil
	}
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

var registerOnce sync.Once

// RegisterValidators installs the custom binding tags used by request types.
func RegisterValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("priority", validatePriority)
		}
	})
}

func validatePriority(fl validator.FieldLevel) bool {
	return model.Priority(fl.Field().String()).Valid()
}
