package repository

import (
	"context"

	"taskboard/internal/model"
)

type UserRepositoryInterface interface {
	// Create assigns the user's id. It returns ErrUserExists on a duplicate username.
	Create(ctx context.Context, user *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// BoardRepositoryInterface holds boards and everything nested under them.
// Ownership of states and tasks is always derived from their board.
type BoardRepositoryInterface interface {
	// CreateBoard stores the board together with its default state.
	CreateBoard(ctx context.Context, board *model.Board) error
	ListBoards(ctx context.Context, ownerID int64) ([]model.Board, error)

	CreateState(ctx context.Context, callerID int64, state *model.State) error
	ListStates(ctx context.Context, boardID, callerID int64) ([]model.State, error)
	UpdateState(ctx context.Context, stateID, callerID int64, name *string) (*model.State, error)
	DeleteState(ctx context.Context, boardID, stateID, callerID int64) error

	ListTasks(ctx context.Context, boardID, callerID int64) ([]model.Task, error)
	CreateTask(ctx context.Context, callerID int64, task *model.Task) error
	UpdateTask(ctx context.Context, taskID, callerID int64, patch TaskPatch) (*model.Task, error)
	DeleteTask(ctx context.Context, taskID, callerID int64) error
}

// TaskPatch carries a partial task update; nil fields are left unchanged.
type TaskPatch struct {
	StateID     *int64
	Title       *string
	Description *string
	Priority    *model.Priority
}

func (p TaskPatch) apply(task *model.Task) {
	if p.StateID != nil {
		task.StateID = *p.StateID
	}
	if p.Title != nil {
		task.Title = *p.Title
	}
	if p.Description != nil {
		task.Description = *p.Description
	}
	if p.Priority != nil {
		task.Priority = *p.Priority
	}
}

// Options tune the rules shared by every backend.
type Options struct {
	// StrictTaskScope validates a new task's state against its board and
	// restricts task update/delete to tasks on the caller's boards. When
	// false, tasks keep the permissive legacy rules: any authenticated user
	// may update or delete any task by id, and a new task's state id is not
	// checked.
	StrictTaskScope bool
}
