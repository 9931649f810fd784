package repository

import "errors"

// Common repository errors
var (
	// ErrUserExists is returned when a username is already taken
	ErrUserExists = errors.New("user already exists")

	// ErrBoardNotFound is returned when no board with the id is owned by the caller
	ErrBoardNotFound = errors.New("board not found")

	ErrStateNotFound = errors.New("state not found")
	ErrTaskNotFound  = errors.New("task not found")

	// ErrStateInUse is returned when deleting a state that tasks still reference
	ErrStateInUse = errors.New("state has tasks")
)
