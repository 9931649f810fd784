package repository

import (
	"context"
	"errors"

	"taskboard/internal/model"

	"gorm.io/gorm"
)

func (r *BoardRepository) ListTasks(ctx context.Context, boardID, callerID int64) ([]model.Task, error) {
	db := r.db.WithContext(ctx)
	if _, err := ownedBoard(db, boardID, callerID); err != nil {
		return nil, err
	}

	tasks := make([]model.Task, 0)
	err := db.Where("board_id = ?", boardID).Order("id").Find(&tasks).Error
	return tasks, err
}

func (r *BoardRepository) CreateTask(ctx context.Context, callerID int64, task *model.Task) error {
	if task.Priority == "" {
		task.Priority = model.PriorityNormal
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ownedBoard(tx, task.BoardID, callerID); err != nil {
			return err
		}
		if r.opts.StrictTaskScope {
			var state model.State
			if err := findState(tx, task.StateID, &state); err != nil {
				return err
			}
			if state.BoardID != task.BoardID {
				return ErrStateNotFound
			}
		}
		return tx.Create(task).Error
	})
}

func (r *BoardRepository) UpdateTask(ctx context.Context, taskID, callerID int64, patch TaskPatch) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := findTask(tx, taskID, &task); err != nil {
			return err
		}
		if r.opts.StrictTaskScope {
			if _, err := ownedBoard(tx, task.BoardID, callerID); err != nil {
				if errors.Is(err, ErrBoardNotFound) {
					return ErrTaskNotFound
				}
				return err
			}
		}
		if patch.StateID != nil {
			var state model.State
			if err := findState(tx, *patch.StateID, &state); err != nil {
				return err
			}
			if r.opts.StrictTaskScope && state.BoardID != task.BoardID {
				return ErrStateNotFound
			}
		}

		patch.apply(&task)
		return tx.Save(&task).Error
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask succeeds whether or not the task exists.
func (r *BoardRepository) DeleteTask(ctx context.Context, taskID, callerID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task model.Task
		err := findTask(tx, taskID, &task)
		if errors.Is(err, ErrTaskNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if r.opts.StrictTaskScope {
			if _, err := ownedBoard(tx, task.BoardID, callerID); err != nil {
				if errors.Is(err, ErrBoardNotFound) {
					return nil
				}
				return err
			}
		}
		return tx.Delete(&model.Task{}, taskID).Error
	})
}

func findTask(tx *gorm.DB, taskID int64, task *model.Task) error {
	err := tx.Where("id = ?", taskID).First(task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrTaskNotFound
	}
	return err
}
