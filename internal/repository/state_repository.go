package repository

import (
	"context"
	"errors"

	"taskboard/internal/model"

	"gorm.io/gorm"
)

func (r *BoardRepository) CreateState(ctx context.Context, callerID int64, state *model.State) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ownedBoard(tx, state.BoardID, callerID); err != nil {
			return err
		}
		return tx.Create(state).Error
	})
}

func (r *BoardRepository) ListStates(ctx context.Context, boardID, callerID int64) ([]model.State, error) {
	db := r.db.WithContext(ctx)
	if _, err := ownedBoard(db, boardID, callerID); err != nil {
		return nil, err
	}

	states := make([]model.State, 0)
	err := db.Where("board_id = ?", boardID).Order("id").Find(&states).Error
	return states, err
}

// UpdateState resolves ownership through the state's board.
func (r *BoardRepository) UpdateState(ctx context.Context, stateID, callerID int64, name *string) (*model.State, error) {
	var state model.State
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := findState(tx, stateID, &state); err != nil {
			return err
		}
		if _, err := ownedBoard(tx, state.BoardID, callerID); err != nil {
			if errors.Is(err, ErrBoardNotFound) {
				return ErrStateNotFound
			}
			return err
		}
		if name == nil {
			return nil
		}
		state.Name = *name
		return tx.Model(&state).Update("name", state.Name).Error
	})
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (r *BoardRepository) DeleteState(ctx context.Context, boardID, stateID, callerID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ownedBoard(tx, boardID, callerID); err != nil {
			return err
		}

		var state model.State
		if err := findState(tx, stateID, &state); err != nil {
			return err
		}
		if state.BoardID != boardID {
			return ErrStateNotFound
		}

		var inUse int64
		if err := tx.Model(&model.Task{}).Where("state_id = ?", stateID).Count(&inUse).Error; err != nil {
			return err
		}
		if inUse > 0 {
			return ErrStateInUse
		}

		return tx.Delete(&model.State{}, stateID).Error
	})
}

func findState(tx *gorm.DB, stateID int64, state *model.State) error {
	err := tx.Where("id = ?", stateID).First(state).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrStateNotFound
	}
	return err
}
