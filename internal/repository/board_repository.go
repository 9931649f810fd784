package repository

import (
	"context"
	"errors"

	"taskboard/internal/model"

	"gorm.io/gorm"
)

// BoardRepository is the gorm-backed resource store for boards, states and
// tasks. Its state and task methods live in state_repository.go and
// task_repository.go.
type BoardRepository struct {
	db   *gorm.DB
	opts Options
}

var _ BoardRepositoryInterface = (*BoardRepository)(nil)

func NewBoardRepository(db *gorm.DB, opts Options) *BoardRepository {
	return &BoardRepository{db: db, opts: opts}
}

// AutoMigrate creates the tables used by the gorm backend.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.User{}, &model.Board{}, &model.State{}, &model.Task{})
}

// CreateBoard inserts the board and its default state in one transaction.
func (r *BoardRepository) CreateBoard(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(board).Error; err != nil {
			return err
		}
		state := &model.State{BoardID: board.ID, Name: model.DefaultStateName}
		return tx.Create(state).Error
	})
}

func (r *BoardRepository) ListBoards(ctx context.Context, ownerID int64) ([]model.Board, error) {
	boards := make([]model.Board, 0)
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id").Find(&boards).Error
	return boards, err
}

// ownedBoard returns ErrBoardNotFound unless boardID exists and belongs to callerID.
func ownedBoard(tx *gorm.DB, boardID, callerID int64) (*model.Board, error) {
	var board model.Board
	err := tx.Where("id = ? AND owner_id = ?", boardID, callerID).First(&board).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBoardNotFound
	}
	if err != nil {
		return nil, err
	}
	return &board, nil
}
