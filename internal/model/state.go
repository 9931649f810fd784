package model

// State is a named workflow column within a Board.
type State struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	BoardID int64  `gorm:"not null;index" json:"boardId"`
	Name    string `gorm:"not null" json:"name"`
}
