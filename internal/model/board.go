package model

type Board struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	OwnerID     int64  `gorm:"not null;index" json:"ownerId"`
}

// DefaultStateName is the state every new board starts with.
const DefaultStateName = "OPEN"
