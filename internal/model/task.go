package model

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID          int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	BoardID     int64    `gorm:"not null;index" json:"boardId"`
	StateID     int64    `gorm:"not null;index" json:"stateId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `gorm:"not null;default:normal" json:"priority"`
}
