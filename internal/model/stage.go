package model

import "time"

// Stage represents an ordered step in the production pipeline, rendered as a
// kanban column. Positions are re-derived as 0..n-1 on reorder but are not
// required to stay contiguous between reorders.
type Stage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Position  int       `json:"position" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
