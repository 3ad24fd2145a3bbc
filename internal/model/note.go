package model

import "time"

// Note is a free-text annotation on an order. Append-only except for
// deletion, which is restricted to the author or an admin. Note changes never
// touch the parent order's LastUpdated.
type Note struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	OrderID   uint      `json:"order_id" gorm:"not null;index"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedBy *uint     `json:"created_by" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
}

// NoteDetail is the note read model with the author name joined in.
type NoteDetail struct {
	Note          `gorm:"embedded"`
	CreatedByName string `json:"created_by_name"`
}
