package model

import "time"

// Workman represents a tradesperson who can be assigned to orders.
// Orders reference workmen through a nullable key; deleting a workman leaves
// referencing orders behaving as unassigned.
type Workman struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null;index"`
	Email     string    `json:"email,omitempty" gorm:"size:255"`
	Phone     string    `json:"phone,omitempty" gorm:"size:50"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
