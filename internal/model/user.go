package model

import "time"

// Role is the closed set of account roles.
type Role string

const (
	// RoleAdmin has full access to every entity and operation.
	RoleAdmin Role = "admin"
	// RoleClient is a workshop customer tracking a subset of stages.
	RoleClient Role = "client"
	// RoleUser is a workman account limited to its own assigned orders.
	RoleUser Role = "user"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleClient, RoleUser:
		return true
	}
	return false
}

// User represents an authenticated account in the system.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         Role      `json:"role" gorm:"type:varchar(20);not null;index"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Materialized from StagePermission rows, not a column.
	VisibleStages []uint `json:"visible_stages" gorm:"-"`
}
