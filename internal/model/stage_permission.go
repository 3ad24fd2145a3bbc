package model

import "time"

// StagePermission grants a user visibility of one stage. The set of rows for
// a user is replaced wholesale on user update. Required non-empty for client
// accounts.
type StagePermission struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_stage"`
	StageID   uint      `json:"stage_id" gorm:"not null;uniqueIndex:idx_user_stage"`
	CreatedAt time.Time `json:"created_at"`
}
