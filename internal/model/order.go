package model

import "time"

// OrderStatus represents the lifecycle status of an order.
type OrderStatus string

const (
	OrderStatusActive    OrderStatus = "active"
	OrderStatusOnHold    OrderStatus = "on-hold"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether the status is one of the known values.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusActive, OrderStatusOnHold, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Priority bounds for explicit order input. Intra-column reprioritization may
// assign larger values when a column holds more cards than priority levels.
const (
	PriorityMin = 0
	PriorityMax = 3
)

// Order represents a unit of work tracked through the pipeline.
// LastUpdated is refreshed on every stage/assignee/priority/field mutation,
// never on note changes. Priority doubles as the intra-column ordering key,
// higher value sorting first.
type Order struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	ClientName   string      `json:"client_name" gorm:"size:255;not null"`
	Description  string      `json:"description" gorm:"type:text;not null"`
	ReceivedDate string      `json:"received_date" gorm:"size:10;not null"`
	DueDate      string      `json:"due_date" gorm:"size:10;not null"`
	StageID      uint        `json:"stage_id" gorm:"not null;index"`
	WorkmanID    *uint       `json:"workman_id" gorm:"index"`
	Priority     int         `json:"priority" gorm:"not null;default:0"`
	Status       OrderStatus `json:"status" gorm:"type:varchar(20);not null;default:'active';index"`
	LastUpdated  time.Time   `json:"last_updated"`
	CreatedAt    time.Time   `json:"created_at"`
}

// OrderDetail is the read model returned by list and get endpoints: the order
// row joined with its stage title, workman name, and note count, plus the
// derived inactivity alert. Alert is never persisted.
type OrderDetail struct {
	Order       `gorm:"embedded"`
	StageTitle  string `json:"stage_title"`
	WorkmanName string `json:"workman_name"`
	NotesCount  int    `json:"notes_count"`
	Alert       bool   `json:"alert" gorm:"-"`
}
