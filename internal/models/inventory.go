package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type ToolStatus string

const (
	ToolStatusAvailable ToolStatus = "available"
	ToolStatusInUse     ToolStatus = "in_use"
	ToolStatusRepair    ToolStatus = "repair"
)

type Tool struct {
	ID        uuid.UUID      `json:"id"`
	UserID    uuid.UUID      `json:"user_id"`
	Name      string         `json:"name"`
	Status    ToolStatus     `json:"status"`
	Location  sql.NullString `json:"location,omitempty"`
	Note      sql.NullString `json:"note,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Consumable tracks stock of expendable materials. MinQuantity is the
// reorder threshold shown in the shopping list.
type Consumable struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Quantity    float64   `json:"quantity"`
	Unit        string    `json:"unit"`
	MinQuantity float64   `json:"min_quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type TaskStatus string

const (
	TaskStatusOpen TaskStatus = "open"
	TaskStatusDone TaskStatus = "done"
)

type Task struct {
	ID        uuid.UUID     `json:"id"`
	UserID    uuid.UUID     `json:"user_id"`
	ProjectID uuid.NullUUID `json:"project_id,omitempty"`
	Title     string        `json:"title"`
	Status    TaskStatus    `json:"status"`
	DueDate   sql.NullTime  `json:"due_date,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
