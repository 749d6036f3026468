package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusPaused    ProjectStatus = "paused"
	ProjectStatusCompleted ProjectStatus = "completed"
)

type Project struct {
	ID          uuid.UUID      `json:"id"`
	UserID      uuid.UUID      `json:"user_id"`
	Name        string         `json:"name"`
	Address     string         `json:"address"`
	ClientInfo  string         `json:"client_info"`
	Status      ProjectStatus  `json:"status"`
	Budget      float64        `json:"budget"`
	StartDate   sql.NullTime   `json:"start_date,omitempty"`
	EndDate     sql.NullTime   `json:"end_date,omitempty"`
	Description sql.NullString `json:"description,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type StageStatus string

const (
	StageStatusPlanned    StageStatus = "planned"
	StageStatusInProgress StageStatus = "in_progress"
	StageStatusCompleted  StageStatus = "completed"
)

type WorkStage struct {
	ID        uuid.UUID    `json:"id"`
	ProjectID uuid.UUID    `json:"project_id"`
	UserID    uuid.UUID    `json:"user_id"`
	Name      string       `json:"name"`
	Status    StageStatus  `json:"status"`
	Amount    float64      `json:"amount"`
	StartDate sql.NullTime `json:"start_date,omitempty"`
	EndDate   sql.NullTime `json:"end_date,omitempty"`
	Position  int          `json:"position"`
	CreatedAt time.Time    `json:"created_at"`
}

type FinanceEntryType string

const (
	FinanceIncome  FinanceEntryType = "income"
	FinanceExpense FinanceEntryType = "expense"
)

// FinanceEntry records money moving in or out of a project. ReceiptPath may
// carry the embedded-fallback marker when the receipt photo never reached
// object storage.
type FinanceEntry struct {
	ID          uuid.UUID        `json:"id"`
	ProjectID   uuid.UUID        `json:"project_id"`
	UserID      uuid.UUID        `json:"user_id"`
	Type        FinanceEntryType `json:"type"`
	Amount      float64          `json:"amount"`
	Category    string           `json:"category"`
	Note        sql.NullString   `json:"note,omitempty"`
	ReceiptPath sql.NullString   `json:"receipt_path,omitempty"`
	ReceiptURL  sql.NullString   `json:"receipt_url,omitempty"`
	Date        time.Time        `json:"date"`
	CreatedAt   time.Time        `json:"created_at"`
}

type PhotoReport struct {
	ID          uuid.UUID      `json:"id"`
	ProjectID   uuid.UUID      `json:"project_id"`
	UserID      uuid.UUID      `json:"user_id"`
	Caption     sql.NullString `json:"caption,omitempty"`
	StoragePath string         `json:"storage_path"`
	StorageURL  string         `json:"storage_url"`
	FileSize    sql.NullInt64  `json:"file_size,omitempty"`
	MimeType    string         `json:"mime_type"`
	CreatedAt   time.Time      `json:"created_at"`
}

// Document is a generated or uploaded file attached to the user's account.
type Document struct {
	ID          uuid.UUID     `json:"id"`
	UserID      uuid.UUID     `json:"user_id"`
	ProjectID   uuid.NullUUID `json:"project_id,omitempty"`
	Kind        string        `json:"kind"`
	Filename    string        `json:"filename"`
	StoragePath string        `json:"storage_path"`
	StorageURL  string        `json:"storage_url"`
	FileSize    sql.NullInt64 `json:"file_size,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}
