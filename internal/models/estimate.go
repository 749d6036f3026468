package models

import (
	"time"

	"github.com/google/uuid"
)

type ItemType string

const (
	ItemTypeWork     ItemType = "work"
	ItemTypeMaterial ItemType = "material"
)

type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountFixed   DiscountType = "fixed"
)

type EstimateStatus string

const (
	EstimateStatusDraft     EstimateStatus = "draft"
	EstimateStatusSent      EstimateStatus = "sent"
	EstimateStatusApproved  EstimateStatus = "approved"
	EstimateStatusCompleted EstimateStatus = "completed"
	EstimateStatusCancelled EstimateStatus = "cancelled"
)

// LineItem is one row of an estimate. Image holds either a public storage
// URL or an embedded data URL when the upload fell back to local encoding.
type LineItem struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Quantity float64  `json:"quantity"`
	Price    float64  `json:"price"`
	Unit     string   `json:"unit"`
	Image    string   `json:"image,omitempty"`
	Type     ItemType `json:"type"`
}

// Estimate is a numbered quotation. Items are persisted as a jsonb column;
// each save overwrites the prior record keyed by ID.
type Estimate struct {
	ID           uuid.UUID      `json:"id"`
	UserID       uuid.UUID      `json:"user_id"`
	ProjectID    uuid.NullUUID  `json:"project_id,omitempty"`
	Number       string         `json:"number"`
	Date         time.Time      `json:"date"`
	Status       EstimateStatus `json:"status"`
	ClientInfo   string         `json:"client_info"`
	Items        []LineItem     `json:"items"`
	Discount     float64        `json:"discount"`
	DiscountType DiscountType   `json:"discount_type"`
	Tax          float64        `json:"tax"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// CompanyProfile is the issuer identity printed in document headers.
type CompanyProfile struct {
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Details   string    `json:"details"`
	LogoURL   string    `json:"logo_url,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}
