package models

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

// UploadedFile is the per-file outcome of a batch upload. Path carries the
// embedded-fallback prefix when the bytes never reached object storage and
// PublicURL holds a data URL instead of an HTTP location.
type UploadedFile struct {
	Filename  string `json:"filename"`
	Path      string `json:"path"`
	PublicURL string `json:"public_url"`
	Size      int64  `json:"size"`
	Error     string `json:"error,omitempty"`
}

type UploadResponse struct {
	Files  []UploadedFile `json:"files"`
	Errors []string       `json:"errors,omitempty"`
}

type NextNumberResponse struct {
	Number string `json:"number"`
}

// ShoppingListEntry is one material row aggregated from an estimate.
type ShoppingListEntry struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Price    float64 `json:"price"`
	Total    float64 `json:"total"`
}

type ShoppingListResponse struct {
	EstimateID string              `json:"estimate_id"`
	Items      []ShoppingListEntry `json:"items"`
	Total      float64             `json:"total"`
}
