package models

type CreateEstimateRequest struct {
	ProjectID    string       `json:"project_id,omitempty"`
	ClientInfo   string       `json:"client_info"`
	Items        []LineItem   `json:"items"`
	Discount     float64      `json:"discount"`
	DiscountType DiscountType `json:"discount_type" example:"percent"`
	Tax          float64      `json:"tax"`
}

type UpdateEstimateRequest struct {
	ClientInfo   *string         `json:"client_info,omitempty"`
	Items        *[]LineItem     `json:"items,omitempty"`
	Discount     *float64        `json:"discount,omitempty"`
	DiscountType *DiscountType   `json:"discount_type,omitempty"`
	Tax          *float64        `json:"tax,omitempty"`
	Status       *EstimateStatus `json:"status,omitempty"`
}

type ProjectRequest struct {
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	ClientInfo  string  `json:"client_info"`
	Budget      float64 `json:"budget"`
	StartDate   string  `json:"start_date,omitempty" example:"2025-04-01"`
	EndDate     string  `json:"end_date,omitempty" example:"2025-06-30"`
	Description string  `json:"description,omitempty"`
}

type StageRequest struct {
	Name      string      `json:"name"`
	Status    StageStatus `json:"status,omitempty"`
	Amount    float64     `json:"amount"`
	StartDate string      `json:"start_date,omitempty"`
	EndDate   string      `json:"end_date,omitempty"`
	Position  int         `json:"position"`
}

type FinanceEntryRequest struct {
	Type     FinanceEntryType `json:"type" example:"expense"`
	Amount   float64          `json:"amount"`
	Category string           `json:"category"`
	Note     string           `json:"note,omitempty"`
	Date     string           `json:"date,omitempty" example:"2025-04-15"`
}

type TaskRequest struct {
	Title     string `json:"title"`
	ProjectID string `json:"project_id,omitempty"`
	DueDate   string `json:"due_date,omitempty"`
}

type ToolRequest struct {
	Name     string     `json:"name"`
	Status   ToolStatus `json:"status,omitempty"`
	Location string     `json:"location,omitempty"`
	Note     string     `json:"note,omitempty"`
}

type ConsumableRequest struct {
	Name        string  `json:"name"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	MinQuantity float64 `json:"min_quantity"`
}

type ProfileRequest struct {
	Name    string `json:"name"`
	Details string `json:"details"`
	LogoURL string `json:"logo_url,omitempty"`
}
