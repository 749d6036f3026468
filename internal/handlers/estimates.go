package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"smeta-backend/internal/calc"
	"smeta-backend/internal/models"
	"smeta-backend/internal/supabase"
)

type EstimatesHandler struct {
	dbClient       *supabase.DatabaseClient
	realtimeClient *supabase.RealtimeClient
}

func NewEstimatesHandler(dbClient *supabase.DatabaseClient, realtimeClient *supabase.RealtimeClient) *EstimatesHandler {
	return &EstimatesHandler{
		dbClient:       dbClient,
		realtimeClient: realtimeClient,
	}
}

// floorItems clamps negative quantities and prices at zero before the items
// reach the calculator; line totals are never negative.
func floorItems(items []models.LineItem) []models.LineItem {
	for i := range items {
		if items[i].Quantity < 0 {
			items[i].Quantity = 0
		}
		if items[i].Price < 0 {
			items[i].Price = 0
		}
		if items[i].ID == "" {
			items[i].ID = uuid.New().String()
		}
		if items[i].Type != models.ItemTypeMaterial {
			items[i].Type = models.ItemTypeWork
		}
	}
	return items
}

// CreateEstimate godoc
// @Summary     Create an estimate
// @Description Creates an estimate with a freshly generated YYYY-NNN number
// @Tags        estimates
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       estimate body models.CreateEstimateRequest true "Estimate"
// @Success     201 {object} models.Estimate
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /estimates [post]
func (h *EstimatesHandler) CreateEstimate(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.CreateEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	if req.Discount < 0 || req.Tax < 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "discount and tax must be non-negative"})
		return
	}
	if req.DiscountType == "" {
		req.DiscountType = models.DiscountPercent
	}

	projectID, err := parseNullUUID(req.ProjectID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid project_id"})
		return
	}

	numbers, err := h.dbClient.ListEstimateNumbers(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to generate number", Message: err.Error()})
		return
	}

	now := time.Now()
	estimate := &models.Estimate{
		ID:           uuid.New(),
		UserID:       userID,
		ProjectID:    projectID,
		Number:       calc.NextEstimateNumber(numbers, now.Year()),
		Date:         now,
		Status:       models.EstimateStatusDraft,
		ClientInfo:   req.ClientInfo,
		Items:        floorItems(req.Items),
		Discount:     req.Discount,
		DiscountType: req.DiscountType,
		Tax:          req.Tax,
	}

	created, err := h.dbClient.CreateEstimate(estimate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to create estimate", Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListEstimates godoc
// @Summary     List estimates
// @Tags        estimates
// @Produce     json
// @Security    Bearer
// @Success     200 {array} models.Estimate
// @Failure     500 {object} models.ErrorResponse
// @Router      /estimates [get]
func (h *EstimatesHandler) ListEstimates(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	estimates, err := h.dbClient.ListEstimates(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list estimates", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, estimates)
}

// GetEstimate godoc
// @Summary     Get an estimate
// @Tags        estimates
// @Produce     json
// @Security    Bearer
// @Param       estimate_id path string true "Estimate ID (UUID)"
// @Success     200 {object} models.Estimate
// @Failure     404 {object} models.ErrorResponse
// @Router      /estimates/{estimate_id} [get]
func (h *EstimatesHandler) GetEstimate(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	estimateID, ok := pathUUID(c, "estimate_id")
	if !ok {
		return
	}

	estimate, err := h.dbClient.GetEstimate(estimateID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "estimate not found", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, estimate)
}

// UpdateEstimate godoc
// @Summary     Update an estimate
// @Description Overwrites the stored record in place; no version history is kept
// @Tags        estimates
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       estimate_id path string true "Estimate ID (UUID)"
// @Param       estimate body models.UpdateEstimateRequest true "Fields to update"
// @Success     200 {object} models.Estimate
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /estimates/{estimate_id} [put]
func (h *EstimatesHandler) UpdateEstimate(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	estimateID, ok := pathUUID(c, "estimate_id")
	if !ok {
		return
	}

	var req models.UpdateEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	estimate, err := h.dbClient.GetEstimate(estimateID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "estimate not found", Message: err.Error()})
		return
	}

	statusChanged := false
	if req.ClientInfo != nil {
		estimate.ClientInfo = *req.ClientInfo
	}
	if req.Items != nil {
		estimate.Items = floorItems(*req.Items)
	}
	if req.Discount != nil {
		if *req.Discount < 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "discount must be non-negative"})
			return
		}
		estimate.Discount = *req.Discount
	}
	if req.DiscountType != nil {
		estimate.DiscountType = *req.DiscountType
	}
	if req.Tax != nil {
		if *req.Tax < 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "tax must be non-negative"})
			return
		}
		estimate.Tax = *req.Tax
	}
	if req.Status != nil && *req.Status != estimate.Status {
		estimate.Status = *req.Status
		statusChanged = true
	}

	updated, err := h.dbClient.UpdateEstimate(estimate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to update estimate", Message: err.Error()})
		return
	}

	if statusChanged {
		h.realtimeClient.PublishUserEvent(userID, "estimate_status_changed",
			supabase.EstimateStatusPayload(updated.ID, string(updated.Status)))
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteEstimate godoc
// @Summary     Delete an estimate
// @Tags        estimates
// @Security    Bearer
// @Param       estimate_id path string true "Estimate ID (UUID)"
// @Success     204
// @Failure     500 {object} models.ErrorResponse
// @Router      /estimates/{estimate_id} [delete]
func (h *EstimatesHandler) DeleteEstimate(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	estimateID, ok := pathUUID(c, "estimate_id")
	if !ok {
		return
	}

	if err := h.dbClient.DeleteEstimate(estimateID, userID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to delete estimate", Message: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// GetTotals godoc
// @Summary     Get the financial summary of an estimate
// @Description Returns the six derived totals; the PDF renderer consumes the same values
// @Tags        estimates
// @Produce     json
// @Security    Bearer
// @Param       estimate_id path string true "Estimate ID (UUID)"
// @Success     200 {object} calc.Totals
// @Failure     404 {object} models.ErrorResponse
// @Router      /estimates/{estimate_id}/totals [get]
func (h *EstimatesHandler) GetTotals(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	estimateID, ok := pathUUID(c, "estimate_id")
	if !ok {
		return
	}

	estimate, err := h.dbClient.GetEstimate(estimateID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "estimate not found", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, calc.TotalsFor(estimate.Items, estimate.Discount, estimate.DiscountType, estimate.Tax))
}

// NextNumber godoc
// @Summary     Preview the next estimate number for the current year
// @Tags        estimates
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.NextNumberResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /estimates/next-number [get]
func (h *EstimatesHandler) NextNumber(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	numbers, err := h.dbClient.ListEstimateNumbers(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list estimate numbers", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.NextNumberResponse{
		Number: calc.NextEstimateNumber(numbers, time.Now().Year()),
	})
}

// ShoppingList godoc
// @Summary     Material items of an estimate as a shopping list
// @Tags        estimates
// @Produce     json
// @Security    Bearer
// @Param       estimate_id path string true "Estimate ID (UUID)"
// @Success     200 {object} models.ShoppingListResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /estimates/{estimate_id}/shopping-list [get]
func (h *EstimatesHandler) ShoppingList(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	estimateID, ok := pathUUID(c, "estimate_id")
	if !ok {
		return
	}

	estimate, err := h.dbClient.GetEstimate(estimateID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "estimate not found", Message: err.Error()})
		return
	}

	items, total := calc.ShoppingList(estimate.Items)
	c.JSON(http.StatusOK, models.ShoppingListResponse{
		EstimateID: estimate.ID.String(),
		Items:      items,
		Total:      total,
	})
}
