package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"smeta-backend/internal/models"
	"smeta-backend/internal/supabase"
)

type InventoryHandler struct {
	dbClient *supabase.DatabaseClient
}

func NewInventoryHandler(dbClient *supabase.DatabaseClient) *InventoryHandler {
	return &InventoryHandler{dbClient: dbClient}
}

// CreateTool godoc
// @Summary     Add a tool
// @Tags        inventory
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       tool body models.ToolRequest true "Tool"
// @Success     201 {object} models.Tool
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /tools [post]
func (h *InventoryHandler) CreateTool(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.ToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "name is required"})
		return
	}
	if req.Status == "" {
		req.Status = models.ToolStatusAvailable
	}

	tool := &models.Tool{
		ID:       uuid.New(),
		UserID:   userID,
		Name:     req.Name,
		Status:   req.Status,
		Location: nullString(req.Location),
		Note:     nullString(req.Note),
	}

	created, err := h.dbClient.CreateTool(tool)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to create tool", Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListTools godoc
// @Summary     List tools
// @Tags        inventory
// @Produce     json
// @Security    Bearer
// @Success     200 {array} models.Tool
// @Failure     500 {object} models.ErrorResponse
// @Router      /tools [get]
func (h *InventoryHandler) ListTools(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	tools, err := h.dbClient.ListTools(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list tools", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, tools)
}

// UpdateTool godoc
// @Summary     Update a tool
// @Tags        inventory
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       tool_id path string true "Tool ID (UUID)"
// @Param       tool body models.ToolRequest true "Tool"
// @Success     200 {object} models.Tool
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /tools/{tool_id} [put]
func (h *InventoryHandler) UpdateTool(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	toolID, ok := pathUUID(c, "tool_id")
	if !ok {
		return
	}

	var req models.ToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	tool := &models.Tool{
		ID:       toolID,
		UserID:   userID,
		Name:     req.Name,
		Status:   req.Status,
		Location: nullString(req.Location),
		Note:     nullString(req.Note),
	}

	updated, err := h.dbClient.UpdateTool(tool)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to update tool", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteTool godoc
// @Summary     Delete a tool
// @Tags        inventory
// @Security    Bearer
// @Param       tool_id path string true "Tool ID (UUID)"
// @Success     204
// @Failure     500 {object} models.ErrorResponse
// @Router      /tools/{tool_id} [delete]
func (h *InventoryHandler) DeleteTool(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	toolID, ok := pathUUID(c, "tool_id")
	if !ok {
		return
	}

	if err := h.dbClient.DeleteTool(toolID, userID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to delete tool", Message: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateConsumable godoc
// @Summary     Add a consumable
// @Tags        inventory
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       consumable body models.ConsumableRequest true "Consumable"
// @Success     201 {object} models.Consumable
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /consumables [post]
func (h *InventoryHandler) CreateConsumable(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.ConsumableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "name is required"})
		return
	}
	if req.Quantity < 0 || req.MinQuantity < 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "quantities must be non-negative"})
		return
	}

	consumable := &models.Consumable{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        req.Name,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		MinQuantity: req.MinQuantity,
	}

	created, err := h.dbClient.CreateConsumable(consumable)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to create consumable", Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListConsumables godoc
// @Summary     List consumables
// @Tags        inventory
// @Produce     json
// @Security    Bearer
// @Success     200 {array} models.Consumable
// @Failure     500 {object} models.ErrorResponse
// @Router      /consumables [get]
func (h *InventoryHandler) ListConsumables(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	consumables, err := h.dbClient.ListConsumables(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list consumables", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, consumables)
}

// UpdateConsumable godoc
// @Summary     Update a consumable
// @Tags        inventory
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       consumable_id path string true "Consumable ID (UUID)"
// @Param       consumable body models.ConsumableRequest true "Consumable"
// @Success     200 {object} models.Consumable
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /consumables/{consumable_id} [put]
func (h *InventoryHandler) UpdateConsumable(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	consumableID, ok := pathUUID(c, "consumable_id")
	if !ok {
		return
	}

	var req models.ConsumableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	if req.Quantity < 0 || req.MinQuantity < 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "quantities must be non-negative"})
		return
	}

	consumable := &models.Consumable{
		ID:          consumableID,
		UserID:      userID,
		Name:        req.Name,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		MinQuantity: req.MinQuantity,
	}

	updated, err := h.dbClient.UpdateConsumable(consumable)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to update consumable", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteConsumable godoc
// @Summary     Delete a consumable
// @Tags        inventory
// @Security    Bearer
// @Param       consumable_id path string true "Consumable ID (UUID)"
// @Success     204
// @Failure     500 {object} models.ErrorResponse
// @Router      /consumables/{consumable_id} [delete]
func (h *InventoryHandler) DeleteConsumable(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	consumableID, ok := pathUUID(c, "consumable_id")
	if !ok {
		return
	}

	if err := h.dbClient.DeleteConsumable(consumableID, userID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to delete consumable", Message: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
