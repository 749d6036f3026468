package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"smeta-backend/internal/models"
	"smeta-backend/internal/services"
	"smeta-backend/internal/supabase"
)

// DocumentGenerator is the part of DocumentService the handler calls.
type DocumentGenerator interface {
	GenerateEstimatePDF(ctx context.Context, userID, estimateID uuid.UUID) ([]byte, string, error)
	GenerateActPDF(ctx context.Context, userID, estimateID uuid.UUID) ([]byte, string, error)
	GenerateSchedulePDF(ctx context.Context, userID, estimateID uuid.UUID) ([]byte, string, error)
	DeleteDocument(userID, documentID uuid.UUID, storagePath string) error
}

type DocumentsHandler struct {
	dbClient        *supabase.DatabaseClient
	documentService DocumentGenerator
}

func NewDocumentsHandler(dbClient *supabase.DatabaseClient, documentService DocumentGenerator) *DocumentsHandler {
	return &DocumentsHandler{
		dbClient:        dbClient,
		documentService: documentService,
	}
}

func (h *DocumentsHandler) servePDF(c *gin.Context, data []byte, filename string, err error) {
	if err != nil {
		if errors.Is(err, services.ErrEstimateNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "estimate not found", Message: err.Error()})
			return
		}
		if errors.Is(err, services.ErrNotLinkedToProject) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "estimate is not linked to a project", Message: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to generate document", Message: err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

// GenerateEstimatePDF godoc
// @Summary     Render an estimate as a PDF
// @Description Produces the itemized estimate document with totals, amount in words and photo appendix
// @Tags        documents
// @Produce     application/pdf
// @Security    Bearer
// @Param       estimate_id path string true "Estimate ID (UUID)"
// @Success     200 {file} binary
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /estimates/{estimate_id}/documents/estimate [post]
func (h *DocumentsHandler) GenerateEstimatePDF(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	estimateID, ok := pathUUID(c, "estimate_id")
	if !ok {
		return
	}

	data, filename, err := h.documentService.GenerateEstimatePDF(c.Request.Context(), userID, estimateID)
	h.servePDF(c, data, filename, err)
}

// GenerateActPDF godoc
// @Summary     Render a completion act as a PDF
// @Tags        documents
// @Produce     application/pdf
// @Security    Bearer
// @Param       estimate_id path string true "Estimate ID (UUID)"
// @Success     200 {file} binary
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /estimates/{estimate_id}/documents/act [post]
func (h *DocumentsHandler) GenerateActPDF(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	estimateID, ok := pathUUID(c, "estimate_id")
	if !ok {
		return
	}

	data, filename, err := h.documentService.GenerateActPDF(c.Request.Context(), userID, estimateID)
	h.servePDF(c, data, filename, err)
}

// GenerateSchedulePDF godoc
// @Summary     Render a work schedule as a PDF
// @Description Requires the estimate to be linked to a project with work stages
// @Tags        documents
// @Produce     application/pdf
// @Security    Bearer
// @Param       estimate_id path string true "Estimate ID (UUID)"
// @Success     200 {file} binary
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /estimates/{estimate_id}/documents/schedule [post]
func (h *DocumentsHandler) GenerateSchedulePDF(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	estimateID, ok := pathUUID(c, "estimate_id")
	if !ok {
		return
	}

	data, filename, err := h.documentService.GenerateSchedulePDF(c.Request.Context(), userID, estimateID)
	h.servePDF(c, data, filename, err)
}

// ListDocuments godoc
// @Summary     List generated documents
// @Tags        documents
// @Produce     json
// @Security    Bearer
// @Success     200 {array} models.Document
// @Failure     500 {object} models.ErrorResponse
// @Router      /documents [get]
func (h *DocumentsHandler) ListDocuments(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	documents, err := h.dbClient.ListDocuments(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list documents", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, documents)
}

// DeleteDocument godoc
// @Summary     Delete a generated document and its stored file
// @Tags        documents
// @Security    Bearer
// @Param       document_id path string true "Document ID (UUID)"
// @Success     204
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /documents/{document_id} [delete]
func (h *DocumentsHandler) DeleteDocument(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	documentID, ok := pathUUID(c, "document_id")
	if !ok {
		return
	}

	doc, err := h.dbClient.GetDocument(documentID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "document not found", Message: err.Error()})
		return
	}

	if err := h.documentService.DeleteDocument(userID, documentID, doc.StoragePath); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to delete document", Message: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
