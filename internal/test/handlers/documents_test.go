package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"smeta-backend/internal/handlers"
	"smeta-backend/internal/middleware"
	"smeta-backend/internal/services"
)

type stubDocumentService struct {
	data     []byte
	filename string
	err      error
}

func (s *stubDocumentService) GenerateEstimatePDF(ctx context.Context, userID, estimateID uuid.UUID) ([]byte, string, error) {
	return s.data, s.filename, s.err
}

func (s *stubDocumentService) GenerateActPDF(ctx context.Context, userID, estimateID uuid.UUID) ([]byte, string, error) {
	return s.data, s.filename, s.err
}

func (s *stubDocumentService) GenerateSchedulePDF(ctx context.Context, userID, estimateID uuid.UUID) ([]byte, string, error) {
	return s.data, s.filename, s.err
}

func (s *stubDocumentService) DeleteDocument(userID, documentID uuid.UUID, storagePath string) error {
	return s.err
}

func documentsRouter(svc handlers.DocumentGenerator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handlers.NewDocumentsHandler(nil, svc)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, uuid.NewString())
	})
	router.POST("/estimates/:estimate_id/documents/estimate", h.GenerateEstimatePDF)
	router.POST("/estimates/:estimate_id/documents/schedule", h.GenerateSchedulePDF)
	return router
}

func generateDocument(router *gin.Engine, kind string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", "/estimates/"+uuid.NewString()+"/documents/"+kind, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGenerateEstimatePDF_Success(t *testing.T) {
	router := documentsRouter(&stubDocumentService{
		data:     []byte("%PDF-1.4 payload"),
		filename: "estimate-2024-001-2024-03-15.pdf",
	})

	w := generateDocument(router, "estimate")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "estimate-2024-001-2024-03-15.pdf")
	assert.Equal(t, "%PDF-1.4 payload", w.Body.String())
}

func TestGenerateEstimatePDF_UnknownEstimateIsNotFound(t *testing.T) {
	router := documentsRouter(&stubDocumentService{err: services.ErrEstimateNotFound})

	w := generateDocument(router, "estimate")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "estimate not found")
}

func TestGenerateSchedulePDF_UnlinkedEstimateIsBadRequest(t *testing.T) {
	router := documentsRouter(&stubDocumentService{err: services.ErrNotLinkedToProject})

	w := generateDocument(router, "schedule")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "not linked to a project")
}

func TestGenerateEstimatePDF_RendererFailureIsInternal(t *testing.T) {
	router := documentsRouter(&stubDocumentService{err: errors.New("font cache corrupted")})

	w := generateDocument(router, "estimate")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "failed to generate document")
}
