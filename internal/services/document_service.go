package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"smeta-backend/internal/calc"
	"smeta-backend/internal/host"
	"smeta-backend/internal/imgproc"
	"smeta-backend/internal/models"
	"smeta-backend/internal/pdf"
	"smeta-backend/internal/supabase"
)

var (
	ErrNotLinkedToProject = errors.New("estimate is not linked to a project")
	ErrEstimateNotFound   = errors.New("estimate not found")
)

// DocumentService turns stored estimates into downloadable PDF documents,
// keeps a copy in object storage and records it in the documents table.
type DocumentService struct {
	db       *supabase.DatabaseClient
	storage  *supabase.StorageClient
	realtime *supabase.RealtimeClient
	renderer *pdf.Renderer
	caps     host.Capabilities
	bucket   string
}

func NewDocumentService(
	db *supabase.DatabaseClient,
	storage *supabase.StorageClient,
	realtime *supabase.RealtimeClient,
	renderer *pdf.Renderer,
	caps host.Capabilities,
	documentBucket string,
) *DocumentService {
	if caps == nil {
		caps = host.Nop{}
	}
	return &DocumentService{
		db:       db,
		storage:  storage,
		realtime: realtime,
		renderer: renderer,
		caps:     caps,
		bucket:   documentBucket,
	}
}

// GenerateEstimatePDF renders the itemized quote for an estimate. Totals are
// computed once here and handed to the renderer, which only formats them.
func (s *DocumentService) GenerateEstimatePDF(ctx context.Context, userID, estimateID uuid.UUID) ([]byte, string, error) {
	estimate, company, logo, err := s.loadBundle(userID, estimateID)
	if err != nil {
		return nil, "", err
	}

	totals := calc.TotalsFor(estimate.Items, estimate.Discount, estimate.DiscountType, estimate.Tax)
	data, filename, err := s.renderer.Estimate(pdf.EstimateDoc{
		Company:  *company,
		Logo:     logo,
		Estimate: *estimate,
		Totals:   totals,
	})
	if err != nil {
		return nil, "", err
	}

	s.finish(ctx, userID, estimate, pdf.KindEstimate, filename, data)
	return data, filename, nil
}

// GenerateActPDF renders the completion act for an estimate; the payable
// amount equals the estimate's grand total.
func (s *DocumentService) GenerateActPDF(ctx context.Context, userID, estimateID uuid.UUID) ([]byte, string, error) {
	estimate, company, logo, err := s.loadBundle(userID, estimateID)
	if err != nil {
		return nil, "", err
	}

	totals := calc.TotalsFor(estimate.Items, estimate.Discount, estimate.DiscountType, estimate.Tax)
	data, filename, err := s.renderer.CompletionAct(pdf.ActDoc{
		Company:    *company,
		Logo:       logo,
		Number:     estimate.Number,
		Date:       estimate.Date,
		ClientInfo: estimate.ClientInfo,
		Items:      estimate.Items,
		Total:      totals.GrandTotal,
	})
	if err != nil {
		return nil, "", err
	}

	s.finish(ctx, userID, estimate, pdf.KindAct, filename, data)
	return data, filename, nil
}

// GenerateSchedulePDF renders the stage plan of the estimate's project.
func (s *DocumentService) GenerateSchedulePDF(ctx context.Context, userID, estimateID uuid.UUID) ([]byte, string, error) {
	estimate, company, logo, err := s.loadBundle(userID, estimateID)
	if err != nil {
		return nil, "", err
	}
	if !estimate.ProjectID.Valid {
		return nil, "", ErrNotLinkedToProject
	}

	project, err := s.db.GetProject(estimate.ProjectID.UUID, userID)
	if err != nil {
		return nil, "", err
	}
	stages, err := s.db.ListStages(project.ID, userID)
	if err != nil {
		return nil, "", err
	}

	data, filename, err := s.renderer.WorkSchedule(pdf.ScheduleDoc{
		Company:     *company,
		Logo:        logo,
		ProjectName: project.Name,
		Number:      estimate.Number,
		Date:        estimate.Date,
		Stages:      stages,
	})
	if err != nil {
		return nil, "", err
	}

	s.finish(ctx, userID, estimate, pdf.KindSchedule, filename, data)
	return data, filename, nil
}

func (s *DocumentService) loadBundle(userID, estimateID uuid.UUID) (*models.Estimate, *models.CompanyProfile, []byte, error) {
	estimate, err := s.db.GetEstimate(estimateID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, nil, ErrEstimateNotFound
		}
		return nil, nil, nil, err
	}

	company, err := s.db.GetProfile(userID)
	if err != nil {
		// Documents are still valid without an issuer block.
		company = &models.CompanyProfile{UserID: userID}
	}

	var logo []byte
	if imgproc.IsDataURL(company.LogoURL) {
		if _, data, err := imgproc.DecodeDataURL(company.LogoURL); err == nil {
			logo = data
		}
	}

	return estimate, company, logo, nil
}

// finish archives the generated file and notifies the host. Failures here
// never fail the generation itself: the caller already holds the bytes.
func (s *DocumentService) finish(ctx context.Context, userID uuid.UUID, estimate *models.Estimate, kind, filename string, data []byte) {
	storagePath := supabase.ObjectPath(userID, estimate.ProjectID, filename)
	storageURL, err := s.storage.UploadFile(s.bucket, storagePath, data, "application/pdf")
	if err != nil {
		slog.Warn("failed to archive generated document", "filename", filename, "error", err)
		return
	}

	doc := &models.Document{
		ID:          uuid.New(),
		UserID:      userID,
		ProjectID:   estimate.ProjectID,
		Kind:        kind,
		Filename:    filename,
		StoragePath: storagePath,
		StorageURL:  storageURL,
		FileSize:    sql.NullInt64{Int64: int64(len(data)), Valid: true},
	}
	if _, err := s.db.CreateDocument(doc); err != nil {
		slog.Warn("failed to record generated document", "filename", filename, "error", err)
	}

	s.realtime.PublishUserEvent(userID, "document_generated",
		supabase.DocumentGeneratedPayload(userID, kind, filename))

	payload, err := json.Marshal(map[string]string{
		"kind":     kind,
		"filename": filename,
		"url":      storageURL,
	})
	if err == nil {
		if err := s.caps.SendResult(ctx, payload); err != nil {
			slog.Debug("host did not accept document result", "error", err)
		}
	}
}

// DeleteDocument removes the stored file and its record.
func (s *DocumentService) DeleteDocument(userID, documentID uuid.UUID, storagePath string) error {
	if err := s.storage.DeleteFile(s.bucket, storagePath); err != nil {
		return fmt.Errorf("failed to delete stored file: %w", err)
	}
	return s.db.DeleteDocument(documentID, userID)
}
