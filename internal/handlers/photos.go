package handlers

import (
	"database/sql"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"smeta-backend/internal/models"
	"smeta-backend/internal/services"
	"smeta-backend/internal/supabase"
)

type PhotosHandler struct {
	dbClient       *supabase.DatabaseClient
	storageClient  *supabase.StorageClient
	realtimeClient *supabase.RealtimeClient
	uploadService  *services.UploadService
	photoBucket    string
}

func NewPhotosHandler(
	dbClient *supabase.DatabaseClient,
	storageClient *supabase.StorageClient,
	realtimeClient *supabase.RealtimeClient,
	uploadService *services.UploadService,
	photoBucket string,
) *PhotosHandler {
	return &PhotosHandler{
		dbClient:       dbClient,
		storageClient:  storageClient,
		realtimeClient: realtimeClient,
		uploadService:  uploadService,
		photoBucket:    photoBucket,
	}
}

// UploadPhotos godoc
// @Summary     Upload project photos
// @Description Accepts multipart files under the "photos" field, compresses each one and uploads with retry. Files the storage would not accept come back as embedded data URLs instead of failing the batch.
// @Tags        photos
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Param       photos formData file true "Image files"
// @Param       caption formData string false "Caption applied to every uploaded photo"
// @Success     200 {object} models.UploadResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id}/photos [post]
func (h *PhotosHandler) UploadPhotos(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "project_id")
	if !ok {
		return
	}

	if _, err := h.dbClient.GetProject(projectID, userID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "project not found", Message: err.Error()})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid multipart form", Message: err.Error()})
		return
	}
	fileHeaders := form.File["photos"]
	if len(fileHeaders) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "no files provided"})
		return
	}
	caption := c.PostForm("caption")

	files := make([]services.UploadFile, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to read uploaded file", Message: err.Error()})
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to read uploaded file", Message: err.Error()})
			return
		}
		files = append(files, services.UploadFile{
			Filename: fh.Filename,
			Category: services.CategoryGeneral,
			Data:     data,
		})
	}

	results := h.uploadService.UploadBatch(c.Request.Context(), h.photoBucket, userID,
		uuid.NullUUID{UUID: projectID, Valid: true}, files)

	response := models.UploadResponse{}
	uploaded, embedded := 0, 0
	for _, r := range results {
		file := models.UploadedFile{
			Filename:  r.Filename,
			Path:      r.Path,
			PublicURL: r.PublicURL,
			Size:      r.Size,
		}
		if r.Err != nil {
			file.Error = r.Err.Error()
			response.Errors = append(response.Errors, r.Filename+": "+r.Err.Error())
			response.Files = append(response.Files, file)
			continue
		}

		report := &models.PhotoReport{
			ID:          uuid.New(),
			ProjectID:   projectID,
			UserID:      userID,
			Caption:     nullString(caption),
			StoragePath: r.Path,
			StorageURL:  r.PublicURL,
			FileSize:    sql.NullInt64{Int64: r.Size, Valid: true},
			MimeType:    "image/jpeg",
		}
		if _, err := h.dbClient.CreatePhotoReport(report); err != nil {
			file.Error = err.Error()
			response.Errors = append(response.Errors, r.Filename+": "+err.Error())
			response.Files = append(response.Files, file)
			continue
		}

		if r.Embedded {
			embedded++
		} else {
			uploaded++
		}
		response.Files = append(response.Files, file)
	}

	if uploaded+embedded > 0 {
		h.realtimeClient.PublishProjectEvent(projectID, "photos_uploaded",
			supabase.PhotosUploadedPayload(projectID, uploaded, embedded))
	}

	c.JSON(http.StatusOK, response)
}

// ListPhotos godoc
// @Summary     List photo reports of a project
// @Tags        photos
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Success     200 {array} models.PhotoReport
// @Failure     500 {object} models.ErrorResponse
// @Router      /projects/{project_id}/photos [get]
func (h *PhotosHandler) ListPhotos(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "project_id")
	if !ok {
		return
	}

	photos, err := h.dbClient.ListPhotoReports(projectID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list photos", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, photos)
}

// DeletePhoto godoc
// @Summary     Delete a photo report
// @Description Removes the stored object unless the photo only exists as an embedded data URL
// @Tags        photos
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Param       photo_id path string true "Photo ID (UUID)"
// @Success     204
// @Failure     500 {object} models.ErrorResponse
// @Router      /projects/{project_id}/photos/{photo_id} [delete]
func (h *PhotosHandler) DeletePhoto(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "project_id")
	if !ok {
		return
	}
	photoID, ok := pathUUID(c, "photo_id")
	if !ok {
		return
	}

	photos, err := h.dbClient.ListPhotoReports(projectID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to load photos", Message: err.Error()})
		return
	}
	for _, p := range photos {
		if p.ID != photoID {
			continue
		}
		if !services.IsEmbeddedPath(p.StoragePath) {
			if err := h.storageClient.DeleteFile(h.photoBucket, p.StoragePath); err != nil {
				c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to delete stored file", Message: err.Error()})
				return
			}
		}
		break
	}

	if err := h.dbClient.DeletePhotoReport(photoID, userID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to delete photo", Message: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
