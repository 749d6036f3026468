package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"smeta-backend/internal/models"
	"smeta-backend/internal/services"
	"smeta-backend/internal/supabase"
)

type ProfileHandler struct {
	dbClient      *supabase.DatabaseClient
	uploadService *services.UploadService
	photoBucket   string
}

func NewProfileHandler(dbClient *supabase.DatabaseClient, uploadService *services.UploadService, photoBucket string) *ProfileHandler {
	return &ProfileHandler{
		dbClient:      dbClient,
		uploadService: uploadService,
		photoBucket:   photoBucket,
	}
}

// GetProfile godoc
// @Summary     Get the company profile
// @Description Returns an empty profile when the user has not filled one in yet
// @Tags        profile
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.CompanyProfile
// @Router      /profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	profile, err := h.dbClient.GetProfile(userID)
	if err != nil {
		profile = &models.CompanyProfile{UserID: userID}
	}

	c.JSON(http.StatusOK, profile)
}

// UpsertProfile godoc
// @Summary     Create or replace the company profile
// @Tags        profile
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       profile body models.ProfileRequest true "Profile"
// @Success     200 {object} models.CompanyProfile
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /profile [put]
func (h *ProfileHandler) UpsertProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "name is required"})
		return
	}

	profile, err := h.dbClient.UpsertProfile(userID, req.Name, req.Details, req.LogoURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to save profile", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UploadLogo godoc
// @Summary     Upload a company logo
// @Description The logo goes through the image pipeline and its public URL is written to the profile
// @Tags        profile
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       logo formData file true "Logo image"
// @Success     200 {object} models.CompanyProfile
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /profile/logo [post]
func (h *ProfileHandler) UploadLogo(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("logo")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "logo file is required", Message: err.Error()})
		return
	}
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

	result := h.uploadService.UploadWithFallback(c.Request.Context(), h.photoBucket, userID,
		uuid.NullUUID{}, services.UploadFile{
			Filename: fh.Filename,
			Category: services.CategoryGeneral,
			Data:     data,
		})
	if result.Err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to process logo", Message: result.Err.Error()})
		return
	}

	existing, err := h.dbClient.GetProfile(userID)
	name, details := "", ""
	if err == nil {
		name, details = existing.Name, existing.Details
	}

	profile, err := h.dbClient.UpsertProfile(userID, name, details, result.PublicURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to save profile", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, profile)
}
