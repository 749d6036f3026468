package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"smeta-backend/internal/models"
	"smeta-backend/internal/services"
	"smeta-backend/internal/supabase"
)

type ProjectsHandler struct {
	dbClient      *supabase.DatabaseClient
	storageClient *supabase.StorageClient
	uploadService *services.UploadService
	photoBucket   string
	receiptBucket string
}

func NewProjectsHandler(
	dbClient *supabase.DatabaseClient,
	storageClient *supabase.StorageClient,
	uploadService *services.UploadService,
	photoBucket, receiptBucket string,
) *ProjectsHandler {
	return &ProjectsHandler{
		dbClient:      dbClient,
		storageClient: storageClient,
		uploadService: uploadService,
		photoBucket:   photoBucket,
		receiptBucket: receiptBucket,
	}
}

func (h *ProjectsHandler) projectFromRequest(c *gin.Context, req *models.ProjectRequest, p *models.Project) bool {
	start, err := parseNullDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid start_date"})
		return false
	}
	end, err := parseNullDate(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid end_date"})
		return false
	}
	if start.Valid && end.Valid && start.Time.After(end.Time) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "start_date must not be after end_date"})
		return false
	}

	p.Name = req.Name
	p.Address = req.Address
	p.ClientInfo = req.ClientInfo
	p.Budget = req.Budget
	p.StartDate = start
	p.EndDate = end
	p.Description = nullString(req.Description)
	return true
}

// CreateProject godoc
// @Summary     Create a project
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       project body models.ProjectRequest true "Project"
// @Success     201 {object} models.Project
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /projects [post]
func (h *ProjectsHandler) CreateProject(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "name is required"})
		return
	}

	project := &models.Project{
		ID:     uuid.New(),
		UserID: userID,
		Status: models.ProjectStatusActive,
	}
	if !h.projectFromRequest(c, &req, project) {
		return
	}

	created, err := h.dbClient.CreateProject(project)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to create project", Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListProjects godoc
// @Summary     List projects
// @Tags        projects
// @Produce     json
// @Security    Bearer
// @Success     200 {array} models.Project
// @Failure     500 {object} models.ErrorResponse
// @Router      /projects [get]
func (h *ProjectsHandler) ListProjects(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	projects, err := h.dbClient.ListProjects(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list projects", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, projects)
}

// GetProject godoc
// @Summary     Get a project
// @Tags        projects
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Success     200 {object} models.Project
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id} [get]
func (h *ProjectsHandler) GetProject(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "project_id")
	if !ok {
		return
	}

	project, err := h.dbClient.GetProject(projectID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "project not found", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, project)
}

// UpdateProject godoc
// @Summary     Update a project
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Param       project body models.ProjectRequest true "Project"
// @Success     200 {object} models.Project
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id} [put]
func (h *ProjectsHandler) UpdateProject(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "project_id")
	if !ok {
		return
	}

	var req models.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	project, err := h.dbClient.GetProject(projectID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "project not found", Message: err.Error()})
		return
	}
	if !h.projectFromRequest(c, &req, project) {
		return
	}

	updated, err := h.dbClient.UpdateProject(project)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to update project", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteProject godoc
// @Summary     Delete a project and its stored files
// @Tags        projects
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Success     204
// @Failure     500 {object} models.ErrorResponse
// @Router      /projects/{project_id} [delete]
func (h *ProjectsHandler) DeleteProject(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "project_id")
	if !ok {
		return
	}

	if err := h.storageClient.DeleteProjectFiles(h.photoBucket, userID, projectID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to delete project files", Message: err.Error()})
		return
	}
	if err := h.dbClient.DeleteProject(projectID, userID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to delete project", Message: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateStage godoc
// @Summary     Add a work stage to a project
// @Tags        stages
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Param       stage body models.StageRequest true "Stage"
// @Success     201 {object} models.WorkStage
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id}/stages [post]
func (h *ProjectsHandler) CreateStage(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "project_id")
	if !ok {
		return
	}

	var req models.StageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "name is required"})
		return
	}
	if req.Status == "" {
		req.Status = models.StageStatusPlanned
	}

	if _, err := h.dbClient.GetProject(projectID, userID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "project not found", Message: err.Error()})
		return
	}

	start, err := parseNullDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid start_date"})
		return
	}
	end, err := parseNullDate(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid end_date"})
		return
	}
	if start.Valid && end.Valid && start.Time.After(end.Time) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "start_date must not be after end_date"})
		return
	}

	stage := &models.WorkStage{
		ID:        uuid.New(),
		ProjectID: projectID,
		UserID:    userID,
		Name:      req.Name,
		Status:    req.Status,
		Amount:    req.Amount,
		StartDate: start,
		EndDate:   end,
		Position:  req.Position,
	}

	created, err := h.dbClient.CreateStage(stage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to create stage", Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListStages godoc
// @Summary     List work stages of a project in schedule order
// @Tags        stages
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Success     200 {array} models.WorkStage
// @Failure     500 {object} models.ErrorResponse
// @Router      /projects/{project_id}/stages [get]
func (h *ProjectsHandler) ListStages(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "project_id")
	if !ok {
		return
	}

	stages, err := h.dbClient.ListStages(projectID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list stages", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, stages)
}

// UpdateStage godoc
// @Summary     Update a work stage
// @Tags        stages
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Param       stage_id path string true "Stage ID (UUID)"
// @Param       stage body models.StageRequest true "Stage"
// @Success     200 {object} models.WorkStage
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /projects/{project_id}/stages/{stage_id} [put]
func (h *ProjectsHandler) UpdateStage(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "project_id")
	if !ok {
		return
	}
	stageID, ok := pathUUID(c, "stage_id")
	if !ok {
		return
	}

	var req models.StageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	start, err := parseNullDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid start_date"})
		return
	}
	end, err := parseNullDate(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid end_date"})
		return
	}
	if start.Valid && end.Valid && start.Time.After(end.Time) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "start_date must not be after end_date"})
		return
	}

	stage := &models.WorkStage{
		ID:        stageID,
		ProjectID: projectID,
		UserID:    userID,
		Name:      req.Name,
		Status:    req.Status,
		Amount:    req.Amount,
		StartDate: start,
		EndDate:   end,
		Position:  req.Position,
	}

	updated, err := h.dbClient.UpdateStage(stage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to update stage", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteStage godoc
// @Summary     Delete a work stage
// @Tags        stages
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Param       stage_id path string true "Stage ID (UUID)"
// @Success     204
// @Failure     500 {object} models.ErrorResponse
// @Router      /projects/{project_id}/stages/{stage_id} [delete]
func (h *ProjectsHandler) DeleteStage(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	stageID, ok := pathUUID(c, "stage_id")
	if !ok {
		return
	}

	if err := h.dbClient.DeleteStage(stageID, userID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to delete stage", Message: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateFinanceEntry godoc
// @Summary     Record an income or expense for a project
// @Tags        finances
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Param       entry body models.FinanceEntryRequest true "Finance entry"
// @Success     201 {object} models.FinanceEntry
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id}/finances [post]
func (h *ProjectsHandler) CreateFinanceEntry(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "project_id")
	if !ok {
		return
	}

	var req models.FinanceEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	if req.Type != models.FinanceIncome && req.Type != models.FinanceExpense {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "type must be income or expense"})
		return
	}
	if req.Amount < 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "amount must be non-negative"})
		return
	}

	if _, err := h.dbClient.GetProject(projectID, userID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "project not found", Message: err.Error()})
		return
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid date"})
			return
		}
		date = parsed
	}

	entry := &models.FinanceEntry{
		ID:        uuid.New(),
		ProjectID: projectID,
		UserID:    userID,
		Type:      req.Type,
		Amount:    req.Amount,
		Category:  req.Category,
		Note:      nullString(req.Note),
		Date:      date,
	}

	created, err := h.dbClient.CreateFinanceEntry(entry)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to create finance entry", Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListFinanceEntries godoc
// @Summary     List finance entries of a project
// @Tags        finances
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Success     200 {array} models.FinanceEntry
// @Failure     500 {object} models.ErrorResponse
// @Router      /projects/{project_id}/finances [get]
func (h *ProjectsHandler) ListFinanceEntries(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "project_id")
	if !ok {
		return
	}

	entries, err := h.dbClient.ListFinanceEntries(projectID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list finance entries", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, entries)
}

// UploadReceipt godoc
// @Summary     Attach a receipt photo to a finance entry
// @Description The image goes through the receipt compression preset and the retry pipeline. If storage stays unreachable the receipt is kept as an embedded data URL.
// @Tags        finances
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Param       entry_id path string true "Finance entry ID (UUID)"
// @Param       receipt formData file true "Receipt image"
// @Success     200 {object} models.FinanceEntry
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /projects/{project_id}/finances/{entry_id}/receipt [post]
func (h *ProjectsHandler) UploadReceipt(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "project_id")
	if !ok {
		return
	}
	entryID, ok := pathUUID(c, "entry_id")
	if !ok {
		return
	}

	fh, err := c.FormFile("receipt")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "receipt file is required", Message: err.Error()})
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

	result := h.uploadService.UploadWithFallback(c.Request.Context(), h.receiptBucket, userID,
		uuid.NullUUID{UUID: projectID, Valid: true}, services.UploadFile{
			Filename: fh.Filename,
			Category: services.CategoryReceipt,
			Data:     data,
		})
	if result.Err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to process receipt", Message: result.Err.Error()})
		return
	}

	entry, err := h.dbClient.SetFinanceReceipt(entryID, userID, result.Path, result.PublicURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to attach receipt", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, entry)
}

// DeleteFinanceEntry godoc
// @Summary     Delete a finance entry
// @Tags        finances
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Param       entry_id path string true "Finance entry ID (UUID)"
// @Success     204
// @Failure     500 {object} models.ErrorResponse
// @Router      /projects/{project_id}/finances/{entry_id} [delete]
func (h *ProjectsHandler) DeleteFinanceEntry(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	entryID, ok := pathUUID(c, "entry_id")
	if !ok {
		return
	}

	if err := h.dbClient.DeleteFinanceEntry(entryID, userID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to delete finance entry", Message: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
