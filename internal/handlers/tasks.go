package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"smeta-backend/internal/models"
	"smeta-backend/internal/supabase"
)

type TasksHandler struct {
	dbClient *supabase.DatabaseClient
}

func NewTasksHandler(dbClient *supabase.DatabaseClient) *TasksHandler {
	return &TasksHandler{dbClient: dbClient}
}

// CreateTask godoc
// @Summary     Create a task
// @Tags        tasks
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       task body models.TaskRequest true "Task"
// @Success     201 {object} models.Task
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /tasks [post]
func (h *TasksHandler) CreateTask(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	if req.Title == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "title is required"})
		return
	}
	projectID, err := parseNullUUID(req.ProjectID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid project_id"})
		return
	}
	dueDate, err := parseNullDate(req.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid due_date"})
		return
	}

	task := &models.Task{
		ID:        uuid.New(),
		UserID:    userID,
		ProjectID: projectID,
		Title:     req.Title,
		Status:    models.TaskStatusOpen,
		DueDate:   dueDate,
	}

	created, err := h.dbClient.CreateTask(task)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to create task", Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListTasks godoc
// @Summary     List tasks
// @Tags        tasks
// @Produce     json
// @Security    Bearer
// @Success     200 {array} models.Task
// @Failure     500 {object} models.ErrorResponse
// @Router      /tasks [get]
func (h *TasksHandler) ListTasks(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	tasks, err := h.dbClient.ListTasks(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list tasks", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, tasks)
}

type taskStatusRequest struct {
	Status models.TaskStatus `json:"status" example:"done"`
}

// UpdateTaskStatus godoc
// @Summary     Mark a task open or done
// @Tags        tasks
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       task_id path string true "Task ID (UUID)"
// @Param       status body taskStatusRequest true "New status"
// @Success     200 {object} models.Task
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /tasks/{task_id} [patch]
func (h *TasksHandler) UpdateTaskStatus(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "task_id")
	if !ok {
		return
	}

	var req taskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	if req.Status != models.TaskStatusOpen && req.Status != models.TaskStatusDone {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "status must be open or done"})
		return
	}

	task, err := h.dbClient.UpdateTaskStatus(taskID, userID, req.Status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to update task", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask godoc
// @Summary     Delete a task
// @Tags        tasks
// @Security    Bearer
// @Param       task_id path string true "Task ID (UUID)"
// @Success     204
// @Failure     500 {object} models.ErrorResponse
// @Router      /tasks/{task_id} [delete]
func (h *TasksHandler) DeleteTask(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "task_id")
	if !ok {
		return
	}

	if err := h.dbClient.DeleteTask(taskID, userID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to delete task", Message: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
