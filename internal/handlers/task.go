package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/askbob/project-management-api/internal/config"
	"github.com/askbob/project-management-api/internal/dto"
	apierrors "github.com/askbob/project-management-api/internal/errors"
	"github.com/askbob/project-management-api/internal/middleware"
	"github.com/askbob/project-management-api/internal/models"
	"github.com/askbob/project-management-api/internal/services"
	"github.com/askbob/project-management-api/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TaskHandler coordinates task CRUD handlers.
type TaskHandler struct {
	taskService *services.TaskService
	page        config.PageConfig
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService, page config.PageConfig) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		page:        page,
	}
}

// ListTasks returns the caller tenant's tasks with filtering, sorting and
// pagination driven by query parameters.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tenantID, exists := middleware.GetTenantID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	input := services.ListTasksInput{
		TenantID: tenantID,
		Sort:     utils.ParseTaskSort(c.Query("sort")),
	}

	page, details := utils.GetPaginationParams(c, h.page)
	input.Page = page

	if raw := c.Query("project_id"); raw != "" {
		projectID, err := uuid.Parse(raw)
		if err != nil {
			details = append(details, apierrors.FieldError{Field: "project_id", Message: "must be a valid UUID"})
		} else {
			input.ProjectID = &projectID
		}
	}
	if raw := c.Query("status_filter"); raw != "" {
		status := models.TaskStatus(raw)
		if !status.Valid() {
			details = append(details, apierrors.FieldError{Field: "status_filter", Message: "must be one of: todo in_progress done"})
		} else {
			input.Status = &status
		}
	}
	if raw := c.Query("priority_filter"); raw != "" {
		priority := models.TaskPriority(raw)
		if !priority.Valid() {
			details = append(details, apierrors.FieldError{Field: "priority_filter", Message: "must be one of: low medium high"})
		} else {
			input.Priority = &priority
		}
	}
	if raw := c.Query("due_before"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			details = append(details, apierrors.FieldError{Field: "due_before", Message: "must be an RFC 3339 timestamp"})
		} else {
			input.DueBefore = &t
		}
	}
	if raw := c.Query("due_after"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			details = append(details, apierrors.FieldError{Field: "due_after", Message: "must be an RFC 3339 timestamp"})
		} else {
			input.DueAfter = &t
		}
	}

	if len(details) > 0 {
		apierrors.UnprocessableEntity(c, "Validation failed", details)
		return
	}

	tasks, total, err := h.taskService.ListTasks(input)
	if err != nil {
		apierrors.InternalError(c)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, total))
}

// CreateTask creates a task under a project owned by the caller's tenant.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	tenantID, exists := middleware.GetTenantID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Validation(c, err)
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		TenantID:  tenantID,
		ProjectID: req.ProjectID,
		Title:     req.Title,
		Status:    models.TaskStatus(req.Status),
		Priority:  models.TaskPriority(req.Priority),
		Assignee:  req.Assignee,
		DueDate:   req.DueDate,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update to a task owned by the caller's tenant.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	tenantID, exists := middleware.GetTenantID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Validation(c, err)
		return
	}

	input := services.UpdateTaskInput{
		Title:    req.Title,
		Assignee: req.Assignee,
		DueDate:  req.DueDate,
	}
	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		input.Status = &status
	}
	if req.Priority != nil {
		priority := models.TaskPriority(*req.Priority)
		input.Priority = &priority
	}

	task, err := h.taskService.UpdateTask(tenantID, taskID, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask removes a task owned by the caller's tenant.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	tenantID, exists := middleware.GetTenantID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(tenantID, taskID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, "Project not found")
	case errors.Is(err, services.ErrTitleRequired):
		apierrors.UnprocessableEntity(c, "Validation failed", []apierrors.FieldError{
			{Field: "title", Message: "this field is required"},
		})
	case errors.Is(err, services.ErrInvalidStatus):
		apierrors.UnprocessableEntity(c, "Validation failed", []apierrors.FieldError{
			{Field: "status", Message: "must be one of: todo in_progress done"},
		})
	case errors.Is(err, services.ErrInvalidPriority):
		apierrors.UnprocessableEntity(c, "Validation failed", []apierrors.FieldError{
			{Field: "priority", Message: "must be one of: low medium high"},
		})
	default:
		apierrors.InternalError(c)
	}
}
