package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/nqhuy-dev/task-tracker-api/internal/errors"
	"github.com/nqhuy-dev/task-tracker-api/internal/pagination"
	"github.com/nqhuy-dev/task-tracker-api/internal/query"
	"github.com/nqhuy-dev/task-tracker-api/internal/services"
)

// TaskHandler serves the task resource.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// RegisterRoutes mounts the task routes; all require a valid token.
func (h *TaskHandler) RegisterRoutes(r *gin.Engine, auth gin.HandlerFunc) {
	r.POST("/task", auth, h.Create)
	r.GET("/task", auth, h.FindAll)
	r.GET("/task/:id", auth, h.FindByID)
	r.PUT("/task/:id", auth, h.UpdateByID)
	r.DELETE("/task/:id", auth, h.DeleteByID)
}

func respondTaskReferenceError(c *gin.Context, err error, statusID, assigneeID *uint64) bool {
	switch {
	case errors.Is(err, services.ErrInvalidAssignee):
		apierrors.BadRequest(c, fmt.Sprintf("Invalid assignee %d", *assigneeID))
	case errors.Is(err, services.ErrInvalidStatus):
		apierrors.BadRequest(c, fmt.Sprintf("Invalid status %d", *statusID))
	default:
		return false
	}
	return true
}

// Create inserts a new task. Optional status/assignee references must
// resolve to existing records at write time.
func (h *TaskHandler) Create(c *gin.Context) {
	type createTaskRequest struct {
		Title    string  `json:"title" binding:"required"`
		Content  string  `json:"content"`
		Assignee *uint64 `json:"assignee"`
		Status   *uint64 `json:"status"`
	}

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.Create(services.CreateTaskInput{
		Title:      req.Title,
		Content:    req.Content,
		AssigneeID: req.Assignee,
		StatusID:   req.Status,
	})
	if err != nil {
		if !respondTaskReferenceError(c, err, req.Status, req.Assignee) {
			if errors.Is(err, services.ErrTitleRequired) {
				apierrors.BadRequest(c, "Title is required")
				return
			}
			apierrors.Internal(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": task})
}

// FindAll lists tasks with prefix filters on title/content and membership
// filters on status/assignee.
func (h *TaskHandler) FindAll(c *gin.Context) {
	filter := services.TaskListFilter{
		Title:     c.Query("title"),
		Content:   c.Query("content"),
		Statuses:  query.ToArray(c.QueryArray("status")...),
		Assignees: query.ToArray(c.QueryArray("assignee")...),
	}
	opts := pagination.FromQuery(c)

	result, err := h.taskService.List(filter, opts)
	if err != nil {
		apierrors.Internal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": result,
		"code": http.StatusOK,
		"query": gin.H{
			"title":    filter.Title,
			"content":  filter.Content,
			"status":   filter.Statuses,
			"assignee": filter.Assignees,
		},
		"options": opts,
	})
}

// FindByID fetches one task; malformed ids read as not found.
func (h *TaskHandler) FindByID(c *gin.Context) {
	id := c.Param("id")

	task, err := h.taskService.Find(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			apierrors.NotFound(c, fmt.Sprintf("Task not found with id = %s", id))
			return
		}
		apierrors.Internal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": task})
}

// UpdateByID applies a partial update after re-checking any changed
// references.
func (h *TaskHandler) UpdateByID(c *gin.Context) {
	type updateTaskRequest struct {
		Title    *string `json:"title"`
		Content  *string `json:"content"`
		Assignee *uint64 `json:"assignee"`
		Status   *uint64 `json:"status"`
	}

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	id := c.Param("id")
	task, err := h.taskService.Update(id, services.UpdateTaskInput{
		Title:      req.Title,
		Content:    req.Content,
		AssigneeID: req.Assignee,
		StatusID:   req.Status,
	})
	if err != nil {
		if !respondTaskReferenceError(c, err, req.Status, req.Assignee) {
			if errors.Is(err, services.ErrNotFound) {
				apierrors.NotFound(c, fmt.Sprintf("Task not found with id = %s", id))
				return
			}
			apierrors.Internal(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":    task,
		"message": fmt.Sprintf("Task id = %s updated successfully", id),
	})
}

// DeleteByID removes a task and echoes its last value.
func (h *TaskHandler) DeleteByID(c *gin.Context) {
	id := c.Param("id")

	task, err := h.taskService.Delete(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			apierrors.NotFound(c, fmt.Sprintf("Task not found with id = %s", id))
			return
		}
		apierrors.Internal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":    task,
		"message": fmt.Sprintf("Task id = %s deleted successfully", id),
	})
}
