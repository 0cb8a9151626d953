package services

import (
	"errors"
	"fmt"

	"github.com/nqhuy-dev/task-tracker-api/internal/models"
	"github.com/nqhuy-dev/task-tracker-api/internal/pagination"
	"github.com/nqhuy-dev/task-tracker-api/internal/query"
	"github.com/nqhuy-dev/task-tracker-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTitleRequired   = errors.New("title is required")
	ErrInvalidStatus   = errors.New("status does not resolve to an existing record")
	ErrInvalidAssignee = errors.New("assignee does not resolve to an existing record")
)

// TaskService handles task CRUD. Status and assignee references are checked
// against their own collections before any write; the check is read-then-write,
// so a reference can go stale under concurrent deletes.
type TaskService struct {
	repo       *repository.Crud[models.Task]
	statusRepo *repository.Crud[models.Status]
	userRepo   *repository.Crud[models.User]
}

// NewTaskService creates a new TaskService.
func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{
		repo:       repository.NewCrud[models.Task](db),
		statusRepo: repository.NewCrud[models.Status](db),
		userRepo:   repository.NewCrud[models.User](db),
	}
}

var taskSortColumns = map[string]bool{
	"id":         true,
	"title":      true,
	"created_at": true,
	"updated_at": true,
}

// CreateTaskInput represents the fields of a new task.
type CreateTaskInput struct {
	Title      string
	Content    string
	AssigneeID *uint64
	StatusID   *uint64
}

// UpdateTaskInput represents a partial task update.
type UpdateTaskInput struct {
	Title      *string
	Content    *string
	AssigneeID *uint64
	StatusID   *uint64
}

// TaskListFilter holds the optional list-query inputs.
type TaskListFilter struct {
	Title     string
	Content   string
	Statuses  []string
	Assignees []string
}

func (s *TaskService) checkReferences(statusID, assigneeID *uint64) error {
	if assigneeID != nil {
		valid, err := s.userRepo.Exists(*assigneeID)
		if err != nil {
			return fmt.Errorf("failed to check assignee: %w", err)
		}
		if !valid {
			return ErrInvalidAssignee
		}
	}

	if statusID != nil {
		valid, err := s.statusRepo.Exists(*statusID)
		if err != nil {
			return fmt.Errorf("failed to check status: %w", err)
		}
		if !valid {
			return ErrInvalidStatus
		}
	}

	return nil
}

// Create inserts a new task after resolving its references.
func (s *TaskService) Create(input CreateTaskInput) (*models.Task, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}

	if err := s.checkReferences(input.StatusID, input.AssigneeID); err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:      input.Title,
		Content:    input.Content,
		AssigneeID: input.AssigneeID,
		StatusID:   input.StatusID,
	}

	if err := s.repo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// Find returns the task with the given id, assignee and status populated.
func (s *TaskService) Find(id string) (*models.Task, error) {
	task, err := s.repo.FindByID(id, "Assignee", "Status")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// List returns one page of tasks matching the filter.
func (s *TaskService) List(filter TaskListFilter, opts pagination.Options) (*pagination.Result[models.Task], error) {
	scopes := []query.Scope{
		query.PrefixMatch("title", filter.Title),
		query.PrefixMatch("content", filter.Content),
		query.MembershipMatch("status_id", filter.Statuses),
		query.MembershipMatch("assignee_id", filter.Assignees),
	}
	return s.repo.FindAll(scopes, query.Sort(opts.SortBy, taskSortColumns), opts, "Assignee", "Status")
}

// Update applies a partial merge after resolving any changed references, and
// returns the task after the update.
func (s *TaskService) Update(id string, input UpdateTaskInput) (*models.Task, error) {
	if err := s.checkReferences(input.StatusID, input.AssigneeID); err != nil {
		return nil, err
	}

	patch := map[string]any{}
	if input.Title != nil {
		patch["title"] = *input.Title
	}
	if input.Content != nil {
		patch["content"] = *input.Content
	}
	if input.AssigneeID != nil {
		patch["assignee_id"] = *input.AssigneeID
	}
	if input.StatusID != nil {
		patch["status_id"] = *input.StatusID
	}

	task, err := s.repo.UpdateByID(id, patch, "Assignee", "Status")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

// Delete removes the task and returns its pre-delete value.
func (s *TaskService) Delete(id string) (*models.Task, error) {
	task, err := s.repo.DeleteByID(id, "Assignee", "Status")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}
	return task, nil
}
