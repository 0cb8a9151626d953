package services

import (
	"errors"
	"fmt"

	"github.com/nqhuy-dev/task-tracker-api/internal/pagination"
	"github.com/nqhuy-dev/task-tracker-api/internal/query"
	"github.com/nqhuy-dev/task-tracker-api/internal/repository"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a resource id does not resolve to a row.
	// Malformed ids resolve to this error too.
	ErrNotFound = errors.New("record not found")
	// ErrNameTaken is returned when another row already holds the requested name.
	ErrNameTaken = errors.New("another record with same name existed")
	// ErrNameRequired is returned when a create call carries no name.
	ErrNameRequired = errors.New("name is required")
)

// Named is a resource identified by a human-readable unique name.
type Named interface {
	GetID() uint64
	GetName() string
}

// NamedService owns the CRUD operations of a name-keyed resource. Gender and
// Status are structurally identical, so both are instances of this one
// service.
type NamedService[T Named] struct {
	repo     *repository.Crud[T]
	newModel func(name string) *T
}

// NewNamedService creates a NamedService over db. newModel constructs a
// fresh model from a name.
func NewNamedService[T Named](db *gorm.DB, newModel func(name string) *T) *NamedService[T] {
	return &NamedService[T]{
		repo:     repository.NewCrud[T](db),
		newModel: newModel,
	}
}

var namedSortColumns = map[string]bool{
	"id":         true,
	"name":       true,
	"created_at": true,
	"updated_at": true,
}

// Create inserts a new row after the application-level existence check.
// The unique index on name backs the check under concurrent writes.
func (s *NamedService[T]) Create(name string) (*T, error) {
	if name == "" {
		return nil, ErrNameRequired
	}

	taken, err := s.repo.ExistsBy("name", name)
	if err != nil {
		return nil, fmt.Errorf("failed to check name: %w", err)
	}
	if taken {
		return nil, ErrNameTaken
	}

	m := s.newModel(name)
	if err := s.repo.Create(m); err != nil {
		return nil, fmt.Errorf("failed to create record: %w", err)
	}
	return m, nil
}

// Find returns the row with the given id, or ErrNotFound.
func (s *NamedService[T]) Find(id string) (*T, error) {
	m, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find record: %w", err)
	}
	return m, nil
}

// List returns one page of rows whose name starts with nameFilter.
func (s *NamedService[T]) List(nameFilter string, opts pagination.Options) (*pagination.Result[T], error) {
	scopes := []query.Scope{
		query.PrefixMatch("name", nameFilter),
	}
	return s.repo.FindAll(scopes, query.Sort(opts.SortBy, namedSortColumns), opts)
}

// Update renames the row, rejecting a name held by a different row, and
// returns the row after the update.
func (s *NamedService[T]) Update(id, name string) (*T, error) {
	if name != "" {
		existing, err := s.repo.FindByQuery(query.ExactMatch("name", name))
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check name: %w", err)
		}
		if err == nil && fmt.Sprintf("%d", (*existing).GetID()) != id {
			return nil, ErrNameTaken
		}
	}

	m, err := s.repo.UpdateByID(id, map[string]any{"name": name})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update record: %w", err)
	}
	return m, nil
}

// Delete removes the row and returns its pre-delete value.
func (s *NamedService[T]) Delete(id string) (*T, error) {
	m, err := s.repo.DeleteByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete record: %w", err)
	}
	return m, nil
}

// IsNameAvailable reports whether no row currently holds name.
func (s *NamedService[T]) IsNameAvailable(name string) (bool, error) {
	taken, err := s.repo.ExistsBy("name", name)
	if err != nil {
		return false, fmt.Errorf("failed to check name: %w", err)
	}
	return !taken, nil
}

// Exists reports whether the row with the given primary key exists. Used by
// cross-resource reference checks.
func (s *NamedService[T]) Exists(id uint64) (bool, error) {
	return s.repo.Exists(id)
}
