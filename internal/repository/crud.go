package repository

import (
	"fmt"
	"strconv"

	"github.com/nqhuy-dev/task-tracker-api/internal/pagination"
	"github.com/nqhuy-dev/task-tracker-api/internal/query"
	"gorm.io/gorm"
)

// Crud is the generic data-access component shared by every resource. All
// four resources expose the same operations, so there is exactly one
// implementation, parametrized over the model type.
type Crud[T any] struct {
	db *gorm.DB
}

// NewCrud creates a Crud repository over db for model T.
func NewCrud[T any](db *gorm.DB) *Crud[T] {
	return &Crud[T]{db: db}
}

// parseID converts a path identifier into a primary key. A malformed id is
// reported the same way as a missing row, never as a separate error.
func parseID(id string) (uint64, bool) {
	if id == "" {
		return 0, false
	}
	pid, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return 0, false
	}
	return pid, true
}

// Create inserts a new row.
func (r *Crud[T]) Create(m *T) error {
	return r.db.Create(m).Error
}

// FindByID finds a row by its path identifier with optional preloading.
// Malformed ids behave as not found.
func (r *Crud[T]) FindByID(id string, preload ...string) (*T, error) {
	pid, ok := parseID(id)
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	var m T
	tx := r.db
	for _, p := range preload {
		tx = tx.Preload(p)
	}
	if err := tx.First(&m, pid).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// Exists reports whether a row with the given primary key exists.
func (r *Crud[T]) Exists(id uint64) (bool, error) {
	var count int64
	if err := r.db.Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByQuery returns the first row matching the scopes.
func (r *Crud[T]) FindByQuery(scopes ...query.Scope) (*T, error) {
	var m T
	if err := r.db.Scopes(scopes...).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// FindAll returns one page of rows matching the filter scopes, plus
// pagination metadata. With pagination disabled, everything comes back as a
// single page.
func (r *Crud[T]) FindAll(scopes []query.Scope, sort query.Scope, opts pagination.Options, preload ...string) (*pagination.Result[T], error) {
	// Session makes the filtered chain reusable for both the count and the
	// page query.
	tx := r.db.Model(new(T)).Scopes(scopes...).Session(&gorm.Session{})

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count rows: %w", err)
	}

	listQuery := tx.Scopes(sort, pagination.Paginate(opts))
	for _, p := range preload {
		listQuery = listQuery.Preload(p)
	}

	var docs []T
	if err := listQuery.Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("failed to list rows: %w", err)
	}

	return pagination.NewResult(docs, total, opts), nil
}

// UpdateByID applies a partial merge and returns the row after the update.
// Malformed or unresolved ids behave as not found.
func (r *Crud[T]) UpdateByID(id string, patch map[string]any, preload ...string) (*T, error) {
	pid, ok := parseID(id)
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	var m T
	if err := r.db.First(&m, pid).Error; err != nil {
		return nil, err
	}

	if len(patch) > 0 {
		if err := r.db.Model(&m).Updates(patch).Error; err != nil {
			return nil, err
		}
	}

	return r.FindByID(id, preload...)
}

// DeleteByID removes a row and returns its value as it was immediately
// before deletion. Malformed or unresolved ids behave as not found.
func (r *Crud[T]) DeleteByID(id string, preload ...string) (*T, error) {
	m, err := r.FindByID(id, preload...)
	if err != nil {
		return nil, err
	}

	pid, _ := parseID(id)
	if err := r.db.Delete(new(T), pid).Error; err != nil {
		return nil, err
	}
	return m, nil
}

// ExistsBy reports whether a row with column = value exists. An empty value
// is never considered taken.
func (r *Crud[T]) ExistsBy(column, value string) (bool, error) {
	if value == "" {
		return false, nil
	}
	var count int64
	if err := r.db.Model(new(T)).Where(column+" = ?", value).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
