package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Options holds the normalized paging inputs of a list request.
type Options struct {
	SortBy        string `json:"sort_by,omitempty"`
	Page          int    `json:"page"`
	Limit         int    `json:"limit"`
	UsePagination bool   `json:"pagination"`
}

// Result is one page of documents plus its metadata.
type Result[T any] struct {
	Docs       []T   `json:"docs"`
	TotalDocs  int64 `json:"total_docs"`
	Limit      int   `json:"limit"`
	Page       int   `json:"page"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next_page"`
	HasPrev    bool  `json:"has_prev_page"`
}

// FromQuery extracts paging options from the request with defaults
// page=1, limit=10, pagination=true.
func FromQuery(c *gin.Context) Options {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(DefaultPage)))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit)))

	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	return Options{
		SortBy:        c.Query("sortBy"),
		Page:          page,
		Limit:         limit,
		UsePagination: boolFromString(c.Query("pagination"), true),
	}
}

// boolFromString coerces "true"/"false"; anything else falls back to the
// default rather than propagating an undefined value.
func boolFromString(s string, defaultValue bool) bool {
	switch s {
	case "true":
		return true
	case "false":
		return false
	default:
		return defaultValue
	}
}

// Paginate applies the options' offset/limit window to a query.
func Paginate(opts Options) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !opts.UsePagination {
			return db
		}
		offset := (opts.Page - 1) * opts.Limit
		return db.Offset(offset).Limit(opts.Limit)
	}
}

// NewResult assembles page metadata for docs out of the matched total. When
// pagination is off the whole result set is a single page.
func NewResult[T any](docs []T, total int64, opts Options) *Result[T] {
	if docs == nil {
		docs = []T{}
	}

	if !opts.UsePagination {
		limit := int(total)
		if limit < 1 {
			limit = 1
		}
		return &Result[T]{
			Docs:       docs,
			TotalDocs:  total,
			Limit:      limit,
			Page:       1,
			TotalPages: 1,
		}
	}

	totalPages := int(total) / opts.Limit
	if int(total)%opts.Limit > 0 {
		totalPages++
	}
	if totalPages < 1 {
		totalPages = 1
	}

	return &Result[T]{
		Docs:       docs,
		TotalDocs:  total,
		Limit:      opts.Limit,
		Page:       opts.Page,
		TotalPages: totalPages,
		HasNext:    opts.Page < totalPages,
		HasPrev:    opts.Page > 1,
	}
}
