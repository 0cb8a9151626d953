package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	apierrors "github.com/nqhuy-dev/task-tracker-api/internal/errors"
	"github.com/nqhuy-dev/task-tracker-api/internal/pagination"
	"github.com/nqhuy-dev/task-tracker-api/internal/services"
)

// NamedHandler serves the HTTP surface of a name-keyed resource. Gender and
// Status share this one implementation; label feeds the response messages.
type NamedHandler[T services.Named] struct {
	service *services.NamedService[T]
	label   string
}

// NewNamedHandler creates a NamedHandler for service, labelled label in
// response messages ("Gender", "Status").
func NewNamedHandler[T services.Named](service *services.NamedService[T], label string) *NamedHandler[T] {
	return &NamedHandler[T]{
		service: service,
		label:   label,
	}
}

// RegisterRoutes mounts the resource routes on r under /<path>. All routes
// require a valid token.
func (h *NamedHandler[T]) RegisterRoutes(r *gin.Engine, path string, auth gin.HandlerFunc) {
	r.POST("/"+path, auth, h.Create)
	r.GET("/"+path, auth, h.FindAll)
	r.GET("/"+path+"/:id", auth, h.FindByID)
	r.PUT("/"+path+"/:id", auth, h.UpdateByID)
	r.DELETE("/"+path+"/:id", auth, h.DeleteByID)
	r.GET("/"+path+"/validate/name/:name", auth, h.ValidateName)
}

type namedRequest struct {
	Name string `json:"name" binding:"required"`
}

// Create inserts a new record, rejecting an already-taken name with 409.
func (h *NamedHandler[T]) Create(c *gin.Context) {
	var req namedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	record, err := h.service.Create(req.Name)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNameTaken):
			apierrors.Conflict(c, fmt.Sprintf("Another %s with same name existed", h.labelLower()))
		case errors.Is(err, services.ErrNameRequired):
			apierrors.BadRequest(c, "Name is required")
		default:
			apierrors.Internal(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": record})
}

// FindAll lists records filtered by name prefix, paginated.
func (h *NamedHandler[T]) FindAll(c *gin.Context) {
	name := c.Query("name")
	opts := pagination.FromQuery(c)

	result, err := h.service.List(name, opts)
	if err != nil {
		apierrors.Internal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":    result,
		"code":    http.StatusOK,
		"query":   gin.H{"name": name},
		"options": opts,
	})
}

// FindByID fetches one record; malformed ids read as not found.
func (h *NamedHandler[T]) FindByID(c *gin.Context) {
	id := c.Param("id")

	record, err := h.service.Find(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			apierrors.NotFound(c, fmt.Sprintf("%s not found with id = %s", h.label, id))
			return
		}
		apierrors.Internal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": record})
}

// UpdateByID renames a record, rejecting a name held by another record.
func (h *NamedHandler[T]) UpdateByID(c *gin.Context) {
	var req namedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	record, err := h.service.Update(c.Param("id"), req.Name)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNameTaken):
			apierrors.Conflict(c, fmt.Sprintf("Another %s with same name existed", h.labelLower()))
		case errors.Is(err, services.ErrNotFound):
			apierrors.NotFound(c, fmt.Sprintf("%s not found", h.label))
		default:
			apierrors.Internal(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":    record,
		"message": fmt.Sprintf("%s updated successfully", h.label),
	})
}

// DeleteByID removes a record and echoes its last value.
func (h *NamedHandler[T]) DeleteByID(c *gin.Context) {
	id := c.Param("id")

	record, err := h.service.Delete(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			apierrors.NotFound(c, fmt.Sprintf("%s not found", h.label))
			return
		}
		apierrors.Internal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":    record,
		"message": fmt.Sprintf("%s id = %s deleted successfully", h.label, id),
	})
}

// ValidateName reports whether the name is still available.
func (h *NamedHandler[T]) ValidateName(c *gin.Context) {
	available, err := h.service.IsNameAvailable(c.Param("name"))
	if err != nil {
		apierrors.Internal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": available})
}

func (h *NamedHandler[T]) labelLower() string {
	return strings.ToLower(h.label)
}
