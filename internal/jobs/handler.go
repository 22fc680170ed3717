package jobs

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"screening-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches job routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/jobs", h.create)
	rg.GET("/jobs", h.list)
	rg.GET("/jobs/:id", h.get)
	rg.PUT("/jobs/:id", h.update)
	rg.DELETE("/jobs/:id", h.remove)
}

type createRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	WorkMode    string `json:"workMode"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	job, err := h.Svc.Create(c.Request.Context(), CreateInput{
		Title:       req.Title,
		Description: req.Description,
		WorkMode:    req.WorkMode,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "title is required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create job", nil)
		}
		return
	}

	c.Set("jobId", job.ID)
	respond.JSON(c, http.StatusCreated, toResponse(job, 0))
}

func (h *Handler) list(c *gin.Context) {
	all, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list jobs", nil)
		return
	}

	resp := make([]JobResponse, 0, len(all))
	for _, job := range all {
		resp = append(resp, toResponse(job, 0))
	}
	respond.OK(c, resp)
}

func (h *Handler) get(c *gin.Context) {
	jobID := c.Param("id")
	c.Set("jobId", jobID)

	job, count, err := h.Svc.Get(c.Request.Context(), jobID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch job", nil)
		}
		return
	}

	respond.OK(c, toResponse(job, count))
}

type updateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	WorkMode    string `json:"workMode"`
	IsActive    bool   `json:"isActive"`
}

func (h *Handler) update(c *gin.Context) {
	jobID := c.Param("id")
	c.Set("jobId", jobID)

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	job, err := h.Svc.Update(c.Request.Context(), jobID, UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		WorkMode:    req.WorkMode,
		IsActive:    req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "title is required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update job", nil)
		}
		return
	}

	respond.OK(c, toResponse(job, 0))
}

func (h *Handler) remove(c *gin.Context) {
	jobID := c.Param("id")
	c.Set("jobId", jobID)

	if err := h.Svc.Delete(c.Request.Context(), jobID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete job", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
