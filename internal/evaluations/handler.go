package evaluations

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"screening-backend/internal/jobs"
	"screening-backend/internal/retry"
	"screening-backend/internal/shared/server/respond"
	"screening-backend/internal/webhook"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches evaluation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/jobs/:id/evaluations", h.evaluate)
	rg.GET("/jobs/:id/evaluations", h.list)
	rg.POST("/jobs/:id/chat", h.chat)
}

func (h *Handler) evaluate(c *gin.Context) {
	jobID := c.Param("id")
	c.Set("jobId", jobID)

	scores, err := h.Svc.Evaluate(c.Request.Context(), jobID)
	if err != nil {
		h.respondError(c, err, "failed to evaluate resumes")
		return
	}

	respond.OK(c, gin.H{"scores": toResponses(scores)})
}

func (h *Handler) list(c *gin.Context) {
	jobID := c.Param("id")
	c.Set("jobId", jobID)

	scores, err := h.Svc.ListByJob(c.Request.Context(), jobID)
	if err != nil {
		h.respondError(c, err, "failed to list scores")
		return
	}

	respond.OK(c, gin.H{"scores": toResponses(scores)})
}

type chatRequest struct {
	Message string `json:"message"`
}

func (h *Handler) chat(c *gin.Context) {
	jobID := c.Param("id")
	c.Set("jobId", jobID)

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "message is required", nil)
		return
	}

	answer, err := h.Svc.Chat(c.Request.Context(), jobID, req.Message)
	if err != nil {
		h.respondError(c, err, "failed to get a chat response")
		return
	}

	respond.OK(c, gin.H{"response": answer})
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	var exhausted *retry.ExhaustedError
	switch {
	case errors.Is(err, jobs.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
	case errors.Is(err, ErrNoResumes):
		respond.Error(c, http.StatusConflict, "no_resumes", "upload resumes before running this", nil)
	case errors.Is(err, ErrNotConfigured):
		respond.Error(c, http.StatusServiceUnavailable, "not_configured", "automation endpoint is not configured", nil)
	case errors.As(err, &exhausted):
		// Every automation failure surfaces through retry exhaustion; the
		// message derivation digs the workflow's own wording out of it.
		respond.Error(c, http.StatusBadGateway, "automation_error", webhook.DeriveMessage(exhausted.Err), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
