package resumes

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"screening-backend/internal/jobs"
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

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/jobs/:id/resumes", h.upload)
	rg.GET("/jobs/:id/resumes", h.list)
	rg.DELETE("/resumes/:id", h.remove)
}

func (h *Handler) upload(c *gin.Context) {
	jobID := c.Param("id")
	c.Set("jobId", jobID)

	limits := h.Svc.limits()
	if limits.MaxFiles > 0 && limits.MaxFileBytes > 0 {
		// Bound the whole request body; a little slack for multipart framing.
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body,
			int64(limits.MaxFiles)*limits.MaxFileBytes+1<<20)
	}

	form, err := c.MultipartForm()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid multipart request", nil)
		return
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "no files provided", nil)
		return
	}

	files := make([]UploadFile, 0, len(headers))
	for _, fh := range headers {
		data, err := readFormFile(fh)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "could not read uploaded file", gin.H{"fileName": fh.Filename})
			return
		}
		files = append(files, UploadFile{Name: fh.Filename, Size: fh.Size, Data: data})
	}

	report, err := h.Svc.UploadBatch(c.Request.Context(), jobID, files)
	if err != nil {
		switch {
		case errors.Is(err, jobs.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
		case errors.Is(err, ErrInvalidBatch):
			respond.Error(c, http.StatusBadRequest, "validation_error", "one or more files were rejected", gin.H{"problems": report.Problems})
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to upload resumes", nil)
		}
		return
	}

	status := http.StatusCreated
	if report.Outcome != OutcomeSuccess {
		// Partial and failure outcomes still return the report; the client
		// reads the outcome field rather than the status code.
		status = http.StatusAccepted
	}
	respond.JSON(c, status, toUploadResponse(report))
}

func (h *Handler) list(c *gin.Context) {
	jobID := c.Param("id")
	c.Set("jobId", jobID)

	all, err := h.Svc.ListByJob(c.Request.Context(), jobID)
	if err != nil {
		switch {
		case errors.Is(err, jobs.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list resumes", nil)
		}
		return
	}

	resp := make([]ResumeResponse, 0, len(all))
	for _, resume := range all {
		resp = append(resp, toResponse(resume))
	}
	respond.OK(c, resp)
}

func (h *Handler) remove(c *gin.Context) {
	resumeID := c.Param("id")
	c.Set("resumeId", resumeID)

	remaining, err := h.Svc.Delete(c.Request.Context(), resumeID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete resume", nil)
		}
		return
	}

	respond.OK(c, gin.H{"remainingCount": remaining})
}

func readFormFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
