package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"screening-backend/internal/evaluations"
	"screening-backend/internal/jobs"
	"screening-backend/internal/resumes"
	"screening-backend/internal/shared/config"
	"screening-backend/internal/shared/metrics"
	"screening-backend/internal/shared/server/middleware"
	"screening-backend/internal/shared/server/respond"
)

// RouterDeps carries everything route registration needs.
type RouterDeps struct {
	Config             config.Config
	JobsHandler        *jobs.Handler
	ResumesHandler     *resumes.Handler
	EvaluationsHandler *evaluations.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	protected := api.Group("")
	protected.Use(middleware.APIKey(deps.Config.APIKey, deps.Config.Env))
	if deps.JobsHandler != nil {
		deps.JobsHandler.RegisterRoutes(protected)
	}
	if deps.ResumesHandler != nil {
		deps.ResumesHandler.RegisterRoutes(protected)
	}
	if deps.EvaluationsHandler != nil {
		deps.EvaluationsHandler.RegisterRoutes(protected)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
