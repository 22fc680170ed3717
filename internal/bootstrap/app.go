package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"screening-backend/internal/evaluations"
	"screening-backend/internal/jobs"
	"screening-backend/internal/resumes"
	"screening-backend/internal/retry"
	"screening-backend/internal/shared/config"
	"screening-backend/internal/shared/server"
	"screening-backend/internal/shared/storage/db"
	"screening-backend/internal/shared/storage/object"
	localstore "screening-backend/internal/shared/storage/object/local"
	s3store "screening-backend/internal/shared/storage/object/s3"
	"screening-backend/internal/webhook"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Hook   webhook.Sender

	JobsRepo    jobs.Repo
	ResumesRepo resumes.Repo
	ScoresRepo  evaluations.Repo

	JobsService        *jobs.Service
	ResumesService     *resumes.Service
	EvaluationsService *evaluations.Service

	JobsHandler        *jobs.Handler
	ResumesHandler     *resumes.Handler
	EvaluationsHandler *evaluations.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Hook:   buildHook(cfg),
	}

	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:             app.Config,
		JobsHandler:        app.JobsHandler,
		ResumesHandler:     app.ResumesHandler,
		EvaluationsHandler: app.EvaluationsHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildHook(cfg config.Config) webhook.Sender {
	client := webhook.New(cfg.WebhookURL, cfg.WebhookTimeout)
	if !client.Configured() {
		log.Printf("bootstrap: WEBHOOK_URL empty; automation calls disabled")
		return nil
	}
	return client
}

func buildServices(app *App) {
	if app.DB != nil {
		app.JobsRepo = &jobs.PGRepo{DB: app.DB}
		app.ResumesRepo = &resumes.PGRepo{DB: app.DB}
		app.ScoresRepo = &evaluations.PGRepo{DB: app.DB}
	} else {
		app.JobsRepo = jobs.NewMemoryRepo()
		app.ResumesRepo = resumes.NewMemoryRepo()
		app.ScoresRepo = evaluations.NewMemoryRepo()
	}

	app.JobsService = &jobs.Service{
		Repo:    app.JobsRepo,
		Resumes: app.ResumesRepo,
		Scores:  app.ScoresRepo,
		Store:   app.Store,
		Hook:    app.Hook,
	}

	app.ResumesService = &resumes.Service{
		Repo:  app.ResumesRepo,
		Jobs:  app.JobsRepo,
		Store: app.Store,
		Hook:  app.Hook,
		Retry: retry.New(retry.Config{MaxRetries: 2, InitialDelay: time.Second, BackoffFactor: 2}),
		Limits: resumes.BatchLimits{
			MaxFiles:     app.Config.MaxUploadFiles,
			MaxFileBytes: app.Config.MaxUploadBytes,
			AllowedExts:  resumes.DefaultLimits().AllowedExts,
		},
	}

	app.EvaluationsService = &evaluations.Service{
		Scores:  app.ScoresRepo,
		Resumes: app.ResumesRepo,
		Jobs:    app.JobsRepo,
		Hook:    app.Hook,
		Retry:   retry.New(retry.DefaultConfig()),
	}

	app.JobsHandler = jobs.NewHandler(app.JobsService)
	app.ResumesHandler = resumes.NewHandler(app.ResumesService)
	app.EvaluationsHandler = evaluations.NewHandler(app.EvaluationsService)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
