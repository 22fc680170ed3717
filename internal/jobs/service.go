package jobs

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"screening-backend/internal/shared/storage/object"
	"screening-backend/internal/shared/telemetry"
	"screening-backend/internal/webhook"
)

// ResumeGateway is the slice of the resumes package the job flow needs for
// counts and cascade deletes.
type ResumeGateway interface {
	CountByJob(ctx context.Context, jobID string) (int, error)
	ListStoragePaths(ctx context.Context, jobID string) ([]string, error)
	DeleteByJob(ctx context.Context, jobID string) error
}

// ScoreGateway is the slice of the evaluations package the job flow needs
// for cascade deletes.
type ScoreGateway interface {
	DeleteByJob(ctx context.Context, jobID string) error
}

// Service contains business logic for job requisitions.
type Service struct {
	Repo    Repo
	Resumes ResumeGateway
	Scores  ScoreGateway
	Store   object.ObjectStore
	Hook    webhook.Sender
}

// CreateInput carries the fields for a new job.
type CreateInput struct {
	Title       string
	Description string
	WorkMode    string
}

// Create inserts a job record, then notifies the automation endpoint.
// The notification is best-effort; a failure never undoes the insert.
func (s *Service) Create(ctx context.Context, in CreateInput) (Job, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Job{}, ErrInvalidInput
	}

	job := Job{
		ID:          uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		WorkMode:    NormalizeWorkMode(in.WorkMode),
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, job); err != nil {
		return Job{}, err
	}

	if s.Hook != nil {
		var resp webhook.JobCreateResponse
		err := s.Hook.Call(ctx, webhook.EventJobCreate, map[string]any{
			"jobId":       job.ID,
			"title":       job.Title,
			"description": job.Description,
			"workMode":    job.WorkMode,
			"timestamp":   job.CreatedAt.Format(time.RFC3339),
		}, &resp)
		if err != nil {
			telemetry.Warn("job.create.webhook_failed", map[string]any{
				"job_id": job.ID,
				"error":  err.Error(),
			})
		} else if id := resp.WorkflowID(); id != "" {
			telemetry.Info("job.create.webhook_ack", map[string]any{
				"job_id":      job.ID,
				"workflow_id": id,
			})
		}
	}

	return job, nil
}

// Get returns a job with its candidate count.
func (s *Service) Get(ctx context.Context, jobID string) (Job, int, error) {
	job, err := s.Repo.GetByID(ctx, jobID)
	if err != nil {
		return Job{}, 0, err
	}

	count := 0
	if s.Resumes != nil {
		count, err = s.Resumes.CountByJob(ctx, jobID)
		if err != nil {
			return Job{}, 0, err
		}
	}
	return job, count, nil
}

// List returns all jobs. Candidate counts are not computed at list time.
func (s *Service) List(ctx context.Context) ([]Job, error) {
	return s.Repo.List(ctx)
}

// UpdateInput carries the mutable fields of a job.
type UpdateInput struct {
	Title       string
	Description string
	WorkMode    string
	IsActive    bool
}

// Update rewrites a job's mutable fields.
func (s *Service) Update(ctx context.Context, jobID string, in UpdateInput) (Job, error) {
	job, err := s.Repo.GetByID(ctx, jobID)
	if err != nil {
		return Job{}, err
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Job{}, ErrInvalidInput
	}

	job.Title = title
	job.Description = strings.TrimSpace(in.Description)
	job.WorkMode = NormalizeWorkMode(in.WorkMode)
	job.IsActive = in.IsActive

	if err := s.Repo.Update(ctx, job); err != nil {
		return Job{}, err
	}
	return job, nil
}

// Delete removes a job and cascades over its resumes: storage objects first,
// then resume rows, then the job row. Each step is independent; a failed
// object removal is logged and the cascade continues.
func (s *Service) Delete(ctx context.Context, jobID string) error {
	if _, err := s.Repo.GetByID(ctx, jobID); err != nil {
		return err
	}

	if s.Resumes != nil {
		paths, err := s.Resumes.ListStoragePaths(ctx, jobID)
		if err != nil {
			return err
		}
		for _, path := range paths {
			if path == "" || s.Store == nil {
				continue
			}
			if err := s.Store.Remove(ctx, path); err != nil {
				telemetry.Warn("job.delete.object_remove_failed", map[string]any{
					"job_id":       jobID,
					"storage_path": path,
					"error":        err.Error(),
				})
			}
		}
		if s.Scores != nil {
			if err := s.Scores.DeleteByJob(ctx, jobID); err != nil {
				return err
			}
		}
		if err := s.Resumes.DeleteByJob(ctx, jobID); err != nil {
			return err
		}
	}

	return s.Repo.Delete(ctx, jobID)
}
