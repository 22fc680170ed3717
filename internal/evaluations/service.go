package evaluations

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"screening-backend/internal/jobs"
	"screening-backend/internal/resumes"
	"screening-backend/internal/retry"
	"screening-backend/internal/shared/metrics"
	"screening-backend/internal/shared/telemetry"
	"screening-backend/internal/webhook"
)

// Service runs scoring and chat through the automation endpoint. Both
// operations require the job to have at least one parsed resume; the gate
// is checked before any network call.
type Service struct {
	Scores  Repo
	Resumes resumes.Repo
	Jobs    jobs.Repo
	Hook    webhook.Sender
	Retry   *retry.Executor
}

// Evaluate asks the automation workflow to score every resume of a job and
// persists the returned scores.
func (s *Service) Evaluate(ctx context.Context, jobID string) ([]Score, error) {
	job, err := s.Jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	all, err := s.Resumes.ListByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, ErrNoResumes
	}
	if s.Hook == nil {
		return nil, ErrNotConfigured
	}

	metrics.IncScoringRun()

	resumeIDs := make([]string, 0, len(all))
	for _, resume := range all {
		resumeIDs = append(resumeIDs, resume.ID)
	}

	resp, err := retry.Do(ctx, s.executor(), func(ctx context.Context) (webhook.ResumeScoreResponse, error) {
		var out webhook.ResumeScoreResponse
		err := s.Hook.Call(ctx, webhook.EventResumeScore, map[string]any{
			"jobId":          jobID,
			"jobTitle":       job.Title,
			"jobDescription": job.Description,
			"resumeIds":      resumeIDs,
			"timestamp":      time.Now().UTC().Format(time.RFC3339),
		}, &out)
		return out, err
	})
	if err != nil {
		metrics.IncWebhookFailure()
		telemetry.Error("evaluation.score_call_failed", map[string]any{
			"job_id": jobID,
			"error":  err.Error(),
		})
		return nil, fmt.Errorf("score job %s: %w", jobID, err)
	}

	scoredAt := time.Now().UTC()
	saved := make([]Score, 0, len(resp.Scores))
	for _, result := range resp.Scores {
		score := Score{
			ID:       uuid.NewString(),
			ResumeID: result.ResumeID,
			JobID:    jobID,
			Score:    result.Score,
			Summary:  result.Summary,
			ScoredAt: scoredAt,
		}
		if err := s.Scores.Create(ctx, score); err != nil {
			return saved, fmt.Errorf("persist score for resume %s: %w", result.ResumeID, err)
		}
		if err := s.Resumes.UpdateMatchScore(ctx, result.ResumeID, result.Score); err != nil {
			// The workflow sometimes returns ids for resumes deleted mid-run.
			telemetry.Warn("evaluation.match_score_update_failed", map[string]any{
				"job_id":    jobID,
				"resume_id": result.ResumeID,
				"error":     err.Error(),
			})
		}
		saved = append(saved, score)
	}

	telemetry.Info("evaluation.complete", map[string]any{
		"job_id":  jobID,
		"resumes": len(all),
		"scores":  len(saved),
	})

	return saved, nil
}

// Chat forwards an HR question about a job to the automation workflow and
// returns its answer.
func (s *Service) Chat(ctx context.Context, jobID, message string) (string, error) {
	if _, err := s.Jobs.GetByID(ctx, jobID); err != nil {
		return "", err
	}

	count, err := s.Resumes.CountByJob(ctx, jobID)
	if err != nil {
		return "", err
	}
	if count == 0 {
		return "", ErrNoResumes
	}
	if s.Hook == nil {
		return "", ErrNotConfigured
	}

	resp, err := retry.Do(ctx, s.executor(), func(ctx context.Context) (webhook.ChatResponse, error) {
		var out webhook.ChatResponse
		err := s.Hook.Call(ctx, webhook.EventHRChat, map[string]any{
			"jobId":     jobID,
			"message":   message,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		}, &out)
		return out, err
	})
	if err != nil {
		metrics.IncWebhookFailure()
		telemetry.Error("evaluation.chat_call_failed", map[string]any{
			"job_id": jobID,
			"error":  err.Error(),
		})
		return "", fmt.Errorf("chat for job %s: %w", jobID, err)
	}

	return resp.Response, nil
}

// ListByJob returns the persisted scores of a job's latest runs.
func (s *Service) ListByJob(ctx context.Context, jobID string) ([]Score, error) {
	if _, err := s.Jobs.GetByID(ctx, jobID); err != nil {
		return nil, err
	}
	return s.Scores.ListByJob(ctx, jobID)
}

func (s *Service) executor() *retry.Executor {
	if s.Retry != nil {
		return s.Retry
	}
	return retry.New(retry.DefaultConfig())
}
