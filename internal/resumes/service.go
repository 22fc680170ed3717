package resumes

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"screening-backend/internal/extract"
	"screening-backend/internal/jobs"
	"screening-backend/internal/retry"
	"screening-backend/internal/shared/metrics"
	"screening-backend/internal/shared/storage/object"
	"screening-backend/internal/shared/telemetry"
	"screening-backend/internal/shared/util"
	"screening-backend/internal/webhook"
)

const maxFullNameLen = 80

// UploadFile is one file of an upload batch, fully read into memory.
// Batches are bounded to 5 files of 5MiB so buffering is acceptable.
type UploadFile struct {
	Name string
	Size int64
	Data []byte
}

// BatchReport aggregates the result of an upload batch. Storage, webhook
// and record processing are three independently-failing steps with no
// compensating transaction; the report reflects whatever each achieved.
type BatchReport struct {
	Outcome          Outcome
	Message          string
	Problems         []string
	WebhookDelivered bool
	StoredPaths      []string
	Resumes          []Resume
	Total            int
	Processed        int
}

// Service orchestrates the resume upload pipeline.
type Service struct {
	Repo   Repo
	Jobs   jobs.Repo
	Store  object.ObjectStore
	Hook   webhook.Sender
	Retry  *retry.Executor
	Limits BatchLimits
}

// UploadBatch runs the full pipeline for one batch: validate, store each
// file, fire the batch webhook, then process each stored file into a
// parsed_resumes record. Files are handled sequentially in input order.
func (s *Service) UploadBatch(ctx context.Context, jobID string, files []UploadFile) (BatchReport, error) {
	if _, err := s.Jobs.GetByID(ctx, jobID); err != nil {
		return BatchReport{}, err
	}

	metas := make([]FileMeta, 0, len(files))
	for _, f := range files {
		metas = append(metas, FileMeta{Name: f.Name, Size: f.Size})
	}

	verdict := ValidateBatch(metas, s.limits())
	if !verdict.Valid {
		// The accepted subset is discarded: the pipeline only proceeds on
		// fully valid batches.
		return BatchReport{Problems: verdict.Problems, Total: len(files)}, ErrInvalidBatch
	}

	started := time.Now()
	metrics.IncUploadBatch()

	report := BatchReport{Total: len(files)}

	type stored struct {
		file UploadFile
		path string
	}
	var uploaded []stored
	for _, f := range files {
		path, _, _, err := s.Store.Save(ctx, jobID, f.Name, bytes.NewReader(f.Data))
		if err != nil {
			metrics.IncUploadFailure()
			report.Problems = append(report.Problems, fmt.Sprintf("%s: upload failed", f.Name))
			telemetry.Error("resume.upload.store_failed", map[string]any{
				"job_id":    jobID,
				"file_name": f.Name,
				"error":     err.Error(),
			})
			continue
		}
		uploaded = append(uploaded, stored{file: f, path: path})
		report.StoredPaths = append(report.StoredPaths, path)
	}

	if len(uploaded) > 0 {
		names := make([]string, 0, len(uploaded))
		for _, u := range uploaded {
			names = append(names, u.file.Name)
		}
		report.WebhookDelivered = s.notifyBatch(ctx, jobID, names, report.StoredPaths)
	}

	for _, u := range uploaded {
		resume, err := s.processFile(ctx, jobID, u.file, u.path)
		if err != nil {
			report.Problems = append(report.Problems, fmt.Sprintf("%s: processing failed", u.file.Name))
			telemetry.Error("resume.upload.process_failed", map[string]any{
				"job_id":       jobID,
				"file_name":    u.file.Name,
				"storage_path": u.path,
				"error":        err.Error(),
			})
			continue
		}
		report.Resumes = append(report.Resumes, resume)
		report.Processed++
	}
	metrics.AddUploadFiles(report.Processed)

	report.Outcome = ClassifyOutcome(report.Processed, report.Total, report.WebhookDelivered)
	report.Message = report.Outcome.Message()
	metrics.ObserveUploadDurationMs(float64(time.Since(started).Microseconds()) / 1000.0)

	telemetry.Info("resume.upload.complete", map[string]any{
		"job_id":    jobID,
		"total":     report.Total,
		"stored":    len(uploaded),
		"processed": report.Processed,
		"webhook":   report.WebhookDelivered,
		"outcome":   string(report.Outcome),
	})

	return report, nil
}

// notifyBatch fires the batch-level automation event. Best-effort: the
// result only feeds outcome classification.
func (s *Service) notifyBatch(ctx context.Context, jobID string, names, paths []string) bool {
	if s.Hook == nil {
		return false
	}

	err := s.executor().Do(ctx, func(ctx context.Context) error {
		return s.Hook.Notify(ctx, webhook.EventResumeUpload, map[string]any{
			"fileNames":    names,
			"jobId":        jobID,
			"storagePaths": paths,
			"timestamp":    time.Now().UTC().Format(time.RFC3339),
		})
	})
	if err != nil {
		metrics.IncWebhookFailure()
		telemetry.Warn("resume.upload.webhook_failed", map[string]any{
			"job_id": jobID,
			"error":  err.Error(),
		})
		return false
	}
	return true
}

// processFile extracts text and inserts the resume record, retrying the
// whole step on failure.
func (s *Service) processFile(ctx context.Context, jobID string, f UploadFile, storagePath string) (Resume, error) {
	return retry.Do(ctx, s.executor(), func(ctx context.Context) (Resume, error) {
		text, err := extract.Text(ctx, f.Data, util.FileExt(f.Name))
		if err != nil {
			return Resume{}, fmt.Errorf("extract %s: %w", f.Name, err)
		}

		resume := Resume{
			ID:          uuid.NewString(),
			JobID:       jobID,
			FullName:    fullNameFromText(text),
			FileName:    f.Name,
			StoragePath: storagePath,
			ParsedAt:    time.Now().UTC(),
		}
		if err := s.Repo.Create(ctx, resume); err != nil {
			return Resume{}, fmt.Errorf("create record for %s: %w", f.Name, err)
		}
		return resume, nil
	})
}

// Delete removes a resume's storage object and record. The two steps are
// independent: a missing object is logged and the record delete proceeds.
// Returns the remaining resume count for the job.
func (s *Service) Delete(ctx context.Context, resumeID string) (int, error) {
	resume, err := s.Repo.GetByID(ctx, resumeID)
	if err != nil {
		return 0, err
	}

	if resume.StoragePath != "" && s.Store != nil {
		if err := s.Store.Remove(ctx, resume.StoragePath); err != nil {
			telemetry.Warn("resume.delete.object_remove_failed", map[string]any{
				"resume_id":    resumeID,
				"storage_path": resume.StoragePath,
				"error":        err.Error(),
			})
		}
	}

	if err := s.Repo.Delete(ctx, resumeID); err != nil {
		return 0, err
	}

	return s.Repo.CountByJob(ctx, resume.JobID)
}

// ListByJob returns the resumes attached to a job.
func (s *Service) ListByJob(ctx context.Context, jobID string) ([]Resume, error) {
	if _, err := s.Jobs.GetByID(ctx, jobID); err != nil {
		return nil, err
	}
	return s.Repo.ListByJob(ctx, jobID)
}

func (s *Service) limits() BatchLimits {
	if s.Limits.MaxFiles == 0 && s.Limits.MaxFileBytes == 0 && len(s.Limits.AllowedExts) == 0 {
		return DefaultLimits()
	}
	return s.Limits
}

func (s *Service) executor() *retry.Executor {
	if s.Retry != nil {
		return s.Retry
	}
	return retry.New(retry.Config{MaxRetries: 2, InitialDelay: time.Second, BackoffFactor: 2})
}

// fullNameFromText guesses the candidate name from the first non-empty line.
func fullNameFromText(text string) string {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if len(trimmed) > maxFullNameLen {
			trimmed = strings.TrimSpace(trimmed[:maxFullNameLen])
		}
		return trimmed
	}
	return ""
}
