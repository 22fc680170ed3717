package resumes

import "context"

// Repo defines persistence operations for parsed resumes.
type Repo interface {
	Create(ctx context.Context, resume Resume) error
	GetByID(ctx context.Context, resumeID string) (Resume, error)
	ListByJob(ctx context.Context, jobID string) ([]Resume, error)
	CountByJob(ctx context.Context, jobID string) (int, error)
	ListStoragePaths(ctx context.Context, jobID string) ([]string, error)
	UpdateMatchScore(ctx context.Context, resumeID string, score float64) error
	Delete(ctx context.Context, resumeID string) error
	DeleteByJob(ctx context.Context, jobID string) error
}
