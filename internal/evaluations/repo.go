package evaluations

import "context"

// Repo defines persistence operations for evaluation scores.
type Repo interface {
	Create(ctx context.Context, score Score) error
	ListByJob(ctx context.Context, jobID string) ([]Score, error)
	DeleteByJob(ctx context.Context, jobID string) error
}
