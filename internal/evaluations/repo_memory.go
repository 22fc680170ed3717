package evaluations

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Score
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Score)}
}

// Create stores a new score record.
func (r *MemoryRepo) Create(ctx context.Context, score Score) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[score.ID] = score
	return nil
}

// ListByJob returns scores for a job, highest score first.
func (r *MemoryRepo) ListByJob(ctx context.Context, jobID string) ([]Score, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Score
	for _, score := range r.data {
		if score.JobID == jobID {
			out = append(out, score)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out, nil
}

// DeleteByJob removes all score records for a job.
func (r *MemoryRepo) DeleteByJob(ctx context.Context, jobID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, score := range r.data {
		if score.JobID == jobID {
			delete(r.data, id)
		}
	}
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
