package jobs

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Job
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Job)}
}

// Create stores a new job.
func (r *MemoryRepo) Create(ctx context.Context, job Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[job.ID] = job
	return nil
}

// GetByID returns a job by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, jobID string) (Job, error) {
	if err := ctx.Err(); err != nil {
		return Job{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.data[jobID]
	if !ok {
		return Job{}, ErrNotFound
	}
	return job, nil
}

// List returns all jobs ordered newest-first.
func (r *MemoryRepo) List(ctx context.Context) ([]Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Job, 0, len(r.data))
	for _, job := range r.data {
		out = append(out, job)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Update replaces an existing job.
func (r *MemoryRepo) Update(ctx context.Context, job Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[job.ID]; !ok {
		return ErrNotFound
	}
	r.data[job.ID] = job
	return nil
}

// Delete removes a job record.
func (r *MemoryRepo) Delete(ctx context.Context, jobID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[jobID]; !ok {
		return ErrNotFound
	}
	delete(r.data, jobID)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
