package resumes

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Resume
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Resume)}
}

// Create stores a new resume record.
func (r *MemoryRepo) Create(ctx context.Context, resume Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[resume.ID] = resume
	return nil
}

// GetByID returns a resume by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, resumeID string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	resume, ok := r.data[resumeID]
	if !ok {
		return Resume{}, ErrNotFound
	}
	return resume, nil
}

// ListByJob returns resumes for a job, newest-first.
func (r *MemoryRepo) ListByJob(ctx context.Context, jobID string) ([]Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Resume
	for _, resume := range r.data {
		if resume.JobID == jobID {
			out = append(out, resume)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ParsedAt.After(out[j].ParsedAt)
	})
	return out, nil
}

// CountByJob counts resumes for a job.
func (r *MemoryRepo) CountByJob(ctx context.Context, jobID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, resume := range r.data {
		if resume.JobID == jobID {
			count++
		}
	}
	return count, nil
}

// ListStoragePaths returns the non-empty storage paths for a job's resumes.
func (r *MemoryRepo) ListStoragePaths(ctx context.Context, jobID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []string
	for _, resume := range r.data {
		if resume.JobID == jobID && resume.StoragePath != "" {
			out = append(out, resume.StoragePath)
		}
	}
	sort.Strings(out)
	return out, nil
}

// UpdateMatchScore sets the match score for a resume.
func (r *MemoryRepo) UpdateMatchScore(ctx context.Context, resumeID string, score float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	resume, ok := r.data[resumeID]
	if !ok {
		return ErrNotFound
	}
	resume.MatchScore = &score
	r.data[resumeID] = resume
	return nil
}

// Delete removes a resume record.
func (r *MemoryRepo) Delete(ctx context.Context, resumeID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[resumeID]; !ok {
		return ErrNotFound
	}
	delete(r.data, resumeID)
	return nil
}

// DeleteByJob removes all resume records for a job.
func (r *MemoryRepo) DeleteByJob(ctx context.Context, jobID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, resume := range r.data {
		if resume.JobID == jobID {
			delete(r.data, id)
		}
	}
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
