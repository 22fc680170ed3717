package jobs

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new job requisition.
func (r *PGRepo) Create(ctx context.Context, job Job) error {
	const query = `
INSERT INTO job_descriptions (id, title, description, work_mode, is_active, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		job.ID,
		job.Title,
		job.Description,
		job.WorkMode,
		job.IsActive,
		job.CreatedAt,
	)
	return err
}

// GetByID fetches a job by ID.
func (r *PGRepo) GetByID(ctx context.Context, jobID string) (Job, error) {
	const query = `
SELECT id, title, description, work_mode, is_active, created_at
FROM job_descriptions
WHERE id = $1`

	var job Job
	err := r.DB.QueryRowContext(ctx, query, jobID).Scan(
		&job.ID,
		&job.Title,
		&job.Description,
		&job.WorkMode,
		&job.IsActive,
		&job.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Job{}, ErrNotFound
		}
		return Job{}, err
	}
	return job, nil
}

// List returns jobs ordered newest-first.
func (r *PGRepo) List(ctx context.Context) ([]Job, error) {
	const query = `
SELECT id, title, description, work_mode, is_active, created_at
FROM job_descriptions
ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Job
	for rows.Next() {
		var job Job
		if err := rows.Scan(
			&job.ID,
			&job.Title,
			&job.Description,
			&job.WorkMode,
			&job.IsActive,
			&job.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, job)
	}
	return out, rows.Err()
}

// Update rewrites the mutable fields of a job.
func (r *PGRepo) Update(ctx context.Context, job Job) error {
	const query = `
UPDATE job_descriptions
SET title = $1, description = $2, work_mode = $3, is_active = $4
WHERE id = $5`

	res, err := r.DB.ExecContext(
		ctx,
		query,
		job.Title,
		job.Description,
		job.WorkMode,
		job.IsActive,
		job.ID,
	)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a job record.
func (r *PGRepo) Delete(ctx context.Context, jobID string) error {
	const query = `DELETE FROM job_descriptions WHERE id = $1`

	res, err := r.DB.ExecContext(ctx, query, jobID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
