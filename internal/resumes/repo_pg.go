package resumes

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new parsed resume.
func (r *PGRepo) Create(ctx context.Context, resume Resume) error {
	const query = `
INSERT INTO parsed_resumes (id, job_id, full_name, file_name, storage_path, skills, match_score, parsed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	var fullName sql.NullString
	if resume.FullName != "" {
		fullName = sql.NullString{String: resume.FullName, Valid: true}
	}
	var storagePath sql.NullString
	if resume.StoragePath != "" {
		storagePath = sql.NullString{String: resume.StoragePath, Valid: true}
	}
	var matchScore sql.NullFloat64
	if resume.MatchScore != nil {
		matchScore = sql.NullFloat64{Float64: *resume.MatchScore, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		resume.ID,
		resume.JobID,
		fullName,
		resume.FileName,
		storagePath,
		resume.Skills,
		matchScore,
		resume.ParsedAt,
	)
	return err
}

// GetByID fetches a resume by ID.
func (r *PGRepo) GetByID(ctx context.Context, resumeID string) (Resume, error) {
	const query = `
SELECT id, job_id, full_name, file_name, storage_path, skills, match_score, parsed_at
FROM parsed_resumes
WHERE id = $1`

	resume, err := scanResume(r.DB.QueryRowContext(ctx, query, resumeID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return resume, nil
}

// ListByJob returns resumes for a job, newest-first.
func (r *PGRepo) ListByJob(ctx context.Context, jobID string) ([]Resume, error) {
	const query = `
SELECT id, job_id, full_name, file_name, storage_path, skills, match_score, parsed_at
FROM parsed_resumes
WHERE job_id = $1
ORDER BY parsed_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Resume
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}

// CountByJob counts resumes for a job.
func (r *PGRepo) CountByJob(ctx context.Context, jobID string) (int, error) {
	const query = `SELECT COUNT(*) FROM parsed_resumes WHERE job_id = $1`

	var count int
	if err := r.DB.QueryRowContext(ctx, query, jobID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// ListStoragePaths returns the non-empty storage paths for a job's resumes.
func (r *PGRepo) ListStoragePaths(ctx context.Context, jobID string) ([]string, error) {
	const query = `
SELECT storage_path
FROM parsed_resumes
WHERE job_id = $1 AND storage_path IS NOT NULL`

	rows, err := r.DB.QueryContext(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, err
		}
		out = append(out, path)
	}
	return out, rows.Err()
}

// UpdateMatchScore sets the match score for a resume.
func (r *PGRepo) UpdateMatchScore(ctx context.Context, resumeID string, score float64) error {
	const query = `UPDATE parsed_resumes SET match_score = $1 WHERE id = $2`

	res, err := r.DB.ExecContext(ctx, query, score, resumeID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a resume record.
func (r *PGRepo) Delete(ctx context.Context, resumeID string) error {
	const query = `DELETE FROM parsed_resumes WHERE id = $1`

	res, err := r.DB.ExecContext(ctx, query, resumeID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByJob removes all resume records for a job.
func (r *PGRepo) DeleteByJob(ctx context.Context, jobID string) error {
	const query = `DELETE FROM parsed_resumes WHERE job_id = $1`

	_, err := r.DB.ExecContext(ctx, query, jobID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var resume Resume
	var fullName sql.NullString
	var storagePath sql.NullString
	var matchScore sql.NullFloat64
	if err := row.Scan(
		&resume.ID,
		&resume.JobID,
		&fullName,
		&resume.FileName,
		&storagePath,
		&resume.Skills,
		&matchScore,
		&resume.ParsedAt,
	); err != nil {
		return Resume{}, err
	}
	if fullName.Valid {
		resume.FullName = fullName.String
	}
	if storagePath.Valid {
		resume.StoragePath = storagePath.String
	}
	if matchScore.Valid {
		score := matchScore.Float64
		resume.MatchScore = &score
	}
	return resume, nil
}

var _ Repo = (*PGRepo)(nil)
