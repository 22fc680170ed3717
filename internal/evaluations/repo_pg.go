package evaluations

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new score record.
func (r *PGRepo) Create(ctx context.Context, score Score) error {
	const query = `
INSERT INTO resume_scores (id, resume_id, job_id, score, summary, scored_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		score.ID,
		score.ResumeID,
		score.JobID,
		score.Score,
		score.Summary,
		score.ScoredAt,
	)
	return err
}

// ListByJob returns scores for a job, highest score first.
func (r *PGRepo) ListByJob(ctx context.Context, jobID string) ([]Score, error) {
	const query = `
SELECT id, resume_id, job_id, score, summary, scored_at
FROM resume_scores
WHERE job_id = $1
ORDER BY score DESC`

	rows, err := r.DB.QueryContext(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Score
	for rows.Next() {
		var score Score
		if err := rows.Scan(
			&score.ID,
			&score.ResumeID,
			&score.JobID,
			&score.Score,
			&score.Summary,
			&score.ScoredAt,
		); err != nil {
			return nil, err
		}
		out = append(out, score)
	}
	return out, rows.Err()
}

// DeleteByJob removes all score records for a job.
func (r *PGRepo) DeleteByJob(ctx context.Context, jobID string) error {
	const query = `DELETE FROM resume_scores WHERE job_id = $1`

	_, err := r.DB.ExecContext(ctx, query, jobID)
	return err
}

var _ Repo = (*PGRepo)(nil)
