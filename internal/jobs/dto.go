package jobs

import "time"

// JobResponse is the outward-facing representation of a job.
type JobResponse struct {
	JobID          string    `json:"jobId"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	WorkMode       string    `json:"workMode"`
	Status         string    `json:"status"`
	CandidateCount int       `json:"candidateCount"`
	CreatedAt      time.Time `json:"createdAt"`
}

func toResponse(job Job, candidateCount int) JobResponse {
	return JobResponse{
		JobID:          job.ID,
		Title:          job.Title,
		Description:    job.Description,
		WorkMode:       job.WorkMode,
		Status:         job.Status(),
		CandidateCount: candidateCount,
		CreatedAt:      job.CreatedAt,
	}
}
