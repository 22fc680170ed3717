package evaluations

import "time"

// Score is one scored resume from an evaluation run.
type Score struct {
	ID       string
	ResumeID string
	JobID    string
	Score    float64
	Summary  string
	ScoredAt time.Time
}
