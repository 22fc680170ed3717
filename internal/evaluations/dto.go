package evaluations

import "time"

// ScoreResponse is the outward-facing representation of one score.
type ScoreResponse struct {
	ResumeID string    `json:"resumeId"`
	Score    float64   `json:"score"`
	Summary  string    `json:"summary,omitempty"`
	ScoredAt time.Time `json:"scoredAt"`
}

func toResponses(scores []Score) []ScoreResponse {
	out := make([]ScoreResponse, 0, len(scores))
	for _, s := range scores {
		out = append(out, ScoreResponse{
			ResumeID: s.ResumeID,
			Score:    s.Score,
			Summary:  s.Summary,
			ScoredAt: s.ScoredAt,
		})
	}
	return out
}
