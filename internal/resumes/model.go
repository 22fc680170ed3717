package resumes

import "time"

// Resume is a parsed candidate submission linked to a job.
type Resume struct {
	ID          string
	JobID       string
	FullName    string
	FileName    string
	StoragePath string
	Skills      string
	// MatchScore stays nil until a scoring run persists one.
	MatchScore *float64
	ParsedAt   time.Time
}
