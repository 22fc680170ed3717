package jobs

import "time"

// Work modes accepted for a job requisition.
const (
	WorkModeOnsite = "onsite"
	WorkModeRemote = "remote"
	WorkModeHybrid = "hybrid"
)

// Statuses derived from the is_active flag.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// Job is a hiring requisition record.
type Job struct {
	ID          string
	Title       string
	Description string
	WorkMode    string
	IsActive    bool
	CreatedAt   time.Time
}

// Status maps the active flag to the dashboard's status enum.
func (j Job) Status() string {
	if j.IsActive {
		return StatusActive
	}
	return StatusCompleted
}

// NormalizeWorkMode folds free-form input into a known work mode.
func NormalizeWorkMode(raw string) string {
	switch raw {
	case WorkModeRemote, "Remote":
		return WorkModeRemote
	case WorkModeHybrid, "Hybrid":
		return WorkModeHybrid
	default:
		return WorkModeOnsite
	}
}
