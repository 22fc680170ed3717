package evaluations

import "errors"

var (
	// ErrNoResumes gates evaluation and chat: both are meaningless for a
	// job without any parsed resumes.
	ErrNoResumes = errors.New("job has no resumes")
	// ErrNotConfigured means no automation endpoint is set up.
	ErrNotConfigured = errors.New("automation endpoint not configured")
)
