package resumes

import "time"

// ResumeResponse is the outward-facing representation of a parsed resume.
type ResumeResponse struct {
	ResumeID   string   `json:"resumeId"`
	JobID      string   `json:"jobId"`
	FullName   string   `json:"fullName,omitempty"`
	FileName   string   `json:"fileName"`
	Skills     string   `json:"skills,omitempty"`
	MatchScore *float64 `json:"matchScore"`
	ParsedAt   time.Time `json:"parsedAt"`
}

// UploadResponse summarizes an upload batch for the client.
type UploadResponse struct {
	Outcome   string           `json:"outcome"`
	Message   string           `json:"message"`
	Total     int              `json:"total"`
	Processed int              `json:"processed"`
	Problems  []string         `json:"problems,omitempty"`
	Resumes   []ResumeResponse `json:"resumes"`
}

func toResponse(resume Resume) ResumeResponse {
	return ResumeResponse{
		ResumeID:   resume.ID,
		JobID:      resume.JobID,
		FullName:   resume.FullName,
		FileName:   resume.FileName,
		Skills:     resume.Skills,
		MatchScore: resume.MatchScore,
		ParsedAt:   resume.ParsedAt,
	}
}

func toUploadResponse(report BatchReport) UploadResponse {
	resp := UploadResponse{
		Outcome:   string(report.Outcome),
		Message:   report.Message,
		Total:     report.Total,
		Processed: report.Processed,
		Problems:  report.Problems,
		Resumes:   make([]ResumeResponse, 0, len(report.Resumes)),
	}
	for _, resume := range report.Resumes {
		resp.Resumes = append(resp.Resumes, toResponse(resume))
	}
	return resp
}
