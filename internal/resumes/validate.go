package resumes

import (
	"fmt"

	"screening-backend/internal/shared/util"
)

// FileMeta is what the validator needs to know about a candidate file.
type FileMeta struct {
	Name string
	Size int64
}

// BatchLimits bounds an upload batch.
type BatchLimits struct {
	MaxFiles     int
	MaxFileBytes int64
	AllowedExts  []string
}

// DefaultLimits mirrors the dashboard's file picker constraints.
func DefaultLimits() BatchLimits {
	return BatchLimits{
		MaxFiles:     5,
		MaxFileBytes: 5 << 20,
		AllowedExts:  []string{".pdf", ".txt", ".doc", ".docx"},
	}
}

// BatchResult is the validator's verdict on an upload batch.
//
// Valid is true only when every file passed. A partially-valid batch is
// reported invalid while Accepted still lists the passing subset; callers
// decide whether to proceed with it (the upload pipeline does not).
type BatchResult struct {
	Valid    bool
	Accepted []FileMeta
	Problems []string
}

// ValidateBatch checks count, extension and size constraints.
// A batch over the count limit is rejected whole, with no accepted subset.
func ValidateBatch(files []FileMeta, limits BatchLimits) BatchResult {
	if limits.MaxFiles > 0 && len(files) > limits.MaxFiles {
		return BatchResult{
			Valid:    false,
			Problems: []string{fmt.Sprintf("too many files: %d exceeds the limit of %d", len(files), limits.MaxFiles)},
		}
	}

	var result BatchResult
	for _, f := range files {
		ext := util.FileExt(f.Name)
		if !extAllowed(ext, limits.AllowedExts) {
			result.Problems = append(result.Problems, fmt.Sprintf("%s: file type %q is not allowed", f.Name, ext))
			continue
		}
		if limits.MaxFileBytes > 0 && f.Size > limits.MaxFileBytes {
			result.Problems = append(result.Problems, fmt.Sprintf("%s: exceeds the %dMB size limit", f.Name, limits.MaxFileBytes>>20))
			continue
		}
		result.Accepted = append(result.Accepted, f)
	}

	result.Valid = len(files) > 0 && len(result.Accepted) == len(files)
	return result
}

func extAllowed(ext string, allowed []string) bool {
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}
