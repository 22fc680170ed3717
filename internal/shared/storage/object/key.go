package object

import (
	"path"

	"github.com/google/uuid"

	"screening-backend/internal/shared/util"
)

// NewStoragePath builds the job-scoped key for a resume file. The original
// file name only contributes its extension; the basename is a fresh UUID so
// two uploads of the same file never collide.
func NewStoragePath(jobID, fileName string) string {
	return path.Join(jobID, uuid.NewString()+util.FileExt(fileName))
}
