package object

import (
	"context"
	"io"
)

// ObjectStore defines the contract for persisting resume files.
// Storage paths are job-scoped: "{jobID}/{uuid}{ext}".
type ObjectStore interface {
	Save(ctx context.Context, jobID string, fileName string, r io.Reader) (storagePath string, sizeBytes int64, mimeType string, err error)
	Open(ctx context.Context, storagePath string) (io.ReadCloser, error)
	Remove(ctx context.Context, storagePath string) error
}
