package port

import (
	"context"
	"time"
)

// UploadObserver receives the outcome of every upload step worth reporting
type UploadObserver interface {
	ChecksumMissing(ctx context.Context, filename string)
	FilenameRejected(ctx context.Context, filename string)
	MediaTypeRejected(ctx context.Context, filename, mimeType string)
	IntegrityMismatch(ctx context.Context, filename, expected, actual string)
	Saved(ctx context.Context, path string, sizeBytes int, elapsed time.Duration)
	SlowSave(ctx context.Context, path string, elapsed, threshold time.Duration)
	StorageFault(ctx context.Context, operation string, err error)
	NotificationFailed(ctx context.Context, storedFilename string, err error)
}
