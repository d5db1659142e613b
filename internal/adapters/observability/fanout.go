package observability

import (
	"context"
	"photo-ingest/internal/core/port"
	"time"
)

// Fanout forwards every event to each of its observers in order
type Fanout []port.UploadObserver

// NewFanout returns a Fanout, nil observers are skipped
func NewFanout(observers ...port.UploadObserver) Fanout {
	f := make(Fanout, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			f = append(f, o)
		}
	}
	return f
}

func (f Fanout) ChecksumMissing(ctx context.Context, filename string) {
	for _, o := range f {
		o.ChecksumMissing(ctx, filename)
	}
}

func (f Fanout) FilenameRejected(ctx context.Context, filename string) {
	for _, o := range f {
		o.FilenameRejected(ctx, filename)
	}
}

func (f Fanout) MediaTypeRejected(ctx context.Context, filename, mimeType string) {
	for _, o := range f {
		o.MediaTypeRejected(ctx, filename, mimeType)
	}
}

func (f Fanout) IntegrityMismatch(ctx context.Context, filename, expected, actual string) {
	for _, o := range f {
		o.IntegrityMismatch(ctx, filename, expected, actual)
	}
}

func (f Fanout) Saved(ctx context.Context, path string, sizeBytes int, elapsed time.Duration) {
	for _, o := range f {
		o.Saved(ctx, path, sizeBytes, elapsed)
	}
}

func (f Fanout) SlowSave(ctx context.Context, path string, elapsed, threshold time.Duration) {
	for _, o := range f {
		o.SlowSave(ctx, path, elapsed, threshold)
	}
}

func (f Fanout) StorageFault(ctx context.Context, operation string, err error) {
	for _, o := range f {
		o.StorageFault(ctx, operation, err)
	}
}

func (f Fanout) NotificationFailed(ctx context.Context, storedFilename string, err error) {
	for _, o := range f {
		o.NotificationFailed(ctx, storedFilename, err)
	}
}
