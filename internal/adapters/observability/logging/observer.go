package logging

import (
	"context"
	"log/slog"
	"time"
)

// Observer writes upload events to a slog logger.
// Caller faults are warnings, storage faults are errors.
type Observer struct {
	logger *slog.Logger
}

// NewObserver creates an Observer
func NewObserver(logger *slog.Logger) *Observer {
	return &Observer{logger: logger.With("component", "photo_ingest")}
}

func (o *Observer) ChecksumMissing(ctx context.Context, filename string) {
	o.logger.WarnContext(ctx, "upload rejected: missing checksum",
		"filename", filename,
	)
}

func (o *Observer) FilenameRejected(ctx context.Context, filename string) {
	o.logger.WarnContext(ctx, "upload rejected: invalid filename",
		"filename", filename,
	)
}

func (o *Observer) MediaTypeRejected(ctx context.Context, filename, mimeType string) {
	o.logger.WarnContext(ctx, "upload rejected: unsupported media type",
		"filename", filename,
		"mime_type", mimeType,
	)
}

func (o *Observer) IntegrityMismatch(ctx context.Context, filename, expected, actual string) {
	o.logger.WarnContext(ctx, "upload rejected: checksum mismatch",
		"filename", filename,
		"client_checksum", expected,
		"server_checksum", actual,
	)
}

func (o *Observer) Saved(ctx context.Context, path string, sizeBytes int, elapsed time.Duration) {
	o.logger.InfoContext(ctx, "photo saved",
		"path", path,
		"size_bytes", sizeBytes,
		"elapsed_ms", elapsed.Milliseconds(),
	)
}

func (o *Observer) SlowSave(ctx context.Context, path string, elapsed, threshold time.Duration) {
	o.logger.WarnContext(ctx, "slow photo save",
		"path", path,
		"elapsed_ms", elapsed.Milliseconds(),
		"threshold_ms", threshold.Milliseconds(),
	)
}

func (o *Observer) StorageFault(ctx context.Context, operation string, err error) {
	o.logger.ErrorContext(ctx, "photo storage fault",
		"operation", operation,
		"error", err,
	)
}

func (o *Observer) NotificationFailed(ctx context.Context, storedFilename string, err error) {
	o.logger.WarnContext(ctx, "failed to publish photo stored event",
		"stored_filename", storedFilename,
		"error", err,
	)
}
