package prometheus_test

import (
	"context"
	"errors"
	"photo-ingest/internal/adapters/observability/prometheus"
	"strings"
	"testing"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserver_RecordsOutcomes(t *testing.T) {
	// Arrange
	ctx := context.Background()
	reg := promclient.NewRegistry()
	observer, err := prometheus.NewObserver("test_ingest", reg)
	require.NoError(t, err)

	// Act
	observer.Saved(ctx, "/p/a.jpg", 100, 10*time.Millisecond)
	observer.Saved(ctx, "/p/b.jpg", 50, 70*time.Millisecond)
	observer.SlowSave(ctx, "/p/b.jpg", 70*time.Millisecond, 50*time.Millisecond)
	observer.ChecksumMissing(ctx, "a.jpg")
	observer.FilenameRejected(ctx, "../a.jpg")
	observer.FilenameRejected(ctx, "")
	observer.MediaTypeRejected(ctx, "doc.pdf", "application/pdf")
	observer.IntegrityMismatch(ctx, "c.jpg", "x", "y")
	observer.StorageFault(ctx, "write_file", errors.New("disk full"))
	observer.StorageFault(ctx, "remove", errors.New("gone"))
	observer.NotificationFailed(ctx, "a.jpg", errors.New("nats down"))

	// Assert
	expected := `
# HELP test_ingest_uploads_total Uploads handled by the ingestor, by outcome.
# TYPE test_ingest_uploads_total counter
test_ingest_uploads_total{outcome="integrity_mismatch"} 1
test_ingest_uploads_total{outcome="invalid_filename"} 2
test_ingest_uploads_total{outcome="missing_checksum"} 1
test_ingest_uploads_total{outcome="saved"} 2
test_ingest_uploads_total{outcome="storage_fault"} 1
test_ingest_uploads_total{outcome="unsupported_media_type"} 1
# HELP test_ingest_stored_bytes_total Cumulative payload size written to storage.
# TYPE test_ingest_stored_bytes_total counter
test_ingest_stored_bytes_total 150
# HELP test_ingest_slow_saves_total Writes slower than the configured save latency threshold.
# TYPE test_ingest_slow_saves_total counter
test_ingest_slow_saves_total 1
# HELP test_ingest_storage_faults_total Storage failures, by operation.
# TYPE test_ingest_storage_faults_total counter
test_ingest_storage_faults_total{operation="remove"} 1
test_ingest_storage_faults_total{operation="write_file"} 1
# HELP test_ingest_notification_failures_total Photo stored events that could not be published.
# TYPE test_ingest_notification_failures_total counter
test_ingest_notification_failures_total 1
`
	err = testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"test_ingest_uploads_total",
		"test_ingest_stored_bytes_total",
		"test_ingest_slow_saves_total",
		"test_ingest_storage_faults_total",
		"test_ingest_notification_failures_total",
	)
	assert.NoError(t, err)

	count, err := testutil.GatherAndCount(reg, "test_ingest_save_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNewObserver_ReusesRegisteredCollectors(t *testing.T) {
	// Arrange
	ctx := context.Background()
	reg := promclient.NewRegistry()
	first, err := prometheus.NewObserver("", reg)
	require.NoError(t, err)

	// Act
	second, err := prometheus.NewObserver("", reg)
	require.NoError(t, err)
	first.SlowSave(ctx, "/p/a.jpg", time.Second, time.Millisecond)
	second.SlowSave(ctx, "/p/b.jpg", time.Second, time.Millisecond)

	// Assert
	expected := `
# HELP photo_ingest_slow_saves_total Writes slower than the configured save latency threshold.
# TYPE photo_ingest_slow_saves_total counter
photo_ingest_slow_saves_total 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "photo_ingest_slow_saves_total"))
}
