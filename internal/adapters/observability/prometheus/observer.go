package prometheus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const defaultNamespace = "photo_ingest"

const (
	outcomeSaved             = "saved"
	outcomeMissingChecksum   = "missing_checksum"
	outcomeInvalidFilename   = "invalid_filename"
	outcomeUnsupportedMedia  = "unsupported_media_type"
	outcomeIntegrityMismatch = "integrity_mismatch"
	outcomeStorageFault      = "storage_fault"
	operationLabel           = "operation"
	outcomeLabel             = "outcome"
)

// Observer exports upload metrics to Prometheus.
type Observer struct {
	uploads              *prometheus.CounterVec
	saveDuration         prometheus.Histogram
	storedBytes          prometheus.Counter
	slowSaves            prometheus.Counter
	storageFaults        *prometheus.CounterVec
	notificationFailures prometheus.Counter
}

// NewObserver registers the upload metrics on reg.
// Collectors already registered under the same name are reused.
func NewObserver(namespace string, reg prometheus.Registerer) (*Observer, error) {
	if namespace == "" {
		namespace = defaultNamespace
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	var err error
	o := &Observer{}
	if o.uploads, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Uploads handled by the ingestor, by outcome.",
	}, []string{outcomeLabel})); err != nil {
		return nil, err
	}
	if o.saveDuration, err = register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "save_duration_seconds",
		Help:      "Latency of the storage write of accepted uploads.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	})); err != nil {
		return nil, err
	}
	if o.storedBytes, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stored_bytes_total",
		Help:      "Cumulative payload size written to storage.",
	})); err != nil {
		return nil, err
	}
	if o.slowSaves, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "slow_saves_total",
		Help:      "Writes slower than the configured save latency threshold.",
	})); err != nil {
		return nil, err
	}
	if o.storageFaults, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "storage_faults_total",
		Help:      "Storage failures, by operation.",
	}, []string{operationLabel})); err != nil {
		return nil, err
	}
	if o.notificationFailures, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_failures_total",
		Help:      "Photo stored events that could not be published.",
	})); err != nil {
		return nil, err
	}
	return o, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, collector T) (T, error) {
	if err := reg.Register(collector); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		var zero T
		return zero, fmt.Errorf("register upload metric: %w", err)
	}
	return collector, nil
}

func (o *Observer) ChecksumMissing(context.Context, string) {
	o.uploads.WithLabelValues(outcomeMissingChecksum).Inc()
}

func (o *Observer) FilenameRejected(context.Context, string) {
	o.uploads.WithLabelValues(outcomeInvalidFilename).Inc()
}

func (o *Observer) MediaTypeRejected(context.Context, string, string) {
	o.uploads.WithLabelValues(outcomeUnsupportedMedia).Inc()
}

func (o *Observer) IntegrityMismatch(context.Context, string, string, string) {
	o.uploads.WithLabelValues(outcomeIntegrityMismatch).Inc()
}

func (o *Observer) Saved(_ context.Context, _ string, sizeBytes int, elapsed time.Duration) {
	o.uploads.WithLabelValues(outcomeSaved).Inc()
	o.saveDuration.Observe(elapsed.Seconds())
	o.storedBytes.Add(float64(sizeBytes))
}

func (o *Observer) SlowSave(context.Context, string, time.Duration, time.Duration) {
	o.slowSaves.Inc()
}

func (o *Observer) StorageFault(_ context.Context, operation string, _ error) {
	o.storageFaults.WithLabelValues(operation).Inc()
	// a failed compensation is not a second failed upload
	if operation != "remove" {
		o.uploads.WithLabelValues(outcomeStorageFault).Inc()
	}
}

func (o *Observer) NotificationFailed(context.Context, string, error) {
	o.notificationFailures.Inc()
}
