package photo_test

import (
	"crypto/sha256"
	"encoding/hex"
	"photo-ingest/internal/adapters/eventbroker"
	"photo-ingest/internal/adapters/observability"
	"photo-ingest/internal/adapters/repository"
	"photo-ingest/internal/adapters/storage"
	"photo-ingest/internal/config"
	"photo-ingest/internal/core/port"
	"photo-ingest/internal/core/service/photo"
	"testing"
	"time"

	"github.com/google/uuid"
)

var defaultCfg = config.UploadConfig{
	SavePath:         "/data/photos",
	AllowedMimeTypes: []string{"image/jpeg"},
	MaxSaveLatency:   50 * time.Millisecond,
	Location:         time.UTC,
}

var (
	fixedNow = time.Date(2024, 5, 1, 23, 30, 0, 0, time.UTC)
	fixedID  = uuid.MustParse("3f1c2a9e-8b4d-4c1e-9a7f-2d6e5b0c1a23")
)

type mocks struct {
	storage   *storage.MockStorage
	catalog   *repository.MockPhotoRepository
	publisher *eventbroker.MockPublisher
	observer  *observability.MockObserver
}

func (m mocks) assertExpectations(t *testing.T) {
	t.Helper()
	m.storage.AssertExpectations(t)
	m.catalog.AssertExpectations(t)
	m.publisher.AssertExpectations(t)
	m.observer.AssertExpectations(t)
}

func newMocks() mocks {
	return mocks{
		storage:   storage.NewMockStorage(),
		catalog:   repository.NewMockPhotoRepository(),
		publisher: eventbroker.NewMockPublisher(),
		observer:  observability.NewMockObserver(),
	}
}

func newService(m mocks, cfg config.UploadConfig, opts ...photo.Option) port.PhotoService {
	opts = append([]photo.Option{
		photo.WithClock(func() time.Time { return fixedNow }),
		photo.WithIDGenerator(func() uuid.UUID { return fixedID }),
	}, opts...)
	return photo.NewPhotoService(m.storage, m.catalog, m.publisher, m.observer, cfg, opts...)
}

// steppingClock returns each time in turn and then keeps returning the last one
func steppingClock(times ...time.Time) func() time.Time {
	i := 0
	return func() time.Time {
		t := times[i]
		if i < len(times)-1 {
			i++
		}
		return t
	}
}

func sha256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func newServiceWithoutCatalog(m mocks) port.PhotoService {
	return photo.NewPhotoService(m.storage, nil, nil, m.observer, defaultCfg)
}
