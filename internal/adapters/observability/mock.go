package observability

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockObserver is a mock implementation of UploadObserver
type MockObserver struct {
	mock.Mock
}

// NewMockObserver creates a new MockObserver
func NewMockObserver() *MockObserver {
	return &MockObserver{}
}

func (m *MockObserver) ChecksumMissing(ctx context.Context, filename string) {
	m.Called(ctx, filename)
}

func (m *MockObserver) FilenameRejected(ctx context.Context, filename string) {
	m.Called(ctx, filename)
}

func (m *MockObserver) MediaTypeRejected(ctx context.Context, filename, mimeType string) {
	m.Called(ctx, filename, mimeType)
}

func (m *MockObserver) IntegrityMismatch(ctx context.Context, filename, expected, actual string) {
	m.Called(ctx, filename, expected, actual)
}

func (m *MockObserver) Saved(ctx context.Context, path string, sizeBytes int, elapsed time.Duration) {
	m.Called(ctx, path, sizeBytes, elapsed)
}

func (m *MockObserver) SlowSave(ctx context.Context, path string, elapsed, threshold time.Duration) {
	m.Called(ctx, path, elapsed, threshold)
}

func (m *MockObserver) StorageFault(ctx context.Context, operation string, err error) {
	m.Called(ctx, operation, err)
}

func (m *MockObserver) NotificationFailed(ctx context.Context, storedFilename string, err error) {
	m.Called(ctx, storedFilename, err)
}
