package photo

import (
	"context"
	"photo-ingest/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

// MockPhotoService is a mock implementation of PhotoService
type MockPhotoService struct {
	mock.Mock
}

// NewMockPhotoService creates a new MockPhotoService
func NewMockPhotoService() *MockPhotoService {
	return &MockPhotoService{}
}

func (m *MockPhotoService) Save(ctx context.Context, req domain.UploadRequest) (*domain.UploadResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UploadResult), args.Error(1)
}

func (m *MockPhotoService) Describe(ctx context.Context, storedFilename string) (*domain.StoredPhoto, error) {
	args := m.Called(ctx, storedFilename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StoredPhoto), args.Error(1)
}
