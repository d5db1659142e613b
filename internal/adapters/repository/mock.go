package repository

import (
	"context"
	"photo-ingest/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

type MockPhotoRepository struct {
	mock.Mock
}

func NewMockPhotoRepository() *MockPhotoRepository {
	return &MockPhotoRepository{}
}

func (m *MockPhotoRepository) Create(ctx context.Context, photo domain.StoredPhoto) error {
	args := m.Called(ctx, photo)
	return args.Error(0)
}

func (m *MockPhotoRepository) FindByStoredFilename(ctx context.Context, storedFilename string) (*domain.StoredPhoto, error) {
	args := m.Called(ctx, storedFilename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StoredPhoto), args.Error(1)
}
