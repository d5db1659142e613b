package port

import (
	"context"
	"photo-ingest/internal/core/domain"
)

// PhotoStorage is an interface to define photo storage interactions
type PhotoStorage interface {
	// EnsureDirectory creates path and its parents if missing, it never fails because path exists
	EnsureDirectory(ctx context.Context, path string) error
	// WriteFile writes data at path in one step, a reader never sees a partial file
	WriteFile(ctx context.Context, path string, data []byte) error
	Remove(ctx context.Context, path string) error
}

// PhotoRepository is an interface to define photo catalog interactions
type PhotoRepository interface {
	Create(ctx context.Context, photo domain.StoredPhoto) error
	FindByStoredFilename(ctx context.Context, storedFilename string) (*domain.StoredPhoto, error)
}

// PhotoService is an interface to define photo service
type PhotoService interface {
	Save(ctx context.Context, req domain.UploadRequest) (*domain.UploadResult, error)
	Describe(ctx context.Context, storedFilename string) (*domain.StoredPhoto, error)
}
