package photo

import (
	"context"
	"fmt"
	"photo-ingest/internal/core/domain"
)

// Describe returns the catalog entry of a stored photo
func (p *photoService) Describe(ctx context.Context, storedFilename string) (*domain.StoredPhoto, error) {
	if err := validateFilename(storedFilename); err != nil {
		return nil, domain.ErrPhotoNotFound
	}

	photo, err := p.catalog.FindByStoredFilename(ctx, storedFilename)
	if err != nil {
		return nil, fmt.Errorf("failed to find photo %q: %w", storedFilename, err)
	}
	return photo, nil
}
