package photo

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"photo-ingest/internal/core/domain"
)

// Save admits, verifies and stores one photo
func (p *photoService) Save(ctx context.Context, req domain.UploadRequest) (*domain.UploadResult, error) {
	if req.ClientHash == "" {
		p.observer.ChecksumMissing(ctx, req.Filename)
		return nil, domain.ErrMissingChecksum
	}

	if err := validateFilename(req.Filename); err != nil {
		p.observer.FilenameRejected(ctx, req.Filename)
		return nil, fmt.Errorf("%w: %q", err, req.Filename)
	}

	// 1. MIME must be explicitly allowed, checked before paying for the hash
	mimeType := resolveMimeType(req.Filename, req.MimeHint)
	if !p.isAllowed(mimeType) {
		p.observer.MediaTypeRejected(ctx, req.Filename, mimeType)
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedMediaType, mimeType)
	}

	// 2. Exact match against the lowercase hex digest
	sum := sha256.Sum256(req.Data)
	checksum := hex.EncodeToString(sum[:])
	if checksum != req.ClientHash {
		p.observer.IntegrityMismatch(ctx, req.Filename, req.ClientHash, checksum)
		return nil, domain.ErrIntegrityMismatch
	}

	// 3. Placement
	storedAt := p.now().In(p.location)
	id := p.newID()
	placement := domain.NewStoragePlacement(p.uploadCfg.SavePath, storedAt, id, req.Filename)

	if err := p.storage.EnsureDirectory(ctx, placement.Directory()); err != nil {
		p.observer.StorageFault(ctx, "ensure_directory", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageFault, err)
	}

	// 4. Write, timed for the slow save signal only
	start := p.now()
	if err := p.storage.WriteFile(ctx, placement.FullPath, req.Data); err != nil {
		p.observer.StorageFault(ctx, "write_file", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageFault, err)
	}
	elapsed := p.now().Sub(start)
	if elapsed > p.uploadCfg.MaxSaveLatency {
		p.observer.SlowSave(ctx, placement.FullPath, elapsed, p.uploadCfg.MaxSaveLatency)
	}

	photo := domain.StoredPhoto{
		ID:               id,
		StoredFilename:   placement.UniqueFilename,
		OriginalFilename: req.Filename,
		DateShard:        placement.DateShard,
		StoragePath:      placement.FullPath,
		MimeType:         mimeType,
		SizeBytes:        int64(len(req.Data)),
		ChecksumSha256:   checksum,
		StoredAt:         storedAt,
	}
	if err := p.catalog.Create(ctx, photo); err != nil {
		p.observer.StorageFault(ctx, "catalog_create", err)
		if removeErr := p.storage.Remove(ctx, placement.FullPath); removeErr != nil {
			p.observer.StorageFault(ctx, "remove", removeErr)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageFault, err)
	}

	p.observer.Saved(ctx, placement.FullPath, len(req.Data), elapsed)

	if err := p.publisher.PublishPhotoStored(ctx, domain.NewPhotoStoredEvent(photo)); err != nil {
		p.observer.NotificationFailed(ctx, placement.UniqueFilename, err)
	}

	return &domain.UploadResult{
		Message:        SuccessMessage,
		StoredFilename: placement.UniqueFilename,
	}, nil
}
