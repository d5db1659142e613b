package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"photo-ingest/internal/core/domain"
	"photo-ingest/internal/core/port"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// uniqueViolation is the postgres error code of a unique constraint violation
const uniqueViolation = "23505"

// SQLQuerier is satisfied by *sql.DB and *sql.Tx
type SQLQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type sqlPhotoRepository struct {
	db SQLQuerier
}

// NewSqlPhotoRepository creates sqlPhotoRepository that implements port.PhotoRepository
func NewSqlPhotoRepository(db SQLQuerier) port.PhotoRepository {
	return &sqlPhotoRepository{
		db: db,
	}
}

// Create inserts the catalog entry of a stored photo
func (s *sqlPhotoRepository) Create(ctx context.Context, photo domain.StoredPhoto) error {
	query := `INSERT INTO photos (id, stored_filename, original_filename, date_shard, storage_path, mime_type, size_bytes, checksum_sha256, stored_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := s.db.ExecContext(ctx, query,
		photo.ID,
		photo.StoredFilename,
		photo.OriginalFilename,
		photo.DateShard,
		photo.StoragePath,
		photo.MimeType,
		photo.SizeBytes,
		photo.ChecksumSha256,
		photo.StoredAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("photo %s : %w", photo.StoredFilename, domain.ErrAlreadyExists)
		}
		return fmt.Errorf("error inserting photo: %w", err)
	}
	return nil
}

// FindByStoredFilename finds by stored filename
func (s *sqlPhotoRepository) FindByStoredFilename(ctx context.Context, storedFilename string) (*domain.StoredPhoto, error) {
	query := `SELECT id, stored_filename, original_filename, date_shard, storage_path,
                     mime_type, size_bytes, checksum_sha256, stored_at, created_at
              FROM photos
              WHERE stored_filename = $1`

	var dbPhoto dbStoredPhoto
	err := s.db.QueryRowContext(ctx, query, storedFilename).Scan(
		&dbPhoto.ID,
		&dbPhoto.StoredFilename,
		&dbPhoto.OriginalFilename,
		&dbPhoto.DateShard,
		&dbPhoto.StoragePath,
		&dbPhoto.MimeType,
		&dbPhoto.SizeBytes,
		&dbPhoto.ChecksumSha256,
		&dbPhoto.StoredAt,
		&dbPhoto.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPhotoNotFound
		}
		return nil, fmt.Errorf("error finding photo: %w", err)
	}

	return dbPhoto.ToDomain(), nil
}

// dbStoredPhoto represents a photo row in DB
type dbStoredPhoto struct {
	ID               uuid.UUID `db:"id"`
	StoredFilename   string    `db:"stored_filename"`
	OriginalFilename string    `db:"original_filename"`
	DateShard        string    `db:"date_shard"`
	StoragePath      string    `db:"storage_path"`
	MimeType         string    `db:"mime_type"`
	SizeBytes        int64     `db:"size_bytes"`
	ChecksumSha256   string    `db:"checksum_sha256"`
	StoredAt         time.Time `db:"stored_at"`
	CreatedAt        time.Time `db:"created_at"`
}

// ToDomain converts to domain.StoredPhoto
func (p *dbStoredPhoto) ToDomain() *domain.StoredPhoto {
	return &domain.StoredPhoto{
		ID:               p.ID,
		StoredFilename:   p.StoredFilename,
		OriginalFilename: p.OriginalFilename,
		DateShard:        p.DateShard,
		StoragePath:      p.StoragePath,
		MimeType:         p.MimeType,
		SizeBytes:        p.SizeBytes,
		ChecksumSha256:   p.ChecksumSha256,
		StoredAt:         p.StoredAt,
		CreatedAt:        p.CreatedAt,
	}
}
