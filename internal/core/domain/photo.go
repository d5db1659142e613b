package domain

import (
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// DateShardLayout is the layout of the per-day storage directory
const DateShardLayout = "2006-01-02"

// UploadRequest is a single photo upload handed over by the transport layer
type UploadRequest struct {
	Filename   string
	Data       []byte
	ClientHash string
	MimeHint   string
}

// UploadResult is returned to the caller once a photo is stored.
// StoredFilename is the name only, the storage layout stays internal.
type UploadResult struct {
	Message        string
	StoredFilename string
}

// StoragePlacement describes where an upload is written
type StoragePlacement struct {
	BaseDirectory  string
	DateShard      string
	UniqueFilename string
	FullPath       string
}

// NewStoragePlacement derives a placement for filename under baseDirectory
func NewStoragePlacement(baseDirectory string, at time.Time, id uuid.UUID, filename string) StoragePlacement {
	shard := at.Format(DateShardLayout)
	unique := id.String() + "-" + filename
	return StoragePlacement{
		BaseDirectory:  baseDirectory,
		DateShard:      shard,
		UniqueFilename: unique,
		FullPath:       filepath.Join(baseDirectory, shard, unique),
	}
}

// Directory returns the shard directory
func (p StoragePlacement) Directory() string {
	return filepath.Join(p.BaseDirectory, p.DateShard)
}

// StoredPhoto is the catalog entry of a stored photo
type StoredPhoto struct {
	ID               uuid.UUID
	StoredFilename   string
	OriginalFilename string
	DateShard        string
	StoragePath      string
	MimeType         string
	SizeBytes        int64
	ChecksumSha256   string
	StoredAt         time.Time
	CreatedAt        time.Time
}
