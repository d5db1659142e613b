package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventType is a type that represents the type of an event
type EventType string

const (
	EventTypePhotoStored EventType = "photo.stored"
)

// PhotoStoredEvent is published once a photo is durably stored and catalogued
type PhotoStoredEvent struct {
	Type           EventType `json:"type"`
	PhotoID        uuid.UUID `json:"photo_id"`
	StoredFilename string    `json:"stored_filename"`
	DateShard      string    `json:"date_shard"`
	MimeType       string    `json:"mime_type"`
	SizeBytes      int64     `json:"size_bytes"`
	ChecksumSha256 string    `json:"checksum_sha256"`
	StoredAt       time.Time `json:"stored_at"`
}

// NewPhotoStoredEvent builds the event for photo
func NewPhotoStoredEvent(photo StoredPhoto) PhotoStoredEvent {
	return PhotoStoredEvent{
		Type:           EventTypePhotoStored,
		PhotoID:        photo.ID,
		StoredFilename: photo.StoredFilename,
		DateShard:      photo.DateShard,
		MimeType:       photo.MimeType,
		SizeBytes:      photo.SizeBytes,
		ChecksumSha256: photo.ChecksumSha256,
		StoredAt:       photo.StoredAt,
	}
}
