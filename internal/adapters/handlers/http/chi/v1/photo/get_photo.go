package photo

import (
	"errors"
	"net/http"
	"photo-ingest/internal/core/domain"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// V1PhotoResponse is the catalog view of a stored photo
type V1PhotoResponse struct {
	ID               uuid.UUID `json:"id"`
	Filename         string    `json:"filename"`
	OriginalFilename string    `json:"original_filename"`
	MimeType         string    `json:"mime_type"`
	SizeBytes        int64     `json:"size_bytes"`
	ChecksumSha256   string    `json:"checksum_sha256"`
	StoredAt         time.Time `json:"stored_at"`
}

// GetPhotoV1 is the function that handles GetPhoto
func (h *HandlerV1) GetPhotoV1(w http.ResponseWriter, r *http.Request) {

	filename := chi.URLParam(r, "filename")
	if filename == "" {
		h.writeError(w, http.StatusBadRequest, "bad_request", "filename is required")
		return
	}

	stored, err := h.photoService.Describe(r.Context(), filename)
	switch {
	case errors.Is(err, domain.ErrPhotoNotFound):
		h.writeError(w, http.StatusNotFound, "not_found", domain.ErrPhotoNotFound.Error())
		return
	case err != nil:
		h.logger.Error("error getting photo", "error", err)
		h.writeError(w, http.StatusServiceUnavailable, "unavailable", "service unavailable")
		return
	default:
		h.writeJSON(w, http.StatusOK, V1PhotoResponse{
			ID:               stored.ID,
			Filename:         stored.StoredFilename,
			OriginalFilename: stored.OriginalFilename,
			MimeType:         stored.MimeType,
			SizeBytes:        stored.SizeBytes,
			ChecksumSha256:   stored.ChecksumSha256,
			StoredAt:         stored.StoredAt,
		})
		return
	}
}
