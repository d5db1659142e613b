package photo

import (
	"errors"
	"io"
	"net/http"
	"photo-ingest/internal/core/domain"
)

const (
	// FormFieldPhoto is the multipart field carrying the file
	FormFieldPhoto = "photo"
	// FormFieldHash is the multipart field carrying the client sha256 hex digest
	FormFieldHash = "hash"
	// HeaderChecksum is read when the hash field is absent
	HeaderChecksum = "X-Checksum-Sha256"

	multipartMemory = 10 << 20
)

// V1UploadPhotoResponse is the response to a stored photo
type V1UploadPhotoResponse struct {
	Message  string `json:"message"`
	Filename string `json:"filename"`
}

// UploadPhotoV1 handles a multipart photo upload
func (h *HandlerV1) UploadPhotoV1(w http.ResponseWriter, r *http.Request) {

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large")
			return
		}
		h.writeError(w, http.StatusBadRequest, "bad_request", "invalid multipart form")
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			h.logger.Warn("failed to remove multipart temp files", "error", err)
		}
	}()

	clientHash := r.FormValue(FormFieldHash)
	if clientHash == "" {
		clientHash = r.Header.Get(HeaderChecksum)
	}
	if clientHash == "" {
		h.writeError(w, http.StatusBadRequest, "missing_checksum", domain.ErrMissingChecksum.Error())
		return
	}

	file, header, err := r.FormFile(FormFieldPhoto)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "bad_request", "photo file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("error reading uploaded file", "error", err)
		h.writeError(w, http.StatusBadRequest, "bad_request", "failed to read photo")
		return
	}

	result, saveErr := h.photoService.Save(r.Context(), domain.UploadRequest{
		Filename:   header.Filename,
		Data:       data,
		ClientHash: clientHash,
		MimeHint:   header.Header.Get("Content-Type"),
	})
	switch {
	case errors.Is(saveErr, domain.ErrMissingChecksum):
		h.writeError(w, http.StatusBadRequest, "missing_checksum", domain.ErrMissingChecksum.Error())
		return
	case errors.Is(saveErr, domain.ErrInvalidFilename):
		h.writeError(w, http.StatusBadRequest, "invalid_filename", saveErr.Error())
		return
	case errors.Is(saveErr, domain.ErrIntegrityMismatch):
		h.writeError(w, http.StatusBadRequest, "integrity_mismatch", domain.ErrIntegrityMismatch.Error())
		return
	case errors.Is(saveErr, domain.ErrUnsupportedMediaType):
		h.writeError(w, http.StatusUnsupportedMediaType, "unsupported_media_type", saveErr.Error())
		return
	case errors.Is(saveErr, domain.ErrStorageFault):
		h.writeError(w, http.StatusServiceUnavailable, "storage_fault", "photo could not be stored")
		return
	case saveErr != nil:
		h.logger.Error("error saving photo", "error", saveErr)
		h.writeError(w, http.StatusInternalServerError, "internal", "internal server error")
		return
	default:
		h.writeJSON(w, http.StatusCreated, V1UploadPhotoResponse{
			Message:  result.Message,
			Filename: result.StoredFilename,
		})
		return
	}
}
