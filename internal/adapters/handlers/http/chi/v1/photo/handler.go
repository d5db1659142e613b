package photo

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"photo-ingest/internal/core/port"

	"github.com/go-chi/chi/v5"
)

// HandlerV1 is the handler for v1 photos routes
type HandlerV1 struct {
	photoService port.PhotoService
	logger       *slog.Logger
}

// NewPhotoHandlerV1 creates HandlerV1
func NewPhotoHandlerV1(service port.PhotoService, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		photoService: service,
		logger:       logger,
	}
}

// Routes exposes handler routes
func (h *HandlerV1) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/upload", h.UploadPhotoV1)
	router.Get("/{filename}", h.GetPhotoV1)

	return router
}

// V1ErrorResponse is the body of every failed request
type V1ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (h *HandlerV1) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("error encoding response", "error", err)
	}
}

func (h *HandlerV1) writeError(w http.ResponseWriter, status int, kind, message string) {
	h.writeJSON(w, status, V1ErrorResponse{Error: kind, Message: message})
}
