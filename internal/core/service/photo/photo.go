package photo

import (
	"context"
	"mime"
	"path/filepath"
	"photo-ingest/internal/config"
	"photo-ingest/internal/core/domain"
	"photo-ingest/internal/core/port"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SuccessMessage is returned with every stored photo
const SuccessMessage = "Photo saved successfully"

type photoService struct {
	storage   port.PhotoStorage
	catalog   port.PhotoRepository
	publisher port.EventPublisher
	observer  port.UploadObserver
	uploadCfg config.UploadConfig
	allowed   map[string]struct{}
	location  *time.Location
	now       func() time.Time
	newID     func() uuid.UUID
}

// Option customizes a photo service
type Option func(*photoService)

// WithClock replaces the wall clock used for date shards and write timing
func WithClock(now func() time.Time) Option {
	return func(p *photoService) {
		p.now = now
	}
}

// WithIDGenerator replaces the random identifier used in stored filenames
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(p *photoService) {
		p.newID = newID
	}
}

// NewPhotoService creates a new photo service.
// catalog and publisher are optional, nil disables the catalog record and the stored event.
func NewPhotoService(storage port.PhotoStorage, catalog port.PhotoRepository, publisher port.EventPublisher, observer port.UploadObserver, cfg config.UploadConfig, opts ...Option) port.PhotoService {
	if catalog == nil {
		catalog = nopCatalog{}
	}
	if publisher == nil {
		publisher = nopPublisher{}
	}

	allowed := make(map[string]struct{}, len(cfg.AllowedMimeTypes))
	for _, mimeType := range cfg.AllowedMimeTypes {
		allowed[strings.ToLower(strings.TrimSpace(mimeType))] = struct{}{}
	}

	location := cfg.Location
	if location == nil {
		location = time.Local
	}

	p := &photoService{
		storage:   storage,
		catalog:   catalog,
		publisher: publisher,
		observer:  observer,
		uploadCfg: cfg,
		allowed:   allowed,
		location:  location,
		now:       time.Now,
		newID:     uuid.New,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// extensionMimeTypes maps file extensions to mime types.
// This is deterministic and does NOT rely on OS mime databases (Docker-safe).
var extensionMimeTypes = map[string]string{
	// Images
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".jpe":   "image/jpeg",
	".jfif":  "image/jpeg",
	".pjpeg": "image/jpeg",
	".pjp":   "image/jpeg",
	".png":   "image/png",
	".apng":  "image/apng",
	".webp":  "image/webp",
	".gif":   "image/gif",
	".bmp":   "image/bmp",
	".tif":   "image/tiff",
	".tiff":  "image/tiff",
	".heic":  "image/heic",
	".heif":  "image/heif",
	".avif":  "image/avif",
	".jxl":   "image/jxl",
	".jp2":   "image/jp2",
	".svg":   "image/svg+xml",
	".ico":   "image/vnd.microsoft.icon",
	".psd":   "image/vnd.adobe.photoshop",
	".dng":   "image/x-adobe-dng",
	".cr2":   "image/x-canon-cr2",
	".nef":   "image/x-nikon-nef",
	".arw":   "image/x-sony-arw",

	// Videos
	".mp4":  "video/mp4",
	".m4v":  "video/x-m4v",
	".webm": "video/webm",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".mkv":  "video/x-matroska",
	".ogv":  "video/ogg",
	".3gp":  "video/3gpp",
	".3g2":  "video/3gpp2",
	".mpeg": "video/mpeg",
	".mpg":  "video/mpeg",
	".wmv":  "video/x-ms-wmv",
	".flv":  "video/x-flv",
	".ts":   "video/mp2t",

	// Audio
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".ogg":  "audio/ogg",
	".oga":  "audio/ogg",
	".opus": "audio/opus",
	".flac": "audio/flac",
	".aac":  "audio/aac",
	".m4a":  "audio/mp4",
	".wma":  "audio/x-ms-wma",
	".mid":  "audio/midi",
	".midi": "audio/midi",

	// Documents
	".pdf":  "application/pdf",
	".txt":  "text/plain",
	".md":   "text/markdown",
	".csv":  "text/csv",
	".tsv":  "text/tab-separated-values",
	".rtf":  "application/rtf",
	".html": "text/html",
	".htm":  "text/html",
	".css":  "text/css",
	".js":   "text/javascript",
	".mjs":  "text/javascript",
	".json": "application/json",
	".xml":  "application/xml",
	".yaml": "application/yaml",
	".yml":  "application/yaml",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".ppt":  "application/vnd.ms-powerpoint",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".odt":  "application/vnd.oasis.opendocument.text",
	".ods":  "application/vnd.oasis.opendocument.spreadsheet",
	".odp":  "application/vnd.oasis.opendocument.presentation",
	".epub": "application/epub+zip",

	// Archives and executables
	".zip":  "application/zip",
	".gz":   "application/gzip",
	".tgz":  "application/gzip",
	".bz2":  "application/x-bzip2",
	".xz":   "application/x-xz",
	".7z":   "application/x-7z-compressed",
	".rar":  "application/vnd.rar",
	".tar":  "application/x-tar",
	".iso":  "application/x-iso9660-image",
	".exe":  "application/vnd.microsoft.portable-executable",
	".dll":  "application/vnd.microsoft.portable-executable",
	".msi":  "application/x-msi",
	".apk":  "application/vnd.android.package-archive",
	".dmg":  "application/x-apple-diskimage",
	".deb":  "application/vnd.debian.binary-package",
	".sh":   "application/x-sh",
	".bin":  "application/octet-stream",
	".wasm": "application/wasm",

	// Fonts
	".ttf":   "font/ttf",
	".otf":   "font/otf",
	".woff":  "font/woff",
	".woff2": "font/woff2",
}

// resolveMimeType infers the type from the filename extension.
// The built-in table is consulted first, then the platform mime database.
// hint is only used when no source knows the extension.
func resolveMimeType(filename, hint string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != "" {
		if mimeType, ok := extensionMimeTypes[ext]; ok {
			return mimeType
		}
		if mimeType := extractMimeType(mime.TypeByExtension(ext)); mimeType != "" {
			return mimeType
		}
	}
	return extractMimeType(hint)
}

func extractMimeType(contentType string) string {
	mimeType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return mimeType
}

func (p *photoService) isAllowed(mimeType string) bool {
	_, ok := p.allowed[mimeType]
	return ok
}

// validateFilename rejects names that would not stay a single path element
func validateFilename(filename string) error {
	switch {
	case filename == "", filename == ".", filename == "..":
		return domain.ErrInvalidFilename
	case strings.ContainsAny(filename, "/\\\x00"):
		return domain.ErrInvalidFilename
	}
	return nil
}

type nopCatalog struct{}

func (nopCatalog) Create(context.Context, domain.StoredPhoto) error { return nil }

func (nopCatalog) FindByStoredFilename(context.Context, string) (*domain.StoredPhoto, error) {
	return nil, domain.ErrPhotoNotFound
}

type nopPublisher struct{}

func (nopPublisher) PublishPhotoStored(context.Context, domain.PhotoStoredEvent) error { return nil }

func (nopPublisher) Close() error { return nil }
