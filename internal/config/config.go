package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	StorageBackendDisk  = "disk"
	StorageBackendMinio = "minio"
)

type Config struct {
	Env      Env
	Server   ServerConfig
	Upload   UploadConfig
	Storage  StorageConfig
	Minio    MinioConfig
	Database DatabaseConfig
	NATS     NATSConfig
	Metrics  MetricsConfig
	Log      LogConfig
}

type Env struct {
	Env string `envconfig:"ENV" default:"DEV"`
}

type ServerConfig struct {
	Host           string        `envconfig:"SERVER_HOST" default:"localhost"`
	Port           string        `envconfig:"SERVER_PORT" default:"3000"`
	RequestTimeout time.Duration `envconfig:"SERVER_REQUEST_TIMEOUT" default:"60s"`
	MaxRequestSize int64         `envconfig:"SERVER_MAX_REQUEST_SIZE" default:"10485760"` // 10MB
}

// UploadConfig holds the admission policy and placement settings of the ingestor
type UploadConfig struct {
	SavePath         string        `envconfig:"PHOTO_SAVE_PATH" default:"./uploads"`
	AllowedMimeTypes []string      `envconfig:"UPLOAD_ALLOWED_MIME_TYPES" default:"image/jpeg"`
	MaxSaveLatency   time.Duration `envconfig:"UPLOAD_MAX_SAVE_LATENCY" default:"50ms"`
	ShardTimezone    string        `envconfig:"UPLOAD_SHARD_TIMEZONE" default:"Local"`

	// Location is resolved from ShardTimezone by Load
	Location *time.Location `ignored:"true"`
}

type StorageConfig struct {
	Backend string `envconfig:"STORAGE_BACKEND" default:"disk"`
}

type MinioConfig struct {
	Endpoint   string `envconfig:"MINIO_ENDPOINT"`
	BucketName string `envconfig:"MINIO_BUCKET_NAME" default:"photos"`
	AccessKey  string `envconfig:"MINIO_ACCESS_KEY"`
	SecretKey  string `envconfig:"MINIO_SECRET_KEY"`
	UseSSL     bool   `envconfig:"MINIO_USE_SSL" default:"false"`
}

type DatabaseConfig struct {
	Host           string        `envconfig:"DB_HOST"`
	Port           int           `envconfig:"DB_PORT" default:"5432"`
	User           string        `envconfig:"DB_USER"`
	Password       string        `envconfig:"DB_PASSWORD"`
	Name           string        `envconfig:"DB_NAME" default:"photos"`
	SSLMode        string        `envconfig:"DB_SSLMODE" default:"disable"`
	MaxOpenCons    int           `envconfig:"DB_MAX_OPEN_CONS" default:"25"`
	MaxIdleCons    int           `envconfig:"DB_MAX_IDLE_CONS" default:"5"`
	ConMaxLifeTime time.Duration `envconfig:"DB_CONMAX_LIFE_TIME" default:"5m"`
}

// Enabled reports whether a catalog database is configured
func (d DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

// DSN returns the lib/pq connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.Name,
		d.SSLMode,
	)
}

type NATSConfig struct {
	URL        string `envconfig:"NATS_URL"`
	ClientName string `envconfig:"NATS_CLIENT_NAME" default:"photo-ingest"`
	StreamName string `envconfig:"NATS_STREAM_NAME" default:"PHOTOS"`
	Subject    string `envconfig:"NATS_SUBJECT" default:"photos.stored"`
}

// Enabled reports whether stored events are published
func (n NATSConfig) Enabled() bool {
	return n.URL != ""
}

type MetricsConfig struct {
	Enabled bool   `envconfig:"METRICS_ENABLED" default:"true"`
	Path    string `envconfig:"METRICS_PATH" default:"/metrics"`
}

type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"text"`
	File   string `envconfig:"LOG_FILE"`
}

func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case StorageBackendDisk:
		if c.Upload.SavePath == "" {
			return errors.New("PHOTO_SAVE_PATH must not be empty")
		}
	case StorageBackendMinio:
		if c.Minio.Endpoint == "" || c.Minio.AccessKey == "" || c.Minio.SecretKey == "" || c.Minio.BucketName == "" {
			return errors.New("minio backend requires MINIO_ENDPOINT, MINIO_BUCKET_NAME, MINIO_ACCESS_KEY and MINIO_SECRET_KEY")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.Storage.Backend)
	}

	allowed := make([]string, 0, len(c.Upload.AllowedMimeTypes))
	for _, mimeType := range c.Upload.AllowedMimeTypes {
		if mimeType = strings.ToLower(strings.TrimSpace(mimeType)); mimeType != "" {
			allowed = append(allowed, mimeType)
		}
	}
	if len(allowed) == 0 {
		return errors.New("UPLOAD_ALLOWED_MIME_TYPES must list at least one type")
	}
	c.Upload.AllowedMimeTypes = allowed

	location, err := time.LoadLocation(c.Upload.ShardTimezone)
	if err != nil {
		return fmt.Errorf("invalid UPLOAD_SHARD_TIMEZONE: %w", err)
	}
	c.Upload.Location = location

	return nil
}
