package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"photo-ingest/internal/adapters/eventbroker/nats"
	"photo-ingest/internal/adapters/handlers/http/chi"
	photohandler "photo-ingest/internal/adapters/handlers/http/chi/v1/photo"
	"photo-ingest/internal/adapters/observability"
	logobserver "photo-ingest/internal/adapters/observability/logging"
	promobserver "photo-ingest/internal/adapters/observability/prometheus"
	"photo-ingest/internal/adapters/repository/postgres"
	"photo-ingest/internal/adapters/storage/disk"
	"photo-ingest/internal/adapters/storage/minio"
	"photo-ingest/internal/config"
	"photo-ingest/internal/core/port"
	"photo-ingest/internal/core/service/photo"
	"photo-ingest/internal/logging"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := run(); err != nil {
		slog.Error("photo-ingest stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	// a missing .env is fine, the environment may come from elsewhere
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer func() {
		if err := closeLog(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
		}
	}()

	//storage
	storage, err := initStorage(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to init storage", "backend", cfg.Storage.Backend, "error", err)
		return err
	}
	logger.Info("storage ready", "backend", cfg.Storage.Backend)

	//catalog
	var catalog port.PhotoRepository
	if cfg.Database.Enabled() {
		db, err := initDB(cfg.Database)
		if err != nil {
			logger.Error("failed to init database", "error", err)
			return err
		}
		defer func(db *sql.DB) {
			if err := db.Close(); err != nil {
				logger.Error("failed to close database", "error", err)
			}
		}(db)
		logger.Info("db connection established")
		catalog = postgres.NewSqlPhotoRepository(db)
	} else {
		logger.Warn("DB_HOST not set, photo catalog disabled")
	}

	//events
	var publisher port.EventPublisher
	if cfg.NATS.Enabled() {
		natsPublisher, err := nats.NewNATSPublisher(ctx, cfg.NATS, logger)
		if err != nil {
			logger.Error("failed to init nats", "error", err)
			return err
		}
		defer func() {
			if err := natsPublisher.Close(); err != nil {
				logger.Error("failed to close nats", "error", err)
			}
		}()
		publisher = natsPublisher
	} else {
		logger.Warn("NATS_URL not set, photo events disabled")
	}

	//observability
	observers := []port.UploadObserver{logobserver.NewObserver(logger)}
	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics, err := promobserver.NewObserver("", registry)
		if err != nil {
			logger.Error("failed to init metrics", "error", err)
			return err
		}
		observers = append(observers, metrics)
		metricsHandler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	}

	photoService := photo.NewPhotoService(storage, catalog, publisher, observability.NewFanout(observers...), cfg.Upload)

	//http
	photoHandler := photohandler.NewPhotoHandlerV1(photoService, logger)

	router := chi.NewRouter(logger, photoHandler, metricsHandler, chi.RouterConfig{
		Env:            cfg.Env.Env,
		RequestTimeout: cfg.Server.RequestTimeout,
		MaxRequestSize: cfg.Server.MaxRequestSize,
		MetricsPath:    cfg.Metrics.Path,
	})
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port, "save_path", cfg.Upload.SavePath)
		servErr := server.ListenAndServe()
		if servErr != nil && !errors.Is(servErr, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", servErr)
			stop()
		}
	}()

	//wait for context cancel
	<-ctx.Done()
	logger.Info("gracefully shutting down app")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown server", "error", err)
	} else {
		logger.Info("server gracefully shutdown complete")
	}

	wg.Wait()
	logger.Info("app shutdown complete")
	return nil
}

func initStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (port.PhotoStorage, error) {
	switch cfg.Storage.Backend {
	case config.StorageBackendMinio:
		adapter, err := minio.NewAdapter(ctx, cfg.Minio, logger)
		if err != nil {
			return nil, err
		}
		return adapter, nil
	default:
		return disk.NewAdapter(logger), nil
	}
}

func initDB(cfg config.DatabaseConfig) (*sql.DB, error) {

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenCons)
	db.SetMaxIdleConns(cfg.MaxIdleCons)
	db.SetConnMaxLifetime(cfg.ConMaxLifeTime)

	return db, nil
}
