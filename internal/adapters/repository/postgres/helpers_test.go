package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"photo-ingest/internal/config"
	"runtime"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// migrationsDir resolves db/migrations relative to this file
func migrationsDir(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("could not resolve helper location")
	}
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "db", "migrations")
}

// NewTestDB starts a migrated postgres catalog in a container.
// The container is terminated when the test ends. The returned func empties the photos table.
func NewTestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()
	ctx := context.Background()

	dbCfg := config.DatabaseConfig{
		User:     "photos",
		Password: "photos",
		Name:     "photos_test",
		SSLMode:  "disable",
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:13-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     dbCfg.User,
				"POSTGRES_PASSWORD": dbCfg.Password,
				"POSTGRES_DB":       dbCfg.Name,
			},
			WaitingFor: wait.ForAll(
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
				wait.ForListeningPort("5432/tcp"),
			).WithDeadline(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("could not start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	})

	if dbCfg.Host, err = container.Host(ctx); err != nil {
		t.Fatalf("could not get postgres host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("could not get postgres port: %v", err)
	}
	dbCfg.Port = port.Int()

	migrationsURL := "file://" + filepath.ToSlash(migrationsDir(t))
	databaseURL := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		dbCfg.User, dbCfg.Password, dbCfg.Host, dbCfg.Port, dbCfg.Name)

	m, err := migrate.New(migrationsURL, databaseURL)
	if err != nil {
		t.Fatalf("failed to init migrate from %s: %v", migrationsURL, err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		t.Fatalf("failed to apply migrations: %v", err)
	}
	if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
		t.Fatalf("failed to close migrate: %v %v", srcErr, dbErr)
	}

	db, err := sql.Open("postgres", dbCfg.DSN())
	if err != nil {
		t.Fatalf("failed to open catalog: %v", err)
	}
	// registered after Terminate, so it runs first
	t.Cleanup(func() { db.Close() })

	truncate := func() {
		if _, err := db.Exec(`TRUNCATE TABLE photos`); err != nil {
			t.Fatalf("failed to truncate photos: %v", err)
		}
	}
	return db, truncate
}
