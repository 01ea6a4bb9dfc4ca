// Package wire provides dependency injection for the tesseract application.
// It creates singleton services with lazy initialization.
package wire

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"sync"

	cliadapter "github.com/example/tesseract/internal/adapters/cli"
	"github.com/example/tesseract/internal/adapters/persistence"
	"github.com/example/tesseract/internal/adapters/rest"
	"github.com/example/tesseract/internal/adapters/sqlite"
	"github.com/example/tesseract/internal/app"
	"github.com/example/tesseract/internal/config"
	"github.com/example/tesseract/internal/db"
	"github.com/example/tesseract/internal/logging"
	"github.com/example/tesseract/internal/ports/primary"
)

var (
	cfg            *config.Config
	logger         *slog.Logger
	missionService primary.MissionService
	authService    primary.AuthService
	logService     primary.LogService
	once           sync.Once
	initErr        error
)

// Init loads configuration and builds every service. Only the first call
// does any work; later calls return the first result.
func Init(opts config.Options) error {
	once.Do(func() { initErr = initServices(opts) })
	return initErr
}

// mustInit initializes with default options when no command called Init.
func mustInit() {
	if err := Init(config.Options{}); err != nil {
		log.Fatalf("failed to initialize: %v", err)
	}
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices(opts config.Options) error {
	var err error
	cfg, err = config.Load(opts)
	if err != nil {
		return err
	}
	logger = logging.New(cfg.Log, os.Stderr)

	// Get database connection
	database, err := db.GetDB(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// Local storage adapters over the key-value table
	kv := sqlite.NewKeyValueRepository(database)
	archive := persistence.NewArchiveStore(kv)
	credentials := persistence.NewCredentialStore(kv)

	// Lifecycle log
	logRepo := sqlite.NewMissionLogRepository(database)
	logWriter := sqlite.NewLogWriterAdapter(logRepo)

	// Backend client reads the token on every request so a login in this
	// process is picked up immediately.
	client := rest.NewClient(cfg.API.URL, credentials, cfg.API.Timeout)

	executor := app.NewEffectExecutor(client, archive, logger)

	missions, err := app.NewMissionService(context.Background(), client, archive, logWriter, executor, logger)
	if err != nil {
		return err
	}

	// Create services (primary ports implementation)
	missionService = missions
	authService = app.NewAuthService(client, credentials, logger)
	logService = app.NewLogService(logRepo)

	logger.Debug("services initialized", "api", cfg.API.URL, "storage", cfg.Storage.Path)
	return nil
}

// Config returns the resolved configuration.
func Config() *config.Config {
	mustInit()
	return cfg
}

// Logger returns the application logger.
func Logger() *slog.Logger {
	mustInit()
	return logger
}

// MissionService returns the singleton MissionService instance.
func MissionService() primary.MissionService {
	mustInit()
	return missionService
}

// AuthService returns the singleton AuthService instance.
func AuthService() primary.AuthService {
	mustInit()
	return authService
}

// LogService returns the singleton LogService instance.
func LogService() primary.LogService {
	mustInit()
	return logService
}

// ExpiryWatcher returns a new watcher over the mission service. Callers
// own it and must Stop it.
func ExpiryWatcher(opts ...app.WatcherOption) *app.ExpiryWatcher {
	mustInit()
	return app.NewExpiryWatcher(missionService, logger, opts...)
}

// MissionAdapter returns a new MissionAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func MissionAdapter() *cliadapter.MissionAdapter {
	return MissionAdapterWithOutput(os.Stdout)
}

// MissionAdapterWithOutput returns a new MissionAdapter writing to the given output.
func MissionAdapterWithOutput(out io.Writer) *cliadapter.MissionAdapter {
	mustInit()
	return cliadapter.NewMissionAdapter(missionService, out)
}

// AuthAdapter returns a new AuthAdapter writing to stdout.
func AuthAdapter() *cliadapter.AuthAdapter {
	mustInit()
	return cliadapter.NewAuthAdapter(authService, os.Stdout)
}

// LogAdapter returns a new LogAdapter writing to stdout.
func LogAdapter() *cliadapter.LogAdapter {
	mustInit()
	return cliadapter.NewLogAdapter(logService, os.Stdout)
}

// Close releases the database connection.
func Close() error {
	return db.Close()
}
