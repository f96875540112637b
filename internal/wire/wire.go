// Package wire provides dependency injection for the milestone application.
// It creates singleton services with lazy initialization.
package wire

import (
	"database/sql"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	cliadapter "github.com/example/milestone/internal/adapters/cli"
	"github.com/example/milestone/internal/adapters/sqlite"
	"github.com/example/milestone/internal/app"
	"github.com/example/milestone/internal/config"
	"github.com/example/milestone/internal/core/achievement"
	"github.com/example/milestone/internal/db"
	"github.com/example/milestone/internal/logging"
	"github.com/example/milestone/internal/ports/primary"
)

// Options override configuration before the first service is built.
type Options struct {
	DataDir string // directory holding config.yaml
	DBPath  string // overrides the configured database path
	UserID  string // overrides the configured user
}

var (
	opts Options

	cfg                *config.Config
	logger             *zap.Logger
	location           *time.Location
	database           *sql.DB
	registry           *achievement.Registry
	achievementService primary.AchievementService
	habitService       primary.HabitService
	logService         primary.LogService

	cfgOnce      sync.Once
	servicesOnce sync.Once
)

// Configure sets overrides. It has no effect once services are built.
func Configure(o Options) {
	opts = o
}

// Config returns the loaded configuration.
func Config() *config.Config {
	cfgOnce.Do(initConfig)
	return cfg
}

// Logger returns the application logger.
func Logger() *zap.Logger {
	cfgOnce.Do(initConfig)
	return logger
}

// Location returns the timezone calendar days are computed in.
func Location() *time.Location {
	cfgOnce.Do(initConfig)
	return location
}

// Database returns the shared database connection.
func Database() *sql.DB {
	servicesOnce.Do(initServices)
	return database
}

// Registry returns the achievement catalog.
func Registry() *achievement.Registry {
	servicesOnce.Do(initServices)
	return registry
}

// AchievementService returns the singleton AchievementService instance.
func AchievementService() primary.AchievementService {
	servicesOnce.Do(initServices)
	return achievementService
}

// HabitService returns the singleton HabitService instance.
func HabitService() primary.HabitService {
	servicesOnce.Do(initServices)
	return habitService
}

// LogService returns the singleton LogService instance.
func LogService() primary.LogService {
	servicesOnce.Do(initServices)
	return logService
}

func initConfig() {
	dir := opts.DataDir
	if dir == "" {
		dir = os.Getenv("MILESTONE_HOME")
	}
	if dir == "" {
		var err error
		dir, err = config.DefaultDataDir()
		if err != nil {
			log.Fatalf("failed to resolve data directory: %v", err)
		}
	}

	loaded, err := config.LoadConfig(dir)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if opts.DBPath != "" {
		loaded.DatabasePath = opts.DBPath
	}
	if opts.UserID != "" {
		loaded.UserID = opts.UserID
	}
	cfg = loaded

	location, err = cfg.Location()
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger, err = logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to initialize logging: %v", err)
	}
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	cfgOnce.Do(initConfig)

	db.SetPath(cfg.DBPath())
	var err error
	database, err = db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	registry, err = achievement.NewRegistry(achievement.DefaultCatalog())
	if err != nil {
		log.Fatalf("failed to load achievement catalog: %v", err)
	}
	if _, ok := registry.Get(cfg.StarterID); !ok {
		log.Fatalf("starter achievement %s is not in the catalog", cfg.StarterID)
	}
	for _, id := range registry.Unreachable() {
		logger.Warn("achievement can never unlock: prerequisite cycle", zap.String("achievement_id", id))
	}

	// Create repository adapters (secondary ports) - sqlite adapters with injected DB
	unlockRepo := sqlite.NewUnlockRepository(database)
	progressRepo := sqlite.NewProgressRepository(database)
	gridRepo := sqlite.NewGridRepository(database)
	habitRepo := sqlite.NewHabitRepository(database)
	logRepo := sqlite.NewAchievementLogRepository(database)
	logWriter := sqlite.NewLogWriterAdapter(logRepo)

	policy := app.DefaultRetryPolicy
	policy.MaxTries = uint(cfg.UnlockRetries)

	achievements := app.NewAchievementService(
		registry, cfg.StarterID,
		unlockRepo, progressRepo, gridRepo, habitRepo, logWriter, logger,
		app.WithLocation(location),
		app.WithRetryPolicy(policy),
	)
	achievementService = achievements
	habitService = app.NewHabitService(habitRepo, habitRepo, achievements, logWriter, logger, now)
	logService = app.NewLogService(logRepo)
}

func now() time.Time {
	return time.Now().In(Location())
}

// AchievementAdapter returns a new AchievementAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func AchievementAdapter() *cliadapter.AchievementAdapter {
	return AchievementAdapterWithOutput(os.Stdout)
}

// AchievementAdapterWithOutput returns a new AchievementAdapter writing to the given output.
func AchievementAdapterWithOutput(out io.Writer) *cliadapter.AchievementAdapter {
	return cliadapter.NewAchievementAdapter(AchievementService(), out, now)
}

// GridAdapter returns a new GridAdapter writing to stdout.
func GridAdapter() *cliadapter.GridAdapter {
	return cliadapter.NewGridAdapter(AchievementService(), os.Stdout)
}

// HabitAdapter returns a new HabitAdapter writing to stdout.
func HabitAdapter() *cliadapter.HabitAdapter {
	return cliadapter.NewHabitAdapter(HabitService(), AchievementService(), os.Stdout)
}

// Shutdown flushes the logger and closes the database.
func Shutdown() {
	if logger != nil {
		_ = logger.Sync()
	}
	_ = db.Close()
}
