// Package app wires configuration, storage, caches and controllers into a
// Runtime shared by the terminal UI, the CLI and the MCP server.
package app

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"scriptorium/internal/adapters/httpcontent"
	"scriptorium/internal/adapters/localstore"
	"scriptorium/internal/adapters/sqlite"
	"scriptorium/internal/application/content"
	"scriptorium/internal/application/navigation"
	"scriptorium/internal/application/progress"
	"scriptorium/internal/application/state"
	"scriptorium/internal/config"
	"scriptorium/internal/domain"
	"scriptorium/internal/events"
	"scriptorium/internal/ports"
)

// LogPrefix starts every log line
const LogPrefix = "scriptorium: "

// Runtime holds every long-lived component. It is built once per process.
type Runtime struct {
	Config  *config.Config
	Logger  *log.Logger
	Bus     *events.Bus
	Storage *localstore.Store
	Stores  *state.Stores
	Tier    *sqlite.CacheTier
	Cache   *content.Cache
	Library *content.Library
	Plans   *progress.PlanController
	Tracker *progress.TrackerController
}

// NewLogger creates the process logger writing to w
func NewLogger(w io.Writer) *log.Logger {
	return log.New(w, LogPrefix, log.LstdFlags)
}

// Open builds a Runtime from cfg. A cache database that cannot be opened
// is logged and the content cache runs without its persistent tier.
func Open(cfg *config.Config, logger *log.Logger) (*Runtime, error) {
	if logger == nil {
		logger = NewLogger(os.Stderr)
	}

	storage, err := localstore.Open(cfg.StateDir())
	if err != nil {
		return nil, err
	}

	rt := &Runtime{
		Config:  cfg,
		Logger:  logger,
		Bus:     events.NewBus(),
		Storage: storage,
	}
	rt.Stores = state.Open(storage, rt.Bus, rt.warn)

	var tier ports.CacheTier
	if cfg.PersistentCache {
		t, err := sqlite.Open(cfg.DataDir)
		if err != nil {
			logger.Printf("persistent cache disabled: %v", err)
		} else {
			rt.Tier = t
			tier = t
		}
	}

	fetcher := httpcontent.NewClient(cfg.ContentURL, cfg.HTTPTimeout)
	rt.Cache = content.NewCache(fetcher, tier,
		content.WithTTL(cfg.CacheTTL),
		content.WithCoalescing(cfg.Coalesce),
		content.WithLogger(logger),
	)
	rt.Library = content.NewLibrary(rt.Cache)
	rt.Plans = progress.NewPlanController(rt.Stores.PlanProgress)
	rt.Tracker = progress.NewTrackerController(rt.Stores.Tracker)
	return rt, nil
}

// Navigator creates a navigator for mode starting at loc
func (rt *Runtime) Navigator(mode domain.Mode, loc *navigation.Location) *navigation.Navigator {
	return navigation.NewNavigator(mode, loc, rt.Stores.Navigation(mode))
}

// Close releases the cache database
func (rt *Runtime) Close() error {
	if rt.Tier == nil {
		return nil
	}
	return rt.Tier.Close()
}

// warn reports a failed persistence write. The session carries on with
// the in-memory value.
func (rt *Runtime) warn(err error) {
	rt.Logger.Printf("warning: %v", err)
}

// OpenLogFile opens the log file of cfg for appending
func OpenLogFile(cfg *config.Config) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.Join(errors.New("open log file"), err)
	}
	return f, nil
}
