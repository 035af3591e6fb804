package cmd

import (
	"fmt"

	"github.com/Iron-Ham/reactor/internal/config"
	"github.com/Iron-Ham/reactor/internal/demo"
	"github.com/Iron-Ham/reactor/internal/host"
	"github.com/Iron-Ham/reactor/internal/logging"
	"github.com/Iron-Ham/reactor/internal/storage"
	"github.com/Iron-Ham/reactor/internal/tui/styles"
)

// environment is what a command needs to run the reader.
type environment struct {
	cfg    *config.Config
	logger *logging.Logger
	store  storage.Store
	theme  *styles.Theme
}

// setup loads the configuration and opens the logger, the store and the
// theme. The caller must close the environment.
func setup() (*environment, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return setupWith(cfg)
}

func setupWith(cfg *config.Config) (*environment, error) {
	logger := logging.NopLogger()
	if cfg.Logging.Enabled {
		l, err := logging.NewLogger(cfg.Logging.ResolveDir(), cfg.Logging.Level)
		if err != nil {
			return nil, err
		}
		logger = l
	}

	theme, err := styles.LoadTheme(cfg.TUI.ThemeFile)
	if err != nil {
		_ = logger.Close()
		return nil, fmt.Errorf("failed to load theme: %w", err)
	}

	store, err := storage.Open(cfg.Storage, logger)
	if err != nil {
		_ = logger.Close()
		return nil, err
	}

	return &environment{cfg: cfg, logger: logger, store: store, theme: theme}, nil
}

func (e *environment) close() {
	if err := e.store.Close(); err != nil {
		e.logger.Warn("failed to close store", "error", err)
	}
	_ = e.logger.Close()
}

// reader creates the news reader for this environment.
func (e *environment) reader(events host.EventTarget, quit func()) *demo.Reader {
	return demo.New(demo.Options{
		Store:         e.store,
		StoriesFile:   e.cfg.Demo.StoriesFile,
		ClockInterval: e.cfg.Demo.ClockInterval(),
		FeedCommand:   e.cfg.Demo.FeedCommand,
		Events:        events,
		Quit:          quit,
		Logger:        e.logger,
	})
}
