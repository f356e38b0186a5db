package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"github.com/devspace-tui/devspace/internal/app"
	"github.com/devspace-tui/devspace/internal/config"
	"github.com/devspace-tui/devspace/internal/input"
	"github.com/devspace-tui/devspace/internal/server"
	"github.com/devspace-tui/devspace/internal/store"
)

// env is what every command needs: the merged configuration, a logger and
// the open store.
type env struct {
	cfg    *config.UserConfig
	logger *log.Logger
	store  store.Store
	close  func()
}

// setup loads the config, applies the global flags and opens the store.
// When logToFile is set, logs go to the configured log file so they do not
// draw over the TUI; otherwise they go to stderr.
func setup(logToFile bool) (*env, error) {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		log.Warn("failed to load config, using defaults", "err", err)
		userConfig = config.DefaultConfig()
	}

	config.ApplyOverrides(config.Overrides{
		ASCIIOnly:    asciiOnly,
		BorderStyle:  borderStyle,
		DockPosition: dockPosition,
		HideClock:    hideClock,
		HideStats:    hideStats,
		ThemeName:    themeName,
		StoragePath:  storagePath,
		InMemory:     inMemory,
		Debug:        debugMode,
	}, userConfig)

	var out io.Writer = os.Stderr
	var logFile *os.File
	if logToFile {
		logFile, err = openLogFile(userConfig.Log)
		if err != nil {
			return nil, err
		}
		out = logFile
	}
	logger := newLogger(out, userConfig.Log.Level)

	dbPath, err := userConfig.Storage.DatabasePath()
	if err != nil {
		return nil, err
	}
	st, err := store.Open(userConfig.Storage.Driver, dbPath)
	if err != nil {
		if logFile != nil {
			_ = logFile.Close()
		}
		return nil, fmt.Errorf("could not open storage: %w", err)
	}
	logger.Debug("storage opened", "driver", userConfig.Storage.Driver, "path", dbPath)

	return &env{
		cfg:    userConfig,
		logger: logger,
		store:  st,
		close: func() {
			if err := st.Close(); err != nil {
				logger.Warn("failed to close storage", "err", err)
			}
			if logFile != nil {
				_ = logFile.Close()
			}
		},
	}, nil
}

func newLogger(w io.Writer, level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	logger := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "devspace",
		ReportTimestamp: true,
	})
	log.SetDefault(logger)
	return logger
}

func openLogFile(cfg config.LogConfig) (*os.File, error) {
	path, err := cfg.LogPath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	// #nosec G304 - the log path comes from the user's own config
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// deskFactory builds desks sharing e's store and logger.
func (e *env) deskFactory() server.DeskFactory {
	return func(width, height int) (*app.Desk, error) {
		opts := app.OptionsFromConfig(e.cfg)
		opts.Store = e.store
		opts.Logger = e.logger
		opts.Width = width
		opts.Height = height
		return app.New(opts)
	}
}

// signalContext is cancelled on interrupt or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// quitter is the part of *tea.Program that quitOnDone needs.
type quitter interface {
	Quit()
}

// quitOnDone quits p once ctx is done.
func quitOnDone(ctx context.Context, p quitter) {
	<-ctx.Done()
	p.Quit()
}

func runLocal() error {
	e, err := setup(true)
	if err != nil {
		return err
	}
	defer e.close()

	app.SetInputHandler(input.HandleInput)

	desk, err := e.deskFactory()(0, 0)
	if err != nil {
		return fmt.Errorf("could not create desk: %w", err)
	}

	p := tea.NewProgram(
		desk,
		tea.WithFPS(config.NormalFPS),
		tea.WithoutSignalHandler(),
		tea.WithFilter(input.FilterMouseMotion),
	)

	ctx, cancel := signalContext()
	defer cancel()
	go quitOnDone(ctx, p)

	e.logger.Info("starting", "version", version)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

func runSSHServer(host, port, keyPath string) error {
	e, err := setup(false)
	if err != nil {
		return err
	}
	defer e.close()

	app.SetInputHandler(input.HandleInput)

	ctx, cancel := signalContext()
	defer cancel()

	cfg := &server.SSHServerConfig{
		Host:    host,
		Port:    port,
		KeyPath: keyPath,
		Logger:  e.logger,
		NewDesk: e.deskFactory(),
	}
	if err := server.StartSSHServer(ctx, cfg); err != nil {
		return fmt.Errorf("SSH server error: %w", err)
	}
	return nil
}

type webFlags struct {
	host, port      string
	readOnly        bool
	maxConnections  int
	tlsCert, tlsKey string
}

func runWebServer(f webFlags) error {
	e, err := setup(false)
	if err != nil {
		return err
	}
	defer e.close()

	app.SetInputHandler(input.HandleInput)

	ctx, cancel := signalContext()
	defer cancel()

	cfg := &server.WebServerConfig{
		Host:           f.host,
		Port:           f.port,
		ReadOnly:       f.readOnly,
		MaxConnections: f.maxConnections,
		TLSCert:        f.tlsCert,
		TLSKey:         f.tlsKey,
		Debug:          debugMode,
		Logger:         e.logger,
		NewDesk:        e.deskFactory(),
	}
	if err := server.StartWebServer(ctx, cfg); err != nil {
		return fmt.Errorf("web server error: %w", err)
	}
	return nil
}
