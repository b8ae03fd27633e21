package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/routinerocket/recstore"
	"github.com/routinerocket/recstore/cmd/recstore/config"
	"github.com/routinerocket/recstore/cmd/recstore/logging"
	"github.com/routinerocket/recstore/models"
	"github.com/routinerocket/recstore/wellness"
)

// app is the loaded store shared by one command invocation.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	store   *recstore.Store
	tables  *models.Tables
	service *wellness.Service
	closers []func()
}

// withApp loads the store, runs fn and releases everything fn used.
func withApp(ctx context.Context, opts *RootOptions, stderr io.Writer, fn func(*app) error) error {
	a, err := openApp(ctx, opts, stderr)
	if err != nil {
		return err
	}
	defer a.close()
	return fn(a)
}

func openApp(ctx context.Context, opts *RootOptions, stderr io.Writer) (*app, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "load config", err)
	}
	if opts.DataPath != "" {
		cfg.Data.Path = opts.DataPath
	}
	if opts.Backend != "" {
		cfg.Data.Backend = opts.Backend
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid config", err)
	}

	level, _ := config.ParseLevel(cfg.Log.Level)
	logger, closeLog := logging.New(stderr, level, cfg.Log.SeqURL)
	a := &app{cfg: cfg, logger: logger, closers: []func(){closeLog}}

	persister, err := a.openPersister()
	if err != nil {
		a.close()
		return nil, err
	}

	a.store = recstore.New(persister,
		recstore.WithLogger(logger),
		recstore.WithDefaultTracer(),
		recstore.WithDefaultMeter(),
		recstore.WithOperationLogging(opts.Verbose),
	)
	if a.tables, err = models.Register(a.store); err != nil {
		a.close()
		return nil, err
	}
	if err := a.store.Load(ctx); err != nil {
		a.close()
		return nil, err
	}

	a.service = wellness.New(a.tables,
		wellness.WithLogger(logger),
		wellness.WithOTPTTL(cfg.OTP.TTL),
		wellness.WithHistoryLimit(cfg.History.Limit),
	)
	return a, nil
}

func (a *app) openPersister() (recstore.Persister, error) {
	if a.cfg.Data.Backend == config.BackendSQLite {
		p, err := openSQLite(a.cfg.Data.SQLitePath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = p.Close() })
		return p, nil
	}
	return recstore.NewJSONFile(a.cfg.Data.Path), nil
}

// close releases resources in reverse order of acquisition.
func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func openSQLite(path string) (*recstore.SQLiteSnapshot, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, WrapExitError(ExitCommandError, "create data directory", err)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("open %s", path), err)
	}
	return recstore.NewSQLiteSnapshot(db), nil
}
