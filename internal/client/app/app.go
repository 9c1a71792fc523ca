// Package app wires the focuslock agent: local SQLite storage, the server
// client, the enforcement agent, the reconciler and the services, and runs
// the periodic heartbeat and reconciliation loop.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/focuslock/internal/client/agent"
	"github.com/dmitrijs2005/focuslock/internal/client/cli"
	"github.com/dmitrijs2005/focuslock/internal/client/client"
	"github.com/dmitrijs2005/focuslock/internal/client/config"
	"github.com/dmitrijs2005/focuslock/internal/client/reconciler"
	"github.com/dmitrijs2005/focuslock/internal/client/repositories/adhoc"
	"github.com/dmitrijs2005/focuslock/internal/client/repositories/presets"
	"github.com/dmitrijs2005/focuslock/internal/client/repositories/schedules"
	"github.com/dmitrijs2005/focuslock/internal/client/repositories/settings"
	"github.com/dmitrijs2005/focuslock/internal/client/services"
	"github.com/dmitrijs2005/focuslock/internal/clock"
	"github.com/dmitrijs2005/focuslock/internal/logging"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	client client.Client
	clock  clock.Clock

	Agent      agent.Agent
	Reconciler *reconciler.Reconciler
	Devices    services.DeviceService
	Scan       services.ScanService
	Presets    services.PresetService
	Guardian   services.GuardianService
}

// NewApp opens the local database and prepares the server client. No
// network traffic happens until Run.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DatabaseFile)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	apiClient, err := client.NewGRPCClient(c.ServerEndpointAddr, c.AccessToken)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("client init error: %w", err)
	}

	return newApp(c, logger, db, apiClient, clock.Real()), nil
}

func newApp(c *config.Config, logger logging.Logger, db *sql.DB, apiClient client.Client, clk clock.Clock) *App {
	a := agent.NewLogAgent(clk, logger)
	presetRepo := presets.NewSQLiteRepository(db)
	adhocRepo := adhoc.NewSQLiteRepository(db)

	rec := reconciler.New(reconciler.Sources{
		Authoritative: apiClient,
		Presets:       presetRepo,
		Adhoc:         adhocRepo,
		Cache:         schedules.NewSQLiteCache(db),
		Settings:      settings.NewKVStore(settings.NewSQLiteRepository(db)),
	}, a, reconciler.NewGuard(), clk, logger, reconciler.Options{
		DeviceKey:    c.HardwareID,
		UserID:       c.UserID,
		FetchTimeout: c.FetchTimeout,
		Merge:        reconciler.MergePolicy{MatchNames: c.MatchNames},
	})

	devices := services.NewDeviceService(apiClient, db)

	return &App{
		config:     c,
		logger:     logger,
		db:         db,
		client:     apiClient,
		clock:      clk,
		Agent:      a,
		Reconciler: rec,
		Devices:    devices,
		Scan:       services.NewScanService(apiClient, devices, adhocRepo, rec, a, logger),
		Presets:    services.NewPresetService(presetRepo, rec, a),
		Guardian:   services.NewGuardianService(apiClient, rec),
	}
}

// Console returns an interactive console over the app's services.
func (app *App) Console() *cli.Console {
	return cli.NewConsole(app.Agent, app.Reconciler, app.Devices, app.Scan, app.Presets)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// register makes sure the device is known to the server. A previously
// stored id is reused when the server cannot be reached.
func (app *App) register(ctx context.Context) error {
	_, err := app.Devices.Register(ctx, app.config.HardwareID, app.config.Platform)
	if err == nil {
		return nil
	}
	if _, idErr := app.Devices.DeviceID(ctx); idErr == nil && errors.Is(err, client.ErrUnavailable) {
		app.logger.Warn(ctx, "server unavailable, using stored device id")
		return nil
	}
	return err
}

// tick sends a heartbeat and runs one reconciliation pass. Neither failure
// stops the loop.
func (app *App) tick(ctx context.Context) {
	granted, err := app.Devices.Heartbeat(ctx, app.config.UsageAccessGranted, app.config.ScreenTimeGranted)
	switch {
	case err != nil:
		app.logger.Warn(ctx, "heartbeat failed", "error", err)
	case !granted:
		app.logger.Warn(ctx, "platform permission missing, tokens will be refused", "platform", app.config.Platform)
	}

	if _, err := app.Reconciler.Run(ctx); err != nil {
		app.logger.Warn(ctx, "reconcile skipped", "error", err)
	}
}

func (app *App) loop(ctx context.Context) {
	ticker := time.NewTicker(app.config.ReconcileInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := app.Devices.DeviceID(ctx); errors.Is(err, services.ErrNotRegistered) {
				if err := app.register(ctx); err != nil {
					app.logger.Warn(ctx, "device registration failed", "error", err)
					continue
				}
			}
			app.tick(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Run replays cached enforcement, registers the device and then heartbeats
// and reconciles every ReconcileInterval until a termination signal arrives
// or ctx is cancelled. extra runs alongside the loop (for example an
// interactive console); the app stops when any of them returns.
func (app *App) Run(ctx context.Context, extra ...func(ctx context.Context)) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting agent...")

	app.initSignalHandler(cancelFunc)

	if err := app.Reconciler.Replay(ctx); err != nil {
		app.logger.Error(ctx, "replaying cached schedules failed", "error", err)
	}

	if err := app.register(ctx); err != nil {
		app.logger.Warn(ctx, "device registration failed, will retry", "error", err)
	} else {
		app.tick(ctx)
	}

	// Extras are not awaited; a console may stay blocked on stdin after
	// shutdown.
	for _, fn := range extra {
		fn := fn
		go func() {
			fn(ctx)
			cancelFunc()
		}()
	}

	app.loop(ctx)

	if err := app.client.Close(); err != nil {
		app.logger.Error(ctx, "closing client", "error", err)
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "closing database", "error", err)
	}
	app.logger.Info(ctx, "Stopped")
}
