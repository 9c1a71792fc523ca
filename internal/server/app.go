// Package server wires the focuslock server: PostgreSQL storage, schema
// migrations, the token services and the gRPC endpoint.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/focuslock/internal/clock"
	"github.com/dmitrijs2005/focuslock/internal/logging"
	"github.com/dmitrijs2005/focuslock/internal/server/config"
	"github.com/dmitrijs2005/focuslock/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/focuslock/internal/server/services"
	"github.com/dmitrijs2005/focuslock/internal/tokens"

	gs "github.com/dmitrijs2005/focuslock/internal/server/grpc"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	services gs.Services
}

// NewApp checks the signing secret, connects to PostgreSQL and applies
// migrations. A missing token secret is fatal.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	codec, err := tokens.NewCodec(tokens.StaticSecret(c.TokenSecret))
	if err != nil {
		return nil, fmt.Errorf("token codec init error: %w", err)
	}

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.StartupTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db connect error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	clk := clock.Real()

	return &App{
		config: c,
		logger: logger,
		db:     db,
		services: gs.Services{
			Issuer:    services.NewTokenIssuer(db, rm, codec, clk),
			Verifier:  services.NewTokenVerifier(db, rm, codec, clk, logger),
			Devices:   services.NewDeviceService(db, rm, clk),
			Schedules: services.NewScheduleService(db, rm, clk),
		},
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.services, app.config.JWTSecret)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until a termination signal arrives or ctx is cancelled.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "closing database", "error", err)
	}
	app.logger.Info(ctx, "Stopped")
}
