// Package server wires configuration, storage, the auth core and the gRPC
// endpoint together and runs them until the process is signalled.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/musicvideos/internal/logging"
	"github.com/dmitrijs2005/musicvideos/internal/server/auth"
	"github.com/dmitrijs2005/musicvideos/internal/server/config"
	"github.com/dmitrijs2005/musicvideos/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/musicvideos/internal/server/services"

	gs "github.com/dmitrijs2005/musicvideos/internal/server/grpc"
)

type App struct {
	config       *config.Config
	logger       logging.Logger
	db           *sql.DB
	registry     *auth.Registry
	devSecret    bool
	userService  *services.UserService
	videoService *services.VideoService
}

// openDB is a seam for tests.
var openDB = repomanager.Open

// logOutput is where the server writes its JSON log.
var logOutput io.Writer = os.Stdout

// NewApp builds the application. The configuration, signing secret and
// hasher are checked before the database is touched, so a misconfigured
// server fails fast.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(logOutput, c.LogLevel)

	if err := c.Validate(); err != nil {
		return nil, err
	}

	secret, err := auth.LoadSecret(ctx, c.SecretKey, c.SecretMode(), logger)
	if err != nil {
		return nil, fmt.Errorf("secret: %w", err)
	}

	hasher, err := auth.NewHasher(c.HasherConfig())
	if err != nil {
		return nil, fmt.Errorf("hasher: %w", err)
	}

	issuer := auth.NewIssuer(secret, auth.WithValidity(c.TokenValidityDuration))
	registry := auth.NewRegistry()
	authService := auth.NewService(hasher, issuer, registry, logger)

	db, err := openDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &App{
		config:       c,
		logger:       logger,
		db:           db,
		registry:     registry,
		devSecret:    secret.IsDev(),
		userService:  services.NewUserService(db, rm, authService, logger),
		videoService: services.NewVideoService(db, rm, logger),
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
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.userService, app.videoService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes the database.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "addr", app.config.EndpointAddrGRPC, "dev_secret", app.devSecret)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.registry.RunPruner(ctx, app.config.RevocationPruneInterval, app.logger)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "error closing database", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
