// Package server initializes and runs the CryptVault server: it wires the
// PostgreSQL repositories, the object-storage adapter, and the HTTP surface,
// and handles graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/cryptvault-io/cryptvault/internal/logging"
	"github.com/cryptvault-io/cryptvault/internal/server/blob"
	"github.com/cryptvault-io/cryptvault/internal/server/config"
	"github.com/cryptvault-io/cryptvault/internal/server/httpapi"
	"github.com/cryptvault-io/cryptvault/internal/server/repositories/repomanager"
	"github.com/cryptvault-io/cryptvault/internal/server/services"
	"go.uber.org/zap"
)

// shutdownTimeout bounds how long in-flight requests are allowed to finish
// once a termination signal arrives.
const shutdownTimeout = 10 * time.Second

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	vaultService   *services.VaultService
	custodyService *services.CustodyService
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	zl, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}
	logger := logging.NewZapLogger(zl)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	blobs, err := blob.NewS3Store(ctx, cfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("blob store init error: %w", err)
	}

	vs := services.NewVaultService(db, rm, cfg)
	cs := services.NewCustodyService(db, rm, blobs, cfg)

	return &App{config: cfg, logger: logger, db: db, vaultService: vs, custodyService: cs}, nil
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

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	router := httpapi.NewRouter(
		&httpapi.AuthHandler{Service: app.vaultService},
		&httpapi.VaultHandler{Service: app.custodyService, MaxUploadBytes: app.config.MaxUploadBytes},
		app.vaultService,
		app.logger,
	)

	srv := &http.Server{Addr: app.config.EndpointAddr, Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "server shutdown error", "error", err)
		}
	}()

	app.logger.Info(ctx, "http server listening", "addr", app.config.EndpointAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
