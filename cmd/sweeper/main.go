package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/yoshitoke/nft141d/internal/adapter"
	"github.com/yoshitoke/nft141d/internal/assetregistry"
	"github.com/yoshitoke/nft141d/internal/config"
	"github.com/yoshitoke/nft141d/internal/domain"
	"github.com/yoshitoke/nft141d/internal/ledger"
	"github.com/yoshitoke/nft141d/internal/logger"
	"github.com/yoshitoke/nft141d/internal/registry"
	"github.com/yoshitoke/nft141d/internal/store"
	"github.com/yoshitoke/nft141d/internal/sweeper"
	"github.com/yoshitoke/nft141d/internal/vault"
	"github.com/yoshitoke/nft141d/internal/xcall"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadSweeperConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "sweeper",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Info Refresh Sweeper")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize clock adapter
	clock := adapter.NewClock()

	// The sweeper hosts its own bus so vault info calls resolve in-process
	// against the shared database
	bus := xcall.NewBus(clock)
	defer bus.Close()

	// Asset-registry custody transfers go over NATS when configured
	var transferDispatcher xcall.Dispatcher = bus
	if cfg.Xcall.UseNATS {
		dialer := adapter.NewNatsDialer()
		conn, err := dialer.Connect(cfg.NATS.URL,
			nats.Name(cfg.NATS.ConnectionName),
			nats.MaxReconnects(cfg.NATS.MaxReconnects),
			nats.ReconnectWait(cfg.NATS.ReconnectWait),
		)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err), zap.String("url", cfg.NATS.URL))
		}
		defer conn.Close()
		logger.InfoCtx(ctx, "Connected to NATS", zap.String("url", conn.ConnectedUrl()))

		transferDispatcher = xcall.NewNatsDispatcher(conn, cfg.NATS.SubjectPrefix, cfg.Xcall.Budget)
	}

	// Wire the domain components
	shareLedger := ledger.New(dataStore)
	transferor := assetregistry.NewClient(transferDispatcher)
	vaults := vault.NewManager(dataStore, shareLedger, transferor, bus)
	reg := registry.New(registry.Config{
		Address:      domain.Address(cfg.Registry.Address),
		Admin:        domain.Address(cfg.Registry.Admin),
		FundingGrant: cfg.Registry.FundingGrant,
		CallBudget:   cfg.Xcall.Budget,
	}, dataStore, bus, vaults)

	// Initialize info refresh sweeper
	sweeperConfig := &sweeper.InfoRefreshSweeperConfig{
		Interval:       cfg.InfoSweeper.Interval,
		WorkerPoolSize: cfg.InfoSweeper.WorkerPoolSize,
		MaxRetries:     cfg.InfoSweeper.MaxRetries,
		MaxElapsedTime: cfg.InfoSweeper.MaxElapsedTime,
	}
	infoSweeper := sweeper.NewInfoRefreshSweeper(sweeperConfig, reg, clock)

	logger.InfoCtx(ctx, "Initialized info refresh sweeper",
		zap.Duration("interval", cfg.InfoSweeper.Interval),
		zap.Int("worker_pool_size", cfg.InfoSweeper.WorkerPoolSize),
	)

	// Start the sweeper in a goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := infoSweeper.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		logger.ErrorCtx(ctx, err, zap.String("component", "sweeper"))
	}

	// Stop the sweeper and wait for in-flight work to finish
	if err := infoSweeper.Stop(ctx); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("component", "sweeper"))
	}
	cancel()

	logger.Info("Sweeper stopped")
}
