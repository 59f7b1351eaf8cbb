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
	"github.com/yoshitoke/nft141d/internal/api/middleware"
	"github.com/yoshitoke/nft141d/internal/api/server"
	"github.com/yoshitoke/nft141d/internal/assetregistry"
	"github.com/yoshitoke/nft141d/internal/config"
	"github.com/yoshitoke/nft141d/internal/domain"
	"github.com/yoshitoke/nft141d/internal/ledger"
	"github.com/yoshitoke/nft141d/internal/logger"
	"github.com/yoshitoke/nft141d/internal/registry"
	"github.com/yoshitoke/nft141d/internal/store"
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
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create shutdown context with timeout
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "api-server",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting NFT141D API")

	// Initialize store
	var dataStore store.Store
	if cfg.DevMode {
		logger.WarnCtx(ctx, "Dev mode enabled, using in-memory store")
		dataStore = store.NewMemoryStore()
	} else {
		// Connect to database
		db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
		}

		// Configure connection pool
		if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
			logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
		}

		// Run schema migrations
		if err := store.Migrate(db); err != nil {
			logger.FatalCtx(ctx, "Failed to migrate database", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Connected to database",
			zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
			zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
		)

		dataStore = store.NewPGStore(db)
	}

	// Initialize the in-process call bus hosting registry and vaults
	clock := adapter.NewClock()
	bus := xcall.NewBus(clock)
	defer bus.Close()

	// Asset-registry custody transfers go over NATS when configured,
	// otherwise over the in-process bus
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

	// Create server config
	serverConfig := server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
	}

	// Create and start server
	srv := server.New(serverConfig, reg, vaults)

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")

	// Shutdown server
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	// Use non-context logger for final message since original ctx is canceled
	logger.Info("API server stopped")
}
