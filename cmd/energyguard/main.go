package main

//	@title						EnergyGuard API
//	@version					0.1.0
//	@description				Energy usage analysis and recommendation service API.
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT Bearer token. Format: "Bearer {token}"

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/HerbHall/energyguard/api/swagger"
	"github.com/HerbHall/energyguard/internal/auth"
	"github.com/HerbHall/energyguard/internal/config"
	"github.com/HerbHall/energyguard/internal/event"
	"github.com/HerbHall/energyguard/internal/guard"
	"github.com/HerbHall/energyguard/internal/notify"
	"github.com/HerbHall/energyguard/internal/registry"
	"github.com/HerbHall/energyguard/internal/server"
	"github.com/HerbHall/energyguard/internal/tariff"
	"github.com/HerbHall/energyguard/internal/version"
	"github.com/HerbHall/energyguard/internal/ws"
	"github.com/HerbHall/energyguard/pkg/plugin"
	"go.uber.org/zap"
)

func main() {
	// Subcommand dispatch (before flag.Parse).
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Println(version.Info())
		return
	}

	configPath := flag.String("config", "", "path to configuration file")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	// Load configuration (before logger, so log level/format can be configured).
	viperCfg, err := server.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	cfg := config.New(viperCfg)

	// Initialize logger from configuration.
	logger, err := config.NewLogger(viperCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("EnergyGuard server starting", zap.String("version", version.Short()))

	if f := viperCfg.ConfigFileUsed(); f != "" {
		logger.Info("configuration loaded",
			zap.String("component", "config"),
			zap.String("source", f),
		)
	} else {
		logger.Warn("no configuration file found, using defaults",
			zap.String("component", "config"),
		)
	}

	// Create shared services
	bus := event.NewBus(logger.Named("event"))
	logger.Info("event bus created", zap.String("component", "event"))

	// Create plugin registry
	reg := registry.New(logger.Named("registry"))
	logger.Info("plugin registry created", zap.String("component", "registry"))

	// Register all plugins (compile-time composition)
	modules := []plugin.Plugin{
		guard.New(),
		tariff.New(),
		ws.New(),
		notify.New(),
	}
	for _, m := range modules {
		if err := reg.Register(m); err != nil {
			logger.Fatal("failed to register plugin", zap.Error(err))
		}
	}

	// Validate dependency graph and API versions
	if err := reg.Validate(); err != nil {
		logger.Fatal("plugin validation failed", zap.Error(err))
	}

	// Initialize all plugins with dependencies
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := reg.InitAll(ctx, func(name string) plugin.Dependencies {
		return plugin.Dependencies{
			Config:  cfg.Sub("plugins." + name),
			Logger:  logger.Named(name),
			Bus:     bus,
			Plugins: reg,
		}
	}); err != nil {
		logger.Fatal("failed to initialize plugins", zap.Error(err))
	}

	// Start plugins
	if err := reg.StartAll(ctx); err != nil {
		logger.Fatal("failed to start plugins", zap.Error(err))
	}

	// Create auth service when enabled; a nil registrar leaves the API open.
	authCfg := auth.DefaultConfig()
	if err := cfg.Sub("auth").Unmarshal(&authCfg); err != nil {
		logger.Fatal("invalid auth configuration", zap.Error(err))
	}
	var authRegistrar server.RouteRegistrar
	if authCfg.Enabled {
		authService, err := auth.NewService(authCfg, logger.Named("auth"))
		if err != nil {
			logger.Fatal("failed to initialize auth service", zap.Error(err))
		}
		authRegistrar = auth.NewHandler(authService, logger.Named("auth"))
		logger.Info("auth service initialized",
			zap.String("component", "auth"),
			zap.Duration("token_ttl", authService.Tokens().TokenTTL()),
		)
	} else {
		logger.Info("auth disabled, API is open", zap.String("component", "auth"))
	}

	// Create and start HTTP server
	addr := viperCfg.GetString("server.host") + ":" + viperCfg.GetString("server.port")
	if addr == ":" {
		addr = "0.0.0.0:8420"
	}
	logger.Info("HTTP server configured",
		zap.String("component", "server"),
		zap.String("addr", addr),
	)
	devMode := viperCfg.GetBool("server.dev_mode")
	demoMode := viperCfg.GetBool("server.demo_mode")
	readyCheck := server.ReadinessChecker(func(ctx context.Context) error {
		p, ok := reg.Resolve("guard")
		if !ok {
			return errors.New("guard plugin unavailable")
		}
		if hc, ok := p.(plugin.HealthChecker); ok {
			if h := hc.Health(ctx); h.Status == "unhealthy" {
				return fmt.Errorf("guard unhealthy: %s", h.Message)
			}
		}
		return nil
	})
	srv := server.New(addr, reg, logger, readyCheck, authRegistrar, devMode, demoMode)

	// Start server in background
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	logger.Info("EnergyGuard server ready", zap.String("addr", addr))

	// Print human-readable banner for users watching docker logs.
	port := viperCfg.GetString("server.port")
	if port == "" {
		port = "8420"
	}
	fmt.Fprintf(os.Stderr, "\n  EnergyGuard %s is ready!\n  API at http://localhost:%s/api/v1\n\n", version.Short(), port)

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	reg.StopAll(shutdownCtx)

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	logger.Info("EnergyGuard server stopped")
}
