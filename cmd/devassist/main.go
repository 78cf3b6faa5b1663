package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/saasdev/devassist/internal/catalog"
	"github.com/saasdev/devassist/internal/config"
	"github.com/saasdev/devassist/internal/history"
	"github.com/saasdev/devassist/internal/logger"
	"github.com/saasdev/devassist/internal/server"
	"github.com/saasdev/devassist/internal/telemetry"
)

func main() {
	// Initialize logging first thing
	appLogger := setupLogging()

	appLogger.Info("DevAssist MCP Server - Starting...")

	configPath := flag.String("config", config.DefaultConfigFilename, "path to the configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfigWithPath(*configPath)
	if err != nil {
		logger.LogError(err)
		appLogger.Fatal("Failed to load configuration")
	}

	// Configure logging based on config
	if cfg.Logging.Level != "" {
		appLogger.SetLevel(logger.ParseLevel(cfg.Logging.Level))
		appLogger.Info("Log level set to %s", cfg.Logging.Level)
	}

	if cfg.Logging.Format == "json" {
		appLogger.SetFormat(logger.JSON)
		appLogger.Info("Log format set to JSON")
	}

	// Build the dispatch registry with the fixed catalog
	metrics := telemetry.NewMetricsCollector()
	regLogger := appLogger.WithContext("registry")

	reg, err := catalog.NewRegistry(metrics)
	if err != nil {
		err = logger.InternalError(err, "Failed to build tool/resource registry")
		logger.LogError(err)
		appLogger.Fatal("Failed to build tool/resource registry")
	}
	regLogger.Info("Registry built with %d tools and %d resources",
		len(reg.ListTools()), len(reg.ListResources()))

	// Initialize the deployment history store
	store := history.NewSQLiteStore()
	storeLogger := appLogger.WithContext("history")

	err = store.Initialize(cfg.History.SQLitePath)
	if err != nil {
		err = logger.DatabaseError(err, "Failed to initialize SQLite history store")
		logger.LogError(err)
		appLogger.Fatal("Failed to initialize SQLite history store")
	}
	defer store.Close()
	storeLogger.Info("SQLite history store initialized")

	// Initialize the MCP server
	srv := server.NewToolServer(cfg.Server.Name, reg)
	srvLogger := appLogger.WithContext("server")

	err = srv.Initialize()
	if err != nil {
		err = logger.ConfigError(err, "Failed to initialize MCP server")
		logger.LogError(err)
		appLogger.Fatal("Failed to initialize MCP server")
	}
	srvLogger.Info("MCP server initialized")

	// Handle graceful shutdown
	setupSignalHandler(store, appLogger)

	// Start the MCP server over stdio (blocks until the transport closes)
	srvLogger.Info("Starting MCP server...")
	if err := srv.Start(); err != nil {
		err = logger.ProtocolError(err, "MCP server terminated with an error")
		logger.LogError(err)
		appLogger.Fatal("Failed to start MCP server")
	}
}

// setupLogging configures and returns the application logger
func setupLogging() *logger.Logger {
	// Create default configuration
	cfg := logger.DefaultConfig()

	// Try to get log level from environment variable
	if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
		cfg.Level = logger.ParseLevel(levelStr)
	}

	// Create and return logger
	appLogger := logger.New(cfg)
	logger.SetDefaultLogger(appLogger)

	return appLogger
}

// setupSignalHandler sets up a signal handler for graceful shutdown.
func setupSignalHandler(store history.Store, log *logger.Logger) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("Received shutdown signal, terminating gracefully...")

		// Close the store to ensure all data is flushed
		if err := store.Close(); err != nil {
			err = logger.DatabaseError(err, "Error closing history store during shutdown")
			logger.LogError(err)
		} else {
			log.Info("History store closed successfully")
		}

		log.Info("Shutdown complete")
		os.Exit(0)
	}()
}
