package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"

	"authservice/internal/config"
	"authservice/internal/hasher"
	"authservice/internal/notifier"
	"authservice/internal/repository"
	"authservice/internal/server"
	"authservice/internal/token"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err) // Should not happen in development
	}
	defer func() {
		_ = logger.Sync() // Flushes buffer, if any
	}()
	log := logrus.New()

	// Load configuration
	cfgPath := "configs/config.yml"
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}
	tokenTTL, err := cfg.TokenTTL()
	if err != nil {
		logger.Fatal("Invalid token TTL", zap.Error(err))
	}

	// Database connection
	db, err := repository.NewPostgresDB(cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	repository.MigrateDB(db, logger)

	// Password hasher with the configured work factor
	passwordHasher, err := hasher.New(cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("Invalid bcrypt cost", zap.Error(err))
	}

	// Token manager with the process-wide secret
	tokenManager, err := token.NewManager(cfg.JWTSecret)
	if err != nil {
		logger.Fatal("Failed to initialize token manager", zap.Error(err))
	}

	// Optional Telegram notifier for new registrations
	tgNotifier, err := notifier.NewTelegramNotifier(cfg, logger)
	if err != nil {
		logger.Warn("Failed to initialize Telegram notifier, continuing without it", zap.Error(err))
		tgNotifier = nil
	}

	// Context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Initialize and run the server
	srv := server.NewServer(db, passwordHasher, tokenManager, tgNotifier, tokenTTL, logger, log)
	srv.Run(ctx, cfg.Server.Port)

	logger.Info("Application stopped.")
}
