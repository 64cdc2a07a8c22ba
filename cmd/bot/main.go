package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"xui-sub-bot/internal/config"
	"xui-sub-bot/internal/permissions"
	"xui-sub-bot/internal/services"
	"xui-sub-bot/pkg/telegrambot"
)

func main() {
	logger := setupLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration:", err)
	}

	// Initialize services
	stateService := services.NewUserStateService(logger)
	subscriptions := services.NewSubscriptionService(cfg, logger)
	qrService := services.NewQRService(logger)
	userStore := services.NewUserStore(cfg.Storage.UsersFile, logger)
	broadcast := services.NewBroadcastService(
		userStore,
		time.Duration(cfg.Telegram.BroadcastDelayMs)*time.Millisecond,
		logger,
	)

	permController := permissions.NewController(cfg.Telegram.AdminIDs, logger)

	bot, err := telegrambot.NewBot(cfg, subscriptions, stateService, qrService, userStore, broadcast, permController, logger)
	if err != nil {
		logger.Fatal("Failed to create bot:", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh
		logger.Info("Received shutdown signal")
		cancel()
	}()

	logger.Info("Starting VPN subscription bot")
	if err := bot.Start(ctx); err != nil {
		logger.Fatal("Bot failed:", err)
	}

	subscriptions.Shutdown(context.Background())
}

// setupLogger sets up the logger
func setupLogger() *logrus.Logger {
	logger := logrus.New()

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		log.Printf("Invalid log level %s, defaulting to info", logLevel)
		level = logrus.InfoLevel
	}

	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return logger
}
