package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"taskcal-bot/config"
	_ "taskcal-bot/docs" // Swagger docs
	tgDelivery "taskcal-bot/internal/conversation/delivery/telegram"
	"taskcal-bot/internal/conversation/repository"
	"taskcal-bot/internal/conversation/repository/memory"
	convUC "taskcal-bot/internal/conversation/usecase"
	"taskcal-bot/internal/credential"
	tokenFile "taskcal-bot/internal/credential/repository/file"
	credentialUC "taskcal-bot/internal/credential/usecase"
	eventUC "taskcal-bot/internal/event/usecase"
	"taskcal-bot/internal/httpserver"
	"taskcal-bot/internal/middleware"
	"taskcal-bot/pkg/gtimezone"
	"taskcal-bot/pkg/log"
	"taskcal-bot/pkg/quote"
	"taskcal-bot/pkg/telegram"
)

// @title       Task Calendar Bot API
// @description Telegram bot that creates Google Calendar events through a guided conversation.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting task calendar bot...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// 4. Credentials
	authMode, err := credential.ParseMode(cfg.GoogleCalendar.AuthMode)
	if err != nil {
		logger.Error(ctx, "Invalid google_calendar.auth_mode: ", err)
		return
	}
	credentials := credentialUC.New(logger, tokenFile.New(cfg.GoogleCalendar.TokenPath), credentialUC.Config{
		Mode:             authMode,
		ClientSecretPath: cfg.GoogleCalendar.CredentialsPath,
		RedirectURL:      cfg.GoogleCalendar.RedirectURL,
	})
	logger.Infof(ctx, "Google Calendar credentials mode: %s", authMode)
	if authMode == credential.ModeCached {
		logger.Info(ctx, "Run `go run scripts/gcal-auth/main.go` to prime token.json ahead of the first task")
	}

	// 5. Conversation domain
	timezones, err := gtimezone.NewClient(cfg.GoogleTimezone.APIKey)
	if err != nil {
		logger.Error(ctx, "Failed to initialize Google Time Zone client: ", err)
		return
	}

	var sessions repository.SessionRepository
	metrics := convUC.NewMetrics(registry, func() float64 {
		return float64(sessions.Len())
	})
	sessions = memory.New(cfg.Conversation.MaxSessions, cfg.Conversation.SessionTTL, convUC.OnEvict(logger, metrics))

	conversationUC := convUC.New(
		logger,
		sessions,
		timezones,
		credentials,
		eventUC.New(logger, nil, cfg.GoogleCalendar.CalendarID),
		metrics,
	)

	// 6. Telegram delivery
	bot := telegram.NewBot(cfg.Telegram.BotToken)
	var quotes *quote.Client
	if cfg.Quote.URL != "" {
		quotes = quote.NewClient(cfg.Quote.URL)
	}
	telegramHandler := tgDelivery.New(logger, conversationUC, bot, quotes, cfg.Telegram.RateLimitPerMin)

	srvCfg := httpserver.Config{
		Logger:      logger,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		Gatherer:    registry,
	}

	switch cfg.Telegram.Mode {
	case config.TelegramModeWebhook:
		if err := bot.SetWebhook(ctx, cfg.Telegram.WebhookURL, cfg.Telegram.WebhookSecret); err != nil {
			logger.Error(ctx, "Failed to set Telegram webhook: ", err)
			return
		}
		logger.Infof(ctx, "Telegram webhook registered at %s", cfg.Telegram.WebhookURL)
		srvCfg.TelegramHandler = telegramHandler
		srvCfg.Middleware = middleware.New(logger, cfg.Telegram.WebhookSecret, cfg.HTTPServer.RateLimitPerMin)
	default:
		poller := tgDelivery.NewPoller(logger, bot, telegramHandler, cfg.Telegram.PollInterval)
		go func() {
			if err := poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error(ctx, "Telegram poller stopped: ", err)
				stop()
			}
		}()
		logger.Infof(ctx, "Telegram long polling started, interval %s", cfg.Telegram.PollInterval)
	}

	// 7. HTTP Server
	httpServer, err := httpserver.New(logger, srvCfg)
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 8. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
