package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/pr-poehali-dev/telegram-diary-bot/internal/app"
	"github.com/pr-poehali-dev/telegram-diary-bot/internal/auth"
	"github.com/pr-poehali-dev/telegram-diary-bot/internal/availability"
	"github.com/pr-poehali-dev/telegram-diary-bot/internal/config"
	"github.com/pr-poehali-dev/telegram-diary-bot/internal/controller"
	"github.com/pr-poehali-dev/telegram-diary-bot/internal/notify"
	"github.com/pr-poehali-dev/telegram-diary-bot/internal/repository"
	"github.com/pr-poehali-dev/telegram-diary-bot/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting diary bot",
		zap.String("environment", cfg.Environment))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// База данных
	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}

	// Миграции
	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	if version, err := migrator.Version(ctx); err == nil {
		logger.Info("Database schema is up to date", zap.Int64("version", version))
	}
	migrator.Close()

	// Репозитории
	bookingRepo := repository.NewBookingRepository(pool)
	serviceRepo := repository.NewServiceRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	studyRepo := repository.NewStudyPeriodRepository(pool)
	blockedRepo := repository.NewBlockedDateRepository(pool)
	settingsRepo := repository.NewSettingsRepository(pool)
	clientRepo := repository.NewClientRepository(pool)

	// Движок доступности
	source := service.NewAvailabilitySource(serviceRepo, settingsRepo, studyRepo, eventRepo, bookingRepo, blockedRepo)
	engine := availability.NewEngine(source)

	// Telegram bot
	botInstance, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	notifier := notify.NewNotifier(botInstance, cfg.TelegramOwnerID, logger)

	// Сервисы
	bookingService := service.NewBookingService(engine, bookingRepo, serviceRepo, clientRepo, notifier, logger)
	eventService := service.NewEventService(eventRepo, bookingRepo, studyRepo, logger)
	scheduleService := service.NewScheduleService(studyRepo, blockedRepo, bookingRepo, logger)
	settingsService := service.NewSettingsService(settingsRepo, logger)
	catalogService := service.NewCatalogService(serviceRepo, clientRepo, logger)

	authService := auth.NewService(auth.AllowList{
		AdminID: cfg.TelegramAdminID,
		OwnerID: cfg.TelegramOwnerID,
		GroupID: cfg.TelegramGroupID,
	}, auth.NewMemoryAttemptStore(), logger)

	// Контроллер
	botController := controller.NewBotController(
		botInstance,
		bookingService,
		eventService,
		scheduleService,
		settingsService,
		catalogService,
		authService,
		cfg.TelegramOwnerID,
		logger,
	)

	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Fatal("Failed to register handlers", zap.Error(err))
	}

	// Фоновые задачи
	scheduler := app.NewScheduler(bookingService, notifier, cfg.TelegramOwnerID, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	logger.Info("Bot is running")
	if err := botController.Start(ctx); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}

	logger.Info("Bot stopped")
}
