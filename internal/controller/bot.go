package controller

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/pr-poehali-dev/telegram-diary-bot/internal/auth"
	"github.com/pr-poehali-dev/telegram-diary-bot/internal/controller/callbacks"
	"github.com/pr-poehali-dev/telegram-diary-bot/internal/controller/handlers"
	"github.com/pr-poehali-dev/telegram-diary-bot/internal/controller/state"
	"github.com/pr-poehali-dev/telegram-diary-bot/internal/service"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	bookingService *service.BookingService,
	eventService *service.EventService,
	scheduleService *service.ScheduleService,
	settingsService *service.SettingsService,
	catalogService *service.CatalogService,
	authService *auth.Service,
	ownerID int64,
	logger *zap.Logger,
) *BotController {
	// Менеджер состояний общий для команд и кнопок
	stateManager := state.NewManager()

	cmdHandlers := handlers.NewHandlers(
		bookingService,
		eventService,
		scheduleService,
		settingsService,
		catalogService,
		authService,
		stateManager,
		ownerID,
		logger,
	)

	callbackHandler := callbacks.NewHandler(
		bookingService,
		eventService,
		stateManager,
		ownerID,
		logger,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	// Команды без аргументов
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/today", bot.MatchTypeExact, c.handlers.HandleToday)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/tomorrow", bot.MatchTypeExact, c.handlers.HandleTomorrow)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/week", bot.MatchTypeExact, c.handlers.HandleWeek)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/pending", bot.MatchTypeExact, c.handlers.HandlePending)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/study_view", bot.MatchTypeExact, c.handlers.HandleStudyView)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/blocked_list", bot.MatchTypeExact, c.handlers.HandleBlockedList)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/event_list", bot.MatchTypeExact, c.handlers.HandleEventList)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/settings", bot.MatchTypeExact, c.handlers.HandleSettings)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/clients", bot.MatchTypeExact, c.handlers.HandleClients)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/service_list", bot.MatchTypeExact, c.handlers.HandleServiceList)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)

	// Команды с аргументами
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/slots", bot.MatchTypePrefix, c.handlers.HandleSlots)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/book", bot.MatchTypePrefix, c.handlers.HandleBook)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/client_add", bot.MatchTypePrefix, c.handlers.HandleClientAdd)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/service_add", bot.MatchTypePrefix, c.handlers.HandleServiceAdd)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/service_toggle", bot.MatchTypePrefix, c.handlers.HandleServiceToggle)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/service_delete", bot.MatchTypePrefix, c.handlers.HandleServiceDelete)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/event_add", bot.MatchTypePrefix, c.handlers.HandleEventAdd)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/event_delete", bot.MatchTypePrefix, c.handlers.HandleEventDelete)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/study_set", bot.MatchTypePrefix, c.handlers.HandleStudySet)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/study_clear", bot.MatchTypePrefix, c.handlers.HandleStudyClear)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/block_date", bot.MatchTypePrefix, c.handlers.HandleBlockDate)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/unblock_date", bot.MatchTypePrefix, c.handlers.HandleUnblockDate)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/set_hours", bot.MatchTypePrefix, c.handlers.HandleSetHours)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/set_padding", bot.MatchTypePrefix, c.handlers.HandleSetPadding)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/work_priority", bot.MatchTypePrefix, c.handlers.HandleWorkPriority)

	// Обработчик текстовых сообщений (для диалогов с состояниями)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "today", Description: "📅 Календарь на сегодня"},
		{Command: "tomorrow", Description: "📅 Календарь на завтра"},
		{Command: "week", Description: "🗓 Расписание недели"},
		{Command: "pending", Description: "⏳ Неподтверждённые записи"},
		{Command: "slots", Description: "🕐 Свободные окна на дату"},
		{Command: "book", Description: "✍️ Записать клиента"},
		{Command: "clients", Description: "👥 Клиенты"},
		{Command: "service_list", Description: "💼 Услуги"},
		{Command: "event_add", Description: "📌 Добавить мероприятие"},
		{Command: "event_list", Description: "📌 Ближайшие мероприятия"},
		{Command: "study_view", Description: "🎓 Учебное расписание"},
		{Command: "blocked_list", Description: "🚫 Заблокированные даты"},
		{Command: "settings", Description: "⚙️ Настройки"},
		{Command: "help", Description: "❓ Справка по командам"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
