package handlers

import (
	"github.com/pr-poehali-dev/telegram-diary-bot/internal/auth"
	"github.com/pr-poehali-dev/telegram-diary-bot/internal/controller/state"
	"github.com/pr-poehali-dev/telegram-diary-bot/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	bookingService  *service.BookingService
	eventService    *service.EventService
	scheduleService *service.ScheduleService
	settingsService *service.SettingsService
	catalogService  *service.CatalogService
	authService     *auth.Service
	stateManager    *state.Manager
	ownerID         int64
	logger          *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	bookingService *service.BookingService,
	eventService *service.EventService,
	scheduleService *service.ScheduleService,
	settingsService *service.SettingsService,
	catalogService *service.CatalogService,
	authService *auth.Service,
	stateManager *state.Manager,
	ownerID int64,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		bookingService:  bookingService,
		eventService:    eventService,
		scheduleService: scheduleService,
		settingsService: settingsService,
		catalogService:  catalogService,
		authService:     authService,
		stateManager:    stateManager,
		ownerID:         ownerID,
		logger:          logger,
	}
}
