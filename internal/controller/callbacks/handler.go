package callbacks

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/pr-poehali-dev/telegram-diary-bot/internal/controller/state"
	"github.com/pr-poehali-dev/telegram-diary-bot/internal/formatting"
	"github.com/pr-poehali-dev/telegram-diary-bot/internal/model"
	"github.com/pr-poehali-dev/telegram-diary-bot/internal/service"
)

// Префиксы callback data inline-кнопок
const (
	prefixConfirm = "confirm_" // confirm_<booking_id>
	prefixCancel  = "cancel_"  // cancel_<booking_id>

	eventForce   = "event_force"
	eventDiscard = "event_discard"
)

// Handler обрабатывает нажатия inline-кнопок
type Handler struct {
	bookingService *service.BookingService
	eventService   *service.EventService
	stateManager   *state.Manager
	ownerID        int64
	logger         *zap.Logger
}

// NewHandler создаёт обработчик callback query
func NewHandler(
	bookingService *service.BookingService,
	eventService *service.EventService,
	stateManager *state.Manager,
	ownerID int64,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bookingService: bookingService,
		eventService:   eventService,
		stateManager:   stateManager,
		ownerID:        ownerID,
		logger:         logger,
	}
}

// HandleCallbackQuery распределяет callback query по обработчикам
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	callback := update.CallbackQuery
	data := callback.Data

	h.logger.Info("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID))

	switch {
	case strings.HasPrefix(data, prefixConfirm):
		h.handleConfirm(ctx, b, callback)
	case strings.HasPrefix(data, prefixCancel):
		h.handleCancel(ctx, b, callback)
	case data == eventForce:
		h.handleEventForce(ctx, b, callback)
	case data == eventDiscard:
		h.handleEventDiscard(ctx, b, callback)
	default:
		h.answer(ctx, b, callback.ID, "")
	}
}

func (h *Handler) handleConfirm(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	bookingID, err := parseBookingID(callback.Data, prefixConfirm)
	if err != nil {
		h.answerAlert(ctx, b, callback.ID, "❌ Некорректные данные кнопки.")
		return
	}

	booking, err := h.bookingService.ConfirmBooking(ctx, bookingID, h.ownerID)
	if err != nil {
		h.logger.Error("Failed to confirm booking", zap.Int64("booking_id", bookingID), zap.Error(err))
		h.answerAlert(ctx, b, callback.ID, "❌ Не удалось подтвердить запись.")
		return
	}

	h.answer(ctx, b, callback.ID, "✅ Запись подтверждена")
	h.replaceMessage(ctx, b, callback, fmt.Sprintf(
		"✅ Запись #%d подтверждена: %s, %s.",
		booking.ID,
		formatting.FormatDate(booking.Date),
		formatting.FormatMinutesRange(booking.StartMinutes, booking.EndMinutes),
	))
}

func (h *Handler) handleCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	bookingID, err := parseBookingID(callback.Data, prefixCancel)
	if err != nil {
		h.answerAlert(ctx, b, callback.ID, "❌ Некорректные данные кнопки.")
		return
	}

	if err := h.bookingService.CancelBooking(ctx, bookingID, h.ownerID); err != nil {
		h.logger.Error("Failed to cancel booking", zap.Int64("booking_id", bookingID), zap.Error(err))
		h.answerAlert(ctx, b, callback.ID, "❌ Не удалось отменить запись.")
		return
	}

	h.answer(ctx, b, callback.ID, "Запись отменена")
	h.replaceMessage(ctx, b, callback, fmt.Sprintf("❌ Запись #%d отменена.", bookingID))
}

// handleEventForce повторяет создание мероприятия принудительно:
// пересекающиеся записи клиентов будут отменены
func (h *Handler) handleEventForce(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	telegramID := callback.From.ID

	dateRaw, okDate := h.stateManager.GetData(telegramID, state.KeyEventDate)
	startRaw, okStart := h.stateManager.GetData(telegramID, state.KeyEventStart)
	endRaw, okEnd := h.stateManager.GetData(telegramID, state.KeyEventEnd)
	titleRaw, okTitle := h.stateManager.GetData(telegramID, state.KeyEventTitle)
	if !okDate || !okStart || !okEnd || !okTitle {
		h.answerAlert(ctx, b, callback.ID, "❌ Данные устарели, начните заново: /event_add")
		return
	}

	date, err := time.ParseInLocation("2006-01-02", dateRaw.(string), time.Local)
	if err != nil {
		h.stateManager.ClearState(telegramID)
		h.answerAlert(ctx, b, callback.ID, "❌ Данные устарели, начните заново: /event_add")
		return
	}

	event := &model.CalendarEvent{
		OwnerID:      h.ownerID,
		Type:         model.EventTypeCustom,
		Title:        titleRaw.(string),
		Date:         date,
		StartMinutes: startRaw.(int),
		EndMinutes:   endRaw.(int),
	}

	if err := h.eventService.AddEvent(ctx, event, true); err != nil {
		h.logger.Error("Failed to force-create event", zap.Error(err))
		h.answerAlert(ctx, b, callback.ID, "❌ Не удалось создать мероприятие.")
		return
	}

	h.stateManager.ClearState(telegramID)
	h.answer(ctx, b, callback.ID, "✅ Мероприятие добавлено")
	h.replaceMessage(ctx, b, callback, fmt.Sprintf(
		"✅ Мероприятие «%s» добавлено: %s, %s.\nПересекавшиеся записи отменены.",
		event.Title,
		formatting.FormatDate(event.Date),
		formatting.FormatMinutesRange(event.StartMinutes, event.EndMinutes),
	))
}

func (h *Handler) handleEventDiscard(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	h.stateManager.ClearState(callback.From.ID)
	h.answer(ctx, b, callback.ID, "Отменено")
	h.replaceMessage(ctx, b, callback, "Мероприятие не создано.")
}

// replaceMessage заменяет текст сообщения с кнопками на итоговый
func (h *Handler) replaceMessage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, text string) {
	message := callback.Message.Message
	if message == nil {
		return
	}

	_, err := b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    message.Chat.ID,
		MessageID: message.ID,
		Text:      text,
	})
	if err != nil {
		h.logger.Error("Failed to edit message", zap.Error(err))
	}
}

// answer отвечает на callback query без alert
func (h *Handler) answer(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       false,
	})
}

// answerAlert отвечает на callback query с всплывающим окном
func (h *Handler) answerAlert(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       true,
	})
}

// parseBookingID извлекает ID записи из callback data, например "confirm_42" -> 42
func parseBookingID(data, prefix string) (int64, error) {
	return strconv.ParseInt(strings.TrimPrefix(data, prefix), 10, 64)
}
