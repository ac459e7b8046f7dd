package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/pr-poehali-dev/telegram-diary-bot/internal/availability"
	"github.com/pr-poehali-dev/telegram-diary-bot/internal/formatting"
)

// HandlePending обрабатывает команду /pending:
// список неподтверждённых записей с кнопками подтверждения
func (h *Handlers) HandlePending(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireOwner(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	bookings, err := h.bookingService.GetPendingBookings(ctx, h.ownerID)
	if err != nil {
		h.logger.Error("Failed to load pending bookings", zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось загрузить записи. Попробуйте позже.")
		return
	}

	if len(bookings) == 0 {
		h.sendText(ctx, b, chatID, "✅ Неподтверждённых записей нет.")
		return
	}

	for _, booking := range bookings {
		text := fmt.Sprintf(
			"%s <b>Запись #%d</b>\n\n"+
				"👤 %s\n"+
				"💼 %s\n"+
				"📅 %s\n"+
				"🕐 %s\n"+
				"📊 %s",
			formatting.StatusEmoji(booking.Status),
			booking.ID,
			booking.ClientName,
			booking.ServiceName,
			formatting.FormatDate(booking.Date),
			formatting.FormatMinutesRange(booking.StartMinutes, booking.EndMinutes),
			formatting.StatusText(booking.Status),
		)

		keyboard := &models.InlineKeyboardMarkup{
			InlineKeyboard: [][]models.InlineKeyboardButton{
				{
					{Text: "✅ Подтвердить", CallbackData: fmt.Sprintf("confirm_%d", booking.ID)},
					{Text: "❌ Отменить", CallbackData: fmt.Sprintf("cancel_%d", booking.ID)},
				},
			},
		}

		_, err := b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      chatID,
			Text:        text,
			ParseMode:   models.ParseModeHTML,
			ReplyMarkup: keyboard,
		})
		if err != nil {
			h.logger.Error("Failed to send pending booking", zap.Int64("booking_id", booking.ID), zap.Error(err))
		}
	}
}

// HandleSlots обрабатывает команду /slots ДАТА ID_УСЛУГИ:
// показывает доступные окна для записи на дату
func (h *Handlers) HandleSlots(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireAccess(ctx, b, update); !ok {
		return
	}
	chatID := update.Message.Chat.ID

	args := strings.Fields(update.Message.Text)
	if len(args) != 3 {
		h.sendText(ctx, b, chatID, "Использование: /slots ДАТА ID_УСЛУГИ\nНапример: /slots 2025-12-01 1")
		return
	}

	date, err := time.ParseInLocation("2006-01-02", args[1], time.Local)
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ Неверный формат даты. Ожидается ГГГГ-ММ-ДД.")
		return
	}

	serviceID, err := strconv.ParseInt(args[2], 10, 64)
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ ID услуги должен быть числом.")
		return
	}

	// Для сегодняшней даты прошедшие окна отсекаются по текущему времени
	currentTime := ""
	now := time.Now()
	if date.Year() == now.Year() && date.YearDay() == now.YearDay() {
		currentTime = now.Format("15:04")
	}

	result, err := h.bookingService.GetAvailableSlots(ctx, h.ownerID, date, serviceID, currentTime)
	if errors.Is(err, availability.ErrServiceNotFound) {
		h.sendError(ctx, b, chatID, "❌ Услуга не найдена.")
		return
	}
	if err != nil {
		h.logger.Error("Failed to compute slots",
			zap.Time("date", date), zap.Int64("service_id", serviceID), zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось рассчитать свободные окна. Попробуйте позже.")
		return
	}

	if result.Blocked {
		h.sendText(ctx, b, chatID, fmt.Sprintf("🚫 %s заблокирована, запись невозможна.", formatting.FormatDate(date)))
		return
	}
	if len(result.Slots) == 0 {
		h.sendText(ctx, b, chatID, fmt.Sprintf("😔 На %s свободных окон нет.", formatting.FormatDate(date)))
		return
	}

	var times []string
	for _, slot := range result.Slots {
		times = append(times, slot.Time)
	}

	h.sendText(ctx, b, chatID, fmt.Sprintf(
		"🕐 Свободные окна на %s:\n\n%s",
		formatting.FormatDate(date),
		strings.Join(times, ", "),
	))
}
