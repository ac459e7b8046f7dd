package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/pr-poehali-dev/telegram-diary-bot/internal/availability"
	"github.com/pr-poehali-dev/telegram-diary-bot/internal/controller/state"
)

// HandleTextMessage обрабатывает текстовые сообщения вне команд:
// ведёт пошаговые диалоги по текущему состоянию пользователя
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	// Команды обрабатываются своими хендлерами
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	if !h.authService.IsAllowed(telegramID) {
		return
	}

	switch h.stateManager.GetState(telegramID) {
	case state.StateEventDate:
		h.handleEventDateInput(ctx, b, update)
	case state.StateEventTime:
		h.handleEventTimeInput(ctx, b, update)
	case state.StateEventTitle:
		h.handleEventTitleInput(ctx, b, update)
	}
}

// HandleCancel обрабатывает команду /cancel: прерывает текущий диалог
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	if h.stateManager.GetState(telegramID) == state.StateNone {
		h.sendText(ctx, b, update.Message.Chat.ID, "Нечего отменять.")
		return
	}

	h.stateManager.ClearState(telegramID)
	h.sendText(ctx, b, update.Message.Chat.ID, "✅ Действие отменено.")
}

func (h *Handlers) handleEventDateInput(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID
	input := strings.TrimSpace(update.Message.Text)

	if _, err := time.ParseInLocation("2006-01-02", input, time.Local); err != nil {
		h.sendError(ctx, b, chatID, "❌ Неверный формат даты. Введите дату как ГГГГ-ММ-ДД, например 2025-12-05.")
		return
	}

	h.stateManager.SetData(telegramID, state.KeyEventDate, input)
	h.stateManager.SetState(telegramID, state.StateEventTime)
	h.sendText(ctx, b, chatID, "🕐 Введите время начала и окончания через пробел, например: 14:00 16:00")
}

func (h *Handlers) handleEventTimeInput(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID

	parts := strings.Fields(update.Message.Text)
	if len(parts) != 2 {
		h.sendError(ctx, b, chatID, "❌ Нужно два времени через пробел, например: 14:00 16:00")
		return
	}

	startMinutes, err := availability.ParseTimeOfDay(parts[0])
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ Неверное время начала. Ожидается ЧЧ:ММ.")
		return
	}
	endMinutes, err := availability.ParseTimeOfDay(parts[1])
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ Неверное время окончания. Ожидается ЧЧ:ММ.")
		return
	}
	if startMinutes >= endMinutes {
		h.sendError(ctx, b, chatID, "❌ Начало должно быть раньше окончания.")
		return
	}

	h.stateManager.SetData(telegramID, state.KeyEventStart, startMinutes)
	h.stateManager.SetData(telegramID, state.KeyEventEnd, endMinutes)
	h.stateManager.SetState(telegramID, state.StateEventTitle)
	h.sendText(ctx, b, chatID, "✏️ Введите название мероприятия:")
}

func (h *Handlers) handleEventTitleInput(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID

	title := strings.TrimSpace(update.Message.Text)
	if title == "" {
		h.sendError(ctx, b, chatID, "❌ Название не может быть пустым.")
		return
	}

	dateRaw, ok := h.stateManager.GetData(telegramID, state.KeyEventDate)
	startRaw, okStart := h.stateManager.GetData(telegramID, state.KeyEventStart)
	endRaw, okEnd := h.stateManager.GetData(telegramID, state.KeyEventEnd)
	if !ok || !okStart || !okEnd {
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, chatID, "❌ Диалог сброшен, начните заново: /event_add")
		return
	}

	date, err := time.ParseInLocation("2006-01-02", dateRaw.(string), time.Local)
	if err != nil {
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, chatID, "❌ Диалог сброшен, начните заново: /event_add")
		return
	}

	h.stateManager.ClearState(telegramID)
	h.createEvent(ctx, b, chatID, telegramID, date, startRaw.(int), endRaw.(int), title, false)
}
