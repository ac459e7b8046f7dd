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
	"github.com/pr-poehali-dev/telegram-diary-bot/internal/controller/state"
	"github.com/pr-poehali-dev/telegram-diary-bot/internal/formatting"
	"github.com/pr-poehali-dev/telegram-diary-bot/internal/model"
	"github.com/pr-poehali-dev/telegram-diary-bot/internal/service"
)

// HandleEventAdd обрабатывает команду /event_add.
// С аргументами создаёт мероприятие сразу, без аргументов запускает диалог.
func (h *Handlers) HandleEventAdd(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireOwner(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID

	args := strings.Fields(update.Message.Text)
	if len(args) < 2 {
		h.stateManager.SetState(telegramID, state.StateEventDate)
		h.sendText(ctx, b, chatID, "📅 Введите дату мероприятия в формате ГГГГ-ММ-ДД:")
		return
	}

	if len(args) < 5 {
		h.sendText(ctx, b, chatID, "Использование: /event_add ДАТА НАЧАЛО КОНЕЦ НАЗВАНИЕ\nНапример: /event_add 2025-12-05 14:00 16:00 Конференция")
		return
	}

	date, err := time.ParseInLocation("2006-01-02", args[1], time.Local)
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ Неверный формат даты. Ожидается ГГГГ-ММ-ДД.")
		return
	}

	startMinutes, err := availability.ParseTimeOfDay(args[2])
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ Неверное время начала. Ожидается ЧЧ:ММ.")
		return
	}
	endMinutes, err := availability.ParseTimeOfDay(args[3])
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ Неверное время окончания. Ожидается ЧЧ:ММ.")
		return
	}
	if startMinutes >= endMinutes {
		h.sendError(ctx, b, chatID, "❌ Начало должно быть раньше окончания.")
		return
	}

	title := strings.Join(args[4:], " ")
	h.createEvent(ctx, b, chatID, telegramID, date, startMinutes, endMinutes, title, false)
}

// createEvent создаёт мероприятие и обрабатывает конфликт с записями
func (h *Handlers) createEvent(ctx context.Context, b *bot.Bot, chatID, telegramID int64,
	date time.Time, startMinutes, endMinutes int, title string, force bool) {

	event := &model.CalendarEvent{
		OwnerID:      h.ownerID,
		Type:         model.EventTypeCustom,
		Title:        title,
		Date:         date,
		StartMinutes: startMinutes,
		EndMinutes:   endMinutes,
	}

	err := h.eventService.AddEvent(ctx, event, force)

	var conflict *service.EventConflictError
	if errors.As(err, &conflict) {
		// Запоминаем параметры, чтобы кнопка могла повторить принудительно
		h.stateManager.SetData(telegramID, state.KeyEventDate, date.Format("2006-01-02"))
		h.stateManager.SetData(telegramID, state.KeyEventStart, startMinutes)
		h.stateManager.SetData(telegramID, state.KeyEventEnd, endMinutes)
		h.stateManager.SetData(telegramID, state.KeyEventTitle, title)

		var lines []string
		for _, booking := range conflict.Bookings {
			lines = append(lines, fmt.Sprintf("  • #%d %s %s",
				booking.ID,
				formatting.FormatMinutesRange(booking.StartMinutes, booking.EndMinutes),
				booking.ClientName))
		}

		text := fmt.Sprintf(
			"⚠️ Мероприятие пересекается с записями клиентов:\n\n%s\n\nДобавить всё равно? Эти записи будут отменены.",
			strings.Join(lines, "\n"),
		)
		keyboard := &models.InlineKeyboardMarkup{
			InlineKeyboard: [][]models.InlineKeyboardButton{
				{
					{Text: "⚠️ Добавить всё равно", CallbackData: "event_force"},
					{Text: "Отмена", CallbackData: "event_discard"},
				},
			},
		}
		_, sendErr := b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      chatID,
			Text:        text,
			ReplyMarkup: keyboard,
		})
		if sendErr != nil {
			h.logger.Error("Failed to send conflict prompt", zap.Error(sendErr))
		}
		return
	}
	if err != nil {
		h.logger.Error("Failed to create event", zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось создать мероприятие. Попробуйте позже.")
		return
	}

	text := fmt.Sprintf("✅ Мероприятие «%s» добавлено: %s, %s.",
		title,
		formatting.FormatDate(date),
		formatting.FormatMinutesRange(startMinutes, endMinutes),
	)

	// Пересечение с учёбой не мешает, но о нём стоит предупредить
	overlaps, overlapErr := h.eventService.StudyOverlap(ctx, h.ownerID, date, startMinutes, endMinutes)
	if overlapErr != nil {
		h.logger.Warn("Failed to check study overlap", zap.Error(overlapErr))
	} else if len(overlaps) > 0 {
		text += "\n\n🎓 Внимание: это время пересекается с учёбой."
	}

	h.sendText(ctx, b, chatID, text)
}

// HandleEventList обрабатывает команду /event_list
func (h *Handlers) HandleEventList(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireAccess(ctx, b, update); !ok {
		return
	}
	chatID := update.Message.Chat.ID

	events, err := h.eventService.GetUpcomingEvents(ctx, h.ownerID, time.Now())
	if err != nil {
		h.logger.Error("Failed to load upcoming events", zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось загрузить мероприятия. Попробуйте позже.")
		return
	}

	if len(events) == 0 {
		h.sendText(ctx, b, chatID, "📭 Ближайших мероприятий нет.")
		return
	}

	var sb strings.Builder
	sb.WriteString("📌 <b>Ближайшие мероприятия:</b>\n\n")
	for _, event := range events {
		sb.WriteString(fmt.Sprintf("#%d %s %s - %s\n",
			event.ID,
			formatting.FormatDate(event.Date),
			formatting.FormatMinutesRange(event.StartMinutes, event.EndMinutes),
			event.Title,
		))
	}
	sb.WriteString("\nУдалить: /event_delete ID")

	h.sendHTML(ctx, b, chatID, sb.String())
}

// HandleEventDelete обрабатывает команду /event_delete ID
func (h *Handlers) HandleEventDelete(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireOwner(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	args := strings.Fields(update.Message.Text)
	if len(args) != 2 {
		h.sendText(ctx, b, chatID, "Использование: /event_delete ID")
		return
	}

	eventID, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ ID мероприятия должен быть числом.")
		return
	}

	if err := h.eventService.DeleteEvent(ctx, eventID, h.ownerID); err != nil {
		h.logger.Error("Failed to delete event", zap.Int64("event_id", eventID), zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось удалить мероприятие. Проверьте ID.")
		return
	}

	h.sendText(ctx, b, chatID, fmt.Sprintf("🗑 Мероприятие #%d удалено.", eventID))
}
