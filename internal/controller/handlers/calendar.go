package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/pr-poehali-dev/telegram-diary-bot/internal/availability"
	"github.com/pr-poehali-dev/telegram-diary-bot/internal/formatting"
)

// HandleToday обрабатывает команду /today
func (h *Handlers) HandleToday(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireAccess(ctx, b, update); !ok {
		return
	}
	h.sendDayCalendar(ctx, b, update.Message.Chat.ID, time.Now())
}

// HandleTomorrow обрабатывает команду /tomorrow
func (h *Handlers) HandleTomorrow(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireAccess(ctx, b, update); !ok {
		return
	}
	h.sendDayCalendar(ctx, b, update.Message.Chat.ID, time.Now().AddDate(0, 0, 1))
}

// sendDayCalendar собирает и отправляет календарь на одну дату
func (h *Handlers) sendDayCalendar(ctx context.Context, b *bot.Bot, chatID int64, date time.Time) {
	text, err := h.buildDayText(ctx, date)
	if err != nil {
		h.logger.Error("Failed to build day calendar", zap.Time("date", date), zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось собрать календарь. Попробуйте позже.")
		return
	}
	h.sendHTML(ctx, b, chatID, text)
}

// buildDayText формирует HTML-текст календаря на дату:
// блокировка, учёба, мероприятия и записи клиентов
func (h *Handlers) buildDayText(ctx context.Context, date time.Time) (string, error) {
	var sb strings.Builder

	weekday := availability.WeekdayName(date)
	sb.WriteString(fmt.Sprintf("📅 <b>%s (%s)</b>\n\n",
		formatting.FormatDate(date), formatting.WeekdayNameRu(weekday)))

	blocked, err := h.scheduleService.IsDateBlocked(ctx, h.ownerID, date)
	if err != nil {
		return "", fmt.Errorf("check blocked date: %w", err)
	}
	if blocked {
		sb.WriteString("🚫 <b>Дата заблокирована</b>\nЗапись в этот день невозможна.\n\n")
	}

	studyPeriods, err := h.scheduleService.GetStudyDay(ctx, h.ownerID, weekday)
	if err != nil {
		return "", fmt.Errorf("load study day: %w", err)
	}
	var studyLines []string
	for _, period := range studyPeriods {
		studyLines = append(studyLines,
			fmt.Sprintf("  🎓 %s", formatting.FormatMinutesRange(period.StartMinutes, period.EndMinutes)))
	}
	if len(studyLines) > 0 {
		sb.WriteString("<b>Учёба:</b>\n")
		sb.WriteString(strings.Join(studyLines, "\n"))
		sb.WriteString("\n\n")
	}

	events, err := h.eventService.GetEventsForDate(ctx, h.ownerID, date)
	if err != nil {
		return "", fmt.Errorf("load events: %w", err)
	}
	if len(events) > 0 {
		sb.WriteString("<b>Мероприятия:</b>\n")
		for _, event := range events {
			sb.WriteString(fmt.Sprintf("  📌 %s %s (#%d)\n",
				formatting.FormatMinutesRange(event.StartMinutes, event.EndMinutes),
				event.Title, event.ID))
		}
		sb.WriteString("\n")
	}

	bookings, err := h.bookingService.GetBookingsForDate(ctx, h.ownerID, date)
	if err != nil {
		return "", fmt.Errorf("load bookings: %w", err)
	}
	if len(bookings) > 0 {
		sb.WriteString("<b>Записи:</b>\n")
		for _, booking := range bookings {
			sb.WriteString(fmt.Sprintf("  %s %s %s - %s (#%d)\n",
				formatting.StatusEmoji(booking.Status),
				formatting.FormatMinutesRange(booking.StartMinutes, booking.EndMinutes),
				booking.ServiceName,
				booking.ClientName,
				booking.ID))
		}
		sb.WriteString("\n")
	}

	if !blocked && len(studyLines) == 0 && len(events) == 0 && len(bookings) == 0 {
		sb.WriteString("День свободен 🎉\n")
	}

	return sb.String(), nil
}
