package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/pr-poehali-dev/telegram-diary-bot/internal/availability"
	"github.com/pr-poehali-dev/telegram-diary-bot/internal/formatting"
	"github.com/pr-poehali-dev/telegram-diary-bot/internal/model"
)

// HandleStudySet обрабатывает команду /study_set ДЕНЬ НАЧАЛО КОНЕЦ
func (h *Handlers) HandleStudySet(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireOwner(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	args := strings.Fields(update.Message.Text)
	if len(args) != 4 {
		h.sendText(ctx, b, chatID, "Использование: /study_set ДЕНЬ НАЧАЛО КОНЕЦ\nНапример: /study_set monday 09:00 13:30")
		return
	}

	dayOfWeek := strings.ToLower(args[1])
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

	period := &model.StudyPeriod{
		OwnerID:      h.ownerID,
		DayOfWeek:    dayOfWeek,
		StartMinutes: startMinutes,
		EndMinutes:   endMinutes,
	}

	if err := h.scheduleService.SetStudyPeriod(ctx, period); err != nil {
		h.logger.Error("Failed to set study period", zap.String("day", dayOfWeek), zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось сохранить. Проверьте день недели (monday..sunday) и время.")
		return
	}

	h.sendText(ctx, b, chatID, fmt.Sprintf("🎓 Учёба: %s %s.",
		formatting.WeekdayNameRu(dayOfWeek),
		formatting.FormatMinutesRange(startMinutes, endMinutes)))
}

// HandleStudyClear обрабатывает команду /study_clear ДЕНЬ
func (h *Handlers) HandleStudyClear(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireOwner(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	args := strings.Fields(update.Message.Text)
	if len(args) != 2 {
		h.sendText(ctx, b, chatID, "Использование: /study_clear ДЕНЬ\nНапример: /study_clear monday")
		return
	}

	dayOfWeek := strings.ToLower(args[1])
	if err := h.scheduleService.ClearStudyDay(ctx, h.ownerID, dayOfWeek); err != nil {
		h.logger.Error("Failed to clear study day", zap.String("day", dayOfWeek), zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось очистить. Проверьте день недели (monday..sunday).")
		return
	}

	h.sendText(ctx, b, chatID, fmt.Sprintf("🗑 Учёба в %s убрана.", formatting.WeekdayNameRu(dayOfWeek)))
}

// HandleStudyView обрабатывает команду /study_view
func (h *Handlers) HandleStudyView(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireAccess(ctx, b, update); !ok {
		return
	}
	chatID := update.Message.Chat.ID

	periods, err := h.scheduleService.GetWeekSchedule(ctx, h.ownerID)
	if err != nil {
		h.logger.Error("Failed to load week schedule", zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось загрузить расписание. Попробуйте позже.")
		return
	}

	byDay := make(map[string][]string)
	for _, period := range periods {
		byDay[period.DayOfWeek] = append(byDay[period.DayOfWeek],
			formatting.FormatMinutesRange(period.StartMinutes, period.EndMinutes))
	}

	var sb strings.Builder
	sb.WriteString("🎓 <b>Учебное расписание:</b>\n\n")
	for _, day := range model.Weekdays {
		ranges, ok := byDay[day]
		if !ok {
			sb.WriteString(fmt.Sprintf("%s: -\n", formatting.WeekdayNameRu(day)))
			continue
		}
		sb.WriteString(fmt.Sprintf("%s: %s\n", formatting.WeekdayNameRu(day), strings.Join(ranges, ", ")))
	}

	h.sendHTML(ctx, b, chatID, sb.String())
}

// HandleBlockDate обрабатывает команду /block_date ДАТА.
// Активные записи на эту дату отменяются.
func (h *Handlers) HandleBlockDate(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireOwner(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	args := strings.Fields(update.Message.Text)
	if len(args) != 2 {
		h.sendText(ctx, b, chatID, "Использование: /block_date ДАТА\nНапример: /block_date 2025-12-31")
		return
	}

	date, err := time.ParseInLocation("2006-01-02", args[1], time.Local)
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ Неверный формат даты. Ожидается ГГГГ-ММ-ДД.")
		return
	}

	cancelled, err := h.scheduleService.BlockDate(ctx, h.ownerID, date)
	if err != nil {
		h.logger.Error("Failed to block date", zap.Time("date", date), zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось заблокировать дату. Попробуйте позже.")
		return
	}

	text := fmt.Sprintf("🚫 %s заблокирована.", formatting.FormatDate(date))
	if cancelled > 0 {
		text += fmt.Sprintf(" Отменено записей: %d.", cancelled)
	}
	h.sendText(ctx, b, chatID, text)
}

// HandleUnblockDate обрабатывает команду /unblock_date ID
func (h *Handlers) HandleUnblockDate(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireOwner(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	args := strings.Fields(update.Message.Text)
	if len(args) != 2 {
		h.sendText(ctx, b, chatID, "Использование: /unblock_date ID\nСписок: /blocked_list")
		return
	}

	blockID, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ ID блокировки должен быть числом.")
		return
	}

	if err := h.scheduleService.UnblockDate(ctx, blockID, h.ownerID); err != nil {
		h.logger.Error("Failed to unblock date", zap.Int64("block_id", blockID), zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось снять блокировку. Проверьте ID.")
		return
	}

	h.sendText(ctx, b, chatID, fmt.Sprintf("✅ Блокировка #%d снята.", blockID))
}

// HandleBlockedList обрабатывает команду /blocked_list
func (h *Handlers) HandleBlockedList(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireAccess(ctx, b, update); !ok {
		return
	}
	chatID := update.Message.Chat.ID

	blocked, err := h.scheduleService.GetBlockedDates(ctx, h.ownerID, time.Now())
	if err != nil {
		h.logger.Error("Failed to load blocked dates", zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось загрузить список. Попробуйте позже.")
		return
	}

	if len(blocked) == 0 {
		h.sendText(ctx, b, chatID, "📭 Заблокированных дат нет.")
		return
	}

	var sb strings.Builder
	sb.WriteString("🚫 <b>Заблокированные даты:</b>\n\n")
	for _, entry := range blocked {
		sb.WriteString(fmt.Sprintf("#%d %s\n", entry.ID, formatting.FormatDate(entry.Date)))
	}
	sb.WriteString("\nСнять блокировку: /unblock_date ID")

	h.sendHTML(ctx, b, chatID, sb.String())
}
