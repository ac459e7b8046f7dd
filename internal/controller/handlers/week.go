package handlers

import (
	"bytes"
	"context"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/pr-poehali-dev/telegram-diary-bot/internal/availability"
	"github.com/pr-poehali-dev/telegram-diary-bot/internal/controller/render"
)

// HandleWeek обрабатывает команду /week:
// отправляет расписание текущей недели картинкой
func (h *Handlers) HandleWeek(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireAccess(ctx, b, update); !ok {
		return
	}
	chatID := update.Message.Chat.ID

	weekStart := render.WeekStart(time.Now())

	itemsByDay, err := h.collectWeekItems(ctx, weekStart)
	if err != nil {
		h.logger.Error("Failed to collect week data", zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось собрать расписание недели. Попробуйте позже.")
		return
	}

	imageData, err := render.WeekImage(weekStart, itemsByDay)
	if err != nil {
		h.logger.Error("Failed to render week image", zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось отрисовать расписание. Попробуйте позже.")
		return
	}

	_, err = b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:  chatID,
		Photo:   &models.InputFileUpload{Filename: "week.png", Data: bytes.NewReader(imageData)},
		Caption: "🗓 Расписание недели",
	})
	if err != nil {
		h.logger.Error("Failed to send week image", zap.Error(err))
	}
}

// collectWeekItems собирает учёбу, мероприятия и записи по дням недели
func (h *Handlers) collectWeekItems(ctx context.Context, weekStart time.Time) (map[string][]render.DayItem, error) {
	itemsByDay := make(map[string][]render.DayItem)

	studyPeriods, err := h.scheduleService.GetWeekSchedule(ctx, h.ownerID)
	if err != nil {
		return nil, err
	}
	studyByDay := make(map[string][]render.DayItem)
	for _, period := range studyPeriods {
		studyByDay[period.DayOfWeek] = append(studyByDay[period.DayOfWeek], render.DayItem{
			StartMinutes: period.StartMinutes,
			EndMinutes:   period.EndMinutes,
			Label:        "Учёба",
			Kind:         render.KindStudy,
		})
	}

	for dayOffset := 0; dayOffset < 7; dayOffset++ {
		date := weekStart.AddDate(0, 0, dayOffset)
		dateKey := date.Format("2006-01-02")

		itemsByDay[dateKey] = append(itemsByDay[dateKey], studyByDay[availability.WeekdayName(date)]...)

		events, err := h.eventService.GetEventsForDate(ctx, h.ownerID, date)
		if err != nil {
			return nil, err
		}
		for _, event := range events {
			itemsByDay[dateKey] = append(itemsByDay[dateKey], render.DayItem{
				StartMinutes: event.StartMinutes,
				EndMinutes:   event.EndMinutes,
				Label:        event.Title,
				Kind:         render.KindEvent,
			})
		}

		bookings, err := h.bookingService.GetBookingsForDate(ctx, h.ownerID, date)
		if err != nil {
			return nil, err
		}
		for _, booking := range bookings {
			if !booking.IsActive() {
				continue
			}
			itemsByDay[dateKey] = append(itemsByDay[dateKey], render.DayItem{
				StartMinutes: booking.StartMinutes,
				EndMinutes:   booking.EndMinutes,
				Label:        booking.ClientName,
				Kind:         render.KindBooking,
			})
		}
	}

	return itemsByDay, nil
}
