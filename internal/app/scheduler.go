package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pr-poehali-dev/telegram-diary-bot/internal/formatting"
	"github.com/pr-poehali-dev/telegram-diary-bot/internal/notify"
	"github.com/pr-poehali-dev/telegram-diary-bot/internal/service"
)

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	bookingService *service.BookingService
	notifier       *notify.Notifier
	ownerID        int64
	logger         *zap.Logger
	stopChan       chan struct{}
}

// NewScheduler создаёт новый планировщик
func NewScheduler(bookingService *service.BookingService, notifier *notify.Notifier, ownerID int64, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		bookingService: bookingService,
		notifier:       notifier,
		ownerID:        ownerID,
		logger:         logger,
		stopChan:       make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler")

	go s.runDailyTask(ctx)
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

// runDailyTask раз в сутки закрывает прошедшие записи и шлёт владельцу
// дайджест на день
func (s *Scheduler) runDailyTask(ctx context.Context) {
	// Первый запуск сразу при старте
	s.runOnce(ctx)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runOnce(ctx)
		case <-s.stopChan:
			s.logger.Info("Daily task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Daily task cancelled")
			return
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	today := time.Now()

	if err := s.bookingService.CompletePastBookings(ctx, s.ownerID, today); err != nil {
		s.logger.Error("Failed to complete past bookings", zap.Error(err))
	}

	digest, err := s.buildDigest(ctx, today)
	if err != nil {
		s.logger.Error("Failed to build daily digest", zap.Error(err))
		return
	}

	if err := s.notifier.SendDigest(ctx, digest); err != nil {
		s.logger.Error("Failed to send daily digest", zap.Error(err))
		return
	}

	s.logger.Info("Daily task completed")
}

// buildDigest собирает текст дайджеста на дату
func (s *Scheduler) buildDigest(ctx context.Context, date time.Time) (string, error) {
	bookings, err := s.bookingService.GetBookingsForDate(ctx, s.ownerID, date)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("☀️ <b>Записи на %s:</b>\n\n", formatting.FormatDate(date)))

	active := 0
	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}
		active++
		sb.WriteString(fmt.Sprintf("%s %s %s - %s\n",
			formatting.StatusEmoji(booking.Status),
			formatting.FormatMinutesRange(booking.StartMinutes, booking.EndMinutes),
			booking.ServiceName,
			booking.ClientName,
		))
	}

	if active == 0 {
		sb.WriteString("Записей нет, день свободен 🎉")
	}

	return sb.String(), nil
}
