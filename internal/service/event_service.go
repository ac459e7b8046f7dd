package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pr-poehali-dev/telegram-diary-bot/internal/availability"
	"github.com/pr-poehali-dev/telegram-diary-bot/internal/model"
	"github.com/pr-poehali-dev/telegram-diary-bot/internal/repository"
)

// EventConflictError возвращается, когда мероприятие пересекается с активными
// записями клиентов и создание не было принудительным
type EventConflictError struct {
	Bookings []*model.Booking
}

func (e *EventConflictError) Error() string {
	return fmt.Sprintf("event conflicts with %d active bookings", len(e.Bookings))
}

type EventService struct {
	eventRepo   *repository.EventRepository
	bookingRepo *repository.BookingRepository
	studyRepo   *repository.StudyPeriodRepository
	logger      *zap.Logger
}

func NewEventService(
	eventRepo *repository.EventRepository,
	bookingRepo *repository.BookingRepository,
	studyRepo *repository.StudyPeriodRepository,
	logger *zap.Logger,
) *EventService {
	return &EventService{
		eventRepo:   eventRepo,
		bookingRepo: bookingRepo,
		studyRepo:   studyRepo,
		logger:      logger,
	}
}

// AddEvent создаёт разовое мероприятие.
//
// Пересечение с учёбой не препятствие: это время и так вырезается из
// доступности. Пересечение с активными записями клиентов возвращает
// EventConflictError; при force такие записи отменяются.
func (s *EventService) AddEvent(ctx context.Context, event *model.CalendarEvent, force bool) error {
	if event.StartMinutes >= event.EndMinutes {
		return fmt.Errorf("event start must be before end")
	}

	bookings, err := s.bookingRepo.GetByDate(ctx, event.OwnerID, event.Date)
	if err != nil {
		return fmt.Errorf("get bookings for conflict check: %w", err)
	}

	eventInterval := availability.TimeInterval{Start: event.StartMinutes, End: event.EndMinutes}

	var conflicts []*model.Booking
	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}
		bookingInterval := availability.TimeInterval{Start: booking.StartMinutes, End: booking.EndMinutes}
		if eventInterval.Overlaps(bookingInterval) {
			conflicts = append(conflicts, booking)
		}
	}

	if len(conflicts) > 0 {
		if !force {
			return &EventConflictError{Bookings: conflicts}
		}

		cancelled, err := s.bookingRepo.CancelOverlapping(ctx, event.OwnerID, event.Date, event.StartMinutes, event.EndMinutes)
		if err != nil {
			return err
		}
		s.logger.Warn("Bookings cancelled by force-created event",
			zap.Int64("owner_id", event.OwnerID),
			zap.String("date", event.Date.Format("2006-01-02")),
			zap.Int64("cancelled", cancelled),
		)
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return err
	}

	s.logger.Info("Event created",
		zap.Int64("event_id", event.ID),
		zap.Int64("owner_id", event.OwnerID),
		zap.String("title", event.Title),
		zap.String("date", event.Date.Format("2006-01-02")),
	)

	return nil
}

// StudyOverlap возвращает периоды учёбы дня, пересекающиеся с интервалом.
// Используется для предупреждения владельца при создании мероприятия.
func (s *EventService) StudyOverlap(ctx context.Context, ownerID int64, date time.Time, startMinutes, endMinutes int) ([]availability.TimeInterval, error) {
	periods, err := s.studyRepo.GetIntervalsByWeekday(ctx, ownerID, availability.WeekdayName(date))
	if err != nil {
		return nil, err
	}

	interval := availability.TimeInterval{Start: startMinutes, End: endMinutes}

	var overlapping []availability.TimeInterval
	for _, period := range periods {
		if interval.Overlaps(period) {
			overlapping = append(overlapping, period)
		}
	}

	return overlapping, nil
}

// DeleteEvent удаляет мероприятие
func (s *EventService) DeleteEvent(ctx context.Context, eventID, ownerID int64) error {
	if err := s.eventRepo.Delete(ctx, eventID, ownerID); err != nil {
		return err
	}

	s.logger.Info("Event deleted",
		zap.Int64("event_id", eventID),
		zap.Int64("owner_id", ownerID),
	)
	return nil
}

// GetEventsForDate получает мероприятия на дату
func (s *EventService) GetEventsForDate(ctx context.Context, ownerID int64, date time.Time) ([]*model.CalendarEvent, error) {
	return s.eventRepo.GetByDate(ctx, ownerID, date)
}

// GetUpcomingEvents получает предстоящие мероприятия
func (s *EventService) GetUpcomingEvents(ctx context.Context, ownerID int64, from time.Time) ([]*model.CalendarEvent, error) {
	return s.eventRepo.GetUpcoming(ctx, ownerID, from, 20)
}
