package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pr-poehali-dev/telegram-diary-bot/internal/availability"
	"github.com/pr-poehali-dev/telegram-diary-bot/internal/model"
	"github.com/pr-poehali-dev/telegram-diary-bot/internal/repository"
)

// BookingNotifier уведомляет владельца о событиях записи
type BookingNotifier interface {
	NotifyNewBooking(ctx context.Context, booking *model.Booking) error
}

type BookingService struct {
	engine      *availability.Engine
	bookingRepo *repository.BookingRepository
	serviceRepo *repository.ServiceRepository
	clientRepo  *repository.ClientRepository
	notifier    BookingNotifier
	logger      *zap.Logger
}

func NewBookingService(
	engine *availability.Engine,
	bookingRepo *repository.BookingRepository,
	serviceRepo *repository.ServiceRepository,
	clientRepo *repository.ClientRepository,
	notifier BookingNotifier,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		engine:      engine,
		bookingRepo: bookingRepo,
		serviceRepo: serviceRepo,
		clientRepo:  clientRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// GetAvailableSlots вычисляет доступные слоты записи на дату
func (s *BookingService) GetAvailableSlots(ctx context.Context, ownerID int64, date time.Time, serviceID int64, currentTime string) (*availability.Result, error) {
	return s.engine.ComputeAvailableSlots(ctx, ownerID, date, serviceID, currentTime)
}

// CreateBooking создаёт запись клиента на услугу. Запрошенное время должно
// входить в актуальный список доступных слотов.
func (s *BookingService) CreateBooking(ctx context.Context, ownerID, clientID, serviceID int64, date time.Time, startTime string) (*model.Booking, error) {
	svc, err := s.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("get service: %w", err)
	}
	if svc == nil {
		return nil, availability.ErrServiceNotFound
	}
	if !svc.Active {
		return nil, fmt.Errorf("service is not active")
	}

	result, err := s.engine.ComputeAvailableSlots(ctx, ownerID, date, serviceID, "")
	if err != nil {
		return nil, fmt.Errorf("compute available slots: %w", err)
	}
	if result.Blocked {
		return nil, fmt.Errorf("date is blocked")
	}

	offered := false
	for _, slot := range result.Slots {
		if slot.Time == startTime {
			offered = true
			break
		}
	}
	if !offered {
		return nil, fmt.Errorf("slot %s is not available", startTime)
	}

	startMinutes, err := availability.ParseTimeOfDay(startTime)
	if err != nil {
		return nil, fmt.Errorf("parse start time: %w", err)
	}

	booking := &model.Booking{
		PublicCode:   uuid.New(),
		ClientID:     clientID,
		ServiceID:    serviceID,
		OwnerID:      ownerID,
		Date:         date,
		StartMinutes: startMinutes,
		EndMinutes:   startMinutes + svc.DurationMinutes,
		Status:       model.BookingStatusPending,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	booking.ServiceName = svc.Name
	booking.Price = svc.Price
	if client, err := s.clientRepo.GetByID(ctx, clientID); err == nil && client != nil {
		booking.ClientName = client.Name
		booking.ClientPhone = client.Phone
	}

	s.logger.Info("Booking created",
		zap.Int64("booking_id", booking.ID),
		zap.String("public_code", booking.PublicCode.String()),
		zap.Int64("owner_id", ownerID),
		zap.String("date", date.Format("2006-01-02")),
		zap.String("time", startTime),
	)

	// Уведомление не должно ронять создание записи
	if s.notifier != nil {
		if err := s.notifier.NotifyNewBooking(ctx, booking); err != nil {
			s.logger.Warn("Failed to notify owner about new booking",
				zap.Int64("booking_id", booking.ID),
				zap.Error(err),
			)
		}
	}

	return booking, nil
}

// GetClients возвращает клиентов владельца, самые частые первыми
func (s *BookingService) GetClients(ctx context.Context, ownerID int64) ([]*model.Client, error) {
	return s.clientRepo.GetByOwner(ctx, ownerID)
}

// ConfirmBooking подтверждает запись и возвращает её актуальное состояние
func (s *BookingService) ConfirmBooking(ctx context.Context, bookingID, ownerID int64) (*model.Booking, error) {
	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, ownerID, model.BookingStatusConfirmed); err != nil {
		return nil, err
	}

	s.logger.Info("Booking confirmed",
		zap.Int64("booking_id", bookingID),
		zap.Int64("owner_id", ownerID),
	)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %d not found after confirm", bookingID)
	}
	return booking, nil
}

// CancelBooking отменяет запись
func (s *BookingService) CancelBooking(ctx context.Context, bookingID, ownerID int64) error {
	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, ownerID, model.BookingStatusCancelled); err != nil {
		return err
	}

	s.logger.Info("Booking cancelled",
		zap.Int64("booking_id", bookingID),
		zap.Int64("owner_id", ownerID),
	)
	return nil
}

// GetBookingsForDate получает записи владельца на дату
func (s *BookingService) GetBookingsForDate(ctx context.Context, ownerID int64, date time.Time) ([]*model.Booking, error) {
	return s.bookingRepo.GetByDate(ctx, ownerID, date)
}

// GetPendingBookings получает записи, ожидающие подтверждения
func (s *BookingService) GetPendingBookings(ctx context.Context, ownerID int64) ([]*model.Booking, error) {
	return s.bookingRepo.GetPendingByOwner(ctx, ownerID, 20)
}

// CompletePastBookings завершает подтверждённые записи прошедших дат
// и учитывает визиты клиентов
func (s *BookingService) CompletePastBookings(ctx context.Context, ownerID int64, today time.Time) error {
	clientIDs, err := s.bookingRepo.CompleteBefore(ctx, ownerID, today)
	if err != nil {
		return err
	}

	for _, clientID := range clientIDs {
		if err := s.clientRepo.RecordVisit(ctx, clientID); err != nil {
			s.logger.Warn("Failed to record client visit",
				zap.Int64("client_id", clientID),
				zap.Error(err),
			)
		}
	}

	if len(clientIDs) > 0 {
		s.logger.Info("Past bookings completed",
			zap.Int64("owner_id", ownerID),
			zap.Int("count", len(clientIDs)),
		)
	}

	return nil
}
