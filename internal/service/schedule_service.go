package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pr-poehali-dev/telegram-diary-bot/internal/model"
	"github.com/pr-poehali-dev/telegram-diary-bot/internal/repository"
)

// ScheduleService управляет недельным расписанием учёбы и блокировками дат
type ScheduleService struct {
	studyRepo   *repository.StudyPeriodRepository
	blockedRepo *repository.BlockedDateRepository
	bookingRepo *repository.BookingRepository
	logger      *zap.Logger
}

func NewScheduleService(
	studyRepo *repository.StudyPeriodRepository,
	blockedRepo *repository.BlockedDateRepository,
	bookingRepo *repository.BookingRepository,
	logger *zap.Logger,
) *ScheduleService {
	return &ScheduleService{
		studyRepo:   studyRepo,
		blockedRepo: blockedRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// SetStudyPeriod добавляет период учёбы на день недели
func (s *ScheduleService) SetStudyPeriod(ctx context.Context, period *model.StudyPeriod) error {
	if !isValidWeekday(period.DayOfWeek) {
		return fmt.Errorf("unknown day of week: %s", period.DayOfWeek)
	}
	if period.StartMinutes >= period.EndMinutes {
		return fmt.Errorf("study period start must be before end")
	}

	if err := s.studyRepo.Create(ctx, period); err != nil {
		return err
	}

	s.logger.Info("Study period set",
		zap.Int64("owner_id", period.OwnerID),
		zap.String("day", period.DayOfWeek),
	)
	return nil
}

// ClearStudyDay удаляет периоды учёбы на день недели
func (s *ScheduleService) ClearStudyDay(ctx context.Context, ownerID int64, dayOfWeek string) error {
	if !isValidWeekday(dayOfWeek) {
		return fmt.Errorf("unknown day of week: %s", dayOfWeek)
	}

	deleted, err := s.studyRepo.DeleteByWeekday(ctx, ownerID, dayOfWeek)
	if err != nil {
		return err
	}

	s.logger.Info("Study day cleared",
		zap.Int64("owner_id", ownerID),
		zap.String("day", dayOfWeek),
		zap.Int64("deleted", deleted),
	)
	return nil
}

// GetWeekSchedule получает недельное расписание учёбы
func (s *ScheduleService) GetWeekSchedule(ctx context.Context, ownerID int64) ([]*model.StudyPeriod, error) {
	return s.studyRepo.GetWeek(ctx, ownerID)
}

// GetStudyDay получает периоды учёбы одного дня недели
func (s *ScheduleService) GetStudyDay(ctx context.Context, ownerID int64, dayOfWeek string) ([]*model.StudyPeriod, error) {
	return s.studyRepo.GetByWeekday(ctx, ownerID, dayOfWeek)
}

// BlockDate блокирует дату для записи. Активные записи этого дня отменяются.
func (s *ScheduleService) BlockDate(ctx context.Context, ownerID int64, date time.Time) (int64, error) {
	cancelled, err := s.bookingRepo.CancelByDate(ctx, ownerID, date)
	if err != nil {
		return 0, err
	}

	blocked := &model.BlockedDate{OwnerID: ownerID, Date: date}
	if err := s.blockedRepo.Create(ctx, blocked); err != nil {
		return 0, err
	}

	s.logger.Info("Date blocked",
		zap.Int64("owner_id", ownerID),
		zap.String("date", date.Format("2006-01-02")),
		zap.Int64("cancelled_bookings", cancelled),
	)

	return cancelled, nil
}

// UnblockDate снимает блокировку по её ID
func (s *ScheduleService) UnblockDate(ctx context.Context, blockID, ownerID int64) error {
	if err := s.blockedRepo.Delete(ctx, blockID, ownerID); err != nil {
		return err
	}

	s.logger.Info("Date unblocked",
		zap.Int64("block_id", blockID),
		zap.Int64("owner_id", ownerID),
	)
	return nil
}

// GetBlockedDates получает предстоящие заблокированные даты
func (s *ScheduleService) GetBlockedDates(ctx context.Context, ownerID int64, from time.Time) ([]*model.BlockedDate, error) {
	return s.blockedRepo.GetUpcoming(ctx, ownerID, from)
}

// IsDateBlocked проверяет блокировку даты
func (s *ScheduleService) IsDateBlocked(ctx context.Context, ownerID int64, date time.Time) (bool, error) {
	return s.blockedRepo.Exists(ctx, ownerID, date)
}

func isValidWeekday(day string) bool {
	for _, weekday := range model.Weekdays {
		if weekday == day {
			return true
		}
	}
	return false
}
