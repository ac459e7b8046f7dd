package service

import (
	"context"
	"strconv"
	"time"

	"github.com/pr-poehali-dev/telegram-diary-bot/internal/availability"
	"github.com/pr-poehali-dev/telegram-diary-bot/internal/model"
	"github.com/pr-poehali-dev/telegram-diary-bot/internal/repository"
)

// AvailabilitySource собирает снимок данных дня для движка доступности.
// Все строковые времена из БД переводятся в минуты здесь, дальше по конвейеру
// строки не разбираются.
type AvailabilitySource struct {
	serviceRepo  *repository.ServiceRepository
	settingsRepo *repository.SettingsRepository
	studyRepo    *repository.StudyPeriodRepository
	eventRepo    *repository.EventRepository
	bookingRepo  *repository.BookingRepository
	blockedRepo  *repository.BlockedDateRepository
}

func NewAvailabilitySource(
	serviceRepo *repository.ServiceRepository,
	settingsRepo *repository.SettingsRepository,
	studyRepo *repository.StudyPeriodRepository,
	eventRepo *repository.EventRepository,
	bookingRepo *repository.BookingRepository,
	blockedRepo *repository.BlockedDateRepository,
) *AvailabilitySource {
	return &AvailabilitySource{
		serviceRepo:  serviceRepo,
		settingsRepo: settingsRepo,
		studyRepo:    studyRepo,
		eventRepo:    eventRepo,
		bookingRepo:  bookingRepo,
		blockedRepo:  blockedRepo,
	}
}

// IsDateBlocked проверяет административную блокировку даты
func (s *AvailabilitySource) IsDateBlocked(ctx context.Context, ownerID int64, date time.Time) (bool, error) {
	return s.blockedRepo.Exists(ctx, ownerID, date)
}

// ServiceDuration возвращает длительность услуги в минутах
func (s *AvailabilitySource) ServiceDuration(ctx context.Context, serviceID int64) (int, error) {
	svc, err := s.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		return 0, err
	}
	if svc == nil {
		return 0, availability.ErrServiceNotFound
	}
	return svc.DurationMinutes, nil
}

// OwnerSettings возвращает настройки владельца с значениями по умолчанию
func (s *AvailabilitySource) OwnerSettings(ctx context.Context, ownerID int64) (availability.Settings, error) {
	raw, err := s.settingsRepo.GetAll(ctx, ownerID)
	if err != nil {
		return availability.Settings{}, err
	}
	return parseOwnerSettings(raw), nil
}

// StudyPeriods возвращает периоды учёбы на день недели
func (s *AvailabilitySource) StudyPeriods(ctx context.Context, ownerID int64, weekday string) ([]availability.TimeInterval, error) {
	return s.studyRepo.GetIntervalsByWeekday(ctx, ownerID, weekday)
}

// Events возвращает интервалы мероприятий на дату
func (s *AvailabilitySource) Events(ctx context.Context, ownerID int64, date time.Time) ([]availability.TimeInterval, error) {
	return s.eventRepo.GetIntervalsByDate(ctx, ownerID, date)
}

// ActiveBookings возвращает интервалы неотменённых записей на дату
func (s *AvailabilitySource) ActiveBookings(ctx context.Context, ownerID int64, date time.Time) ([]availability.TimeInterval, error) {
	return s.bookingRepo.GetActiveIntervalsByDate(ctx, ownerID, date)
}

// parseOwnerSettings преобразует пары ключ-значение из settings в настройки
// движка. Отсутствующие и некорректные значения заменяются умолчаниями:
// рабочее окно 10:00-20:00, нулевые подготовка и буфер, приоритет учёбы.
func parseOwnerSettings(raw map[string]string) availability.Settings {
	settings := availability.Settings{
		PrepTime:   model.DefaultPrepTime,
		BufferTime: model.DefaultBufferTime,
	}

	settings.WorkStart = parseTimeSetting(raw[model.SettingWorkStart], model.DefaultWorkStart)
	settings.WorkEnd = parseTimeSetting(raw[model.SettingWorkEnd], model.DefaultWorkEnd)

	if v, err := strconv.Atoi(raw[model.SettingPrepTime]); err == nil && v >= 0 {
		settings.PrepTime = v
	}
	if v, err := strconv.Atoi(raw[model.SettingBufferTime]); err == nil && v >= 0 {
		settings.BufferTime = v
	}

	settings.WorkPriority = raw[model.SettingWorkPriority] == "true"

	return settings
}

func parseTimeSetting(value, fallback string) int {
	if minutes, err := availability.ParseTimeOfDay(value); err == nil {
		return minutes
	}
	minutes, _ := availability.ParseTimeOfDay(fallback)
	return minutes
}
