package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/pr-poehali-dev/telegram-diary-bot/internal/availability"
	"github.com/pr-poehali-dev/telegram-diary-bot/internal/model"
	"github.com/pr-poehali-dev/telegram-diary-bot/internal/repository"
)

// SettingsService управляет настройками владельца
type SettingsService struct {
	settingsRepo *repository.SettingsRepository
	logger       *zap.Logger
}

func NewSettingsService(settingsRepo *repository.SettingsRepository, logger *zap.Logger) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo, logger: logger}
}

// GetSettings возвращает настройки владельца с применёнными умолчаниями
func (s *SettingsService) GetSettings(ctx context.Context, ownerID int64) (availability.Settings, error) {
	raw, err := s.settingsRepo.GetAll(ctx, ownerID)
	if err != nil {
		return availability.Settings{}, err
	}
	return parseOwnerSettings(raw), nil
}

// UpdateWorkingHours задаёт рабочее окно владельца
func (s *SettingsService) UpdateWorkingHours(ctx context.Context, ownerID int64, workStart, workEnd string) error {
	startMinutes, err := availability.ParseTimeOfDay(workStart)
	if err != nil {
		return fmt.Errorf("invalid work start: %w", err)
	}
	endMinutes, err := availability.ParseTimeOfDay(workEnd)
	if err != nil {
		return fmt.Errorf("invalid work end: %w", err)
	}
	if startMinutes >= endMinutes {
		return fmt.Errorf("work start must be before work end")
	}

	if err := s.settingsRepo.Set(ctx, ownerID, model.SettingWorkStart, workStart); err != nil {
		return err
	}
	if err := s.settingsRepo.Set(ctx, ownerID, model.SettingWorkEnd, workEnd); err != nil {
		return err
	}

	s.logger.Info("Working hours updated",
		zap.Int64("owner_id", ownerID),
		zap.String("work_start", workStart),
		zap.String("work_end", workEnd),
	)
	return nil
}

// UpdatePadding задаёт подготовку и буфер в минутах
func (s *SettingsService) UpdatePadding(ctx context.Context, ownerID int64, prepMinutes, bufferMinutes int) error {
	if prepMinutes < 0 || bufferMinutes < 0 {
		return fmt.Errorf("padding must not be negative")
	}

	if err := s.settingsRepo.Set(ctx, ownerID, model.SettingPrepTime, strconv.Itoa(prepMinutes)); err != nil {
		return err
	}
	if err := s.settingsRepo.Set(ctx, ownerID, model.SettingBufferTime, strconv.Itoa(bufferMinutes)); err != nil {
		return err
	}

	s.logger.Info("Padding updated",
		zap.Int64("owner_id", ownerID),
		zap.Int("prep", prepMinutes),
		zap.Int("buffer", bufferMinutes),
	)
	return nil
}

// SetWorkPriority переключает приоритет рабочих часов над учёбой
func (s *SettingsService) SetWorkPriority(ctx context.Context, ownerID int64, enabled bool) error {
	if err := s.settingsRepo.Set(ctx, ownerID, model.SettingWorkPriority, strconv.FormatBool(enabled)); err != nil {
		return err
	}

	s.logger.Info("Work priority updated",
		zap.Int64("owner_id", ownerID),
		zap.Bool("enabled", enabled),
	)
	return nil
}
