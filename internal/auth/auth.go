package auth

import (
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/pr-poehali-dev/telegram-diary-bot/internal/model"
)

const (
	maxAttempts   = 5
	attemptWindow = 5 * time.Minute
)

var (
	// ErrRateLimited - слишком много попыток входа за окно
	ErrRateLimited = errors.New("too many attempts")
	// ErrAccessDenied - Telegram ID не входит в список разрешённых
	ErrAccessDenied = errors.New("access denied")
)

// AllowList - разрешённые Telegram ID из окружения
type AllowList struct {
	AdminID int64
	OwnerID int64
	GroupID int64
}

// Service авторизует пользователей по Telegram ID без обращений к БД
type Service struct {
	allowList AllowList
	attempts  AttemptStore
	logger    *zap.Logger
}

func NewService(allowList AllowList, attempts AttemptStore, logger *zap.Logger) *Service {
	return &Service{
		allowList: allowList,
		attempts:  attempts,
		logger:    logger,
	}
}

// Authorize определяет роль по Telegram ID. Попытки ограничены:
// не более 5 за 5 минут на один ID.
func (s *Service) Authorize(telegramID int64) (model.UserRole, error) {
	key := strconv.FormatInt(telegramID, 10)

	if !s.attempts.Allow(key, maxAttempts, attemptWindow) {
		s.logger.Warn("Auth rate limited", zap.Int64("telegram_id", telegramID))
		return "", ErrRateLimited
	}

	switch {
	case s.allowList.AdminID != 0 && telegramID == s.allowList.AdminID:
		return model.UserRoleAdmin, nil
	case s.allowList.OwnerID != 0 && telegramID == s.allowList.OwnerID:
		return model.UserRoleOwner, nil
	case s.allowList.GroupID != 0 && telegramID == s.allowList.GroupID:
		// Сообщения из рабочей группы равносильны владельцу
		return model.UserRoleOwner, nil
	}

	s.logger.Warn("Auth denied", zap.Int64("telegram_id", telegramID))
	return "", ErrAccessDenied
}

// IsAllowed сообщает, имеет ли Telegram ID доступ к боту
func (s *Service) IsAllowed(telegramID int64) bool {
	_, err := s.Authorize(telegramID)
	return err == nil
}
