package handlers

import (
	"context"
	"errors"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/pr-poehali-dev/telegram-diary-bot/internal/auth"
	"github.com/pr-poehali-dev/telegram-diary-bot/internal/model"
)

// requireAccess проверяет что пользователь есть в списке доступа.
// Возвращает роль и true если OK, пустую роль и false если нет.
func (h *Handlers) requireAccess(ctx context.Context, b *bot.Bot, update *models.Update) (model.UserRole, bool) {
	if update.Message == nil {
		return "", false
	}

	telegramID := update.Message.From.ID
	role, err := h.authService.Authorize(telegramID)

	if errors.Is(err, auth.ErrRateLimited) {
		h.logger.Warn("Rate limited user", zap.Int64("telegram_id", telegramID))
		h.sendError(ctx, b, update.Message.Chat.ID, "⏳ Слишком много попыток. Попробуйте через несколько минут.")
		return "", false
	}
	if err != nil {
		h.logger.Warn("Access denied", zap.Int64("telegram_id", telegramID))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ У вас нет доступа к этому боту.")
		return "", false
	}

	return role, true
}

// requireOwner проверяет что пользователь является владельцем или админом
func (h *Handlers) requireOwner(ctx context.Context, b *bot.Bot, update *models.Update) bool {
	role, ok := h.requireAccess(ctx, b, update)
	if !ok {
		return false
	}

	if role != model.UserRoleOwner && role != model.UserRoleAdmin {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Эта команда доступна только владельцу.")
		return false
	}

	return true
}

// sendError отправляет сообщение об ошибке пользователю
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send error message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// sendText отправляет обычное текстовое сообщение
func (h *Handlers) sendText(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// sendHTML отправляет сообщение с HTML-разметкой
func (h *Handlers) sendHTML(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		h.logger.Error("Failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
