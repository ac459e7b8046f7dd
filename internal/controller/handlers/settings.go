package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/pr-poehali-dev/telegram-diary-bot/internal/formatting"
)

// HandleSettings обрабатывает команду /settings
func (h *Handlers) HandleSettings(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireOwner(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	settings, err := h.settingsService.GetSettings(ctx, h.ownerID)
	if err != nil {
		h.logger.Error("Failed to load settings", zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось загрузить настройки. Попробуйте позже.")
		return
	}

	priority := "учёба важнее работы"
	if settings.WorkPriority {
		priority = "работа важнее учёбы"
	}

	text := fmt.Sprintf(
		"⚙️ <b>Настройки:</b>\n\n"+
			"🕐 Рабочие часы: %s\n"+
			"🔧 Подготовка: %s\n"+
			"🧹 Буфер: %s\n"+
			"⚖️ Приоритет: %s\n\n"+
			"Изменить:\n"+
			"/set_hours НАЧАЛО КОНЕЦ\n"+
			"/set_padding ПОДГОТОВКА БУФЕР\n"+
			"/work_priority on|off",
		formatting.FormatMinutesRange(settings.WorkStart, settings.WorkEnd),
		formatting.FormatDuration(settings.PrepTime),
		formatting.FormatDuration(settings.BufferTime),
		priority,
	)

	h.sendHTML(ctx, b, chatID, text)
}

// HandleSetHours обрабатывает команду /set_hours НАЧАЛО КОНЕЦ
func (h *Handlers) HandleSetHours(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireOwner(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	args := strings.Fields(update.Message.Text)
	if len(args) != 3 {
		h.sendText(ctx, b, chatID, "Использование: /set_hours НАЧАЛО КОНЕЦ\nНапример: /set_hours 10:00 20:00")
		return
	}

	if err := h.settingsService.UpdateWorkingHours(ctx, h.ownerID, args[1], args[2]); err != nil {
		h.logger.Error("Failed to update working hours", zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось сохранить. Время в формате ЧЧ:ММ, начало раньше конца.")
		return
	}

	h.sendText(ctx, b, chatID, fmt.Sprintf("✅ Рабочие часы: %s - %s.", args[1], args[2]))
}

// HandleSetPadding обрабатывает команду /set_padding ПОДГОТОВКА БУФЕР
func (h *Handlers) HandleSetPadding(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireOwner(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	args := strings.Fields(update.Message.Text)
	if len(args) != 3 {
		h.sendText(ctx, b, chatID, "Использование: /set_padding ПОДГОТОВКА БУФЕР\nНапример: /set_padding 15 10")
		return
	}

	prepMinutes, err := strconv.Atoi(args[1])
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ Время подготовки должно быть числом минут.")
		return
	}
	bufferMinutes, err := strconv.Atoi(args[2])
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ Буфер должен быть числом минут.")
		return
	}

	if err := h.settingsService.UpdatePadding(ctx, h.ownerID, prepMinutes, bufferMinutes); err != nil {
		h.logger.Error("Failed to update padding", zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось сохранить. Значения должны быть неотрицательными.")
		return
	}

	h.sendText(ctx, b, chatID, fmt.Sprintf("✅ Подготовка: %s, буфер: %s.",
		formatting.FormatDuration(prepMinutes), formatting.FormatDuration(bufferMinutes)))
}

// HandleWorkPriority обрабатывает команду /work_priority on|off
func (h *Handlers) HandleWorkPriority(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireOwner(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	args := strings.Fields(update.Message.Text)
	if len(args) != 2 || (args[1] != "on" && args[1] != "off") {
		h.sendText(ctx, b, chatID, "Использование: /work_priority on|off\n\n"+
			"on - рабочие часы показываются целиком, учёба игнорируется\n"+
			"off - учёба вырезается из доступного времени")
		return
	}

	enabled := args[1] == "on"
	if err := h.settingsService.SetWorkPriority(ctx, h.ownerID, enabled); err != nil {
		h.logger.Error("Failed to update work priority", zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось сохранить настройку. Попробуйте позже.")
		return
	}

	if enabled {
		h.sendText(ctx, b, chatID, "⚖️ Приоритет работы включён: учёба не ограничивает запись.")
	} else {
		h.sendText(ctx, b, chatID, "⚖️ Приоритет работы выключен: учёба вырезается из доступности.")
	}
}
