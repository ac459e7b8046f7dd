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

// HandleServiceAdd обрабатывает команду /service_add НАЗВАНИЕ ДЛИТЕЛЬНОСТЬ ЦЕНА
func (h *Handlers) HandleServiceAdd(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireOwner(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	args := strings.Fields(update.Message.Text)
	if len(args) < 4 {
		h.sendText(ctx, b, chatID, "Использование: /service_add НАЗВАНИЕ ДЛИТЕЛЬНОСТЬ ЦЕНА\nНапример: /service_add Стрижка 60 1500")
		return
	}

	// Название может быть из нескольких слов, длительность и цена в конце
	duration, err := strconv.Atoi(args[len(args)-2])
	if err != nil || duration <= 0 {
		h.sendError(ctx, b, chatID, "❌ Длительность должна быть положительным числом минут.")
		return
	}
	price, err := strconv.Atoi(args[len(args)-1])
	if err != nil || price < 0 {
		h.sendError(ctx, b, chatID, "❌ Цена должна быть неотрицательным числом.")
		return
	}
	name := strings.Join(args[1:len(args)-2], " ")

	service, err := h.catalogService.AddService(ctx, h.ownerID, name, duration, price)
	if err != nil {
		h.logger.Error("Failed to add service", zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось создать услугу. Попробуйте позже.")
		return
	}

	h.sendText(ctx, b, chatID, fmt.Sprintf("✅ Услуга #%d «%s» создана: %s, %d₽.",
		service.ID, service.Name, formatting.FormatDuration(service.DurationMinutes), service.Price))
}

// HandleServiceList обрабатывает команду /service_list
func (h *Handlers) HandleServiceList(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireAccess(ctx, b, update); !ok {
		return
	}
	chatID := update.Message.Chat.ID

	services, err := h.catalogService.GetServices(ctx, h.ownerID)
	if err != nil {
		h.logger.Error("Failed to load services", zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось загрузить услуги. Попробуйте позже.")
		return
	}

	if len(services) == 0 {
		h.sendText(ctx, b, chatID, "📭 Услуг пока нет. Создать: /service_add НАЗВАНИЕ ДЛИТЕЛЬНОСТЬ ЦЕНА")
		return
	}

	var sb strings.Builder
	sb.WriteString("💼 <b>Услуги:</b>\n\n")
	for _, service := range services {
		marker := "🟢"
		if !service.Active {
			marker = "⚪️"
		}
		sb.WriteString(fmt.Sprintf("%s #%d %s - %s, %d₽\n",
			marker, service.ID, service.Name,
			formatting.FormatDuration(service.DurationMinutes), service.Price))
	}
	sb.WriteString("\nВключить/выключить: /service_toggle ID\nУдалить: /service_delete ID")

	h.sendHTML(ctx, b, chatID, sb.String())
}

// HandleServiceToggle обрабатывает команду /service_toggle ID
func (h *Handlers) HandleServiceToggle(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireOwner(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	serviceID, ok := h.parseIDArg(ctx, b, update, "Использование: /service_toggle ID")
	if !ok {
		return
	}

	service, err := h.catalogService.ToggleService(ctx, serviceID, h.ownerID)
	if err != nil {
		h.logger.Error("Failed to toggle service", zap.Int64("service_id", serviceID), zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось переключить услугу. Проверьте ID.")
		return
	}

	if service.Active {
		h.sendText(ctx, b, chatID, fmt.Sprintf("🟢 Услуга «%s» доступна для записи.", service.Name))
	} else {
		h.sendText(ctx, b, chatID, fmt.Sprintf("⚪️ Услуга «%s» скрыта из записи.", service.Name))
	}
}

// HandleServiceDelete обрабатывает команду /service_delete ID
func (h *Handlers) HandleServiceDelete(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireOwner(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	serviceID, ok := h.parseIDArg(ctx, b, update, "Использование: /service_delete ID")
	if !ok {
		return
	}

	if err := h.catalogService.RemoveService(ctx, serviceID, h.ownerID); err != nil {
		h.logger.Error("Failed to delete service", zap.Int64("service_id", serviceID), zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось удалить услугу. Проверьте ID.")
		return
	}

	h.sendText(ctx, b, chatID, fmt.Sprintf("🗑 Услуга #%d удалена.", serviceID))
}

// parseIDArg разбирает команду вида "/cmd ID"
func (h *Handlers) parseIDArg(ctx context.Context, b *bot.Bot, update *models.Update, usage string) (int64, bool) {
	chatID := update.Message.Chat.ID

	args := strings.Fields(update.Message.Text)
	if len(args) != 2 {
		h.sendText(ctx, b, chatID, usage)
		return 0, false
	}

	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ ID должен быть числом.")
		return 0, false
	}
	return id, true
}
