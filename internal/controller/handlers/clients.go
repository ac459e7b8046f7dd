package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/pr-poehali-dev/telegram-diary-bot/internal/availability"
	"github.com/pr-poehali-dev/telegram-diary-bot/internal/formatting"
)

// HandleClients обрабатывает команду /clients
func (h *Handlers) HandleClients(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireOwner(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	clients, err := h.bookingService.GetClients(ctx, h.ownerID)
	if err != nil {
		h.logger.Error("Failed to load clients", zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось загрузить клиентов. Попробуйте позже.")
		return
	}

	if len(clients) == 0 {
		h.sendText(ctx, b, chatID, "📭 Клиентов пока нет.")
		return
	}

	var sb strings.Builder
	sb.WriteString("👥 <b>Клиенты:</b>\n\n")
	for _, client := range clients {
		sb.WriteString(fmt.Sprintf("#%d %s", client.ID, client.Name))
		if client.Phone != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", client.Phone))
		}
		sb.WriteString(fmt.Sprintf(" - визитов: %d", client.TotalVisits))
		if client.LastVisitDate != nil {
			sb.WriteString(fmt.Sprintf(", последний: %s", formatting.FormatDate(*client.LastVisitDate)))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\nЗаписать клиента: /book ДАТА ВРЕМЯ ID_УСЛУГИ ID_КЛИЕНТА")

	h.sendHTML(ctx, b, chatID, sb.String())
}

// HandleClientAdd обрабатывает команду /client_add ИМЯ [ТЕЛЕФОН]
func (h *Handlers) HandleClientAdd(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireOwner(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	args := strings.Fields(update.Message.Text)
	if len(args) < 2 {
		h.sendText(ctx, b, chatID, "Использование: /client_add ИМЯ [ТЕЛЕФОН]\nНапример: /client_add Анна +79990001122")
		return
	}

	// Последний аргумент считается телефоном, если похож на номер
	phone := ""
	nameArgs := args[1:]
	if len(nameArgs) > 1 {
		last := nameArgs[len(nameArgs)-1]
		if strings.HasPrefix(last, "+") || strings.IndexFunc(last, func(r rune) bool { return r < '0' || r > '9' }) == -1 {
			phone = last
			nameArgs = nameArgs[:len(nameArgs)-1]
		}
	}
	name := strings.Join(nameArgs, " ")

	client, err := h.catalogService.RegisterClient(ctx, h.ownerID, name, phone)
	if err != nil {
		h.logger.Error("Failed to register client", zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось добавить клиента. Попробуйте позже.")
		return
	}

	h.sendText(ctx, b, chatID, fmt.Sprintf("✅ Клиент #%d %s добавлен.", client.ID, client.Name))
}

// HandleBook обрабатывает команду /book ДАТА ВРЕМЯ ID_УСЛУГИ ID_КЛИЕНТА:
// владелец записывает клиента вручную. Время должно быть одним из
// доступных окон (/slots).
func (h *Handlers) HandleBook(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireOwner(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	args := strings.Fields(update.Message.Text)
	if len(args) != 5 {
		h.sendText(ctx, b, chatID, "Использование: /book ДАТА ВРЕМЯ ID_УСЛУГИ ID_КЛИЕНТА\nНапример: /book 2025-12-01 14:30 1 7")
		return
	}

	date, err := time.ParseInLocation("2006-01-02", args[1], time.Local)
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ Неверный формат даты. Ожидается ГГГГ-ММ-ДД.")
		return
	}

	startTime := args[2]
	if _, err := availability.ParseTimeOfDay(startTime); err != nil {
		h.sendError(ctx, b, chatID, "❌ Неверное время. Ожидается ЧЧ:ММ.")
		return
	}

	serviceID, err := strconv.ParseInt(args[3], 10, 64)
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ ID услуги должен быть числом.")
		return
	}
	clientID, err := strconv.ParseInt(args[4], 10, 64)
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ ID клиента должен быть числом.")
		return
	}

	booking, err := h.bookingService.CreateBooking(ctx, h.ownerID, clientID, serviceID, date, startTime)
	if errors.Is(err, availability.ErrServiceNotFound) {
		h.sendError(ctx, b, chatID, "❌ Услуга не найдена.")
		return
	}
	if err != nil {
		h.logger.Error("Failed to create booking",
			zap.Time("date", date), zap.String("time", startTime), zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось создать запись. Проверьте, что время есть в /slots.")
		return
	}

	h.sendHTML(ctx, b, chatID, fmt.Sprintf(
		"✅ Запись #%d создана: %s %s, %s.\nКод: <code>%s</code>",
		booking.ID,
		formatting.FormatDate(booking.Date),
		formatting.FormatMinutesRange(booking.StartMinutes, booking.EndMinutes),
		booking.ServiceName,
		booking.PublicCode.String(),
	))
}
