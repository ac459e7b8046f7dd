package notify

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/pr-poehali-dev/telegram-diary-bot/internal/formatting"
	"github.com/pr-poehali-dev/telegram-diary-bot/internal/model"
)

// Notifier отправляет владельцу уведомления в Telegram
type Notifier struct {
	bot         *bot.Bot
	ownerChatID int64
	logger      *zap.Logger
}

func NewNotifier(b *bot.Bot, ownerChatID int64, logger *zap.Logger) *Notifier {
	return &Notifier{
		bot:         b,
		ownerChatID: ownerChatID,
		logger:      logger,
	}
}

// NotifyNewBooking уведомляет владельца о новой записи с кнопками
// подтверждения и отмены
func (n *Notifier) NotifyNewBooking(ctx context.Context, booking *model.Booking) error {
	text := fmt.Sprintf(
		"🔔 <b>Новая запись!</b>\n\n"+
			"👤 <b>Клиент:</b> %s\n"+
			"📞 <b>Телефон:</b> %s\n\n"+
			"💇 <b>Услуга:</b> %s\n"+
			"💰 <b>Цена:</b> %d₽\n\n"+
			"📅 <b>Дата:</b> %s\n"+
			"🕐 <b>Время:</b> %s\n"+
			"🔑 Код: <code>%s</code>\n\n"+
			"⏳ Статус: Ожидает подтверждения",
		booking.ClientName,
		booking.ClientPhone,
		booking.ServiceName,
		booking.Price,
		formatting.FormatDate(booking.Date),
		formatting.FormatMinutesRange(booking.StartMinutes, booking.EndMinutes),
		booking.PublicCode.String(),
	)

	keyboard := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				{Text: "✅ Подтвердить", CallbackData: fmt.Sprintf("confirm_%d", booking.ID)},
				{Text: "❌ Отменить", CallbackData: fmt.Sprintf("cancel_%d", booking.ID)},
			},
		},
	}

	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      n.ownerChatID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: keyboard,
	})
	if err != nil {
		return fmt.Errorf("send booking notification: %w", err)
	}

	n.logger.Info("Owner notified about new booking",
		zap.Int64("booking_id", booking.ID),
	)
	return nil
}

// SendDigest отправляет владельцу текст утреннего дайджеста
func (n *Notifier) SendDigest(ctx context.Context, text string) error {
	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    n.ownerChatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		return fmt.Errorf("send digest: %w", err)
	}

	return nil
}
