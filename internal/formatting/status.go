package formatting

import "github.com/pr-poehali-dev/telegram-diary-bot/internal/model"

// StatusEmoji возвращает эмодзи статуса записи
func StatusEmoji(status model.BookingStatus) string {
	switch status {
	case model.BookingStatusPending:
		return "⏳"
	case model.BookingStatusConfirmed:
		return "✅"
	case model.BookingStatusCompleted:
		return "✔️"
	case model.BookingStatusCancelled:
		return "❌"
	}
	return "❓"
}

// StatusText возвращает русское название статуса записи
func StatusText(status model.BookingStatus) string {
	switch status {
	case model.BookingStatusPending:
		return "Ожидает подтверждения"
	case model.BookingStatusConfirmed:
		return "Подтверждена"
	case model.BookingStatusCompleted:
		return "Завершена"
	case model.BookingStatusCancelled:
		return "Отменена"
	}
	return string(status)
}
