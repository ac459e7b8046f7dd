package formatting

import (
	"fmt"
	"time"

	"github.com/pr-poehali-dev/telegram-diary-bot/internal/availability"
)

// FormatDate форматирует только дату
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// FormatMinutes форматирует минуты от полуночи в "HH:MM"
func FormatMinutes(minutes int) string {
	return availability.FormatTimeOfDay(minutes)
}

// FormatMinutesRange форматирует диапазон минут от полуночи
func FormatMinutesRange(start, end int) string {
	return fmt.Sprintf("%s-%s", FormatMinutes(start), FormatMinutes(end))
}

// FormatDuration форматирует длительность в минутах
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d мин", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%d ч", hours)
	}
	return fmt.Sprintf("%d ч %d мин", hours, mins)
}

// GetWeekdayShortName возвращает краткое название дня недели на русском
func GetWeekdayShortName(weekday time.Weekday) string {
	names := []string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}
	return names[int(weekday)]
}

// WeekdayNameRu возвращает русское название дня недели по ключу хранения
func WeekdayNameRu(dayOfWeek string) string {
	names := map[string]string{
		"monday":    "Понедельник",
		"tuesday":   "Вторник",
		"wednesday": "Среда",
		"thursday":  "Четверг",
		"friday":    "Пятница",
		"saturday":  "Суббота",
		"sunday":    "Воскресенье",
	}
	if name, ok := names[dayOfWeek]; ok {
		return name
	}
	return "Неизвестно"
}
