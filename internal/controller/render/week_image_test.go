package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWeekStart(t *testing.T) {
	// Среда 26.11.2025 -> понедельник 24.11.2025
	wednesday := time.Date(2025, 11, 26, 15, 30, 0, 0, time.Local)
	start := WeekStart(wednesday)
	require.Equal(t, time.Date(2025, 11, 24, 0, 0, 0, 0, time.Local), start)

	// Воскресенье относится к той же неделе
	sunday := time.Date(2025, 11, 30, 1, 0, 0, 0, time.Local)
	require.Equal(t, start, WeekStart(sunday))

	// Понедельник возвращается как есть
	require.Equal(t, start, WeekStart(start))
}

func TestWeekImageProducesPNG(t *testing.T) {
	weekStart := WeekStart(time.Now())

	items := map[string][]DayItem{
		weekStart.Format("2006-01-02"): {
			{StartMinutes: 540, EndMinutes: 810, Label: "Учёба", Kind: KindStudy},
			{StartMinutes: 840, EndMinutes: 900, Label: "Иван", Kind: KindBooking},
		},
		weekStart.AddDate(0, 0, 2).Format("2006-01-02"): {
			{StartMinutes: 600, EndMinutes: 720, Label: "Конференция", Kind: KindEvent},
		},
	}

	data, err := WeekImage(weekStart, items)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	// PNG-сигнатура
	require.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data[:4])
}

func TestWeekImageEmptyWeek(t *testing.T) {
	data, err := WeekImage(WeekStart(time.Now()), map[string][]DayItem{})
	require.NoError(t, err)
	require.NotEmpty(t, data)
}
