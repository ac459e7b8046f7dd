package formatting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormatDuration(t *testing.T) {
	require.Equal(t, "45 мин", FormatDuration(45))
	require.Equal(t, "1 ч", FormatDuration(60))
	require.Equal(t, "1 ч 30 мин", FormatDuration(90))
	require.Equal(t, "2 ч", FormatDuration(120))
}

func TestFormatMinutesRange(t *testing.T) {
	require.Equal(t, "10:00-10:55", FormatMinutesRange(600, 655))
}

func TestGetWeekdayShortName(t *testing.T) {
	require.Equal(t, "Пн", GetWeekdayShortName(time.Monday))
	require.Equal(t, "Вс", GetWeekdayShortName(time.Sunday))
}

func TestWeekdayNameRu(t *testing.T) {
	require.Equal(t, "Понедельник", WeekdayNameRu("monday"))
	require.Equal(t, "Неизвестно", WeekdayNameRu("someday"))
}
