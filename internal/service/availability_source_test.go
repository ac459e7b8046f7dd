package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pr-poehali-dev/telegram-diary-bot/internal/availability"
)

func TestParseOwnerSettingsDefaults(t *testing.T) {
	settings := parseOwnerSettings(map[string]string{})

	require.Equal(t, availability.Settings{
		WorkStart:  600,
		WorkEnd:    1200,
		PrepTime:   0,
		BufferTime: 0,
	}, settings)
}

func TestParseOwnerSettingsFull(t *testing.T) {
	settings := parseOwnerSettings(map[string]string{
		"work_start":    "09:30",
		"work_end":      "18:00",
		"prep_time":     "15",
		"buffer_time":   "10",
		"work_priority": "true",
	})

	require.Equal(t, availability.Settings{
		WorkStart:    570,
		WorkEnd:      1080,
		PrepTime:     15,
		BufferTime:   10,
		WorkPriority: true,
	}, settings)
}

func TestParseOwnerSettingsMalformedFallsBack(t *testing.T) {
	settings := parseOwnerSettings(map[string]string{
		"work_start":  "25:99",
		"prep_time":   "-5",
		"buffer_time": "abc",
	})

	require.Equal(t, 600, settings.WorkStart)
	require.Equal(t, 0, settings.PrepTime)
	require.Equal(t, 0, settings.BufferTime)
	require.False(t, settings.WorkPriority)
}
