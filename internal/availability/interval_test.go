package availability

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"10:00", 600, false},
		{"00:00", 0, false},
		{"23:59", 1439, false},
		{"9:05", 545, false},
		{"24:00", 0, true},
		{"10:60", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tc := range cases {
		got, err := ParseTimeOfDay(tc.in)
		if tc.wantErr {
			require.Error(t, err, "input %q", tc.in)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		require.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestFormatTimeOfDay(t *testing.T) {
	require.Equal(t, "10:00", FormatTimeOfDay(600))
	require.Equal(t, "00:00", FormatTimeOfDay(0))
	require.Equal(t, "09:05", FormatTimeOfDay(545))
	require.Equal(t, "19:40", FormatTimeOfDay(1180))
}

func TestSubtractFullNoOccupiers(t *testing.T) {
	got := subtractFull(TimeInterval{600, 1200}, nil)
	require.Equal(t, []TimeInterval{{600, 1200}}, got)
}

func TestSubtractFullSplitsMiddle(t *testing.T) {
	got := subtractFull(TimeInterval{600, 1200}, []TimeInterval{{800, 900}})
	require.Equal(t, []TimeInterval{{600, 800}, {900, 1200}}, got)
}

func TestSubtractFullTrimsPrefixAndSuffix(t *testing.T) {
	got := subtractFull(TimeInterval{600, 1200}, []TimeInterval{{500, 700}, {1100, 1300}})
	require.Equal(t, []TimeInterval{{700, 1100}}, got)
}

func TestSubtractFullFullyCovered(t *testing.T) {
	got := subtractFull(TimeInterval{600, 1200}, []TimeInterval{{500, 1300}})
	require.Empty(t, got)
}

func TestSubtractFullKeepsShortFragments(t *testing.T) {
	// Полное вычитание не фильтрует по длине: осколок в 10 минут остаётся
	got := subtractFull(TimeInterval{600, 1200}, []TimeInterval{{610, 1200}})
	require.Equal(t, []TimeInterval{{600, 610}}, got)
}

func TestSubtractFullUnsortedOverlappingOccupiers(t *testing.T) {
	got := subtractFull(TimeInterval{600, 1200}, []TimeInterval{{900, 1000}, {700, 950}})
	require.Equal(t, []TimeInterval{{600, 700}, {1000, 1200}}, got)
}

func TestSubtractWithThresholdDropsShortGaps(t *testing.T) {
	// Промежуток перед событием 60 минут, порог 65 - промежуток отброшен
	got := subtractWithThreshold(TimeInterval{600, 1200}, []TimeInterval{{660, 720}}, 65)
	require.Equal(t, []TimeInterval{{720, 1200}}, got)
}

func TestSubtractWithThresholdKeepsTrailingGap(t *testing.T) {
	got := subtractWithThreshold(TimeInterval{600, 1200}, []TimeInterval{{840, 900}}, 65)
	require.Equal(t, []TimeInterval{{600, 840}, {900, 1200}}, got)
}

func TestSubtractWithThresholdDropsShortTrailingGap(t *testing.T) {
	got := subtractWithThreshold(TimeInterval{600, 1200}, []TimeInterval{{840, 1150}}, 65)
	require.Equal(t, []TimeInterval{{600, 840}}, got)
}

func TestSubtractWithThresholdOverlappingOccupiers(t *testing.T) {
	// Курсор уходит к max(конец промежутка, конец занятости)
	got := subtractWithThreshold(TimeInterval{600, 1200}, []TimeInterval{{700, 900}, {800, 1000}}, 65)
	require.Equal(t, []TimeInterval{{600, 700}, {1000, 1200}}, got)
}

func TestSubtractWithThresholdOccupierOutsideBase(t *testing.T) {
	got := subtractWithThreshold(TimeInterval{600, 1200}, []TimeInterval{{100, 200}, {1300, 1400}}, 65)
	require.Equal(t, []TimeInterval{{600, 1200}}, got)
}

func TestOverlapsHalfOpen(t *testing.T) {
	a := TimeInterval{600, 660}
	require.False(t, a.Overlaps(TimeInterval{660, 720}), "соседние интервалы не пересекаются")
	require.False(t, a.Overlaps(TimeInterval{540, 600}))
	require.True(t, a.Overlaps(TimeInterval{659, 661}))
	require.True(t, a.Overlaps(TimeInterval{500, 1300}))
}
