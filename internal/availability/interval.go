package availability

import (
	"fmt"
	"sort"
)

// TimeInterval представляет полуоткрытый интервал [Start, End)
// в минутах от полуночи (0-1440).
type TimeInterval struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Length возвращает длину интервала в минутах
func (i TimeInterval) Length() int {
	return i.End - i.Start
}

// Overlaps проверяет пересечение с другим интервалом (полуоткрытая семантика)
func (i TimeInterval) Overlaps(other TimeInterval) bool {
	return i.Start < other.End && i.End > other.Start
}

// ParseTimeOfDay разбирает время формата "HH:MM" в минуты от полуночи
func ParseTimeOfDay(s string) (int, error) {
	var hours, minutes int
	if _, err := fmt.Sscanf(s, "%d:%d", &hours, &minutes); err != nil {
		return 0, fmt.Errorf("parse time of day %q: %w", s, err)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("parse time of day %q: out of range", s)
	}
	return hours*60 + minutes, nil
}

// FormatTimeOfDay форматирует минуты от полуночи в "HH:MM"
func FormatTimeOfDay(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// sortedByStart возвращает копию списка, отсортированную по началу интервала.
// Входные списки никогда не считаются отсортированными.
func sortedByStart(intervals []TimeInterval) []TimeInterval {
	out := make([]TimeInterval, len(intervals))
	copy(out, intervals)
	sort.Slice(out, func(a, b int) bool {
		return out[a].Start < out[b].Start
	})
	return out
}

// subtractFull вычитает занятые интервалы из базового без фильтра по
// минимальной длине. Используется для вырезания учёбы из рабочего окна:
// короткие осколки допустимы, их отбросит последующая обработка событий.
func subtractFull(base TimeInterval, occupiers []TimeInterval) []TimeInterval {
	var gaps []TimeInterval
	cursor := base.Start

	for _, occ := range sortedByStart(occupiers) {
		if occ.End <= cursor {
			continue
		}
		if occ.Start >= base.End {
			break
		}
		if occ.Start > cursor {
			gaps = append(gaps, TimeInterval{Start: cursor, End: occ.Start})
		}
		// Курсор всегда уходит за конец занятого интервала,
		// пересекающиеся занятия схлопываются
		cursor = occ.End
		if cursor >= base.End {
			return gaps
		}
	}

	if cursor < base.End {
		gaps = append(gaps, TimeInterval{Start: cursor, End: base.End})
	}

	return gaps
}

// subtractWithThreshold вычитает занятые интервалы из базового, оставляя
// только промежутки длиной не меньше minLen. Применяется на последнем шаге
// перед генерацией слотов, чтобы не выдавать бесполезные для записи окна.
func subtractWithThreshold(base TimeInterval, occupiers []TimeInterval, minLen int) []TimeInterval {
	var gaps []TimeInterval
	cursor := base.Start

	for _, occ := range sortedByStart(occupiers) {
		if occ.End <= cursor {
			continue
		}
		if occ.Start >= base.End {
			break
		}
		if occ.Start > cursor {
			gap := TimeInterval{Start: cursor, End: occ.Start}
			if gap.Length() >= minLen {
				gaps = append(gaps, gap)
			}
		}
		if occ.End > cursor {
			cursor = occ.End
		}
		if cursor >= base.End {
			return gaps
		}
	}

	// Хвостовой промежуток после последнего занятого интервала
	if cursor < base.End {
		tail := TimeInterval{Start: cursor, End: base.End}
		if tail.Length() >= minLen {
			gaps = append(gaps, tail)
		}
	}

	return gaps
}
