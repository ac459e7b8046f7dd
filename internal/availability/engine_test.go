package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeSource - снимок данных дня для тестов движка
type fakeSource struct {
	blocked  bool
	duration int
	settings Settings
	study    []TimeInterval
	events   []TimeInterval
	bookings []TimeInterval

	durationErr error
}

func (f *fakeSource) IsDateBlocked(_ context.Context, _ int64, _ time.Time) (bool, error) {
	return f.blocked, nil
}

func (f *fakeSource) ServiceDuration(_ context.Context, _ int64) (int, error) {
	if f.durationErr != nil {
		return 0, f.durationErr
	}
	return f.duration, nil
}

func (f *fakeSource) OwnerSettings(_ context.Context, _ int64) (Settings, error) {
	return f.settings, nil
}

func (f *fakeSource) StudyPeriods(_ context.Context, _ int64, _ string) ([]TimeInterval, error) {
	return f.study, nil
}

func (f *fakeSource) Events(_ context.Context, _ int64, _ time.Time) ([]TimeInterval, error) {
	return f.events, nil
}

func (f *fakeSource) ActiveBookings(_ context.Context, _ int64, _ time.Time) ([]TimeInterval, error) {
	return f.bookings, nil
}

var testDate = time.Date(2025, 11, 24, 0, 0, 0, 0, time.UTC) // понедельник

func defaultSettings() Settings {
	return Settings{WorkStart: 600, WorkEnd: 1200}
}

func slotTimes(slots []Slot) []string {
	times := make([]string, 0, len(slots))
	for _, s := range slots {
		times = append(times, s.Time)
	}
	return times
}

func TestComputeBlockedDateShortCircuits(t *testing.T) {
	src := &fakeSource{
		blocked:  true,
		duration: 50,
		settings: defaultSettings(),
	}

	result, err := NewEngine(src).ComputeAvailableSlots(context.Background(), 1, testDate, 1, "")
	require.NoError(t, err)
	require.True(t, result.Blocked)
	require.Empty(t, result.Slots)
}

func TestComputeServiceNotFound(t *testing.T) {
	src := &fakeSource{durationErr: ErrServiceNotFound, settings: defaultSettings()}

	_, err := NewEngine(src).ComputeAvailableSlots(context.Background(), 1, testDate, 99, "")
	require.ErrorIs(t, err, ErrServiceNotFound)
}

func TestComputeEmptyDayGrid(t *testing.T) {
	// Рабочее окно 10:00-20:00, prep=10, buffer=5, услуга 50 минут.
	// Первый слот стартует без подготовки ровно в 10:00, дальше каждые
	// 30 минут курсора с видимым началом cursor+10.
	src := &fakeSource{
		duration: 50,
		settings: Settings{WorkStart: 600, WorkEnd: 1200, PrepTime: 10, BufferTime: 5},
	}

	result, err := NewEngine(src).ComputeAvailableSlots(context.Background(), 1, testDate, 1, "")
	require.NoError(t, err)
	require.False(t, result.Blocked)

	times := slotTimes(result.Slots)
	require.NotEmpty(t, times)
	require.Equal(t, "10:00", times[0])
	require.Equal(t, "10:40", times[1])
	require.Equal(t, "11:10", times[2])

	// Единственный период дня одновременно последний: допуск в 60 минут
	// пускает курсоры до 19:30 включительно (1170+65 <= 1260)
	require.Equal(t, "19:40", times[len(times)-1])
}

func TestComputeIdempotent(t *testing.T) {
	src := &fakeSource{
		duration: 50,
		settings: Settings{WorkStart: 600, WorkEnd: 1200, PrepTime: 10, BufferTime: 5},
		events:   []TimeInterval{{840, 900}},
		bookings: []TimeInterval{{720, 780}},
	}
	engine := NewEngine(src)

	first, err := engine.ComputeAvailableSlots(context.Background(), 1, testDate, 1, "")
	require.NoError(t, err)
	second, err := engine.ComputeAvailableSlots(context.Background(), 1, testDate, 1, "")
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestComputePrioritySwitch(t *testing.T) {
	// Учёба 12:00-14:00 внутри рабочего окна. При приоритете рабочих часов
	// слоты внутри учёбы есть, без приоритета - нет.
	study := []TimeInterval{{720, 840}}

	withPriority := &fakeSource{
		duration: 60,
		settings: Settings{WorkStart: 600, WorkEnd: 1200, WorkPriority: true},
		study:    study,
	}
	withoutPriority := &fakeSource{
		duration: 60,
		settings: Settings{WorkStart: 600, WorkEnd: 1200},
		study:    study,
	}

	prioritized, err := NewEngine(withPriority).ComputeAvailableSlots(context.Background(), 1, testDate, 1, "")
	require.NoError(t, err)
	carved, err := NewEngine(withoutPriority).ComputeAvailableSlots(context.Background(), 1, testDate, 1, "")
	require.NoError(t, err)

	require.Contains(t, slotTimes(prioritized.Slots), "12:30")
	require.Contains(t, slotTimes(prioritized.Slots), "13:00")

	for _, s := range carved.Slots {
		start, err := ParseTimeOfDay(s.Time)
		require.NoError(t, err)
		inStudy := start >= 720 && start < 840
		require.False(t, inStudy, "слот %s попал в учёбу", s.Time)
	}
}

func TestComputeEventCarvingThreshold(t *testing.T) {
	// Событие 14:00-15:00, totalTimeNeeded=65: промежуток до события
	// (10:00-14:00, 240 минут) остаётся, хвост (15:00-20:00, 300) тоже.
	// Событие 10:00-19:00 оставило бы хвост в 60 минут - меньше порога.
	src := &fakeSource{
		duration: 50,
		settings: Settings{WorkStart: 600, WorkEnd: 1200, PrepTime: 10, BufferTime: 5},
		events:   []TimeInterval{{840, 900}},
	}

	result, err := NewEngine(src).ComputeAvailableSlots(context.Background(), 1, testDate, 1, "")
	require.NoError(t, err)

	times := slotTimes(result.Slots)
	require.Contains(t, times, "10:00")
	require.Contains(t, times, "15:10") // первый слот после события, с подготовкой

	// Никакое занятое окно не пересекает событие
	for _, s := range result.Slots {
		start, perr := ParseTimeOfDay(s.Time)
		require.NoError(t, perr)
		require.False(t, start >= 840 && start < 900, "слот %s внутри события", s.Time)
	}

	shortTail := &fakeSource{
		duration: 50,
		settings: Settings{WorkStart: 600, WorkEnd: 1200, PrepTime: 10, BufferTime: 5},
		events:   []TimeInterval{{600, 1140}},
	}
	tailResult, err := NewEngine(shortTail).ComputeAvailableSlots(context.Background(), 1, testDate, 1, "")
	require.NoError(t, err)
	require.Empty(t, tailResult.Slots, "хвост короче порога не даёт слотов")
}

func TestComputeCurrentTimeHorizon(t *testing.T) {
	src := &fakeSource{
		duration: 50,
		settings: Settings{WorkStart: 600, WorkEnd: 1200, PrepTime: 10, BufferTime: 5},
	}

	result, err := NewEngine(src).ComputeAvailableSlots(context.Background(), 1, testDate, 1, "11:00")
	require.NoError(t, err)
	require.NotEmpty(t, result.Slots)

	for _, s := range result.Slots {
		start, perr := ParseTimeOfDay(s.Time)
		require.NoError(t, perr)
		require.Greater(t, start, 660, "слот %s не позже 11:00", s.Time)
	}
}

func TestComputeMalformedCurrentTimeIgnored(t *testing.T) {
	src := &fakeSource{
		duration: 50,
		settings: Settings{WorkStart: 600, WorkEnd: 1200},
	}
	engine := NewEngine(src)

	plain, err := engine.ComputeAvailableSlots(context.Background(), 1, testDate, 1, "")
	require.NoError(t, err)
	malformed, err := engine.ComputeAvailableSlots(context.Background(), 1, testDate, 1, "not-a-time")
	require.NoError(t, err)

	require.Equal(t, plain.Slots, malformed.Slots)
}

func TestComputeBookingConflictUsesOccupiedWindow(t *testing.T) {
	// Запись 12:00-13:00. Кандидат с видимым началом 11:40 занимает
	// 11:30-12:35 и пересекает запись, хотя видимое начало вне её.
	src := &fakeSource{
		duration: 50,
		settings: Settings{WorkStart: 600, WorkEnd: 1200, PrepTime: 10, BufferTime: 5},
		bookings: []TimeInterval{{720, 780}},
	}

	result, err := NewEngine(src).ComputeAvailableSlots(context.Background(), 1, testDate, 1, "")
	require.NoError(t, err)

	times := slotTimes(result.Slots)
	require.NotContains(t, times, "11:40")
	require.NotContains(t, times, "12:10")
	require.NotContains(t, times, "12:40")
	require.Contains(t, times, "13:10")
}

func TestComputeNoOverlapInvariant(t *testing.T) {
	// Ни одно занятое окно не пересекает существующую запись
	src := &fakeSource{
		duration: 50,
		settings: Settings{WorkStart: 600, WorkEnd: 1200, PrepTime: 10, BufferTime: 5},
		study:    []TimeInterval{{660, 750}},
		events:   []TimeInterval{{900, 960}},
		bookings: []TimeInterval{{780, 840}},
	}

	result, err := NewEngine(src).ComputeAvailableSlots(context.Background(), 1, testDate, 1, "")
	require.NoError(t, err)

	for _, s := range result.Slots {
		start, perr := ParseTimeOfDay(s.Time)
		require.NoError(t, perr)
		occupied := TimeInterval{Start: start - 10, End: start + 50 + 5}
		for _, b := range src.bookings {
			require.False(t, occupied.Overlaps(b), "слот %s пересекает запись", s.Time)
		}
	}
}

func TestGenerateCandidatesPrepExemptionOnlyFirstPeriod(t *testing.T) {
	periods := []TimeInterval{{600, 700}, {900, 1000}}
	candidates := generateCandidates(periods, 10, 50, 5)
	require.NotEmpty(t, candidates)

	// Первый кандидат первого периода без подготовки
	require.Equal(t, 600, candidates[0].visibleStart)
	require.Equal(t, 600, candidates[0].occupiedStart)

	// Первый кандидат второго периода уже с подготовкой
	for _, c := range candidates {
		if c.occupiedStart == 900 {
			require.Equal(t, 910, c.visibleStart)
			return
		}
	}
	t.Fatal("кандидат в начале второго периода не найден")
}

func TestGenerateCandidatesLastPeriodOverhang(t *testing.T) {
	// Период 18:00-19:00, занятое окно 65 минут. Обычная проверка не
	// пропускает ни одного кандидата после первого, но допуск последнего
	// периода разрешает выход за границу до 60 минут.
	periods := []TimeInterval{{1080, 1140}}
	candidates := generateCandidates(periods, 10, 50, 5)

	require.Len(t, candidates, 2)
	require.Equal(t, 1080, candidates[0].occupiedStart) // без prep: 55 минут, влезает
	require.Equal(t, 1135, candidates[0].occupiedEnd)
	require.Equal(t, 1110, candidates[1].occupiedStart) // 1110+65=1175 <= 1200
	require.Equal(t, 1175, candidates[1].occupiedEnd)
}

func TestGenerateCandidatesNoOverhangForMiddlePeriods(t *testing.T) {
	periods := []TimeInterval{{600, 660}, {900, 1000}}
	candidates := generateCandidates(periods, 0, 55, 0)

	for _, c := range candidates {
		if c.occupiedStart < 660 {
			require.LessOrEqual(t, c.occupiedEnd, 660, "средний период не имеет допуска")
		}
	}
}

func TestWeekdayName(t *testing.T) {
	require.Equal(t, "monday", WeekdayName(testDate))
	require.Equal(t, "sunday", WeekdayName(testDate.AddDate(0, 0, 6)))
}
