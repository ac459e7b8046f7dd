package availability

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	// Шаг сетки слотов в минутах
	slotStepMinutes = 30
	// Допуск выхода последнего слота дня за конец свободного периода
	lastPeriodOverhangMinutes = 60
)

// ErrServiceNotFound возвращается, когда услуга по идентификатору не найдена
var ErrServiceNotFound = errors.New("service not found")

// Settings содержит настройки владельца, влияющие на расчёт доступности.
// Все времена в минутах от полуночи.
type Settings struct {
	WorkStart    int
	WorkEnd      int
	PrepTime     int
	BufferTime   int
	WorkPriority bool
}

// Source предоставляет движку снимок данных за день. Реализация снаружи,
// движок сам ничего не пишет и не кэширует.
type Source interface {
	IsDateBlocked(ctx context.Context, ownerID int64, date time.Time) (bool, error)
	ServiceDuration(ctx context.Context, serviceID int64) (int, error)
	OwnerSettings(ctx context.Context, ownerID int64) (Settings, error)
	StudyPeriods(ctx context.Context, ownerID int64, weekday string) ([]TimeInterval, error)
	Events(ctx context.Context, ownerID int64, date time.Time) ([]TimeInterval, error)
	ActiveBookings(ctx context.Context, ownerID int64, date time.Time) ([]TimeInterval, error)
}

// Slot - доступное для записи время, как его видит клиент
type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// Result - результат расчёта доступности на день
type Result struct {
	Blocked bool   `json:"blocked"`
	Slots   []Slot `json:"slots"`
}

// Engine вычисляет доступные слоты записи на день
type Engine struct {
	source Source
}

// NewEngine создаёт движок доступности
func NewEngine(source Source) *Engine {
	return &Engine{source: source}
}

// dayInputs - нормализованные входные данные одного запроса
type dayInputs struct {
	work            TimeInterval
	studyPeriods    []TimeInterval
	events          []TimeInterval
	bookings        []TimeInterval
	prepTime        int
	bufferTime      int
	duration        int
	totalTimeNeeded int
	workPriority    bool
}

// candidate - кандидат слота до проверки конфликтов
type candidate struct {
	visibleStart  int
	occupiedStart int
	occupiedEnd   int
}

// weekdayNames соответствует ключам таблицы week_schedule
var weekdayNames = map[time.Weekday]string{
	time.Monday:    "monday",
	time.Tuesday:   "tuesday",
	time.Wednesday: "wednesday",
	time.Thursday:  "thursday",
	time.Friday:    "friday",
	time.Saturday:  "saturday",
	time.Sunday:    "sunday",
}

// WeekdayName возвращает ключ дня недели для даты
func WeekdayName(date time.Time) string {
	return weekdayNames[date.Weekday()]
}

// ComputeAvailableSlots вычисляет доступные слоты записи для владельца на дату.
// currentTime - опциональное текущее время "HH:MM" для отсечения прошедших
// слотов (некорректное значение молча игнорируется).
func (e *Engine) ComputeAvailableSlots(ctx context.Context, ownerID int64, date time.Time, serviceID int64, currentTime string) (*Result, error) {
	blocked, err := e.source.IsDateBlocked(ctx, ownerID, date)
	if err != nil {
		return nil, fmt.Errorf("check blocked date: %w", err)
	}
	if blocked {
		return &Result{Blocked: true, Slots: []Slot{}}, nil
	}

	inputs, err := e.collectInputs(ctx, ownerID, date, serviceID)
	if err != nil {
		return nil, err
	}

	freePeriods := resolveFreePeriods(
		inputs.work,
		inputs.studyPeriods,
		inputs.events,
		inputs.totalTimeNeeded,
		inputs.workPriority,
	)

	candidates := generateCandidates(freePeriods, inputs.prepTime, inputs.duration, inputs.bufferTime)

	slots := filterCandidates(candidates, inputs.bookings, currentTime)

	return &Result{Slots: slots}, nil
}

// collectInputs собирает и нормализует данные дня (этап Input Normalizer)
func (e *Engine) collectInputs(ctx context.Context, ownerID int64, date time.Time, serviceID int64) (*dayInputs, error) {
	duration, err := e.source.ServiceDuration(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("get service duration: %w", err)
	}

	settings, err := e.source.OwnerSettings(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get owner settings: %w", err)
	}

	studyPeriods, err := e.source.StudyPeriods(ctx, ownerID, WeekdayName(date))
	if err != nil {
		return nil, fmt.Errorf("get study periods: %w", err)
	}

	events, err := e.source.Events(ctx, ownerID, date)
	if err != nil {
		return nil, fmt.Errorf("get events: %w", err)
	}

	bookings, err := e.source.ActiveBookings(ctx, ownerID, date)
	if err != nil {
		return nil, fmt.Errorf("get active bookings: %w", err)
	}

	return &dayInputs{
		work:            TimeInterval{Start: settings.WorkStart, End: settings.WorkEnd},
		studyPeriods:    studyPeriods,
		events:          events,
		bookings:        bookings,
		prepTime:        settings.PrepTime,
		bufferTime:      settings.BufferTime,
		duration:        duration,
		totalTimeNeeded: settings.PrepTime + duration + settings.BufferTime,
		workPriority:    settings.WorkPriority,
	}, nil
}

// resolveFreePeriods возвращает упорядоченный список свободных периодов дня.
//
// При workPriority рабочее окно главнее: учёба не учитывается вовсе.
// Иначе сначала из рабочего окна полностью вырезается учёба (без фильтра по
// длине - короткие осколки отбросит следующий шаг), затем из каждого
// получившегося куска вырезаются события уже с порогом minLen.
func resolveFreePeriods(work TimeInterval, study, events []TimeInterval, minLen int, workPriority bool) []TimeInterval {
	if workPriority || len(study) == 0 {
		return subtractWithThreshold(work, events, minLen)
	}

	carved := subtractFull(work, study)

	var free []TimeInterval
	for _, sub := range carved {
		free = append(free, subtractWithThreshold(sub, events, minLen)...)
	}
	return free
}

// generateCandidates обходит свободные периоды с шагом 30 минут и выдаёт
// кандидатов слотов.
//
// Самый первый кандидат самого первого периода дня стартует без подготовки:
// день может начаться сразу, но любое окно после занятости требует prep
// перед видимым началом. Для последнего периода дня допускается выход
// занятого окна за границу периода до 60 минут.
func generateCandidates(freePeriods []TimeInterval, prepTime, duration, bufferTime int) []candidate {
	var candidates []candidate

	for i, period := range freePeriods {
		isLast := i == len(freePeriods)-1

		for cursor := period.Start; cursor < period.End; cursor += slotStepMinutes {
			effectivePrep := prepTime
			if i == 0 && cursor == period.Start {
				effectivePrep = 0
			}

			occupiedLen := effectivePrep + duration + bufferTime

			if cursor+occupiedLen > period.End {
				if !isLast || cursor+occupiedLen > period.End+lastPeriodOverhangMinutes {
					break
				}
			}

			candidates = append(candidates, candidate{
				visibleStart:  cursor + effectivePrep,
				occupiedStart: cursor,
				occupiedEnd:   cursor + occupiedLen,
			})
		}
	}

	return candidates
}

// filterCandidates отбрасывает кандидатов, чьё занятое окно пересекается с
// существующими записями, и, если передано текущее время, уже прошедшие слоты
func filterCandidates(candidates []candidate, bookings []TimeInterval, currentTime string) []Slot {
	nowMinutes := -1
	if currentTime != "" {
		if parsed, err := ParseTimeOfDay(currentTime); err == nil {
			nowMinutes = parsed
		}
		// Некорректное текущее время не ошибка: фильтр просто не применяется
	}

	slots := make([]Slot, 0, len(candidates))

	for _, c := range candidates {
		if nowMinutes >= 0 && c.visibleStart <= nowMinutes {
			continue
		}

		occupied := TimeInterval{Start: c.occupiedStart, End: c.occupiedEnd}
		conflict := false
		for _, b := range bookings {
			if occupied.Overlaps(b) {
				conflict = true
				break
			}
		}
		if conflict {
			continue
		}

		slots = append(slots, Slot{Time: FormatTimeOfDay(c.visibleStart), Available: true})
	}

	return slots
}
