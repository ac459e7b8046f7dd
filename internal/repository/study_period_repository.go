package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pr-poehali-dev/telegram-diary-bot/internal/availability"
	"github.com/pr-poehali-dev/telegram-diary-bot/internal/model"
)

type StudyPeriodRepository struct {
	pool *pgxpool.Pool
}

func NewStudyPeriodRepository(pool *pgxpool.Pool) *StudyPeriodRepository {
	return &StudyPeriodRepository{pool: pool}
}

// Create добавляет период учёбы на день недели
func (r *StudyPeriodRepository) Create(ctx context.Context, period *model.StudyPeriod) error {
	query := `
		INSERT INTO week_schedule (owner_id, day_of_week, start_minutes, end_minutes)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		period.OwnerID,
		period.DayOfWeek,
		period.StartMinutes,
		period.EndMinutes,
	).Scan(&period.ID, &period.CreatedAt)

	if err != nil {
		return fmt.Errorf("create study period: %w", err)
	}

	return nil
}

// GetByWeekday получает периоды учёбы на день недели
func (r *StudyPeriodRepository) GetByWeekday(ctx context.Context, ownerID int64, dayOfWeek string) ([]*model.StudyPeriod, error) {
	query := `
		SELECT id, owner_id, day_of_week, start_minutes, end_minutes, created_at
		FROM week_schedule
		WHERE owner_id = $1 AND day_of_week = $2
		ORDER BY start_minutes
	`

	rows, err := r.pool.Query(ctx, query, ownerID, dayOfWeek)
	if err != nil {
		return nil, fmt.Errorf("get study periods by weekday: %w", err)
	}
	defer rows.Close()

	return scanStudyPeriods(rows)
}

// GetIntervalsByWeekday возвращает интервалы учёбы на день недели для движка
func (r *StudyPeriodRepository) GetIntervalsByWeekday(ctx context.Context, ownerID int64, dayOfWeek string) ([]availability.TimeInterval, error) {
	query := `
		SELECT start_minutes, end_minutes
		FROM week_schedule
		WHERE owner_id = $1 AND day_of_week = $2
	`

	rows, err := r.pool.Query(ctx, query, ownerID, dayOfWeek)
	if err != nil {
		return nil, fmt.Errorf("get study intervals: %w", err)
	}
	defer rows.Close()

	var intervals []availability.TimeInterval
	for rows.Next() {
		var interval availability.TimeInterval
		if err := rows.Scan(&interval.Start, &interval.End); err != nil {
			return nil, fmt.Errorf("scan study interval: %w", err)
		}
		intervals = append(intervals, interval)
	}

	return intervals, nil
}

// GetWeek получает все периоды учёбы владельца
func (r *StudyPeriodRepository) GetWeek(ctx context.Context, ownerID int64) ([]*model.StudyPeriod, error) {
	query := `
		SELECT id, owner_id, day_of_week, start_minutes, end_minutes, created_at
		FROM week_schedule
		WHERE owner_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get week schedule: %w", err)
	}
	defer rows.Close()

	return scanStudyPeriods(rows)
}

// DeleteByWeekday удаляет периоды учёбы на день недели
func (r *StudyPeriodRepository) DeleteByWeekday(ctx context.Context, ownerID int64, dayOfWeek string) (int64, error) {
	query := `DELETE FROM week_schedule WHERE owner_id = $1 AND day_of_week = $2`

	result, err := r.pool.Exec(ctx, query, ownerID, dayOfWeek)
	if err != nil {
		return 0, fmt.Errorf("delete study periods: %w", err)
	}

	return result.RowsAffected(), nil
}

func scanStudyPeriods(rows pgx.Rows) ([]*model.StudyPeriod, error) {
	var periods []*model.StudyPeriod
	for rows.Next() {
		var period model.StudyPeriod
		err := rows.Scan(
			&period.ID,
			&period.OwnerID,
			&period.DayOfWeek,
			&period.StartMinutes,
			&period.EndMinutes,
			&period.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan study period: %w", err)
		}
		periods = append(periods, &period)
	}

	return periods, nil
}
