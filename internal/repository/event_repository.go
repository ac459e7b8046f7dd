package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pr-poehali-dev/telegram-diary-bot/internal/availability"
	"github.com/pr-poehali-dev/telegram-diary-bot/internal/model"
)

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

// Create создаёт мероприятие
func (r *EventRepository) Create(ctx context.Context, event *model.CalendarEvent) error {
	query := `
		INSERT INTO calendar_events (owner_id, event_type, title, description, event_date, start_minutes, end_minutes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		event.OwnerID,
		event.Type,
		event.Title,
		event.Description,
		event.Date,
		event.StartMinutes,
		event.EndMinutes,
	).Scan(&event.ID, &event.CreatedAt)

	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}

	return nil
}

// GetByDate получает мероприятия владельца на дату
func (r *EventRepository) GetByDate(ctx context.Context, ownerID int64, date time.Time) ([]*model.CalendarEvent, error) {
	query := `
		SELECT id, owner_id, event_type, title, description, event_date, start_minutes, end_minutes, created_at
		FROM calendar_events
		WHERE owner_id = $1 AND event_date = $2
		ORDER BY start_minutes
	`

	rows, err := r.pool.Query(ctx, query, ownerID, date)
	if err != nil {
		return nil, fmt.Errorf("get events by date: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// GetIntervalsByDate возвращает интервалы мероприятий на дату для движка доступности
func (r *EventRepository) GetIntervalsByDate(ctx context.Context, ownerID int64, date time.Time) ([]availability.TimeInterval, error) {
	query := `
		SELECT start_minutes, end_minutes
		FROM calendar_events
		WHERE owner_id = $1 AND event_date = $2
	`

	rows, err := r.pool.Query(ctx, query, ownerID, date)
	if err != nil {
		return nil, fmt.Errorf("get event intervals: %w", err)
	}
	defer rows.Close()

	var intervals []availability.TimeInterval
	for rows.Next() {
		var interval availability.TimeInterval
		if err := rows.Scan(&interval.Start, &interval.End); err != nil {
			return nil, fmt.Errorf("scan event interval: %w", err)
		}
		intervals = append(intervals, interval)
	}

	return intervals, nil
}

// GetUpcoming получает предстоящие мероприятия владельца
func (r *EventRepository) GetUpcoming(ctx context.Context, ownerID int64, from time.Time, limit int) ([]*model.CalendarEvent, error) {
	query := `
		SELECT id, owner_id, event_type, title, description, event_date, start_minutes, end_minutes, created_at
		FROM calendar_events
		WHERE owner_id = $1 AND event_date >= $2
		ORDER BY event_date, start_minutes
		LIMIT $3
	`

	rows, err := r.pool.Query(ctx, query, ownerID, from, limit)
	if err != nil {
		return nil, fmt.Errorf("get upcoming events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// Delete удаляет мероприятие
func (r *EventRepository) Delete(ctx context.Context, id, ownerID int64) error {
	query := `DELETE FROM calendar_events WHERE id = $1 AND owner_id = $2`

	result, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("event not found")
	}

	return nil
}

func scanEvents(rows pgx.Rows) ([]*model.CalendarEvent, error) {
	var events []*model.CalendarEvent
	for rows.Next() {
		var event model.CalendarEvent
		err := rows.Scan(
			&event.ID,
			&event.OwnerID,
			&event.Type,
			&event.Title,
			&event.Description,
			&event.Date,
			&event.StartMinutes,
			&event.EndMinutes,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, &event)
	}

	return events, nil
}
