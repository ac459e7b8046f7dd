package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pr-poehali-dev/telegram-diary-bot/internal/model"
)

type BlockedDateRepository struct {
	pool *pgxpool.Pool
}

func NewBlockedDateRepository(pool *pgxpool.Pool) *BlockedDateRepository {
	return &BlockedDateRepository{pool: pool}
}

// Create блокирует дату
func (r *BlockedDateRepository) Create(ctx context.Context, blocked *model.BlockedDate) error {
	query := `
		INSERT INTO blocked_dates (owner_id, blocked_date)
		VALUES ($1, $2)
		ON CONFLICT (owner_id, blocked_date) DO NOTHING
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query, blocked.OwnerID, blocked.Date).
		Scan(&blocked.ID, &blocked.CreatedAt)
	if err != nil {
		// Повторная блокировка той же даты не ошибка
		if err == pgx.ErrNoRows {
			return nil
		}
		return fmt.Errorf("create blocked date: %w", err)
	}

	return nil
}

// Exists проверяет, заблокирована ли дата
func (r *BlockedDateRepository) Exists(ctx context.Context, ownerID int64, date time.Time) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM blocked_dates WHERE owner_id = $1 AND blocked_date = $2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, ownerID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("check blocked date: %w", err)
	}

	return exists, nil
}

// GetUpcoming получает заблокированные даты начиная с указанной
func (r *BlockedDateRepository) GetUpcoming(ctx context.Context, ownerID int64, from time.Time) ([]*model.BlockedDate, error) {
	query := `
		SELECT id, owner_id, blocked_date, created_at
		FROM blocked_dates
		WHERE owner_id = $1 AND blocked_date >= $2
		ORDER BY blocked_date
	`

	rows, err := r.pool.Query(ctx, query, ownerID, from)
	if err != nil {
		return nil, fmt.Errorf("get upcoming blocked dates: %w", err)
	}
	defer rows.Close()

	var dates []*model.BlockedDate
	for rows.Next() {
		var blocked model.BlockedDate
		err := rows.Scan(&blocked.ID, &blocked.OwnerID, &blocked.Date, &blocked.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan blocked date: %w", err)
		}
		dates = append(dates, &blocked)
	}

	return dates, nil
}

// Delete снимает блокировку по ID
func (r *BlockedDateRepository) Delete(ctx context.Context, id, ownerID int64) error {
	query := `DELETE FROM blocked_dates WHERE id = $1 AND owner_id = $2`

	result, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete blocked date: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("blocked date not found")
	}

	return nil
}
