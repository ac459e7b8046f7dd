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

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

// Create создаёт новую запись клиента
func (r *BookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (public_code, client_id, service_id, owner_id, booking_date, start_minutes, end_minutes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		booking.PublicCode,
		booking.ClientID,
		booking.ServiceID,
		booking.OwnerID,
		booking.Date,
		booking.StartMinutes,
		booking.EndMinutes,
		booking.Status,
	).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create booking: %w", err)
	}

	return nil
}

// GetByID получает запись по ID
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	query := `
		SELECT id, public_code, client_id, service_id, owner_id, booking_date, start_minutes, end_minutes, status, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`

	var booking model.Booking
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.PublicCode,
		&booking.ClientID,
		&booking.ServiceID,
		&booking.OwnerID,
		&booking.Date,
		&booking.StartMinutes,
		&booking.EndMinutes,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking by id: %w", err)
	}

	return &booking, nil
}

// GetByDate получает записи владельца на дату с данными клиента и услуги
func (r *BookingRepository) GetByDate(ctx context.Context, ownerID int64, date time.Time) ([]*model.Booking, error) {
	query := `
		SELECT b.id, b.public_code, b.client_id, b.service_id, b.owner_id, b.booking_date,
		       b.start_minutes, b.end_minutes, b.status, b.created_at, b.updated_at,
		       COALESCE(u.name, ''), COALESCE(u.phone, ''), COALESCE(s.name, ''), COALESCE(s.price, 0)
		FROM bookings b
		LEFT JOIN clients c ON b.client_id = c.id
		LEFT JOIN users u ON c.user_id = u.id
		LEFT JOIN services s ON b.service_id = s.id
		WHERE b.owner_id = $1 AND b.booking_date = $2
		ORDER BY b.start_minutes
	`

	rows, err := r.pool.Query(ctx, query, ownerID, date)
	if err != nil {
		return nil, fmt.Errorf("get bookings by date: %w", err)
	}
	defer rows.Close()

	return scanBookingsWithDetails(rows)
}

// GetActiveIntervalsByDate возвращает интервалы неотменённых записей на дату.
// Это источник занятости для движка доступности.
func (r *BookingRepository) GetActiveIntervalsByDate(ctx context.Context, ownerID int64, date time.Time) ([]availability.TimeInterval, error) {
	query := `
		SELECT start_minutes, end_minutes
		FROM bookings
		WHERE owner_id = $1 AND booking_date = $2 AND status != 'cancelled'
	`

	rows, err := r.pool.Query(ctx, query, ownerID, date)
	if err != nil {
		return nil, fmt.Errorf("get active booking intervals: %w", err)
	}
	defer rows.Close()

	var intervals []availability.TimeInterval
	for rows.Next() {
		var interval availability.TimeInterval
		if err := rows.Scan(&interval.Start, &interval.End); err != nil {
			return nil, fmt.Errorf("scan booking interval: %w", err)
		}
		intervals = append(intervals, interval)
	}

	return intervals, nil
}

// GetPendingByOwner получает записи, ожидающие подтверждения
func (r *BookingRepository) GetPendingByOwner(ctx context.Context, ownerID int64, limit int) ([]*model.Booking, error) {
	query := `
		SELECT b.id, b.public_code, b.client_id, b.service_id, b.owner_id, b.booking_date,
		       b.start_minutes, b.end_minutes, b.status, b.created_at, b.updated_at,
		       COALESCE(u.name, ''), COALESCE(u.phone, ''), COALESCE(s.name, ''), COALESCE(s.price, 0)
		FROM bookings b
		LEFT JOIN clients c ON b.client_id = c.id
		LEFT JOIN users u ON c.user_id = u.id
		LEFT JOIN services s ON b.service_id = s.id
		WHERE b.owner_id = $1 AND b.status = 'pending'
		ORDER BY b.booking_date, b.start_minutes
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("get pending bookings: %w", err)
	}
	defer rows.Close()

	return scanBookingsWithDetails(rows)
}

// UpdateStatus обновляет статус записи
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, ownerID int64, status model.BookingStatus) error {
	query := `
		UPDATE bookings
		SET status = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2 AND owner_id = $3
	`

	result, err := r.pool.Exec(ctx, query, status, id, ownerID)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking not found")
	}

	return nil
}

// CancelByDate отменяет все активные записи владельца на дату.
// Используется при блокировке даты и при принудительном создании мероприятия.
func (r *BookingRepository) CancelByDate(ctx context.Context, ownerID int64, date time.Time) (int64, error) {
	query := `
		UPDATE bookings
		SET status = 'cancelled', updated_at = CURRENT_TIMESTAMP
		WHERE owner_id = $1 AND booking_date = $2 AND status IN ('pending', 'confirmed')
	`

	result, err := r.pool.Exec(ctx, query, ownerID, date)
	if err != nil {
		return 0, fmt.Errorf("cancel bookings by date: %w", err)
	}

	return result.RowsAffected(), nil
}

// CancelOverlapping отменяет активные записи на дату, пересекающиеся с интервалом
func (r *BookingRepository) CancelOverlapping(ctx context.Context, ownerID int64, date time.Time, startMinutes, endMinutes int) (int64, error) {
	query := `
		UPDATE bookings
		SET status = 'cancelled', updated_at = CURRENT_TIMESTAMP
		WHERE owner_id = $1 AND booking_date = $2
		  AND status IN ('pending', 'confirmed')
		  AND start_minutes < $4 AND end_minutes > $3
	`

	result, err := r.pool.Exec(ctx, query, ownerID, date, startMinutes, endMinutes)
	if err != nil {
		return 0, fmt.Errorf("cancel overlapping bookings: %w", err)
	}

	return result.RowsAffected(), nil
}

// CompleteBefore переводит подтверждённые записи прошедших дат в завершённые
// и возвращает ID клиентов завершённых записей
func (r *BookingRepository) CompleteBefore(ctx context.Context, ownerID int64, date time.Time) ([]int64, error) {
	query := `
		UPDATE bookings
		SET status = 'completed', updated_at = CURRENT_TIMESTAMP
		WHERE owner_id = $1 AND booking_date < $2 AND status = 'confirmed'
		RETURNING client_id
	`

	rows, err := r.pool.Query(ctx, query, ownerID, date)
	if err != nil {
		return nil, fmt.Errorf("complete past bookings: %w", err)
	}
	defer rows.Close()

	var clientIDs []int64
	for rows.Next() {
		var clientID int64
		if err := rows.Scan(&clientID); err != nil {
			return nil, fmt.Errorf("scan completed booking: %w", err)
		}
		clientIDs = append(clientIDs, clientID)
	}

	return clientIDs, nil
}

func scanBookingsWithDetails(rows pgx.Rows) ([]*model.Booking, error) {
	var bookings []*model.Booking
	for rows.Next() {
		var booking model.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.PublicCode,
			&booking.ClientID,
			&booking.ServiceID,
			&booking.OwnerID,
			&booking.Date,
			&booking.StartMinutes,
			&booking.EndMinutes,
			&booking.Status,
			&booking.CreatedAt,
			&booking.UpdatedAt,
			&booking.ClientName,
			&booking.ClientPhone,
			&booking.ServiceName,
			&booking.Price,
		)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	return bookings, nil
}
