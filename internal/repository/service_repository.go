package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pr-poehali-dev/telegram-diary-bot/internal/model"
)

type ServiceRepository struct {
	pool *pgxpool.Pool
}

func NewServiceRepository(pool *pgxpool.Pool) *ServiceRepository {
	return &ServiceRepository{pool: pool}
}

// Create создаёт новую услугу
func (r *ServiceRepository) Create(ctx context.Context, service *model.Service) error {
	query := `
		INSERT INTO services (owner_id, name, duration_minutes, price, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		service.OwnerID,
		service.Name,
		service.DurationMinutes,
		service.Price,
		service.Active,
	).Scan(&service.ID, &service.CreatedAt)

	if err != nil {
		return fmt.Errorf("create service: %w", err)
	}

	return nil
}

// GetByID получает услугу по ID
func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*model.Service, error) {
	query := `
		SELECT id, owner_id, name, duration_minutes, price, active, created_at
		FROM services
		WHERE id = $1
	`

	var service model.Service
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&service.ID,
		&service.OwnerID,
		&service.Name,
		&service.DurationMinutes,
		&service.Price,
		&service.Active,
		&service.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get service by id: %w", err)
	}

	return &service, nil
}

// GetByOwner получает все услуги владельца
func (r *ServiceRepository) GetByOwner(ctx context.Context, ownerID int64) ([]*model.Service, error) {
	query := `
		SELECT id, owner_id, name, duration_minutes, price, active, created_at
		FROM services
		WHERE owner_id = $1
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get services by owner: %w", err)
	}
	defer rows.Close()

	var services []*model.Service
	for rows.Next() {
		var service model.Service
		err := rows.Scan(
			&service.ID,
			&service.OwnerID,
			&service.Name,
			&service.DurationMinutes,
			&service.Price,
			&service.Active,
			&service.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		services = append(services, &service)
	}

	return services, nil
}

// Update обновляет услугу
func (r *ServiceRepository) Update(ctx context.Context, service *model.Service) error {
	query := `
		UPDATE services
		SET name = $1, duration_minutes = $2, price = $3, active = $4
		WHERE id = $5 AND owner_id = $6
	`

	result, err := r.pool.Exec(
		ctx, query,
		service.Name,
		service.DurationMinutes,
		service.Price,
		service.Active,
		service.ID,
		service.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("update service: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("service not found")
	}

	return nil
}

// Delete удаляет услугу
func (r *ServiceRepository) Delete(ctx context.Context, id, ownerID int64) error {
	query := `DELETE FROM services WHERE id = $1 AND owner_id = $2`

	result, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("service not found")
	}

	return nil
}
