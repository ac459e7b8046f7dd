package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pr-poehali-dev/telegram-diary-bot/internal/model"
)

type ClientRepository struct {
	pool *pgxpool.Pool
}

func NewClientRepository(pool *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{pool: pool}
}

// Create создаёт пользователя и клиента одним вызовом
func (r *ClientRepository) Create(ctx context.Context, ownerID int64, user *model.User) (*model.Client, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Клиент может не иметь Telegram-аккаунта, нулевой ID храним как NULL
	userQuery := `
		INSERT INTO users (telegram_id, role, name, phone, email)
		VALUES (NULLIF($1, 0), $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err = tx.QueryRow(
		ctx, userQuery,
		user.TelegramID,
		model.UserRoleClient,
		user.Name,
		user.Phone,
		user.Email,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	client := &model.Client{
		UserID:  user.ID,
		OwnerID: ownerID,
		Name:    user.Name,
		Phone:   user.Phone,
		Email:   user.Email,
	}

	clientQuery := `
		INSERT INTO clients (user_id, owner_id, total_visits)
		VALUES ($1, $2, 0)
		RETURNING id, created_at
	`
	err = tx.QueryRow(ctx, clientQuery, user.ID, ownerID).Scan(&client.ID, &client.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return client, nil
}

// GetByID получает клиента с данными пользователя
func (r *ClientRepository) GetByID(ctx context.Context, id int64) (*model.Client, error) {
	query := `
		SELECT c.id, c.user_id, c.owner_id, c.total_visits, c.last_visit_date, c.created_at,
		       u.name, u.phone, u.email
		FROM clients c
		JOIN users u ON c.user_id = u.id
		WHERE c.id = $1
	`

	var client model.Client
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&client.ID,
		&client.UserID,
		&client.OwnerID,
		&client.TotalVisits,
		&client.LastVisitDate,
		&client.CreatedAt,
		&client.Name,
		&client.Phone,
		&client.Email,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get client by id: %w", err)
	}

	return &client, nil
}

// GetByOwner получает клиентов владельца, отсортированных по числу визитов
func (r *ClientRepository) GetByOwner(ctx context.Context, ownerID int64) ([]*model.Client, error) {
	query := `
		SELECT c.id, c.user_id, c.owner_id, c.total_visits, c.last_visit_date, c.created_at,
		       u.name, u.phone, u.email
		FROM clients c
		JOIN users u ON c.user_id = u.id
		WHERE c.owner_id = $1
		ORDER BY c.total_visits DESC
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get clients by owner: %w", err)
	}
	defer rows.Close()

	var clients []*model.Client
	for rows.Next() {
		var client model.Client
		err := rows.Scan(
			&client.ID,
			&client.UserID,
			&client.OwnerID,
			&client.TotalVisits,
			&client.LastVisitDate,
			&client.CreatedAt,
			&client.Name,
			&client.Phone,
			&client.Email,
		)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, &client)
	}

	return clients, nil
}

// RecordVisit увеличивает счётчик визитов после завершённой записи
func (r *ClientRepository) RecordVisit(ctx context.Context, clientID int64) error {
	query := `
		UPDATE clients
		SET total_visits = total_visits + 1, last_visit_date = CURRENT_DATE
		WHERE id = $1
	`

	if _, err := r.pool.Exec(ctx, query, clientID); err != nil {
		return fmt.Errorf("record visit: %w", err)
	}

	return nil
}
