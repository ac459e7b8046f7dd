package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pr-poehali-dev/telegram-diary-bot/internal/repository/base"
)

// SettingsRepository хранит настройки владельца парами ключ-значение
type SettingsRepository struct {
	*base.Repository
}

func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{Repository: base.NewRepository(pool)}
}

// GetAll получает все настройки владельца
func (r *SettingsRepository) GetAll(ctx context.Context, ownerID int64) (map[string]string, error) {
	query := `SELECT key, value FROM settings WHERE owner_id = $1`

	rows, err := r.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		settings[key] = value
	}

	return settings, nil
}

// Set записывает настройку, перезаписывая существующее значение
func (r *SettingsRepository) Set(ctx context.Context, ownerID int64, key, value string) error {
	query := `
		INSERT INTO settings (owner_id, key, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (owner_id, key) DO UPDATE SET value = EXCLUDED.value
	`

	if _, err := r.ExecAffected(ctx, query, ownerID, key, value); err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}

	return nil
}
