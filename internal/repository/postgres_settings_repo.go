package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/foodberry/backend/internal/model"
)

// PostgresSettingsRepo — репозиторий глобальных настроек доставки на PostgreSQL.
// Таблица delivery_settings содержит одну строку.
type PostgresSettingsRepo struct {
	db *sql.DB
}

// NewPostgresSettingsRepo создаёт PostgresSettingsRepo.
func NewPostgresSettingsRepo(db *sql.DB) *PostgresSettingsRepo {
	return &PostgresSettingsRepo{db: db}
}

// Get возвращает текущие настройки доставки.
func (r *PostgresSettingsRepo) Get(ctx context.Context) (*model.DeliverySettings, error) {
	settings := &model.DeliverySettings{}
	var weekdays pq.Int64Array

	err := r.db.QueryRowContext(ctx,
		`SELECT id, delivery_weekdays, version, updated_at
		 FROM delivery_settings LIMIT 1`,
	).Scan(&settings.ID, &weekdays, &settings.Version, &settings.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить настройки доставки: %w", err)
	}

	settings.DeliveryWeekdays = int64ToWeekdays(weekdays)
	return settings, nil
}

// UpdateWeekdays заменяет набор доставочных дней недели и увеличивает версию настроек.
func (r *PostgresSettingsRepo) UpdateWeekdays(ctx context.Context, weekdays []model.WeekDay) (*model.DeliverySettings, error) {
	settings := &model.DeliverySettings{}
	var stored pq.Int64Array

	err := r.db.QueryRowContext(ctx,
		`UPDATE delivery_settings
		 SET delivery_weekdays = $1, version = version + 1, updated_at = NOW()
		 RETURNING id, delivery_weekdays, version, updated_at`,
		pq.Array(weekdaysToInt64(weekdays)),
	).Scan(&settings.ID, &stored, &settings.Version, &settings.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("не удалось обновить настройки доставки: %w", err)
	}

	settings.DeliveryWeekdays = int64ToWeekdays(stored)
	return settings, nil
}

// compile-time interface check
var _ SettingsRepository = (*PostgresSettingsRepo)(nil)
