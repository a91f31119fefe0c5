package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/foodberry/backend/internal/model"
)

// PostgresPromoRepo — репозиторий промокодов на PostgreSQL.
type PostgresPromoRepo struct {
	db *sql.DB
}

// NewPostgresPromoRepo создаёт PostgresPromoRepo.
func NewPostgresPromoRepo(db *sql.DB) *PostgresPromoRepo {
	return &PostgresPromoRepo{db: db}
}

const promoColumns = `id, code, discount_type, discount_value, min_order_total,
                      valid_from, valid_to, usage_limit, usage_count, is_active,
                      created_at, updated_at`

func scanPromo(scan func(dest ...interface{}) error) (*model.PromoCode, error) {
	promo := &model.PromoCode{}
	err := scan(
		&promo.ID, &promo.Code, &promo.DiscountType, &promo.DiscountValue, &promo.MinOrderTotal,
		&promo.ValidFrom, &promo.ValidTo, &promo.UsageLimit, &promo.UsageCount, &promo.IsActive,
		&promo.CreatedAt, &promo.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return promo, nil
}

// FindByCode возвращает промокод по коду. Если промокод не найден, возвращает nil.
func (r *PostgresPromoRepo) FindByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+promoColumns+` FROM promo_codes WHERE code = $1`,
		code,
	)
	promo, err := scanPromo(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("не удалось получить промокод: %w", err)
	}
	return promo, nil
}

// Create создаёт промокод.
func (r *PostgresPromoRepo) Create(ctx context.Context, promo *model.PromoCode) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO promo_codes (id, code, discount_type, discount_value, min_order_total,
		                          valid_from, valid_to, usage_limit, usage_count, is_active,
		                          created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		promo.ID, promo.Code, promo.DiscountType, promo.DiscountValue, promo.MinOrderTotal,
		promo.ValidFrom, promo.ValidTo, promo.UsageLimit, promo.UsageCount, promo.IsActive,
		promo.CreatedAt, promo.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("не удалось создать промокод: %w", err)
	}
	return nil
}

// List возвращает промокоды для админ-панели, новые первыми.
func (r *PostgresPromoRepo) List(ctx context.Context) ([]*model.PromoCode, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+promoColumns+` FROM promo_codes ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить список промокодов: %w", err)
	}
	defer rows.Close()

	var promos []*model.PromoCode
	for rows.Next() {
		promo, err := scanPromo(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("не удалось прочитать строку промокода: %w", err)
		}
		promos = append(promos, promo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("не удалось обойти список промокодов: %w", err)
	}
	return promos, nil
}

// IncrementUsage атомарно увеличивает счётчик применений промокода.
func (r *PostgresPromoRepo) IncrementUsage(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE promo_codes SET usage_count = usage_count + 1, updated_at = NOW() WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("не удалось увеличить счётчик применений промокода: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("не удалось получить результат обновления: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("промокод не найден: %s", id)
	}
	return nil
}

// Deactivate выключает промокод.
func (r *PostgresPromoRepo) Deactivate(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE promo_codes SET is_active = FALSE, updated_at = NOW() WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("не удалось выключить промокод: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("не удалось получить результат обновления: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("промокод не найден: %s", id)
	}
	return nil
}

// DeactivateExpired выключает промокоды с истёкшим периодом действия.
func (r *PostgresPromoRepo) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE promo_codes SET is_active = FALSE, updated_at = NOW()
		 WHERE is_active = TRUE AND valid_to < $1`,
		now,
	)
	if err != nil {
		return 0, fmt.Errorf("не удалось выключить истёкшие промокоды: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("не удалось получить число затронутых промокодов: %w", err)
	}
	return affected, nil
}

// compile-time interface check
var _ PromoCodeRepository = (*PostgresPromoRepo)(nil)
