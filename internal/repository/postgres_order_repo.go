package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/foodberry/backend/internal/model"
)

// PostgresOrderRepo — репозиторий заказов на PostgreSQL.
type PostgresOrderRepo struct {
	db *sql.DB
}

// NewPostgresOrderRepo создаёт PostgresOrderRepo.
func NewPostgresOrderRepo(db *sql.DB) *PostgresOrderRepo {
	return &PostgresOrderRepo{db: db}
}

// Create создаёт заказ вместе с календарём дней и заморозками в одной транзакции.
func (r *PostgresOrderRepo) Create(ctx context.Context, order *model.Order, days []model.OrderDay, freezes []model.Freeze) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("не удалось открыть транзакцию: %w", err)
	}
	defer tx.Rollback()

	var promoID sql.NullString
	if order.PromoCodeID != nil {
		promoID = sql.NullString{String: *order.PromoCodeID, Valid: true}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO orders (
			id, city_id, menu_id, customer_name, customer_phone, address, locale,
			first_delivery_date, days_count, skipped_weekdays,
			price_per_day, total_price, discount, promo_code_id, status, created_at, updated_at
		 ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		order.ID, order.CityID, order.MenuID, order.CustomerName, order.CustomerPhone,
		order.Address, order.Locale, order.FirstDeliveryDate, order.DaysCount,
		pq.Array(weekdaysToInt64(order.SkippedWeekdays)),
		order.PricePerDay, order.TotalPrice, order.Discount, promoID,
		order.Status, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("не удалось создать заказ: %w", err)
	}

	if err := insertDays(ctx, tx, order.ID, days); err != nil {
		return err
	}

	for _, f := range freezes {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO order_freezes (id, order_id, start_date, end_date)
			 VALUES ($1, $2, $3, $4)`,
			f.ID, order.ID, f.StartDate, f.EndDate,
		)
		if err != nil {
			return fmt.Errorf("не удалось сохранить заморозку заказа: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("не удалось зафиксировать транзакцию: %w", err)
	}
	return nil
}

// FindByID возвращает заказ по идентификатору. Если заказ не найден, возвращает nil.
func (r *PostgresOrderRepo) FindByID(ctx context.Context, id string) (*model.Order, error) {
	order := &model.Order{}
	var promoID sql.NullString
	var skippedWeekdays pq.Int64Array

	err := r.db.QueryRowContext(ctx,
		`SELECT id, city_id, menu_id, customer_name, customer_phone, address, locale,
		        first_delivery_date, days_count, skipped_weekdays,
		        price_per_day, total_price, discount, promo_code_id, status, created_at, updated_at
		 FROM orders WHERE id = $1`,
		id,
	).Scan(
		&order.ID, &order.CityID, &order.MenuID, &order.CustomerName, &order.CustomerPhone,
		&order.Address, &order.Locale, &order.FirstDeliveryDate, &order.DaysCount,
		&skippedWeekdays, &order.PricePerDay, &order.TotalPrice, &order.Discount,
		&promoID, &order.Status, &order.CreatedAt, &order.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("не удалось получить заказ: %w", err)
	}

	order.SkippedWeekdays = int64ToWeekdays(skippedWeekdays)
	if promoID.Valid {
		order.PromoCodeID = &promoID.String
	}
	return order, nil
}

// List возвращает заказы для админ-панели, новые первыми.
func (r *PostgresOrderRepo) List(ctx context.Context, status model.OrderStatus, limit, offset int) ([]*model.Order, error) {
	query := `SELECT id, city_id, menu_id, customer_name, customer_phone, address, locale,
	                 first_delivery_date, days_count, skipped_weekdays,
	                 price_per_day, total_price, discount, promo_code_id, status, created_at, updated_at
	          FROM orders`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		args = append(args, status, limit, offset)
	} else {
		query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить список заказов: %w", err)
	}
	defer rows.Close()

	var orders []*model.Order
	for rows.Next() {
		order := &model.Order{}
		var promoID sql.NullString
		var skippedWeekdays pq.Int64Array
		if err := rows.Scan(
			&order.ID, &order.CityID, &order.MenuID, &order.CustomerName, &order.CustomerPhone,
			&order.Address, &order.Locale, &order.FirstDeliveryDate, &order.DaysCount,
			&skippedWeekdays, &order.PricePerDay, &order.TotalPrice, &order.Discount,
			&promoID, &order.Status, &order.CreatedAt, &order.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("не удалось прочитать строку заказа: %w", err)
		}
		order.SkippedWeekdays = int64ToWeekdays(skippedWeekdays)
		if promoID.Valid {
			order.PromoCodeID = &promoID.String
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("не удалось обойти список заказов: %w", err)
	}
	return orders, nil
}

// ListDays возвращает календарь дней заказа в хронологическом порядке.
func (r *PostgresOrderRepo) ListDays(ctx context.Context, orderID string) ([]model.OrderDay, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, order_id, date, is_skipped, skip_type, delivered
		 FROM order_days WHERE order_id = $1 ORDER BY date ASC`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить календарь заказа: %w", err)
	}
	defer rows.Close()

	var days []model.OrderDay
	for rows.Next() {
		var day model.OrderDay
		var skipType sql.NullString
		if err := rows.Scan(&day.ID, &day.OrderID, &day.Date, &day.IsSkipped, &skipType, &day.Delivered); err != nil {
			return nil, fmt.Errorf("не удалось прочитать день заказа: %w", err)
		}
		if skipType.Valid {
			st := model.DaySkipType(skipType.String)
			day.SkipType = &st
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("не удалось обойти календарь заказа: %w", err)
	}
	return days, nil
}

// ListFreezes возвращает заморозки заказа в порядке добавления.
func (r *PostgresOrderRepo) ListFreezes(ctx context.Context, orderID string) ([]model.Freeze, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, order_id, start_date, end_date
		 FROM order_freezes WHERE order_id = $1 ORDER BY start_date ASC`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить заморозки заказа: %w", err)
	}
	defer rows.Close()

	var freezes []model.Freeze
	for rows.Next() {
		var f model.Freeze
		if err := rows.Scan(&f.ID, &f.OrderID, &f.StartDate, &f.EndDate); err != nil {
			return nil, fmt.Errorf("не удалось прочитать заморозку заказа: %w", err)
		}
		freezes = append(freezes, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("не удалось обойти заморозки заказа: %w", err)
	}
	return freezes, nil
}

// AddFreezeAndReplaceDays добавляет заморозку и заменяет календарь
// дней заказа в одной транзакции.
func (r *PostgresOrderRepo) AddFreezeAndReplaceDays(ctx context.Context, orderID string, freeze model.Freeze, days []model.OrderDay) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("не удалось открыть транзакцию: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO order_freezes (id, order_id, start_date, end_date)
		 VALUES ($1, $2, $3, $4)`,
		freeze.ID, orderID, freeze.StartDate, freeze.EndDate,
	)
	if err != nil {
		return fmt.Errorf("не удалось сохранить заморозку заказа: %w", err)
	}

	// Доставленность уже прошедших дней сохраняется заменой календаря:
	// воркер помечает прошедшие дни при следующем проходе.
	_, err = tx.ExecContext(ctx, `DELETE FROM order_days WHERE order_id = $1`, orderID)
	if err != nil {
		return fmt.Errorf("не удалось очистить календарь заказа: %w", err)
	}

	if err := insertDays(ctx, tx, orderID, days); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `UPDATE orders SET updated_at = NOW() WHERE id = $1`, orderID)
	if err != nil {
		return fmt.Errorf("не удалось обновить заказ: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("не удалось зафиксировать транзакцию: %w", err)
	}
	return nil
}

// UpdateStatus обновляет статус заказа.
func (r *PostgresOrderRepo) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("не удалось обновить статус заказа: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("не удалось получить результат обновления: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("заказ не найден: %s", id)
	}
	return nil
}

// insertDays вставляет строки календаря в рамках открытой транзакции.
func insertDays(ctx context.Context, tx *sql.Tx, orderID string, days []model.OrderDay) error {
	for _, day := range days {
		var skipType sql.NullString
		if day.SkipType != nil {
			skipType = sql.NullString{String: string(*day.SkipType), Valid: true}
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO order_days (id, order_id, date, is_skipped, skip_type, delivered)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			day.ID, orderID, day.Date, day.IsSkipped, skipType, day.Delivered,
		)
		if err != nil {
			return fmt.Errorf("не удалось сохранить день заказа: %w", err)
		}
	}
	return nil
}

// compile-time interface check
var _ OrderRepository = (*PostgresOrderRepo)(nil)
