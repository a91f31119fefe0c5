package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/foodberry/backend/internal/model"
)

// PostgresMenuRepo — репозиторий меню и блюд на PostgreSQL.
type PostgresMenuRepo struct {
	db *sql.DB
}

// NewPostgresMenuRepo создаёт PostgresMenuRepo.
func NewPostgresMenuRepo(db *sql.DB) *PostgresMenuRepo {
	return &PostgresMenuRepo{db: db}
}

// FindByID возвращает меню по идентификатору. Если меню не найдено, возвращает nil.
func (r *PostgresMenuRepo) FindByID(ctx context.Context, id string) (*model.Menu, error) {
	menu := &model.Menu{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title_ru, title_he, description_ru, description_he,
		        price_per_day, cycle_position, is_active, created_at, updated_at
		 FROM menus WHERE id = $1`,
		id,
	).Scan(
		&menu.ID, &menu.TitleRu, &menu.TitleHe, &menu.DescriptionRu, &menu.DescriptionHe,
		&menu.PricePerDay, &menu.CyclePosition, &menu.IsActive, &menu.CreatedAt, &menu.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("не удалось получить меню: %w", err)
	}
	return menu, nil
}

// ListActive возвращает активные меню в порядке позиции в цикле ротации.
func (r *PostgresMenuRepo) ListActive(ctx context.Context) ([]*model.Menu, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title_ru, title_he, description_ru, description_he,
		        price_per_day, cycle_position, is_active, created_at, updated_at
		 FROM menus WHERE is_active = TRUE ORDER BY cycle_position ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить список меню: %w", err)
	}
	defer rows.Close()

	var menus []*model.Menu
	for rows.Next() {
		menu := &model.Menu{}
		if err := rows.Scan(
			&menu.ID, &menu.TitleRu, &menu.TitleHe, &menu.DescriptionRu, &menu.DescriptionHe,
			&menu.PricePerDay, &menu.CyclePosition, &menu.IsActive, &menu.CreatedAt, &menu.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("не удалось прочитать строку меню: %w", err)
		}
		menus = append(menus, menu)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("не удалось обойти список меню: %w", err)
	}
	return menus, nil
}

// Create создаёт меню.
func (r *PostgresMenuRepo) Create(ctx context.Context, menu *model.Menu) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO menus (id, title_ru, title_he, description_ru, description_he,
		                    price_per_day, cycle_position, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		menu.ID, menu.TitleRu, menu.TitleHe, menu.DescriptionRu, menu.DescriptionHe,
		menu.PricePerDay, menu.CyclePosition, menu.IsActive, menu.CreatedAt, menu.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("не удалось создать меню: %w", err)
	}
	return nil
}

// Update обновляет меню.
func (r *PostgresMenuRepo) Update(ctx context.Context, menu *model.Menu) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE menus SET title_ru = $2, title_he = $3, description_ru = $4, description_he = $5,
		                  price_per_day = $6, cycle_position = $7, is_active = $8, updated_at = NOW()
		 WHERE id = $1`,
		menu.ID, menu.TitleRu, menu.TitleHe, menu.DescriptionRu, menu.DescriptionHe,
		menu.PricePerDay, menu.CyclePosition, menu.IsActive,
	)
	if err != nil {
		return fmt.Errorf("не удалось обновить меню: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("не удалось получить результат обновления: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("меню не найдено: %s", menu.ID)
	}
	return nil
}

// Delete удаляет меню. Блюда удаляются каскадно.
func (r *PostgresMenuRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM menus WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("не удалось удалить меню: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("не удалось получить результат удаления: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("меню не найдено: %s", id)
	}
	return nil
}

// ListDishes возвращает блюда меню, сгруппированные по дню недели.
func (r *PostgresMenuRepo) ListDishes(ctx context.Context, menuID string) ([]*model.Dish, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, menu_id, title_ru, title_he, description_ru, description_he,
		        week_day, calories, proteins, fats, carbohydrates, created_at, updated_at
		 FROM dishes WHERE menu_id = $1 ORDER BY week_day ASC, created_at ASC`,
		menuID,
	)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить блюда меню: %w", err)
	}
	defer rows.Close()

	var dishes []*model.Dish
	for rows.Next() {
		dish := &model.Dish{}
		if err := rows.Scan(
			&dish.ID, &dish.MenuID, &dish.TitleRu, &dish.TitleHe, &dish.DescriptionRu, &dish.DescriptionHe,
			&dish.WeekDay, &dish.Calories, &dish.Proteins, &dish.Fats, &dish.Carbohydrates,
			&dish.CreatedAt, &dish.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("не удалось прочитать строку блюда: %w", err)
		}
		dishes = append(dishes, dish)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("не удалось обойти блюда меню: %w", err)
	}
	return dishes, nil
}

// CreateDish создаёт блюдо в составе меню.
func (r *PostgresMenuRepo) CreateDish(ctx context.Context, dish *model.Dish) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO dishes (id, menu_id, title_ru, title_he, description_ru, description_he,
		                     week_day, calories, proteins, fats, carbohydrates, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		dish.ID, dish.MenuID, dish.TitleRu, dish.TitleHe, dish.DescriptionRu, dish.DescriptionHe,
		dish.WeekDay, dish.Calories, dish.Proteins, dish.Fats, dish.Carbohydrates,
		dish.CreatedAt, dish.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("не удалось создать блюдо: %w", err)
	}
	return nil
}

// DeleteDish удаляет блюдо.
func (r *PostgresMenuRepo) DeleteDish(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM dishes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("не удалось удалить блюдо: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("не удалось получить результат удаления: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("блюдо не найдено: %s", id)
	}
	return nil
}

// compile-time interface check
var _ MenuRepository = (*PostgresMenuRepo)(nil)
