package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/foodberry/backend/internal/model"
)

// PostgresFAQRepo — репозиторий вопросов-ответов на PostgreSQL.
type PostgresFAQRepo struct {
	db *sql.DB
}

// NewPostgresFAQRepo создаёт PostgresFAQRepo.
func NewPostgresFAQRepo(db *sql.DB) *PostgresFAQRepo {
	return &PostgresFAQRepo{db: db}
}

// List возвращает вопросы-ответы в порядке позиции.
func (r *PostgresFAQRepo) List(ctx context.Context) ([]*model.FAQItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, question_ru, question_he, answer_ru, answer_he, position, created_at, updated_at
		 FROM faq_items ORDER BY position ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить список FAQ: %w", err)
	}
	defer rows.Close()

	var items []*model.FAQItem
	for rows.Next() {
		item := &model.FAQItem{}
		if err := rows.Scan(
			&item.ID, &item.QuestionRu, &item.QuestionHe, &item.AnswerRu, &item.AnswerHe,
			&item.Position, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("не удалось прочитать строку FAQ: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("не удалось обойти список FAQ: %w", err)
	}
	return items, nil
}

// Create создаёт вопрос-ответ.
func (r *PostgresFAQRepo) Create(ctx context.Context, item *model.FAQItem) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO faq_items (id, question_ru, question_he, answer_ru, answer_he, position, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		item.ID, item.QuestionRu, item.QuestionHe, item.AnswerRu, item.AnswerHe,
		item.Position, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("не удалось создать запись FAQ: %w", err)
	}
	return nil
}

// Update обновляет вопрос-ответ.
func (r *PostgresFAQRepo) Update(ctx context.Context, item *model.FAQItem) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE faq_items SET question_ru = $2, question_he = $3, answer_ru = $4, answer_he = $5,
		                      position = $6, updated_at = NOW()
		 WHERE id = $1`,
		item.ID, item.QuestionRu, item.QuestionHe, item.AnswerRu, item.AnswerHe, item.Position,
	)
	if err != nil {
		return fmt.Errorf("не удалось обновить запись FAQ: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("не удалось получить результат обновления: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("запись FAQ не найдена: %s", item.ID)
	}
	return nil
}

// Delete удаляет вопрос-ответ.
func (r *PostgresFAQRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM faq_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("не удалось удалить запись FAQ: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("не удалось получить результат удаления: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("запись FAQ не найдена: %s", id)
	}
	return nil
}

// PostgresTeamRepo — репозиторий страницы команды на PostgreSQL.
type PostgresTeamRepo struct {
	db *sql.DB
}

// NewPostgresTeamRepo создаёт PostgresTeamRepo.
func NewPostgresTeamRepo(db *sql.DB) *PostgresTeamRepo {
	return &PostgresTeamRepo{db: db}
}

// List возвращает сотрудников в порядке сортировки.
func (r *PostgresTeamRepo) List(ctx context.Context) ([]*model.TeamMember, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name_ru, name_he, position_ru, position_he, bio_ru, bio_he,
		        sort_order, created_at, updated_at
		 FROM team_members ORDER BY sort_order ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить список команды: %w", err)
	}
	defer rows.Close()

	var members []*model.TeamMember
	for rows.Next() {
		m := &model.TeamMember{}
		if err := rows.Scan(
			&m.ID, &m.NameRu, &m.NameHe, &m.PositionRu, &m.PositionHe, &m.BioRu, &m.BioHe,
			&m.SortOrder, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("не удалось прочитать строку сотрудника: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("не удалось обойти список команды: %w", err)
	}
	return members, nil
}

// Create создаёт запись сотрудника.
func (r *PostgresTeamRepo) Create(ctx context.Context, member *model.TeamMember) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO team_members (id, name_ru, name_he, position_ru, position_he,
		                           bio_ru, bio_he, sort_order, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		member.ID, member.NameRu, member.NameHe, member.PositionRu, member.PositionHe,
		member.BioRu, member.BioHe, member.SortOrder, member.CreatedAt, member.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("не удалось создать запись сотрудника: %w", err)
	}
	return nil
}

// Delete удаляет запись сотрудника.
func (r *PostgresTeamRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM team_members WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("не удалось удалить запись сотрудника: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("не удалось получить результат удаления: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("запись сотрудника не найдена: %s", id)
	}
	return nil
}

// PostgresCityRepo — репозиторий городов доставки на PostgreSQL.
type PostgresCityRepo struct {
	db *sql.DB
}

// NewPostgresCityRepo создаёт PostgresCityRepo.
func NewPostgresCityRepo(db *sql.DB) *PostgresCityRepo {
	return &PostgresCityRepo{db: db}
}

// FindByID возвращает город по идентификатору. Если город не найден, возвращает nil.
func (r *PostgresCityRepo) FindByID(ctx context.Context, id string) (*model.City, error) {
	city := &model.City{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name_ru, name_he, is_active, created_at FROM cities WHERE id = $1`,
		id,
	).Scan(&city.ID, &city.NameRu, &city.NameHe, &city.IsActive, &city.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("не удалось получить город: %w", err)
	}
	return city, nil
}

// ListActive возвращает активные города доставки.
func (r *PostgresCityRepo) ListActive(ctx context.Context) ([]*model.City, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name_ru, name_he, is_active, created_at
		 FROM cities WHERE is_active = TRUE ORDER BY name_ru ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить список городов: %w", err)
	}
	defer rows.Close()

	var cities []*model.City
	for rows.Next() {
		city := &model.City{}
		if err := rows.Scan(&city.ID, &city.NameRu, &city.NameHe, &city.IsActive, &city.CreatedAt); err != nil {
			return nil, fmt.Errorf("не удалось прочитать строку города: %w", err)
		}
		cities = append(cities, city)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("не удалось обойти список городов: %w", err)
	}
	return cities, nil
}

// Create создаёт город.
func (r *PostgresCityRepo) Create(ctx context.Context, city *model.City) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO cities (id, name_ru, name_he, is_active, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		city.ID, city.NameRu, city.NameHe, city.IsActive, city.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("не удалось создать город: %w", err)
	}
	return nil
}

// compile-time interface checks
var (
	_ FAQRepository  = (*PostgresFAQRepo)(nil)
	_ TeamRepository = (*PostgresTeamRepo)(nil)
	_ CityRepository = (*PostgresCityRepo)(nil)
)
