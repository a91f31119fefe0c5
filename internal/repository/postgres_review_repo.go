package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/foodberry/backend/internal/model"
)

// PostgresReviewRepo — репозиторий отзывов на PostgreSQL.
type PostgresReviewRepo struct {
	db *sql.DB
}

// NewPostgresReviewRepo создаёт PostgresReviewRepo.
func NewPostgresReviewRepo(db *sql.DB) *PostgresReviewRepo {
	return &PostgresReviewRepo{db: db}
}

// Create сохраняет отзыв (до модерации is_approved = false).
func (r *PostgresReviewRepo) Create(ctx context.Context, review *model.Review) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO reviews (id, author, text, rating, locale, is_approved, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		review.ID, review.Author, review.Text, review.Rating, review.Locale,
		review.IsApproved, review.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("не удалось сохранить отзыв: %w", err)
	}
	return nil
}

// ListApproved возвращает одобренные отзывы локали, новые первыми.
func (r *PostgresReviewRepo) ListApproved(ctx context.Context, locale string) ([]*model.Review, error) {
	return r.list(ctx,
		`SELECT id, author, text, rating, locale, is_approved, created_at
		 FROM reviews WHERE is_approved = TRUE AND locale = $1 ORDER BY created_at DESC`,
		locale,
	)
}

// ListPending возвращает отзывы, ожидающие модерации.
func (r *PostgresReviewRepo) ListPending(ctx context.Context) ([]*model.Review, error) {
	return r.list(ctx,
		`SELECT id, author, text, rating, locale, is_approved, created_at
		 FROM reviews WHERE is_approved = FALSE ORDER BY created_at ASC`,
	)
}

func (r *PostgresReviewRepo) list(ctx context.Context, query string, args ...interface{}) ([]*model.Review, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить список отзывов: %w", err)
	}
	defer rows.Close()

	var reviews []*model.Review
	for rows.Next() {
		review := &model.Review{}
		if err := rows.Scan(
			&review.ID, &review.Author, &review.Text, &review.Rating,
			&review.Locale, &review.IsApproved, &review.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("не удалось прочитать строку отзыва: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("не удалось обойти список отзывов: %w", err)
	}
	return reviews, nil
}

// Approve помечает отзыв одобренным.
func (r *PostgresReviewRepo) Approve(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE reviews SET is_approved = TRUE WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("не удалось одобрить отзыв: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("не удалось получить результат обновления: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("отзыв не найден: %s", id)
	}
	return nil
}

// Delete удаляет отзыв.
func (r *PostgresReviewRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("не удалось удалить отзыв: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("не удалось получить результат удаления: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("отзыв не найден: %s", id)
	}
	return nil
}

// compile-time interface check
var _ ReviewRepository = (*PostgresReviewRepo)(nil)
