// Package maintenance содержит ежедневный обслуживающий воркер:
// отметку прошедших дней доставки, завершение исчерпанных заказов
// и отключение просроченных промокодов. Все шаги идемпотентны и
// рассчитаны на повторный запуск без побочных эффектов.
package maintenance

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/foodberry/backend/internal/repository"
)

// Executor абстрагирует ExecContext. Принимает *sql.DB или *sql.Tx.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// MetricsRecorder — интерфейс записи метрик обслуживающего воркера.
type MetricsRecorder interface {
	// RecordDaysDelivered увеличивает счётчик доставленных дней.
	RecordDaysDelivered(count int)
	// RecordOrdersCompleted увеличивает счётчик завершённых заказов.
	RecordOrdersCompleted(count int)
}

// Job — обслуживающий воркер заказов и промокодов.
type Job struct {
	db        Executor
	promoRepo repository.PromoCodeRepository
	metrics   MetricsRecorder
	logger    *slog.Logger

	// now подменяется в тестах.
	now func() time.Time
}

// NewJob создаёт обслуживающий воркер. metrics может быть nil.
func NewJob(db Executor, promoRepo repository.PromoCodeRepository, metrics MetricsRecorder, logger *slog.Logger) *Job {
	return &Job{
		db:        db,
		promoRepo: promoRepo,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

// Start запускает воркер с указанным интервалом.
// Первый проход выполняется сразу, далее по тикеру
// до отмены контекста.
func (j *Job) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	j.logger.Info("maintenance worker started",
		slog.Duration("interval", interval),
	)

	if err := j.Run(ctx); err != nil {
		j.logger.Error("maintenance run failed",
			slog.String("error", err.Error()),
		)
	}

	for {
		select {
		case <-ctx.Done():
			j.logger.Info("maintenance worker stopped")
			return
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				j.logger.Error("maintenance run failed",
					slog.String("error", err.Error()),
				)
			}
		}
	}
}

// Run выполняет один проход обслуживания: отмечает прошедшие дни
// доставленными, завершает заказы без оставшихся доставок и
// отключает просроченные промокоды.
func (j *Job) Run(ctx context.Context) error {
	start := j.now()
	today := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)

	delivered, err := j.markDaysDelivered(ctx, today)
	if err != nil {
		return fmt.Errorf("не удалось отметить доставленные дни: %w", err)
	}

	completed, err := j.completeFinishedOrders(ctx)
	if err != nil {
		return fmt.Errorf("не удалось завершить исчерпанные заказы: %w", err)
	}

	expired, err := j.promoRepo.DeactivateExpired(ctx, start)
	if err != nil {
		return fmt.Errorf("не удалось отключить просроченные промокоды: %w", err)
	}

	if j.metrics != nil {
		j.metrics.RecordDaysDelivered(int(delivered))
		j.metrics.RecordOrdersCompleted(int(completed))
	}

	j.logger.Info("maintenance run completed",
		slog.Int64("days_delivered", delivered),
		slog.Int64("orders_completed", completed),
		slog.Int64("promos_deactivated", expired),
		slog.Float64("duration_ms", float64(time.Since(start).Milliseconds())),
	)

	return nil
}

// markDaysDelivered отмечает доставленными прошедшие дни активных
// заказов. Дни WEEKDAY_SKIPPED и FROZEN доставки не имеют и
// не отмечаются. DELIVERY_ONLY — обычная доставка вне лимита.
func (j *Job) markDaysDelivered(ctx context.Context, today time.Time) (int64, error) {
	query := `
		UPDATE order_days SET delivered = TRUE
		WHERE delivered = FALSE
		  AND date < $1
		  AND (NOT is_skipped OR skip_type = 'DELIVERY_ONLY')
		  AND order_id IN (SELECT id FROM orders WHERE status = 'active')`

	result, err := j.db.ExecContext(ctx, query, today)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// completeFinishedOrders переводит в completed активные заказы,
// у которых не осталось недоставленных дней с доставкой.
func (j *Job) completeFinishedOrders(ctx context.Context) (int64, error) {
	query := `
		UPDATE orders SET status = 'completed', updated_at = now()
		WHERE status = 'active'
		  AND NOT EXISTS (
			SELECT 1 FROM order_days d
			WHERE d.order_id = orders.id
			  AND d.delivered = FALSE
			  AND (NOT d.is_skipped OR d.skip_type = 'DELIVERY_ONLY')
		  )`

	result, err := j.db.ExecContext(ctx, query)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
