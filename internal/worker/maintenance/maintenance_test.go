package maintenance

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/foodberry/backend/internal/model"
)

// --- Моки ---

type fakeResult struct {
	rowsAffected int64
}

func (r *fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r *fakeResult) RowsAffected() (int64, error) { return r.rowsAffected, nil }

type execCall struct {
	query string
	args  []interface{}
}

type mockExecutor struct {
	calls   []execCall
	results []sql.Result
	err     error
}

func (m *mockExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	m.calls = append(m.calls, execCall{query: query, args: args})
	if m.err != nil {
		return nil, m.err
	}
	result := sql.Result(&fakeResult{})
	if len(m.results) >= len(m.calls) {
		result = m.results[len(m.calls)-1]
	}
	return result, nil
}

type mockPromoRepo struct {
	deactivateExpiredFn func(ctx context.Context, now time.Time) (int64, error)
}

func (m *mockPromoRepo) FindByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	return nil, nil
}
func (m *mockPromoRepo) Create(ctx context.Context, promo *model.PromoCode) error { return nil }
func (m *mockPromoRepo) List(ctx context.Context) ([]*model.PromoCode, error)     { return nil, nil }
func (m *mockPromoRepo) IncrementUsage(ctx context.Context, id string) error      { return nil }
func (m *mockPromoRepo) Deactivate(ctx context.Context, id string) error          { return nil }
func (m *mockPromoRepo) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	if m.deactivateExpiredFn != nil {
		return m.deactivateExpiredFn(ctx, now)
	}
	return 0, nil
}

type mockMetrics struct {
	daysDelivered   int
	ordersCompleted int
}

func (m *mockMetrics) RecordDaysDelivered(count int)   { m.daysDelivered += count }
func (m *mockMetrics) RecordOrdersCompleted(count int) { m.ordersCompleted += count }

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// --- Тесты ---

// TestJob_Run_MarksDaysAndCompletesOrders проверяет полный проход
// обслуживания и записанные метрики.
func TestJob_Run_MarksDaysAndCompletesOrders(t *testing.T) {
	var buf bytes.Buffer
	exec := &mockExecutor{
		results: []sql.Result{
			&fakeResult{rowsAffected: 7},
			&fakeResult{rowsAffected: 2},
		},
	}
	promoRepo := &mockPromoRepo{
		deactivateExpiredFn: func(ctx context.Context, now time.Time) (int64, error) {
			return 3, nil
		},
	}
	metrics := &mockMetrics{}

	job := NewJob(exec, promoRepo, metrics, newTestLogger(&buf))
	job.now = func() time.Time {
		return time.Date(2025, time.June, 18, 9, 30, 0, 0, time.UTC)
	}

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run() вернул ошибку: %v", err)
	}

	if len(exec.calls) != 2 {
		t.Fatalf("ожидалось 2 SQL-запроса, получено %d", len(exec.calls))
	}

	// Первый запрос отмечает доставленные дни строго до сегодня.
	first := exec.calls[0]
	if !strings.Contains(first.query, "UPDATE order_days SET delivered = TRUE") {
		t.Errorf("неожиданный первый запрос: %s", first.query)
	}
	if len(first.args) != 1 {
		t.Fatalf("ожидался 1 аргумент, получено %d", len(first.args))
	}
	today, ok := first.args[0].(time.Time)
	if !ok || !today.Equal(time.Date(2025, time.June, 18, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("граница даты = %v, ожидалось 2025-06-18 00:00 UTC", first.args[0])
	}

	// Второй запрос завершает заказы без оставшихся доставок.
	second := exec.calls[1]
	if !strings.Contains(second.query, "SET status = 'completed'") {
		t.Errorf("неожиданный второй запрос: %s", second.query)
	}

	if metrics.daysDelivered != 7 {
		t.Errorf("daysDelivered = %d, ожидалось 7", metrics.daysDelivered)
	}
	if metrics.ordersCompleted != 2 {
		t.Errorf("ordersCompleted = %d, ожидалось 2", metrics.ordersCompleted)
	}
}

// TestJob_Run_SkippedDaysExcluded проверяет, что пропущенные дни
// не отмечаются доставленными.
func TestJob_Run_SkippedDaysExcluded(t *testing.T) {
	var buf bytes.Buffer
	exec := &mockExecutor{}

	job := NewJob(exec, &mockPromoRepo{}, nil, newTestLogger(&buf))

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run() вернул ошибку: %v", err)
	}

	query := exec.calls[0].query
	if !strings.Contains(query, "NOT is_skipped OR skip_type = 'DELIVERY_ONLY'") {
		t.Errorf("запрос не исключает пропущенные дни: %s", query)
	}
	if !strings.Contains(query, "status = 'active'") {
		t.Errorf("запрос не ограничен активными заказами: %s", query)
	}
}

// TestJob_Run_ExecError проверяет возврат ошибки при сбое SQL.
func TestJob_Run_ExecError(t *testing.T) {
	var buf bytes.Buffer
	exec := &mockExecutor{err: errors.New("connection refused")}

	job := NewJob(exec, &mockPromoRepo{}, nil, newTestLogger(&buf))

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("ожидалась ошибка при сбое SQL")
	}
}

// TestJob_Run_PromoError проверяет возврат ошибки при сбое
// отключения промокодов.
func TestJob_Run_PromoError(t *testing.T) {
	var buf bytes.Buffer
	promoRepo := &mockPromoRepo{
		deactivateExpiredFn: func(ctx context.Context, now time.Time) (int64, error) {
			return 0, errors.New("connection refused")
		},
	}

	job := NewJob(&mockExecutor{}, promoRepo, nil, newTestLogger(&buf))

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("ожидалась ошибка при сбое отключения промокодов")
	}
}

// TestJob_Start_StopsOnContextCancel проверяет остановку по контексту.
func TestJob_Start_StopsOnContextCancel(t *testing.T) {
	var buf bytes.Buffer
	job := NewJob(&mockExecutor{}, &mockPromoRepo{}, nil, newTestLogger(&buf))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		job.Start(ctx, time.Hour)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Start не остановился после отмены контекста")
	}
}
