// Package metrics предоставляет сбор и публикацию метрик Prometheus.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector — интерфейс записи метрик.
// Используется сервисным слоем и фоновым воркером.
type MetricsCollector interface {
	RecordOrderCreated()
	RecordScheduleComputed(calendarLen int)
	RecordFreezeAdded()
	RecordHTTPStatus(statusCode int)
	RecordDaysDelivered(count int)
	RecordOrdersCompleted(count int)
}

// Collector — реализация сбора метрик Prometheus.
type Collector struct {
	ordersCreated   prometheus.Counter
	scheduleLength  prometheus.Histogram
	freezesAdded    prometheus.Counter
	httpStatus      *prometheus.CounterVec
	daysDelivered   prometheus.Counter
	ordersCompleted prometheus.Counter
}

// NewCollector создаёт Collector и регистрирует метрики в указанном реестре.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		ordersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "foodberry_orders_created_total",
			Help: "Общее число оформленных заказов",
		}),
		scheduleLength: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "foodberry_schedule_length_days",
			Help:    "Длина рассчитанного календаря доставок в днях",
			Buckets: []float64{5, 10, 15, 20, 30, 45, 60, 90},
		}),
		freezesAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "foodberry_freezes_added_total",
			Help: "Общее число добавленных заморозок",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "foodberry_http_status_total",
			Help: "Число ответов по кодам HTTP-статуса",
		}, []string{"status_code"}),
		daysDelivered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "foodberry_days_delivered_total",
			Help: "Общее число дней, помеченных доставленными",
		}),
		ordersCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "foodberry_orders_completed_total",
			Help: "Общее число завершённых заказов",
		}),
	}

	reg.MustRegister(
		c.ordersCreated,
		c.scheduleLength,
		c.freezesAdded,
		c.httpStatus,
		c.daysDelivered,
		c.ordersCompleted,
	)

	return c
}

// RecordOrderCreated записывает оформление заказа.
func (c *Collector) RecordOrderCreated() {
	c.ordersCreated.Inc()
}

// RecordScheduleComputed записывает длину рассчитанного календаря.
func (c *Collector) RecordScheduleComputed(calendarLen int) {
	c.scheduleLength.Observe(float64(calendarLen))
}

// RecordFreezeAdded записывает добавление заморозки.
func (c *Collector) RecordFreezeAdded() {
	c.freezesAdded.Inc()
}

// RecordHTTPStatus записывает код HTTP-статуса ответа.
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordDaysDelivered записывает число дней, помеченных доставленными.
func (c *Collector) RecordDaysDelivered(count int) {
	c.daysDelivered.Add(float64(count))
}

// RecordOrdersCompleted записывает число завершённых заказов.
func (c *Collector) RecordOrdersCompleted(count int) {
	c.ordersCompleted.Add(float64(count))
}

// Handler возвращает HTTP-обработчик для скрейпа Prometheus.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute возвращает HTTP-обработчик эндпоинта /metrics.
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}
