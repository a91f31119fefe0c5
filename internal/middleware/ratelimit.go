package middleware

import (
	"encoding/json"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiterConfig хранит настройки ограничения частоты запросов.
type RateLimiterConfig struct {
	GeneralRate     rate.Limit    // общий лимит API (req/sec)
	GeneralBurst    int           // общий размер burst
	OrderRate       rate.Limit    // лимит оформления заказов (req/sec)
	OrderBurst      int           // размер burst для заказов
	CleanupInterval time.Duration // период очистки устаревших записей
}

// DefaultRateLimiterConfig возвращает настройки по умолчанию:
// 120 запросов в минуту на адрес для API в целом,
// 10 запросов в минуту на адрес для оформления заказов.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		GeneralRate:     rate.Limit(120.0 / 60.0),
		GeneralBurst:    120,
		OrderRate:       rate.Limit(10.0 / 60.0),
		OrderBurst:      10,
		CleanupInterval: 5 * time.Minute,
	}
}

// clientLimiter хранит лимитер клиента и время последнего обращения.
type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter управляет ограничением частоты запросов по адресу клиента.
// Общий лимит API и лимит оформления заказов действуют независимо.
type RateLimiter struct {
	config RateLimiterConfig

	generalMu       sync.RWMutex
	generalLimiters map[string]*clientLimiter

	orderMu       sync.RWMutex
	orderLimiters map[string]*clientLimiter

	stopCh chan struct{}
}

// NewRateLimiter создаёт RateLimiter и запускает фоновую очистку
// устаревших записей.
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	rl := &RateLimiter{
		config:          config,
		generalLimiters: make(map[string]*clientLimiter),
		orderLimiters:   make(map[string]*clientLimiter),
		stopCh:          make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Stop останавливает фоновую горутину очистки.
func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
}

// GeneralMiddleware возвращает мидлвар общего лимита API.
func (rl *RateLimiter) GeneralMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP := ClientIP(r)
			limiter := rl.getOrCreateLimiter(&rl.generalMu, rl.generalLimiters,
				clientIP, rl.config.GeneralRate, rl.config.GeneralBurst)

			if !limiter.Allow() {
				writeRateLimitResponse(w, rl.config.GeneralRate)
				slog.Warn("rate limit exceeded",
					slog.String("client_ip", clientIP),
					slog.String("limit_type", "general"),
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// OrderMiddleware возвращает мидлвар лимита оформления заказов.
// Действует независимо от общего лимита API.
func (rl *RateLimiter) OrderMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP := ClientIP(r)
			limiter := rl.getOrCreateLimiter(&rl.orderMu, rl.orderLimiters,
				clientIP, rl.config.OrderRate, rl.config.OrderBurst)

			if !limiter.Allow() {
				writeRateLimitResponse(w, rl.config.OrderRate)
				slog.Warn("rate limit exceeded",
					slog.String("client_ip", clientIP),
					slog.String("limit_type", "order"),
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GeneralLimiterCount возвращает число записей общего лимитера.
// Для тестов и метрик.
func (rl *RateLimiter) GeneralLimiterCount() int {
	rl.generalMu.RLock()
	defer rl.generalMu.RUnlock()
	return len(rl.generalLimiters)
}

// OrderLimiterCount возвращает число записей лимитера заказов.
// Для тестов и метрик.
func (rl *RateLimiter) OrderLimiterCount() int {
	rl.orderMu.RLock()
	defer rl.orderMu.RUnlock()
	return len(rl.orderLimiters)
}

// getOrCreateLimiter возвращает лимитер клиента, создавая его при необходимости.
func (rl *RateLimiter) getOrCreateLimiter(
	mu *sync.RWMutex,
	limiters map[string]*clientLimiter,
	clientIP string,
	limit rate.Limit,
	burst int,
) *rate.Limiter {
	mu.RLock()
	cl, exists := limiters[clientIP]
	mu.RUnlock()

	if exists {
		mu.Lock()
		cl.lastAccess = time.Now()
		mu.Unlock()
		return cl.limiter
	}

	mu.Lock()
	defer mu.Unlock()

	// Повторная проверка под эксклюзивной блокировкой.
	if cl, exists := limiters[clientIP]; exists {
		cl.lastAccess = time.Now()
		return cl.limiter
	}

	limiter := rate.NewLimiter(limit, burst)
	limiters[clientIP] = &clientLimiter{
		limiter:    limiter,
		lastAccess: time.Now(),
	}

	return limiter
}

// cleanupLoop периодически удаляет устаревшие записи лимитеров.
func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCh:
			return
		}
	}
}

// cleanup удаляет записи, к которым не обращались дольше двух периодов очистки.
func (rl *RateLimiter) cleanup() {
	ttl := rl.config.CleanupInterval * 2
	now := time.Now()

	rl.generalMu.Lock()
	for ip, cl := range rl.generalLimiters {
		if now.Sub(cl.lastAccess) > ttl {
			delete(rl.generalLimiters, ip)
		}
	}
	rl.generalMu.Unlock()

	rl.orderMu.Lock()
	for ip, cl := range rl.orderLimiters {
		if now.Sub(cl.lastAccess) > ttl {
			delete(rl.orderLimiters, ip)
		}
	}
	rl.orderMu.Unlock()
}

// ClientIP извлекает адрес клиента из запроса.
// При наличии X-Forwarded-For берётся первый адрес списка
// (сервис работает за обратным прокси).
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.IndexByte(xff, ','); idx >= 0 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// writeRateLimitResponse записывает ответ 429 Too Many Requests.
// Retry-After содержит оценку секунд до пополнения токена.
func writeRateLimitResponse(w http.ResponseWriter, r rate.Limit) {
	retryAfterSec := int(math.Ceil(1.0 / float64(r)))
	if retryAfterSec < 1 {
		retryAfterSec = 1
	}

	w.Header().Set("Retry-After", strconv.Itoa(retryAfterSec))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)

	json.NewEncoder(w).Encode(map[string]string{
		"code":     "RATE_LIMIT_EXCEEDED",
		"message":  "Слишком много запросов.",
		"category": "system",
		"action":   "Подождите и повторите запрос позже.",
	})
}
