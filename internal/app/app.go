// Package app собирает приложение: конфигурацию, зависимости
// и режимы запуска (API-сервер, воркер, миграции).
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/foodberry/backend/internal/config"
	"github.com/foodberry/backend/internal/content"
	"github.com/foodberry/backend/internal/database"
	"github.com/foodberry/backend/internal/handler"
	"github.com/foodberry/backend/internal/logger"
	"github.com/foodberry/backend/internal/menu"
	"github.com/foodberry/backend/internal/metrics"
	"github.com/foodberry/backend/internal/middleware"
	"github.com/foodberry/backend/internal/order"
	"github.com/foodberry/backend/internal/promo"
	"github.com/foodberry/backend/internal/repository"
	"github.com/foodberry/backend/internal/settings"
	"github.com/foodberry/backend/internal/worker/maintenance"
)

// Init инициализирует приложение: настраивает JSON-логирование
// и загружает конфигурацию из переменных окружения.
// Если указан writer, логи пишутся в него.
func Init(w io.Writer) (*config.Config, error) {
	// Лог настраивается до чтения конфигурации.
	logger.SetupDefault(w)

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// Run — главная точка входа приложения.
// Разбирает сабкоманду из аргументов и запускает соответствующий режим.
// В args передаётся os.Args[1:].
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck — лёгкая сабкоманда без полной инициализации.
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
	)

	switch cmd {
	case CommandServe:
		return runServe(cfg)
	case CommandWorker:
		return runWorker(cfg)
	case CommandMigrate:
		return runMigrate(cfg)
	default:
		return runServe(cfg)
	}
}

// runServe запускает режим API-сервера.
// Открывает соединение с БД, собирает все зависимости и запускает
// HTTP-сервер. По SIGINT или SIGTERM выполняется graceful shutdown.
func runServe(cfg *config.Config) error {
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("database connection established")

	// Репозитории
	orderRepo := repository.NewPostgresOrderRepo(db)
	menuRepo := repository.NewPostgresMenuRepo(db)
	promoRepo := repository.NewPostgresPromoRepo(db)
	reviewRepo := repository.NewPostgresReviewRepo(db)
	faqRepo := repository.NewPostgresFAQRepo(db)
	teamRepo := repository.NewPostgresTeamRepo(db)
	cityRepo := repository.NewPostgresCityRepo(db)
	settingsRepo := repository.NewPostgresSettingsRepo(db)

	// Метрики
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// Доменные сервисы
	promoService := promo.NewService(promoRepo, slog.Default())
	menuService := menu.NewService(menuRepo, slog.Default())
	orderService := order.NewService(orderRepo, menuRepo, cityRepo, promoService, collector, slog.Default())
	contentService := content.NewService(reviewRepo, faqRepo, teamRepo, cityRepo, slog.Default())
	settingsService := settings.NewService(settingsRepo, slog.Default())

	// Ограничение частоты запросов
	rateLimiterCfg := middleware.RateLimiterConfig{
		GeneralRate:     rate.Limit(float64(cfg.RateLimitGeneral) / 60.0),
		GeneralBurst:    cfg.RateLimitGeneral,
		OrderRate:       rate.Limit(float64(cfg.RateLimitOrders) / 60.0),
		OrderBurst:      cfg.RateLimitOrders,
		CleanupInterval: cfg.RateLimitCleanup,
	}
	rateLimiter := middleware.NewRateLimiter(rateLimiterCfg)
	defer rateLimiter.Stop()

	router := handler.NewRouter(&handler.RouterDeps{
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		RateLimiter:       rateLimiter,
		MetricsRecorder:   collector,
		MetricsHandler:    metrics.Handler(registry),
		Logger:            slog.Default(),

		OrderService:    orderService,
		MenuService:     menuService,
		PromoService:    promoService,
		ContentService:  contentService,
		SettingsService: settingsService,
	})

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("API server starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("shutting down API server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// runWorker запускает режим обслуживающего воркера.
// Воркер периодически отмечает прошедшие дни доставленными,
// завершает исчерпанные заказы и отключает просроченные промокоды.
func runWorker(cfg *config.Config) error {
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("database connection established (worker)")

	promoRepo := repository.NewPostgresPromoRepo(db)

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	job := maintenance.NewJob(db, promoRepo, collector, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-stop
		slog.Info("shutting down worker...")
		cancel()
	}()

	slog.Info("worker starting",
		slog.Duration("maintenance_interval", cfg.MaintenanceInterval),
	)

	// Воркер блокирует основную горутину до отмены контекста.
	job.Start(ctx, cfg.MaintenanceInterval)

	slog.Info("worker stopped gracefully")
	return nil
}

// runMigrate применяет все непримененные миграции базы данных.
func runMigrate(cfg *config.Config) error {
	slog.Info("running database migrations",
		slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
	)

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database migrations completed successfully")
	return nil
}

// runHealthcheck опрашивает эндпоинт /health локального сервера.
// Используется как Docker-healthcheck в distroless-образе.
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// maskDatabaseURL скрывает учётные данные в URL базы данных.
func maskDatabaseURL(url string) string {
	if len(url) > 20 {
		return url[:12] + "***@..."
	}
	return "***"
}
