package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/foodberry/backend/internal/middleware"
)

// RouterDeps объединяет зависимости NewRouter.
type RouterDeps struct {
	// Мидлвары
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	MetricsRecorder   middleware.StatusRecorder
	MetricsHandler    http.Handler
	Logger            *slog.Logger

	// Сервисы
	OrderService    OrderServiceInterface
	MenuService     MenuServiceInterface
	PromoService    PromoServiceInterface
	ContentService  ContentServiceInterface
	SettingsService SettingsServiceInterface
}

// NewRouter собирает маршрутизацию всех эндпоинтов API и цепочку мидлваров.
//
// Порядок мидлваров:
//
//	Recovery → CORS → SecurityHeaders → Logging → Metrics → RateLimit(General)
//
// Оформление заказа дополнительно ограничено собственным лимитом.
// Админ-маршруты (/api/admin/*) рассчитаны на закрытый периметр:
// доступ к ним ограничивается на уровне обратного прокси.
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewLoggingMiddleware(logger))
	if deps.MetricsRecorder != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.MetricsRecorder))
	}

	orderHandler := NewOrderHandler(deps.OrderService)
	menuHandler := NewMenuHandler(deps.MenuService)
	promoHandler := NewPromoHandler(deps.PromoService)
	contentHandler := NewContentHandler(deps.ContentService)
	scheduleHandler := NewScheduleHandler(deps.SettingsService)

	// Проверка живости и метрики вне лимитов.
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	if deps.MetricsHandler != nil {
		r.Handle("/metrics", deps.MetricsHandler)
	}

	r.Group(func(r chi.Router) {
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// Публичный API витрины.
		r.Route("/api", func(r chi.Router) {
			// Расчёт расписания
			r.Route("/schedule", func(r chi.Router) {
				r.Post("/preview", scheduleHandler.PreviewSchedule)
				r.Get("/delivery-map", scheduleHandler.GetDeliveryMap)
				r.Get("/next-delivery", scheduleHandler.GetNextDelivery)
			})

			// Заказы
			r.Route("/orders", func(r chi.Router) {
				// Оформление заказа под собственным лимитом.
				r.With(deps.RateLimiter.OrderMiddleware()).Post("/", orderHandler.CreateOrder)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", orderHandler.GetOrder)
					r.Post("/freezes", orderHandler.AddFreeze)
				})
			})

			// Меню
			r.Route("/menus", func(r chi.Router) {
				r.Get("/", menuHandler.ListMenus)
				r.Get("/current", menuHandler.GetCurrentMenu)
				r.Get("/{id}", menuHandler.GetMenu)
			})

			// Промокоды
			r.Post("/promo/check", promoHandler.CheckPromo)

			// Контент
			r.Route("/reviews", func(r chi.Router) {
				r.Get("/", contentHandler.ListReviews)
				r.Post("/", contentHandler.SubmitReview)
			})
			r.Get("/faq", contentHandler.ListFAQ)
			r.Get("/team", contentHandler.ListTeam)
			r.Get("/cities", contentHandler.ListCities)
		})

		// Админ-панель.
		r.Route("/api/admin", func(r chi.Router) {
			r.Route("/orders", func(r chi.Router) {
				r.Get("/", orderHandler.ListOrders)
				r.Post("/{id}/cancel", orderHandler.CancelOrder)
			})

			r.Route("/menus", func(r chi.Router) {
				r.Post("/", menuHandler.CreateMenu)
				r.Put("/{id}", menuHandler.UpdateMenu)
				r.Delete("/{id}", menuHandler.DeleteMenu)
				r.Post("/{id}/dishes", menuHandler.AddDish)
			})
			r.Delete("/dishes/{id}", menuHandler.DeleteDish)

			r.Route("/promo", func(r chi.Router) {
				r.Get("/", promoHandler.ListPromos)
				r.Post("/", promoHandler.CreatePromo)
				r.Post("/{id}/deactivate", promoHandler.DeactivatePromo)
			})

			r.Route("/reviews", func(r chi.Router) {
				r.Get("/pending", contentHandler.ListPendingReviews)
				r.Post("/{id}/approve", contentHandler.ApproveReview)
				r.Delete("/{id}", contentHandler.DeleteReview)
			})

			r.Route("/faq", func(r chi.Router) {
				r.Post("/", contentHandler.CreateFAQ)
				r.Put("/{id}", contentHandler.UpdateFAQ)
				r.Delete("/{id}", contentHandler.DeleteFAQ)
			})

			r.Route("/team", func(r chi.Router) {
				r.Post("/", contentHandler.AddTeamMember)
				r.Delete("/{id}", contentHandler.DeleteTeamMember)
			})

			r.Post("/cities", contentHandler.AddCity)

			r.Route("/settings/delivery", func(r chi.Router) {
				r.Get("/", scheduleHandler.GetSettings)
				r.Put("/", scheduleHandler.UpdateSettings)
			})
		})
	})

	return r
}
