// Package order содержит доменную логику заказов-подписок.
package order

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/foodberry/backend/internal/model"
	"github.com/foodberry/backend/internal/repository"
	"github.com/foodberry/backend/internal/schedule"
)

// CreateRequest представляет запрос на оформление заказа-подписки.
type CreateRequest struct {
	CityID            string
	MenuID            string
	CustomerName      string
	CustomerPhone     string
	Address           string
	Locale            string
	FirstDeliveryDate time.Time
	DaysCount         int
	SkippedWeekdays   []model.WeekDay
	Freezes           []model.Freeze
	PromoCode         string
}

// Details объединяет заказ с календарём дней и заморозками.
type Details struct {
	Order   *model.Order
	Days    []model.OrderDay
	Freezes []model.Freeze
}

// PromoService — интерфейс проверки и применения промокодов,
// используемый при оформлении заказа.
type PromoService interface {
	// Validate проверяет применимость промокода к заказу с данной суммой.
	Validate(ctx context.Context, code string, orderTotal int) (*model.PromoCode, error)
	// MarkUsed фиксирует применение промокода.
	MarkUsed(ctx context.Context, promoID string) error
}

// MetricsRecorder — интерфейс записи метрик заказов.
type MetricsRecorder interface {
	RecordOrderCreated()
	RecordScheduleComputed(calendarLen int)
	RecordFreezeAdded()
}

// Service — сервисный слой заказов.
// Оформление заказа, просмотр, добавление заморозки и отмена.
type Service struct {
	orderRepo repository.OrderRepository
	menuRepo  repository.MenuRepository
	cityRepo  repository.CityRepository
	promo     PromoService
	metrics   MetricsRecorder
	logger    *slog.Logger
}

// NewService создаёт новый экземпляр Service.
// metrics может быть nil (метрики не записываются).
func NewService(
	orderRepo repository.OrderRepository,
	menuRepo repository.MenuRepository,
	cityRepo repository.CityRepository,
	promo PromoService,
	metrics MetricsRecorder,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		orderRepo: orderRepo,
		menuRepo:  menuRepo,
		cityRepo:  cityRepo,
		promo:     promo,
		metrics:   metrics,
		logger:    logger,
	}
}

// Create оформляет заказ: проверяет запрос, рассчитывает календарь доставок,
// применяет промокод и сохраняет заказ вместе с календарём в одной транзакции.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Details, error) {
	if !model.ValidLocale(req.Locale) {
		return nil, model.NewInvalidLocaleError(req.Locale)
	}

	city, err := s.cityRepo.FindByID(ctx, req.CityID)
	if err != nil {
		return nil, fmt.Errorf("не удалось проверить город доставки: %w", err)
	}
	if city == nil || !city.IsActive {
		return nil, model.NewCityNotFoundError(req.CityID)
	}

	menu, err := s.menuRepo.FindByID(ctx, req.MenuID)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить меню заказа: %w", err)
	}
	if menu == nil || !menu.IsActive {
		return nil, model.NewMenuNotFoundError(req.MenuID)
	}

	calendar, err := schedule.Calendar(schedule.Request{
		FirstDeliveryDate: req.FirstDeliveryDate,
		DaysCount:         req.DaysCount,
		SkippedWeekdays:   req.SkippedWeekdays,
		Freezes:           req.Freezes,
	})
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.RecordScheduleComputed(len(calendar))
	}

	total := menu.PricePerDay * req.DaysCount
	discount := 0
	var promoID *string
	if req.PromoCode != "" {
		promo, err := s.promo.Validate(ctx, req.PromoCode, total)
		if err != nil {
			return nil, err
		}
		discount = Discount(promo, total)
		promoID = &promo.ID
	}

	now := time.Now()
	order := &model.Order{
		ID:                uuid.NewString(),
		CityID:            req.CityID,
		MenuID:            req.MenuID,
		CustomerName:      req.CustomerName,
		CustomerPhone:     req.CustomerPhone,
		Address:           req.Address,
		Locale:            req.Locale,
		FirstDeliveryDate: calendar[0].Date,
		DaysCount:         req.DaysCount,
		SkippedWeekdays:   req.SkippedWeekdays,
		PricePerDay:       menu.PricePerDay,
		TotalPrice:        total - discount,
		Discount:          discount,
		PromoCodeID:       promoID,
		Status:            model.OrderStatusActive,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	days := toOrderDays(order.ID, calendar)
	freezes := make([]model.Freeze, len(req.Freezes))
	for i, f := range req.Freezes {
		freezes[i] = model.Freeze{
			ID:        uuid.NewString(),
			OrderID:   order.ID,
			StartDate: f.StartDate,
			EndDate:   f.EndDate,
		}
	}

	if err := s.orderRepo.Create(ctx, order, days, freezes); err != nil {
		return nil, fmt.Errorf("не удалось сохранить заказ: %w", err)
	}

	if promoID != nil {
		if err := s.promo.MarkUsed(ctx, *promoID); err != nil {
			// Заказ уже сохранён: счётчик промокода восстановит модератор.
			s.logger.Error("failed to mark promo code as used",
				slog.String("order_id", order.ID),
				slog.String("promo_id", *promoID),
				slog.String("error", err.Error()),
			)
		}
	}

	if s.metrics != nil {
		s.metrics.RecordOrderCreated()
	}
	s.logger.Info("order created",
		slog.String("order_id", order.ID),
		slog.String("menu_id", order.MenuID),
		slog.Int("days_count", order.DaysCount),
		slog.Int("calendar_len", len(days)),
		slog.Int("total_price", order.TotalPrice),
	)

	return &Details{Order: order, Days: days, Freezes: freezes}, nil
}

// Get возвращает заказ с календарём дней и заморозками.
func (s *Service) Get(ctx context.Context, orderID string) (*Details, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить заказ: %w", err)
	}
	if order == nil {
		return nil, model.NewOrderNotFoundError(orderID)
	}

	days, err := s.orderRepo.ListDays(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить календарь заказа: %w", err)
	}
	freezes, err := s.orderRepo.ListFreezes(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить заморозки заказа: %w", err)
	}

	return &Details{Order: order, Days: days, Freezes: freezes}, nil
}

// List возвращает заказы для админ-панели.
// limit нормализуется к диапазону 1–200, по умолчанию 50.
func (s *Service) List(ctx context.Context, status model.OrderStatus, limit, offset int) ([]*model.Order, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}

	orders, err := s.orderRepo.List(ctx, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить список заказов: %w", err)
	}
	return orders, nil
}

// AddFreeze добавляет заморозку к активному заказу и перегенерирует
// календарь: оплаченное количество дней сохраняется, календарь
// удлиняется на замороженные дни.
func (s *Service) AddFreeze(ctx context.Context, orderID string, startDate, endDate time.Time) (*Details, error) {
	if startDate.After(endDate) {
		return nil, model.NewInvalidFreezeIntervalError()
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить заказ: %w", err)
	}
	if order == nil {
		return nil, model.NewOrderNotFoundError(orderID)
	}
	if order.Status != model.OrderStatusActive {
		return nil, model.NewOrderNotActiveError(orderID)
	}

	existing, err := s.orderRepo.ListFreezes(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить заморозки заказа: %w", err)
	}

	newFreeze := model.Freeze{
		ID:        uuid.NewString(),
		OrderID:   orderID,
		StartDate: startDate,
		EndDate:   endDate,
	}
	allFreezes := append(append([]model.Freeze{}, existing...), newFreeze)

	calendar, err := schedule.Calendar(schedule.Request{
		FirstDeliveryDate: order.FirstDeliveryDate,
		DaysCount:         order.DaysCount,
		SkippedWeekdays:   order.SkippedWeekdays,
		Freezes:           allFreezes,
	})
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.RecordScheduleComputed(len(calendar))
	}

	days := toOrderDays(orderID, calendar)
	if err := s.orderRepo.AddFreezeAndReplaceDays(ctx, orderID, newFreeze, days); err != nil {
		return nil, fmt.Errorf("не удалось применить заморозку: %w", err)
	}
	if s.metrics != nil {
		s.metrics.RecordFreezeAdded()
	}

	s.logger.Info("order freeze added",
		slog.String("order_id", orderID),
		slog.String("start_date", startDate.Format("2006-01-02")),
		slog.String("end_date", endDate.Format("2006-01-02")),
		slog.Int("calendar_len", len(days)),
	)

	return &Details{Order: order, Days: days, Freezes: allFreezes}, nil
}

// Cancel отменяет активный заказ.
func (s *Service) Cancel(ctx context.Context, orderID string) error {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("не удалось получить заказ: %w", err)
	}
	if order == nil {
		return model.NewOrderNotFoundError(orderID)
	}
	if order.Status != model.OrderStatusActive {
		return model.NewOrderNotActiveError(orderID)
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, model.OrderStatusCancelled); err != nil {
		return fmt.Errorf("не удалось отменить заказ: %w", err)
	}

	s.logger.Info("order cancelled", slog.String("order_id", orderID))
	return nil
}

// Discount вычисляет размер скидки промокода для данной суммы заказа.
// Скидка никогда не превышает сумму заказа.
func Discount(promo *model.PromoCode, total int) int {
	var discount int
	switch promo.DiscountType {
	case model.DiscountPercent:
		discount = total * promo.DiscountValue / 100
	case model.DiscountFixed:
		discount = promo.DiscountValue
	}
	if discount > total {
		discount = total
	}
	if discount < 0 {
		discount = 0
	}
	return discount
}

// toOrderDays превращает расчётный календарь в строки дней заказа.
func toOrderDays(orderID string, calendar []schedule.Day) []model.OrderDay {
	days := make([]model.OrderDay, len(calendar))
	for i, day := range calendar {
		days[i] = model.OrderDay{
			ID:        uuid.NewString(),
			OrderID:   orderID,
			Date:      day.Date,
			IsSkipped: day.IsSkipped,
			SkipType:  day.SkipType,
		}
	}
	return days
}
