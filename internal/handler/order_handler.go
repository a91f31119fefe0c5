package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/foodberry/backend/internal/model"
	"github.com/foodberry/backend/internal/order"
)

// OrderServiceInterface — интерфейс сервиса заказов для обработчиков.
type OrderServiceInterface interface {
	// Create оформляет заказ и рассчитывает календарь доставок.
	Create(ctx context.Context, req order.CreateRequest) (*order.Details, error)
	// Get возвращает заказ с календарём и заморозками.
	Get(ctx context.Context, orderID string) (*order.Details, error)
	// List возвращает заказы для админ-панели.
	List(ctx context.Context, status model.OrderStatus, limit, offset int) ([]*model.Order, error)
	// AddFreeze добавляет заморозку и перегенерирует календарь.
	AddFreeze(ctx context.Context, orderID string, startDate, endDate time.Time) (*order.Details, error)
	// Cancel отменяет активный заказ.
	Cancel(ctx context.Context, orderID string) error
}

// OrderHandler — HTTP-обработчик заказов.
type OrderHandler struct {
	service OrderServiceInterface
}

// NewOrderHandler создаёт OrderHandler.
func NewOrderHandler(service OrderServiceInterface) *OrderHandler {
	return &OrderHandler{service: service}
}

// createOrderRequest — тело запроса оформления заказа.
type createOrderRequest struct {
	CityID            string          `json:"city_id"`
	MenuID            string          `json:"menu_id"`
	CustomerName      string          `json:"customer_name"`
	CustomerPhone     string          `json:"customer_phone"`
	Address           string          `json:"address"`
	Locale            string          `json:"locale"`
	FirstDeliveryDate string          `json:"first_delivery_date"`
	DaysCount         int             `json:"days_count"`
	SkippedWeekdays   []model.WeekDay `json:"skipped_weekdays"`
	Freezes           []freezeRequest `json:"freezes"`
	PromoCode         string          `json:"promo_code"`
}

// orderResponse — заказ в ответе API.
type orderResponse struct {
	ID                string          `json:"id"`
	CityID            string          `json:"city_id"`
	MenuID            string          `json:"menu_id"`
	CustomerName      string          `json:"customer_name"`
	CustomerPhone     string          `json:"customer_phone"`
	Address           string          `json:"address"`
	Locale            string          `json:"locale"`
	FirstDeliveryDate string          `json:"first_delivery_date"`
	DaysCount         int             `json:"days_count"`
	SkippedWeekdays   []model.WeekDay `json:"skipped_weekdays"`
	PricePerDay       int             `json:"price_per_day"`
	TotalPrice        int             `json:"total_price"`
	Discount          int             `json:"discount"`
	Status            string          `json:"status"`
	CreatedAt         time.Time       `json:"created_at"`
}

// orderDayResponse — день календаря заказа в ответе API.
type orderDayResponse struct {
	Date      string  `json:"date"`
	IsSkipped bool    `json:"is_skipped"`
	SkipType  *string `json:"skip_type"`
	Delivered bool    `json:"delivered"`
}

// freezeResponse — заморозка в ответе API.
type freezeResponse struct {
	ID        string `json:"id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// orderDetailsResponse — заказ с календарём и заморозками.
type orderDetailsResponse struct {
	Order   orderResponse      `json:"order"`
	Days    []orderDayResponse `json:"days"`
	Freezes []freezeResponse   `json:"freezes"`
}

// CreateOrder оформляет заказ-подписку.
// POST /api/orders
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyError(w)
		return
	}

	firstDate, err := time.Parse(dateLayout, req.FirstDeliveryDate)
	if err != nil {
		writeInvalidDateError(w, "first_delivery_date")
		return
	}

	freezes, ok := parseFreezes(w, req.Freezes)
	if !ok {
		return
	}

	details, err := h.service.Create(r.Context(), order.CreateRequest{
		CityID:            req.CityID,
		MenuID:            req.MenuID,
		CustomerName:      req.CustomerName,
		CustomerPhone:     req.CustomerPhone,
		Address:           req.Address,
		Locale:            req.Locale,
		FirstDeliveryDate: firstDate,
		DaysCount:         req.DaysCount,
		SkippedWeekdays:   req.SkippedWeekdays,
		Freezes:           freezes,
		PromoCode:         req.PromoCode,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toOrderDetailsResponse(details))
}

// GetOrder возвращает заказ с календарём и заморозками.
// GET /api/orders/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	details, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderDetailsResponse(details))
}

// addFreezeRequest — тело запроса добавления заморозки.
type addFreezeRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// AddFreeze добавляет заморозку к заказу.
// POST /api/orders/{id}/freezes
func (h *OrderHandler) AddFreeze(w http.ResponseWriter, r *http.Request) {
	var req addFreezeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyError(w)
		return
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		writeInvalidDateError(w, "start_date")
		return
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		writeInvalidDateError(w, "end_date")
		return
	}

	details, err := h.service.AddFreeze(r.Context(), chi.URLParam(r, "id"), start, end)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderDetailsResponse(details))
}

// ListOrders возвращает заказы для админ-панели.
// GET /api/admin/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	status := model.OrderStatus(r.URL.Query().Get("status"))
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	orders, err := h.service.List(r.Context(), status, limit, offset)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]orderResponse, len(orders))
	for i, o := range orders {
		resp[i] = toOrderResponse(o)
	}
	writeJSON(w, http.StatusOK, resp)
}

// CancelOrder отменяет активный заказ.
// POST /api/admin/orders/{id}/cancel
func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Cancel(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- Вспомогательные функции ---

func toOrderResponse(o *model.Order) orderResponse {
	return orderResponse{
		ID:                o.ID,
		CityID:            o.CityID,
		MenuID:            o.MenuID,
		CustomerName:      o.CustomerName,
		CustomerPhone:     o.CustomerPhone,
		Address:           o.Address,
		Locale:            o.Locale,
		FirstDeliveryDate: o.FirstDeliveryDate.Format(dateLayout),
		DaysCount:         o.DaysCount,
		SkippedWeekdays:   o.SkippedWeekdays,
		PricePerDay:       o.PricePerDay,
		TotalPrice:        o.TotalPrice,
		Discount:          o.Discount,
		Status:            string(o.Status),
		CreatedAt:         o.CreatedAt,
	}
}

func toOrderDetailsResponse(details *order.Details) orderDetailsResponse {
	days := make([]orderDayResponse, len(details.Days))
	for i, d := range details.Days {
		var skipType *string
		if d.SkipType != nil {
			s := string(*d.SkipType)
			skipType = &s
		}
		days[i] = orderDayResponse{
			Date:      d.Date.Format(dateLayout),
			IsSkipped: d.IsSkipped,
			SkipType:  skipType,
			Delivered: d.Delivered,
		}
	}

	freezes := make([]freezeResponse, len(details.Freezes))
	for i, f := range details.Freezes {
		freezes[i] = freezeResponse{
			ID:        f.ID,
			StartDate: f.StartDate.Format(dateLayout),
			EndDate:   f.EndDate.Format(dateLayout),
		}
	}

	return orderDetailsResponse{
		Order:   toOrderResponse(details.Order),
		Days:    days,
		Freezes: freezes,
	}
}
