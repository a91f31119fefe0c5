package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/foodberry/backend/internal/model"
	"github.com/foodberry/backend/internal/order"
)

// --- Моки ---

type mockOrderService struct {
	createFn    func(ctx context.Context, req order.CreateRequest) (*order.Details, error)
	getFn       func(ctx context.Context, orderID string) (*order.Details, error)
	listFn      func(ctx context.Context, status model.OrderStatus, limit, offset int) ([]*model.Order, error)
	addFreezeFn func(ctx context.Context, orderID string, startDate, endDate time.Time) (*order.Details, error)
	cancelFn    func(ctx context.Context, orderID string) error
}

func (m *mockOrderService) Create(ctx context.Context, req order.CreateRequest) (*order.Details, error) {
	return m.createFn(ctx, req)
}
func (m *mockOrderService) Get(ctx context.Context, orderID string) (*order.Details, error) {
	return m.getFn(ctx, orderID)
}
func (m *mockOrderService) List(ctx context.Context, status model.OrderStatus, limit, offset int) ([]*model.Order, error) {
	return m.listFn(ctx, status, limit, offset)
}
func (m *mockOrderService) AddFreeze(ctx context.Context, orderID string, startDate, endDate time.Time) (*order.Details, error) {
	return m.addFreezeFn(ctx, orderID, startDate, endDate)
}
func (m *mockOrderService) Cancel(ctx context.Context, orderID string) error {
	return m.cancelFn(ctx, orderID)
}

func sampleDetails() *order.Details {
	skipType := model.SkipTypeDeliveryOnly
	return &order.Details{
		Order: &model.Order{
			ID:                "order-1",
			CityID:            "city-1",
			MenuID:            "menu-1",
			CustomerName:      "Анна",
			CustomerPhone:     "+972501234567",
			Address:           "Хайфа, ул. Герцль 1",
			Locale:            "ru",
			FirstDeliveryDate: time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC),
			DaysCount:         4,
			PricePerDay:       500,
			TotalPrice:        2000,
			Status:            model.OrderStatusActive,
			CreatedAt:         time.Now(),
		},
		Days: []model.OrderDay{
			{Date: time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC), IsSkipped: true, SkipType: &skipType},
			{Date: time.Date(2025, time.June, 11, 0, 0, 0, 0, time.UTC)},
			{Date: time.Date(2025, time.June, 12, 0, 0, 0, 0, time.UTC)},
			{Date: time.Date(2025, time.June, 13, 0, 0, 0, 0, time.UTC)},
			{Date: time.Date(2025, time.June, 14, 0, 0, 0, 0, time.UTC)},
		},
		Freezes: []model.Freeze{},
	}
}

// --- Тесты ---

// TestOrderHandler_CreateOrder проверяет оформление заказа.
func TestOrderHandler_CreateOrder(t *testing.T) {
	var gotReq order.CreateRequest
	svc := &mockOrderService{
		createFn: func(ctx context.Context, req order.CreateRequest) (*order.Details, error) {
			gotReq = req
			return sampleDetails(), nil
		},
	}
	h := NewOrderHandler(svc)

	body := `{
		"city_id": "city-1",
		"menu_id": "menu-1",
		"customer_name": "Анна",
		"customer_phone": "+972501234567",
		"address": "Хайфа, ул. Герцль 1",
		"locale": "ru",
		"first_delivery_date": "2025-06-10",
		"days_count": 4,
		"promo_code": "leto10"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.CreateOrder(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}
	if gotReq.PromoCode != "leto10" {
		t.Errorf("PromoCode = %q, want leto10", gotReq.PromoCode)
	}
	if !gotReq.FirstDeliveryDate.Equal(time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("FirstDeliveryDate = %v", gotReq.FirstDeliveryDate)
	}

	var resp orderDetailsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Order.ID != "order-1" {
		t.Errorf("order id = %s, want order-1", resp.Order.ID)
	}
	if resp.Order.TotalPrice != 2000 {
		t.Errorf("total_price = %d, want 2000", resp.Order.TotalPrice)
	}
	if len(resp.Days) != 5 {
		t.Fatalf("expected 5 days, got %d", len(resp.Days))
	}
	if resp.Days[0].SkipType == nil || *resp.Days[0].SkipType != "DELIVERY_ONLY" {
		t.Error("expected first day to be DELIVERY_ONLY")
	}
}

// TestOrderHandler_CreateOrder_MenuNotFound проверяет 404 для
// несуществующего меню.
func TestOrderHandler_CreateOrder_MenuNotFound(t *testing.T) {
	svc := &mockOrderService{
		createFn: func(ctx context.Context, req order.CreateRequest) (*order.Details, error) {
			return nil, model.NewMenuNotFoundError(req.MenuID)
		},
	}
	h := NewOrderHandler(svc)

	body := `{"menu_id": "missing", "first_delivery_date": "2025-06-10", "days_count": 4}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.CreateOrder(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}

	var errResp apiErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("failed to parse error response: %v", err)
	}
	if errResp.Code != model.ErrCodeMenuNotFound {
		t.Errorf("code = %s, want %s", errResp.Code, model.ErrCodeMenuNotFound)
	}
}

// TestOrderHandler_CreateOrder_InvalidBody проверяет 400 для кривого JSON.
func TestOrderHandler_CreateOrder_InvalidBody(t *testing.T) {
	h := NewOrderHandler(&mockOrderService{})

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	h.CreateOrder(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

// TestOrderHandler_GetOrder проверяет получение заказа по ID.
func TestOrderHandler_GetOrder(t *testing.T) {
	svc := &mockOrderService{
		getFn: func(ctx context.Context, orderID string) (*order.Details, error) {
			if orderID != "order-1" {
				return nil, model.NewOrderNotFoundError(orderID)
			}
			return sampleDetails(), nil
		},
	}
	h := NewOrderHandler(svc)

	r := chi.NewRouter()
	r.Get("/api/orders/{id}", h.GetOrder)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/order-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/orders/missing", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

// TestOrderHandler_AddFreeze проверяет добавление заморозки.
func TestOrderHandler_AddFreeze(t *testing.T) {
	svc := &mockOrderService{
		addFreezeFn: func(ctx context.Context, orderID string, startDate, endDate time.Time) (*order.Details, error) {
			if orderID != "order-1" {
				t.Errorf("orderID = %s, want order-1", orderID)
			}
			details := sampleDetails()
			details.Freezes = []model.Freeze{{
				ID:        "freeze-1",
				OrderID:   orderID,
				StartDate: startDate,
				EndDate:   endDate,
			}}
			return details, nil
		},
	}
	h := NewOrderHandler(svc)

	r := chi.NewRouter()
	r.Post("/api/orders/{id}/freezes", h.AddFreeze)

	body := `{"start_date": "2025-06-11", "end_date": "2025-06-12"}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders/order-1/freezes", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var resp orderDetailsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(resp.Freezes) != 1 {
		t.Fatalf("expected 1 freeze, got %d", len(resp.Freezes))
	}
	if resp.Freezes[0].StartDate != "2025-06-11" || resp.Freezes[0].EndDate != "2025-06-12" {
		t.Errorf("unexpected freeze interval: %+v", resp.Freezes[0])
	}
}

// TestOrderHandler_AddFreeze_NotActive проверяет 409 для неактивного заказа.
func TestOrderHandler_AddFreeze_NotActive(t *testing.T) {
	svc := &mockOrderService{
		addFreezeFn: func(ctx context.Context, orderID string, startDate, endDate time.Time) (*order.Details, error) {
			return nil, model.NewOrderNotActiveError(orderID)
		},
	}
	h := NewOrderHandler(svc)

	r := chi.NewRouter()
	r.Post("/api/orders/{id}/freezes", h.AddFreeze)

	body := `{"start_date": "2025-06-11", "end_date": "2025-06-12"}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders/order-1/freezes", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
}

// TestOrderHandler_ListOrders проверяет выдачу списка заказов.
func TestOrderHandler_ListOrders(t *testing.T) {
	svc := &mockOrderService{
		listFn: func(ctx context.Context, status model.OrderStatus, limit, offset int) ([]*model.Order, error) {
			if status != model.OrderStatusActive {
				t.Errorf("status = %s, want %s", status, model.OrderStatusActive)
			}
			if limit != 10 || offset != 20 {
				t.Errorf("limit/offset = %d/%d, want 10/20", limit, offset)
			}
			return []*model.Order{sampleDetails().Order}, nil
		},
	}
	h := NewOrderHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders?status=active&limit=10&offset=20", nil)
	w := httptest.NewRecorder()

	h.ListOrders(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp []orderResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(resp) != 1 {
		t.Fatalf("expected 1 order, got %d", len(resp))
	}
	if resp[0].FirstDeliveryDate != "2025-06-10" {
		t.Errorf("first_delivery_date = %s, want 2025-06-10", resp[0].FirstDeliveryDate)
	}
}

// TestOrderHandler_CancelOrder проверяет отмену заказа.
func TestOrderHandler_CancelOrder(t *testing.T) {
	cancelled := ""
	svc := &mockOrderService{
		cancelFn: func(ctx context.Context, orderID string) error {
			cancelled = orderID
			return nil
		},
	}
	h := NewOrderHandler(svc)

	r := chi.NewRouter()
	r.Post("/api/admin/orders/{id}/cancel", h.CancelOrder)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/orders/order-1/cancel", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}
	if cancelled != "order-1" {
		t.Errorf("cancelled = %s, want order-1", cancelled)
	}
}
