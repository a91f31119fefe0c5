package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/foodberry/backend/internal/model"
	"github.com/foodberry/backend/internal/order"
	"github.com/foodberry/backend/internal/promo"
)

// PromoServiceInterface — интерфейс сервиса промокодов для обработчиков.
type PromoServiceInterface interface {
	// Validate проверяет применимость промокода к заказу с данной суммой.
	Validate(ctx context.Context, code string, orderTotal int) (*model.PromoCode, error)
	// Create создаёт промокод.
	Create(ctx context.Context, req promo.CreateRequest) (*model.PromoCode, error)
	// List возвращает все промокоды.
	List(ctx context.Context) ([]*model.PromoCode, error)
	// Deactivate отключает промокод.
	Deactivate(ctx context.Context, promoID string) error
}

// PromoHandler — HTTP-обработчик промокодов.
type PromoHandler struct {
	service PromoServiceInterface
}

// NewPromoHandler создаёт PromoHandler.
func NewPromoHandler(service PromoServiceInterface) *PromoHandler {
	return &PromoHandler{service: service}
}

// checkPromoRequest — тело запроса проверки промокода.
type checkPromoRequest struct {
	Code       string `json:"code"`
	OrderTotal int    `json:"order_total"`
}

// checkPromoResponse — результат проверки промокода.
type checkPromoResponse struct {
	Code          string `json:"code"`
	DiscountType  string `json:"discount_type"`
	DiscountValue int    `json:"discount_value"`
	Discount      int    `json:"discount"`
	TotalAfter    int    `json:"total_after"`
}

// CheckPromo проверяет промокод и возвращает рассчитанную скидку.
// POST /api/promo/check
func (h *PromoHandler) CheckPromo(w http.ResponseWriter, r *http.Request) {
	var req checkPromoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyError(w)
		return
	}

	p, err := h.service.Validate(r.Context(), req.Code, req.OrderTotal)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	discount := order.Discount(p, req.OrderTotal)
	writeJSON(w, http.StatusOK, checkPromoResponse{
		Code:          p.Code,
		DiscountType:  string(p.DiscountType),
		DiscountValue: p.DiscountValue,
		Discount:      discount,
		TotalAfter:    req.OrderTotal - discount,
	})
}

// promoResponse — промокод в ответе админ-панели.
type promoResponse struct {
	ID            string    `json:"id"`
	Code          string    `json:"code"`
	DiscountType  string    `json:"discount_type"`
	DiscountValue int       `json:"discount_value"`
	MinOrderTotal int       `json:"min_order_total"`
	ValidFrom     time.Time `json:"valid_from"`
	ValidTo       time.Time `json:"valid_to"`
	UsageLimit    int       `json:"usage_limit"`
	UsageCount    int       `json:"usage_count"`
	IsActive      bool      `json:"is_active"`
}

// createPromoRequest — тело запроса создания промокода.
type createPromoRequest struct {
	Code          string `json:"code"`
	DiscountType  string `json:"discount_type"`
	DiscountValue int    `json:"discount_value"`
	MinOrderTotal int    `json:"min_order_total"`
	ValidFrom     string `json:"valid_from"`
	ValidTo       string `json:"valid_to"`
	UsageLimit    int    `json:"usage_limit"`
}

// CreatePromo создаёт промокод.
// POST /api/admin/promo
func (h *PromoHandler) CreatePromo(w http.ResponseWriter, r *http.Request) {
	var req createPromoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyError(w)
		return
	}

	validFrom, err := time.Parse(dateLayout, req.ValidFrom)
	if err != nil {
		writeInvalidDateError(w, "valid_from")
		return
	}
	validTo, err := time.Parse(dateLayout, req.ValidTo)
	if err != nil {
		writeInvalidDateError(w, "valid_to")
		return
	}

	created, err := h.service.Create(r.Context(), promo.CreateRequest{
		Code:          req.Code,
		DiscountType:  model.DiscountType(req.DiscountType),
		DiscountValue: req.DiscountValue,
		MinOrderTotal: req.MinOrderTotal,
		ValidFrom:     validFrom,
		ValidTo:       validTo,
		UsageLimit:    req.UsageLimit,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toPromoResponse(created))
}

// ListPromos возвращает все промокоды.
// GET /api/admin/promo
func (h *PromoHandler) ListPromos(w http.ResponseWriter, r *http.Request) {
	promos, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]promoResponse, len(promos))
	for i, p := range promos {
		resp[i] = toPromoResponse(p)
	}
	writeJSON(w, http.StatusOK, resp)
}

// DeactivatePromo отключает промокод.
// POST /api/admin/promo/{id}/deactivate
func (h *PromoHandler) DeactivatePromo(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Deactivate(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toPromoResponse(p *model.PromoCode) promoResponse {
	return promoResponse{
		ID:            p.ID,
		Code:          p.Code,
		DiscountType:  string(p.DiscountType),
		DiscountValue: p.DiscountValue,
		MinOrderTotal: p.MinOrderTotal,
		ValidFrom:     p.ValidFrom,
		ValidTo:       p.ValidTo,
		UsageLimit:    p.UsageLimit,
		UsageCount:    p.UsageCount,
		IsActive:      p.IsActive,
	}
}
