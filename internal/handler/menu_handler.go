package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/foodberry/backend/internal/menu"
	"github.com/foodberry/backend/internal/model"
)

// MenuServiceInterface — интерфейс сервиса меню для обработчиков.
type MenuServiceInterface interface {
	// Get возвращает меню с блюдами.
	Get(ctx context.Context, menuID string) (*menu.MenuDetails, error)
	// ListActive возвращает активные меню в порядке цикла ротации.
	ListActive(ctx context.Context) ([]*model.Menu, error)
	// ForDate возвращает меню, действующее на неделе указанной даты.
	ForDate(ctx context.Context, date time.Time) (*model.Menu, error)
	// DishesForDate возвращает блюда действующего меню на дату.
	DishesForDate(ctx context.Context, date time.Time) (*model.Menu, []*model.Dish, error)
	// Create создаёт меню.
	Create(ctx context.Context, req menu.CreateRequest) (*model.Menu, error)
	// Update обновляет меню.
	Update(ctx context.Context, menuID string, req menu.CreateRequest, isActive bool) (*model.Menu, error)
	// Delete удаляет меню вместе с блюдами.
	Delete(ctx context.Context, menuID string) error
	// AddDish добавляет блюдо в меню.
	AddDish(ctx context.Context, menuID string, req menu.DishRequest) (*model.Dish, error)
	// DeleteDish удаляет блюдо.
	DeleteDish(ctx context.Context, dishID string) error
}

// MenuHandler — HTTP-обработчик меню.
type MenuHandler struct {
	service MenuServiceInterface
}

// NewMenuHandler создаёт MenuHandler.
func NewMenuHandler(service MenuServiceInterface) *MenuHandler {
	return &MenuHandler{service: service}
}

// menuResponse — меню в ответе API.
type menuResponse struct {
	ID            string `json:"id"`
	TitleRu       string `json:"title_ru"`
	TitleHe       string `json:"title_he"`
	DescriptionRu string `json:"description_ru"`
	DescriptionHe string `json:"description_he"`
	PricePerDay   int    `json:"price_per_day"`
	CyclePosition int    `json:"cycle_position"`
	IsActive      bool   `json:"is_active"`
}

// dishResponse — блюдо в ответе API.
type dishResponse struct {
	ID            string        `json:"id"`
	MenuID        string        `json:"menu_id"`
	TitleRu       string        `json:"title_ru"`
	TitleHe       string        `json:"title_he"`
	DescriptionRu string        `json:"description_ru"`
	DescriptionHe string        `json:"description_he"`
	WeekDay       model.WeekDay `json:"week_day"`
	Calories      int           `json:"calories"`
	Proteins      int           `json:"proteins"`
	Fats          int           `json:"fats"`
	Carbohydrates int           `json:"carbohydrates"`
}

// menuDetailsResponse — меню с блюдами.
type menuDetailsResponse struct {
	Menu   menuResponse   `json:"menu"`
	Dishes []dishResponse `json:"dishes"`
}

// ListMenus возвращает активные меню.
// GET /api/menus
func (h *MenuHandler) ListMenus(w http.ResponseWriter, r *http.Request) {
	menus, err := h.service.ListActive(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]menuResponse, len(menus))
	for i, m := range menus {
		resp[i] = toMenuResponse(m)
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetMenu возвращает меню с блюдами.
// GET /api/menus/{id}
func (h *MenuHandler) GetMenu(w http.ResponseWriter, r *http.Request) {
	details, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toMenuDetailsResponse(details))
}

// currentMenuResponse — действующее меню с блюдами дня.
type currentMenuResponse struct {
	Menu   menuResponse   `json:"menu"`
	Dishes []dishResponse `json:"dishes"`
}

// GetCurrentMenu возвращает действующее меню и блюда на указанную дату
// (параметр date, по умолчанию сегодня).
// GET /api/menus/current
func (h *MenuHandler) GetCurrentMenu(w http.ResponseWriter, r *http.Request) {
	date := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			writeInvalidDateError(w, "date")
			return
		}
		date = parsed
	}

	currentMenu, dishes, err := h.service.DishesForDate(r.Context(), date)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := currentMenuResponse{Menu: toMenuResponse(currentMenu)}
	resp.Dishes = make([]dishResponse, len(dishes))
	for i, d := range dishes {
		resp.Dishes[i] = toDishResponse(d)
	}
	writeJSON(w, http.StatusOK, resp)
}

// menuRequest — тело запроса создания и обновления меню.
type menuRequest struct {
	TitleRu       string `json:"title_ru"`
	TitleHe       string `json:"title_he"`
	DescriptionRu string `json:"description_ru"`
	DescriptionHe string `json:"description_he"`
	PricePerDay   int    `json:"price_per_day"`
	CyclePosition int    `json:"cycle_position"`
	IsActive      bool   `json:"is_active"`
}

// CreateMenu создаёт меню.
// POST /api/admin/menus
func (h *MenuHandler) CreateMenu(w http.ResponseWriter, r *http.Request) {
	var req menuRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyError(w)
		return
	}

	created, err := h.service.Create(r.Context(), menu.CreateRequest{
		TitleRu:       req.TitleRu,
		TitleHe:       req.TitleHe,
		DescriptionRu: req.DescriptionRu,
		DescriptionHe: req.DescriptionHe,
		PricePerDay:   req.PricePerDay,
		CyclePosition: req.CyclePosition,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toMenuResponse(created))
}

// UpdateMenu обновляет меню.
// PUT /api/admin/menus/{id}
func (h *MenuHandler) UpdateMenu(w http.ResponseWriter, r *http.Request) {
	var req menuRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyError(w)
		return
	}

	updated, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), menu.CreateRequest{
		TitleRu:       req.TitleRu,
		TitleHe:       req.TitleHe,
		DescriptionRu: req.DescriptionRu,
		DescriptionHe: req.DescriptionHe,
		PricePerDay:   req.PricePerDay,
		CyclePosition: req.CyclePosition,
	}, req.IsActive)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toMenuResponse(updated))
}

// DeleteMenu удаляет меню.
// DELETE /api/admin/menus/{id}
func (h *MenuHandler) DeleteMenu(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// dishRequest — тело запроса добавления блюда.
type dishRequest struct {
	TitleRu       string        `json:"title_ru"`
	TitleHe       string        `json:"title_he"`
	DescriptionRu string        `json:"description_ru"`
	DescriptionHe string        `json:"description_he"`
	WeekDay       model.WeekDay `json:"week_day"`
	Calories      int           `json:"calories"`
	Proteins      int           `json:"proteins"`
	Fats          int           `json:"fats"`
	Carbohydrates int           `json:"carbohydrates"`
}

// AddDish добавляет блюдо в меню.
// POST /api/admin/menus/{id}/dishes
func (h *MenuHandler) AddDish(w http.ResponseWriter, r *http.Request) {
	var req dishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyError(w)
		return
	}

	dish, err := h.service.AddDish(r.Context(), chi.URLParam(r, "id"), menu.DishRequest{
		TitleRu:       req.TitleRu,
		TitleHe:       req.TitleHe,
		DescriptionRu: req.DescriptionRu,
		DescriptionHe: req.DescriptionHe,
		WeekDay:       req.WeekDay,
		Calories:      req.Calories,
		Proteins:      req.Proteins,
		Fats:          req.Fats,
		Carbohydrates: req.Carbohydrates,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toDishResponse(dish))
}

// DeleteDish удаляет блюдо.
// DELETE /api/admin/dishes/{id}
func (h *MenuHandler) DeleteDish(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteDish(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- Вспомогательные функции ---

func toMenuResponse(m *model.Menu) menuResponse {
	return menuResponse{
		ID:            m.ID,
		TitleRu:       m.TitleRu,
		TitleHe:       m.TitleHe,
		DescriptionRu: m.DescriptionRu,
		DescriptionHe: m.DescriptionHe,
		PricePerDay:   m.PricePerDay,
		CyclePosition: m.CyclePosition,
		IsActive:      m.IsActive,
	}
}

func toDishResponse(d *model.Dish) dishResponse {
	return dishResponse{
		ID:            d.ID,
		MenuID:        d.MenuID,
		TitleRu:       d.TitleRu,
		TitleHe:       d.TitleHe,
		DescriptionRu: d.DescriptionRu,
		DescriptionHe: d.DescriptionHe,
		WeekDay:       d.WeekDay,
		Calories:      d.Calories,
		Proteins:      d.Proteins,
		Fats:          d.Fats,
		Carbohydrates: d.Carbohydrates,
	}
}

func toMenuDetailsResponse(details *menu.MenuDetails) menuDetailsResponse {
	dishes := make([]dishResponse, len(details.Dishes))
	for i, d := range details.Dishes {
		dishes[i] = toDishResponse(d)
	}
	return menuDetailsResponse{
		Menu:   toMenuResponse(details.Menu),
		Dishes: dishes,
	}
}
