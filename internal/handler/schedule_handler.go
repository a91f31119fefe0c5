package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/foodberry/backend/internal/model"
	"github.com/foodberry/backend/internal/schedule"
)

// SettingsServiceInterface — интерфейс настроек доставки для обработчиков.
type SettingsServiceInterface interface {
	// Get возвращает текущие настройки доставки.
	Get(ctx context.Context) (*model.DeliverySettings, error)
	// DeliveryMap возвращает недельную карту доставки и версию настроек.
	DeliveryMap(ctx context.Context) (map[model.WeekDay]schedule.DayInfo, int, error)
	// NextDelivery возвращает ближайшую дату доставки строго после from.
	NextDelivery(ctx context.Context, from time.Time) (time.Time, bool, error)
	// UpdateWeekdays заменяет набор доставочных дней недели.
	UpdateWeekdays(ctx context.Context, weekdays []model.WeekDay) (*model.DeliverySettings, error)
}

// ScheduleHandler — HTTP-обработчик расчёта расписания и карты доставки.
type ScheduleHandler struct {
	settings SettingsServiceInterface
}

// NewScheduleHandler создаёт ScheduleHandler.
func NewScheduleHandler(settings SettingsServiceInterface) *ScheduleHandler {
	return &ScheduleHandler{settings: settings}
}

// freezeRequest — интервал заморозки в теле запроса.
type freezeRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// schedulePreviewRequest — тело запроса предпросмотра календаря.
type schedulePreviewRequest struct {
	FirstDeliveryDate string          `json:"first_delivery_date"`
	DaysCount         int             `json:"days_count"`
	SkippedWeekdays   []model.WeekDay `json:"skipped_weekdays"`
	Freezes           []freezeRequest `json:"freezes"`
}

// scheduleDayResponse — один день календаря в ответе API.
type scheduleDayResponse struct {
	Date      string  `json:"date"`
	IsSkipped bool    `json:"is_skipped"`
	SkipType  *string `json:"skip_type"`
}

// PreviewSchedule рассчитывает календарь доставок без создания заказа.
// POST /api/schedule/preview
func (h *ScheduleHandler) PreviewSchedule(w http.ResponseWriter, r *http.Request) {
	var req schedulePreviewRequest
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

	days, err := schedule.Calendar(schedule.Request{
		FirstDeliveryDate: firstDate,
		DaysCount:         req.DaysCount,
		SkippedWeekdays:   req.SkippedWeekdays,
		Freezes:           freezes,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toScheduleDayResponses(days))
}

// deliveryMapEntry — запись карты доставки в ответе API.
type deliveryMapEntry struct {
	IsDelivery bool `json:"is_delivery"`
	DaysToNext *int `json:"days_to_next"`
}

// deliveryMapResponse — тело ответа карты доставки.
type deliveryMapResponse struct {
	Version int                      `json:"version"`
	Days    map[int]deliveryMapEntry `json:"days"`
}

// GetDeliveryMap возвращает недельную карту доставки.
// GET /api/schedule/delivery-map
func (h *ScheduleHandler) GetDeliveryMap(w http.ResponseWriter, r *http.Request) {
	deliveryMap, version, err := h.settings.DeliveryMap(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	days := make(map[int]deliveryMapEntry, len(deliveryMap))
	for weekday, info := range deliveryMap {
		days[int(weekday)] = deliveryMapEntry{
			IsDelivery: info.IsDelivery,
			DaysToNext: info.DaysToNext,
		}
	}

	writeJSON(w, http.StatusOK, deliveryMapResponse{Version: version, Days: days})
}

// nextDeliveryResponse — тело ответа ближайшей даты доставки.
type nextDeliveryResponse struct {
	NextDelivery *string `json:"next_delivery"`
}

// GetNextDelivery возвращает ближайшую дату доставки строго после
// указанной даты (параметр from, по умолчанию сегодня).
// GET /api/schedule/next-delivery
func (h *ScheduleHandler) GetNextDelivery(w http.ResponseWriter, r *http.Request) {
	from := time.Now()
	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			writeInvalidDateError(w, "from")
			return
		}
		from = parsed
	}

	next, ok, err := h.settings.NextDelivery(r.Context(), from)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	var resp nextDeliveryResponse
	if ok {
		formatted := next.Format(dateLayout)
		resp.NextDelivery = &formatted
	}
	writeJSON(w, http.StatusOK, resp)
}

// deliverySettingsResponse — тело ответа настроек доставки.
type deliverySettingsResponse struct {
	DeliveryWeekdays []model.WeekDay `json:"delivery_weekdays"`
	Version          int             `json:"version"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// GetSettings возвращает текущие настройки доставки.
// GET /api/admin/settings/delivery
func (h *ScheduleHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, deliverySettingsResponse{
		DeliveryWeekdays: settings.DeliveryWeekdays,
		Version:          settings.Version,
		UpdatedAt:        settings.UpdatedAt,
	})
}

// updateWeekdaysRequest — тело запроса обновления доставочных дней.
type updateWeekdaysRequest struct {
	DeliveryWeekdays []model.WeekDay `json:"delivery_weekdays"`
}

// UpdateSettings заменяет набор доставочных дней недели.
// PUT /api/admin/settings/delivery
func (h *ScheduleHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req updateWeekdaysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyError(w)
		return
	}

	settings, err := h.settings.UpdateWeekdays(r.Context(), req.DeliveryWeekdays)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, deliverySettingsResponse{
		DeliveryWeekdays: settings.DeliveryWeekdays,
		Version:          settings.Version,
		UpdatedAt:        settings.UpdatedAt,
	})
}

// --- Вспомогательные функции ---

// parseFreezes разбирает интервалы заморозки из тела запроса.
// При ошибке пишет ответ и возвращает false.
func parseFreezes(w http.ResponseWriter, raw []freezeRequest) ([]model.Freeze, bool) {
	freezes := make([]model.Freeze, 0, len(raw))
	for _, f := range raw {
		start, err := time.Parse(dateLayout, f.StartDate)
		if err != nil {
			writeInvalidDateError(w, "start_date")
			return nil, false
		}
		end, err := time.Parse(dateLayout, f.EndDate)
		if err != nil {
			writeInvalidDateError(w, "end_date")
			return nil, false
		}
		freezes = append(freezes, model.Freeze{StartDate: start, EndDate: end})
	}
	return freezes, true
}

// toScheduleDayResponses преобразует календарь в формат ответа API.
func toScheduleDayResponses(days []schedule.Day) []scheduleDayResponse {
	resp := make([]scheduleDayResponse, len(days))
	for i, day := range days {
		var skipType *string
		if day.SkipType != nil {
			s := string(*day.SkipType)
			skipType = &s
		}
		resp[i] = scheduleDayResponse{
			Date:      day.Date.Format(dateLayout),
			IsSkipped: day.IsSkipped,
			SkipType:  skipType,
		}
	}
	return resp
}
