// Package handler содержит HTTP-обработчики API.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/foodberry/backend/internal/model"
)

// apiErrorResponse — единый формат тела ошибки API.
type apiErrorResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Action   string `json:"action"`
}

// dateLayout — формат дат в телах запросов и ответов.
const dateLayout = "2006-01-02"

// writeJSON записывает успешный JSON-ответ с указанным статусом.
func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// writeAPIErrorResponse записывает ошибку в едином формате.
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(apiErrorResponse{
		Code:     apiErr.Code,
		Message:  apiErr.Message,
		Category: apiErr.Category,
		Action:   apiErr.Action,
	})
}

// writeInvalidBodyError записывает ошибку разбора тела запроса.
func writeInvalidBodyError(w http.ResponseWriter) {
	writeAPIErrorResponse(w, http.StatusBadRequest, &model.APIError{
		Code:     "INVALID_REQUEST",
		Message:  "Не удалось разобрать тело запроса.",
		Category: "validation",
		Action:   "Отправьте корректный JSON.",
	})
}

// writeInvalidDateError записывает ошибку разбора даты.
func writeInvalidDateError(w http.ResponseWriter, field string) {
	writeAPIErrorResponse(w, http.StatusBadRequest, &model.APIError{
		Code:     "INVALID_DATE",
		Message:  "Не удалось разобрать дату в поле " + field + ".",
		Category: "validation",
		Action:   "Даты задаются в формате YYYY-MM-DD.",
	})
}

// queryInt читает целочисленный параметр строки запроса.
// Нечисловые значения заменяются значением по умолчанию.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

// handleServiceError преобразует ошибку сервисного слоя в HTTP-ответ.
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		writeAPIErrorResponse(w, mapAPIErrorToHTTPStatus(apiErr), apiErr)
		return
	}

	// Ошибки вне формата APIError считаются внутренними.
	slog.Error("internal server error", slog.String("error", err.Error()))
	writeAPIErrorResponse(w, http.StatusInternalServerError, &model.APIError{
		Code:     "INTERNAL_ERROR",
		Message:  "Произошла внутренняя ошибка.",
		Category: "system",
		Action:   "Повторите попытку позже.",
	})
}

// mapAPIErrorToHTTPStatus сопоставляет код APIError с HTTP-статусом.
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeInvalidDaysCount,
		model.ErrCodeInvalidWeekday,
		model.ErrCodeInvalidFreezeInterval,
		model.ErrCodeInvalidLocale,
		model.ErrCodeInvalidRating:
		return http.StatusBadRequest
	case model.ErrCodeAllWeekdaysSkipped:
		return http.StatusUnprocessableEntity
	case model.ErrCodeOrderNotFound,
		model.ErrCodeMenuNotFound,
		model.ErrCodeCityNotFound,
		model.ErrCodePromoNotFound:
		return http.StatusNotFound
	case model.ErrCodeOrderNotActive:
		return http.StatusConflict
	case model.ErrCodePromoExpired,
		model.ErrCodePromoUsageLimit,
		model.ErrCodePromoMinOrderTotal:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
