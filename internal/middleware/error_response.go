package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/foodberry/backend/internal/model"
)

// ErrorResponseBody — единый формат тела ошибки API.
// Содержит категорию причины и подсказку пользователю.
type ErrorResponseBody struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Action   string `json:"action"`
}

// WriteErrorResponse записывает HTTP-ошибку в едином формате.
// Используется всеми эндпоинтами API.
func WriteErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponseBody{
		Code:     apiErr.Code,
		Message:  apiErr.Message,
		Category: apiErr.Category,
		Action:   apiErr.Action,
	})
}

// WriteInternalServerError записывает единый ответ внутренней ошибки.
// Детали остаются в логах, пользователь получает общее сообщение.
func WriteInternalServerError(w http.ResponseWriter) {
	WriteErrorResponse(w, http.StatusInternalServerError, &model.APIError{
		Code:     "INTERNAL_ERROR",
		Message:  "Произошла внутренняя ошибка.",
		Category: "system",
		Action:   "Повторите попытку позже.",
	})
}
