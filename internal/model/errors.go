// Package model определяет доменные модели сервиса.
package model

import "fmt"

// APIError представляет единый формат ошибки API.
// Содержит категорию причины и подсказку для пользователя.
type APIError struct {
	Code     string // код ошибки
	Message  string // сообщение об ошибке
	Category string // категория: validation, order, promo, content, system
	Action   string // подсказка пользователю
}

// Error реализует интерфейс error.
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Определённые коды ошибок
const (
	ErrCodeInvalidDaysCount      = "INVALID_DAYS_COUNT"
	ErrCodeAllWeekdaysSkipped    = "ALL_WEEKDAYS_SKIPPED"
	ErrCodeInvalidWeekday        = "INVALID_WEEKDAY"
	ErrCodeInvalidFreezeInterval = "INVALID_FREEZE_INTERVAL"
	ErrCodeInvalidLocale         = "INVALID_LOCALE"
	ErrCodeOrderNotFound         = "ORDER_NOT_FOUND"
	ErrCodeOrderNotActive        = "ORDER_NOT_ACTIVE"
	ErrCodeMenuNotFound          = "MENU_NOT_FOUND"
	ErrCodeCityNotFound          = "CITY_NOT_FOUND"
	ErrCodePromoNotFound         = "PROMO_NOT_FOUND"
	ErrCodePromoExpired          = "PROMO_EXPIRED"
	ErrCodePromoUsageLimit       = "PROMO_USAGE_LIMIT"
	ErrCodePromoMinOrderTotal    = "PROMO_MIN_ORDER_TOTAL"
	ErrCodeInvalidRating         = "INVALID_RATING"
)

// NewInvalidDaysCountError создаёт ошибку недопустимого количества дней подписки.
func NewInvalidDaysCountError(count int) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidDaysCount,
		Message:  fmt.Sprintf("Недопустимое количество дней подписки: %d", count),
		Category: "validation",
		Action:   "Укажите количество дней не меньше 1.",
	}
}

// NewAllWeekdaysSkippedError создаёт ошибку конфигурации, в которой исключены все дни недели.
func NewAllWeekdaysSkippedError() *APIError {
	return &APIError{
		Code:     ErrCodeAllWeekdaysSkipped,
		Message:  "Исключены все семь дней недели — доставка невозможна.",
		Category: "validation",
		Action:   "Оставьте хотя бы один день недели для доставки.",
	}
}

// NewInvalidWeekdayError создаёт ошибку недопустимого значения дня недели.
func NewInvalidWeekdayError(day int) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidWeekday,
		Message:  fmt.Sprintf("Недопустимый день недели: %d", day),
		Category: "validation",
		Action:   "Дни недели задаются числами от 1 (понедельник) до 7 (воскресенье).",
	}
}

// NewInvalidFreezeIntervalError создаёт ошибку некорректного интервала заморозки.
func NewInvalidFreezeIntervalError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidFreezeInterval,
		Message:  "Дата начала заморозки позже даты окончания.",
		Category: "validation",
		Action:   "Проверьте даты интервала заморозки.",
	}
}

// NewInvalidLocaleError создаёт ошибку неподдерживаемой локали.
func NewInvalidLocaleError(locale string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidLocale,
		Message:  fmt.Sprintf("Неподдерживаемая локаль: %s", locale),
		Category: "validation",
		Action:   "Доступные локали: ru, he.",
	}
}

// NewOrderNotFoundError создаёт ошибку отсутствующего заказа.
func NewOrderNotFoundError(orderID string) *APIError {
	return &APIError{
		Code:     ErrCodeOrderNotFound,
		Message:  fmt.Sprintf("Заказ не найден: %s", orderID),
		Category: "order",
		Action:   "Проверьте идентификатор заказа.",
	}
}

// NewOrderNotActiveError создаёт ошибку операции над неактивным заказом.
func NewOrderNotActiveError(orderID string) *APIError {
	return &APIError{
		Code:     ErrCodeOrderNotActive,
		Message:  fmt.Sprintf("Заказ не активен: %s", orderID),
		Category: "order",
		Action:   "Заморозка и отмена доступны только для активных заказов.",
	}
}

// NewMenuNotFoundError создаёт ошибку отсутствующего меню.
func NewMenuNotFoundError(menuID string) *APIError {
	return &APIError{
		Code:     ErrCodeMenuNotFound,
		Message:  fmt.Sprintf("Меню не найдено: %s", menuID),
		Category: "content",
		Action:   "Проверьте идентификатор меню.",
	}
}

// NewCityNotFoundError создаёт ошибку отсутствующего города доставки.
func NewCityNotFoundError(cityID string) *APIError {
	return &APIError{
		Code:     ErrCodeCityNotFound,
		Message:  fmt.Sprintf("Город доставки не найден: %s", cityID),
		Category: "validation",
		Action:   "Выберите город из списка доступных городов.",
	}
}

// NewPromoNotFoundError создаёт ошибку отсутствующего промокода.
func NewPromoNotFoundError(code string) *APIError {
	return &APIError{
		Code:     ErrCodePromoNotFound,
		Message:  fmt.Sprintf("Промокод не найден: %s", code),
		Category: "promo",
		Action:   "Проверьте правильность промокода.",
	}
}

// NewPromoExpiredError создаёт ошибку промокода вне периода действия.
func NewPromoExpiredError(code string) *APIError {
	return &APIError{
		Code:     ErrCodePromoExpired,
		Message:  fmt.Sprintf("Срок действия промокода истёк: %s", code),
		Category: "promo",
		Action:   "Используйте действующий промокод.",
	}
}

// NewPromoUsageLimitError создаёт ошибку исчерпанного лимита применений промокода.
func NewPromoUsageLimitError(code string) *APIError {
	return &APIError{
		Code:     ErrCodePromoUsageLimit,
		Message:  fmt.Sprintf("Лимит применений промокода исчерпан: %s", code),
		Category: "promo",
		Action:   "Используйте другой промокод.",
	}
}

// NewPromoMinOrderTotalError создаёт ошибку недостаточной суммы заказа для промокода.
func NewPromoMinOrderTotalError(minTotal int) *APIError {
	return &APIError{
		Code:     ErrCodePromoMinOrderTotal,
		Message:  fmt.Sprintf("Промокод действует для заказов от %d.", minTotal),
		Category: "promo",
		Action:   "Увеличьте количество дней подписки или оформите заказ без промокода.",
	}
}

// NewInvalidRatingError создаёт ошибку недопустимой оценки в отзыве.
func NewInvalidRatingError(rating int) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRating,
		Message:  fmt.Sprintf("Недопустимая оценка: %d", rating),
		Category: "validation",
		Action:   "Оценка задаётся числом от 1 до 5.",
	}
}
