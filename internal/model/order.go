// Package model определяет доменные модели сервиса.
package model

import "time"

// OrderStatus представляет статус заказа-подписки.
type OrderStatus string

const (
	// OrderStatusActive — активная подписка с запланированными доставками.
	OrderStatusActive OrderStatus = "active"
	// OrderStatusCompleted — все оплаченные дни доставлены.
	OrderStatusCompleted OrderStatus = "completed"
	// OrderStatusCancelled — подписка отменена до завершения.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// DaySkipType представляет причину, по которой календарный день
// не засчитывается в оплаченные дни подписки.
type DaySkipType string

const (
	// SkipTypeDeliveryOnly — день первой доставки: еда доставляется,
	// но день не расходует оплаченный лимит.
	SkipTypeDeliveryOnly DaySkipType = "DELIVERY_ONLY"
	// SkipTypeWeekdaySkipped — день недели исключён настройками подписки.
	SkipTypeWeekdaySkipped DaySkipType = "WEEKDAY_SKIPPED"
	// SkipTypeFrozen — день попадает в интервал заморозки.
	SkipTypeFrozen DaySkipType = "FROZEN"
)

// Order представляет заказ-подписку на доставку еды.
// Поля расписания (FirstDeliveryDate, DaysCount, SkippedWeekdays) хранятся,
// чтобы календарь можно было детерминированно пересчитать при добавлении заморозки.
type Order struct {
	ID                string
	CityID            string
	MenuID            string
	CustomerName      string
	CustomerPhone     string
	Address           string
	Locale            string
	FirstDeliveryDate time.Time
	DaysCount         int
	SkippedWeekdays   []WeekDay
	PricePerDay       int
	TotalPrice        int
	Discount          int
	PromoCodeID       *string
	Status            OrderStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// OrderDay представляет один календарный день заказа.
// SkipType равен nil для обычного засчитанного дня доставки.
type OrderDay struct {
	ID        string
	OrderID   string
	Date      time.Time
	IsSkipped bool
	SkipType  *DaySkipType
	Delivered bool
}

// Freeze представляет интервал заморозки доставки [StartDate, EndDate]
// с включёнными границами. Границы должны быть датами без времени.
type Freeze struct {
	ID        string
	OrderID   string
	StartDate time.Time
	EndDate   time.Time
}

// Contains сообщает, попадает ли дата внутрь интервала (границы включены).
func (f Freeze) Contains(date time.Time) bool {
	return !date.Before(f.StartDate) && !date.After(f.EndDate)
}

// Days возвращает длину интервала в календарных днях (минимум 1).
func (f Freeze) Days() int {
	return int(f.EndDate.Sub(f.StartDate).Hours()/24) + 1
}
