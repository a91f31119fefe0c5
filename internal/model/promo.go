// Package model определяет доменные модели сервиса.
package model

import "time"

// DiscountType представляет тип скидки промокода.
type DiscountType string

const (
	// DiscountPercent — скидка в процентах от суммы заказа.
	DiscountPercent DiscountType = "percent"
	// DiscountFixed — фиксированная скидка в денежных единицах.
	DiscountFixed DiscountType = "fixed"
)

// PromoCode представляет промокод.
type PromoCode struct {
	ID            string
	Code          string
	DiscountType  DiscountType
	DiscountValue int
	MinOrderTotal int
	ValidFrom     time.Time
	ValidTo       time.Time
	UsageLimit    int
	UsageCount    int
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
