// Package model определяет доменные модели сервиса.
package model

import "time"

// DeliverySettings представляет глобальные настройки доставки,
// редактируемые из админ-панели. Version увеличивается при каждом
// изменении и служит ключом кэша производной карты доставки.
type DeliverySettings struct {
	ID               string
	DeliveryWeekdays []WeekDay
	Version          int
	UpdatedAt        time.Time
}
