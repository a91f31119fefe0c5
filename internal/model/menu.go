// Package model определяет доменные модели сервиса.
package model

import "time"

// Menu представляет недельное меню. Меню образуют ротационный цикл:
// позиция в цикле определяет, какое меню действует на конкретной неделе.
type Menu struct {
	ID            string
	TitleRu       string
	TitleHe       string
	DescriptionRu string
	DescriptionHe string
	PricePerDay   int
	CyclePosition int
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Dish представляет блюдо в составе меню.
type Dish struct {
	ID            string
	MenuID        string
	TitleRu       string
	TitleHe       string
	DescriptionRu string
	DescriptionHe string
	WeekDay       WeekDay
	Calories      int
	Proteins      int
	Fats          int
	Carbohydrates int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
