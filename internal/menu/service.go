// Package menu содержит логику недельных меню и их ротации.
package menu

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/foodberry/backend/internal/model"
	"github.com/foodberry/backend/internal/repository"
)

// rotationEpoch — понедельник, от которого отсчитываются недели ротации.
// Фиксированная опора делает выбор меню детерминированным: одна и та же
// дата всегда попадает в одно и то же меню цикла.
var rotationEpoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// MenuDetails объединяет меню с блюдами.
type MenuDetails struct {
	Menu   *model.Menu
	Dishes []*model.Dish
}

// Service — сервисный слой меню.
type Service struct {
	menuRepo repository.MenuRepository
	logger   *slog.Logger
}

// NewService создаёт новый экземпляр Service.
func NewService(menuRepo repository.MenuRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{menuRepo: menuRepo, logger: logger}
}

// Get возвращает меню с блюдами.
func (s *Service) Get(ctx context.Context, menuID string) (*MenuDetails, error) {
	menu, err := s.menuRepo.FindByID(ctx, menuID)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить меню: %w", err)
	}
	if menu == nil {
		return nil, model.NewMenuNotFoundError(menuID)
	}

	dishes, err := s.menuRepo.ListDishes(ctx, menuID)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить блюда меню: %w", err)
	}

	return &MenuDetails{Menu: menu, Dishes: dishes}, nil
}

// ListActive возвращает активные меню в порядке цикла ротации.
func (s *Service) ListActive(ctx context.Context) ([]*model.Menu, error) {
	menus, err := s.menuRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить список меню: %w", err)
	}
	return menus, nil
}

// ForDate возвращает меню, действующее на неделе указанной даты.
// Индекс недели относительно rotationEpoch берётся по модулю
// длины цикла активных меню.
func (s *Service) ForDate(ctx context.Context, date time.Time) (*model.Menu, error) {
	menus, err := s.menuRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить список меню: %w", err)
	}
	if len(menus) == 0 {
		return nil, model.NewMenuNotFoundError("")
	}

	idx := weekIndex(date) % len(menus)
	return menus[idx], nil
}

// DishesForDate возвращает блюда действующего меню на указанную дату.
func (s *Service) DishesForDate(ctx context.Context, date time.Time) (*model.Menu, []*model.Dish, error) {
	menu, err := s.ForDate(ctx, date)
	if err != nil {
		return nil, nil, err
	}

	dishes, err := s.menuRepo.ListDishes(ctx, menu.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("не удалось получить блюда меню: %w", err)
	}

	weekday := model.WeekDayOf(date)
	var forDay []*model.Dish
	for _, d := range dishes {
		if d.WeekDay == weekday {
			forDay = append(forDay, d)
		}
	}
	return menu, forDay, nil
}

// CreateRequest представляет запрос на создание или обновление меню.
type CreateRequest struct {
	TitleRu       string
	TitleHe       string
	DescriptionRu string
	DescriptionHe string
	PricePerDay   int
	CyclePosition int
}

// Create создаёт меню.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*model.Menu, error) {
	now := time.Now()
	menu := &model.Menu{
		ID:            uuid.NewString(),
		TitleRu:       req.TitleRu,
		TitleHe:       req.TitleHe,
		DescriptionRu: req.DescriptionRu,
		DescriptionHe: req.DescriptionHe,
		PricePerDay:   req.PricePerDay,
		CyclePosition: req.CyclePosition,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.menuRepo.Create(ctx, menu); err != nil {
		return nil, fmt.Errorf("не удалось создать меню: %w", err)
	}

	s.logger.Info("menu created",
		slog.String("menu_id", menu.ID),
		slog.Int("cycle_position", menu.CyclePosition),
	)
	return menu, nil
}

// Update обновляет меню.
func (s *Service) Update(ctx context.Context, menuID string, req CreateRequest, isActive bool) (*model.Menu, error) {
	menu, err := s.menuRepo.FindByID(ctx, menuID)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить меню: %w", err)
	}
	if menu == nil {
		return nil, model.NewMenuNotFoundError(menuID)
	}

	menu.TitleRu = req.TitleRu
	menu.TitleHe = req.TitleHe
	menu.DescriptionRu = req.DescriptionRu
	menu.DescriptionHe = req.DescriptionHe
	menu.PricePerDay = req.PricePerDay
	menu.CyclePosition = req.CyclePosition
	menu.IsActive = isActive
	menu.UpdatedAt = time.Now()

	if err := s.menuRepo.Update(ctx, menu); err != nil {
		return nil, fmt.Errorf("не удалось обновить меню: %w", err)
	}
	return menu, nil
}

// Delete удаляет меню вместе с блюдами.
func (s *Service) Delete(ctx context.Context, menuID string) error {
	if err := s.menuRepo.Delete(ctx, menuID); err != nil {
		return fmt.Errorf("не удалось удалить меню: %w", err)
	}
	s.logger.Info("menu deleted", slog.String("menu_id", menuID))
	return nil
}

// DishRequest представляет запрос на добавление блюда в меню.
type DishRequest struct {
	TitleRu       string
	TitleHe       string
	DescriptionRu string
	DescriptionHe string
	WeekDay       model.WeekDay
	Calories      int
	Proteins      int
	Fats          int
	Carbohydrates int
}

// AddDish добавляет блюдо в меню.
func (s *Service) AddDish(ctx context.Context, menuID string, req DishRequest) (*model.Dish, error) {
	if !req.WeekDay.Valid() {
		return nil, model.NewInvalidWeekdayError(int(req.WeekDay))
	}

	menu, err := s.menuRepo.FindByID(ctx, menuID)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить меню: %w", err)
	}
	if menu == nil {
		return nil, model.NewMenuNotFoundError(menuID)
	}

	now := time.Now()
	dish := &model.Dish{
		ID:            uuid.NewString(),
		MenuID:        menuID,
		TitleRu:       req.TitleRu,
		TitleHe:       req.TitleHe,
		DescriptionRu: req.DescriptionRu,
		DescriptionHe: req.DescriptionHe,
		WeekDay:       req.WeekDay,
		Calories:      req.Calories,
		Proteins:      req.Proteins,
		Fats:          req.Fats,
		Carbohydrates: req.Carbohydrates,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.menuRepo.CreateDish(ctx, dish); err != nil {
		return nil, fmt.Errorf("не удалось добавить блюдо: %w", err)
	}
	return dish, nil
}

// DeleteDish удаляет блюдо из меню.
func (s *Service) DeleteDish(ctx context.Context, dishID string) error {
	if err := s.menuRepo.DeleteDish(ctx, dishID); err != nil {
		return fmt.Errorf("не удалось удалить блюдо: %w", err)
	}
	return nil
}

// weekIndex возвращает номер недели даты относительно rotationEpoch.
// Неделя начинается с понедельника.
func weekIndex(date time.Time) int {
	monday := mondayOf(date)
	days := int(monday.Sub(rotationEpoch).Hours() / 24)
	if days < 0 {
		// Даты до опоры выравниваются в неотрицательный индекс.
		days = -days
	}
	return days / 7
}

// mondayOf возвращает понедельник недели указанной даты в UTC.
func mondayOf(date time.Time) time.Time {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	offset := int(model.WeekDayOf(d)) - 1
	return d.AddDate(0, 0, -offset)
}
