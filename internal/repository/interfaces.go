// Package repository определяет интерфейсы персистентности данных.
package repository

import (
	"context"
	"time"

	"github.com/foodberry/backend/internal/model"
)

// OrderRepository — интерфейс персистентности заказов-подписок.
type OrderRepository interface {
	// Create создаёт заказ вместе с календарём дней и заморозками
	// в одной транзакции.
	Create(ctx context.Context, order *model.Order, days []model.OrderDay, freezes []model.Freeze) error

	// FindByID возвращает заказ по идентификатору. Если заказ не найден, возвращает nil.
	FindByID(ctx context.Context, id string) (*model.Order, error)

	// List возвращает заказы для админ-панели, новые первыми.
	// Пустой status означает все статусы.
	List(ctx context.Context, status model.OrderStatus, limit, offset int) ([]*model.Order, error)

	// ListDays возвращает календарь дней заказа в хронологическом порядке.
	ListDays(ctx context.Context, orderID string) ([]model.OrderDay, error)

	// ListFreezes возвращает заморозки заказа в порядке добавления.
	ListFreezes(ctx context.Context, orderID string) ([]model.Freeze, error)

	// AddFreezeAndReplaceDays добавляет заморозку и заменяет календарь
	// дней заказа в одной транзакции.
	AddFreezeAndReplaceDays(ctx context.Context, orderID string, freeze model.Freeze, days []model.OrderDay) error

	// UpdateStatus обновляет статус заказа.
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error
}

// MenuRepository — интерфейс персистентности меню и блюд.
type MenuRepository interface {
	// FindByID возвращает меню по идентификатору. Если меню не найдено, возвращает nil.
	FindByID(ctx context.Context, id string) (*model.Menu, error)

	// ListActive возвращает активные меню в порядке позиции в цикле ротации.
	ListActive(ctx context.Context) ([]*model.Menu, error)

	// Create создаёт меню.
	Create(ctx context.Context, menu *model.Menu) error

	// Update обновляет меню.
	Update(ctx context.Context, menu *model.Menu) error

	// Delete удаляет меню. Блюда удаляются каскадно.
	Delete(ctx context.Context, id string) error

	// ListDishes возвращает блюда меню, сгруппированные по дню недели.
	ListDishes(ctx context.Context, menuID string) ([]*model.Dish, error)

	// CreateDish создаёт блюдо в составе меню.
	CreateDish(ctx context.Context, dish *model.Dish) error

	// DeleteDish удаляет блюдо.
	DeleteDish(ctx context.Context, id string) error
}

// PromoCodeRepository — интерфейс персистентности промокодов.
type PromoCodeRepository interface {
	// FindByCode возвращает промокод по коду. Если промокод не найден, возвращает nil.
	FindByCode(ctx context.Context, code string) (*model.PromoCode, error)

	// Create создаёт промокод.
	Create(ctx context.Context, promo *model.PromoCode) error

	// List возвращает промокоды для админ-панели, новые первыми.
	List(ctx context.Context) ([]*model.PromoCode, error)

	// IncrementUsage атомарно увеличивает счётчик применений промокода.
	IncrementUsage(ctx context.Context, id string) error

	// Deactivate выключает промокод.
	Deactivate(ctx context.Context, id string) error

	// DeactivateExpired выключает промокоды с истёкшим периодом действия.
	// Возвращает число затронутых промокодов.
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}

// ReviewRepository — интерфейс персистентности отзывов.
type ReviewRepository interface {
	// Create сохраняет отзыв (до модерации is_approved = false).
	Create(ctx context.Context, review *model.Review) error

	// ListApproved возвращает одобренные отзывы локали, новые первыми.
	ListApproved(ctx context.Context, locale string) ([]*model.Review, error)

	// ListPending возвращает отзывы, ожидающие модерации.
	ListPending(ctx context.Context) ([]*model.Review, error)

	// Approve помечает отзыв одобренным.
	Approve(ctx context.Context, id string) error

	// Delete удаляет отзыв.
	Delete(ctx context.Context, id string) error
}

// FAQRepository — интерфейс персистентности вопросов-ответов.
type FAQRepository interface {
	// List возвращает вопросы-ответы в порядке позиции.
	List(ctx context.Context) ([]*model.FAQItem, error)

	// Create создаёт вопрос-ответ.
	Create(ctx context.Context, item *model.FAQItem) error

	// Update обновляет вопрос-ответ.
	Update(ctx context.Context, item *model.FAQItem) error

	// Delete удаляет вопрос-ответ.
	Delete(ctx context.Context, id string) error
}

// TeamRepository — интерфейс персистентности страницы команды.
type TeamRepository interface {
	// List возвращает сотрудников в порядке сортировки.
	List(ctx context.Context) ([]*model.TeamMember, error)

	// Create создаёт запись сотрудника.
	Create(ctx context.Context, member *model.TeamMember) error

	// Delete удаляет запись сотрудника.
	Delete(ctx context.Context, id string) error
}

// CityRepository — интерфейс персистентности городов доставки.
type CityRepository interface {
	// FindByID возвращает город по идентификатору. Если город не найден, возвращает nil.
	FindByID(ctx context.Context, id string) (*model.City, error)

	// ListActive возвращает активные города доставки.
	ListActive(ctx context.Context) ([]*model.City, error)

	// Create создаёт город.
	Create(ctx context.Context, city *model.City) error
}

// SettingsRepository — интерфейс персистентности глобальных настроек доставки.
type SettingsRepository interface {
	// Get возвращает текущие настройки доставки.
	Get(ctx context.Context) (*model.DeliverySettings, error)

	// UpdateWeekdays заменяет набор доставочных дней недели
	// и увеличивает версию настроек.
	UpdateWeekdays(ctx context.Context, weekdays []model.WeekDay) (*model.DeliverySettings, error)
}
