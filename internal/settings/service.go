// Package settings содержит логику глобальных настроек доставки
// и кэшированной недельной карты доставки.
package settings

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/foodberry/backend/internal/model"
	"github.com/foodberry/backend/internal/repository"
	"github.com/foodberry/backend/internal/schedule"
)

// Service — сервисный слой настроек доставки.
// Недельная карта доставки кэшируется по версии настроек:
// пересчёт происходит только после изменения набора дней.
type Service struct {
	settingsRepo repository.SettingsRepository
	logger       *slog.Logger

	mu            sync.RWMutex
	cachedVersion int
	cachedMap     map[model.WeekDay]schedule.DayInfo
}

// NewService создаёт новый экземпляр Service.
func NewService(settingsRepo repository.SettingsRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{settingsRepo: settingsRepo, logger: logger}
}

// Get возвращает текущие настройки доставки.
func (s *Service) Get(ctx context.Context) (*model.DeliverySettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить настройки доставки: %w", err)
	}
	return settings, nil
}

// DeliveryMap возвращает недельную карту доставки для текущих настроек.
// Карта пересчитывается только при изменении версии настроек.
func (s *Service) DeliveryMap(ctx context.Context) (map[model.WeekDay]schedule.DayInfo, int, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("не удалось получить настройки доставки: %w", err)
	}

	s.mu.RLock()
	if s.cachedMap != nil && s.cachedVersion == settings.Version {
		cached := s.cachedMap
		s.mu.RUnlock()
		return cached, settings.Version, nil
	}
	s.mu.RUnlock()

	computed := schedule.DeliveryMap(settings.DeliveryWeekdays)

	s.mu.Lock()
	s.cachedVersion = settings.Version
	s.cachedMap = computed
	s.mu.Unlock()

	s.logger.Debug("delivery map recomputed",
		slog.Int("settings_version", settings.Version),
		slog.Int("delivery_weekdays", len(settings.DeliveryWeekdays)),
	)
	return computed, settings.Version, nil
}

// NextDelivery возвращает ближайшую дату доставки строго после from.
// Второе значение false означает, что доставочных дней нет.
func (s *Service) NextDelivery(ctx context.Context, from time.Time) (time.Time, bool, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("не удалось получить настройки доставки: %w", err)
	}

	next, ok := schedule.NextDeliveryFrom(from, settings.DeliveryWeekdays)
	return next, ok, nil
}

// UpdateWeekdays заменяет набор доставочных дней недели.
// Дни проверяются на валидность, дубликаты схлопываются.
func (s *Service) UpdateWeekdays(ctx context.Context, weekdays []model.WeekDay) (*model.DeliverySettings, error) {
	seen := make(map[model.WeekDay]struct{}, len(weekdays))
	unique := make([]model.WeekDay, 0, len(weekdays))
	for _, d := range weekdays {
		if !d.Valid() {
			return nil, model.NewInvalidWeekdayError(int(d))
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		unique = append(unique, d)
	}

	settings, err := s.settingsRepo.UpdateWeekdays(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("не удалось обновить настройки доставки: %w", err)
	}

	s.logger.Info("delivery weekdays updated",
		slog.Int("settings_version", settings.Version),
		slog.Int("delivery_weekdays", len(settings.DeliveryWeekdays)),
	)
	return settings, nil
}
