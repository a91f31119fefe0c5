// Package promo содержит логику проверки и управления промокодами.
package promo

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/foodberry/backend/internal/model"
	"github.com/foodberry/backend/internal/repository"
)

// CreateRequest представляет запрос на создание промокода.
type CreateRequest struct {
	Code          string
	DiscountType  model.DiscountType
	DiscountValue int
	MinOrderTotal int
	ValidFrom     time.Time
	ValidTo       time.Time
	UsageLimit    int
}

// Service — сервисный слой промокодов.
type Service struct {
	promoRepo repository.PromoCodeRepository
	logger    *slog.Logger
}

// NewService создаёт новый экземпляр Service.
func NewService(promoRepo repository.PromoCodeRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{promoRepo: promoRepo, logger: logger}
}

// Validate проверяет применимость промокода к заказу с данной суммой.
// Код нечувствителен к регистру и окружающим пробелам.
func (s *Service) Validate(ctx context.Context, code string, orderTotal int) (*model.PromoCode, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))

	promo, err := s.promoRepo.FindByCode(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить промокод: %w", err)
	}
	if promo == nil || !promo.IsActive {
		return nil, model.NewPromoNotFoundError(normalized)
	}

	now := time.Now()
	if now.Before(promo.ValidFrom) || now.After(promo.ValidTo) {
		return nil, model.NewPromoExpiredError(normalized)
	}
	if promo.UsageLimit > 0 && promo.UsageCount >= promo.UsageLimit {
		return nil, model.NewPromoUsageLimitError(normalized)
	}
	if orderTotal < promo.MinOrderTotal {
		return nil, model.NewPromoMinOrderTotalError(promo.MinOrderTotal)
	}

	return promo, nil
}

// MarkUsed фиксирует применение промокода, увеличивая счётчик использований.
func (s *Service) MarkUsed(ctx context.Context, promoID string) error {
	if err := s.promoRepo.IncrementUsage(ctx, promoID); err != nil {
		return fmt.Errorf("не удалось увеличить счётчик промокода: %w", err)
	}
	return nil
}

// Create создаёт промокод. Код хранится в верхнем регистре.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*model.PromoCode, error) {
	now := time.Now()
	promo := &model.PromoCode{
		ID:            uuid.NewString(),
		Code:          strings.ToUpper(strings.TrimSpace(req.Code)),
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		MinOrderTotal: req.MinOrderTotal,
		ValidFrom:     req.ValidFrom,
		ValidTo:       req.ValidTo,
		UsageLimit:    req.UsageLimit,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.promoRepo.Create(ctx, promo); err != nil {
		return nil, fmt.Errorf("не удалось создать промокод: %w", err)
	}

	s.logger.Info("promo code created",
		slog.String("promo_id", promo.ID),
		slog.String("code", promo.Code),
	)
	return promo, nil
}

// List возвращает все промокоды для админ-панели.
func (s *Service) List(ctx context.Context) ([]*model.PromoCode, error) {
	promos, err := s.promoRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить список промокодов: %w", err)
	}
	return promos, nil
}

// Deactivate отключает промокод.
func (s *Service) Deactivate(ctx context.Context, promoID string) error {
	if err := s.promoRepo.Deactivate(ctx, promoID); err != nil {
		return fmt.Errorf("не удалось отключить промокод: %w", err)
	}
	s.logger.Info("promo code deactivated", slog.String("promo_id", promoID))
	return nil
}
