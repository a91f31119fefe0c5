// Package content содержит логику контентных страниц:
// отзывы, FAQ, команда и города доставки.
package content

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/foodberry/backend/internal/model"
	"github.com/foodberry/backend/internal/repository"
)

// Service — сервисный слой контента.
type Service struct {
	reviewRepo repository.ReviewRepository
	faqRepo    repository.FAQRepository
	teamRepo   repository.TeamRepository
	cityRepo   repository.CityRepository
	sanitizer  *bluemonday.Policy
	logger     *slog.Logger
}

// NewService создаёт новый экземпляр Service.
// Текст пользовательских отзывов очищается строгой политикой:
// любая HTML-разметка удаляется целиком.
func NewService(
	reviewRepo repository.ReviewRepository,
	faqRepo repository.FAQRepository,
	teamRepo repository.TeamRepository,
	cityRepo repository.CityRepository,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		reviewRepo: reviewRepo,
		faqRepo:    faqRepo,
		teamRepo:   teamRepo,
		cityRepo:   cityRepo,
		sanitizer:  bluemonday.StrictPolicy(),
		logger:     logger,
	}
}

// ReviewRequest представляет запрос на публикацию отзыва.
type ReviewRequest struct {
	Author string
	Text   string
	Rating int
	Locale string
}

// SubmitReview сохраняет отзыв покупателя для модерации.
// Автор и текст проходят санитизацию от HTML-разметки.
func (s *Service) SubmitReview(ctx context.Context, req ReviewRequest) (*model.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, model.NewInvalidRatingError(req.Rating)
	}
	if !model.ValidLocale(req.Locale) {
		return nil, model.NewInvalidLocaleError(req.Locale)
	}

	review := &model.Review{
		ID:         uuid.NewString(),
		Author:     strings.TrimSpace(s.sanitizer.Sanitize(req.Author)),
		Text:       strings.TrimSpace(s.sanitizer.Sanitize(req.Text)),
		Rating:     req.Rating,
		Locale:     req.Locale,
		IsApproved: false,
		CreatedAt:  time.Now(),
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("не удалось сохранить отзыв: %w", err)
	}

	s.logger.Info("review submitted",
		slog.String("review_id", review.ID),
		slog.Int("rating", review.Rating),
		slog.String("locale", review.Locale),
	)
	return review, nil
}

// ListReviews возвращает одобренные отзывы локали.
func (s *Service) ListReviews(ctx context.Context, locale string) ([]*model.Review, error) {
	if !model.ValidLocale(locale) {
		return nil, model.NewInvalidLocaleError(locale)
	}
	reviews, err := s.reviewRepo.ListApproved(ctx, locale)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить отзывы: %w", err)
	}
	return reviews, nil
}

// ListPendingReviews возвращает отзывы, ожидающие модерации.
func (s *Service) ListPendingReviews(ctx context.Context) ([]*model.Review, error) {
	reviews, err := s.reviewRepo.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить отзывы на модерации: %w", err)
	}
	return reviews, nil
}

// ApproveReview одобряет отзыв.
func (s *Service) ApproveReview(ctx context.Context, reviewID string) error {
	if err := s.reviewRepo.Approve(ctx, reviewID); err != nil {
		return fmt.Errorf("не удалось одобрить отзыв: %w", err)
	}
	s.logger.Info("review approved", slog.String("review_id", reviewID))
	return nil
}

// DeleteReview удаляет отзыв.
func (s *Service) DeleteReview(ctx context.Context, reviewID string) error {
	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		return fmt.Errorf("не удалось удалить отзыв: %w", err)
	}
	return nil
}

// ListFAQ возвращает вопросы-ответы в порядке позиции.
func (s *Service) ListFAQ(ctx context.Context) ([]*model.FAQItem, error) {
	items, err := s.faqRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить FAQ: %w", err)
	}
	return items, nil
}

// FAQRequest представляет запрос на создание или обновление вопроса-ответа.
type FAQRequest struct {
	QuestionRu string
	QuestionHe string
	AnswerRu   string
	AnswerHe   string
	Position   int
}

// CreateFAQ создаёт вопрос-ответ.
func (s *Service) CreateFAQ(ctx context.Context, req FAQRequest) (*model.FAQItem, error) {
	now := time.Now()
	item := &model.FAQItem{
		ID:         uuid.NewString(),
		QuestionRu: req.QuestionRu,
		QuestionHe: req.QuestionHe,
		AnswerRu:   req.AnswerRu,
		AnswerHe:   req.AnswerHe,
		Position:   req.Position,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.faqRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("не удалось создать вопрос-ответ: %w", err)
	}
	return item, nil
}

// UpdateFAQ обновляет вопрос-ответ.
func (s *Service) UpdateFAQ(ctx context.Context, id string, req FAQRequest) (*model.FAQItem, error) {
	item := &model.FAQItem{
		ID:         id,
		QuestionRu: req.QuestionRu,
		QuestionHe: req.QuestionHe,
		AnswerRu:   req.AnswerRu,
		AnswerHe:   req.AnswerHe,
		Position:   req.Position,
		UpdatedAt:  time.Now(),
	}

	if err := s.faqRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("не удалось обновить вопрос-ответ: %w", err)
	}
	return item, nil
}

// DeleteFAQ удаляет вопрос-ответ.
func (s *Service) DeleteFAQ(ctx context.Context, id string) error {
	if err := s.faqRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("не удалось удалить вопрос-ответ: %w", err)
	}
	return nil
}

// ListTeam возвращает сотрудников страницы команды.
func (s *Service) ListTeam(ctx context.Context) ([]*model.TeamMember, error) {
	members, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить список команды: %w", err)
	}
	return members, nil
}

// TeamMemberRequest представляет запрос на добавление сотрудника.
type TeamMemberRequest struct {
	NameRu     string
	NameHe     string
	PositionRu string
	PositionHe string
	BioRu      string
	BioHe      string
	SortOrder  int
}

// AddTeamMember добавляет сотрудника на страницу команды.
func (s *Service) AddTeamMember(ctx context.Context, req TeamMemberRequest) (*model.TeamMember, error) {
	now := time.Now()
	member := &model.TeamMember{
		ID:         uuid.NewString(),
		NameRu:     req.NameRu,
		NameHe:     req.NameHe,
		PositionRu: req.PositionRu,
		PositionHe: req.PositionHe,
		BioRu:      req.BioRu,
		BioHe:      req.BioHe,
		SortOrder:  req.SortOrder,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.teamRepo.Create(ctx, member); err != nil {
		return nil, fmt.Errorf("не удалось добавить сотрудника: %w", err)
	}
	return member, nil
}

// DeleteTeamMember удаляет сотрудника со страницы команды.
func (s *Service) DeleteTeamMember(ctx context.Context, id string) error {
	if err := s.teamRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("не удалось удалить сотрудника: %w", err)
	}
	return nil
}

// ListCities возвращает активные города доставки.
func (s *Service) ListCities(ctx context.Context) ([]*model.City, error) {
	cities, err := s.cityRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить список городов: %w", err)
	}
	return cities, nil
}

// AddCity добавляет город доставки.
func (s *Service) AddCity(ctx context.Context, nameRu, nameHe string) (*model.City, error) {
	city := &model.City{
		ID:        uuid.NewString(),
		NameRu:    nameRu,
		NameHe:    nameHe,
		IsActive:  true,
		CreatedAt: time.Now(),
	}

	if err := s.cityRepo.Create(ctx, city); err != nil {
		return nil, fmt.Errorf("не удалось добавить город: %w", err)
	}

	s.logger.Info("city added", slog.String("city_id", city.ID))
	return city, nil
}
