package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/foodberry/backend/internal/content"
	"github.com/foodberry/backend/internal/model"
)

// ContentServiceInterface — интерфейс сервиса контента для обработчиков.
type ContentServiceInterface interface {
	// SubmitReview сохраняет отзыв для модерации.
	SubmitReview(ctx context.Context, req content.ReviewRequest) (*model.Review, error)
	// ListReviews возвращает одобренные отзывы локали.
	ListReviews(ctx context.Context, locale string) ([]*model.Review, error)
	// ListPendingReviews возвращает отзывы на модерации.
	ListPendingReviews(ctx context.Context) ([]*model.Review, error)
	// ApproveReview одобряет отзыв.
	ApproveReview(ctx context.Context, reviewID string) error
	// DeleteReview удаляет отзыв.
	DeleteReview(ctx context.Context, reviewID string) error
	// ListFAQ возвращает вопросы-ответы.
	ListFAQ(ctx context.Context) ([]*model.FAQItem, error)
	// CreateFAQ создаёт вопрос-ответ.
	CreateFAQ(ctx context.Context, req content.FAQRequest) (*model.FAQItem, error)
	// UpdateFAQ обновляет вопрос-ответ.
	UpdateFAQ(ctx context.Context, id string, req content.FAQRequest) (*model.FAQItem, error)
	// DeleteFAQ удаляет вопрос-ответ.
	DeleteFAQ(ctx context.Context, id string) error
	// ListTeam возвращает сотрудников страницы команды.
	ListTeam(ctx context.Context) ([]*model.TeamMember, error)
	// AddTeamMember добавляет сотрудника.
	AddTeamMember(ctx context.Context, req content.TeamMemberRequest) (*model.TeamMember, error)
	// DeleteTeamMember удаляет сотрудника.
	DeleteTeamMember(ctx context.Context, id string) error
	// ListCities возвращает активные города доставки.
	ListCities(ctx context.Context) ([]*model.City, error)
	// AddCity добавляет город доставки.
	AddCity(ctx context.Context, nameRu, nameHe string) (*model.City, error)
}

// ContentHandler — HTTP-обработчик контентных страниц.
type ContentHandler struct {
	service ContentServiceInterface
}

// NewContentHandler создаёт ContentHandler.
func NewContentHandler(service ContentServiceInterface) *ContentHandler {
	return &ContentHandler{service: service}
}

// reviewResponse — отзыв в ответе API.
type reviewResponse struct {
	ID         string    `json:"id"`
	Author     string    `json:"author"`
	Text       string    `json:"text"`
	Rating     int       `json:"rating"`
	Locale     string    `json:"locale"`
	IsApproved bool      `json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
}

// submitReviewRequest — тело запроса публикации отзыва.
type submitReviewRequest struct {
	Author string `json:"author"`
	Text   string `json:"text"`
	Rating int    `json:"rating"`
	Locale string `json:"locale"`
}

// SubmitReview сохраняет отзыв покупателя.
// POST /api/reviews
func (h *ContentHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	var req submitReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyError(w)
		return
	}

	review, err := h.service.SubmitReview(r.Context(), content.ReviewRequest{
		Author: req.Author,
		Text:   req.Text,
		Rating: req.Rating,
		Locale: req.Locale,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toReviewResponse(review))
}

// ListReviews возвращает одобренные отзывы локали.
// GET /api/reviews?locale=ru
func (h *ContentHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	locale := r.URL.Query().Get("locale")
	if locale == "" {
		locale = model.LocaleRu
	}

	reviews, err := h.service.ListReviews(r.Context(), locale)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]reviewResponse, len(reviews))
	for i, rev := range reviews {
		resp[i] = toReviewResponse(rev)
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListPendingReviews возвращает отзывы на модерации.
// GET /api/admin/reviews/pending
func (h *ContentHandler) ListPendingReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.ListPendingReviews(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]reviewResponse, len(reviews))
	for i, rev := range reviews {
		resp[i] = toReviewResponse(rev)
	}
	writeJSON(w, http.StatusOK, resp)
}

// ApproveReview одобряет отзыв.
// POST /api/admin/reviews/{id}/approve
func (h *ContentHandler) ApproveReview(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ApproveReview(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteReview удаляет отзыв.
// DELETE /api/admin/reviews/{id}
func (h *ContentHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteReview(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// faqResponse — вопрос-ответ в ответе API.
type faqResponse struct {
	ID         string `json:"id"`
	QuestionRu string `json:"question_ru"`
	QuestionHe string `json:"question_he"`
	AnswerRu   string `json:"answer_ru"`
	AnswerHe   string `json:"answer_he"`
	Position   int    `json:"position"`
}

// faqRequest — тело запроса создания и обновления вопроса-ответа.
type faqRequest struct {
	QuestionRu string `json:"question_ru"`
	QuestionHe string `json:"question_he"`
	AnswerRu   string `json:"answer_ru"`
	AnswerHe   string `json:"answer_he"`
	Position   int    `json:"position"`
}

// ListFAQ возвращает вопросы-ответы.
// GET /api/faq
func (h *ContentHandler) ListFAQ(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListFAQ(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]faqResponse, len(items))
	for i, item := range items {
		resp[i] = toFAQResponse(item)
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateFAQ создаёт вопрос-ответ.
// POST /api/admin/faq
func (h *ContentHandler) CreateFAQ(w http.ResponseWriter, r *http.Request) {
	var req faqRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyError(w)
		return
	}

	item, err := h.service.CreateFAQ(r.Context(), content.FAQRequest{
		QuestionRu: req.QuestionRu,
		QuestionHe: req.QuestionHe,
		AnswerRu:   req.AnswerRu,
		AnswerHe:   req.AnswerHe,
		Position:   req.Position,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toFAQResponse(item))
}

// UpdateFAQ обновляет вопрос-ответ.
// PUT /api/admin/faq/{id}
func (h *ContentHandler) UpdateFAQ(w http.ResponseWriter, r *http.Request) {
	var req faqRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyError(w)
		return
	}

	item, err := h.service.UpdateFAQ(r.Context(), chi.URLParam(r, "id"), content.FAQRequest{
		QuestionRu: req.QuestionRu,
		QuestionHe: req.QuestionHe,
		AnswerRu:   req.AnswerRu,
		AnswerHe:   req.AnswerHe,
		Position:   req.Position,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toFAQResponse(item))
}

// DeleteFAQ удаляет вопрос-ответ.
// DELETE /api/admin/faq/{id}
func (h *ContentHandler) DeleteFAQ(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteFAQ(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// teamMemberResponse — сотрудник в ответе API.
type teamMemberResponse struct {
	ID         string `json:"id"`
	NameRu     string `json:"name_ru"`
	NameHe     string `json:"name_he"`
	PositionRu string `json:"position_ru"`
	PositionHe string `json:"position_he"`
	BioRu      string `json:"bio_ru"`
	BioHe      string `json:"bio_he"`
	SortOrder  int    `json:"sort_order"`
}

// ListTeam возвращает сотрудников страницы команды.
// GET /api/team
func (h *ContentHandler) ListTeam(w http.ResponseWriter, r *http.Request) {
	members, err := h.service.ListTeam(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]teamMemberResponse, len(members))
	for i, m := range members {
		resp[i] = teamMemberResponse{
			ID:         m.ID,
			NameRu:     m.NameRu,
			NameHe:     m.NameHe,
			PositionRu: m.PositionRu,
			PositionHe: m.PositionHe,
			BioRu:      m.BioRu,
			BioHe:      m.BioHe,
			SortOrder:  m.SortOrder,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// teamMemberRequest — тело запроса добавления сотрудника.
type teamMemberRequest struct {
	NameRu     string `json:"name_ru"`
	NameHe     string `json:"name_he"`
	PositionRu string `json:"position_ru"`
	PositionHe string `json:"position_he"`
	BioRu      string `json:"bio_ru"`
	BioHe      string `json:"bio_he"`
	SortOrder  int    `json:"sort_order"`
}

// AddTeamMember добавляет сотрудника.
// POST /api/admin/team
func (h *ContentHandler) AddTeamMember(w http.ResponseWriter, r *http.Request) {
	var req teamMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyError(w)
		return
	}

	member, err := h.service.AddTeamMember(r.Context(), content.TeamMemberRequest{
		NameRu:     req.NameRu,
		NameHe:     req.NameHe,
		PositionRu: req.PositionRu,
		PositionHe: req.PositionHe,
		BioRu:      req.BioRu,
		BioHe:      req.BioHe,
		SortOrder:  req.SortOrder,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, teamMemberResponse{
		ID:         member.ID,
		NameRu:     member.NameRu,
		NameHe:     member.NameHe,
		PositionRu: member.PositionRu,
		PositionHe: member.PositionHe,
		BioRu:      member.BioRu,
		BioHe:      member.BioHe,
		SortOrder:  member.SortOrder,
	})
}

// DeleteTeamMember удаляет сотрудника.
// DELETE /api/admin/team/{id}
func (h *ContentHandler) DeleteTeamMember(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteTeamMember(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// cityResponse — город доставки в ответе API.
type cityResponse struct {
	ID     string `json:"id"`
	NameRu string `json:"name_ru"`
	NameHe string `json:"name_he"`
}

// ListCities возвращает активные города доставки.
// GET /api/cities
func (h *ContentHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.service.ListCities(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]cityResponse, len(cities))
	for i, c := range cities {
		resp[i] = cityResponse{ID: c.ID, NameRu: c.NameRu, NameHe: c.NameHe}
	}
	writeJSON(w, http.StatusOK, resp)
}

// addCityRequest — тело запроса добавления города.
type addCityRequest struct {
	NameRu string `json:"name_ru"`
	NameHe string `json:"name_he"`
}

// AddCity добавляет город доставки.
// POST /api/admin/cities
func (h *ContentHandler) AddCity(w http.ResponseWriter, r *http.Request) {
	var req addCityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyError(w)
		return
	}

	city, err := h.service.AddCity(r.Context(), req.NameRu, req.NameHe)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, cityResponse{ID: city.ID, NameRu: city.NameRu, NameHe: city.NameHe})
}

func toReviewResponse(rev *model.Review) reviewResponse {
	return reviewResponse{
		ID:         rev.ID,
		Author:     rev.Author,
		Text:       rev.Text,
		Rating:     rev.Rating,
		Locale:     rev.Locale,
		IsApproved: rev.IsApproved,
		CreatedAt:  rev.CreatedAt,
	}
}

func toFAQResponse(item *model.FAQItem) faqResponse {
	return faqResponse{
		ID:         item.ID,
		QuestionRu: item.QuestionRu,
		QuestionHe: item.QuestionHe,
		AnswerRu:   item.AnswerRu,
		AnswerHe:   item.AnswerHe,
		Position:   item.Position,
	}
}
