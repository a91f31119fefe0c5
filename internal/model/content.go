// Package model определяет доменные модели сервиса.
package model

import "time"

// Locale — поддерживаемые локали сервиса.
const (
	LocaleRu = "ru"
	LocaleHe = "he"
)

// ValidLocale сообщает, поддерживается ли локаль.
func ValidLocale(locale string) bool {
	return locale == LocaleRu || locale == LocaleHe
}

// Review представляет отзыв покупателя.
// Текст отзыва проходит санитизацию перед сохранением.
type Review struct {
	ID         string
	Author     string
	Text       string
	Rating     int
	Locale     string
	IsApproved bool
	CreatedAt  time.Time
}

// FAQItem представляет вопрос-ответ для страницы FAQ.
type FAQItem struct {
	ID         string
	QuestionRu string
	QuestionHe string
	AnswerRu   string
	AnswerHe   string
	Position   int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TeamMember представляет сотрудника на странице команды.
type TeamMember struct {
	ID         string
	NameRu     string
	NameHe     string
	PositionRu string
	PositionHe string
	BioRu      string
	BioHe      string
	SortOrder  int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// City представляет город доставки.
type City struct {
	ID        string
	NameRu    string
	NameHe    string
	IsActive  bool
	CreatedAt time.Time
}
