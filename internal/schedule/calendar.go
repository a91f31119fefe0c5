// Package schedule реализует расчёт календаря доставок подписки
// и производной недельной карты доставки. Обе функции чистые:
// не имеют состояния и безопасны для конкурентных вызовов.
package schedule

import (
	"errors"
	"time"

	"github.com/foodberry/backend/internal/model"
)

// ErrIterationLimit возвращается, если генерация календаря не завершилась
// за расчётное число шагов. Это не пользовательская ошибка, а признак
// пропущенной валидации: усечённый календарь никогда не возвращается.
var ErrIterationLimit = errors.New("превышен предел итераций расчёта календаря")

// Request представляет параметры расчёта календаря подписки.
// Request не персистентен: он собирается на каждый вызов из заказа
// или из тела запроса предпросмотра.
type Request struct {
	// FirstDeliveryDate — опорная дата (день ноль) генерации календаря.
	FirstDeliveryDate time.Time
	// DaysCount — число оплаченных (засчитываемых) дней доставки.
	DaysCount int
	// SkippedWeekdays — дни недели, в которые доставка не выполняется никогда.
	SkippedWeekdays []model.WeekDay
	// Freezes — интервалы приостановки доставки с включёнными границами.
	Freezes []model.Freeze
}

// Day представляет классификацию одного календарного дня подписки.
// SkipType равен nil для обычного засчитанного дня доставки.
type Day struct {
	Date      time.Time
	IsSkipped bool
	SkipType  *model.DaySkipType
}

// Validate проверяет параметры запроса до начала генерации.
// Ошибки возвращаются как *model.APIError категории validation.
func (r Request) Validate() error {
	if r.DaysCount < 1 {
		return model.NewInvalidDaysCountError(r.DaysCount)
	}
	seen := make(map[model.WeekDay]struct{}, len(r.SkippedWeekdays))
	for _, d := range r.SkippedWeekdays {
		if !d.Valid() {
			return model.NewInvalidWeekdayError(int(d))
		}
		seen[d] = struct{}{}
	}
	if len(seen) == 7 {
		return model.NewAllWeekdaysSkippedError()
	}
	for _, f := range r.Freezes {
		if f.StartDate.After(f.EndDate) {
			return model.NewInvalidFreezeIntervalError()
		}
	}
	return nil
}

// Calendar вычисляет упорядоченный календарь дней подписки.
//
// Первым элементом всегда идёт день DELIVERY_ONLY — ближайшая дата начиная
// с FirstDeliveryDate, не попадающая ни в исключённый день недели, ни в
// заморозку. Он не расходует оплаченный лимит; даты, пропущенные при его
// поиске, в результат не попадают. Дальше календарь идёт день за днём:
// заморозка имеет приоритет над исключённым днём недели, обычный день
// увеличивает счётчик засчитанных дней. Генерация останавливается сразу
// после дня, закрывающего DaysCount.
func Calendar(req Request) ([]Day, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	skipped := make(map[model.WeekDay]struct{}, len(req.SkippedWeekdays))
	for _, d := range req.SkippedWeekdays {
		skipped[d] = struct{}{}
	}

	// Предохранитель от незавершающейся генерации: даже при шести
	// исключённых днях недели один засчитанный день требует не более
	// семи календарных, плюс суммарная длина заморозок на поиск опоры
	// и внутри календаря.
	limit := (req.DaysCount+1)*7 + totalFreezeDays(req.Freezes) + 7
	iterations := 0

	cursor := dateOnly(req.FirstDeliveryDate)

	// Разрешение опорной даты: сама опора не классифицируется
	// ни как FROZEN, ни как WEEKDAY_SKIPPED — поиск смещается вперёд
	// до первой чистой даты.
	for frozen(cursor, req.Freezes) || isSkippedWeekday(cursor, skipped) {
		cursor = cursor.AddDate(0, 0, 1)
		iterations++
		if iterations > limit {
			return nil, ErrIterationLimit
		}
	}

	deliveryOnly := model.SkipTypeDeliveryOnly
	days := []Day{{Date: cursor, IsSkipped: true, SkipType: &deliveryOnly}}

	produced := 0
	for produced < req.DaysCount {
		cursor = cursor.AddDate(0, 0, 1)
		iterations++
		if iterations > limit {
			return nil, ErrIterationLimit
		}

		switch {
		case frozen(cursor, req.Freezes):
			st := model.SkipTypeFrozen
			days = append(days, Day{Date: cursor, IsSkipped: true, SkipType: &st})
		case isSkippedWeekday(cursor, skipped):
			st := model.SkipTypeWeekdaySkipped
			days = append(days, Day{Date: cursor, IsSkipped: true, SkipType: &st})
		default:
			days = append(days, Day{Date: cursor})
			produced++
		}
	}

	return days, nil
}

// frozen сообщает, попадает ли дата хотя бы в один интервал заморозки.
// Порядок интервалов и их пересечения на результат не влияют.
func frozen(date time.Time, freezes []model.Freeze) bool {
	for _, f := range freezes {
		if f.Contains(date) {
			return true
		}
	}
	return false
}

func isSkippedWeekday(date time.Time, skipped map[model.WeekDay]struct{}) bool {
	_, ok := skipped[model.WeekDayOf(date)]
	return ok
}

func totalFreezeDays(freezes []model.Freeze) int {
	total := 0
	for _, f := range freezes {
		total += f.Days()
	}
	return total
}

// dateOnly отбрасывает компонент времени, сохраняя локацию даты.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
