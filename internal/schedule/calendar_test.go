package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/foodberry/backend/internal/model"
)

// date создаёт дату без компонента времени в UTC.
func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// freeze создаёт интервал заморозки для тестов.
func freeze(start, end time.Time) model.Freeze {
	return model.Freeze{StartDate: start, EndDate: end}
}

// assertDay проверяет дату и классификацию одного дня календаря.
func assertDay(t *testing.T, got Day, wantDate time.Time, wantSkip *model.DaySkipType) {
	t.Helper()
	if !got.Date.Equal(wantDate) {
		t.Errorf("дата = %s, ожидалась %s", got.Date.Format("2006-01-02"), wantDate.Format("2006-01-02"))
	}
	if wantSkip == nil {
		if got.IsSkipped || got.SkipType != nil {
			t.Errorf("день %s должен быть обычным днём доставки, получено isSkipped=%v skipType=%v",
				wantDate.Format("2006-01-02"), got.IsSkipped, got.SkipType)
		}
		return
	}
	if !got.IsSkipped {
		t.Errorf("день %s должен иметь isSkipped=true", wantDate.Format("2006-01-02"))
	}
	if got.SkipType == nil || *got.SkipType != *wantSkip {
		t.Errorf("день %s: skipType = %v, ожидался %s", wantDate.Format("2006-01-02"), got.SkipType, *wantSkip)
	}
}

var (
	deliveryOnly   = model.SkipTypeDeliveryOnly
	weekdaySkipped = model.SkipTypeWeekdaySkipped
	frozenSkip     = model.SkipTypeFrozen
)

// TestCalendar_NoSkips проверяет календарь без исключённых дней и заморозок:
// опорный день DELIVERY_ONLY и ровно DaysCount обычных дней подряд.
func TestCalendar_NoSkips(t *testing.T) {
	days, err := Calendar(Request{
		FirstDeliveryDate: date(2025, time.June, 10),
		DaysCount:         4,
	})
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	if len(days) != 5 {
		t.Fatalf("длина календаря = %d, ожидалась 5", len(days))
	}
	assertDay(t, days[0], date(2025, time.June, 10), &deliveryOnly)
	assertDay(t, days[1], date(2025, time.June, 11), nil)
	assertDay(t, days[2], date(2025, time.June, 12), nil)
	assertDay(t, days[3], date(2025, time.June, 13), nil)
	assertDay(t, days[4], date(2025, time.June, 14), nil)
}

// TestCalendar_SkipsFridays проверяет исключённую пятницу:
// пятница попадает в календарь как WEEKDAY_SKIPPED и не расходует лимит.
func TestCalendar_SkipsFridays(t *testing.T) {
	days, err := Calendar(Request{
		FirstDeliveryDate: date(2025, time.June, 18), // среда
		DaysCount:         4,
		SkippedWeekdays:   []model.WeekDay{model.Friday},
	})
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	if len(days) != 6 {
		t.Fatalf("длина календаря = %d, ожидалась 6", len(days))
	}
	assertDay(t, days[0], date(2025, time.June, 18), &deliveryOnly)
	assertDay(t, days[1], date(2025, time.June, 19), nil)
	assertDay(t, days[2], date(2025, time.June, 20), &weekdaySkipped) // пятница
	assertDay(t, days[3], date(2025, time.June, 21), nil)
	assertDay(t, days[4], date(2025, time.June, 22), nil)
	assertDay(t, days[5], date(2025, time.June, 23), nil)
}

// TestCalendar_FreezeAfterFirstDelivery проверяет заморозку, начинающуюся
// на следующий день после опорной даты: опора остаётся DELIVERY_ONLY,
// замороженные дни входят в календарь как FROZEN.
func TestCalendar_FreezeAfterFirstDelivery(t *testing.T) {
	days, err := Calendar(Request{
		FirstDeliveryDate: date(2025, time.June, 10),
		DaysCount:         4,
		Freezes: []model.Freeze{
			freeze(date(2025, time.June, 11), date(2025, time.June, 14)),
		},
	})
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	if len(days) != 9 {
		t.Fatalf("длина календаря = %d, ожидалась 9", len(days))
	}
	assertDay(t, days[0], date(2025, time.June, 10), &deliveryOnly)
	for i := 1; i <= 4; i++ {
		assertDay(t, days[i], date(2025, time.June, 10+i), &frozenSkip)
	}
	for i := 5; i <= 8; i++ {
		assertDay(t, days[i], date(2025, time.June, 10+i), nil)
	}
}

// TestCalendar_AnchorOnSkippedWeekday проверяет перенос опорной даты:
// если опора выпадает на исключённый день недели, DELIVERY_ONLY смещается
// на первую подходящую дату, а сама опора в календарь не попадает.
func TestCalendar_AnchorOnSkippedWeekday(t *testing.T) {
	days, err := Calendar(Request{
		FirstDeliveryDate: date(2025, time.June, 20), // пятница
		DaysCount:         2,
		SkippedWeekdays:   []model.WeekDay{model.Friday},
	})
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	assertDay(t, days[0], date(2025, time.June, 21), &deliveryOnly)
	if len(days) != 3 {
		t.Fatalf("длина календаря = %d, ожидалась 3", len(days))
	}
	assertDay(t, days[1], date(2025, time.June, 22), nil)
	assertDay(t, days[2], date(2025, time.June, 23), nil)
}

// TestCalendar_AnchorInsideFreeze проверяет заморозку, накрывающую опорную дату:
// поиск DELIVERY_ONLY перешагивает весь замороженный интервал,
// и опора никогда не классифицируется как FROZEN.
func TestCalendar_AnchorInsideFreeze(t *testing.T) {
	days, err := Calendar(Request{
		FirstDeliveryDate: date(2025, time.June, 12),
		DaysCount:         2,
		Freezes: []model.Freeze{
			freeze(date(2025, time.June, 10), date(2025, time.June, 14)),
		},
	})
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	if len(days) != 3 {
		t.Fatalf("длина календаря = %d, ожидалась 3", len(days))
	}
	assertDay(t, days[0], date(2025, time.June, 15), &deliveryOnly)
	assertDay(t, days[1], date(2025, time.June, 16), nil)
	assertDay(t, days[2], date(2025, time.June, 17), nil)
}

// TestCalendar_AnchorFrozenAndOnSkippedWeekday проверяет совмещение на опоре:
// опора внутри заморозки, первый день после заморозки — исключённый день недели.
// DELIVERY_ONLY смещается за оба препятствия.
func TestCalendar_AnchorFrozenAndOnSkippedWeekday(t *testing.T) {
	days, err := Calendar(Request{
		FirstDeliveryDate: date(2025, time.June, 12), // четверг
		DaysCount:         1,
		SkippedWeekdays:   []model.WeekDay{model.Saturday},
		Freezes: []model.Freeze{
			freeze(date(2025, time.June, 12), date(2025, time.June, 13)),
		},
	})
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	// 12–13 заморожены, 14 — суббота: опора разрешается в воскресенье 15-го.
	assertDay(t, days[0], date(2025, time.June, 15), &deliveryOnly)
	if len(days) != 2 {
		t.Fatalf("длина календаря = %d, ожидалась 2", len(days))
	}
	assertDay(t, days[1], date(2025, time.June, 16), nil)
}

// TestCalendar_FreezePriorityOverWeekdaySkip проверяет приоритет классификации:
// день одновременно замороженный и исключённый классифицируется как FROZEN.
func TestCalendar_FreezePriorityOverWeekdaySkip(t *testing.T) {
	days, err := Calendar(Request{
		FirstDeliveryDate: date(2025, time.June, 18), // среда
		DaysCount:         3,
		SkippedWeekdays:   []model.WeekDay{model.Friday},
		Freezes: []model.Freeze{
			freeze(date(2025, time.June, 20), date(2025, time.June, 20)), // пятница
		},
	})
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	var fridayDay *Day
	for i := range days {
		if days[i].Date.Equal(date(2025, time.June, 20)) {
			fridayDay = &days[i]
		}
	}
	if fridayDay == nil {
		t.Fatal("пятница 20 июня отсутствует в календаре")
	}
	if fridayDay.SkipType == nil || *fridayDay.SkipType != model.SkipTypeFrozen {
		t.Errorf("замороженная пятница: skipType = %v, ожидался FROZEN", fridayDay.SkipType)
	}
}

// TestCalendar_OverlappingFreezes проверяет пересекающиеся интервалы заморозки:
// каждый день входит в календарь ровно один раз, без дублей.
func TestCalendar_OverlappingFreezes(t *testing.T) {
	days, err := Calendar(Request{
		FirstDeliveryDate: date(2025, time.June, 10),
		DaysCount:         3,
		Freezes: []model.Freeze{
			freeze(date(2025, time.June, 11), date(2025, time.June, 13)),
			freeze(date(2025, time.June, 12), date(2025, time.June, 14)),
		},
	})
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	seen := make(map[string]int)
	for _, d := range days {
		seen[d.Date.Format("2006-01-02")]++
	}
	for day, count := range seen {
		if count != 1 {
			t.Errorf("день %s встречается %d раз", day, count)
		}
	}

	// 11–14 заморожены независимо от порядка интервалов.
	frozenCount := 0
	for _, d := range days {
		if d.SkipType != nil && *d.SkipType == model.SkipTypeFrozen {
			frozenCount++
		}
	}
	if frozenCount != 4 {
		t.Errorf("замороженных дней = %d, ожидалось 4", frozenCount)
	}
}

// TestCalendar_EffectiveDaysCount проверяет инвариант: число обычных
// (засчитанных) дней всегда равно DaysCount, и календарь обрывается
// сразу после последнего засчитанного дня.
func TestCalendar_EffectiveDaysCount(t *testing.T) {
	requests := []Request{
		{FirstDeliveryDate: date(2025, time.June, 10), DaysCount: 1},
		{FirstDeliveryDate: date(2025, time.June, 10), DaysCount: 14},
		{
			FirstDeliveryDate: date(2025, time.June, 10),
			DaysCount:         10,
			SkippedWeekdays:   []model.WeekDay{model.Saturday, model.Sunday},
		},
		{
			FirstDeliveryDate: date(2025, time.July, 7),
			DaysCount:         20,
			SkippedWeekdays: []model.WeekDay{
				model.Monday, model.Tuesday, model.Wednesday,
				model.Thursday, model.Friday, model.Saturday,
			},
		},
		{
			FirstDeliveryDate: date(2025, time.June, 10),
			DaysCount:         6,
			SkippedWeekdays:   []model.WeekDay{model.Wednesday},
			Freezes: []model.Freeze{
				freeze(date(2025, time.June, 12), date(2025, time.June, 16)),
				freeze(date(2025, time.June, 20), date(2025, time.June, 20)),
			},
		},
	}

	for i, req := range requests {
		days, err := Calendar(req)
		if err != nil {
			t.Fatalf("запрос %d: неожиданная ошибка: %v", i, err)
		}

		effective := 0
		for _, d := range days {
			if !d.IsSkipped {
				effective++
			}
		}
		if effective != req.DaysCount {
			t.Errorf("запрос %d: засчитанных дней = %d, ожидалось %d", i, effective, req.DaysCount)
		}

		last := days[len(days)-1]
		if last.IsSkipped {
			t.Errorf("запрос %d: календарь должен заканчиваться засчитанным днём", i)
		}

		if days[0].SkipType == nil || *days[0].SkipType != model.SkipTypeDeliveryOnly {
			t.Errorf("запрос %d: первый день должен быть DELIVERY_ONLY", i)
		}

		// Дни строго последовательны начиная с разрешённой опоры.
		for j := 1; j < len(days); j++ {
			if !days[j].Date.Equal(days[j-1].Date.AddDate(0, 0, 1)) {
				t.Errorf("запрос %d: разрыв календаря между %s и %s",
					i, days[j-1].Date.Format("2006-01-02"), days[j].Date.Format("2006-01-02"))
			}
		}
	}
}

// TestCalendar_Idempotent проверяет чистоту функции: повторный вызов
// с теми же аргументами даёт идентичный результат.
func TestCalendar_Idempotent(t *testing.T) {
	req := Request{
		FirstDeliveryDate: date(2025, time.June, 18),
		DaysCount:         7,
		SkippedWeekdays:   []model.WeekDay{model.Friday, model.Saturday},
		Freezes: []model.Freeze{
			freeze(date(2025, time.June, 22), date(2025, time.June, 24)),
		},
	}

	first, err := Calendar(req)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	second, err := Calendar(req)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("длины результатов различаются: %d и %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Date.Equal(second[i].Date) || first[i].IsSkipped != second[i].IsSkipped {
			t.Errorf("день %d различается между вызовами", i)
		}
	}
}

// TestCalendar_TimeComponentIgnored проверяет, что компонент времени
// опорной даты отбрасывается: календарь состоит из дат без времени.
func TestCalendar_TimeComponentIgnored(t *testing.T) {
	days, err := Calendar(Request{
		FirstDeliveryDate: time.Date(2025, time.June, 10, 15, 30, 45, 0, time.UTC),
		DaysCount:         2,
	})
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	assertDay(t, days[0], date(2025, time.June, 10), &deliveryOnly)
}

// TestCalendar_AllWeekdaysSkipped проверяет отказ конфигурации,
// в которой исключены все семь дней недели.
func TestCalendar_AllWeekdaysSkipped(t *testing.T) {
	_, err := Calendar(Request{
		FirstDeliveryDate: date(2025, time.June, 10),
		DaysCount:         3,
		SkippedWeekdays: []model.WeekDay{
			model.Monday, model.Tuesday, model.Wednesday, model.Thursday,
			model.Friday, model.Saturday, model.Sunday,
		},
	})

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeAllWeekdaysSkipped {
		t.Fatalf("ожидалась ошибка %s, получено %v", model.ErrCodeAllWeekdaysSkipped, err)
	}
}

// TestCalendar_AllWeekdaysSkippedWithDuplicates проверяет, что дубликаты
// в наборе исключённых дней не обходят проверку «все семь дней».
func TestCalendar_AllWeekdaysSkippedWithDuplicates(t *testing.T) {
	days, err := Calendar(Request{
		FirstDeliveryDate: date(2025, time.June, 10),
		DaysCount:         1,
		SkippedWeekdays: []model.WeekDay{
			model.Monday, model.Monday, model.Tuesday, model.Wednesday, model.Thursday,
			model.Friday, model.Saturday,
		},
	})
	if err != nil {
		t.Fatalf("шесть уникальных исключённых дней допустимы, получена ошибка: %v", err)
	}
	if len(days) == 0 {
		t.Fatal("календарь пуст")
	}
}

// TestCalendar_ZeroDaysCount проверяет отказ для нулевого количества дней.
func TestCalendar_ZeroDaysCount(t *testing.T) {
	_, err := Calendar(Request{
		FirstDeliveryDate: date(2025, time.June, 10),
		DaysCount:         0,
	})

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeInvalidDaysCount {
		t.Fatalf("ожидалась ошибка %s, получено %v", model.ErrCodeInvalidDaysCount, err)
	}
}

// TestCalendar_InvalidFreezeInterval проверяет отказ интервала заморозки
// с датой начала позже даты окончания.
func TestCalendar_InvalidFreezeInterval(t *testing.T) {
	_, err := Calendar(Request{
		FirstDeliveryDate: date(2025, time.June, 10),
		DaysCount:         3,
		Freezes: []model.Freeze{
			freeze(date(2025, time.June, 14), date(2025, time.June, 11)),
		},
	})

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeInvalidFreezeInterval {
		t.Fatalf("ожидалась ошибка %s, получено %v", model.ErrCodeInvalidFreezeInterval, err)
	}
}

// TestCalendar_InvalidWeekdayValue проверяет отказ значения дня недели вне 1–7.
func TestCalendar_InvalidWeekdayValue(t *testing.T) {
	_, err := Calendar(Request{
		FirstDeliveryDate: date(2025, time.June, 10),
		DaysCount:         3,
		SkippedWeekdays:   []model.WeekDay{model.WeekDay(8)},
	})

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeInvalidWeekday {
		t.Fatalf("ожидалась ошибка %s, получено %v", model.ErrCodeInvalidWeekday, err)
	}
}

// TestCalendar_SingleDeliveryWeekday проверяет крайний случай шести
// исключённых дней: между засчитанными днями проходит целая неделя.
func TestCalendar_SingleDeliveryWeekday(t *testing.T) {
	days, err := Calendar(Request{
		FirstDeliveryDate: date(2025, time.July, 7), // понедельник
		DaysCount:         3,
		SkippedWeekdays: []model.WeekDay{
			model.Tuesday, model.Wednesday, model.Thursday,
			model.Friday, model.Saturday, model.Sunday,
		},
	})
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	assertDay(t, days[0], date(2025, time.July, 7), &deliveryOnly)

	var effectiveDates []time.Time
	for _, d := range days {
		if !d.IsSkipped {
			effectiveDates = append(effectiveDates, d.Date)
		}
	}
	want := []time.Time{
		date(2025, time.July, 14),
		date(2025, time.July, 21),
		date(2025, time.July, 28),
	}
	if len(effectiveDates) != len(want) {
		t.Fatalf("засчитанных дней = %d, ожидалось %d", len(effectiveDates), len(want))
	}
	for i := range want {
		if !effectiveDates[i].Equal(want[i]) {
			t.Errorf("засчитанный день %d = %s, ожидался %s",
				i, effectiveDates[i].Format("2006-01-02"), want[i].Format("2006-01-02"))
		}
	}
}
