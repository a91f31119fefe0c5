package schedule

import (
	"testing"
	"time"

	"github.com/foodberry/backend/internal/model"
)

// TestDeliveryMap_SingleWeekday проверяет карту с единственным доставочным
// днём: он замыкается на себя через 7 дней, остальные дни отсчитывают
// расстояние до ближайшего понедельника.
func TestDeliveryMap_SingleWeekday(t *testing.T) {
	m := DeliveryMap([]model.WeekDay{model.Monday})

	if len(m) != 7 {
		t.Fatalf("размер карты = %d, ожидался 7", len(m))
	}

	wantToNext := map[model.WeekDay]int{
		model.Monday:    7,
		model.Tuesday:   6,
		model.Wednesday: 5,
		model.Thursday:  4,
		model.Friday:    3,
		model.Saturday:  2,
		model.Sunday:    1,
	}

	for d := model.Monday; d <= model.Sunday; d++ {
		info := m[d]
		if info.IsDelivery != (d == model.Monday) {
			t.Errorf("%s: isDelivery = %v", d, info.IsDelivery)
		}
		if info.DaysToNext == nil {
			t.Errorf("%s: daysToNext не определён", d)
			continue
		}
		if *info.DaysToNext != wantToNext[d] {
			t.Errorf("%s: daysToNext = %d, ожидалось %d", d, *info.DaysToNext, wantToNext[d])
		}
	}
}

// TestDeliveryMap_Empty проверяет пустой набор доставочных дней:
// это допустимое состояние, daysToNext не определён у всех дней.
func TestDeliveryMap_Empty(t *testing.T) {
	m := DeliveryMap(nil)

	if len(m) != 7 {
		t.Fatalf("размер карты = %d, ожидался 7", len(m))
	}
	for d := model.Monday; d <= model.Sunday; d++ {
		info := m[d]
		if info.IsDelivery {
			t.Errorf("%s: isDelivery = true при пустом наборе", d)
		}
		if info.DaysToNext != nil {
			t.Errorf("%s: daysToNext = %d, ожидалось отсутствие значения", d, *info.DaysToNext)
		}
	}
}

// TestDeliveryMap_TwoWeekdays проверяет карту с понедельником и четвергом.
func TestDeliveryMap_TwoWeekdays(t *testing.T) {
	m := DeliveryMap([]model.WeekDay{model.Monday, model.Thursday})

	wantToNext := map[model.WeekDay]int{
		model.Monday:    3, // до четверга
		model.Tuesday:   2,
		model.Wednesday: 1,
		model.Thursday:  4, // до понедельника
		model.Friday:    3,
		model.Saturday:  2,
		model.Sunday:    1,
	}

	for d := model.Monday; d <= model.Sunday; d++ {
		info := m[d]
		wantDelivery := d == model.Monday || d == model.Thursday
		if info.IsDelivery != wantDelivery {
			t.Errorf("%s: isDelivery = %v, ожидалось %v", d, info.IsDelivery, wantDelivery)
		}
		if info.DaysToNext == nil || *info.DaysToNext != wantToNext[d] {
			t.Errorf("%s: daysToNext = %v, ожидалось %d", d, info.DaysToNext, wantToNext[d])
		}
	}
}

// TestDeliveryMap_AllWeekdays проверяет полный набор:
// каждый день доставочный, следующая доставка всегда завтра.
func TestDeliveryMap_AllWeekdays(t *testing.T) {
	all := []model.WeekDay{
		model.Monday, model.Tuesday, model.Wednesday, model.Thursday,
		model.Friday, model.Saturday, model.Sunday,
	}
	m := DeliveryMap(all)

	for d := model.Monday; d <= model.Sunday; d++ {
		info := m[d]
		if !info.IsDelivery {
			t.Errorf("%s: isDelivery = false", d)
		}
		if info.DaysToNext == nil || *info.DaysToNext != 1 {
			t.Errorf("%s: daysToNext = %v, ожидалось 1", d, info.DaysToNext)
		}
	}
}

// TestDeliveryMap_NextStepProperty проверяет свойство карты: шаг на
// daysToNext дней вперёд всегда попадает на доставочный день недели,
// и ни один меньший положительный шаг этому не удовлетворяет.
func TestDeliveryMap_NextStepProperty(t *testing.T) {
	sets := [][]model.WeekDay{
		{model.Wednesday},
		{model.Monday, model.Friday},
		{model.Tuesday, model.Thursday, model.Saturday},
		{model.Sunday, model.Monday},
	}

	for _, set := range sets {
		inSet := make(map[model.WeekDay]bool)
		for _, d := range set {
			inSet[d] = true
		}

		m := DeliveryMap(set)
		for d := model.Monday; d <= model.Sunday; d++ {
			info := m[d]
			if info.DaysToNext == nil {
				t.Errorf("набор %v, %s: daysToNext не определён", set, d)
				continue
			}
			k := *info.DaysToNext
			if k < 1 {
				t.Errorf("набор %v, %s: daysToNext = %d < 1", set, d, k)
			}
			if !inSet[d.Add(k)] {
				t.Errorf("набор %v, %s: шаг %d не попадает на доставочный день", set, d, k)
			}
			for smaller := 1; smaller < k; smaller++ {
				if inSet[d.Add(smaller)] {
					t.Errorf("набор %v, %s: меньший шаг %d тоже попадает на доставочный день", set, d, smaller)
				}
			}
		}
	}
}

// TestDeliveryMap_Idempotent проверяет чистоту функции.
func TestDeliveryMap_Idempotent(t *testing.T) {
	set := []model.WeekDay{model.Tuesday, model.Saturday}
	first := DeliveryMap(set)
	second := DeliveryMap(set)

	for d := model.Monday; d <= model.Sunday; d++ {
		a, b := first[d], second[d]
		if a.IsDelivery != b.IsDelivery {
			t.Errorf("%s: isDelivery различается между вызовами", d)
		}
		switch {
		case a.DaysToNext == nil && b.DaysToNext == nil:
		case a.DaysToNext != nil && b.DaysToNext != nil && *a.DaysToNext == *b.DaysToNext:
		default:
			t.Errorf("%s: daysToNext различается между вызовами", d)
		}
	}
}

// TestNextDeliveryFrom проверяет расчёт даты ближайшей доставки после заданной.
func TestNextDeliveryFrom(t *testing.T) {
	// Среда 18 июня, доставка по пятницам: ближайшая — пятница 20 июня.
	next, ok := NextDeliveryFrom(date(2025, time.June, 18), []model.WeekDay{model.Friday})
	if !ok {
		t.Fatal("доставочный день должен быть найден")
	}
	if !next.Equal(date(2025, time.June, 20)) {
		t.Errorf("следующая доставка = %s, ожидалась 2025-06-20", next.Format("2006-01-02"))
	}

	// Пятница, доставка по пятницам: следующее вхождение через неделю, не сегодня.
	next, ok = NextDeliveryFrom(date(2025, time.June, 20), []model.WeekDay{model.Friday})
	if !ok {
		t.Fatal("доставочный день должен быть найден")
	}
	if !next.Equal(date(2025, time.June, 27)) {
		t.Errorf("следующая доставка = %s, ожидалась 2025-06-27", next.Format("2006-01-02"))
	}
}

// TestNextDeliveryFrom_EmptySet проверяет отсутствие доставочных дней.
func TestNextDeliveryFrom_EmptySet(t *testing.T) {
	if _, ok := NextDeliveryFrom(date(2025, time.June, 18), nil); ok {
		t.Error("при пустом наборе дата доставки не должна находиться")
	}
}
