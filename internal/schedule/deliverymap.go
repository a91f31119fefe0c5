package schedule

import (
	"time"

	"github.com/foodberry/backend/internal/model"
)

// DayInfo представляет одну строку недельной карты доставки.
// DaysToNext равен nil, когда доставочных дней недели нет вовсе.
type DayInfo struct {
	IsDelivery bool `json:"is_delivery"`
	DaysToNext *int `json:"days_to_next"`
}

// DeliveryMap вычисляет недельную карту доставки: для каждого дня недели
// 1–7 — является ли он доставочным и через сколько дней следующая доставка.
//
// «Следующая» означает строго следующее вхождение: DaysToNext всегда >= 1,
// даже для самого доставочного дня. При единственном доставочном дне недели
// он замыкается на себя через 7 дней. Для пустого набора DaysToNext
// не определён (nil) у всех дней.
func DeliveryMap(deliveryWeekdays []model.WeekDay) map[model.WeekDay]DayInfo {
	set := make(map[model.WeekDay]struct{}, len(deliveryWeekdays))
	for _, d := range deliveryWeekdays {
		if d.Valid() {
			set[d] = struct{}{}
		}
	}

	result := make(map[model.WeekDay]DayInfo, 7)
	for d := model.Monday; d <= model.Sunday; d++ {
		_, isDelivery := set[d]
		info := DayInfo{IsDelivery: isDelivery}

		if len(set) > 0 {
			for k := 1; k <= 7; k++ {
				if _, ok := set[d.Add(k)]; ok {
					step := k
					info.DaysToNext = &step
					break
				}
			}
		}

		result[d] = info
	}
	return result
}

// NextDeliveryFrom возвращает ближайшую дату доставки строго после from.
// Возвращает false, если доставочных дней недели нет.
func NextDeliveryFrom(from time.Time, deliveryWeekdays []model.WeekDay) (time.Time, bool) {
	m := DeliveryMap(deliveryWeekdays)
	info := m[model.WeekDayOf(from)]
	if info.DaysToNext == nil {
		return time.Time{}, false
	}
	return dateOnly(from).AddDate(0, 0, *info.DaysToNext), true
}
