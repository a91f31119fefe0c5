// Package model определяет доменные модели сервиса.
package model

import "time"

// WeekDay представляет день недели по ISO-нумерации: 1 (понедельник) — 7 (воскресенье).
// Вся арифметика дней недели в сервисе ведётся в этой шкале, а не в шкале
// time.Weekday (где воскресенье = 0).
type WeekDay int

const (
	// Monday — понедельник.
	Monday WeekDay = iota + 1
	// Tuesday — вторник.
	Tuesday
	// Wednesday — среда.
	Wednesday
	// Thursday — четверг.
	Thursday
	// Friday — пятница.
	Friday
	// Saturday — суббота.
	Saturday
	// Sunday — воскресенье.
	Sunday
)

// WeekDayOf нормализует time.Time к шкале 1–7.
// Воскресенье (time.Weekday == 0) отображается в 7.
func WeekDayOf(t time.Time) WeekDay {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	return WeekDay(wd)
}

// Valid сообщает, попадает ли значение в диапазон 1–7.
func (d WeekDay) Valid() bool {
	return d >= Monday && d <= Sunday
}

// Add возвращает день недели через n календарных дней вперёд (циклически).
func (d WeekDay) Add(n int) WeekDay {
	return WeekDay((int(d)-1+n)%7 + 1)
}

var weekDayNames = map[WeekDay]string{
	Monday:    "понедельник",
	Tuesday:   "вторник",
	Wednesday: "среда",
	Thursday:  "четверг",
	Friday:    "пятница",
	Saturday:  "суббота",
	Sunday:    "воскресенье",
}

// String возвращает русское название дня недели.
func (d WeekDay) String() string {
	if name, ok := weekDayNames[d]; ok {
		return name
	}
	return "неизвестный день"
}
