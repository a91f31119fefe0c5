package model

import (
	"testing"
	"time"
)

// TestWeekDayOf проверяет нормализацию time.Time к шкале 1–7:
// понедельник = 1, воскресенье = 7 (а не 0, как в time.Weekday).
func TestWeekDayOf(t *testing.T) {
	cases := []struct {
		date time.Time
		want WeekDay
	}{
		{time.Date(2025, time.July, 7, 0, 0, 0, 0, time.UTC), Monday},
		{time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC), Tuesday},
		{time.Date(2025, time.June, 18, 0, 0, 0, 0, time.UTC), Wednesday},
		{time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC), Friday},
		{time.Date(2025, time.June, 14, 0, 0, 0, 0, time.UTC), Saturday},
		{time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC), Sunday},
	}

	for _, c := range cases {
		if got := WeekDayOf(c.date); got != c.want {
			t.Errorf("WeekDayOf(%s) = %d, ожидалось %d", c.date.Format("2006-01-02"), got, c.want)
		}
	}
}

// TestWeekDay_Add проверяет циклическое сложение с переходом через воскресенье.
func TestWeekDay_Add(t *testing.T) {
	if got := Saturday.Add(2); got != Monday {
		t.Errorf("Saturday.Add(2) = %d, ожидался понедельник", got)
	}
	if got := Sunday.Add(7); got != Sunday {
		t.Errorf("Sunday.Add(7) = %d, ожидалось воскресенье", got)
	}
	if got := Monday.Add(1); got != Tuesday {
		t.Errorf("Monday.Add(1) = %d, ожидался вторник", got)
	}
}

// TestWeekDay_Valid проверяет границы диапазона.
func TestWeekDay_Valid(t *testing.T) {
	if WeekDay(0).Valid() {
		t.Error("0 не должен быть допустимым днём недели")
	}
	if WeekDay(8).Valid() {
		t.Error("8 не должен быть допустимым днём недели")
	}
	if !Monday.Valid() || !Sunday.Valid() {
		t.Error("границы 1 и 7 должны быть допустимы")
	}
}

// TestFreeze_Contains проверяет включённость границ интервала.
func TestFreeze_Contains(t *testing.T) {
	f := Freeze{
		StartDate: time.Date(2025, time.June, 11, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, time.June, 14, 0, 0, 0, 0, time.UTC),
	}

	if !f.Contains(f.StartDate) {
		t.Error("дата начала должна входить в интервал")
	}
	if !f.Contains(f.EndDate) {
		t.Error("дата окончания должна входить в интервал")
	}
	if f.Contains(f.StartDate.AddDate(0, 0, -1)) {
		t.Error("день до начала не должен входить в интервал")
	}
	if f.Contains(f.EndDate.AddDate(0, 0, 1)) {
		t.Error("день после окончания не должен входить в интервал")
	}
	if f.Days() != 4 {
		t.Errorf("длина интервала = %d, ожидалось 4", f.Days())
	}
}
