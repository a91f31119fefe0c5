package repository

import "github.com/foodberry/backend/internal/model"

// weekdaysToInt64 конвертирует дни недели для записи в колонку SMALLINT[].
func weekdaysToInt64(days []model.WeekDay) []int64 {
	out := make([]int64, len(days))
	for i, d := range days {
		out[i] = int64(d)
	}
	return out
}

// int64ToWeekdays конвертирует прочитанную колонку SMALLINT[] в дни недели.
func int64ToWeekdays(values []int64) []model.WeekDay {
	out := make([]model.WeekDay, len(values))
	for i, v := range values {
		out[i] = model.WeekDay(v)
	}
	return out
}
