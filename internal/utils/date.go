package utils

import (
	"fmt"
	"time"
)

// StartCurrentDay возвращает начало суток даты, таймзона остается прежней
func StartCurrentDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartNextDay возвращает начало следующих суток, таймзона остается прежней
func StartNextDay(t time.Time) time.Time {
	return StartCurrentDay(t.AddDate(0, 0, 1))
}

// ParseDate парсит дату из строки в формате RFC3339, если не удается,
// пробует дату со временем без таймзоны, затем дату без времени —
// обе в переданной локации
func ParseDate(str string, loc *time.Location) (time.Time, error) {
	parsedDate, err := time.Parse(time.RFC3339, str)
	if err != nil {
		parsedDate, err = time.ParseInLocation("2006-01-02T15:04:05", str, loc)
		if err != nil {
			parsedDate, err = time.ParseInLocation("2006-01-02", str, loc)
			if err != nil {
				return time.Time{}, fmt.Errorf("failed to parse date: %v", err)
			}
		}
	}

	return parsedDate, nil
}
