package domain

import (
	"time"

	"github.com/suchimauz/booking-scheduling-engine/internal/core/json_types"
)

type DayHours struct {
	Open   WallClock `json:"open"`
	Close  WallClock `json:"close"`
	Closed bool      `json:"closed,omitempty"`
}

type WeekHours map[Weekday]DayHours

// ForDate возвращает часы работы для дня недели указанной даты.
// Если для дня недели нет записи, день считается закрытым.
func (w WeekHours) ForDate(t time.Time) (DayHours, bool) {
	hours, ok := w[WeekdayOf(t)]
	if !ok || hours.Closed {
		return hours, false
	}
	return hours, true
}

// BusinessCalendarConfig — календарь арендатора: часы работы, праздники,
// таймзона и политика бронирования. Неизменяем на время жизни движка.
type BusinessCalendarConfig struct {
	BusinessHours         WeekHours         `json:"businessHours"`
	PublicHolidays        []json_types.Date `json:"publicHolidays"`
	Timezone              string            `json:"timezone"`
	BufferTimeMinutes     int               `json:"bufferTime"`
	MaxAdvanceBookingDays int               `json:"maxAdvanceBookingDays"`
	MinBookingNotice      int               `json:"minBookingNotice"` // в минутах
}

// IsHoliday проверяет, попадает ли дата в список праздничных дней
func (c BusinessCalendarConfig) IsHoliday(date string) bool {
	for _, holiday := range c.PublicHolidays {
		if holiday.Date.Format("2006-01-02") == date {
			return true
		}
	}
	return false
}
