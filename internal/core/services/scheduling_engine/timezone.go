package scheduling_engine

import (
	"fmt"
	"time"

	"github.com/suchimauz/booking-scheduling-engine/internal/core/domain"
)

// TimezoneManager — чистая утилита календарной математики:
// локальное настенное время ⇄ UTC с учетом перехода на летнее время
type TimezoneManager struct {
	defaultTimezone string
	defaultLocation *time.Location
}

func NewTimezoneManager(timezone string) (*TimezoneManager, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown timezone %q", domain.ErrInvalidConfiguration, timezone)
	}

	return &TimezoneManager{
		defaultTimezone: timezone,
		defaultLocation: loc,
	}, nil
}

// IsValidTimezone проверяет, известен ли идентификатор базе таймзон рантайма
func IsValidTimezone(timezone string) bool {
	_, err := time.LoadLocation(timezone)
	return err == nil
}

// location возвращает локацию для переданной таймзоны или дефолтную
func (m *TimezoneManager) location(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == m.defaultTimezone {
		return m.defaultLocation, nil
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown timezone %q", domain.ErrInvalidConfiguration, timezone)
	}
	return loc, nil
}

// ToUTC интерпретирует пару дата+время как настенное время таймзоны
// со смещением на конкретную дату и возвращает абсолютный момент в UTC
func (m *TimezoneManager) ToUTC(date string, clock string, timezone string) (time.Time, error) {
	loc, err := m.location(timezone)
	if err != nil {
		return time.Time{}, err
	}

	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse date %q: %v", date, err)
	}

	wallClock, err := domain.ParseWallClock(clock)
	if err != nil {
		return time.Time{}, err
	}

	local := time.Date(day.Year(), day.Month(), day.Day(), wallClock.Hour, wallClock.Minute, 0, 0, loc)
	return local.UTC(), nil
}

// FromUTC — обратная операция: форматирует абсолютный момент
// в локальные дату и 24-часовое время таймзоны
func (m *TimezoneManager) FromUTC(instant time.Time, timezone string) (string, string, error) {
	loc, err := m.location(timezone)
	if err != nil {
		return "", "", err
	}

	local := instant.In(loc)
	return local.Format("2006-01-02"), local.Format("15:04"), nil
}

// IsDST проверяет, действует ли летнее время на указанную дату.
// Сравниваем смещение на дату со смещениями на январь и июль:
// летнее смещение — большее из двух, если они вообще различаются.
func (m *TimezoneManager) IsDST(timezone string, instant time.Time) (bool, error) {
	loc, err := m.location(timezone)
	if err != nil {
		return false, err
	}

	year := instant.In(loc).Year()
	_, janOffset := time.Date(year, time.January, 1, 12, 0, 0, 0, loc).Zone()
	_, julOffset := time.Date(year, time.July, 1, 12, 0, 0, 0, loc).Zone()

	if janOffset == julOffset {
		return false, nil
	}

	summerOffset := janOffset
	if julOffset > summerOffset {
		summerOffset = julOffset
	}

	_, dateOffset := instant.In(loc).Zone()
	return dateOffset == summerOffset, nil
}

// Format форматирует момент для отображения в таймзоне.
// Стили соответствуют короткому, длинному и полному представлению даты.
func (m *TimezoneManager) Format(instant time.Time, style string, timezone string) (string, error) {
	loc, err := m.location(timezone)
	if err != nil {
		return "", err
	}

	local := instant.In(loc)
	switch style {
	case "long":
		return local.Format("Monday, 2 January 2006"), nil
	case "full":
		return local.Format("Monday, 2 January 2006 15:04 MST"), nil
	default: // "short"
		return local.Format("2006/01/02"), nil
	}
}

// Now возвращает текущие дату и время в дефолтной таймзоне
func (m *TimezoneManager) Now() (string, string) {
	local := time.Now().In(m.defaultLocation)
	return local.Format("2006-01-02"), local.Format("15:04")
}
