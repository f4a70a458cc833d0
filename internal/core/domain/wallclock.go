package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// WallClock — время в пределах суток в формате "HH:MM", без даты и таймзоны.
// После парсинга невалидное время непредставимо.
type WallClock struct {
	Hour   int
	Minute int
}

// clockPart принимает только одну-две цифры, хвостовой мусор
// вроде "30pm" отклоняется
func clockPart(str string) (int, bool) {
	if len(str) == 0 || len(str) > 2 {
		return 0, false
	}
	for _, r := range str {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	value, err := strconv.Atoi(str)
	return value, err == nil
}

func ParseWallClock(str string) (WallClock, error) {
	parts := strings.Split(str, ":")
	if len(parts) != 2 {
		return WallClock{}, fmt.Errorf("failed to parse wall clock time %q", str)
	}

	hour, hourOk := clockPart(parts[0])
	minute, minuteOk := clockPart(parts[1])
	if !hourOk || !minuteOk {
		return WallClock{}, fmt.Errorf("failed to parse wall clock time %q", str)
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return WallClock{}, fmt.Errorf("wall clock time out of range: %q", str)
	}
	return WallClock{Hour: hour, Minute: minute}, nil
}

func (w WallClock) String() string {
	return fmt.Sprintf("%02d:%02d", w.Hour, w.Minute)
}

// Minutes возвращает количество минут с начала суток
func (w WallClock) Minutes() int {
	return w.Hour*60 + w.Minute
}

// AddMinutes возвращает новое время, сдвинутое на minutes минут вперед.
// Переход через полночь не нормализуется, часы могут стать больше 23 —
// так конец интервала "23:30" + 60 минут остается сравнимым с временем закрытия.
func (w WallClock) AddMinutes(minutes int) WallClock {
	total := w.Minutes() + minutes
	return WallClock{Hour: total / 60, Minute: total % 60}
}

func (w WallClock) Before(other WallClock) bool {
	return w.Minutes() < other.Minutes()
}

func (w WallClock) After(other WallClock) bool {
	return w.Minutes() > other.Minutes()
}

func (w *WallClock) UnmarshalJSON(data []byte) error {
	// Принимаем только строковый токен, иначе срез кавычек паникует на числах
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("wall clock time must be a quoted string: %s", data)
	}

	// Убираем кавычки вокруг строки
	str := string(data[1 : len(data)-1])
	parsed, err := ParseWallClock(str)
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

func (w WallClock) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.String())
}
