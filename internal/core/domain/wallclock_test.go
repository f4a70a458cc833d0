package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWallClock(t *testing.T) {
	clock, err := ParseWallClock("09:05")
	require.NoError(t, err)
	assert.Equal(t, 9, clock.Hour)
	assert.Equal(t, 5, clock.Minute)
	assert.Equal(t, "09:05", clock.String())

	for _, bad := range []string{"", "nine", "24:00", "12:60", "-1:30", "10:30pm", "10:30 ", " 10:30", "1030", "10:3a", "10:30:00", "+9:05"} {
		_, err := ParseWallClock(bad)
		assert.Error(t, err, "value %q", bad)
	}

	// Однозначный час допустим, как в "9:05"
	short, err := ParseWallClock("9:05")
	require.NoError(t, err)
	assert.Equal(t, "09:05", short.String())
}

func TestWallClock_Arithmetic(t *testing.T) {
	clock, err := ParseWallClock("10:45")
	require.NoError(t, err)

	assert.Equal(t, 645, clock.Minutes())
	assert.Equal(t, "11:15", clock.AddMinutes(30).String())

	// Конец интервала за полночью сохраняет сравнимость с временем закрытия
	late, err := ParseWallClock("23:30")
	require.NoError(t, err)
	assert.Equal(t, 24, late.AddMinutes(60).Hour)
	assert.True(t, late.AddMinutes(60).After(late))
}

func TestWallClock_Ordering(t *testing.T) {
	earlier, err := ParseWallClock("09:00")
	require.NoError(t, err)
	later, err := ParseWallClock("09:01")
	require.NoError(t, err)

	assert.True(t, earlier.Before(later))
	assert.True(t, later.After(earlier))
	assert.False(t, earlier.Before(earlier))
	assert.False(t, earlier.After(earlier))
}

func TestWallClock_JSON(t *testing.T) {
	var clock WallClock
	require.NoError(t, json.Unmarshal([]byte(`"14:30"`), &clock))
	assert.Equal(t, WallClock{Hour: 14, Minute: 30}, clock)

	encoded, err := json.Marshal(clock)
	require.NoError(t, err)
	assert.Equal(t, `"14:30"`, string(encoded))

	assert.Error(t, json.Unmarshal([]byte(`"25:00"`), &clock))
}

// Неправильно типизированный токен обязан давать ошибку, а не панику
func TestWallClock_UnmarshalRejectsNonString(t *testing.T) {
	for _, raw := range []string{`5`, `930`, `true`, `null`, `{}`, `[]`, `""`, `"`} {
		var clock WallClock
		assert.Error(t, json.Unmarshal([]byte(raw), &clock), "token %s", raw)
	}

	// Число вместо строки внутри объемлющей структуры
	var hours DayHours
	assert.Error(t, json.Unmarshal([]byte(`{"open":5,"close":"17:00"}`), &hours))
}

func TestWeekdayOf(t *testing.T) {
	// 15 января 2026 — четверг
	assert.Equal(t, WeekdayThursday, WeekdayOf(time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, WeekdaySunday, WeekdayOf(time.Date(2026, 1, 18, 0, 0, 0, 0, time.UTC)))
}

func TestWeekHours_ForDate(t *testing.T) {
	open, err := ParseWallClock("09:00")
	require.NoError(t, err)
	close, err := ParseWallClock("17:00")
	require.NoError(t, err)

	week := WeekHours{
		WeekdayThursday: {Open: open, Close: close},
		WeekdaySunday:   {Closed: true},
	}

	hours, ok := week.ForDate(time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, open, hours.Open)

	// Закрытый день и день без расписания неотличимы для вызывающего
	_, ok = week.ForDate(time.Date(2026, 1, 18, 0, 0, 0, 0, time.UTC))
	assert.False(t, ok)
	_, ok = week.ForDate(time.Date(2026, 1, 16, 0, 0, 0, 0, time.UTC))
	assert.False(t, ok)
}
