package scheduling_engine

import (
	"context"

	"github.com/suchimauz/booking-scheduling-engine/internal/core/domain"
	"github.com/suchimauz/booking-scheduling-engine/internal/core/ports/out"
)

// GenerateTimeSlots перечисляет начала слотов от open (включительно),
// пока начало строго меньше close, с шагом intervalMinutes.
// Чистая и детерминированная: одинаковые аргументы — одинаковый результат.
func GenerateTimeSlots(open, close domain.WallClock, intervalMinutes int) []domain.WallClock {
	grid := make([]domain.WallClock, 0)
	if intervalMinutes <= 0 {
		return grid
	}

	for current := open; current.Before(close); current = current.AddMinutes(intervalMinutes) {
		grid = append(grid, current)
	}

	return grid
}

// slotGrid — сетка слотов дня с мемоизацией через явный кэш-порт.
// Ключ кэша — (дата, открытие, закрытие, интервал), без скрытых синглтонов.
func (e *SchedulingEngine) slotGrid(ctx context.Context, date string, hours domain.DayHours, intervalMinutes int) []domain.WallClock {
	if e.cachePort == nil {
		return GenerateTimeSlots(hours.Open, hours.Close, intervalMinutes)
	}

	key := domain.SlotGridKey{
		Date:            date,
		Open:            hours.Open,
		Close:           hours.Close,
		IntervalMinutes: intervalMinutes,
	}

	if grid, exists := e.cachePort.GetSlotGrid(ctx, key); exists {
		e.logger.Debug("slots.grid.cache.hit", out.LogFields{
			"date":       date,
			"slotsCount": len(grid),
		})
		return grid
	}

	grid := GenerateTimeSlots(hours.Open, hours.Close, intervalMinutes)
	e.cachePort.StoreSlotGrid(ctx, key, grid)

	return grid
}
