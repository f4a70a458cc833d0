package cache

import (
	"context"

	"github.com/suchimauz/booking-scheduling-engine/internal/core/domain"
	"github.com/suchimauz/booking-scheduling-engine/internal/core/ports/out"
)

// Мемоизация сеток слотов

func (c *CacheAdapter) GetSlotGrid(ctx context.Context, key domain.SlotGridKey) ([]domain.WallClock, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	grid, exists := c.slotGrids.cache.Get(key.String())
	if !exists {
		c.logger.Debug("cache.slot_grid.get.miss", out.LogFields{
			"key": key.String(),
		})
		return nil, false
	}

	c.logger.Debug("cache.slot_grid.get.hit", out.LogFields{
		"key":        key.String(),
		"slotsCount": len(grid),
	})
	return grid, true
}

func (c *CacheAdapter) StoreSlotGrid(ctx context.Context, key domain.SlotGridKey, grid []domain.WallClock) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.slotGrids.cache.Add(key.String(), grid)
}

func (c *CacheAdapter) InvalidateSlotGrids(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.slotGrids.cache.Purge()
}
