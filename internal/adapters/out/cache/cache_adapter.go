package cache

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/suchimauz/booking-scheduling-engine/internal/config"
	"github.com/suchimauz/booking-scheduling-engine/internal/core/domain"
	"github.com/suchimauz/booking-scheduling-engine/internal/core/ports/out"
)

type slotGridCache struct {
	cache *lru.Cache[string, []domain.WallClock]
}

type tenantSnapshotCache struct {
	snapshot  *domain.TenantSnapshot
	timestamp time.Time
	ttl       time.Duration
}

type CacheAdapter struct {
	slotGrids      *slotGridCache
	tenantSnapshot *tenantSnapshotCache
	mu             sync.RWMutex
	logger         out.LoggerPort
}

func NewCacheAdapter(cfg *config.Config, logger out.LoggerPort) (*CacheAdapter, error) {
	if !cfg.Cache.Enabled {
		logger.Info("cache.disabled", out.LogFields{
			"message": "Cache is disabled",
		})
		return nil, nil
	}

	lruGrids, err := lru.New[string, []domain.WallClock](cfg.Cache.SlotGridSize)
	if err != nil {
		logger.Error("cache.slot_grids.init.failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Cache.SlotGridSize,
		})
		return nil, err
	}

	return &CacheAdapter{
		slotGrids: &slotGridCache{cache: lruGrids},
		tenantSnapshot: &tenantSnapshotCache{
			ttl: time.Duration(cfg.Cache.TenantSnapshotTTLMinutes) * time.Minute,
		},
		logger: logger.WithModule("CacheAdapter"),
	}, nil
}
