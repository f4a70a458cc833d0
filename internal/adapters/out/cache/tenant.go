package cache

import (
	"context"
	"time"

	"github.com/suchimauz/booking-scheduling-engine/internal/core/domain"
	"github.com/suchimauz/booking-scheduling-engine/internal/core/ports/out"
)

// Кэширование снимка конфигурации арендатора

func (c *CacheAdapter) GetTenantSnapshot(ctx context.Context, tenantID string) (*domain.TenantSnapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry := c.tenantSnapshot
	if entry.snapshot == nil || entry.snapshot.TenantID != tenantID {
		return nil, false
	}

	// Снимок протухает по TTL
	if time.Since(entry.timestamp) > entry.ttl {
		return nil, false
	}

	return entry.snapshot, true
}

func (c *CacheAdapter) StoreTenantSnapshot(ctx context.Context, snapshot domain.TenantSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tenantSnapshot.snapshot = &snapshot
	c.tenantSnapshot.timestamp = time.Now()

	c.logger.Debug("cache.tenant_snapshot.store", out.LogFields{
		"tenantId":   snapshot.TenantID,
		"staffCount": len(snapshot.Staff),
	})
}

func (c *CacheAdapter) InvalidateTenantSnapshot(ctx context.Context, tenantID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tenantSnapshot.snapshot != nil && c.tenantSnapshot.snapshot.TenantID == tenantID {
		c.tenantSnapshot.snapshot = nil
		c.tenantSnapshot.timestamp = time.Time{}
	}
}
