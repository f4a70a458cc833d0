package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suchimauz/booking-scheduling-engine/internal/config"
	"github.com/suchimauz/booking-scheduling-engine/internal/core/domain"
	"github.com/suchimauz/booking-scheduling-engine/internal/core/ports/out"
)

type nopLogger struct{}

func (nopLogger) Debug(string, out.LogFields)               {}
func (nopLogger) Info(string, out.LogFields)                {}
func (nopLogger) Warn(string, out.LogFields)                {}
func (nopLogger) Error(string, out.LogFields)               {}
func (l nopLogger) WithFields(out.LogFields) out.LoggerPort { return l }
func (l nopLogger) WithModule(string) out.LoggerPort        { return l }

func newAdapter(t *testing.T, ttlMinutes int) *CacheAdapter {
	t.Helper()

	cfg := &config.Config{}
	cfg.Cache.Enabled = true
	cfg.Cache.SlotGridSize = 4
	cfg.Cache.TenantSnapshotTTLMinutes = ttlMinutes

	adapter, err := NewCacheAdapter(cfg, nopLogger{})
	require.NoError(t, err)
	require.NotNil(t, adapter)
	return adapter
}

func gridKey(date string) domain.SlotGridKey {
	return domain.SlotGridKey{
		Date:            date,
		Open:            domain.WallClock{Hour: 9},
		Close:           domain.WallClock{Hour: 17},
		IntervalMinutes: 30,
	}
}

func TestNewCacheAdapter_DisabledReturnsNil(t *testing.T) {
	cfg := &config.Config{}
	cfg.Cache.Enabled = false

	adapter, err := NewCacheAdapter(cfg, nopLogger{})
	require.NoError(t, err)
	assert.Nil(t, adapter)
}

func TestSlotGrid_StoreAndGet(t *testing.T) {
	adapter := newAdapter(t, 30)
	ctx := context.Background()

	_, exists := adapter.GetSlotGrid(ctx, gridKey("2026-01-15"))
	assert.False(t, exists)

	grid := []domain.WallClock{{Hour: 9}, {Hour: 9, Minute: 30}}
	adapter.StoreSlotGrid(ctx, gridKey("2026-01-15"), grid)

	cached, exists := adapter.GetSlotGrid(ctx, gridKey("2026-01-15"))
	require.True(t, exists)
	assert.Equal(t, grid, cached)

	// Другая дата — другой ключ
	_, exists = adapter.GetSlotGrid(ctx, gridKey("2026-01-16"))
	assert.False(t, exists)
}

func TestSlotGrid_LRUEviction(t *testing.T) {
	adapter := newAdapter(t, 30)
	ctx := context.Background()

	dates := []string{"2026-01-15", "2026-01-16", "2026-01-17", "2026-01-18", "2026-01-19"}
	for _, date := range dates {
		adapter.StoreSlotGrid(ctx, gridKey(date), []domain.WallClock{{Hour: 9}})
	}

	// Емкость 4 — самый старый ключ вытеснен
	_, exists := adapter.GetSlotGrid(ctx, gridKey("2026-01-15"))
	assert.False(t, exists)
	_, exists = adapter.GetSlotGrid(ctx, gridKey("2026-01-19"))
	assert.True(t, exists)
}

func TestSlotGrid_Invalidate(t *testing.T) {
	adapter := newAdapter(t, 30)
	ctx := context.Background()

	adapter.StoreSlotGrid(ctx, gridKey("2026-01-15"), []domain.WallClock{{Hour: 9}})
	adapter.InvalidateSlotGrids(ctx)

	_, exists := adapter.GetSlotGrid(ctx, gridKey("2026-01-15"))
	assert.False(t, exists)
}

func TestTenantSnapshot_StoreGetInvalidate(t *testing.T) {
	adapter := newAdapter(t, 30)
	ctx := context.Background()

	_, exists := adapter.GetTenantSnapshot(ctx, "tenant_1")
	assert.False(t, exists)

	adapter.StoreTenantSnapshot(ctx, domain.TenantSnapshot{TenantID: "tenant_1"})

	snapshot, exists := adapter.GetTenantSnapshot(ctx, "tenant_1")
	require.True(t, exists)
	assert.Equal(t, "tenant_1", snapshot.TenantID)

	// Чужой арендатор не видит кэш
	_, exists = adapter.GetTenantSnapshot(ctx, "tenant_2")
	assert.False(t, exists)

	adapter.InvalidateTenantSnapshot(ctx, "tenant_1")
	_, exists = adapter.GetTenantSnapshot(ctx, "tenant_1")
	assert.False(t, exists)
}

func TestTenantSnapshot_ZeroTTLAlwaysExpired(t *testing.T) {
	adapter := newAdapter(t, 0)
	ctx := context.Background()

	adapter.StoreTenantSnapshot(ctx, domain.TenantSnapshot{TenantID: "tenant_1"})

	_, exists := adapter.GetTenantSnapshot(ctx, "tenant_1")
	assert.False(t, exists)
}
