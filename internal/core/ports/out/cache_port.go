package out

import (
	"context"

	"github.com/suchimauz/booking-scheduling-engine/internal/core/domain"
)

type CachePort interface {
	// Мемоизация сетки слотов по явному ключу (дата, открытие, закрытие, интервал)
	GetSlotGrid(ctx context.Context, key domain.SlotGridKey) ([]domain.WallClock, bool)
	StoreSlotGrid(ctx context.Context, key domain.SlotGridKey, grid []domain.WallClock)
	InvalidateSlotGrids(ctx context.Context)

	// Кэширование снимка конфигурации арендатора
	GetTenantSnapshot(ctx context.Context, tenantID string) (*domain.TenantSnapshot, bool)
	StoreTenantSnapshot(ctx context.Context, snapshot domain.TenantSnapshot)
	InvalidateTenantSnapshot(ctx context.Context, tenantID string)
}
