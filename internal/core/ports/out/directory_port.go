package out

import (
	"context"

	"github.com/suchimauz/booking-scheduling-engine/internal/core/domain"
)

type DirectoryPort interface {
	// Получение снимка конфигурации арендатора из платформы бронирования
	GetTenantSnapshot(ctx context.Context, tenantID string) (*domain.TenantSnapshot, error)
}
