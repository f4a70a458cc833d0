package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/suchimauz/booking-scheduling-engine/internal/config"
	"github.com/suchimauz/booking-scheduling-engine/internal/core/domain"
	"github.com/suchimauz/booking-scheduling-engine/internal/core/ports/out"
)

// DirectoryAdapter получает снимок конфигурации арендатора
// из внутреннего API платформы бронирования
type DirectoryAdapter struct {
	client    *http.Client
	baseURL   string
	username  string
	password  string
	cachePort out.CachePort
	logger    out.LoggerPort
}

func NewDirectoryAdapter(cfg *config.Config, cachePort out.CachePort, logger out.LoggerPort) *DirectoryAdapter {
	return &DirectoryAdapter{
		client:    &http.Client{Timeout: 10 * time.Second},
		baseURL:   cfg.Directory.URL,
		username:  cfg.Directory.Username,
		password:  cfg.Directory.Password,
		cachePort: cachePort,
		logger:    logger,
	}
}

func (a *DirectoryAdapter) GetTenantSnapshot(ctx context.Context, tenantID string) (*domain.TenantSnapshot, error) {
	// Проверяем кэш только если он инициализирован
	if a.cachePort != nil {
		if snapshot, exists := a.cachePort.GetTenantSnapshot(ctx, tenantID); exists {
			a.logger.Debug("directory.tenant_snapshot.cache.hit", out.LogFields{
				"tenantId": tenantID,
			})
			return snapshot, nil
		}
	}

	a.logger.Info("directory.tenant_snapshot.fetch", out.LogFields{
		"tenantId": tenantID,
	})

	url := fmt.Sprintf("%s/tenants/%s/scheduling-snapshot", a.baseURL, tenantID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		a.logger.Error("directory.tenant_snapshot.fetch_failed", out.LogFields{
			"tenantId": tenantID,
			"error":    err.Error(),
		})
		return nil, err
	}

	req.SetBasicAuth(a.username, a.password)

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error("directory.tenant_snapshot.fetch_failed", out.LogFields{
			"tenantId": tenantID,
			"error":    err.Error(),
		})
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		a.logger.Error("directory.tenant_snapshot.fetch_failed", out.LogFields{
			"tenantId": tenantID,
			"status":   resp.StatusCode,
		})
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var snapshot domain.TenantSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		a.logger.Error("directory.tenant_snapshot.decode_failed", out.LogFields{
			"tenantId": tenantID,
			"error":    err.Error(),
		})
		return nil, err
	}

	if snapshot.TenantID == "" {
		snapshot.TenantID = tenantID
	}

	a.logger.Debug("directory.tenant_snapshot.fetch_success", out.LogFields{
		"tenantId":      tenantID,
		"staffCount":    len(snapshot.Staff),
		"servicesCount": len(snapshot.Services),
		"timezone":      snapshot.Config.Timezone,
	})

	if a.cachePort != nil {
		a.cachePort.StoreTenantSnapshot(ctx, snapshot)
	}

	return &snapshot, nil
}
