package cache

import (
	"context"
	"strings"

	"github.com/andresuchdata/kopik/backend-go/internal/config"
	"github.com/andresuchdata/kopik/backend-go/internal/domain"
)

const dashboardNamespace = "kopik:dashboard"

// DashboardCache holds assembled dashboards per weather scenario
type DashboardCache interface {
	Get(ctx context.Context, weather string) (*domain.Dashboard, bool, error)
	Set(ctx context.Context, weather string, dashboard *domain.Dashboard) error
	InvalidateAll(ctx context.Context) error
	Close() error
}

type redisDashboardCache struct {
	store *jsonStore
}

type noopDashboardCache struct{}

// NewDashboardCache returns a redis-backed cache, or a no-op one when caching is disabled.
func NewDashboardCache(cfg config.CacheConfig) (DashboardCache, error) {
	if !cfg.Enabled {
		return &noopDashboardCache{}, nil
	}

	store, err := newJSONStore(cfg, dashboardNamespace)
	if err != nil {
		return nil, err
	}
	return &redisDashboardCache{store: store}, nil
}

func NewNoopDashboardCache() DashboardCache {
	return &noopDashboardCache{}
}

func dashboardKey(weather string) string {
	w := strings.ToLower(strings.TrimSpace(weather))
	if w == "" {
		w = "default"
	}
	return "weather=" + w
}

func (c *redisDashboardCache) Get(ctx context.Context, weather string) (*domain.Dashboard, bool, error) {
	var dashboard domain.Dashboard
	found, err := c.store.get(ctx, dashboardKey(weather), &dashboard)
	if err != nil || !found {
		return nil, false, err
	}
	return &dashboard, true, nil
}

func (c *redisDashboardCache) Set(ctx context.Context, weather string, dashboard *domain.Dashboard) error {
	return c.store.set(ctx, dashboardKey(weather), dashboard)
}

func (c *redisDashboardCache) InvalidateAll(ctx context.Context) error {
	return c.store.purge(ctx)
}

func (c *redisDashboardCache) Close() error {
	return c.store.close()
}

func (n *noopDashboardCache) Get(ctx context.Context, weather string) (*domain.Dashboard, bool, error) {
	return nil, false, nil
}

func (n *noopDashboardCache) Set(ctx context.Context, weather string, dashboard *domain.Dashboard) error {
	return nil
}

func (n *noopDashboardCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func (n *noopDashboardCache) Close() error {
	return nil
}
