package dashboard

import (
	"context"
	"encoding/json"
	"time"

	appsubscription "github.com/bolibana/backend/internal/application/subscription"
	"github.com/bolibana/backend/internal/domain/sales"
	"github.com/bolibana/backend/internal/domain/stock"
	"github.com/bolibana/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StatsRepository computes catalog aggregates in the database instead
// of loading products into memory.
type StatsRepository interface {
	CatalogStats(ctx context.Context, siteID uuid.UUID) (*CatalogStats, error)
}

// PlanResolver resolves the plan effectively limiting a site
type PlanResolver interface {
	ResolveEffectivePlan(ctx context.Context, siteID uuid.UUID) (*appsubscription.EffectivePlan, error)
}

// Cache is a byte-oriented cache with TTL semantics
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// DashboardService assembles the per-site dashboard aggregates.
// Results are cached for a short TTL; cache failures degrade to a
// direct computation.
type DashboardService struct {
	statsRepo  StatsRepository
	ledgerRepo stock.Repository
	saleRepo   sales.SaleRepository
	resolver   PlanResolver
	cache      Cache
	cfg        config.DashboardConfig
	logger     *zap.Logger
}

// NewDashboardService creates a new DashboardService. A nil cache
// disables caching regardless of configuration.
func NewDashboardService(
	statsRepo StatsRepository,
	ledgerRepo stock.Repository,
	saleRepo sales.SaleRepository,
	resolver PlanResolver,
	cache Cache,
	cfg config.DashboardConfig,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		statsRepo:  statsRepo,
		ledgerRepo: ledgerRepo,
		saleRepo:   saleRepo,
		resolver:   resolver,
		cache:      cache,
		cfg:        cfg,
		logger:     logger,
	}
}

// Get returns the dashboard aggregates for a site. When refresh is
// true the cache is bypassed and repopulated.
func (s *DashboardService) Get(ctx context.Context, siteID uuid.UUID, refresh bool) (*DashboardResponse, error) {
	key := cacheKey(siteID)

	if s.cacheEnabled() && !refresh {
		if cached, err := s.cache.Get(ctx, key); err == nil && cached != nil {
			var resp DashboardResponse
			if err := json.Unmarshal(cached, &resp); err == nil {
				resp.Cached = true
				return &resp, nil
			}
			// Unreadable entries are dropped and recomputed
			_ = s.cache.Delete(ctx, key)
		}
	}

	resp, err := s.compute(ctx, siteID)
	if err != nil {
		return nil, err
	}

	if s.cacheEnabled() {
		if payload, err := json.Marshal(resp); err == nil {
			if err := s.cache.Set(ctx, key, payload, s.cfg.CacheTTL); err != nil {
				s.logger.Warn("Failed to cache dashboard aggregates",
					zap.String("site_id", siteID.String()), zap.Error(err))
			}
		}
	}

	return resp, nil
}

// Invalidate drops the cached aggregates of a site
func (s *DashboardService) Invalidate(ctx context.Context, siteID uuid.UUID) {
	if !s.cacheEnabled() {
		return
	}
	if err := s.cache.Delete(ctx, cacheKey(siteID)); err != nil {
		s.logger.Warn("Failed to invalidate dashboard cache",
			zap.String("site_id", siteID.String()), zap.Error(err))
	}
}

func (s *DashboardService) compute(ctx context.Context, siteID uuid.UUID) (*DashboardResponse, error) {
	stats, err := s.statsRepo.CatalogStats(ctx, siteID)
	if err != nil {
		return nil, err
	}

	plan, err := s.resolver.ResolveEffectivePlan(ctx, siteID)
	if err != nil {
		return nil, err
	}

	// Products beyond the plan limit are hidden from the dashboard
	productCount := stats.ProductCount
	if !plan.Unlimited && productCount > int64(plan.MaxProducts) {
		productCount = int64(plan.MaxProducts)
	}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	transactionsToday, err := s.ledgerRepo.CountForSiteSince(ctx, siteID, dayStart)
	if err != nil {
		return nil, err
	}

	salesToday, err := s.saleRepo.CountForSiteBetween(ctx, siteID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	revenueToday, err := s.saleRepo.RevenueForSiteBetween(ctx, siteID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	return &DashboardResponse{
		SiteID:            siteID,
		ProductCount:      productCount,
		StockValue:        stats.StockValue,
		LowStockCount:     stats.LowStockCount,
		OutOfStockCount:   stats.OutOfStockCount,
		TransactionsToday: transactionsToday,
		SalesToday:        salesToday,
		RevenueToday:      revenueToday,
		PlanCode:          plan.Code,
		GeneratedAt:       now,
	}, nil
}

func (s *DashboardService) cacheEnabled() bool {
	return s.cache != nil && s.cfg.CacheEnabled && s.cfg.CacheTTL > 0
}

func cacheKey(siteID uuid.UUID) string {
	return "bolibana:dashboard:" + siteID.String()
}
