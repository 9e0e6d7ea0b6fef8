package subscription

import (
	"context"
	"testing"
	"time"

	"github.com/bolibana/backend/internal/domain/catalog"
	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/bolibana/backend/internal/domain/site"
	"github.com/bolibana/backend/internal/domain/subscription"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSubscriptionRepository is a mock implementation of subscription.Repository
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*subscription.Subscription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) FindAllForSite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) (shared.Paginated[*subscription.Subscription], error) {
	args := m.Called(ctx, siteID, filter)
	return args.Get(0).(shared.Paginated[*subscription.Subscription]), args.Error(1)
}

func (m *MockSubscriptionRepository) FindActiveForSite(ctx context.Context, siteID uuid.UUID, now time.Time) (*subscription.Subscription, error) {
	args := m.Called(ctx, siteID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) Save(ctx context.Context, sub *subscription.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPlanRepository is a mock implementation of subscription.PlanRepository
type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*subscription.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Plan), args.Error(1)
}

func (m *MockPlanRepository) FindByCode(ctx context.Context, code string) (*subscription.Plan, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Plan), args.Error(1)
}

func (m *MockPlanRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*subscription.Plan], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[*subscription.Plan]), args.Error(1)
}

func (m *MockPlanRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockPlanRepository) Save(ctx context.Context, plan *subscription.Plan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSiteRepository is a mock implementation of site.Repository
type MockSiteRepository struct {
	mock.Mock
}

func (m *MockSiteRepository) FindByID(ctx context.Context, id uuid.UUID) (*site.Site, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*site.Site), args.Error(1)
}

func (m *MockSiteRepository) FindByName(ctx context.Context, name string) (*site.Site, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*site.Site), args.Error(1)
}

func (m *MockSiteRepository) FindAll(ctx context.Context, filter shared.Filter) ([]site.Site, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]site.Site), args.Error(1)
}

func (m *MockSiteRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockSiteRepository) Save(ctx context.Context, s *site.Site) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSiteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSiteRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDForSite(ctx context.Context, id, siteID uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id, siteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCUG(ctx context.Context, cug string) (*catalog.Product, error) {
	args := m.Called(ctx, cug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByEAN(ctx context.Context, ean string) (*catalog.Product, error) {
	args := m.Called(ctx, ean)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllForSite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) (shared.Paginated[*catalog.Product], error) {
	args := m.Called(ctx, siteID, filter)
	return args.Get(0).(shared.Paginated[*catalog.Product]), args.Error(1)
}

func (m *MockProductRepository) FindIDsForSiteByCreation(ctx context.Context, siteID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, siteID)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockProductRepository) FindLowStockForSite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) (shared.Paginated[*catalog.Product], error) {
	args := m.Called(ctx, siteID, filter)
	return args.Get(0).(shared.Paginated[*catalog.Product]), args.Error(1)
}

func (m *MockProductRepository) CountForSite(ctx context.Context, siteID uuid.UUID) (int64, error) {
	args := m.Called(ctx, siteID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ExistsByCUG(ctx context.Context, cug string) (bool, error) {
	args := m.Called(ctx, cug)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) EANInUse(ctx context.Context, ean string, excludeProductID uuid.UUID) (bool, error) {
	args := m.Called(ctx, ean, excludeProductID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) HasStockHistory(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newQuotaFixture() (*QuotaService, *MockSubscriptionRepository, *MockPlanRepository, *MockSiteRepository, *MockProductRepository) {
	subRepo := new(MockSubscriptionRepository)
	planRepo := new(MockPlanRepository)
	siteRepo := new(MockSiteRepository)
	productRepo := new(MockProductRepository)
	svc := NewQuotaService(subRepo, planRepo, siteRepo, productRepo)
	return svc, subRepo, planRepo, siteRepo, productRepo
}

func activeSubscription(t *testing.T, siteID uuid.UUID, plan *subscription.Plan) *subscription.Subscription {
	t.Helper()
	sub, err := subscription.NewSubscription(siteID, plan,
		time.Now().AddDate(0, 0, -1), time.Now().AddDate(0, 1, 0))
	require.NoError(t, err)
	require.NoError(t, sub.MarkPaid(time.Now()))
	return sub
}

func TestResolveEffectivePlan(t *testing.T) {
	siteID := uuid.New()

	t.Run("active subscription wins", func(t *testing.T) {
		svc, subRepo, planRepo, _, _ := newQuotaFixture()

		plan, err := subscription.NewPlan("starter", "Starter", 50, decimal.NewFromInt(5000))
		require.NoError(t, err)
		sub := activeSubscription(t, siteID, plan)

		subRepo.On("FindActiveForSite", mock.Anything, siteID, mock.Anything).Return(sub, nil)
		planRepo.On("FindByID", mock.Anything, sub.PlanID).Return(plan, nil)

		got, err := svc.ResolveEffectivePlan(context.Background(), siteID)
		require.NoError(t, err)
		assert.Equal(t, "starter", got.Code)
		assert.Equal(t, "subscription", got.Source)
		assert.Equal(t, 50, got.MaxProducts)
	})

	t.Run("falls back to plan assigned on the site", func(t *testing.T) {
		svc, subRepo, planRepo, siteRepo, _ := newQuotaFixture()

		st, err := site.NewSite("Boutique Hamdallaye")
		require.NoError(t, err)
		st.AssignPlan("basic")

		plan, err := subscription.NewPlan("basic", "Basic", 20, decimal.Zero)
		require.NoError(t, err)

		subRepo.On("FindActiveForSite", mock.Anything, siteID, mock.Anything).Return(nil, shared.ErrNotFound)
		siteRepo.On("FindByID", mock.Anything, siteID).Return(st, nil)
		planRepo.On("FindByCode", mock.Anything, "basic").Return(plan, nil)

		got, err := svc.ResolveEffectivePlan(context.Background(), siteID)
		require.NoError(t, err)
		assert.Equal(t, "basic", got.Code)
		assert.Equal(t, "site", got.Source)
	})

	t.Run("falls back to unlimited free tier", func(t *testing.T) {
		svc, subRepo, _, siteRepo, _ := newQuotaFixture()

		st, err := site.NewSite("Boutique Libre")
		require.NoError(t, err)

		subRepo.On("FindActiveForSite", mock.Anything, siteID, mock.Anything).Return(nil, shared.ErrNotFound)
		siteRepo.On("FindByID", mock.Anything, siteID).Return(st, nil)

		got, err := svc.ResolveEffectivePlan(context.Background(), siteID)
		require.NoError(t, err)
		assert.Equal(t, FreePlanCode, got.Code)
		assert.True(t, got.Unlimited)
	})
}

func TestCheckProductQuota(t *testing.T) {
	siteID := uuid.New()

	setup := func(limit int, count int64) (*QuotaService, *MockProductRepository) {
		svc, subRepo, planRepo, _, productRepo := newQuotaFixture()
		plan, _ := subscription.NewPlan("starter", "Starter", limit, decimal.Zero)
		sub := activeSubscription(t, siteID, plan)
		subRepo.On("FindActiveForSite", mock.Anything, siteID, mock.Anything).Return(sub, nil)
		planRepo.On("FindByID", mock.Anything, sub.PlanID).Return(plan, nil)
		productRepo.On("CountForSite", mock.Anything, siteID).Return(count, nil)
		return svc, productRepo
	}

	t.Run("below limit passes", func(t *testing.T) {
		svc, _ := setup(50, 49)
		require.NoError(t, svc.CheckProductQuota(context.Background(), siteID))
	})

	t.Run("at limit blocks creation", func(t *testing.T) {
		svc, _ := setup(50, 50)
		err := svc.CheckProductQuota(context.Background(), siteID)
		assert.ErrorIs(t, err, shared.ErrQuotaExceeded)
	})

	t.Run("unlimited plan never counts", func(t *testing.T) {
		svc, subRepo, planRepo, _, productRepo := newQuotaFixture()
		plan, _ := subscription.NewPlan("pro", "Pro", subscription.UnlimitedProducts, decimal.Zero)
		sub := activeSubscription(t, siteID, plan)
		subRepo.On("FindActiveForSite", mock.Anything, siteID, mock.Anything).Return(sub, nil)
		planRepo.On("FindByID", mock.Anything, sub.PlanID).Return(plan, nil)

		require.NoError(t, svc.CheckProductQuota(context.Background(), siteID))
		productRepo.AssertNotCalled(t, "CountForSite", mock.Anything, mock.Anything)
	})
}

func TestExcessProductIDs(t *testing.T) {
	siteID := uuid.New()

	svc, subRepo, planRepo, _, productRepo := newQuotaFixture()
	plan, err := subscription.NewPlan("basic", "Basic", 3, decimal.Zero)
	require.NoError(t, err)
	sub := activeSubscription(t, siteID, plan)
	subRepo.On("FindActiveForSite", mock.Anything, siteID, mock.Anything).Return(sub, nil)
	planRepo.On("FindByID", mock.Anything, sub.PlanID).Return(plan, nil)

	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New()}
	productRepo.On("FindIDsForSiteByCreation", mock.Anything, siteID).Return(ids, nil)

	excess, err := svc.ExcessProductIDs(context.Background(), siteID)
	require.NoError(t, err)
	// The three oldest stay visible, the two newest are in excess
	assert.Equal(t, ids[3:], excess)
}

func TestQuotaStatus(t *testing.T) {
	siteID := uuid.New()

	svc, subRepo, planRepo, _, productRepo := newQuotaFixture()
	plan, err := subscription.NewPlan("basic", "Basic", 10, decimal.Zero)
	require.NoError(t, err)
	sub := activeSubscription(t, siteID, plan)
	subRepo.On("FindActiveForSite", mock.Anything, siteID, mock.Anything).Return(sub, nil)
	planRepo.On("FindByID", mock.Anything, sub.PlanID).Return(plan, nil)
	productRepo.On("CountForSite", mock.Anything, siteID).Return(int64(12), nil)

	status, err := svc.QuotaStatus(context.Background(), siteID)
	require.NoError(t, err)
	assert.Equal(t, int64(12), status.ProductCount)
	assert.Equal(t, 2, status.ExcessCount)
	assert.False(t, status.CanCreate)
}
