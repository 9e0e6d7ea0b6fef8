package activity

import (
	"context"
	"testing"
	"time"

	"github.com/bolibana/backend/internal/domain/activity"
	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/bolibana/backend/internal/domain/site"
	"github.com/bolibana/backend/internal/domain/stock"
	"github.com/bolibana/backend/internal/infrastructure/event"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockActivityRepository is a mock implementation of activity.Repository
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) FindAllForSite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) (shared.Paginated[*activity.Activity], error) {
	args := m.Called(ctx, siteID, filter)
	return args.Get(0).(shared.Paginated[*activity.Activity]), args.Error(1)
}

func (m *MockActivityRepository) FindByEntity(ctx context.Context, siteID, entityID uuid.UUID, filter shared.Filter) (shared.Paginated[*activity.Activity], error) {
	args := m.Called(ctx, siteID, entityID, filter)
	return args.Get(0).(shared.Paginated[*activity.Activity]), args.Error(1)
}

func (m *MockActivityRepository) Save(ctx context.Context, entry *activity.Activity) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// MockNotificationRepository is a mock implementation of activity.NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*activity.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*activity.Notification), args.Error(1)
}

func (m *MockNotificationRepository) FindForUser(ctx context.Context, siteID uuid.UUID, userID uuid.UUID, unreadOnly bool, filter shared.Filter) (shared.Paginated[*activity.Notification], error) {
	args := m.Called(ctx, siteID, userID, unreadOnly, filter)
	return args.Get(0).(shared.Paginated[*activity.Notification]), args.Error(1)
}

func (m *MockNotificationRepository) CountUnreadForUser(ctx context.Context, siteID uuid.UUID, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, siteID, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) Save(ctx context.Context, n *activity.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestRecorder_WritesAuditRow(t *testing.T) {
	ctx := context.Background()
	repo := new(MockActivityRepository)

	var saved *activity.Activity
	repo.On("Save", ctx, mock.AnythingOfType("*activity.Activity")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*activity.Activity)
		}).Return(nil)

	recorder := NewRecorder(repo, zap.NewNop())

	testSite, err := site.NewSite("Boutique Hamdallaye")
	require.NoError(t, err)
	events := testSite.GetDomainEvents()
	require.NotEmpty(t, events)

	require.NoError(t, recorder.Handle(ctx, events[0]))

	require.NotNil(t, saved)
	assert.Equal(t, testSite.ID, saved.SiteID)
	assert.Equal(t, site.EventTypeSiteCreated, saved.Action)
	assert.Equal(t, "Site", saved.EntityType)
	assert.Equal(t, testSite.ID, saved.EntityID)
	assert.NotEmpty(t, saved.Detail)
}

func TestRecorder_SkipsPlatformEvents(t *testing.T) {
	ctx := context.Background()
	repo := new(MockActivityRepository)
	recorder := NewRecorder(repo, zap.NewNop())

	// Events without a site come from platform-level superuser actions
	event := stock.NewStockBelowThresholdEvent(uuid.Nil, uuid.New(), "12345", decimal.Zero, decimal.NewFromInt(5))

	require.NoError(t, recorder.Handle(ctx, event))
	repo.AssertNotCalled(t, "Save", ctx, mock.Anything)
}

func TestRecorder_SubscribedToBus(t *testing.T) {
	ctx := context.Background()
	repo := new(MockActivityRepository)
	repo.On("Save", ctx, mock.AnythingOfType("*activity.Activity")).Return(nil)

	bus := event.NewInMemoryEventBus(zap.NewNop())
	bus.Subscribe(NewRecorder(repo, zap.NewNop()))

	e := stock.NewStockBelowThresholdEvent(uuid.New(), uuid.New(), "12345", decimal.NewFromInt(2), decimal.NewFromInt(5))
	require.NoError(t, bus.Publish(ctx, e))

	repo.AssertNumberOfCalls(t, "Save", 1)
}

func TestLowStockHandler_CreatesWarning(t *testing.T) {
	ctx := context.Background()
	repo := new(MockNotificationRepository)

	var saved *activity.Notification
	repo.On("Save", ctx, mock.AnythingOfType("*activity.Notification")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*activity.Notification)
		}).Return(nil)

	handler := NewLowStockHandler(repo, zap.NewNop())
	siteID := uuid.New()

	e := stock.NewStockBelowThresholdEvent(siteID, uuid.New(), "54321",
		decimal.NewFromInt(3), decimal.NewFromInt(10))
	require.NoError(t, handler.Handle(ctx, e))

	require.NotNil(t, saved)
	assert.Equal(t, siteID, saved.SiteID)
	assert.Equal(t, activity.LevelWarning, saved.Level)
	assert.Nil(t, saved.UserID)
	assert.Contains(t, saved.Message, "54321")
}

func TestLowStockHandler_OutOfStockEscalates(t *testing.T) {
	ctx := context.Background()
	repo := new(MockNotificationRepository)

	var saved *activity.Notification
	repo.On("Save", ctx, mock.AnythingOfType("*activity.Notification")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*activity.Notification)
		}).Return(nil)

	handler := NewLowStockHandler(repo, zap.NewNop())

	e := stock.NewStockBelowThresholdEvent(uuid.New(), uuid.New(), "54321",
		decimal.Zero, decimal.NewFromInt(10))
	require.NoError(t, handler.Handle(ctx, e))

	require.NotNil(t, saved)
	assert.Equal(t, activity.LevelAlert, saved.Level)
}

func TestNotificationService_MarkRead(t *testing.T) {
	ctx := context.Background()
	repo := new(MockNotificationRepository)

	siteID := uuid.New()
	userID := uuid.New()
	notification, err := activity.NewNotification(siteID, activity.LevelInfo, "Bienvenue", "Votre compte est prêt")
	require.NoError(t, err)

	repo.On("FindByID", ctx, notification.ID).Return(notification, nil)
	repo.On("Save", ctx, notification).Return(nil)

	service := NewNotificationService(repo)

	result, err := service.MarkRead(ctx, siteID, userID, notification.ID)

	require.NoError(t, err)
	assert.NotNil(t, result.ReadAt)
	assert.True(t, notification.IsRead())
}

func TestNotificationService_MarkRead_OtherUsersNotification(t *testing.T) {
	ctx := context.Background()
	repo := new(MockNotificationRepository)

	siteID := uuid.New()
	owner := uuid.New()
	notification, err := activity.NewNotification(siteID, activity.LevelInfo, "Privé", "Message personnel")
	require.NoError(t, err)
	notification.UserID = &owner

	repo.On("FindByID", ctx, notification.ID).Return(notification, nil)

	service := NewNotificationService(repo)

	result, err := service.MarkRead(ctx, siteID, uuid.New(), notification.ID)

	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.False(t, notification.IsRead())
}

func TestNotificationService_MarkRead_Idempotent(t *testing.T) {
	ctx := context.Background()
	repo := new(MockNotificationRepository)

	siteID := uuid.New()
	notification, err := activity.NewNotification(siteID, activity.LevelInfo, "Info", "Déjà lu")
	require.NoError(t, err)
	firstRead := time.Now().Add(-time.Hour)
	notification.MarkRead(firstRead)

	repo.On("FindByID", ctx, notification.ID).Return(notification, nil)
	repo.On("Save", ctx, notification).Return(nil)

	service := NewNotificationService(repo)

	result, err := service.MarkRead(ctx, siteID, uuid.New(), notification.ID)

	require.NoError(t, err)
	// The original read timestamp is preserved
	assert.True(t, result.ReadAt.Equal(firstRead))
}

func TestActivityService_ListForEntity_ScopedToSite(t *testing.T) {
	ctx := context.Background()
	repo := new(MockActivityRepository)

	siteID := uuid.New()
	entityID := uuid.New()
	entry := activity.NewActivity(siteID, "product.updated", "Product", entityID, "")

	repo.On("FindByEntity", ctx, siteID, entityID, mock.Anything).
		Return(shared.NewPaginated([]*activity.Activity{entry}, 1, 1, 20), nil)

	service := NewActivityService(repo)

	result, err := service.ListForEntity(ctx, siteID, entityID, ActivityListFilter{Page: 1, PageSize: 20})

	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, entityID, result.Items[0].EntityID)
	repo.AssertExpectations(t)
}

func TestActivityService_List_AppliesFilters(t *testing.T) {
	ctx := context.Background()
	repo := new(MockActivityRepository)

	siteID := uuid.New()
	entry := activity.NewActivity(siteID, "stock.transaction_recorded", "StockTransaction", uuid.New(), "")

	repo.On("FindAllForSite", ctx, siteID, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["action"] == "stock.transaction_recorded"
	})).Return(shared.NewPaginated([]*activity.Activity{entry}, 1, 1, 20), nil)

	service := NewActivityService(repo)

	result, err := service.List(ctx, siteID, ActivityListFilter{
		Page:     1,
		PageSize: 20,
		Action:   "stock.transaction_recorded",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "stock.transaction_recorded", result.Items[0].Action)
}
