package sales

import (
	"context"
	"testing"
	"time"

	"github.com/bolibana/backend/internal/domain/catalog"
	"github.com/bolibana/backend/internal/domain/sales"
	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/bolibana/backend/internal/domain/stock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSaleRepository is a mock implementation of sales.SaleRepository
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByIDForSite(ctx context.Context, id, siteID uuid.UUID) (*sales.Sale, error) {
	args := m.Called(ctx, id, siteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindAllForSite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) (shared.Paginated[*sales.Sale], error) {
	args := m.Called(ctx, siteID, filter)
	return args.Get(0).(shared.Paginated[*sales.Sale]), args.Error(1)
}

func (m *MockSaleRepository) RevenueForSiteBetween(ctx context.Context, siteID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, siteID, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockSaleRepository) CountForSiteBetween(ctx context.Context, siteID uuid.UUID, from, to time.Time) (int64, error) {
	args := m.Called(ctx, siteID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSaleRepository) Save(ctx context.Context, sale *sales.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockOrderRepository is a mock implementation of sales.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByIDForSite(ctx context.Context, id, siteID uuid.UUID) (*sales.Order, error) {
	args := m.Called(ctx, id, siteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAllForSite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) (shared.Paginated[*sales.Order], error) {
	args := m.Called(ctx, siteID, filter)
	return args.Get(0).(shared.Paginated[*sales.Order]), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *sales.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
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

// MockLedgerRepository is a mock implementation of stock.Repository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) FindByID(ctx context.Context, id uuid.UUID) (*stock.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) FindAllForSite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) (shared.Paginated[*stock.Transaction], error) {
	args := m.Called(ctx, siteID, filter)
	return args.Get(0).(shared.Paginated[*stock.Transaction]), args.Error(1)
}

func (m *MockLedgerRepository) FindByProduct(ctx context.Context, siteID, productID uuid.UUID, filter shared.Filter) (shared.Paginated[*stock.Transaction], error) {
	args := m.Called(ctx, siteID, productID, filter)
	return args.Get(0).(shared.Paginated[*stock.Transaction]), args.Error(1)
}

func (m *MockLedgerRepository) SumQuantityForProduct(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerRepository) CountForSiteSince(ctx context.Context, siteID uuid.UUID, since time.Time) (int64, error) {
	args := m.Called(ctx, siteID, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) Save(ctx context.Context, tx *stock.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

type salesFixture struct {
	saleSvc     *SaleService
	orderSvc    *OrderService
	saleRepo    *MockSaleRepository
	orderRepo   *MockOrderRepository
	productRepo *MockProductRepository
	ledgerRepo  *MockLedgerRepository
}

func newSalesFixture() *salesFixture {
	f := &salesFixture{
		saleRepo:    new(MockSaleRepository),
		orderRepo:   new(MockOrderRepository),
		productRepo: new(MockProductRepository),
		ledgerRepo:  new(MockLedgerRepository),
	}
	scope := NewNoOpTransactionScope(f.saleRepo, f.orderRepo, f.productRepo, f.ledgerRepo)
	f.saleSvc = NewSaleService(scope, f.saleRepo)
	f.orderSvc = NewOrderService(scope, f.orderRepo)
	return f
}

func TestSaleCompleteWritesStock(t *testing.T) {
	siteID := uuid.New()
	f := newSalesFixture()

	product, err := catalog.NewProduct(siteID, "12345", "Sucre 1kg",
		decimal.NewFromInt(600), decimal.NewFromInt(750))
	require.NoError(t, err)
	product.ApplyQuantityDelta(decimal.NewFromInt(1))

	sale, err := sales.NewSale(siteID, sales.PaymentCash)
	require.NoError(t, err)
	require.NoError(t, sale.AddItem(product.ID, product.Name, product.CUG,
		decimal.NewFromInt(3), decimal.NewFromInt(750)))

	f.saleRepo.On("FindByIDForSite", mock.Anything, sale.ID, siteID).Return(sale, nil)
	f.saleRepo.On("Save", mock.Anything, sale).Return(nil)
	f.productRepo.On("FindByIDForSite", mock.Anything, product.ID, siteID).Return(product, nil)
	f.productRepo.On("Save", mock.Anything, product).Return(nil)

	var recorded *stock.Transaction
	f.ledgerRepo.On("Save", mock.Anything, mock.AnythingOfType("*stock.Transaction")).
		Run(func(args mock.Arguments) {
			recorded = args.Get(1).(*stock.Transaction)
		}).Return(nil)

	resp, err := f.saleSvc.Complete(context.Background(), siteID, sale.ID, nil)
	require.NoError(t, err)

	assert.Equal(t, sales.SaleStatusCompleted, resp.Status)
	require.NotNil(t, recorded)
	assert.Equal(t, stock.TypeOut, recorded.Type)
	assert.True(t, recorded.Quantity.Equal(decimal.NewFromInt(-3)))
	// Selling one unit on hand plus two backordered leaves -2
	assert.True(t, product.Quantity.Equal(decimal.NewFromInt(-2)))
}

func TestSaleAddItemSnapshotsProduct(t *testing.T) {
	siteID := uuid.New()
	f := newSalesFixture()

	product, err := catalog.NewProduct(siteID, "54321", "Thé vert",
		decimal.NewFromInt(900), decimal.NewFromInt(1250))
	require.NoError(t, err)

	sale, err := sales.NewSale(siteID, sales.PaymentCash)
	require.NoError(t, err)

	f.saleRepo.On("FindByIDForSite", mock.Anything, sale.ID, siteID).Return(sale, nil)
	f.saleRepo.On("Save", mock.Anything, sale).Return(nil)
	f.productRepo.On("FindByIDForSite", mock.Anything, product.ID, siteID).Return(product, nil)

	resp, err := f.saleSvc.AddItem(context.Background(), siteID, sale.ID, SaleItemRequest{
		ProductID: product.ID,
		Quantity:  decimal.NewFromInt(2),
	})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Thé vert", resp.Items[0].ProductName)
	assert.Equal(t, "54321", resp.Items[0].CUG)
	assert.True(t, resp.Items[0].UnitPrice.Equal(decimal.NewFromInt(1250)))
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(2500)))
}

func TestSaleUpdateItemQuantity(t *testing.T) {
	siteID := uuid.New()

	t.Run("recomputes line and ticket totals", func(t *testing.T) {
		f := newSalesFixture()

		sale, err := sales.NewSale(siteID, sales.PaymentCash)
		require.NoError(t, err)
		require.NoError(t, sale.AddItem(uuid.New(), "Sucre 1kg", "12345",
			decimal.NewFromInt(2), decimal.NewFromInt(650)))
		itemID := sale.Items[0].ID

		f.saleRepo.On("FindByIDForSite", mock.Anything, sale.ID, siteID).Return(sale, nil)
		f.saleRepo.On("Save", mock.Anything, sale).Return(nil)

		resp, err := f.saleSvc.UpdateItem(context.Background(), siteID, sale.ID, itemID,
			UpdateSaleItemRequest{Quantity: decimal.NewFromInt(5)})
		require.NoError(t, err)

		require.Len(t, resp.Items, 1)
		assert.True(t, resp.Items[0].Quantity.Equal(decimal.NewFromInt(5)))
		assert.True(t, resp.Total.Equal(decimal.NewFromInt(3250)))
	})

	t.Run("completed sale rejects line edits", func(t *testing.T) {
		f := newSalesFixture()

		sale, err := sales.NewSale(siteID, sales.PaymentCash)
		require.NoError(t, err)
		require.NoError(t, sale.AddItem(uuid.New(), "Sucre 1kg", "12345",
			decimal.NewFromInt(2), decimal.NewFromInt(650)))
		itemID := sale.Items[0].ID
		require.NoError(t, sale.Complete())

		f.saleRepo.On("FindByIDForSite", mock.Anything, sale.ID, siteID).Return(sale, nil)

		_, err = f.saleSvc.UpdateItem(context.Background(), siteID, sale.ID, itemID,
			UpdateSaleItemRequest{Quantity: decimal.NewFromInt(1)})
		require.Error(t, err)
		f.saleRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown line", func(t *testing.T) {
		f := newSalesFixture()

		sale, err := sales.NewSale(siteID, sales.PaymentCash)
		require.NoError(t, err)

		f.saleRepo.On("FindByIDForSite", mock.Anything, sale.ID, siteID).Return(sale, nil)

		_, err = f.saleSvc.UpdateItem(context.Background(), siteID, sale.ID, uuid.New(),
			UpdateSaleItemRequest{Quantity: decimal.NewFromInt(1)})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestOrderUpdateAndDelete(t *testing.T) {
	siteID := uuid.New()

	t.Run("draft header fields are editable", func(t *testing.T) {
		f := newSalesFixture()

		order, err := sales.NewOrder(siteID, sales.OrderTypeSupplier, "Fournisseur Bama")
		require.NoError(t, err)

		f.orderRepo.On("FindByIDForSite", mock.Anything, order.ID, siteID).Return(order, nil)
		f.orderRepo.On("Save", mock.Anything, order).Return(nil)

		notes := "Livraison prévue vendredi"
		resp, err := f.orderSvc.Update(context.Background(), siteID, order.ID,
			UpdateOrderRequest{Notes: &notes})
		require.NoError(t, err)

		assert.Equal(t, "Fournisseur Bama", resp.Counterparty)
		assert.Equal(t, notes, resp.Notes)
	})

	t.Run("confirmed order rejects header edits", func(t *testing.T) {
		f := newSalesFixture()

		order, err := sales.NewOrder(siteID, sales.OrderTypeSupplier, "Fournisseur Bama")
		require.NoError(t, err)
		require.NoError(t, order.AddItem(uuid.New(), "Huile 5L", decimal.NewFromInt(10), decimal.NewFromInt(6000)))
		require.NoError(t, order.Confirm())

		f.orderRepo.On("FindByIDForSite", mock.Anything, order.ID, siteID).Return(order, nil)

		counterparty := "Autre fournisseur"
		_, err = f.orderSvc.Update(context.Background(), siteID, order.ID,
			UpdateOrderRequest{Counterparty: &counterparty})
		require.Error(t, err)
		f.orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("draft order is deleted", func(t *testing.T) {
		f := newSalesFixture()

		order, err := sales.NewOrder(siteID, sales.OrderTypeCustomer, "")
		require.NoError(t, err)

		f.orderRepo.On("FindByIDForSite", mock.Anything, order.ID, siteID).Return(order, nil)
		f.orderRepo.On("Delete", mock.Anything, order.ID).Return(nil)

		require.NoError(t, f.orderSvc.Delete(context.Background(), siteID, order.ID))
		f.orderRepo.AssertExpectations(t)
	})

	t.Run("confirmed order cannot be deleted", func(t *testing.T) {
		f := newSalesFixture()

		order, err := sales.NewOrder(siteID, sales.OrderTypeSupplier, "Fournisseur Bama")
		require.NoError(t, err)
		require.NoError(t, order.AddItem(uuid.New(), "Huile 5L", decimal.NewFromInt(10), decimal.NewFromInt(6000)))
		require.NoError(t, order.Confirm())

		f.orderRepo.On("FindByIDForSite", mock.Anything, order.ID, siteID).Return(order, nil)

		err = f.orderSvc.Delete(context.Background(), siteID, order.ID)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
		f.orderRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestOrderDeliverRecordsMovements(t *testing.T) {
	siteID := uuid.New()

	t.Run("supplier order delivers inbound at purchase price", func(t *testing.T) {
		f := newSalesFixture()

		product, err := catalog.NewProduct(siteID, "22222", "Huile 5L",
			decimal.NewFromInt(6000), decimal.NewFromInt(7500))
		require.NoError(t, err)

		order, err := sales.NewOrder(siteID, sales.OrderTypeSupplier, "Fournisseur Bama")
		require.NoError(t, err)
		require.NoError(t, order.AddItem(product.ID, product.Name, decimal.NewFromInt(10), decimal.NewFromInt(6000)))
		require.NoError(t, order.Confirm())

		f.orderRepo.On("FindByIDForSite", mock.Anything, order.ID, siteID).Return(order, nil)
		f.orderRepo.On("Save", mock.Anything, order).Return(nil)
		f.productRepo.On("FindByIDForSite", mock.Anything, product.ID, siteID).Return(product, nil)
		f.productRepo.On("Save", mock.Anything, product).Return(nil)

		var recorded *stock.Transaction
		f.ledgerRepo.On("Save", mock.Anything, mock.AnythingOfType("*stock.Transaction")).
			Run(func(args mock.Arguments) {
				recorded = args.Get(1).(*stock.Transaction)
			}).Return(nil)

		resp, err := f.orderSvc.Deliver(context.Background(), siteID, order.ID, nil)
		require.NoError(t, err)

		assert.Equal(t, sales.OrderStatusDelivered, resp.Status)
		require.NotNil(t, recorded)
		assert.Equal(t, stock.TypeIn, recorded.Type)
		assert.True(t, recorded.Quantity.Equal(decimal.NewFromInt(10)))
		assert.True(t, product.Quantity.Equal(decimal.NewFromInt(10)))
	})

	t.Run("draft order cannot be delivered", func(t *testing.T) {
		f := newSalesFixture()

		order, err := sales.NewOrder(siteID, sales.OrderTypeCustomer, "")
		require.NoError(t, err)

		f.orderRepo.On("FindByIDForSite", mock.Anything, order.ID, siteID).Return(order, nil)

		_, err = f.orderSvc.Deliver(context.Background(), siteID, order.ID, nil)
		require.Error(t, err)
	})
}
