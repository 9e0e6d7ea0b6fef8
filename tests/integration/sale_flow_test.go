package integration

import (
	"context"
	"testing"

	salesapp "github.com/bolibana/backend/internal/application/sales"
	stockapp "github.com/bolibana/backend/internal/application/stock"
	"github.com/bolibana/backend/internal/domain/sales"
	"github.com/bolibana/backend/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaleFlow_CompleteDeductsStock(t *testing.T) {
	skipUnlessIntegration(t)

	tdb := NewSharedTestDB(t)
	ctx := context.Background()

	productRepo := persistence.NewGormProductRepository(tdb.DB)
	saleRepo := persistence.NewGormSaleRepository(tdb.DB)
	ledgerRepo := persistence.NewGormStockTransactionRepository(tdb.DB)
	scope := persistence.NewGormSalesTransactionScope(tdb.DB)
	saleService := salesapp.NewSaleService(scope, saleRepo)

	siteID := uuid.New()
	tdb.CreateTestSite(siteID, "Boutique Koutiala")

	product := newTestProduct(t, siteID, "40001", "Farine de blé 1kg")
	product.SetQuantity(decimal.NewFromInt(20))
	require.NoError(t, productRepo.Save(ctx, product))

	// Open a ticket and sell 3 units
	created, err := saleService.Create(ctx, siteID, salesapp.CreateSaleRequest{
		PaymentMethod: "cash",
	})
	require.NoError(t, err)
	assert.Equal(t, sales.SaleStatusPending, created.Status)

	_, err = saleService.AddItem(ctx, siteID, created.ID, salesapp.SaleItemRequest{
		ProductID: product.ID,
		Quantity:  decimal.NewFromInt(3),
	})
	require.NoError(t, err)

	completed, err := saleService.Complete(ctx, siteID, created.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, sales.SaleStatusCompleted, completed.Status)
	require.NotNil(t, completed.CompletedAt)

	// Product quantity dropped and a negative ledger entry was written
	// in the same transaction
	after, err := productRepo.FindByIDForSite(ctx, product.ID, siteID)
	require.NoError(t, err)
	assert.True(t, after.Quantity.Equal(decimal.NewFromInt(17)),
		"expected quantity 17, got %s", after.Quantity)

	sum, err := ledgerRepo.SumQuantityForProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.NewFromInt(-3)),
		"expected ledger sum -3, got %s", sum)

	// Completing twice is rejected
	_, err = saleService.Complete(ctx, siteID, created.ID, nil)
	assert.Error(t, err)
}

func TestSaleFlow_CancelLeavesStockUntouched(t *testing.T) {
	skipUnlessIntegration(t)

	tdb := NewSharedTestDB(t)
	ctx := context.Background()

	productRepo := persistence.NewGormProductRepository(tdb.DB)
	saleRepo := persistence.NewGormSaleRepository(tdb.DB)
	scope := persistence.NewGormSalesTransactionScope(tdb.DB)
	saleService := salesapp.NewSaleService(scope, saleRepo)

	siteID := uuid.New()
	tdb.CreateTestSite(siteID, "Boutique Gao")

	product := newTestProduct(t, siteID, "40002", "Pâtes alimentaires 500g")
	product.SetQuantity(decimal.NewFromInt(10))
	require.NoError(t, productRepo.Save(ctx, product))

	created, err := saleService.Create(ctx, siteID, salesapp.CreateSaleRequest{
		PaymentMethod: "mobile_money",
	})
	require.NoError(t, err)

	_, err = saleService.AddItem(ctx, siteID, created.ID, salesapp.SaleItemRequest{
		ProductID: product.ID,
		Quantity:  decimal.NewFromInt(4),
	})
	require.NoError(t, err)

	require.NoError(t, saleService.Cancel(ctx, siteID, created.ID))

	after, err := productRepo.FindByIDForSite(ctx, product.ID, siteID)
	require.NoError(t, err)
	assert.True(t, after.Quantity.Equal(decimal.NewFromInt(10)))
}

func TestStockService_LedgerReconstruction(t *testing.T) {
	skipUnlessIntegration(t)

	tdb := NewSharedTestDB(t)
	ctx := context.Background()

	productRepo := persistence.NewGormProductRepository(tdb.DB)
	ledgerRepo := persistence.NewGormStockTransactionRepository(tdb.DB)
	scope := persistence.NewGormStockTransactionScope(tdb.DB)
	stockService := stockapp.NewStockService(scope, ledgerRepo)

	siteID := uuid.New()
	tdb.CreateTestSite(siteID, "Boutique Kidal")

	product := newTestProduct(t, siteID, "40003", "Bidon d'eau 10L")
	require.NoError(t, productRepo.Save(ctx, product))

	// Receive 12, sell 5, then adjust down to 6
	_, err := stockService.Record(ctx, siteID, stockapp.RecordTransactionRequest{
		ProductID: product.ID,
		Type:      "in",
		Quantity:  decimal.NewFromInt(12),
	})
	require.NoError(t, err)

	_, err = stockService.Record(ctx, siteID, stockapp.RecordTransactionRequest{
		ProductID: product.ID,
		Type:      "out",
		Quantity:  decimal.NewFromInt(5),
	})
	require.NoError(t, err)

	_, err = stockService.Adjust(ctx, siteID, stockapp.AdjustQuantityRequest{
		ProductID:   product.ID,
		NewQuantity: "6",
	})
	require.NoError(t, err)

	after, err := productRepo.FindByIDForSite(ctx, product.ID, siteID)
	require.NoError(t, err)
	assert.True(t, after.Quantity.Equal(decimal.NewFromInt(6)))

	// Summing the signed ledger reproduces the current quantity
	sum, err := ledgerRepo.SumQuantityForProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.NewFromInt(6)),
		"expected ledger sum 6, got %s", sum)
}
