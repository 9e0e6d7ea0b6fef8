package persistence

import (
	"context"

	appsales "github.com/bolibana/backend/internal/application/sales"
	appstock "github.com/bolibana/backend/internal/application/stock"
	"github.com/bolibana/backend/internal/domain/catalog"
	"github.com/bolibana/backend/internal/domain/sales"
	"github.com/bolibana/backend/internal/domain/stock"
	"gorm.io/gorm"
)

// GormStockTransactionScope implements the stock TransactionScope using
// GORM transactions. The product update and the ledger append commit or
// roll back together.
type GormStockTransactionScope struct {
	db *gorm.DB
}

// NewGormStockTransactionScope creates a new GormStockTransactionScope
func NewGormStockTransactionScope(db *gorm.DB) *GormStockTransactionScope {
	return &GormStockTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormStockTransactionScope) Execute(ctx context.Context, fn func(repos appstock.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStockRepositories{tx: tx})
	})
}

type gormStockRepositories struct {
	tx *gorm.DB
}

// ProductRepo returns the product repository scoped to the current transaction
func (r *gormStockRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// LedgerRepo returns the stock ledger repository scoped to the current transaction
func (r *gormStockRepositories) LedgerRepo() stock.Repository {
	return NewGormStockTransactionRepository(r.tx)
}

var _ appstock.TransactionScope = (*GormStockTransactionScope)(nil)
var _ appstock.TransactionalRepositories = (*gormStockRepositories)(nil)

// GormSalesTransactionScope implements the sales TransactionScope using
// GORM transactions. Completing a sale or delivering an order writes
// the aggregate, the product quantities and the ledger atomically.
type GormSalesTransactionScope struct {
	db *gorm.DB
}

// NewGormSalesTransactionScope creates a new GormSalesTransactionScope
func NewGormSalesTransactionScope(db *gorm.DB) *GormSalesTransactionScope {
	return &GormSalesTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormSalesTransactionScope) Execute(ctx context.Context, fn func(repos appsales.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormSalesRepositories{tx: tx})
	})
}

type gormSalesRepositories struct {
	tx *gorm.DB
}

// SaleRepo returns the sale repository scoped to the current transaction
func (r *gormSalesRepositories) SaleRepo() sales.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

// OrderRepo returns the order repository scoped to the current transaction
func (r *gormSalesRepositories) OrderRepo() sales.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

// ProductRepo returns the product repository scoped to the current transaction
func (r *gormSalesRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// LedgerRepo returns the stock ledger repository scoped to the current transaction
func (r *gormSalesRepositories) LedgerRepo() stock.Repository {
	return NewGormStockTransactionRepository(r.tx)
}

var _ appsales.TransactionScope = (*GormSalesTransactionScope)(nil)
var _ appsales.TransactionalRepositories = (*gormSalesRepositories)(nil)
