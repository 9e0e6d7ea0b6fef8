package sales

import (
	"context"

	"github.com/bolibana/backend/internal/domain/catalog"
	"github.com/bolibana/backend/internal/domain/sales"
	"github.com/bolibana/backend/internal/domain/stock"
)

// TransactionScope provides transactional access to the repositories a
// sale completion or order delivery touches. The aggregate, the product
// quantities and the ledger entries commit or roll back together.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories bound to the
// current database transaction
type TransactionalRepositories interface {
	SaleRepo() sales.SaleRepository
	OrderRepo() sales.OrderRepository
	ProductRepo() catalog.ProductRepository
	LedgerRepo() stock.Repository
}

// NoOpTransactionScope runs the function without a real transaction.
// Used in tests.
type NoOpTransactionScope struct {
	saleRepo    sales.SaleRepository
	orderRepo   sales.OrderRepository
	productRepo catalog.ProductRepository
	ledgerRepo  stock.Repository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope
func NewNoOpTransactionScope(
	saleRepo sales.SaleRepository,
	orderRepo sales.OrderRepository,
	productRepo catalog.ProductRepository,
	ledgerRepo stock.Repository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		saleRepo:    saleRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		ledgerRepo:  ledgerRepo,
	}
}

// Execute runs the function directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// SaleRepo returns the sale repository
func (s *NoOpTransactionScope) SaleRepo() sales.SaleRepository { return s.saleRepo }

// OrderRepo returns the order repository
func (s *NoOpTransactionScope) OrderRepo() sales.OrderRepository { return s.orderRepo }

// ProductRepo returns the product repository
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository { return s.productRepo }

// LedgerRepo returns the stock ledger repository
func (s *NoOpTransactionScope) LedgerRepo() stock.Repository { return s.ledgerRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
