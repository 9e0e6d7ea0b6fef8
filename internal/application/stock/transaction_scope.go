package stock

import (
	"context"

	"github.com/bolibana/backend/internal/domain/catalog"
	"github.com/bolibana/backend/internal/domain/stock"
)

// TransactionScope provides transactional access to the repositories a
// stock mutation touches. The product update and the ledger append
// commit or roll back together.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories bound to the
// current database transaction
type TransactionalRepositories interface {
	ProductRepo() catalog.ProductRepository
	LedgerRepo() stock.Repository
}

// NoOpTransactionScope runs the function without a real transaction.
// Used in tests.
type NoOpTransactionScope struct {
	productRepo catalog.ProductRepository
	ledgerRepo  stock.Repository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope
func NewNoOpTransactionScope(productRepo catalog.ProductRepository, ledgerRepo stock.Repository) *NoOpTransactionScope {
	return &NoOpTransactionScope{productRepo: productRepo, ledgerRepo: ledgerRepo}
}

// Execute runs the function directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ProductRepo returns the product repository
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository {
	return s.productRepo
}

// LedgerRepo returns the stock ledger repository
func (s *NoOpTransactionScope) LedgerRepo() stock.Repository {
	return s.ledgerRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
