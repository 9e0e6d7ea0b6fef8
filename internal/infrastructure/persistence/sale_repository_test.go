package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockSaleRepository creates a GormSaleRepository with a mocked SQL connection
func newMockSaleRepository(t *testing.T) (*GormSaleRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormSaleRepository(gormDB), mock, mockDB
}

func TestGormSaleRepository_FindByIDForSite(t *testing.T) {
	t.Run("finds sale with items within site", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepository(t)
		defer mockDB.Close()

		saleID := uuid.New()
		siteID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "site_id", "reference", "status", "payment_method", "total"}).
			AddRow(saleID, siteID, "VT-20250610-0001", "completed", "cash", decimal.NewFromInt(2500))

		mock.ExpectQuery(`SELECT \* FROM "sales" WHERE site_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(siteID, saleID, 1).
			WillReturnRows(rows)
		mock.ExpectQuery(`SELECT \* FROM "sale_items" WHERE "sale_items"\."sale_id" = \$1`).
			WithArgs(saleID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "sale_id", "product_id", "product_name", "cug", "quantity", "unit_price", "line_total"}).
				AddRow(uuid.New(), saleID, uuid.New(), "Thé vert", "54321", decimal.NewFromInt(2), decimal.NewFromInt(1250), decimal.NewFromInt(2500)))

		sale, err := repo.FindByIDForSite(context.Background(), saleID, siteID)

		assert.NoError(t, err)
		require.NotNil(t, sale)
		assert.Equal(t, "VT-20250610-0001", sale.Reference)
		require.Len(t, sale.Items, 1)
		assert.Equal(t, "Thé vert", sale.Items[0].ProductName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSaleRepository_RevenueForSiteBetween(t *testing.T) {
	t.Run("sums completed sales in the period", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepository(t)
		defer mockDB.Close()

		siteID := uuid.New()
		from := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 0, 1)

		mock.ExpectQuery(`SELECT COALESCE\(SUM\(total\), 0\) FROM "sales" WHERE site_id = \$1 AND status = \$2 AND \(completed_at >= \$3 AND completed_at < \$4\)`).
			WithArgs(siteID, "completed", from, to).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("187500"))

		revenue, err := repo.RevenueForSiteBetween(context.Background(), siteID, from, to)

		assert.NoError(t, err)
		assert.True(t, revenue.Equal(decimal.NewFromInt(187500)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns zero when the period has no sales", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepository(t)
		defer mockDB.Close()

		siteID := uuid.New()
		from := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 0, 1)

		mock.ExpectQuery(`SELECT COALESCE\(SUM\(total\), 0\) FROM "sales" WHERE site_id = \$1 AND status = \$2 AND \(completed_at >= \$3 AND completed_at < \$4\)`).
			WithArgs(siteID, "completed", from, to).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("0"))

		revenue, err := repo.RevenueForSiteBetween(context.Background(), siteID, from, to)

		assert.NoError(t, err)
		assert.True(t, revenue.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSaleRepository_CountForSiteBetween(t *testing.T) {
	t.Run("counts completed sales in the period", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepository(t)
		defer mockDB.Close()

		siteID := uuid.New()
		from := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 0, 1)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "sales" WHERE site_id = \$1 AND status = \$2 AND \(completed_at >= \$3 AND completed_at < \$4\)`).
			WithArgs(siteID, "completed", from, to).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(15))

		count, err := repo.CountForSiteBetween(context.Background(), siteID, from, to)

		assert.NoError(t, err)
		assert.Equal(t, int64(15), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
