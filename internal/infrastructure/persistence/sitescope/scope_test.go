package sitescope

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bolibana/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// TestModel is a simple model for testing site scoping
type TestModel struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	SiteID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name   string    `gorm:"size:100"`
}

func (TestModel) TableName() string {
	return "test_models"
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
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

	return gormDB, mock, mockDB
}

func createTestContext(siteID string) context.Context {
	ctx := context.Background()
	if siteID != "" {
		log := logger.FromContext(ctx)
		ctx, _ = logger.WithSiteID(ctx, log, siteID)
	}
	return ctx
}

func TestSiteScope(t *testing.T) {
	siteID := uuid.New()

	t.Run("applies site filter to query", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "test_models" WHERE site_id = \$1`).
			WithArgs(siteID.String()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "site_id", "name"}))

		var results []TestModel
		err := db.Scopes(SiteScope(siteID)).Find(&results).Error
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSiteScopeString(t *testing.T) {
	siteID := uuid.New().String()

	t.Run("applies site filter with string ID", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "test_models" WHERE site_id = \$1`).
			WithArgs(siteID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "site_id", "name"}))

		var results []TestModel
		err := db.Scopes(SiteScopeString(siteID)).Find(&results).Error
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSiteDB_WithContext(t *testing.T) {
	t.Run("extracts site from context and scopes query", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		siteDB := NewSiteDB(db)
		siteID := uuid.New()
		ctx := createTestContext(siteID.String())

		mock.ExpectQuery(`SELECT \* FROM "test_models" WHERE site_id = \$1`).
			WithArgs(siteID.String()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "site_id", "name"}))

		var results []TestModel
		err := siteDB.WithContext(ctx).Find(&results).Error
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("errors when site required but missing", func(t *testing.T) {
		db, _, mockDB := setupMockDB(t)
		defer mockDB.Close()

		siteDB := NewSiteDB(db) // required=true by default
		ctx := createTestContext("")

		scopedDB := siteDB.WithContext(ctx)

		// Should have error when site is required but missing
		assert.ErrorIs(t, scopedDB.Error, ErrSiteIDRequired)
	})

	t.Run("allows missing site when not required", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		siteDB := NewSiteDBWithConfig(db, Config{
			SiteColumn: "site_id",
			Required:     false,
		})
		ctx := createTestContext("")

		mock.ExpectQuery(`SELECT \* FROM "test_models"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "site_id", "name"}))

		var results []TestModel
		err := siteDB.WithContext(ctx).Find(&results).Error
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("errors on invalid UUID format", func(t *testing.T) {
		db, _, mockDB := setupMockDB(t)
		defer mockDB.Close()

		siteDB := NewSiteDB(db)
		ctx := createTestContext("invalid-uuid")

		scopedDB := siteDB.WithContext(ctx)

		// Should error on invalid UUID
		assert.ErrorIs(t, scopedDB.Error, ErrInvalidSiteID)
	})
}

func TestSiteDB_WithSite(t *testing.T) {
	t.Run("scopes to specific site", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		siteDB := NewSiteDB(db)
		siteID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "test_models" WHERE site_id = \$1`).
			WithArgs(siteID.String()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "site_id", "name"}))

		var results []TestModel
		err := siteDB.WithSite(siteID).Find(&results).Error
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("errors on nil UUID when required", func(t *testing.T) {
		db, _, mockDB := setupMockDB(t)
		defer mockDB.Close()

		siteDB := NewSiteDB(db)
		scopedDB := siteDB.WithSite(uuid.Nil)

		assert.ErrorIs(t, scopedDB.Error, ErrSiteIDRequired)
	})
}

func TestSiteDB_WithSiteString(t *testing.T) {
	t.Run("scopes to site from string", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		siteDB := NewSiteDB(db)
		siteID := uuid.New().String()

		mock.ExpectQuery(`SELECT \* FROM "test_models" WHERE site_id = \$1`).
			WithArgs(siteID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "site_id", "name"}))

		var results []TestModel
		err := siteDB.WithSiteString(siteID).Find(&results).Error
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("errors on empty string when required", func(t *testing.T) {
		db, _, mockDB := setupMockDB(t)
		defer mockDB.Close()

		siteDB := NewSiteDB(db)
		scopedDB := siteDB.WithSiteString("")

		assert.ErrorIs(t, scopedDB.Error, ErrSiteIDRequired)
	})

	t.Run("errors on invalid UUID string", func(t *testing.T) {
		db, _, mockDB := setupMockDB(t)
		defer mockDB.Close()

		siteDB := NewSiteDB(db)
		scopedDB := siteDB.WithSiteString("not-a-uuid")

		assert.ErrorIs(t, scopedDB.Error, ErrInvalidSiteID)
	})
}

func TestSiteDB_SetRequired(t *testing.T) {
	t.Run("creates new instance with required=false", func(t *testing.T) {
		db, _, mockDB := setupMockDB(t)
		defer mockDB.Close()

		siteDB := NewSiteDB(db)
		notRequiredDB := siteDB.SetRequired(false)
		ctx := createTestContext("")

		scopedDB := notRequiredDB.WithContext(ctx)
		assert.Nil(t, scopedDB.Error)
	})
}

func TestSiteDB_Unscoped(t *testing.T) {
	t.Run("returns unscoped DB", func(t *testing.T) {
		db, _, mockDB := setupMockDB(t)
		defer mockDB.Close()

		siteDB := NewSiteDB(db)
		unscopedDB := siteDB.Unscoped()

		// Should be the same as original DB
		assert.Equal(t, db, unscopedDB)
	})
}

func TestSiteDB_ForSite(t *testing.T) {
	t.Run("creates scoped DB with context and site", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		siteDB := NewSiteDB(db)
		siteID := uuid.New()
		ctx := context.Background()

		mock.ExpectQuery(`SELECT \* FROM "test_models" WHERE site_id = \$1`).
			WithArgs(siteID.String()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "site_id", "name"}))

		var results []TestModel
		err := siteDB.ForSite(ctx, siteID).Find(&results).Error
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSiteDB_Transaction(t *testing.T) {
	t.Run("transaction errors without site when required", func(t *testing.T) {
		db, _, mockDB := setupMockDB(t)
		defer mockDB.Close()

		siteDB := NewSiteDB(db)
		ctx := createTestContext("")

		err := siteDB.Transaction(ctx, func(tx *gorm.DB) error {
			return nil
		})

		assert.ErrorIs(t, err, ErrSiteIDRequired)
	})

	t.Run("transaction executes with site context", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		siteDB := NewSiteDB(db)
		siteID := uuid.New()
		ctx := createTestContext(siteID.String())

		mock.ExpectBegin()
		mock.ExpectCommit()

		err := siteDB.Transaction(ctx, func(tx *gorm.DB) error {
			// Just a no-op to verify transaction works
			return nil
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "site_id", cfg.SiteColumn)
	assert.True(t, cfg.Required)
}

func TestNewSiteDBWithConfig_DefaultColumn(t *testing.T) {
	db, _, mockDB := setupMockDB(t)
	defer mockDB.Close()

	// Empty site column should default to "site_id"
	siteDB := NewSiteDBWithConfig(db, Config{
		SiteColumn: "",
		Required:     true,
	})

	assert.NotNil(t, siteDB)
	assert.Equal(t, "site_id", siteDB.siteColumn)
}

func TestSiteDB_ChainedQueries(t *testing.T) {
	t.Run("site scope chains with additional where clauses", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		siteDB := NewSiteDB(db)
		siteID := uuid.New()
		ctx := createTestContext(siteID.String())

		// GORM may order WHERE clauses differently - use regex that matches either order
		mock.ExpectQuery(`SELECT \* FROM "test_models" WHERE .+ AND .+`).
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "site_id", "name"}))

		var results []TestModel
		err := siteDB.WithContext(ctx).Where("name = ?", "Test").Find(&results).Error
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("site scope preserves ordering", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		siteDB := NewSiteDB(db)
		siteID := uuid.New()
		ctx := createTestContext(siteID.String())

		mock.ExpectQuery(`SELECT \* FROM "test_models" WHERE site_id = \$1 ORDER BY name ASC`).
			WithArgs(siteID.String()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "site_id", "name"}))

		var results []TestModel
		err := siteDB.WithContext(ctx).Order("name ASC").Find(&results).Error
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("site scope with pagination", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		siteDB := NewSiteDB(db)
		siteID := uuid.New()
		ctx := createTestContext(siteID.String())

		mock.ExpectQuery(`SELECT \* FROM "test_models" WHERE site_id = \$1 LIMIT \$2 OFFSET \$3`).
			WithArgs(siteID.String(), 10, 5).
			WillReturnRows(sqlmock.NewRows([]string{"id", "site_id", "name"}))

		var results []TestModel
		err := siteDB.WithContext(ctx).Limit(10).Offset(5).Find(&results).Error
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSiteDB_SQLInjectionPrevention(t *testing.T) {
	t.Run("parameterized queries prevent SQL injection", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		siteDB := NewSiteDB(db)
		// Malicious site ID - should be parameterized and safe
		maliciousSiteID := uuid.New().String()
		ctx := createTestContext(maliciousSiteID)

		// The query should use parameterized queries
		mock.ExpectQuery(`SELECT \* FROM "test_models" WHERE site_id = \$1`).
			WithArgs(maliciousSiteID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "site_id", "name"}))

		var results []TestModel
		err := siteDB.WithContext(ctx).Find(&results).Error
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSiteDB_MultiSiteIsolation(t *testing.T) {
	t.Run("different sites get isolated scopes", func(t *testing.T) {
		db, _, mockDB := setupMockDB(t)
		defer mockDB.Close()

		siteDB := NewSiteDB(db)
		site1ID := uuid.New()
		site2ID := uuid.New()

		site1DB := siteDB.WithSite(site1ID)
		site2DB := siteDB.WithSite(site2ID)

		// The two scoped DBs should be different instances
		assert.NotEqual(t, site1DB, site2DB)
	})
}
