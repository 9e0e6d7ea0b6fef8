package catalog

import (
	"testing"

	"github.com/bolibana/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProduct(t *testing.T) *Product {
	t.Helper()
	p, err := NewProduct(uuid.New(), "12345", "Riz parfumé 25kg",
		decimal.NewFromInt(11000), decimal.NewFromInt(12500))
	require.NoError(t, err)
	return p
}

func TestNewProduct(t *testing.T) {
	t.Run("creates active product with zero stock", func(t *testing.T) {
		siteID := uuid.New()
		p, err := NewProduct(siteID, "00042", "Savon 200g",
			decimal.NewFromInt(250), decimal.NewFromInt(400))
		require.NoError(t, err)

		assert.Equal(t, siteID, p.SiteID)
		assert.Equal(t, "00042", p.CUG)
		assert.True(t, p.Quantity.IsZero())
		assert.True(t, p.IsActive)
		assert.True(t, p.Margin().Equal(decimal.NewFromInt(150)))
		require.Len(t, p.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeProductCreated, p.GetDomainEvents()[0].EventType())
	})

	t.Run("rejects malformed CUG", func(t *testing.T) {
		for _, cug := range []string{"1234", "123456", "12a45", ""} {
			_, err := NewProduct(uuid.New(), cug, "X",
				decimal.Zero, decimal.Zero)
			require.Error(t, err, cug)
		}
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewProduct(uuid.New(), "12345", "X",
			decimal.NewFromInt(-1), decimal.Zero)
		require.Error(t, err)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewProduct(uuid.New(), "12345", "  ",
			decimal.Zero, decimal.Zero)
		require.Error(t, err)
	})
}

func TestRandomCUG(t *testing.T) {
	for i := 0; i < 50; i++ {
		cug := RandomCUG()
		assert.Regexp(t, `^[0-9]{5}$`, cug)
	}
}

func TestProductQuantity(t *testing.T) {
	p := newTestProduct(t)

	t.Run("delta application allows negative stock", func(t *testing.T) {
		p.ApplyQuantityDelta(decimal.NewFromInt(10))
		assert.True(t, p.Quantity.Equal(decimal.NewFromInt(10)))

		p.ApplyQuantityDelta(decimal.NewFromInt(-15))
		assert.True(t, p.Quantity.Equal(decimal.NewFromInt(-5)))
	})

	t.Run("set quantity returns signed delta", func(t *testing.T) {
		delta := p.SetQuantity(decimal.NewFromInt(20))
		assert.True(t, delta.Equal(decimal.NewFromInt(25)))
		assert.True(t, p.Quantity.Equal(decimal.NewFromInt(20)))

		delta = p.SetQuantity(decimal.NewFromFloat(7.5))
		assert.True(t, delta.Equal(decimal.NewFromFloat(-12.5)))
	})

	t.Run("fractional quantities keep three digits", func(t *testing.T) {
		p.SetQuantity(decimal.Zero)
		p.ApplyQuantityDelta(decimal.RequireFromString("0.2505"))
		assert.True(t, p.Quantity.Equal(decimal.RequireFromString("0.251")))
	})
}

func TestProductLowStock(t *testing.T) {
	p := newTestProduct(t)
	require.NoError(t, p.SetAlertThreshold(decimal.NewFromInt(3)))

	p.SetQuantity(decimal.NewFromInt(3))
	assert.True(t, p.IsLowStock())

	p.SetQuantity(decimal.NewFromInt(4))
	assert.False(t, p.IsLowStock())

	require.Error(t, p.SetAlertThreshold(decimal.NewFromInt(-1)))
}

func TestProductBarcodes(t *testing.T) {
	p := newTestProduct(t)

	t.Run("first barcode becomes primary", func(t *testing.T) {
		b, err := p.AddBarcode("2000000123455", "")
		require.NoError(t, err)
		assert.True(t, b.IsPrimary)
		require.NotNil(t, p.PrimaryBarcode())
		assert.Equal(t, "2000000123455", p.PrimaryBarcode().EAN)
	})

	t.Run("duplicate EAN on same product rejected", func(t *testing.T) {
		_, err := p.AddBarcode("2000000123455", "")
		assert.ErrorIs(t, err, shared.ErrDuplicateBarcode)
	})

	t.Run("set primary clears other flags", func(t *testing.T) {
		b2, err := p.AddBarcode("4006381333931", "carton")
		require.NoError(t, err)
		assert.False(t, b2.IsPrimary)

		require.NoError(t, p.SetPrimaryBarcode(b2.ID))
		assert.Equal(t, b2.ID, p.PrimaryBarcode().ID)

		primaries := 0
		for _, b := range p.Barcodes {
			if b.IsPrimary {
				primaries++
			}
		}
		assert.Equal(t, 1, primaries)
	})

	t.Run("removing the primary promotes the first remaining", func(t *testing.T) {
		require.NoError(t, p.RemoveBarcode(p.PrimaryBarcode().ID))
		require.Len(t, p.Barcodes, 1)
		assert.True(t, p.Barcodes[0].IsPrimary)
	})

	t.Run("unknown barcode id", func(t *testing.T) {
		assert.ErrorIs(t, p.SetPrimaryBarcode(uuid.New()), shared.ErrNotFound)
		assert.ErrorIs(t, p.RemoveBarcode(uuid.New()), shared.ErrNotFound)
	})

	t.Run("rejects non-numeric EAN", func(t *testing.T) {
		_, err := p.AddBarcode("not-a-code", "")
		require.Error(t, err)
	})
}

func TestCategoryHierarchy(t *testing.T) {
	siteID := uuid.New()
	root, err := NewCategory(siteID, "Alimentation")
	require.NoError(t, err)
	assert.True(t, root.IsRoot())

	child, err := NewCategory(siteID, "Boissons")
	require.NoError(t, err)
	require.NoError(t, child.SetParent(&root.ID))
	assert.False(t, child.IsRoot())

	err = child.SetParent(&child.ID)
	require.Error(t, err)
}

func TestBrand(t *testing.T) {
	b, err := NewBrand(uuid.New(), "Dolima")
	require.NoError(t, err)
	require.NoError(t, b.Rename("Sikalait"))
	assert.Equal(t, "Sikalait", b.Name)

	_, err = NewBrand(uuid.New(), "")
	require.Error(t, err)
}
