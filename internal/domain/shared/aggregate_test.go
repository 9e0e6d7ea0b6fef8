package shared

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ Entity        = (*BaseEntity)(nil)
	_ AggregateRoot = (*BaseAggregateRoot)(nil)
	_ AggregateRoot = (*SiteAggregateRoot)(nil)
)

func TestBaseEntityIdentity(t *testing.T) {
	entity := NewBaseEntity()

	assert.NotEqual(t, uuid.Nil, entity.GetID())
	assert.False(t, entity.GetCreatedAt().IsZero())
	assert.Equal(t, entity.GetCreatedAt(), entity.GetUpdatedAt())
}

func TestBaseAggregateRootVersioning(t *testing.T) {
	root := NewBaseAggregateRoot()
	require.Equal(t, 1, root.GetVersion())

	root.IncrementVersion()
	root.IncrementVersion()
	assert.Equal(t, 3, root.GetVersion())
}

func TestBaseAggregateRootDomainEvents(t *testing.T) {
	root := NewBaseAggregateRoot()
	event := NewBaseDomainEvent("product.created", "Product", uuid.New(), uuid.New())

	root.AddDomainEvent(&event)
	require.Len(t, root.GetDomainEvents(), 1)

	root.ClearDomainEvents()
	assert.Empty(t, root.GetDomainEvents())
}

func TestSiteAggregateRootScoping(t *testing.T) {
	siteID := uuid.New()
	root := NewSiteAggregateRoot(siteID)

	assert.Equal(t, siteID, root.SiteID)
	assert.Nil(t, root.GetCreatedBy())

	userID := uuid.New()
	root.SetCreatedBy(userID)
	require.NotNil(t, root.GetCreatedBy())
	assert.Equal(t, userID, *root.GetCreatedBy())
}
