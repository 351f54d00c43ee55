package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/events"
)

// Cache behaviour is exercised against a live Redis in integration
// environments; these tests run the service with the cache disabled.
func newCachelessProductService(repo *fakeProductRepo, dispatcher events.Dispatcher) *ProductService {
	return NewProductService(ProductDependencies{ProductRepo: repo, Dispatcher: dispatcher})
}

func TestProductService_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProductRepo()
	dispatcher := &recordingDispatcher{}
	svc := newCachelessProductService(repo, dispatcher)
	actor := adminActor()

	created, err := svc.Create(ctx, actor, &domain.Product{
		SKU:    "MUG-01",
		Name:   "Mug",
		Price:  decimal.RequireFromString("12.50"),
		Stock:  10,
		Active: true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	fetched, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mug", fetched.Name)

	fetched.Name = "Big Mug"
	_, err = svc.Update(ctx, actor, fetched)
	require.NoError(t, err)
	assert.Equal(t, "Big Mug", repo.byID[created.ID].Name)

	require.NoError(t, svc.Delete(ctx, actor, created.ID))
	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	assert.Equal(t, []events.EventType{
		events.EventProductCreated,
		events.EventProductUpdated,
		events.EventProductDeleted,
	}, dispatcher.types())
}
