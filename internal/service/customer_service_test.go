package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/events"
)

func TestCustomerService_UpdateName(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCustomerRepo(testCustomer(t, domain.PrincipalStatusActive))
	svc := NewCustomerService(repo, nil)

	customer, err := svc.UpdateName(ctx, "customer-1", "Renamed Shopper")
	require.NoError(t, err)
	assert.Equal(t, "Renamed Shopper", customer.Name)
	assert.Equal(t, "Renamed Shopper", repo.byID["customer-1"].Name)

	_, err = svc.UpdateName(ctx, "missing", "X")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestCustomerService_SetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("suspension publishes an event", func(t *testing.T) {
		repo := newFakeCustomerRepo(testCustomer(t, domain.PrincipalStatusActive))
		dispatcher := &recordingDispatcher{}
		svc := NewCustomerService(repo, dispatcher)

		customer, err := svc.SetStatus(ctx, adminActor(), "customer-1", domain.PrincipalStatusSuspended)
		require.NoError(t, err)
		assert.Equal(t, domain.PrincipalStatusSuspended, customer.Status)
		assert.Equal(t, []events.EventType{events.EventCustomerSuspended}, dispatcher.types())
	})

	t.Run("reactivation is silent", func(t *testing.T) {
		repo := newFakeCustomerRepo(testCustomer(t, domain.PrincipalStatusSuspended))
		dispatcher := &recordingDispatcher{}
		svc := NewCustomerService(repo, dispatcher)

		customer, err := svc.SetStatus(ctx, adminActor(), "customer-1", domain.PrincipalStatusActive)
		require.NoError(t, err)
		assert.Equal(t, domain.PrincipalStatusActive, customer.Status)
		assert.Empty(t, dispatcher.published)
	})
}
