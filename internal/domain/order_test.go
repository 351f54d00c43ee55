package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	allStatuses := []OrderStatus{
		OrderStatusPending, OrderStatusPaid, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled,
	}
	allowed := map[OrderStatus][]OrderStatus{
		OrderStatusPending: {OrderStatusPaid, OrderStatusCancelled},
		OrderStatusPaid:    {OrderStatusShipped, OrderStatusCancelled},
		OrderStatusShipped: {OrderStatusDelivered},
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestOrderStatus_TerminalStates(t *testing.T) {
	for _, terminal := range []OrderStatus{OrderStatusDelivered, OrderStatusCancelled} {
		for _, to := range []OrderStatus{
			OrderStatusPending, OrderStatusPaid, OrderStatusShipped,
			OrderStatusDelivered, OrderStatusCancelled,
		} {
			assert.False(t, terminal.CanTransitionTo(to), "%s must be terminal", terminal)
		}
	}
}

func TestOrderLine_Total(t *testing.T) {
	line := OrderLine{
		ProductID: "p1",
		Name:      "Mug",
		UnitPrice: decimal.RequireFromString("12.50"),
		Quantity:  3,
	}
	assert.True(t, line.Total().Equal(decimal.RequireFromString("37.50")))
}
