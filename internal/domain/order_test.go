package domain_test

import (
	"testing"

	"github.com/hiTanyaZhao/food-order-system/internal/domain"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from    domain.OrderStatus
		to      domain.OrderStatus
		allowed bool
	}{
		{domain.OrderStatusPending, domain.OrderStatusAccepted, true},
		{domain.OrderStatusPending, domain.OrderStatusCancelled, true},
		{domain.OrderStatusAccepted, domain.OrderStatusPreparing, true},
		{domain.OrderStatusAccepted, domain.OrderStatusCancelled, true},
		{domain.OrderStatusPreparing, domain.OrderStatusCompleted, true},

		{domain.OrderStatusPending, domain.OrderStatusPreparing, false},
		{domain.OrderStatusPending, domain.OrderStatusCompleted, false},
		{domain.OrderStatusPreparing, domain.OrderStatusCancelled, false},
		{domain.OrderStatusCompleted, domain.OrderStatusPending, false},
		{domain.OrderStatusCompleted, domain.OrderStatusCancelled, false},
		{domain.OrderStatusCancelled, domain.OrderStatusAccepted, false},
		{domain.OrderStatusCancelled, domain.OrderStatusCancelled, true}, // no-op
		{domain.OrderStatusPending, domain.OrderStatusPending, true},    // no-op
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.allowed, got)
		}
	}
}

func TestOrderStatus_Terminal(t *testing.T) {
	for _, s := range []domain.OrderStatus{domain.OrderStatusCompleted, domain.OrderStatusCancelled} {
		if !s.Terminal() {
			t.Errorf("expected %s to be terminal", s)
		}
	}
	for _, s := range []domain.OrderStatus{domain.OrderStatusPending, domain.OrderStatusAccepted, domain.OrderStatusPreparing} {
		if s.Terminal() {
			t.Errorf("expected %s to be non-terminal", s)
		}
	}
}

func TestOrderStatus_Modifiable(t *testing.T) {
	if !domain.OrderStatusPending.Modifiable() || !domain.OrderStatusAccepted.Modifiable() {
		t.Fatal("PENDING and ACCEPTED must be modifiable")
	}
	for _, s := range []domain.OrderStatus{domain.OrderStatusPreparing, domain.OrderStatusCompleted, domain.OrderStatusCancelled} {
		if s.Modifiable() {
			t.Errorf("expected %s to be non-modifiable", s)
		}
	}
}

func TestOrderStatus_Valid(t *testing.T) {
	if domain.OrderStatus("SHIPPED").Valid() {
		t.Fatal("unknown status must be invalid")
	}
	if !domain.OrderStatusPreparing.Valid() {
		t.Fatal("PREPARING must be valid")
	}
}

func TestOrder_SumItemsCents(t *testing.T) {
	order := domain.Order{
		Items: []domain.OrderItem{
			{Quantity: 2, PriceCents: 699},
			{Quantity: 1, PriceCents: 250},
		},
	}
	if got := order.SumItemsCents(); got != 1648 {
		t.Fatalf("expected 1648, got %d", got)
	}
}

func TestValidEmail(t *testing.T) {
	valid := []string{"a@b.com", "john.doe+tag@example.org"}
	invalid := []string{"", "no-at-sign", "@missing-local"}

	for _, e := range valid {
		if !domain.ValidEmail(e) {
			t.Errorf("expected %q to be valid", e)
		}
	}
	for _, e := range invalid {
		if domain.ValidEmail(e) {
			t.Errorf("expected %q to be invalid", e)
		}
	}
}
