package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

var ErrOrderNotFound = errors.New("order not found")

type CostService interface {
	// EnsureOrderCosts recomputes every entry cost and the order total
	// against the user's resolved profile and returns a new order value.
	// It never fails and never mutates its input: any failure degrades to
	// a conservative result, at worst the input returned unchanged.
	// userID overrides the order's own user for profile resolution; 0
	// defers to the order.
	EnsureOrderCosts(ctx context.Context, order *Order, userID snowflake.ID) *Order

	// RecomputeOrder loads an order, recomputes its costs and persists the
	// result. Persistence failures are returned to the caller.
	RecomputeOrder(ctx context.Context, orderID snowflake.ID) (*Order, error)

	// GetOrder is a read-only fetch with entries attached.
	GetOrder(ctx context.Context, orderID snowflake.ID) (*Order, error)
}
