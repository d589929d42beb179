package shop

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"shopping-assistant/agent/state"
)

// Fixed 8% tax rate, not configurable in this version.
var taxRate = decimal.NewFromFloat(0.08)

// checkoutCart converts the open cart into a confirmed order and empties the
// cart, as one replacement document. Computing the order and clearing the
// cart in the same returned state means there is no reachable state where one
// happened without the other.
func checkoutCart(st *state.ResourceState, confirm bool, now time.Time) (*state.ResourceState, Result) {
	if !confirm {
		return st, failure(st, "checkout cancelled by user")
	}
	if len(st.Cart) == 0 {
		return st, failure(st, "cannot checkout with an empty cart")
	}

	subtotal := st.CartTotal()
	tax := subtotal.Mul(taxRate)
	total := subtotal.Add(tax)

	next := st.Clone()
	items := next.Cart

	order := state.Order{
		OrderID:  newOrderID(now),
		Items:    items,
		Subtotal: subtotal,
		Tax:      tax,
		Total:    total,
		Date:     now.UTC(),
		Status:   state.OrderStatusConfirmed,
	}
	next.Orders = append(next.Orders, order)
	next.Cart = []state.CartItem{}

	res := success(next, fmt.Sprintf(
		"order %s confirmed: subtotal %s, tax %s, total %s",
		order.OrderID,
		subtotal.StringFixed(2),
		tax.StringFixed(2),
		total.StringFixed(2),
	))
	res.Order = &order
	return next, res
}

// newOrderID combines wall-clock millis with a random suffix so two
// checkouts in the same millisecond still mint distinct ids.
func newOrderID(now time.Time) string {
	return fmt.Sprintf("ord-%d-%s", now.UnixMilli(), uuid.NewString()[:8])
}
