package shop

import (
	"github.com/shopspring/decimal"

	"shopping-assistant/agent/state"
)

// Result is the flat outcome of every cart/checkout operation. Business-rule
// failures (unknown product, insufficient stock, item not in cart, empty cart
// at checkout) set Success=false with a readable message and leave state
// untouched; they are never Go errors.
type Result struct {
	Success   bool             `json:"success"`
	Message   string           `json:"message"`
	Cart      []state.CartItem `json:"cart"`
	CartTotal decimal.Decimal  `json:"cart_total"`
	Order     *state.Order     `json:"order,omitempty"`
}

func failure(st *state.ResourceState, message string) Result {
	return Result{
		Success:   false,
		Message:   message,
		Cart:      st.Cart,
		CartTotal: st.CartTotal(),
	}
}

func success(st *state.ResourceState, message string) Result {
	return Result{
		Success:   true,
		Message:   message,
		Cart:      st.Cart,
		CartTotal: st.CartTotal(),
	}
}
