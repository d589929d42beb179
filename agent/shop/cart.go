package shop

import (
	"fmt"

	"shopping-assistant/agent/catalog"
	"shopping-assistant/agent/state"
)

// The cart engine is a set of total functions over (snapshot, args): each
// returns a complete replacement state plus a Result, and never mutates its
// input. On failure the returned state is the untouched snapshot.

func addItem(cat *catalog.Catalog, st *state.ResourceState, productID string, quantity int) (*state.ResourceState, Result) {
	if quantity <= 0 {
		return st, failure(st, fmt.Sprintf("quantity must be at least 1, got %d", quantity))
	}

	product, ok := cat.FindByID(productID)
	if !ok {
		return st, failure(st, fmt.Sprintf("product not found: %s", productID))
	}

	inCart := 0
	if idx := st.FindCartItem(productID); idx >= 0 {
		inCart = st.Cart[idx].Quantity
	}
	if quantity > product.Stock || inCart+quantity > product.Stock {
		msg := fmt.Sprintf("only %d units available for %s", product.Stock, product.Name)
		if inCart > 0 {
			msg = fmt.Sprintf("%s (%d already in cart)", msg, inCart)
		}
		return st, failure(st, msg)
	}

	next := st.Clone()
	if idx := next.FindCartItem(productID); idx >= 0 {
		next.Cart[idx].Quantity += quantity
	} else {
		next.Cart = append(next.Cart, state.CartItem{
			ProductID: productID,
			Name:      product.Name,
			Quantity:  quantity,
			Price:     product.Price,
		})
	}
	return next, success(next, fmt.Sprintf("added %d x %s to cart", quantity, product.Name))
}

func removeItem(st *state.ResourceState, productID string) (*state.ResourceState, Result) {
	idx := st.FindCartItem(productID)
	if idx < 0 {
		return st, failure(st, "item not found in cart")
	}

	next := st.Clone()
	removed := next.Cart[idx]
	next.Cart = append(next.Cart[:idx], next.Cart[idx+1:]...)
	return next, success(next, fmt.Sprintf("removed %s from cart", removed.Name))
}

func updateItem(cat *catalog.Catalog, st *state.ResourceState, productID string, quantity int) (*state.ResourceState, Result) {
	idx := st.FindCartItem(productID)
	if idx < 0 {
		return st, failure(st, "item not found in cart")
	}

	// Zero or negative quantity collapses to removal.
	if quantity <= 0 {
		return removeItem(st, productID)
	}

	product, ok := cat.FindByID(productID)
	if !ok {
		return st, failure(st, fmt.Sprintf("product no longer available: %s", productID))
	}
	if quantity > product.Stock {
		return st, failure(st, fmt.Sprintf("only %d units available for %s", product.Stock, product.Name))
	}

	next := st.Clone()
	next.Cart[idx].Quantity = quantity
	return next, success(next, fmt.Sprintf("updated %s quantity to %d", product.Name, quantity))
}

func viewCart(st *state.ResourceState) Result {
	if len(st.Cart) == 0 {
		return success(st, "your cart is empty")
	}
	return success(st, fmt.Sprintf("cart has %d item(s), total %s", len(st.Cart), st.CartTotal().StringFixed(2)))
}

func clearCart(st *state.ResourceState) (*state.ResourceState, Result) {
	next := st.Clone()
	next.Cart = []state.CartItem{}
	return next, success(next, "cart cleared")
}
