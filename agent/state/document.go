package state

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const (
	docKeyCart   = "cart"
	docKeyOrders = "orders"
)

// CommitUpdate carries the only document keys the engines are allowed to
// replace. A commit is always a complete replacement of both keys, never a
// partial patch of either.
type CommitUpdate struct {
	Cart   []CartItem `json:"cart"`
	Orders []Order    `json:"orders"`
}

// MergeDocument applies update onto an existing raw document under the
// shallow-merge contract: only the cart and orders keys are overwritten,
// every sibling top-level key is carried through byte-for-byte. An empty or
// missing existing document merges onto an empty object.
func MergeDocument(existing json.RawMessage, update CommitUpdate) (json.RawMessage, error) {
	doc := map[string]json.RawMessage{}
	trimmed := bytes.TrimSpace(existing)
	if len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("decode existing document: %w", err)
		}
	}

	cart := update.Cart
	if cart == nil {
		cart = []CartItem{}
	}
	orders := update.Orders
	if orders == nil {
		orders = []Order{}
	}

	rawCart, err := json.Marshal(cart)
	if err != nil {
		return nil, fmt.Errorf("marshal cart: %w", err)
	}
	rawOrders, err := json.Marshal(orders)
	if err != nil {
		return nil, fmt.Errorf("marshal orders: %w", err)
	}
	doc[docKeyCart] = rawCart
	doc[docKeyOrders] = rawOrders

	merged, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal merged document: %w", err)
	}
	return merged, nil
}

// DecodeDocument extracts the engine-owned keys from a raw stored document.
// Unknown sibling keys are ignored here; they are the store's concern.
func DecodeDocument(raw json.RawMessage) (*ResourceState, error) {
	st := NewResourceState()
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return st, nil
	}
	if err := json.Unmarshal(trimmed, st); err != nil {
		return nil, fmt.Errorf("unmarshal resource state: %w", err)
	}
	if st.Cart == nil {
		st.Cart = []CartItem{}
	}
	if st.Orders == nil {
		st.Orders = []Order{}
	}
	if err := st.Validate(); err != nil {
		return nil, fmt.Errorf("invalid resource state loaded from store: %w", err)
	}
	return st, nil
}
