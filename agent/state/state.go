package state

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ResourceState is the working-memory document persisted per resource identity
// (customer/session id). It owns exactly two top-level keys of the stored
// document: the open cart and the append-only order history. Any sibling keys
// written by other components live outside this struct and are preserved by
// the store's merge contract.
type ResourceState struct {
	Cart   []CartItem `json:"cart"`
	Orders []Order    `json:"orders"`
}

// CartItem is one line of the open cart. Name and Price are denormalized from
// the catalog at the moment the item was added.
type CartItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type OrderStatus string

const (
	// OrderStatusConfirmed is the only status minted by checkout; no
	// cancellation or refund states are modeled.
	OrderStatusConfirmed OrderStatus = "confirmed"
)

// Order is an immutable snapshot of a checked-out cart. Items is an
// independent copy; later cart mutations never reach a placed order.
type Order struct {
	OrderID  string          `json:"order_id"`
	Items    []CartItem      `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
	Date     time.Time       `json:"date"`
	Status   OrderStatus     `json:"status"`
}

var (
	ErrNilResourceState = errors.New("resource state is nil")
	ErrInvalidResource  = errors.New("resource id is empty")
	ErrStateNotFound    = errors.New("resource state not found")
)

func NewResourceState() *ResourceState {
	return &ResourceState{
		Cart:   []CartItem{},
		Orders: []Order{},
	}
}

// Clone deep-copies the state so engines can build a replacement document
// without mutating the snapshot they read.
func (s *ResourceState) Clone() *ResourceState {
	if s == nil {
		return NewResourceState()
	}
	out := &ResourceState{
		Cart:   make([]CartItem, len(s.Cart)),
		Orders: make([]Order, len(s.Orders)),
	}
	copy(out.Cart, s.Cart)
	for i, o := range s.Orders {
		items := make([]CartItem, len(o.Items))
		copy(items, o.Items)
		o.Items = items
		out.Orders[i] = o
	}
	return out
}

// CartTotal is the full-precision sum of price*quantity over the open cart.
// Rounding to two decimals happens only at presentation.
func (s *ResourceState) CartTotal() decimal.Decimal {
	total := decimal.Zero
	if s == nil {
		return total
	}
	for _, item := range s.Cart {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// FindCartItem returns the index of the cart line for productID, or -1.
func (s *ResourceState) FindCartItem(productID string) int {
	if s == nil {
		return -1
	}
	for i, item := range s.Cart {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

func (s *ResourceState) Validate() error {
	if s == nil {
		return ErrNilResourceState
	}
	seen := make(map[string]struct{}, len(s.Cart))
	for _, item := range s.Cart {
		if item.ProductID == "" {
			return errors.New("cart item has empty product id")
		}
		if _, dup := seen[item.ProductID]; dup {
			return fmt.Errorf("duplicate cart line for product %s", item.ProductID)
		}
		seen[item.ProductID] = struct{}{}
		if item.Quantity < 1 {
			return fmt.Errorf("cart line %s has quantity %d", item.ProductID, item.Quantity)
		}
		if item.Price.IsNegative() {
			return fmt.Errorf("cart line %s has negative price", item.ProductID)
		}
	}
	for _, o := range s.Orders {
		if o.OrderID == "" {
			return errors.New("order has empty id")
		}
		if o.Subtotal.IsNegative() || o.Tax.IsNegative() || o.Total.IsNegative() {
			return fmt.Errorf("order %s has negative totals", o.OrderID)
		}
	}
	return nil
}
