package tool

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"shopping-assistant/agent/catalog"
	"shopping-assistant/agent/shop"
	"shopping-assistant/agent/state"
)

func newTestExecutor(t *testing.T) Executor {
	t.Helper()

	cat := catalog.New([]catalog.Product{
		{ID: "p1", Name: "Widget", Description: "a widget", Price: decimal.NewFromFloat(10), Category: "tools", Stock: 5},
		{ID: "p2", Name: "Gadget", Description: "a gadget", Price: decimal.NewFromFloat(3.25), Category: "tools", Stock: 2},
	})
	svc, err := shop.NewService(cat, state.NewMemoryStore())
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	return NewExecutor(svc, "cust-1")
}

func TestDefinitionsCoverAllTools(t *testing.T) {
	t.Parallel()

	defs := Definitions()
	if len(defs) != 7 {
		t.Fatalf("expected 7 tool definitions, got %d", len(defs))
	}
	names := make(map[string]bool, len(defs))
	for _, d := range defs {
		names[d.Function.Name] = true
	}
	for _, want := range []string{
		ToolSearchProducts, ToolAddToCart, ToolRemoveFromCart,
		ToolUpdateCartItem, ToolViewCart, ToolClearCart, ToolCheckout,
	} {
		if !names[want] {
			t.Fatalf("missing tool definition: %s", want)
		}
	}
}

func TestExecutorUnknownToolFallback(t *testing.T) {
	t.Parallel()

	exec := newTestExecutor(t)
	out, err := exec(context.Background(), "time_travel", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Error == "" || !strings.Contains(out.Error, "unavailable") {
		t.Fatalf("unexpected fallback: %#v", out)
	}
}

func TestExecutorSearch(t *testing.T) {
	t.Parallel()

	exec := newTestExecutor(t)
	out, err := exec(context.Background(), ToolSearchProducts, map[string]any{
		"query":     "widget",
		"max_price": 20.0,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result, ok := out.Result.(SearchOutput)
	if !ok {
		t.Fatalf("unexpected result type: %T", out.Result)
	}
	if result.TotalMatches != 1 || result.Products[0].ID != "p1" {
		t.Fatalf("unexpected search result: %#v", result)
	}
	if !strings.Contains(result.Message, "found 1") {
		t.Fatalf("unexpected message: %s", result.Message)
	}
}

func TestExecutorSearchNoMatches(t *testing.T) {
	t.Parallel()

	exec := newTestExecutor(t)
	out, err := exec(context.Background(), ToolSearchProducts, map[string]any{"query": "teapot"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result := out.Result.(SearchOutput)
	if result.TotalMatches != 0 || result.Message != "no matching products found" {
		t.Fatalf("unexpected result: %#v", result)
	}
}

func TestExecutorAddMissingProductID(t *testing.T) {
	t.Parallel()

	exec := newTestExecutor(t)
	out, err := exec(context.Background(), ToolAddToCart, map[string]any{"quantity": 1.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.Error, "product_id is required") {
		t.Fatalf("unexpected error field: %s", out.Error)
	}
}

func TestExecutorAddNonIntegerQuantity(t *testing.T) {
	t.Parallel()

	exec := newTestExecutor(t)
	out, err := exec(context.Background(), ToolAddToCart, map[string]any{
		"product_id": "p1",
		"quantity":   1.5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.Error, "must be an integer") {
		t.Fatalf("unexpected error field: %s", out.Error)
	}
}

func TestExecutorAddDefaultsQuantityToOne(t *testing.T) {
	t.Parallel()

	exec := newTestExecutor(t)
	out, err := exec(context.Background(), ToolAddToCart, map[string]any{"product_id": "p1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res, ok := out.Result.(shop.Result)
	if !ok {
		t.Fatalf("unexpected result type: %T", out.Result)
	}
	if !res.Success || len(res.Cart) != 1 || res.Cart[0].Quantity != 1 {
		t.Fatalf("unexpected result: %#v", res)
	}
}

func TestExecutorBusinessFailureStaysInsideResult(t *testing.T) {
	t.Parallel()

	exec := newTestExecutor(t)
	out, err := exec(context.Background(), ToolAddToCart, map[string]any{
		"product_id": "p1",
		"quantity":   99.0,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Error != "" {
		t.Fatalf("business failure must not use the error field: %s", out.Error)
	}
	res := out.Result.(shop.Result)
	if res.Success {
		t.Fatal("expected stock failure")
	}
	if !strings.Contains(res.Message, "only 5 units available") {
		t.Fatalf("unexpected message: %s", res.Message)
	}
}

func TestExecutorUpdateRequiresQuantity(t *testing.T) {
	t.Parallel()

	exec := newTestExecutor(t)
	out, err := exec(context.Background(), ToolUpdateCartItem, map[string]any{"product_id": "p1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.Error, "quantity is required") {
		t.Fatalf("unexpected error field: %s", out.Error)
	}
}

func TestExecutorCheckoutFlow(t *testing.T) {
	t.Parallel()

	exec := newTestExecutor(t)
	ctx := context.Background()

	if _, err := exec(ctx, ToolAddToCart, map[string]any{"product_id": "p1", "quantity": 2.0}); err != nil {
		t.Fatalf("add: %v", err)
	}

	// Missing confirm defaults to false: cancelled, nothing ordered.
	out, err := exec(ctx, ToolCheckout, nil)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if res := out.Result.(shop.Result); res.Success {
		t.Fatal("expected cancellation without confirm")
	}

	out, err = exec(ctx, ToolCheckout, map[string]any{"confirm": true})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	res := out.Result.(shop.Result)
	if !res.Success || res.Order == nil {
		t.Fatalf("unexpected result: %#v", res)
	}
	if !res.Order.Total.Equal(decimal.RequireFromString("21.6")) {
		t.Fatalf("total = %s, want 21.6", res.Order.Total)
	}

	out, err = exec(ctx, ToolViewCart, nil)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if view := out.Result.(shop.Result); len(view.Cart) != 0 {
		t.Fatalf("cart not empty after checkout: %#v", view.Cart)
	}
}

func TestExecutorClearCart(t *testing.T) {
	t.Parallel()

	exec := newTestExecutor(t)
	ctx := context.Background()

	if _, err := exec(ctx, ToolAddToCart, map[string]any{"product_id": "p2"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	out, err := exec(ctx, ToolClearCart, nil)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	res := out.Result.(shop.Result)
	if !res.Success || len(res.Cart) != 0 || !res.CartTotal.Equal(decimal.Zero) {
		t.Fatalf("unexpected result: %#v", res)
	}
}
