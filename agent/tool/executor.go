package tool

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"shopping-assistant/agent/catalog"
	contractx "shopping-assistant/agent/contract"
	"shopping-assistant/agent/shop"
)

// Executor dispatches one tool call. It satisfies contract.Executor.
type Executor func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error)

func (e Executor) Execute(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error) {
	return e(ctx, tool, args)
}

var _ contractx.Executor = (Executor)(nil)

// SearchOutput is the payload of a search_products call.
type SearchOutput struct {
	Success      bool              `json:"success"`
	Message      string            `json:"message"`
	Products     []catalog.Product `json:"products"`
	TotalMatches int               `json:"total_matches"`
}

// NewExecutor binds the tool set to one resource identity. Arguments are
// validated and coerced here, once, so the engines below only ever see typed
// inputs.
func NewExecutor(svc *shop.Service, resourceID string) Executor {
	fallback := DefaultExecutor()
	return func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error) {
		switch tool {
		case ToolSearchProducts:
			return executeSearch(svc, tool, args)
		case ToolAddToCart:
			productID, err := stringArg(args, "product_id")
			if err != nil {
				return argError(tool, err), nil
			}
			quantity, err := intArg(args, "quantity", 1)
			if err != nil {
				return argError(tool, err), nil
			}
			res, err := svc.AddToCart(ctx, resourceID, productID, quantity)
			if err != nil {
				return contractx.ToolResult{}, err
			}
			return contractx.ToolResult{Tool: tool, Result: res}, nil
		case ToolRemoveFromCart:
			productID, err := stringArg(args, "product_id")
			if err != nil {
				return argError(tool, err), nil
			}
			res, err := svc.RemoveFromCart(ctx, resourceID, productID)
			if err != nil {
				return contractx.ToolResult{}, err
			}
			return contractx.ToolResult{Tool: tool, Result: res}, nil
		case ToolUpdateCartItem:
			productID, err := stringArg(args, "product_id")
			if err != nil {
				return argError(tool, err), nil
			}
			quantity, err := requiredIntArg(args, "quantity")
			if err != nil {
				return argError(tool, err), nil
			}
			res, err := svc.UpdateCartItem(ctx, resourceID, productID, quantity)
			if err != nil {
				return contractx.ToolResult{}, err
			}
			return contractx.ToolResult{Tool: tool, Result: res}, nil
		case ToolViewCart:
			res, err := svc.ViewCart(ctx, resourceID)
			if err != nil {
				return contractx.ToolResult{}, err
			}
			return contractx.ToolResult{Tool: tool, Result: res}, nil
		case ToolClearCart:
			res, err := svc.ClearCart(ctx, resourceID)
			if err != nil {
				return contractx.ToolResult{}, err
			}
			return contractx.ToolResult{Tool: tool, Result: res}, nil
		case ToolCheckout:
			confirm, err := boolArg(args, "confirm", false)
			if err != nil {
				return argError(tool, err), nil
			}
			res, err := svc.Checkout(ctx, resourceID, confirm)
			if err != nil {
				return contractx.ToolResult{}, err
			}
			return contractx.ToolResult{Tool: tool, Result: res}, nil
		default:
			return fallback(ctx, tool, args)
		}
	}
}

// DefaultExecutor answers any tool the registry does not know.
func DefaultExecutor() Executor {
	return func(ctx context.Context, tool string, _ map[string]any) (contractx.ToolResult, error) {
		return contractx.ToolResult{
			Tool:  tool,
			Error: fmt.Sprintf("tool=%s is unavailable", tool),
		}, nil
	}
}

func executeSearch(svc *shop.Service, tool string, args map[string]any) (contractx.ToolResult, error) {
	query, err := optionalStringArg(args, "query")
	if err != nil {
		return argError(tool, err), nil
	}
	category, err := optionalStringArg(args, "category")
	if err != nil {
		return argError(tool, err), nil
	}
	minPrice, err := decimalArg(args, "min_price")
	if err != nil {
		return argError(tool, err), nil
	}
	maxPrice, err := decimalArg(args, "max_price")
	if err != nil {
		return argError(tool, err), nil
	}
	limit, err := intArg(args, "limit", 0)
	if err != nil {
		return argError(tool, err), nil
	}

	found := svc.Search(catalog.Filter{
		Query:    query,
		Category: category,
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Limit:    limit,
	})

	out := SearchOutput{
		Success:      true,
		Message:      fmt.Sprintf("found %d matching product(s), showing %d", found.TotalMatches, len(found.Products)),
		Products:     found.Products,
		TotalMatches: found.TotalMatches,
	}
	if found.TotalMatches == 0 {
		out.Message = "no matching products found"
	}
	return contractx.ToolResult{Tool: tool, Result: out}, nil
}

func argError(tool string, err error) contractx.ToolResult {
	return contractx.ToolResult{Tool: tool, Error: err.Error()}
}

func stringArg(args map[string]any, key string) (string, error) {
	raw, ok := args[key]
	if !ok {
		return "", fmt.Errorf("%s is required", key)
	}
	s, ok := raw.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("%s must be a non-empty string", key)
	}
	return s, nil
}

func optionalStringArg(args map[string]any, key string) (string, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string", key)
	}
	return s, nil
}

func requiredIntArg(args map[string]any, key string) (int, error) {
	if _, ok := args[key]; !ok {
		return 0, fmt.Errorf("%s is required", key)
	}
	return intArg(args, key, 0)
}

// intArg accepts JSON numbers (decoded as float64) and Go ints.
func intArg(args map[string]any, key string, def int) (int, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return def, nil
	}
	switch v := raw.(type) {
	case float64:
		n := int(v)
		if float64(n) != v {
			return 0, fmt.Errorf("%s must be an integer", key)
		}
		return n, nil
	case int:
		return v, nil
	default:
		return 0, fmt.Errorf("%s must be an integer", key)
	}
}

func decimalArg(args map[string]any, key string) (*decimal.Decimal, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil, nil
	}
	switch v := raw.(type) {
	case float64:
		d := decimal.NewFromFloat(v)
		return &d, nil
	case int:
		d := decimal.NewFromInt(int64(v))
		return &d, nil
	default:
		return nil, fmt.Errorf("%s must be a number", key)
	}
}

func boolArg(args map[string]any, key string, def bool) (bool, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return def, nil
	}
	b, ok := raw.(bool)
	if !ok {
		return false, fmt.Errorf("%s must be a boolean", key)
	}
	return b, nil
}
