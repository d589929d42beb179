package tool

import (
	"github.com/openai/openai-go"
)

const (
	ToolSearchProducts = "search_products"
	ToolAddToCart      = "add_to_cart"
	ToolRemoveFromCart = "remove_from_cart"
	ToolUpdateCartItem = "update_cart_item"
	ToolViewCart       = "view_cart"
	ToolClearCart      = "clear_cart"
	ToolCheckout       = "checkout"
)

// Definitions returns the tool schemas advertised to the model. Argument
// validation against these shapes happens once, in the executor, at the
// boundary.
func Definitions() []openai.ChatCompletionToolParam {
	return []openai.ChatCompletionToolParam{
		{
			Function: openai.FunctionDefinitionParam{
				Name:        ToolSearchProducts,
				Description: openai.String("Search the product catalog. All filters are optional and combined with AND. Only in-stock products are returned."),
				Parameters: openai.FunctionParameters{
					"type": "object",
					"properties": map[string]any{
						"query":     map[string]any{"type": "string", "description": "Text matched against product name or description"},
						"category":  map[string]any{"type": "string", "description": "Exact category, case-insensitive"},
						"min_price": map[string]any{"type": "number", "description": "Inclusive lower price bound"},
						"max_price": map[string]any{"type": "number", "description": "Inclusive upper price bound"},
						"limit":     map[string]any{"type": "integer", "description": "Maximum results to return, default 10"},
					},
				},
			},
		},
		{
			Function: openai.FunctionDefinitionParam{
				Name:        ToolAddToCart,
				Description: openai.String("Add a product to the customer's cart. Fails if the product is unknown or stock is insufficient."),
				Parameters: openai.FunctionParameters{
					"type": "object",
					"properties": map[string]any{
						"product_id": map[string]any{"type": "string", "description": "Catalog product id"},
						"quantity":   map[string]any{"type": "integer", "description": "Units to add, default 1"},
					},
					"required": []string{"product_id"},
				},
			},
		},
		{
			Function: openai.FunctionDefinitionParam{
				Name:        ToolRemoveFromCart,
				Description: openai.String("Remove a product from the cart entirely."),
				Parameters: openai.FunctionParameters{
					"type": "object",
					"properties": map[string]any{
						"product_id": map[string]any{"type": "string", "description": "Catalog product id"},
					},
					"required": []string{"product_id"},
				},
			},
		},
		{
			Function: openai.FunctionDefinitionParam{
				Name:        ToolUpdateCartItem,
				Description: openai.String("Set the quantity of a product already in the cart. Quantity 0 removes the item."),
				Parameters: openai.FunctionParameters{
					"type": "object",
					"properties": map[string]any{
						"product_id": map[string]any{"type": "string", "description": "Catalog product id"},
						"quantity":   map[string]any{"type": "integer", "description": "New quantity; 0 or less removes the item"},
					},
					"required": []string{"product_id", "quantity"},
				},
			},
		},
		{
			Function: openai.FunctionDefinitionParam{
				Name:        ToolViewCart,
				Description: openai.String("Show the current cart contents and total."),
				Parameters: openai.FunctionParameters{
					"type":       "object",
					"properties": map[string]any{},
				},
			},
		},
		{
			Function: openai.FunctionDefinitionParam{
				Name:        ToolClearCart,
				Description: openai.String("Empty the cart. Always succeeds."),
				Parameters: openai.FunctionParameters{
					"type":       "object",
					"properties": map[string]any{},
				},
			},
		},
		{
			Function: openai.FunctionDefinitionParam{
				Name:        ToolCheckout,
				Description: openai.String("Convert the cart into a confirmed order. Only call with confirm=true after the customer explicitly confirms."),
				Parameters: openai.FunctionParameters{
					"type": "object",
					"properties": map[string]any{
						"confirm": map[string]any{"type": "boolean", "description": "Whether the customer confirmed the purchase"},
					},
					"required": []string{"confirm"},
				},
			},
		},
	}
}
