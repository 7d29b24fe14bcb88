// Package cart implements the client-side cart as an explicit value object:
// pure operations over an immutable snapshot plus an encode/decode pair for
// session persistence. No ambient global state.
package cart

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"

	"github.com/tiendalabs/tiendago/internal/order"
)

// Item is one accumulated cart line with the display data the presentation
// layer needs. Price here is advisory; checkout totals are recomputed
// server-side.
type Item struct {
	ProductID int64   `json:"id"`
	Name      string  `json:"nombre"`
	Price     float64 `json:"precio"`
	Quantity  int     `json:"cantidad"`
}

// Cart is a pre-submission accumulation of intended order lines. The zero
// value is an empty cart.
type Cart struct {
	Items []Item  `json:"items"`
	Total float64 `json:"total"`
}

// New returns an empty cart.
func New() Cart {
	return Cart{Items: []Item{}}
}

// Add returns a cart with the item merged in: an existing line for the same
// product accumulates quantity, otherwise the item is appended.
func Add(c Cart, it Item) Cart {
	if it.Quantity < 1 {
		it.Quantity = 1
	}
	items := make([]Item, len(c.Items))
	copy(items, c.Items)

	merged := false
	for i := range items {
		if items[i].ProductID == it.ProductID {
			items[i].Quantity += it.Quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, it)
	}
	return recompute(items)
}

// Remove returns a cart without any line for the product.
func Remove(c Cart, productID int64) Cart {
	items := make([]Item, 0, len(c.Items))
	for _, it := range c.Items {
		if it.ProductID != productID {
			items = append(items, it)
		}
	}
	return recompute(items)
}

// SetQuantity returns a cart with the product's quantity replaced. A quantity
// below one removes the line.
func SetQuantity(c Cart, productID int64, quantity int) Cart {
	if quantity < 1 {
		return Remove(c, productID)
	}
	items := make([]Item, len(c.Items))
	copy(items, c.Items)
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = quantity
		}
	}
	return recompute(items)
}

func recompute(items []Item) Cart {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(decimal.NewFromFloat(it.Price).
			Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return Cart{Items: items, Total: total.Round(2).InexactFloat64()}
}

// Checkout converts the cart into the submission shape of the order workflow.
func (c Cart) Checkout() []order.CartLine {
	lines := make([]order.CartLine, 0, len(c.Items))
	for _, it := range c.Items {
		lines = append(lines, order.CartLine{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return lines
}

// Encode serializes the cart for session persistence.
func Encode(c Cart) ([]byte, error) {
	return jsoniter.Marshal(c)
}

// Decode restores a cart persisted by Encode. Empty input yields an empty
// cart; the total is recomputed rather than trusted.
func Decode(data []byte) (Cart, error) {
	if len(data) == 0 {
		return New(), nil
	}
	var c Cart
	if err := jsoniter.Unmarshal(data, &c); err != nil {
		return New(), err
	}
	return recompute(c.Items), nil
}
