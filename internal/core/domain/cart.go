package domain

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrInvalidQuantity = errors.New("quantity must be a positive integer")

// LineItem is one product in the cart together with how many units of it the
// shopper wants. Quantity is always >= 1 inside a cart.
type LineItem struct {
	Product
	Quantity int
}

// Subtotal is unit price times quantity. A price that cannot be read as a
// number contributes zero.
func (li LineItem) Subtotal() decimal.Decimal {
	price, ok := li.Price.Decimal()
	if !ok {
		return decimal.Zero
	}
	return price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// The persisted shape is the product object with a "quantity" key added, the
// same layout the storefront has always written to local storage.
func (li LineItem) MarshalJSON() ([]byte, error) {
	fields, err := li.Product.fields()
	if err != nil {
		return nil, err
	}
	qty, err := json.Marshal(li.Quantity)
	if err != nil {
		return nil, err
	}
	fields["quantity"] = qty
	return json.Marshal(fields)
}

func (li *LineItem) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	var qty int
	if raw, ok := fields["quantity"]; ok {
		if err := json.Unmarshal(raw, &qty); err != nil {
			return fmt.Errorf("line item quantity: %w", err)
		}
		delete(fields, "quantity")
	}
	var p Product
	if err := p.fromFields(fields); err != nil {
		return err
	}
	*li = LineItem{Product: p, Quantity: qty}
	return nil
}
