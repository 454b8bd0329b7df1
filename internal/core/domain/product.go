package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidProduct = errors.New("product id is required")

// ProductID is the catalog key of a product. The backend emits it either as a
// JSON string or as a number; both decode to the same string form.
type ProductID string

func (id *ProductID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ProductID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("product id: %w", err)
	}
	*id = ProductID(n.String())
	return nil
}

// Price is the unit price exactly as the catalog sent it. The raw JSON is kept
// so a persisted cart re-emits what it received; Decimal interprets it.
type Price struct {
	raw json.RawMessage
}

// NewPrice builds a numeric Price.
func NewPrice(d decimal.Decimal) Price {
	return Price{raw: json.RawMessage(d.String())}
}

// Decimal returns the numeric value of the price. Numbers and numeric strings
// parse; anything else (missing, null, text, objects) reports ok=false.
func (p Price) Decimal() (d decimal.Decimal, ok bool) {
	raw := bytes.TrimSpace(p.raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return decimal.Zero, false
	}
	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return decimal.Zero, false
		}
		text = strings.TrimSpace(text)
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// IsZero reports whether no price was supplied at all.
func (p Price) IsZero() bool {
	return len(bytes.TrimSpace(p.raw)) == 0
}

func (p Price) MarshalJSON() ([]byte, error) {
	if p.IsZero() {
		return []byte("null"), nil
	}
	return p.raw, nil
}

func (p *Price) UnmarshalJSON(b []byte) error {
	p.raw = append(json.RawMessage(nil), b...)
	return nil
}

// Product is a catalog entry as seen by the storefront. Fields other than the
// ones the cart renders are kept in Extra and written back untouched.
type Product struct {
	ID     ProductID
	Name   string
	Price  Price
	Unit   string
	Image  string
	Seller string
	Extra  map[string]json.RawMessage
}

var productKeys = [...]string{"id", "name", "price", "unit", "image", "seller"}

// Clone returns a copy that shares no mutable state with p.
func (p Product) Clone() Product {
	out := p
	out.Price = Price{raw: append(json.RawMessage(nil), p.Price.raw...)}
	if p.Extra != nil {
		out.Extra = make(map[string]json.RawMessage, len(p.Extra))
		for k, v := range p.Extra {
			out.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return out
}

func (p Product) MarshalJSON() ([]byte, error) {
	fields, err := p.fields()
	if err != nil {
		return nil, err
	}
	return json.Marshal(fields)
}

func (p *Product) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	return p.fromFields(fields)
}

func (p Product) fields() (map[string]json.RawMessage, error) {
	out := make(map[string]json.RawMessage, len(p.Extra)+len(productKeys))
	for k, v := range p.Extra {
		out[k] = v
	}
	set := func(key string, v any) error {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("product %s: %w", key, err)
		}
		out[key] = raw
		return nil
	}
	if err := set("id", string(p.ID)); err != nil {
		return nil, err
	}
	if err := set("price", p.Price); err != nil {
		return nil, err
	}
	for key, v := range map[string]string{"name": p.Name, "unit": p.Unit, "image": p.Image, "seller": p.Seller} {
		if v == "" {
			continue
		}
		if err := set(key, v); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (p *Product) fromFields(fields map[string]json.RawMessage) error {
	*p = Product{}
	if raw, ok := fields["id"]; ok {
		if err := json.Unmarshal(raw, &p.ID); err != nil {
			return err
		}
	}
	if raw, ok := fields["price"]; ok {
		p.Price = Price{raw: append(json.RawMessage(nil), raw...)}
	}
	for key, dst := range map[string]*string{"name": &p.Name, "unit": &p.Unit, "image": &p.Image, "seller": &p.Seller} {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		// Display fields are informational; a non-string value stays in Extra.
		if err := json.Unmarshal(raw, dst); err != nil {
			continue
		}
		delete(fields, key)
	}
	delete(fields, "id")
	delete(fields, "price")
	if len(fields) > 0 {
		p.Extra = fields
	}
	return nil
}
