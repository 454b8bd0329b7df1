package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Slganeshkarthik/AgriConnect/internal/core/domain"
)

// Product fetches one catalog entry. The backend answers with the bare
// product object, or {"error": ...} and a 404.
func (c *Client) Product(ctx context.Context, id domain.ProductID) (domain.Product, error) {
	if id == "" {
		return domain.Product{}, domain.ErrInvalidProduct
	}
	var raw json.RawMessage
	path := "/api/products/" + url.PathEscape(string(id))
	status, err := c.do(ctx, "product", http.MethodGet, path, nil, &raw)
	if err != nil {
		return domain.Product{}, err
	}
	if status != http.StatusOK {
		var env envelope
		_ = json.Unmarshal(raw, &env)
		return domain.Product{}, rejection("product", status, env)
	}
	var p domain.Product
	if err := json.Unmarshal(raw, &p); err != nil {
		return domain.Product{}, fmt.Errorf("product: decode: %w", err)
	}
	if p.ID == "" {
		p.ID = id
	}
	return p, nil
}
