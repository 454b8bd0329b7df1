package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Slganeshkarthik/AgriConnect/internal/api/metrics"
	"github.com/Slganeshkarthik/AgriConnect/internal/core/domain"
	"github.com/Slganeshkarthik/AgriConnect/internal/core/ports"
)

// CartKey is the local storage key holding the cart snapshot.
const CartKey = "cart"

// CartStore owns the shopper's cart and writes every mutation through to
// local storage. Mutations are serialised; a mutation the storage backend
// rejects is not applied.
type CartStore struct {
	mu    sync.Mutex
	kv    ports.KeyValueStore
	items []domain.LineItem
	log   zerolog.Logger
}

// NewCartStore builds a store and loads the persisted snapshot. An absent or
// unreadable snapshot yields an empty cart.
func NewCartStore(ctx context.Context, kv ports.KeyValueStore, log zerolog.Logger) *CartStore {
	s := &CartStore{kv: kv, log: log.With().Str("component", "cart").Logger()}
	s.Load(ctx)
	return s
}

// Load replaces the in-memory cart with the persisted snapshot. It never
// fails: problems are logged and leave the cart empty.
func (s *CartStore) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	raw, err := s.kv.Get(ctx, CartKey)
	switch {
	case errors.Is(err, domain.ErrKeyNotFound):
		s.log.Debug().Msg("no persisted cart, starting empty")
		return
	case err != nil:
		s.log.Warn().Err(err).Msg("cart snapshot unreadable, starting empty")
		return
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		s.log.Warn().Err(err).Msg("cart snapshot corrupt, starting empty")
		return
	}
	items := make([]domain.LineItem, 0, len(elems))
	for i, elem := range elems {
		var it domain.LineItem
		if err := json.Unmarshal(elem, &it); err != nil {
			s.log.Warn().Err(err).Int("index", i).Msg("unreadable cart line dropped")
			continue
		}
		items = append(items, it)
	}
	s.items = normalize(items)
	if len(s.items) != len(elems) {
		s.log.Warn().Int("stored", len(elems)).Int("kept", len(s.items)).Msg("cart snapshot normalised")
	}
}

// AddItem adds quantity units of p, merging into an existing line with the
// same id.
func (s *CartStore) AddItem(ctx context.Context, p domain.Product, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("add item: %w", domain.ErrInvalidQuantity)
	}
	if p.ID == "" {
		return fmt.Errorf("add item: %w", domain.ErrInvalidProduct)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Line quantities are bounded by the cart count, so this also keeps every
	// line at or above 1.
	if countOf(s.items) > math.MaxInt-quantity {
		return fmt.Errorf("add item: %w", domain.ErrInvalidQuantity)
	}

	next := cloneItems(s.items)
	if i := indexOf(next, p.ID); i >= 0 {
		next[i].Quantity += quantity
	} else {
		next = append(next, domain.LineItem{Product: p.Clone(), Quantity: quantity})
	}
	return s.commit(ctx, "add", next)
}

// RemoveItem drops the line with the given id. Removing an absent id is a
// no-op.
func (s *CartStore) RemoveItem(ctx context.Context, id domain.ProductID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(ctx, id)
}

// SetQuantity overwrites the quantity of a line. A quantity of zero or less
// removes the line; an absent id is a no-op.
func (s *CartStore) SetQuantity(ctx context.Context, id domain.ProductID, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		return s.removeLocked(ctx, id)
	}
	i := indexOf(s.items, id)
	if i < 0 {
		return nil
	}
	next := cloneItems(s.items)
	next[i].Quantity = quantity
	return s.commit(ctx, "set_quantity", next)
}

// Clear empties the cart and deletes the persisted snapshot.
func (s *CartStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(ctx, CartKey); err != nil {
		metrics.CartPersistErrorsTotal.Inc()
		return fmt.Errorf("clear cart: %w", err)
	}
	s.items = nil
	metrics.CartMutationsTotal.WithLabelValues("clear").Inc()
	return nil
}

// Items returns a copy of the cart lines in insertion order.
func (s *CartStore) Items() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItems(s.items)
}

// Total is the sum of price times quantity over all lines.
func (s *CartStore) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, it := range s.items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// Count is the number of units in the cart.
func (s *CartStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return countOf(s.items)
}

func (s *CartStore) removeLocked(ctx context.Context, id domain.ProductID) error {
	i := indexOf(s.items, id)
	if i < 0 {
		return nil
	}
	next := make([]domain.LineItem, 0, len(s.items)-1)
	next = append(next, s.items[:i]...)
	next = append(next, s.items[i+1:]...)
	return s.commit(ctx, "remove", next)
}

// commit persists next and only then makes it the current cart. Caller holds mu.
func (s *CartStore) commit(ctx context.Context, op string, next []domain.LineItem) error {
	if next == nil {
		next = []domain.LineItem{}
	}
	raw, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("%s: encode cart: %w", op, err)
	}
	if err := s.kv.Set(ctx, CartKey, raw); err != nil {
		metrics.CartPersistErrorsTotal.Inc()
		s.log.Error().Err(err).Str("op", op).Msg("cart write-through failed, mutation discarded")
		return fmt.Errorf("%s: persist cart: %w", op, err)
	}
	s.items = next
	metrics.CartMutationsTotal.WithLabelValues(op).Inc()
	return nil
}

// normalize enforces the cart invariants on a loaded snapshot: lines without
// an id or with quantity < 1 are dropped and duplicate ids are merged into
// the first occurrence.
func normalize(items []domain.LineItem) []domain.LineItem {
	out := make([]domain.LineItem, 0, len(items))
	for _, it := range items {
		if it.ID == "" || it.Quantity < 1 {
			continue
		}
		if i := indexOf(out, it.ID); i >= 0 {
			if out[i].Quantity <= math.MaxInt-it.Quantity {
				out[i].Quantity += it.Quantity
			}
			continue
		}
		out = append(out, it)
	}
	return out
}

func countOf(items []domain.LineItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

func indexOf(items []domain.LineItem, id domain.ProductID) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneItems(items []domain.LineItem) []domain.LineItem {
	if items == nil {
		return nil
	}
	out := make([]domain.LineItem, len(items))
	for i, it := range items {
		out[i] = domain.LineItem{Product: it.Product.Clone(), Quantity: it.Quantity}
	}
	return out
}
