package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math"
	"sync"

	"techsklep/mobile/internal/domain"
	"techsklep/mobile/internal/storage"
)

// snapshotKey is the single device-storage key the cart persists under.
const snapshotKey = "cart"

// Store is the single source of truth for the in-progress cart. It holds at
// most one line item per product id, keeps items in the order they were
// added, and writes a full snapshot to device storage after every mutation.
// The in-memory state stays authoritative even when persistence fails.
type Store struct {
	mu    sync.Mutex
	kv    storage.KV
	items []domain.CartLineItem
}

// New seeds the store from the persisted snapshot. A missing or corrupt
// snapshot starts an empty cart rather than failing.
func New(ctx context.Context, kv storage.KV) *Store {
	s := &Store{kv: kv}
	data, err := kv.Get(ctx, snapshotKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("[cart] loading snapshot: %v", err)
		}
		return s
	}
	var items []domain.CartLineItem
	if err := json.Unmarshal(data, &items); err != nil {
		log.Printf("[cart] corrupt snapshot, starting empty: %v", err)
		return s
	}
	s.items = sanitize(items)
	return s
}

// sanitize drops malformed snapshot rows: duplicate ids collapse into the
// first occurrence and quantities below 1 are clamped.
func sanitize(items []domain.CartLineItem) []domain.CartLineItem {
	seen := make(map[int]int, len(items))
	out := make([]domain.CartLineItem, 0, len(items))
	for _, item := range items {
		if item.Quantity < 1 {
			item.Quantity = 1
		}
		if idx, ok := seen[item.ID]; ok {
			out[idx].Quantity += item.Quantity
			continue
		}
		seen[item.ID] = len(out)
		out = append(out, item)
	}
	return out
}

// AddToCart merges the product into the cart: an existing line item grows by
// quantity, a new product appends a line item at the end. Quantities below 1
// are treated as 1. It always succeeds.
func (s *Store) AddToCart(ctx context.Context, product domain.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == product.ID {
			s.items[i].Quantity += quantity
			s.persist(ctx)
			return
		}
	}
	s.items = append(s.items, domain.CartLineItem{Product: product, Quantity: quantity})
	s.persist(ctx)
}

// RemoveFromCart deletes the line item for productID. Removing an id that is
// not in the cart is a no-op.
func (s *Store) RemoveFromCart(ctx context.Context, productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persist(ctx)
			return
		}
	}
}

// UpdateQuantity sets the line item's quantity to max(1, quantity). Removal
// is an explicit separate operation, so the floor is 1, never 0. An unknown
// productID is logged and ignored.
func (s *Store) UpdateQuantity(ctx context.Context, productID int, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == productID {
			s.items[i].Quantity = quantity
			s.persist(ctx)
			return
		}
	}
	log.Printf("[cart] update for product %d not in cart", productID)
}

// ClearCart empties the cart, e.g. after a confirmed order.
func (s *Store) ClearCart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.persist(ctx)
}

// Items returns a copy of the line items in add order.
func (s *Store) Items() []domain.CartLineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]domain.CartLineItem, len(s.items))
	copy(cp, s.items)
	return cp
}

// Total is the sum of price times quantity over all line items, recomputed
// on every call. Rounding happens only at presentation, see FormattedTotal.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, item := range s.items {
		total += item.Subtotal()
	}
	return total
}

// FormattedTotal rounds the total to two decimal places for display.
func (s *Store) FormattedTotal() float64 {
	return math.Round(s.Total()*100) / 100
}

// ItemCount is the total quantity across all line items, used for the badge.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// persist writes the full snapshot. Callers hold s.mu, so writes are issued
// in mutation order and the last write always carries the newest state.
// Failures are logged and absorbed; memory stays authoritative.
func (s *Store) persist(ctx context.Context) {
	payload, err := json.Marshal(s.items)
	if err != nil {
		log.Printf("[cart] encoding snapshot: %v", err)
		return
	}
	if err := s.kv.Set(ctx, snapshotKey, payload); err != nil {
		log.Printf("[cart] saving snapshot: %v", err)
	}
}
