// Package cart implements the order-draft engine: a mutex-guarded state
// container mutated only through its action methods, with all monetary totals
// derived by a single recompute step after every mutation.
package cart

import (
	"math"
	"sync"

	"github.com/mikeMule/gebeta-client/internal/models"
)

const defaultServiceFeeRate = 0.05

// Store holds the current order draft. It is constructed explicitly and
// injected into whatever owns the session; every mutating method returns the
// resulting state snapshot. Invalid inputs (unknown ids, cross-restaurant
// adds, non-positive quantities) degrade to no-ops, never errors.
type Store struct {
	mu             sync.Mutex
	serviceFeeRate float64
	state          models.CartState
}

// NewStore creates an empty cart. A nil config falls back to the default
// service fee rate.
func NewStore(cfg *models.Config) *Store {
	rate := defaultServiceFeeRate
	if cfg != nil && cfg.ServiceFeeRate > 0 {
		rate = cfg.ServiceFeeRate
	}
	return &Store{serviceFeeRate: rate}
}

// AddItem appends a menu item to the cart, or merges quantities when the item
// is already present. Adding from a different restaurant than the cart's
// current one is silently rejected; the caller is expected to confirm with the
// user and clear the cart first.
func (s *Store) AddItem(item models.MenuItem, restaurantName string, quantity int, notes string) models.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.state.Items) > 0 && item.RestaurantID != s.state.RestaurantID {
		return s.snapshot()
	}
	if quantity < 1 {
		quantity = 1
	}

	merged := false
	for i := range s.state.Items {
		if s.state.Items[i].ID == item.ID {
			s.state.Items[i].Quantity += quantity
			if notes != "" {
				s.state.Items[i].Notes = notes
			}
			merged = true
			break
		}
	}
	if !merged {
		s.state.Items = append(s.state.Items, models.CartItem{
			ID:           item.ID,
			Name:         item.Name,
			UnitPrice:    item.Price,
			Quantity:     quantity,
			Notes:        notes,
			RestaurantID: item.RestaurantID,
		})
	}

	s.state.RestaurantID = item.RestaurantID
	s.state.RestaurantName = restaurantName
	s.recompute()
	return s.snapshot()
}

// RemoveItem drops a line item. Removing the last item resets the whole cart,
// delivery option included.
func (s *Store) RemoveItem(id string) models.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(id)
	return s.snapshot()
}

// UpdateQuantity sets a line item's quantity. A quantity of zero or less
// behaves exactly like RemoveItem.
func (s *Store) UpdateQuantity(id string, quantity int) models.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(id)
		return s.snapshot()
	}
	for i := range s.state.Items {
		if s.state.Items[i].ID == id {
			s.state.Items[i].Quantity = quantity
			s.recompute()
			break
		}
	}
	return s.snapshot()
}

// UpdateNotes replaces the notes on a line item. Totals are unaffected.
func (s *Store) UpdateNotes(id, notes string) models.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Items {
		if s.state.Items[i].ID == id {
			s.state.Items[i].Notes = notes
			break
		}
	}
	return s.snapshot()
}

// SetDeliveryOption attaches a delivery choice and reprices the cart.
func (s *Store) SetDeliveryOption(option models.DeliveryOption) models.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	opt := option
	s.state.DeliveryOption = &opt
	s.recompute()
	return s.snapshot()
}

// Clear resets the cart to its initial empty state unconditionally.
func (s *Store) Clear() models.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = models.CartState{}
	return s.snapshot()
}

// State returns a snapshot of the current cart.
func (s *Store) State() models.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// ItemCount returns the sum of line-item quantities.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ItemCount()
}

func (s *Store) removeLocked(id string) {
	items := s.state.Items[:0:0]
	for _, item := range s.state.Items {
		if item.ID != id {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		// Empty cart means full reset: the next order may well come from a
		// different restaurant with different delivery terms.
		s.state = models.CartState{}
		return
	}
	s.state.Items = items
	s.recompute()
}

// recompute derives subtotal, fees and total from the line items. Every
// mutating action funnels through here so the pricing invariants cannot drift
// between action branches.
func (s *Store) recompute() {
	subtotal := 0.0
	for _, item := range s.state.Items {
		subtotal += item.UnitPrice * float64(item.Quantity)
	}

	deliveryFee := 0.0
	if s.state.DeliveryOption != nil {
		deliveryFee = s.state.DeliveryOption.Price
	}

	s.state.Subtotal = subtotal
	s.state.ServiceFee = math.Round(subtotal * s.serviceFeeRate)
	s.state.DeliveryFee = deliveryFee
	s.state.Total = subtotal + deliveryFee + s.state.ServiceFee
}

// snapshot copies the state so callers can never mutate the store's slices
// or delivery option through a returned value.
func (s *Store) snapshot() models.CartState {
	out := s.state
	if len(s.state.Items) > 0 {
		out.Items = make([]models.CartItem, len(s.state.Items))
		copy(out.Items, s.state.Items)
	}
	if s.state.DeliveryOption != nil {
		opt := *s.state.DeliveryOption
		out.DeliveryOption = &opt
	}
	return out
}
