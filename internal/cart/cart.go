// Package cart aggregates a visitor's selected services into a booking
// request. A cart lives only as long as its owner keeps it; nothing here is
// persisted.
package cart

import (
	"sync"

	"github.com/weddingmoments/studio-backend/internal/catalog/domain"
)

// SelectedSubService is a sub-service with its chosen quantity. Days is the
// quantity in the sub-service's own unit.
type SelectedSubService struct {
	domain.SubService
	Days int `json:"days"`
}

// Subtotal is price times quantity.
func (s SelectedSubService) Subtotal() float64 {
	return s.PricePerDay * float64(s.Days)
}

// Item is one configured service in the cart.
type Item struct {
	ServiceID   string               `json:"serviceId"`
	ServiceName string               `json:"serviceName"`
	SubServices []SelectedSubService `json:"subServices"`
	TotalPrice  float64              `json:"totalPrice"`
}

// NewItem builds an item and precomputes its total.
func NewItem(serviceID, serviceName string, subs []SelectedSubService) Item {
	item := Item{
		ServiceID:   serviceID,
		ServiceName: serviceName,
		SubServices: subs,
	}
	for _, s := range subs {
		item.TotalPrice += s.Subtotal()
	}
	return item
}

// Cart is safe for concurrent use.
type Cart struct {
	mu    sync.RWMutex
	items []Item
}

func New() *Cart {
	return &Cart{}
}

// AddOrReplace replaces the item with the same service id in place, or
// appends it.
func (c *Cart) AddOrReplace(item Item) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ServiceID == item.ServiceID {
			c.items[i] = item
			return
		}
	}
	c.items = append(c.items, item)
}

// Remove deletes the item for serviceID. Missing ids are ignored.
func (c *Cart) Remove(serviceID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.items[:0]
	for _, it := range c.items {
		if it.ServiceID != serviceID {
			kept = append(kept, it)
		}
	}
	c.items = kept
}

func (c *Cart) Clear() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
}

// Items returns a copy of the cart contents in insertion order.
func (c *Cart) Items() []Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Item(nil), c.items...)
}

func (c *Cart) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// ItemCount is the number of selected sub-services across all items.
func (c *Cart) ItemCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, it := range c.items {
		n += len(it.SubServices)
	}
	return n
}

// Total sums the precomputed item totals.
func (c *Cart) Total() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return total(c.items)
}

func total(items []Item) float64 {
	var sum float64
	for _, it := range items {
		sum += it.TotalPrice
	}
	return sum
}
