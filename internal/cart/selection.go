package cart

import (
	"errors"

	"github.com/weddingmoments/studio-backend/internal/catalog/domain"
)

var (
	ErrEmptySelection    = errors.New("no sub-service selected")
	ErrUnknownSubService = errors.New("sub-service not offered by this service")
	ErrInvalidQuantity   = errors.New("quantity must not be negative")
)

// Selection is the pending, uncommitted choice of quantities for one service.
// A sub-service is either unselected (absent) or selected with a quantity of
// at least one. Discarding a Selection discards the choice.
type Selection struct {
	service domain.Service
	days    map[string]int
	order   []string
}

func NewSelection(service domain.Service) *Selection {
	return &Selection{service: service, days: make(map[string]int)}
}

// Increment selects the sub-service at quantity 1, or adds one.
func (s *Selection) Increment(subID string) error {
	return s.SetQuantity(subID, s.days[subID]+1)
}

// Decrement removes one. From 1 the sub-service becomes unselected; from 0 it
// is a no-op.
func (s *Selection) Decrement(subID string) error {
	current := s.days[subID]
	if current == 0 {
		if _, ok := s.service.SubService(subID); !ok {
			return ErrUnknownSubService
		}
		return nil
	}
	return s.SetQuantity(subID, current-1)
}

// SetQuantity sets an explicit quantity. Zero unselects.
func (s *Selection) SetQuantity(subID string, days int) error {
	if _, ok := s.service.SubService(subID); !ok {
		return ErrUnknownSubService
	}
	if days < 0 {
		return ErrInvalidQuantity
	}

	if days == 0 {
		if _, ok := s.days[subID]; ok {
			delete(s.days, subID)
			s.order = removeID(s.order, subID)
		}
		return nil
	}

	if _, ok := s.days[subID]; !ok {
		s.order = append(s.order, subID)
	}
	s.days[subID] = days
	return nil
}

func (s *Selection) Quantity(subID string) int {
	return s.days[subID]
}

// Total is the running price of the pending selection.
func (s *Selection) Total() float64 {
	var sum float64
	for id, days := range s.days {
		sub, _ := s.service.SubService(id)
		sum += sub.PricePerDay * float64(days)
	}
	return sum
}

func (s *Selection) Empty() bool {
	return len(s.days) == 0
}

// Item converts the selection into a cart item, sub-services in the order
// they were first selected.
func (s *Selection) Item() (Item, error) {
	if s.Empty() {
		return Item{}, ErrEmptySelection
	}

	subs := make([]SelectedSubService, 0, len(s.order))
	for _, id := range s.order {
		sub, _ := s.service.SubService(id)
		subs = append(subs, SelectedSubService{SubService: sub, Days: s.days[id]})
	}
	return NewItem(s.service.ID, s.service.Name, subs), nil
}

// Commit adds the selection to c, replacing any earlier item for the same
// service.
func (s *Selection) Commit(c *Cart) (Item, error) {
	item, err := s.Item()
	if err != nil {
		return Item{}, err
	}
	c.AddOrReplace(item)
	return item, nil
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
