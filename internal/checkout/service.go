// Package checkout turns a visitor's selections into a priced booking
// request and hands it to the studio.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"

	bookings "github.com/weddingmoments/studio-backend/internal/bookings/domain"
	"github.com/weddingmoments/studio-backend/internal/cart"
	"github.com/weddingmoments/studio-backend/internal/catalog/domain"
	catalog "github.com/weddingmoments/studio-backend/internal/catalog/service"
	"github.com/weddingmoments/studio-backend/internal/logging"
	"github.com/weddingmoments/studio-backend/internal/notify"
)

var ErrEmptyCart = errors.New("cart is empty")

// Catalog is the live storefront catalog; *catalog.Store satisfies it.
type Catalog interface {
	Get(id string, view catalog.View) (domain.Service, error)
}

// BookingRecorder logs handed-off requests for the admin dashboard.
type BookingRecorder interface {
	Record(ctx context.Context, items []cart.Item, channel bookings.Channel) ([]*bookings.BookingRequest, error)
}

// Line is one service in a submitted cart. Quantities are keyed by
// sub-service id.
type Line struct {
	ServiceID  string         `json:"serviceId" binding:"required"`
	Quantities map[string]int `json:"quantities" binding:"required"`
}

type Result struct {
	cart.Handoff
	Items      []cart.Item `json:"items"`
	BookingIDs []string    `json:"bookingIds,omitempty"`
}

type Service struct {
	catalog  Catalog
	recorder BookingRecorder
	notifier notify.Notifier
	contact  cart.Contact
	pending  sync.WaitGroup
}

// NewService accepts a nil recorder when no database is configured.
func NewService(cat Catalog, recorder BookingRecorder, notifier notify.Notifier, contact cart.Contact) *Service {
	if notifier == nil {
		notifier = notify.NopNotifier{}
	}
	return &Service{
		catalog:  cat,
		recorder: recorder,
		notifier: notifier,
		contact:  contact,
	}
}

func (s *Service) Contact() cart.Contact {
	return s.contact
}

// Quote prices one service's selection against the live storefront catalog.
// Sub-services keep the catalog's order; zero quantities are ignored.
func (s *Service) Quote(serviceID string, quantities map[string]int) (cart.Item, error) {
	svc, err := s.catalog.Get(serviceID, catalog.ViewStorefront)
	if err != nil {
		return cart.Item{}, err
	}

	for id := range quantities {
		if _, ok := svc.SubService(id); !ok {
			return cart.Item{}, fmt.Errorf("%w: %s", cart.ErrUnknownSubService, id)
		}
	}

	sel := cart.NewSelection(svc)
	for _, sub := range svc.SubServices {
		if err := sel.SetQuantity(sub.ID, quantities[sub.ID]); err != nil {
			return cart.Item{}, err
		}
	}
	return sel.Item()
}

// Checkout re-prices every line, composes the handoff and records it. A
// later line for the same service replaces an earlier one. Recording and
// notification failures are logged; the visitor still gets the handoff.
// The studio notification is sent after Checkout returns.
func (s *Service) Checkout(ctx context.Context, lines []Line, channel bookings.Channel) (Result, error) {
	if channel == "" {
		channel = bookings.ChannelWhatsApp
	}
	if !channel.Valid() {
		return Result{}, bookings.ErrInvalidChannel
	}

	c := cart.New()
	for _, line := range lines {
		item, err := s.Quote(line.ServiceID, line.Quantities)
		if err != nil {
			return Result{}, fmt.Errorf("service %s: %w", line.ServiceID, err)
		}
		c.AddOrReplace(item)
	}
	if c.Len() == 0 {
		return Result{}, ErrEmptyCart
	}

	res := Result{Handoff: c.Handoff(s.contact), Items: c.Items()}
	logger := logging.NewLogger(ctx)

	if s.recorder != nil {
		recorded, err := s.recorder.Record(ctx, res.Items, channel)
		if err != nil {
			logger.Error("record_booking", err)
		}
		for _, r := range recorded {
			res.BookingIDs = append(res.BookingIDs, r.ID)
		}
	}

	// The request context is cancelled once the response is written; keep
	// its values (request id) but not its deadline.
	nctx := context.WithoutCancel(ctx)
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.notifier.NotifyBooking(nctx, res.Message); err != nil {
			logger.Warnf("notify_booking", "studio notification failed: %v", err)
		}
	}()

	return res, nil
}

// Wait blocks until every studio notification started by Checkout has
// finished.
func (s *Service) Wait() {
	s.pending.Wait()
}
