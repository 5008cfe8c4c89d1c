package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/weddingmoments/studio-backend/internal/docstore"
	"github.com/weddingmoments/studio-backend/internal/live"
	"github.com/weddingmoments/studio-backend/internal/logging"
	"github.com/weddingmoments/studio-backend/internal/offers/domain"
)

// Store mirrors the offers collection. Like the catalog it only changes on
// snapshots; writes go straight to the collection.
type Store struct {
	repo docstore.Collection[domain.Offer]
	feed *live.Feed[[]domain.Offer]
	now  func() time.Time
}

func NewStore(repo docstore.Collection[domain.Offer]) *Store {
	return &Store{
		repo: repo,
		feed: live.NewFeed[[]domain.Offer](),
		now:  time.Now,
	}
}

func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) Run(ctx context.Context) error {
	logger := logging.Background("offers-watch")
	return s.repo.Watch(ctx,
		func(offers []domain.Offer) {
			s.feed.Publish(offers)
		},
		func(err error) {
			logger.Error("watch_offers", err)
			s.feed.SetErr(err)
		},
	)
}

func (s *Store) Feed() *live.Feed[[]domain.Offer] {
	return s.feed
}

func (s *Store) List() []domain.Offer {
	all, _ := s.feed.Load()
	return append([]domain.Offer(nil), all...)
}

// Create stores a new offer under an id derived from its code and the
// creation time in milliseconds.
func (s *Store) Create(ctx context.Context, offer domain.Offer) (domain.Offer, error) {
	if !offer.Type.Valid() {
		return domain.Offer{}, domain.ErrInvalidType
	}

	now := s.now()
	offer.ID = OfferID(offer.Code, now)
	offer.CreatedAt = now
	offer.UpdatedAt = now

	if err := s.repo.Set(ctx, offer); err != nil {
		return domain.Offer{}, err
	}
	return offer, nil
}

func (s *Store) Update(ctx context.Context, id string, patch domain.OfferPatch) error {
	if patch.Type != nil && !patch.Type.Valid() {
		return domain.ErrInvalidType
	}
	fields := patch.Fields()
	fields["updatedAt"] = s.now()
	return mapNotFound(s.repo.Merge(ctx, id, fields))
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return mapNotFound(err)
	}
	return s.repo.Delete(ctx, id)
}

func (s *Store) ToggleActive(ctx context.Context, id string) (bool, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return false, mapNotFound(err)
	}
	next := !current.IsActive
	err = s.repo.Merge(ctx, id, map[string]any{
		"isActive":  next,
		"updatedAt": s.now(),
	})
	if err != nil {
		return false, mapNotFound(err)
	}
	return next, nil
}

// Ticker returns the text of every active ticker offer in snapshot order.
func (s *Store) Ticker() []string {
	return Split(s.List()).Ticker
}

// Badge returns the first active badge offer, or nil.
func (s *Store) Badge() *domain.Badge {
	return Split(s.List()).Badge
}

// Split derives the storefront promotions from a snapshot.
func Split(offers []domain.Offer) domain.Promotions {
	p := domain.Promotions{Ticker: []string{}}
	for _, o := range offers {
		if !o.IsActive {
			continue
		}
		switch o.Type {
		case domain.TypeTicker:
			p.Ticker = append(p.Ticker, o.Description)
		case domain.TypeBadge:
			if p.Badge == nil {
				p.Badge = &domain.Badge{ID: o.ID, Title: o.Code, MainText: o.Description}
			}
		}
	}
	return p
}

// OfferID lower-cases the code, hyphenates whitespace and appends the
// millisecond timestamp.
func OfferID(code string, at time.Time) string {
	slug := strings.Join(strings.Fields(strings.ToLower(code)), "-")
	return fmt.Sprintf("%s-%d", slug, at.UnixMilli())
}

func mapNotFound(err error) error {
	if errors.Is(err, docstore.ErrNotFound) {
		return domain.ErrOfferNotFound
	}
	return err
}
