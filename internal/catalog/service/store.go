package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/weddingmoments/studio-backend/internal/catalog/domain"
	"github.com/weddingmoments/studio-backend/internal/docstore"
	"github.com/weddingmoments/studio-backend/internal/live"
	"github.com/weddingmoments/studio-backend/internal/logging"
)

// View selects which services a listing includes.
type View int

const (
	// ViewAdmin lists every service.
	ViewAdmin View = iota
	// ViewStorefront lists only active services.
	ViewStorefront
)

// Store is the catalog as last confirmed by the remote collection. Its list
// only changes when a snapshot arrives; writes go straight to the collection.
type Store struct {
	repo docstore.Collection[domain.Service]
	feed *live.Feed[[]domain.Service]
	now  func() time.Time
}

func NewStore(repo docstore.Collection[domain.Service]) *Store {
	return &Store{
		repo: repo,
		feed: live.NewFeed[[]domain.Service](),
		now:  time.Now,
	}
}

// WithClock replaces the time source used for timestamps.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Run keeps the in-memory catalog in sync until ctx is done.
func (s *Store) Run(ctx context.Context) error {
	logger := logging.Background("catalog-watch")
	return s.repo.Watch(ctx,
		func(services []domain.Service) {
			s.feed.Publish(services)
		},
		func(err error) {
			logger.Error("watch_services", err)
			s.feed.SetErr(err)
		},
	)
}

func (s *Store) Feed() *live.Feed[[]domain.Service] {
	return s.feed
}

// List returns the current snapshot filtered for view.
func (s *Store) List(view View) []domain.Service {
	all, _ := s.feed.Load()
	return Filter(all, view)
}

// Filter applies view to a snapshot.
func Filter(all []domain.Service, view View) []domain.Service {
	out := make([]domain.Service, 0, len(all))
	for _, svc := range all {
		if view == ViewStorefront && !svc.Active() {
			continue
		}
		out = append(out, svc)
	}
	return out
}

func (s *Store) Get(id string, view View) (domain.Service, error) {
	for _, svc := range s.List(view) {
		if svc.ID == id {
			return svc, nil
		}
	}
	return domain.Service{}, domain.ErrServiceNotFound
}

// Create persists a new service keyed by its id, deriving the id from the
// name when missing. Timestamps are always set here.
func (s *Store) Create(ctx context.Context, svc domain.Service) (domain.Service, error) {
	if svc.ID == "" {
		svc.ID = domain.Slugify(svc.Name)
	}
	if err := domain.CheckSubServiceIDs(svc.SubServices); err != nil {
		return domain.Service{}, err
	}

	_, err := s.repo.Get(ctx, svc.ID)
	switch {
	case err == nil:
		return domain.Service{}, domain.ErrServiceExists
	case !errors.Is(err, docstore.ErrNotFound):
		return domain.Service{}, fmt.Errorf("check existing service: %w", err)
	}

	for i := range svc.SubServices {
		if svc.SubServices[i].ID == "" {
			svc.SubServices[i].ID = newSubServiceID()
		}
	}

	now := s.now()
	svc.CreatedAt = now
	svc.UpdatedAt = now
	if svc.IsActive == nil {
		svc.IsActive = domain.Bool(true)
	}

	if err := s.repo.Set(ctx, svc); err != nil {
		return domain.Service{}, err
	}
	return svc, nil
}

// Update merges the patch into the stored service and stamps updatedAt.
func (s *Store) Update(ctx context.Context, id string, patch domain.ServicePatch) error {
	fields := patch.Fields()
	if subs, ok := fields["subServices"].([]domain.SubService); ok {
		if err := domain.CheckSubServiceIDs(subs); err != nil {
			return err
		}
		for i := range subs {
			if subs[i].ID == "" {
				subs[i].ID = newSubServiceID()
			}
		}
	}
	fields["updatedAt"] = s.now()

	return mapNotFound(s.repo.Merge(ctx, id, fields))
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return mapNotFound(err)
	}
	return s.repo.Delete(ctx, id)
}

// ToggleActive flips the stored isActive flag and returns the new value.
func (s *Store) ToggleActive(ctx context.Context, id string) (bool, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return false, mapNotFound(err)
	}

	next := !current.Active()
	err = s.repo.Merge(ctx, id, map[string]any{
		"isActive":  next,
		"updatedAt": s.now(),
	})
	if err != nil {
		return false, mapNotFound(err)
	}
	return next, nil
}

// UpdatePrices applies bulk price edits, keyed by service id then sub-service
// id. Each touched service is written once. It returns the number of services
// written.
func (s *Store) UpdatePrices(ctx context.Context, changes map[string]map[string]float64) (int, error) {
	type pending struct {
		id   string
		subs []domain.SubService
	}
	var writes []pending

	// validate everything before writing anything
	for serviceID, prices := range changes {
		svc, err := s.repo.Get(ctx, serviceID)
		if err != nil {
			return 0, mapNotFound(err)
		}

		subs := append([]domain.SubService(nil), svc.SubServices...)
		for subID, price := range prices {
			if price < 0 || math.IsNaN(price) {
				return 0, domain.ErrNegativePrice
			}
			idx := indexOfSub(subs, subID)
			if idx < 0 {
				return 0, fmt.Errorf("%s/%s: %w", serviceID, subID, domain.ErrSubServiceNotFound)
			}
			subs[idx].PricePerDay = price
		}
		writes = append(writes, pending{id: serviceID, subs: subs})
	}

	written := 0
	for _, w := range writes {
		err := s.repo.Merge(ctx, w.id, map[string]any{
			"subServices": w.subs,
			"updatedAt":   s.now(),
		})
		if err != nil {
			return written, mapNotFound(err)
		}
		written++
	}
	return written, nil
}

// Stats recomputes the aggregate figures from the current snapshot.
func (s *Store) Stats() domain.Stats {
	return ComputeStats(s.List(ViewAdmin))
}

// ComputeStats aggregates a catalog. Every field is zero for an empty one.
func ComputeStats(services []domain.Service) domain.Stats {
	st := domain.Stats{TotalServices: len(services)}

	var sum float64
	first := true
	for _, svc := range services {
		if svc.Active() {
			st.ActiveServices++
		}
		for _, sub := range svc.SubServices {
			st.TotalSubServices++
			sum += sub.PricePerDay
			if first || sub.PricePerDay > st.HighestPrice {
				st.HighestPrice = sub.PricePerDay
			}
			if first || sub.PricePerDay < st.LowestPrice {
				st.LowestPrice = sub.PricePerDay
			}
			first = false
		}
	}

	st.InactiveServices = st.TotalServices - st.ActiveServices
	if st.TotalSubServices > 0 {
		st.AveragePricePerDay = math.Round(sum / float64(st.TotalSubServices))
	}
	return st
}

// ResetToDefaults overwrites the whole catalog with the demo seed set.
func (s *Store) ResetToDefaults(ctx context.Context) error {
	return s.repo.SetAll(ctx, domain.DefaultServices(s.now()))
}

func indexOfSub(subs []domain.SubService, id string) int {
	for i := range subs {
		if subs[i].ID == id {
			return i
		}
	}
	return -1
}

func newSubServiceID() string {
	return "sub-" + uuid.New().String()[:8]
}

func mapNotFound(err error) error {
	if errors.Is(err, docstore.ErrNotFound) {
		return domain.ErrServiceNotFound
	}
	return err
}
