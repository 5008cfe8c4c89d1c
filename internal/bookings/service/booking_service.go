package service

import (
	"context"
	"fmt"

	"github.com/weddingmoments/studio-backend/internal/bookings/domain"
	"github.com/weddingmoments/studio-backend/internal/cart"
)

// Repository is implemented by repository.BookingRepository.
type Repository interface {
	CreateAll(ctx context.Context, requests []*domain.BookingRequest) error
	GetByID(ctx context.Context, id string) (*domain.BookingRequest, error)
	List(ctx context.Context, filter domain.ListFilter) ([]*domain.BookingRequest, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status) error
}

type BookingService struct {
	repo Repository
}

func NewBookingService(repo Repository) *BookingService {
	return &BookingService{repo: repo}
}

// Record logs one pending request per cart item.
func (s *BookingService) Record(ctx context.Context, items []cart.Item, channel domain.Channel) ([]*domain.BookingRequest, error) {
	if !channel.Valid() {
		return nil, domain.ErrInvalidChannel
	}
	if len(items) == 0 {
		return nil, nil
	}

	requests := make([]*domain.BookingRequest, 0, len(items))
	for _, item := range items {
		requests = append(requests, domain.FromItem(item, channel))
	}
	if err := s.repo.CreateAll(ctx, requests); err != nil {
		return nil, fmt.Errorf("record booking requests: %w", err)
	}
	return requests, nil
}

func (s *BookingService) List(ctx context.Context, filter domain.ListFilter) ([]*domain.BookingRequest, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	out, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []*domain.BookingRequest{}
	}
	return out, nil
}

func (s *BookingService) Get(ctx context.Context, id string) (*domain.BookingRequest, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *BookingService) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.BookingRequest, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}
