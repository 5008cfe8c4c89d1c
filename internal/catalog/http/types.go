package http

import (
	"strings"

	"github.com/weddingmoments/studio-backend/internal/catalog/domain"
	"github.com/weddingmoments/studio-backend/internal/catalog/service"
	"github.com/weddingmoments/studio-backend/internal/pricing"
)

type Handler struct {
	store *service.Store
}

func New(store *service.Store) *Handler {
	return &Handler{store: store}
}

type subServiceRequest struct {
	ID            string       `json:"id"`
	Name          string       `json:"name" binding:"required"`
	PricePerDay   float64      `json:"pricePerDay" binding:"gte=0"`
	OriginalPrice *float64     `json:"originalPrice" binding:"omitempty,gte=0"`
	PricingType   pricing.Type `json:"pricingType"`
	CustomUnit    string       `json:"customUnit"`
}

func (r subServiceRequest) toDomain() domain.SubService {
	sub := domain.SubService{
		ID:            strings.TrimSpace(r.ID),
		Name:          strings.TrimSpace(r.Name),
		PricePerDay:   r.PricePerDay,
		OriginalPrice: r.OriginalPrice,
	}
	if r.PricingType != "" {
		sub.PricingType = pricing.Normalize(r.PricingType)
	}
	if sub.PricingType == pricing.Manual {
		sub.CustomUnit = strings.TrimSpace(r.CustomUnit)
	}
	return sub
}

func toDomainSubs(in []subServiceRequest) []domain.SubService {
	out := make([]domain.SubService, 0, len(in))
	for _, r := range in {
		out = append(out, r.toDomain())
	}
	return out
}

// createServiceRequest mirrors the admin service form.
type createServiceRequest struct {
	ID          string              `json:"id"`
	Name        string              `json:"name" binding:"required"`
	Description string              `json:"description" binding:"required"`
	Image       string              `json:"image"`
	Offer       string              `json:"offer"`
	SubServices []subServiceRequest `json:"subServices" binding:"required,min=1,dive"`
	IsActive    *bool               `json:"isActive"`
}

func (r createServiceRequest) valid() bool {
	if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Description) == "" {
		return false
	}
	for _, sub := range r.SubServices {
		if strings.TrimSpace(sub.Name) == "" {
			return false
		}
	}
	return true
}

type updateServiceRequest struct {
	Name        *string             `json:"name"`
	Description *string             `json:"description"`
	Image       *string             `json:"image"`
	Offer       *string             `json:"offer"`
	SubServices []subServiceRequest `json:"subServices" binding:"omitempty,min=1,dive"`
	IsActive    *bool               `json:"isActive"`
}

func (r updateServiceRequest) valid() bool {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return false
	}
	if r.Description != nil && strings.TrimSpace(*r.Description) == "" {
		return false
	}
	for _, sub := range r.SubServices {
		if strings.TrimSpace(sub.Name) == "" {
			return false
		}
	}
	return true
}

func (r updateServiceRequest) toPatch() domain.ServicePatch {
	p := domain.ServicePatch{
		Name:        r.Name,
		Description: r.Description,
		Image:       r.Image,
		Offer:       r.Offer,
		IsActive:    r.IsActive,
	}
	if r.SubServices != nil {
		p.SubServices = toDomainSubs(r.SubServices)
	}
	return p
}

// priceUpdateRequest is the bulk edit from the pricing screen:
// service id -> sub-service id -> new unit price.
type priceUpdateRequest struct {
	Prices map[string]map[string]float64 `json:"prices" binding:"required"`
}
