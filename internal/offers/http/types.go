package http

import (
	"github.com/weddingmoments/studio-backend/internal/offers/domain"
	"github.com/weddingmoments/studio-backend/internal/offers/service"
)

type Handler struct {
	store *service.Store
}

func New(store *service.Store) *Handler {
	return &Handler{store: store}
}

type createOfferRequest struct {
	Code        string      `json:"code" binding:"required"`
	Description string      `json:"description" binding:"required"`
	Discount    string      `json:"discount"`
	ExpiryDate  string      `json:"expiryDate"`
	IsActive    *bool       `json:"isActive"`
	Type        domain.Type `json:"type" binding:"required,oneof=ticker badge"`
}

func (r createOfferRequest) toDomain() domain.Offer {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return domain.Offer{
		Code:        r.Code,
		Description: r.Description,
		Discount:    r.Discount,
		ExpiryDate:  r.ExpiryDate,
		IsActive:    active,
		Type:        r.Type,
	}
}
