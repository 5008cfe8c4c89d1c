package http

import (
	"github.com/weddingmoments/studio-backend/config"
	bookings "github.com/weddingmoments/studio-backend/internal/bookings/domain"
	"github.com/weddingmoments/studio-backend/internal/checkout"
)

type Handler struct {
	checkout *checkout.Service
	limiter  *checkout.ClientLimiter
	studio   config.StudioConfig
}

func New(svc *checkout.Service, limiter *checkout.ClientLimiter, studio config.StudioConfig) *Handler {
	return &Handler{
		checkout: svc,
		limiter:  limiter,
		studio:   studio,
	}
}

type quoteRequest struct {
	ServiceID  string         `json:"serviceId" binding:"required"`
	Quantities map[string]int `json:"quantities"`
}

type checkoutRequest struct {
	Items   []checkout.Line  `json:"items" binding:"required,dive"`
	Channel bookings.Channel `json:"channel"`
}
