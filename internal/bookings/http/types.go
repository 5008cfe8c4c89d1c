package http

import (
	"github.com/weddingmoments/studio-backend/internal/bookings/domain"
	"github.com/weddingmoments/studio-backend/internal/bookings/service"
)

type Handler struct {
	bookings *service.BookingService
}

func New(bookings *service.BookingService) *Handler {
	return &Handler{bookings: bookings}
}

type listQuery struct {
	Status domain.Status `form:"status"`
	Limit  int           `form:"limit" binding:"omitempty,min=1,max=500"`
}

type updateStatusRequest struct {
	Status domain.Status `json:"status" binding:"required"`
}
