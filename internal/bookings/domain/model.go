package domain

import (
	"time"

	"github.com/weddingmoments/studio-backend/internal/cart"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// Channel is how the visitor chose to send the request.
type Channel string

const (
	ChannelWhatsApp Channel = "whatsapp"
	ChannelEmail    Channel = "email"
)

func (c Channel) Valid() bool {
	return c == ChannelWhatsApp || c == ChannelEmail
}

// BookingRequest records one cart item handed off to the studio.
type BookingRequest struct {
	ID          string                    `json:"id"`
	ServiceID   string                    `json:"serviceId"`
	ServiceName string                    `json:"serviceName"`
	SubServices []cart.SelectedSubService `json:"subServices"`
	TotalPrice  float64                   `json:"totalPrice"`
	Channel     Channel                   `json:"channel"`
	RequestedAt time.Time                 `json:"requestedAt"`
	Status      Status                    `json:"status"`
}

// FromItem builds a pending request for a cart item.
func FromItem(item cart.Item, channel Channel) *BookingRequest {
	return &BookingRequest{
		ServiceID:   item.ServiceID,
		ServiceName: item.ServiceName,
		SubServices: item.SubServices,
		TotalPrice:  item.TotalPrice,
		Channel:     channel,
		Status:      StatusPending,
	}
}

type ListFilter struct {
	Status Status
	Limit  int
}
