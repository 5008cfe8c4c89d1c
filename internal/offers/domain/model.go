package domain

import (
	"time"
)

// Type distinguishes the two storefront presentations of an offer.
type Type string

const (
	TypeTicker Type = "ticker"
	TypeBadge  Type = "badge"
)

func (t Type) Valid() bool {
	return t == TypeTicker || t == TypeBadge
}

// Offer is a promotional record. Discount and ExpiryDate are stored for the
// admin's reference only; nothing reads them.
type Offer struct {
	ID          string    `json:"id" firestore:"id"`
	Code        string    `json:"code" firestore:"code"`
	Description string    `json:"description" firestore:"description"`
	Discount    string    `json:"discount" firestore:"discount"`
	ExpiryDate  string    `json:"expiryDate" firestore:"expiryDate"`
	IsActive    bool      `json:"isActive" firestore:"isActive"`
	Type        Type      `json:"type" firestore:"type"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" firestore:"updatedAt"`
}

func (o Offer) DocumentID() string { return o.ID }

// CreatedBefore orders offers by creation time, then id.
func CreatedBefore(a, b Offer) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

// Badge is the storefront's decorative seal.
type Badge struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	MainText string `json:"mainText"`
}

// Promotions is what the storefront renders from the active offers.
type Promotions struct {
	Ticker []string `json:"ticker"`
	Badge  *Badge   `json:"badge"`
}

type OfferPatch struct {
	Code        *string `json:"code,omitempty"`
	Description *string `json:"description,omitempty"`
	Discount    *string `json:"discount,omitempty"`
	ExpiryDate  *string `json:"expiryDate,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
	Type        *Type   `json:"type,omitempty"`
}

func (p OfferPatch) Fields() map[string]any {
	fields := map[string]any{}
	if p.Code != nil {
		fields["code"] = *p.Code
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	if p.Discount != nil {
		fields["discount"] = *p.Discount
	}
	if p.ExpiryDate != nil {
		fields["expiryDate"] = *p.ExpiryDate
	}
	if p.IsActive != nil {
		fields["isActive"] = *p.IsActive
	}
	if p.Type != nil {
		fields["type"] = string(*p.Type)
	}
	return fields
}
