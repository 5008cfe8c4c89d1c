package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/weddingmoments/studio-backend/internal/pricing"
)

// SubService is a priced line item within a Service. PricePerDay is the unit
// price whatever the pricing type.
type SubService struct {
	ID            string       `json:"id" firestore:"id"`
	Name          string       `json:"name" firestore:"name"`
	PricePerDay   float64      `json:"pricePerDay" firestore:"pricePerDay"`
	OriginalPrice *float64     `json:"originalPrice,omitempty" firestore:"originalPrice,omitempty"`
	PricingType   pricing.Type `json:"pricingType,omitempty" firestore:"pricingType,omitempty"`
	CustomUnit    string       `json:"customUnit,omitempty" firestore:"customUnit,omitempty"`
}

// Suffix is the price tag suffix for this line item.
func (s SubService) Suffix() string {
	return pricing.Suffix(s.PricingType, s.CustomUnit)
}

// Noun is the quantity label for this line item.
func (s SubService) Noun() string {
	return pricing.Noun(s.PricingType, s.CustomUnit)
}

// Service is a bookable package category.
type Service struct {
	ID          string       `json:"id" firestore:"id"`
	Name        string       `json:"name" firestore:"name"`
	Description string       `json:"description" firestore:"description"`
	Image       string       `json:"image" firestore:"image"`
	Offer       string       `json:"offer,omitempty" firestore:"offer,omitempty"`
	SubServices []SubService `json:"subServices" firestore:"subServices"`
	// IsActive is a pointer so documents written without the field count
	// as active.
	IsActive  *bool     `json:"isActive,omitempty" firestore:"isActive,omitempty"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

func (s Service) DocumentID() string { return s.ID }

// Active reports storefront visibility. Only an explicit false hides a service.
func (s Service) Active() bool {
	return s.IsActive == nil || *s.IsActive
}

// SubService looks up a line item by id.
func (s Service) SubService(id string) (SubService, bool) {
	for _, sub := range s.SubServices {
		if sub.ID == id {
			return sub, true
		}
	}
	return SubService{}, false
}

// TotalPrice is the sum of the unit prices of every line item.
func (s Service) TotalPrice() float64 {
	var total float64
	for _, sub := range s.SubServices {
		total += sub.PricePerDay
	}
	return total
}

// CreatedBefore orders services by creation time, then id.
func CreatedBefore(a, b Service) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

// ServicePatch holds the fields an update may change. Nil fields are left
// untouched.
type ServicePatch struct {
	Name        *string      `json:"name,omitempty"`
	Description *string      `json:"description,omitempty"`
	Image       *string      `json:"image,omitempty"`
	Offer       *string      `json:"offer,omitempty"`
	SubServices []SubService `json:"subServices,omitempty"`
	IsActive    *bool        `json:"isActive,omitempty"`
}

// Fields returns the patch keyed by stored field name.
func (p ServicePatch) Fields() map[string]any {
	fields := map[string]any{}
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	if p.Image != nil {
		fields["image"] = *p.Image
	}
	if p.Offer != nil {
		fields["offer"] = *p.Offer
	}
	if p.SubServices != nil {
		fields["subServices"] = p.SubServices
	}
	if p.IsActive != nil {
		fields["isActive"] = *p.IsActive
	}
	return fields
}

// Stats are aggregate figures over the whole catalog.
type Stats struct {
	TotalServices      int     `json:"totalServices"`
	ActiveServices     int     `json:"activeServices"`
	InactiveServices   int     `json:"inactiveServices"`
	TotalSubServices   int     `json:"totalSubServices"`
	AveragePricePerDay float64 `json:"averagePricePerDay"`
	HighestPrice       float64 `json:"highestPrice"`
	LowestPrice        float64 `json:"lowestPrice"`
}

// Slugify derives a service id from its name: lower case, whitespace runs
// collapsed to a single hyphen.
func Slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// Price returns a pointer to v.
func Price(v float64) *float64 { return &v }

// CheckSubServiceIDs reports ErrDuplicateSubService when two sub-services
// share a non-empty id. Empty ids are assigned later and never collide.
func CheckSubServiceIDs(subs []SubService) error {
	seen := make(map[string]bool, len(subs))
	for _, sub := range subs {
		if sub.ID == "" {
			continue
		}
		if seen[sub.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateSubService, sub.ID)
		}
		seen[sub.ID] = true
	}
	return nil
}
