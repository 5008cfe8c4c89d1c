// Package analytics derives admin reporting figures from a catalog snapshot.
// Nothing here is stored; every report is recomputed on demand.
package analytics

import (
	"math"
	"sort"

	"github.com/weddingmoments/studio-backend/internal/catalog/domain"
)

// ServiceFigures are the per-service numbers shown in the analytics table.
type ServiceFigures struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Active          bool    `json:"isActive"`
	SubServiceCount int     `json:"subServiceCount"`
	TotalPrice      float64 `json:"totalPrice"`
	AveragePrice    float64 `json:"averagePrice"`
	SharePercent    float64 `json:"sharePercent"`
	LowestSubPrice  float64 `json:"lowestSubPrice"`
	HighestSubPrice float64 `json:"highestSubPrice"`
}

// Report is the full analytics view. Ranked holds the same figures as
// Services ordered by total price, highest first.
type Report struct {
	Services           []ServiceFigures `json:"services"`
	Ranked             []ServiceFigures `json:"ranked"`
	TotalServices      int              `json:"totalServices"`
	ActiveServices     int              `json:"activeServices"`
	ActiveSharePercent float64          `json:"activeSharePercent"`
	TotalSubServices   int              `json:"totalSubServices"`
	CatalogValue       float64          `json:"catalogValue"`
	LowestPrice        float64          `json:"lowestPrice"`
	HighestPrice       float64          `json:"highestPrice"`
}

// Build computes the analytics report. Share percentages are rounded per
// service and not corrected, so they need not add up to exactly 100.
func Build(services []domain.Service) Report {
	r := Report{
		Services:      make([]ServiceFigures, 0, len(services)),
		TotalServices: len(services),
	}

	firstPrice := true
	for _, svc := range services {
		f := figures(svc)
		r.Services = append(r.Services, f)
		r.CatalogValue += f.TotalPrice
		r.TotalSubServices += f.SubServiceCount
		if svc.Active() {
			r.ActiveServices++
		}
		for _, sub := range svc.SubServices {
			if firstPrice || sub.PricePerDay < r.LowestPrice {
				r.LowestPrice = sub.PricePerDay
			}
			if firstPrice || sub.PricePerDay > r.HighestPrice {
				r.HighestPrice = sub.PricePerDay
			}
			firstPrice = false
		}
	}

	for i := range r.Services {
		r.Services[i].SharePercent = Percent(r.Services[i].TotalPrice, r.CatalogValue)
	}
	r.ActiveSharePercent = Percent(float64(r.ActiveServices), float64(r.TotalServices))

	r.Ranked = append([]ServiceFigures(nil), r.Services...)
	sort.SliceStable(r.Ranked, func(i, j int) bool {
		return r.Ranked[i].TotalPrice > r.Ranked[j].TotalPrice
	})
	return r
}

func figures(svc domain.Service) ServiceFigures {
	f := ServiceFigures{
		ID:              svc.ID,
		Name:            svc.Name,
		Active:          svc.Active(),
		SubServiceCount: len(svc.SubServices),
		TotalPrice:      svc.TotalPrice(),
	}
	if f.SubServiceCount > 0 {
		f.AveragePrice = math.Round(f.TotalPrice / float64(f.SubServiceCount))
	}
	for i, sub := range svc.SubServices {
		if i == 0 || sub.PricePerDay < f.LowestSubPrice {
			f.LowestSubPrice = sub.PricePerDay
		}
		if i == 0 || sub.PricePerDay > f.HighestSubPrice {
			f.HighestSubPrice = sub.PricePerDay
		}
	}
	return f
}

// Percent is round(part/whole*100), or 0 when whole is 0.
func Percent(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return math.Round(part / whole * 100)
}

// PricingSummary is the footer of the bulk pricing screen.
type PricingSummary struct {
	Services     int     `json:"services"`
	SubServices  int     `json:"subServices"`
	GrandTotal   float64 `json:"grandTotal"`
	AveragePrice float64 `json:"averagePrice"`
}

func SummarisePricing(services []domain.Service) PricingSummary {
	s := PricingSummary{Services: len(services)}
	for _, svc := range services {
		s.SubServices += len(svc.SubServices)
		s.GrandTotal += svc.TotalPrice()
	}
	if s.SubServices > 0 {
		s.AveragePrice = math.Round(s.GrandTotal / float64(s.SubServices))
	}
	return s
}
