package domain

import (
	"time"

	"github.com/weddingmoments/studio-backend/internal/pricing"
)

const unsplash = "https://images.unsplash.com/"

// DefaultServices is the demo catalog used by ResetToDefaults. Every service
// is active and stamped with now.
func DefaultServices(now time.Time) []Service {
	services := []Service{
		{
			ID:          "baby-shoot",
			Name:        "Baby Shoot",
			Description: "Capture precious moments of your little one with our professional baby photography services.",
			Image:       unsplash + "photo-1515488042361-ee00e0ddd4e4?q=80&w=1000",
			Offer:       "15% OFF",
			SubServices: []SubService{
				{ID: "baby-photo", Name: "Photo Shoot Service", PricePerDay: 500, OriginalPrice: Price(600)},
				{ID: "baby-video", Name: "Videography Service", PricePerDay: 800, OriginalPrice: Price(1000)},
				{ID: "baby-drone", Name: "Drone Shoot Service", PricePerDay: 1200, OriginalPrice: Price(1500)},
			},
		},
		{
			ID:          "pre-wedding",
			Name:        "Pre-Wedding Shoot",
			Description: "Create beautiful memories before your big day with our romantic pre-wedding photography.",
			Image:       unsplash + "photo-1519741497674-611481863552?q=80&w=1000",
			Offer:       "20% OFF",
			SubServices: []SubService{
				{ID: "prewed-photo", Name: "Photo Shoot Service", PricePerDay: 1500, OriginalPrice: Price(2000)},
				{ID: "prewed-video", Name: "Videography Service", PricePerDay: 2000, OriginalPrice: Price(2500)},
				{ID: "prewed-drone", Name: "Drone Shoot Service", PricePerDay: 2500, OriginalPrice: Price(3200)},
				{ID: "prewed-album", Name: "Premium Album Design", PricePerDay: 3000, OriginalPrice: Price(4000), PricingType: pricing.PerPiece},
			},
		},
		{
			ID:          "outdoor-shoot",
			Name:        "Outdoor Shoot",
			Description: "Professional outdoor photography sessions in stunning natural locations.",
			Image:       unsplash + "photo-1452421822248-d4c2b47f0c81?q=80&w=1000",
			SubServices: []SubService{
				{ID: "outdoor-photo", Name: "Photo Shoot Service", PricePerDay: 1000, OriginalPrice: Price(1200)},
				{ID: "outdoor-video", Name: "Videography Service", PricePerDay: 1500, OriginalPrice: Price(1800)},
				{ID: "outdoor-drone", Name: "Drone Shoot Service", PricePerDay: 2000, OriginalPrice: Price(2500)},
			},
		},
		{
			ID:          "birthday-shoot",
			Name:        "Birthday Shoot",
			Description: "Make birthday celebrations memorable with our vibrant and fun photography services.",
			Image:       unsplash + "photo-1530103862676-de8c9debad1d?q=80&w=1000",
			Offer:       "Special Deal",
			SubServices: []SubService{
				{ID: "birthday-photo", Name: "Photo Shoot Service", PricePerDay: 600, OriginalPrice: Price(800)},
				{ID: "birthday-video", Name: "Videography Service", PricePerDay: 1000, OriginalPrice: Price(1200)},
				{ID: "birthday-decoration", Name: "Decoration Coverage", PricePerDay: 500, OriginalPrice: Price(700)},
			},
		},
		{
			ID:          "film-shoot",
			Name:        "Film Shoot",
			Description: "Professional cinematography services for commercial and creative film projects.",
			Image:       unsplash + "photo-1485846234645-a62644f84728?q=80&w=1000",
			SubServices: []SubService{
				{ID: "film-cinema", Name: "Cinematography Service", PricePerDay: 3000, OriginalPrice: Price(3500)},
				{ID: "film-editing", Name: "Professional Editing", PricePerDay: 2000, PricingType: pricing.PerHour},
				{ID: "film-drone", Name: "Drone Cinematography", PricePerDay: 2500, OriginalPrice: Price(3000)},
				{ID: "film-equipment", Name: "Premium Equipment Rental", PricePerDay: 1500},
			},
		},
	}

	for i := range services {
		services[i].IsActive = Bool(true)
		services[i].CreatedAt = now
		services[i].UpdatedAt = now
	}
	return services
}
