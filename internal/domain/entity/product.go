package entity

import "time"

// Product is a catalog item with its sustainability attributes.
// Read-only from the storefront's perspective except through the
// seller product form.
type Product struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	ComparePrice *float64 `json:"compare_price,omitempty"`
	Category     Category `json:"category"`
	Quantity     int      `json:"quantity"`

	EcoScore                     *float64 `json:"eco_score,omitempty"`
	SustainabilityCertifications []string `json:"sustainability_certifications"`
	IsOrganic                    bool     `json:"is_organic"`
	IsVegan                      bool     `json:"is_vegan"`
	IsCrueltyFree                bool     `json:"is_cruelty_free"`
	CarbonFootprint              *float64 `json:"carbon_footprint,omitempty"`

	Images        []ProductImage `json:"images"`
	AverageRating *float64       `json:"average_rating,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

// Category groups catalog items.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
}

// ProductImage is one uploaded picture of a product.
type ProductImage struct {
	ID        int64  `json:"id"`
	Image     string `json:"image"`
	AltText   string `json:"alt_text"`
	IsPrimary bool   `json:"is_primary"`
}

// Review is a customer review of a product.
type Review struct {
	ID                   int64     `json:"id"`
	Rating               int       `json:"rating"`
	Title                string    `json:"title"`
	Comment              string    `json:"comment"`
	SustainabilityRating *int      `json:"sustainability_rating,omitempty"`
	QualityRating        *int      `json:"quality_rating,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
}
