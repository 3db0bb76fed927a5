// internal/models/resource.go
package models

import "site-advisor/internal/geo"

// Category is the closed set of resource kinds a site is scored against.
type Category string

const (
	CategoryGreenEnergy Category = "green_energy"
	CategoryWater       Category = "water"
	CategoryIndustry    Category = "industry"
	CategoryTransport   Category = "transport"
)

// Categories lists all four kinds in scoring order.
var Categories = []Category{
	CategoryGreenEnergy,
	CategoryWater,
	CategoryIndustry,
	CategoryTransport,
}

// Valid reports whether c is one of the four known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryGreenEnergy, CategoryWater, CategoryIndustry, CategoryTransport:
		return true
	}
	return false
}

// ResourcePoint is a geolocated resource from the catalog. Magnitude is
// the category-specific attribute (generation capacity, storage volume,
// plant output, ...) and is non-negative.
type ResourcePoint struct {
	ID        string         `json:"id"`
	Category  Category       `json:"category"`
	Name      string         `json:"name"`
	Location  geo.Coordinate `json:"location"`
	Magnitude float64        `json:"magnitude"`
}

// ResourceSnapshot is the immutable per-run view of a region's catalog.
type ResourceSnapshot struct {
	Region    string                       `json:"region"`
	Resources map[Category][]ResourcePoint `json:"resources"`
}

// EmptyCategories returns the categories with no resources in the
// snapshot. A non-empty result fails the pipeline precondition.
func (s *ResourceSnapshot) EmptyCategories() []Category {
	var empty []Category
	for _, c := range Categories {
		if len(s.Resources[c]) == 0 {
			empty = append(empty, c)
		}
	}
	return empty
}
