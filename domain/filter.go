package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 50
)

// Page is the limit/offset pair shared by every search. Offset pagination can
// skip or duplicate rows if the underlying set mutates between pages.
type Page struct {
	Limit  int
	Offset int
}

// Normalize applies the platform defaults: limit 20, hard cap 50, offset >= 0.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

type SortKey string

const (
	SortByRating   SortKey = "rating"
	SortByPrice    SortKey = "price"
	SortByName     SortKey = "name"
	SortByNewest   SortKey = "newest"
	SortByPrepTime SortKey = "preparationTime"
)

// OrderClause translates a sort key into the SQL ORDER BY expression.
// Unknown keys fall back to rating descending.
func (s SortKey) OrderClause() string {
	switch s {
	case SortByPrice:
		return "base_price ASC"
	case SortByName:
		return "name ASC"
	case SortByNewest:
		return "created_at DESC"
	case SortByPrepTime:
		return "preparation_time ASC"
	}
	return "rating DESC"
}

// BoundingBox is a rectangular lat/lng approximation of a circular radius.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// NewBoundingBox converts a center and radius in kilometers to degree ranges
// using latRange = r/111 and lngRange = r/(111*cos(lat)). Valid for small
// radii; breaks down near the poles and across the antimeridian.
func NewBoundingBox(lat, lng, radiusKm float64) BoundingBox {
	latRange := radiusKm / 111.0
	lngRange := radiusKm / (111.0 * math.Cos(lat*math.Pi/180))

	return BoundingBox{
		MinLat: lat - latRange,
		MaxLat: lat + latRange,
		MinLng: lng - lngRange,
		MaxLng: lng + lngRange,
	}
}

// StoreFilter collects the optional predicates for store search. Every set
// field ANDs one more condition onto the query.
type StoreFilter struct {
	Category   *FoodCategory
	Location   *string
	IsOpen     *bool
	MinRating  *float64
	PriceRange *PriceRange
	Query      *string
	Geo        *GeoFilter
	Sort       SortKey
	Page       Page
}

type GeoFilter struct {
	Latitude  float64
	Longitude float64
	RadiusKm  float64
}

func (g GeoFilter) Box() BoundingBox {
	return NewBoundingBox(g.Latitude, g.Longitude, g.RadiusKm)
}

// ProductFilter collects the optional predicates for product search.
// Public product listings always AND is_available = true on top of these.
type ProductFilter struct {
	Category     *FoodCategory
	StoreID      *uuid.UUID
	MinPrice     *float64
	MaxPrice     *float64
	MinRating    *float64
	IsOrganic    *bool
	IsVegan      *bool
	IsGlutenFree *bool
	IsSpicy      *bool
	IsSponsored  *bool
	MaxCalories  *int
	Query        *string
	Sort         SortKey
	Page         Page
}

type EventFilter struct {
	Category    *EventCategory
	Location    *string
	StartDate   *time.Time
	EndDate     *time.Time
	MinPrice    *float64
	MaxPrice    *float64
	IsSponsored *bool
	Organizer   *string
	Query       *string
	Page        Page
}

// RunningAverage folds one new rating into an incrementally maintained mean.
// The persistence layer executes the same formula server-side in a single
// UPDATE; this helper exists for callers that already hold the prior state.
func RunningAverage(avg float64, count int, rating float64) (float64, int) {
	newCount := count + 1
	return (avg*float64(count) + rating) / float64(newCount), newCount
}
