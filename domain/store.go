package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FoodCategory string

const (
	CategoryPizza       FoodCategory = "pizza"
	CategorySushi       FoodCategory = "sushi"
	CategorySandwich    FoodCategory = "sandwich"
	CategoryGrocery     FoodCategory = "grocery"
	CategoryHealthy     FoodCategory = "healthy"
	CategoryBurger      FoodCategory = "burger"
	CategoryBebidas     FoodCategory = "bebidas"
	CategoryAlimentos   FoodCategory = "alimentos"
	CategoryCocteles    FoodCategory = "cocteles"
	CategoryPromociones FoodCategory = "promociones"
)

var foodCategories = map[FoodCategory]bool{
	CategoryPizza:       true,
	CategorySushi:       true,
	CategorySandwich:    true,
	CategoryGrocery:     true,
	CategoryHealthy:     true,
	CategoryBurger:      true,
	CategoryBebidas:     true,
	CategoryAlimentos:   true,
	CategoryCocteles:    true,
	CategoryPromociones: true,
}

func (c FoodCategory) IsValid() bool {
	return foodCategories[c]
}

type PriceRange string

const (
	PriceBudget    PriceRange = "$"
	PriceModerate  PriceRange = "$$"
	PriceExpensive PriceRange = "$$$"
	PriceLuxury    PriceRange = "$$$$"
)

func (p PriceRange) IsValid() bool {
	switch p {
	case PriceBudget, PriceModerate, PriceExpensive, PriceLuxury:
		return true
	}
	return false
}

type Store struct {
	ID              uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string       `gorm:"column:name;not null" json:"name"`
	Description     string       `gorm:"column:description;not null" json:"description"`
	Category        FoodCategory `gorm:"column:category;not null" json:"category"`
	Rating          float64      `gorm:"column:rating;default:0" json:"rating"`
	ReviewCount     int          `gorm:"column:review_count;default:0" json:"reviewCount"`
	DeliveryTime    string       `gorm:"column:delivery_time" json:"deliveryTime"`
	Address         string       `gorm:"column:address" json:"address"`
	Phone           *string      `gorm:"column:phone" json:"phone,omitempty"`
	IsOpen          bool         `gorm:"column:is_open;default:true" json:"isOpen"`
	Latitude        *float64     `gorm:"column:latitude" json:"latitude,omitempty"`
	Longitude       *float64     `gorm:"column:longitude" json:"longitude,omitempty"`
	Specialties     []string     `gorm:"column:specialties;serializer:json" json:"specialties"`
	Features        []string     `gorm:"column:features;serializer:json" json:"features"`
	PriceRange      PriceRange   `gorm:"column:price_range;default:$$" json:"priceRange"`
	ImageName       *string      `gorm:"column:image_name" json:"imageName,omitempty"`
	BackgroundColor *string      `gorm:"column:background_color" json:"backgroundColor,omitempty"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

func (Store) TableName() string {
	return "stores"
}

func (s *Store) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
