package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID              uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	StoreID         uuid.UUID    `gorm:"column:store_id;type:uuid;not null" json:"storeId"`
	Store           *Store       `gorm:"foreignKey:StoreID" json:"store,omitempty"`
	Name            string       `gorm:"column:name;not null" json:"name"`
	Description     string       `gorm:"column:description;not null" json:"description"`
	FullDescription *string      `gorm:"column:full_description" json:"fullDescription,omitempty"`
	Category        FoodCategory `gorm:"column:category;not null" json:"category"`
	BasePrice       float64      `gorm:"column:base_price;not null" json:"basePrice"`
	OriginalPrice   *float64     `gorm:"column:original_price" json:"originalPrice,omitempty"`
	Rating          float64      `gorm:"column:rating;default:0" json:"rating"`
	ReviewCount     int          `gorm:"column:review_count;default:0" json:"reviewCount"`
	PreparationTime string       `gorm:"column:preparation_time;default:15 min" json:"preparationTime"`
	Calories        *int         `gorm:"column:calories" json:"calories,omitempty"`
	IsOrganic       bool         `gorm:"column:is_organic;default:false" json:"isOrganic"`
	IsVegan         bool         `gorm:"column:is_vegan;default:false" json:"isVegan"`
	IsGlutenFree    bool         `gorm:"column:is_gluten_free;default:false" json:"isGlutenFree"`
	IsSpicy         bool         `gorm:"column:is_spicy;default:false" json:"isSpicy"`
	IsSponsored     bool         `gorm:"column:is_sponsored;default:false" json:"isSponsored"`
	IsAvailable     bool         `gorm:"column:is_available;default:true" json:"isAvailable"`
	StockQuantity   *int         `gorm:"column:stock_quantity" json:"stockQuantity,omitempty"`
	Ingredients     []string     `gorm:"column:ingredients;serializer:json" json:"ingredients"`
	Allergens       []string     `gorm:"column:allergens;serializer:json" json:"allergens"`
	Tags            []string     `gorm:"column:tags;serializer:json" json:"tags"`
	ImageName       *string      `gorm:"column:image_name" json:"imageName,omitempty"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

func (Product) TableName() string {
	return "products"
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
