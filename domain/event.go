package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventCategory string

const (
	EventGastronomico    EventCategory = "gastronomico"
	EventBebidas         EventCategory = "bebidas"
	EventEducativo       EventCategory = "educativo"
	EventCultural        EventCategory = "cultural"
	EventNetworking      EventCategory = "networking"
	EventEntretenimiento EventCategory = "entretenimiento"
)

func (c EventCategory) IsValid() bool {
	switch c {
	case EventGastronomico, EventBebidas, EventEducativo,
		EventCultural, EventNetworking, EventEntretenimiento:
		return true
	}
	return false
}

type Event struct {
	ID               uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Title            string        `gorm:"column:title;not null" json:"title"`
	Description      string        `gorm:"column:description;not null" json:"description"`
	FullDescription  *string       `gorm:"column:full_description" json:"fullDescription,omitempty"`
	Date             time.Time     `gorm:"column:date;not null" json:"date"`
	Time             string        `gorm:"column:time" json:"time"`
	Duration         string        `gorm:"column:duration" json:"duration"`
	Location         string        `gorm:"column:location" json:"location"`
	Address          string        `gorm:"column:address" json:"address"`
	Category         EventCategory `gorm:"column:category;not null" json:"category"`
	Price            float64       `gorm:"column:price" json:"price"`
	Capacity         int           `gorm:"column:capacity;not null" json:"capacity"`
	AvailableTickets int           `gorm:"column:available_tickets;not null" json:"availableTickets"`
	Organizer        string        `gorm:"column:organizer" json:"organizer"`
	IsSponsored      bool          `gorm:"column:is_sponsored;default:false" json:"isSponsored"`
	Requirements     []string      `gorm:"column:requirements;serializer:json" json:"requirements"`
	Includes         []string      `gorm:"column:includes;serializer:json" json:"includes"`
	Tags             []string      `gorm:"column:tags;serializer:json" json:"tags"`
	ImageName        *string       `gorm:"column:image_name" json:"imageName,omitempty"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

func (Event) TableName() string {
	return "events"
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TicketsSold derives sales from capacity and the remaining counter.
func (e *Event) TicketsSold() int {
	return e.Capacity - e.AvailableTickets
}
