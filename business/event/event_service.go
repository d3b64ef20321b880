package event

import (
	"context"
	"fmt"
	"time"

	"myFoodMarket/domain"
	"myFoodMarket/pkg/logger"
	"myFoodMarket/pkg/metrics"

	"github.com/google/uuid"
)

// EventRepository contract interface
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	FindByID(ctx context.Context, id uuid.UUID) (domain.Event, error)
	FindAll(ctx context.Context, page domain.Page) ([]domain.Event, error)
	Search(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error)
	FindByCategory(ctx context.Context, category domain.EventCategory, page domain.Page) ([]domain.Event, error)
	FindFeatured(ctx context.Context, limit int) ([]domain.Event, error)
	FindUpcoming(ctx context.Context, window time.Duration, limit int) ([]domain.Event, error)
	Update(ctx context.Context, event *domain.Event) error
	Delete(ctx context.Context, id uuid.UUID) error
	PurchaseTickets(ctx context.Context, id uuid.UUID, quantity int) (domain.Event, error)
}

type eventService struct {
	eventRepo EventRepository
}

func NewEventService(eventRepo EventRepository) *eventService {
	return &eventService{
		eventRepo: eventRepo,
	}
}

const (
	featuredEventLimit  = 10
	upcomingEventLimit  = 20
	upcomingEventWindow = 7 * 24 * time.Hour
)

// EventUpdate carries the optional fields of an event update; nil means keep.
type EventUpdate struct {
	Title           *string
	Description     *string
	FullDescription *string
	Date            *time.Time
	Time            *string
	Duration        *string
	Location        *string
	Address         *string
	Category        *domain.EventCategory
	Price           *float64
	Capacity        *int
	Organizer       *string
	IsSponsored     *bool
	Requirements    *[]string
	Includes        *[]string
	Tags            *[]string
	ImageName       *string
}

func (s *eventService) GetAllEvents(ctx context.Context, page domain.Page) ([]domain.Event, error) {
	return s.eventRepo.FindAll(ctx, page)
}

func (s *eventService) GetEvent(ctx context.Context, id uuid.UUID) (domain.Event, error) {
	return s.eventRepo.FindByID(ctx, id)
}

func (s *eventService) SearchEvents(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error) {
	return s.eventRepo.Search(ctx, filter)
}

func (s *eventService) GetEventsByCategory(ctx context.Context, category domain.EventCategory, page domain.Page) ([]domain.Event, error) {
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: invalid category", domain.ErrValidation)
	}

	return s.eventRepo.FindByCategory(ctx, category, page)
}

func (s *eventService) GetFeaturedEvents(ctx context.Context) ([]domain.Event, error) {
	return s.eventRepo.FindFeatured(ctx, featuredEventLimit)
}

func (s *eventService) GetUpcomingEvents(ctx context.Context) ([]domain.Event, error) {
	return s.eventRepo.FindUpcoming(ctx, upcomingEventWindow, upcomingEventLimit)
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) (domain.Event, error) {
	if event.Title == "" || event.Description == "" {
		return domain.Event{}, fmt.Errorf("%w: title and description are required", domain.ErrValidation)
	}

	if !event.Category.IsValid() {
		return domain.Event{}, fmt.Errorf("%w: invalid category", domain.ErrValidation)
	}

	if event.Date.IsZero() {
		return domain.Event{}, fmt.Errorf("%w: date is required", domain.ErrValidation)
	}

	if event.Price < 0 {
		return domain.Event{}, fmt.Errorf("%w: price cannot be negative", domain.ErrValidation)
	}

	if event.Capacity < 1 {
		return domain.Event{}, fmt.Errorf("%w: capacity must be at least 1", domain.ErrValidation)
	}

	if event.Organizer == "" {
		return domain.Event{}, fmt.Errorf("%w: organizer is required", domain.ErrValidation)
	}

	// Fresh events start fully available.
	event.AvailableTickets = event.Capacity

	if err := s.eventRepo.Create(ctx, event); err != nil {
		logger.Error("Failed to create event", err)
		return domain.Event{}, err
	}

	return *event, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, id uuid.UUID, update EventUpdate) (domain.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, err
	}

	if update.Title != nil {
		event.Title = *update.Title
	}
	if update.Description != nil {
		event.Description = *update.Description
	}
	if update.FullDescription != nil {
		event.FullDescription = update.FullDescription
	}
	if update.Date != nil {
		event.Date = *update.Date
	}
	if update.Time != nil {
		event.Time = *update.Time
	}
	if update.Duration != nil {
		event.Duration = *update.Duration
	}
	if update.Location != nil {
		event.Location = *update.Location
	}
	if update.Address != nil {
		event.Address = *update.Address
	}
	if update.Category != nil {
		if !update.Category.IsValid() {
			return domain.Event{}, fmt.Errorf("%w: invalid category", domain.ErrValidation)
		}
		event.Category = *update.Category
	}
	if update.Price != nil {
		if *update.Price < 0 {
			return domain.Event{}, fmt.Errorf("%w: price cannot be negative", domain.ErrValidation)
		}
		event.Price = *update.Price
	}
	if update.Capacity != nil {
		if *update.Capacity < 1 {
			return domain.Event{}, fmt.Errorf("%w: capacity must be at least 1", domain.ErrValidation)
		}
		// Preserve sold tickets across the capacity change. Reducing
		// capacity below tickets already sold clamps availability at
		// zero instead of going negative.
		sold := event.TicketsSold()
		event.Capacity = *update.Capacity
		event.AvailableTickets = *update.Capacity - sold
		if event.AvailableTickets < 0 {
			event.AvailableTickets = 0
		}
	}
	if update.Organizer != nil {
		event.Organizer = *update.Organizer
	}
	if update.IsSponsored != nil {
		event.IsSponsored = *update.IsSponsored
	}
	if update.Requirements != nil {
		event.Requirements = *update.Requirements
	}
	if update.Includes != nil {
		event.Includes = *update.Includes
	}
	if update.Tags != nil {
		event.Tags = *update.Tags
	}
	if update.ImageName != nil {
		event.ImageName = update.ImageName
	}

	if err := s.eventRepo.Update(ctx, &event); err != nil {
		logger.Error("Failed to update event", err)
		return domain.Event{}, err
	}

	return event, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	return s.eventRepo.Delete(ctx, id)
}

// PurchaseTickets decrements availability through the repository's
// conditional update; insufficient tickets surface as a Conflict and leave
// the counter unchanged.
func (s *eventService) PurchaseTickets(ctx context.Context, id uuid.UUID, quantity int) (domain.Event, error) {
	if quantity <= 0 {
		return domain.Event{}, fmt.Errorf("%w: quantity must be greater than 0", domain.ErrValidation)
	}

	event, err := s.eventRepo.PurchaseTickets(ctx, id, quantity)
	if err != nil {
		return domain.Event{}, err
	}

	metrics.TicketsSoldTotal.Add(float64(quantity))
	return event, nil
}
