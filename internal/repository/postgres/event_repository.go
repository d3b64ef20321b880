package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"myFoodMarket/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepository struct {
	DB *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{
		DB: db,
	}
}

func (r *EventRepository) Create(ctx context.Context, event *domain.Event) error {
	if err := r.DB.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	return nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.Event, error) {
	var event domain.Event

	err := r.DB.WithContext(ctx).First(&event, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Event{}, fmt.Errorf("%w: event %s", domain.ErrNotFound, id)
		}
		return domain.Event{}, fmt.Errorf("failed to find event: %w", err)
	}

	return event, nil
}

// FindAll lists events from today onward, soonest first.
func (r *EventRepository) FindAll(ctx context.Context, page domain.Page) ([]domain.Event, error) {
	page = page.Normalize()

	var events []domain.Event
	err := r.DB.WithContext(ctx).
		Where("date >= ?", time.Now()).
		Order("date ASC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find events: %w", err)
	}

	return events, nil
}

func (r *EventRepository) Search(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error) {
	query := r.DB.WithContext(ctx).Model(&domain.Event{})

	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}

	if filter.Location != nil {
		query = query.Where("location ILIKE ?", "%"+*filter.Location+"%")
	}

	if filter.StartDate != nil {
		query = query.Where("date >= ?", *filter.StartDate)
	}

	if filter.EndDate != nil {
		query = query.Where("date <= ?", *filter.EndDate)
	}

	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}

	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}

	if filter.IsSponsored != nil {
		query = query.Where("is_sponsored = ?", *filter.IsSponsored)
	}

	if filter.Organizer != nil {
		query = query.Where("organizer ILIKE ?", "%"+*filter.Organizer+"%")
	}

	if filter.Query != nil {
		like := "%" + *filter.Query + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", like, like)
	}

	page := filter.Page.Normalize()

	var events []domain.Event
	err := query.
		Order("date ASC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search events: %w", err)
	}

	return events, nil
}

func (r *EventRepository) FindByCategory(ctx context.Context, category domain.EventCategory, page domain.Page) ([]domain.Event, error) {
	page = page.Normalize()

	var events []domain.Event
	err := r.DB.WithContext(ctx).
		Where("category = ? AND date >= ?", category, time.Now()).
		Order("date ASC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find events by category: %w", err)
	}

	return events, nil
}

func (r *EventRepository) FindFeatured(ctx context.Context, limit int) ([]domain.Event, error) {
	var events []domain.Event
	err := r.DB.WithContext(ctx).
		Where("is_sponsored = ? AND date >= ?", true, time.Now()).
		Order("date ASC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find featured events: %w", err)
	}

	return events, nil
}

// FindUpcoming lists events within the given window from now.
func (r *EventRepository) FindUpcoming(ctx context.Context, window time.Duration, limit int) ([]domain.Event, error) {
	now := time.Now()

	var events []domain.Event
	err := r.DB.WithContext(ctx).
		Where("date >= ? AND date <= ?", now, now.Add(window)).
		Order("date ASC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find upcoming events: %w", err)
	}

	return events, nil
}

func (r *EventRepository) Update(ctx context.Context, event *domain.Event) error {
	result := r.DB.WithContext(ctx).Model(&domain.Event{}).Where("id = ?", event.ID).
		Select("title", "description", "full_description", "date", "time", "duration",
			"location", "address", "category", "price", "capacity", "available_tickets",
			"organizer", "is_sponsored", "requirements", "includes", "tags", "image_name",
			"updated_at").
		Updates(event)
	if result.Error != nil {
		return fmt.Errorf("failed to update event: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: event %s", domain.ErrNotFound, event.ID)
	}

	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.DB.WithContext(ctx).Delete(&domain.Event{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete event: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: event %s", domain.ErrNotFound, id)
	}

	return nil
}

// PurchaseTickets decrements the counter with a conditional single-statement
// UPDATE, so concurrent purchases cannot oversell. Zero rows affected means
// either the event is gone or not enough tickets remain.
func (r *EventRepository) PurchaseTickets(ctx context.Context, id uuid.UUID, quantity int) (domain.Event, error) {
	var event domain.Event
	result := r.DB.WithContext(ctx).Model(&event).
		Clauses(clause.Returning{}).
		Where("id = ? AND available_tickets >= ?", id, quantity).
		UpdateColumn("available_tickets", gorm.Expr("available_tickets - ?", quantity))
	if result.Error != nil {
		return domain.Event{}, fmt.Errorf("failed to purchase tickets: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return domain.Event{}, err
		}
		return domain.Event{}, fmt.Errorf("%w: not enough tickets available", domain.ErrConflict)
	}

	return event, nil
}

func (r *EventRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&domain.Event{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}

	return count, nil
}

func (r *EventRepository) CountByCategory(ctx context.Context, category domain.EventCategory) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&domain.Event{}).
		Where("category = ?", category).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count events by category: %w", err)
	}

	return count, nil
}

func (r *EventRepository) DeleteAll(ctx context.Context) error {
	if err := r.DB.WithContext(ctx).Where("1 = 1").Delete(&domain.Event{}).Error; err != nil {
		return fmt.Errorf("failed to clear events: %w", err)
	}

	return nil
}
