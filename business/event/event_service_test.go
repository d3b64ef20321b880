package event

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"myFoodMarket/domain"

	"github.com/google/uuid"
)

// fakeEventRepo mirrors the conditional-update semantics of the real
// repository: a purchase only succeeds when enough tickets remain.
type fakeEventRepo struct {
	events map[uuid.UUID]*domain.Event
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[uuid.UUID]*domain.Event)}
}

func (f *fakeEventRepo) Create(_ context.Context, e *domain.Event) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	stored := *e
	f.events[e.ID] = &stored
	return nil
}

func (f *fakeEventRepo) FindByID(_ context.Context, id uuid.UUID) (domain.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return domain.Event{}, fmt.Errorf("%w: event %s", domain.ErrNotFound, id)
	}
	return *e, nil
}

func (f *fakeEventRepo) FindAll(_ context.Context, _ domain.Page) ([]domain.Event, error) {
	var out []domain.Event
	for _, e := range f.events {
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeEventRepo) Search(_ context.Context, _ domain.EventFilter) ([]domain.Event, error) {
	return nil, nil
}

func (f *fakeEventRepo) FindByCategory(_ context.Context, _ domain.EventCategory, _ domain.Page) ([]domain.Event, error) {
	return nil, nil
}

func (f *fakeEventRepo) FindFeatured(_ context.Context, _ int) ([]domain.Event, error) {
	return nil, nil
}

func (f *fakeEventRepo) FindUpcoming(_ context.Context, _ time.Duration, _ int) ([]domain.Event, error) {
	return nil, nil
}

func (f *fakeEventRepo) Update(_ context.Context, e *domain.Event) error {
	if _, ok := f.events[e.ID]; !ok {
		return fmt.Errorf("%w: event %s", domain.ErrNotFound, e.ID)
	}
	stored := *e
	f.events[e.ID] = &stored
	return nil
}

func (f *fakeEventRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.events[id]; !ok {
		return fmt.Errorf("%w: event %s", domain.ErrNotFound, id)
	}
	delete(f.events, id)
	return nil
}

func (f *fakeEventRepo) PurchaseTickets(_ context.Context, id uuid.UUID, quantity int) (domain.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return domain.Event{}, fmt.Errorf("%w: event %s", domain.ErrNotFound, id)
	}
	if e.AvailableTickets < quantity {
		return domain.Event{}, fmt.Errorf("%w: not enough tickets available", domain.ErrConflict)
	}
	e.AvailableTickets -= quantity
	return *e, nil
}

func validEvent() *domain.Event {
	return &domain.Event{
		Title:       "Festival del Taco",
		Description: "Taco festival",
		Date:        time.Now().Add(48 * time.Hour),
		Category:    domain.EventGastronomico,
		Price:       150,
		Capacity:    20,
		Organizer:   "MyFoodMarket Events",
	}
}

func TestCreateEventStartsFullyAvailable(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo)

	created, err := svc.CreateEvent(context.Background(), validEvent())
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	if created.AvailableTickets != created.Capacity {
		t.Errorf("AvailableTickets = %d, want %d", created.AvailableTickets, created.Capacity)
	}
}

func TestCreateEventValidation(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo)

	tests := []struct {
		name   string
		mutate func(*domain.Event)
	}{
		{"missing title", func(e *domain.Event) { e.Title = "" }},
		{"invalid category", func(e *domain.Event) { e.Category = "fiesta" }},
		{"zero capacity", func(e *domain.Event) { e.Capacity = 0 }},
		{"negative price", func(e *domain.Event) { e.Price = -1 }},
		{"missing organizer", func(e *domain.Event) { e.Organizer = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validEvent()
			tt.mutate(e)
			if _, err := svc.CreateEvent(context.Background(), e); !errors.Is(err, domain.ErrValidation) {
				t.Errorf("error = %v, want ErrValidation", err)
			}
		})
	}

	if len(repo.events) != 0 {
		t.Errorf("invalid events were persisted: %d", len(repo.events))
	}
}

func TestPurchaseTicketsDecrements(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo)

	created, err := svc.CreateEvent(context.Background(), validEvent())
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	updated, err := svc.PurchaseTickets(context.Background(), created.ID, 5)
	if err != nil {
		t.Fatalf("PurchaseTickets: %v", err)
	}

	if updated.AvailableTickets != 15 {
		t.Errorf("AvailableTickets = %d, want 15", updated.AvailableTickets)
	}
}

func TestPurchaseTicketsConflictLeavesCounterUnchanged(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo)

	e := validEvent()
	created, err := svc.CreateEvent(context.Background(), e)
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	// Drain to 3 remaining.
	if _, err := svc.PurchaseTickets(context.Background(), created.ID, 17); err != nil {
		t.Fatalf("PurchaseTickets: %v", err)
	}

	_, err = svc.PurchaseTickets(context.Background(), created.ID, 5)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("error = %v, want ErrConflict", err)
	}

	after, err := repo.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if after.AvailableTickets != 3 {
		t.Errorf("AvailableTickets = %d, want 3 after failed purchase", after.AvailableTickets)
	}
}

func TestPurchaseTicketsRejectsNonPositiveQuantity(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo)

	for _, qty := range []int{0, -3} {
		if _, err := svc.PurchaseTickets(context.Background(), uuid.New(), qty); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("quantity %d: error = %v, want ErrValidation", qty, err)
		}
	}
}

func TestPurchaseTicketsUnknownEvent(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo)

	if _, err := svc.PurchaseTickets(context.Background(), uuid.New(), 1); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestUpdateEventCapacityPreservesSold(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo)

	created, err := svc.CreateEvent(context.Background(), validEvent())
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	if _, err := svc.PurchaseTickets(context.Background(), created.ID, 8); err != nil {
		t.Fatalf("PurchaseTickets: %v", err)
	}

	newCapacity := 30
	updated, err := svc.UpdateEvent(context.Background(), created.ID, EventUpdate{Capacity: &newCapacity})
	if err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}

	if updated.Capacity != 30 {
		t.Errorf("Capacity = %d, want 30", updated.Capacity)
	}
	if updated.AvailableTickets != 22 {
		t.Errorf("AvailableTickets = %d, want 22 (30 capacity minus 8 sold)", updated.AvailableTickets)
	}
}

func TestUpdateEventCapacityBelowSoldClampsToZero(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo)

	created, err := svc.CreateEvent(context.Background(), validEvent())
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	if _, err := svc.PurchaseTickets(context.Background(), created.ID, 15); err != nil {
		t.Fatalf("PurchaseTickets: %v", err)
	}

	newCapacity := 10
	updated, err := svc.UpdateEvent(context.Background(), created.ID, EventUpdate{Capacity: &newCapacity})
	if err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}

	if updated.AvailableTickets != 0 {
		t.Errorf("AvailableTickets = %d, want 0 when capacity drops below sold", updated.AvailableTickets)
	}
}

func TestGetEventsByCategoryRejectsUnknown(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo)

	_, err := svc.GetEventsByCategory(context.Background(), "fiesta", domain.Page{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}
