package admin

import (
	"context"
	"testing"

	"myFoodMarket/domain"

	"github.com/google/uuid"
)

type memStore struct {
	users    []domain.User
	stores   []domain.Store
	products []domain.Product
	events   []domain.Event
}

type memUserRepo struct{ s *memStore }

func (r memUserRepo) Create(_ context.Context, u *domain.User) error {
	u.ID = uuid.New()
	r.s.users = append(r.s.users, *u)
	return nil
}

func (r memUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.s.users)), nil
}

func (r memUserRepo) CountByMembership(_ context.Context, level domain.MembershipLevel) (int64, error) {
	var n int64
	for _, u := range r.s.users {
		if u.MembershipLevel == level {
			n++
		}
	}
	return n, nil
}

func (r memUserRepo) DeleteAll(_ context.Context) error {
	r.s.users = nil
	return nil
}

type memStoreRepo struct{ s *memStore }

func (r memStoreRepo) Create(_ context.Context, st *domain.Store) error {
	st.ID = uuid.New()
	r.s.stores = append(r.s.stores, *st)
	return nil
}

func (r memStoreRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.s.stores)), nil
}

func (r memStoreRepo) CountByCategory(_ context.Context, category domain.FoodCategory) (int64, error) {
	var n int64
	for _, st := range r.s.stores {
		if st.Category == category {
			n++
		}
	}
	return n, nil
}

func (r memStoreRepo) DeleteAll(_ context.Context) error {
	r.s.stores = nil
	return nil
}

type memProductRepo struct{ s *memStore }

func (r memProductRepo) Create(_ context.Context, p *domain.Product) error {
	p.ID = uuid.New()
	r.s.products = append(r.s.products, *p)
	return nil
}

func (r memProductRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.s.products)), nil
}

func (r memProductRepo) DeleteAll(_ context.Context) error {
	r.s.products = nil
	return nil
}

type memEventRepo struct{ s *memStore }

func (r memEventRepo) Create(_ context.Context, e *domain.Event) error {
	e.ID = uuid.New()
	r.s.events = append(r.s.events, *e)
	return nil
}

func (r memEventRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.s.events)), nil
}

func (r memEventRepo) CountByCategory(_ context.Context, category domain.EventCategory) (int64, error) {
	var n int64
	for _, e := range r.s.events {
		if e.Category == category {
			n++
		}
	}
	return n, nil
}

func (r memEventRepo) DeleteAll(_ context.Context) error {
	r.s.events = nil
	return nil
}

func newTestAdmin() (*adminService, *memStore) {
	s := &memStore{}
	return NewAdminService(memUserRepo{s}, memStoreRepo{s}, memProductRepo{s}, memEventRepo{s}), s
}

func TestSeedWithExplicitCounts(t *testing.T) {
	svc, store := newTestAdmin()

	users, stores, products, events := 4, 3, 6, 2
	result, err := svc.Seed(context.Background(), SeedRequest{
		Users:    &users,
		Stores:   &stores,
		Products: &products,
		Events:   &events,
	}, "admin@example.com")
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}

	if !result.Success {
		t.Error("expected success")
	}
	want := SeedCounts{Users: 4, Stores: 3, Products: 6, Events: 2}
	if result.Counts != want {
		t.Errorf("counts = %+v, want %+v", result.Counts, want)
	}
	if len(store.products) != 6 {
		t.Errorf("persisted products = %d, want 6", len(store.products))
	}

	for _, e := range store.events {
		if e.AvailableTickets > e.Capacity || e.AvailableTickets < 0 {
			t.Errorf("seeded event has availability %d outside [0, %d]", e.AvailableTickets, e.Capacity)
		}
	}
	for _, st := range store.stores {
		if !st.Category.IsValid() {
			t.Errorf("seeded store has invalid category %q", st.Category)
		}
	}
}

func TestClearAndSeedWipesFirst(t *testing.T) {
	svc, store := newTestAdmin()

	one := 1
	if _, err := svc.Seed(context.Background(), SeedRequest{Users: &one, Stores: &one, Products: &one, Events: &one}, "admin@example.com"); err != nil {
		t.Fatalf("initial Seed: %v", err)
	}

	result, err := svc.ClearAndSeed(context.Background(), "admin@example.com")
	if err != nil {
		t.Fatalf("ClearAndSeed: %v", err)
	}

	if len(store.users) != defaultSeedUsers {
		t.Errorf("users = %d, want %d (cleared then reseeded)", len(store.users), defaultSeedUsers)
	}
	if result.Counts.Stores != defaultSeedStores {
		t.Errorf("store count = %d, want %d", result.Counts.Stores, defaultSeedStores)
	}
}

func TestStatsAggregation(t *testing.T) {
	svc, store := newTestAdmin()

	two := 2
	if _, err := svc.Seed(context.Background(), SeedRequest{Users: &two, Stores: &two, Products: &two, Events: &two}, "admin@example.com"); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	stats, err := svc.Stats(context.Background(), "admin@example.com")
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}

	if stats.DatabaseStats.TotalRecords != 8 {
		t.Errorf("total records = %d, want 8", stats.DatabaseStats.TotalRecords)
	}
	if stats.CheckedBy != "admin@example.com" {
		t.Errorf("checked_by = %q", stats.CheckedBy)
	}

	dist := stats.MembershipDistribution
	if dist.Silver+dist.Gold+dist.Platinum != int64(len(store.users)) {
		t.Errorf("membership distribution %+v does not sum to %d users", dist, len(store.users))
	}
}

func TestBackupIncludesStats(t *testing.T) {
	svc, _ := newTestAdmin()

	result, err := svc.Backup(context.Background(), "admin@example.com")
	if err != nil {
		t.Fatalf("Backup: %v", err)
	}
	if !result.BackupCreated {
		t.Error("expected backup_created")
	}
	if result.Stats.CheckedBy != "admin@example.com" {
		t.Errorf("stats.checked_by = %q", result.Stats.CheckedBy)
	}
}
