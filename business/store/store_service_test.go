package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"myFoodMarket/domain"

	"github.com/google/uuid"
)

// fakeStoreRepo applies ratings with the same running-average formula the
// real repository executes in SQL.
type fakeStoreRepo struct {
	stores     map[uuid.UUID]*domain.Store
	lastNearby domain.BoundingBox
}

func newFakeStoreRepo() *fakeStoreRepo {
	return &fakeStoreRepo{stores: make(map[uuid.UUID]*domain.Store)}
}

func (f *fakeStoreRepo) Create(_ context.Context, s *domain.Store) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	stored := *s
	f.stores[s.ID] = &stored
	return nil
}

func (f *fakeStoreRepo) FindByID(_ context.Context, id uuid.UUID) (domain.Store, error) {
	s, ok := f.stores[id]
	if !ok {
		return domain.Store{}, fmt.Errorf("%w: store %s", domain.ErrNotFound, id)
	}
	return *s, nil
}

func (f *fakeStoreRepo) FindAll(_ context.Context, _ domain.Page) ([]domain.Store, error) {
	var out []domain.Store
	for _, s := range f.stores {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeStoreRepo) Search(_ context.Context, _ domain.StoreFilter) ([]domain.Store, error) {
	return nil, nil
}

func (f *fakeStoreRepo) FindByCategory(_ context.Context, _ domain.FoodCategory, _ domain.Page) ([]domain.Store, error) {
	return nil, nil
}

func (f *fakeStoreRepo) FindNearby(_ context.Context, box domain.BoundingBox, _ int) ([]domain.Store, error) {
	f.lastNearby = box
	return nil, nil
}

func (f *fakeStoreRepo) FindFeatured(_ context.Context, _ int) ([]domain.Store, error) {
	return nil, nil
}

func (f *fakeStoreRepo) FindOpen(_ context.Context, _ int) ([]domain.Store, error) {
	return nil, nil
}

func (f *fakeStoreRepo) Update(_ context.Context, s *domain.Store) error {
	if _, ok := f.stores[s.ID]; !ok {
		return fmt.Errorf("%w: store %s", domain.ErrNotFound, s.ID)
	}
	stored := *s
	f.stores[s.ID] = &stored
	return nil
}

func (f *fakeStoreRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.stores[id]; !ok {
		return fmt.Errorf("%w: store %s", domain.ErrNotFound, id)
	}
	delete(f.stores, id)
	return nil
}

func (f *fakeStoreRepo) ApplyRating(_ context.Context, id uuid.UUID, rating float64) (domain.Store, error) {
	s, ok := f.stores[id]
	if !ok {
		return domain.Store{}, fmt.Errorf("%w: store %s", domain.ErrNotFound, id)
	}
	s.Rating, s.ReviewCount = domain.RunningAverage(s.Rating, s.ReviewCount, rating)
	return *s, nil
}

type fakeProductFinder struct {
	products map[uuid.UUID][]domain.Product
}

func (f *fakeProductFinder) FindByStore(_ context.Context, storeID uuid.UUID) ([]domain.Product, error) {
	return f.products[storeID], nil
}

func validStore() *domain.Store {
	return &domain.Store{
		Name:         "La Bella Napoli",
		Description:  "Wood-fired pizza",
		Category:     domain.CategoryPizza,
		DeliveryTime: "20-30 min",
		Address:      "Av. Insurgentes 100",
	}
}

func newTestService(repo *fakeStoreRepo) *storeService {
	return NewStoreService(repo, &fakeProductFinder{products: make(map[uuid.UUID][]domain.Product)})
}

func TestCreateStoreDefaultsAndValidation(t *testing.T) {
	repo := newFakeStoreRepo()
	svc := newTestService(repo)

	created, err := svc.CreateStore(context.Background(), validStore())
	if err != nil {
		t.Fatalf("CreateStore: %v", err)
	}
	if created.PriceRange != domain.PriceModerate {
		t.Errorf("PriceRange = %q, want default %q", created.PriceRange, domain.PriceModerate)
	}
	if created.Rating != 0 || created.ReviewCount != 0 {
		t.Error("new store should start unrated")
	}

	bad := validStore()
	bad.Category = "petfood"
	if _, err := svc.CreateStore(context.Background(), bad); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("invalid category: error = %v, want ErrValidation", err)
	}

	badLat := validStore()
	lat := 120.0
	badLat.Latitude = &lat
	if _, err := svc.CreateStore(context.Background(), badLat); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("latitude out of range: error = %v, want ErrValidation", err)
	}
}

func TestRateStoreRunningAverage(t *testing.T) {
	repo := newFakeStoreRepo()
	svc := newTestService(repo)

	s := validStore()
	s.Rating = 4.0
	s.ReviewCount = 9
	if err := repo.Create(context.Background(), s); err != nil {
		t.Fatalf("Create: %v", err)
	}

	rated, err := svc.RateStore(context.Background(), s.ID, 5.0)
	if err != nil {
		t.Fatalf("RateStore: %v", err)
	}

	if rated.ReviewCount != 10 {
		t.Errorf("ReviewCount = %d, want 10", rated.ReviewCount)
	}
	if math.Abs(rated.Rating-4.1) > 1e-9 {
		t.Errorf("Rating = %v, want 4.1", rated.Rating)
	}
}

func TestRateStoreRejectsOutOfRange(t *testing.T) {
	repo := newFakeStoreRepo()
	svc := newTestService(repo)

	for _, rating := range []float64{0, 0.5, 5.5, -1} {
		if _, err := svc.RateStore(context.Background(), uuid.New(), rating); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("rating %v: error = %v, want ErrValidation", rating, err)
		}
	}
}

func TestRateStoreUnknownID(t *testing.T) {
	repo := newFakeStoreRepo()
	svc := newTestService(repo)

	if _, err := svc.RateStore(context.Background(), uuid.New(), 4); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestGetNearbyStoresValidation(t *testing.T) {
	repo := newFakeStoreRepo()
	svc := newTestService(repo)

	if _, err := svc.GetNearbyStores(context.Background(), 91, 0, 5, 10); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("latitude 91: error = %v, want ErrValidation", err)
	}
	if _, err := svc.GetNearbyStores(context.Background(), 0, -181, 5, 10); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("longitude -181: error = %v, want ErrValidation", err)
	}
}

func TestGetNearbyStoresDefaultRadius(t *testing.T) {
	repo := newFakeStoreRepo()
	svc := newTestService(repo)

	if _, err := svc.GetNearbyStores(context.Background(), 19.4326, -99.1332, 0, 10); err != nil {
		t.Fatalf("GetNearbyStores: %v", err)
	}

	want := domain.NewBoundingBox(19.4326, -99.1332, 5.0)
	if repo.lastNearby != want {
		t.Errorf("bounding box = %+v, want default 5km box %+v", repo.lastNearby, want)
	}
}

func TestGetStoreProductsRequiresExistingStore(t *testing.T) {
	repo := newFakeStoreRepo()
	svc := newTestService(repo)

	if _, err := svc.GetStoreProducts(context.Background(), uuid.New()); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
