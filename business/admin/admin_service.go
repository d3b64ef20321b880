package admin

import (
	"context"
	"time"

	"myFoodMarket/domain"
	"myFoodMarket/pkg/logger"
)

// Repositories consumed by the admin service. Only the slices needed for
// seeding and statistics.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Count(ctx context.Context) (int64, error)
	CountByMembership(ctx context.Context, level domain.MembershipLevel) (int64, error)
	DeleteAll(ctx context.Context) error
}

type StoreRepository interface {
	Create(ctx context.Context, store *domain.Store) error
	Count(ctx context.Context) (int64, error)
	CountByCategory(ctx context.Context, category domain.FoodCategory) (int64, error)
	DeleteAll(ctx context.Context) error
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) error
}

type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	Count(ctx context.Context) (int64, error)
	CountByCategory(ctx context.Context, category domain.EventCategory) (int64, error)
	DeleteAll(ctx context.Context) error
}

type adminService struct {
	userRepo    UserRepository
	storeRepo   StoreRepository
	productRepo ProductRepository
	eventRepo   EventRepository
}

func NewAdminService(
	userRepo UserRepository,
	storeRepo StoreRepository,
	productRepo ProductRepository,
	eventRepo EventRepository,
) *adminService {
	return &adminService{
		userRepo:    userRepo,
		storeRepo:   storeRepo,
		productRepo: productRepo,
		eventRepo:   eventRepo,
	}
}

const (
	defaultSeedUsers    = 15
	defaultSeedStores   = 20
	defaultSeedProducts = 60
	defaultSeedEvents   = 25
)

type SeedRequest struct {
	Users    *int
	Stores   *int
	Products *int
	Events   *int
	Clear    bool
}

type SeedCounts struct {
	Users    int `json:"users"`
	Stores   int `json:"stores"`
	Products int `json:"products"`
	Events   int `json:"events"`
}

type SeedResult struct {
	Success   bool       `json:"success"`
	Message   string     `json:"message"`
	Counts    SeedCounts `json:"counts"`
	SeededBy  string     `json:"seededBy"`
	Timestamp string     `json:"timestamp"`
}

type DatabaseStats struct {
	TotalRecords int64 `json:"total_records"`
	Users        int64 `json:"users"`
	Stores       int64 `json:"stores"`
	Products     int64 `json:"products"`
	Events       int64 `json:"events"`
}

type MembershipDistribution struct {
	Silver   int64 `json:"silver"`
	Gold     int64 `json:"gold"`
	Platinum int64 `json:"platinum"`
}

type StoreCategoryCounts struct {
	Pizza  int64 `json:"pizza"`
	Sushi  int64 `json:"sushi"`
	Burger int64 `json:"burger"`
}

type EventCategoryCounts struct {
	Gastronomico int64 `json:"gastronomico"`
	Bebidas      int64 `json:"bebidas"`
	Educativo    int64 `json:"educativo"`
}

type StatsResult struct {
	DatabaseStats          DatabaseStats          `json:"database_stats"`
	MembershipDistribution MembershipDistribution `json:"user_distribution"`
	StoreCategories        StoreCategoryCounts    `json:"store_categories"`
	EventCategories        EventCategoryCounts    `json:"event_categories"`
	CheckedBy              string                 `json:"checked_by"`
	Timestamp              string                 `json:"timestamp"`
}

type BackupResult struct {
	BackupCreated bool        `json:"backup_created"`
	Timestamp     string      `json:"timestamp"`
	Stats         StatsResult `json:"stats"`
	Note          string      `json:"note"`
}

// Seed writes fixture data. A failed run leaves whatever was already written
// in place; there is no transactional rollback across entities.
func (s *adminService) Seed(ctx context.Context, req SeedRequest, seededBy string) (SeedResult, error) {
	if req.Clear {
		if err := s.clear(ctx); err != nil {
			return SeedResult{}, err
		}
	}

	users, err := s.seedUsers(ctx, valueOrDefault(req.Users, defaultSeedUsers))
	if err != nil {
		return SeedResult{}, err
	}

	stores, storeIDs, err := s.seedStores(ctx, valueOrDefault(req.Stores, defaultSeedStores))
	if err != nil {
		return SeedResult{}, err
	}

	products, err := s.seedProducts(ctx, valueOrDefault(req.Products, defaultSeedProducts), storeIDs)
	if err != nil {
		return SeedResult{}, err
	}

	events, err := s.seedEvents(ctx, valueOrDefault(req.Events, defaultSeedEvents))
	if err != nil {
		return SeedResult{}, err
	}

	logger.Info("Database seeded",
		"users", users, "stores", stores, "products", products, "events", events)

	return SeedResult{
		Success:   true,
		Message:   "Database seeded successfully",
		Counts:    SeedCounts{Users: users, Stores: stores, Products: products, Events: events},
		SeededBy:  seededBy,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// ClearAndSeed wipes every collection and reseeds with the default amounts.
func (s *adminService) ClearAndSeed(ctx context.Context, seededBy string) (SeedResult, error) {
	result, err := s.Seed(ctx, SeedRequest{Clear: true}, seededBy)
	if err != nil {
		return SeedResult{}, err
	}

	result.Message = "Database cleared and seeded successfully"
	return result, nil
}

func (s *adminService) clear(ctx context.Context) error {
	// Products before stores: the foreign key points at stores.
	if err := s.productRepo.DeleteAll(ctx); err != nil {
		return err
	}
	if err := s.storeRepo.DeleteAll(ctx); err != nil {
		return err
	}
	if err := s.eventRepo.DeleteAll(ctx); err != nil {
		return err
	}
	return s.userRepo.DeleteAll(ctx)
}

func (s *adminService) Stats(ctx context.Context, checkedBy string) (StatsResult, error) {
	userCount, err := s.userRepo.Count(ctx)
	if err != nil {
		return StatsResult{}, err
	}
	storeCount, err := s.storeRepo.Count(ctx)
	if err != nil {
		return StatsResult{}, err
	}
	productCount, err := s.productRepo.Count(ctx)
	if err != nil {
		return StatsResult{}, err
	}
	eventCount, err := s.eventRepo.Count(ctx)
	if err != nil {
		return StatsResult{}, err
	}

	silver, err := s.userRepo.CountByMembership(ctx, domain.MembershipSilver)
	if err != nil {
		return StatsResult{}, err
	}
	gold, err := s.userRepo.CountByMembership(ctx, domain.MembershipGold)
	if err != nil {
		return StatsResult{}, err
	}
	platinum, err := s.userRepo.CountByMembership(ctx, domain.MembershipPlatinum)
	if err != nil {
		return StatsResult{}, err
	}

	pizza, err := s.storeRepo.CountByCategory(ctx, domain.CategoryPizza)
	if err != nil {
		return StatsResult{}, err
	}
	sushi, err := s.storeRepo.CountByCategory(ctx, domain.CategorySushi)
	if err != nil {
		return StatsResult{}, err
	}
	burger, err := s.storeRepo.CountByCategory(ctx, domain.CategoryBurger)
	if err != nil {
		return StatsResult{}, err
	}

	gastronomico, err := s.eventRepo.CountByCategory(ctx, domain.EventGastronomico)
	if err != nil {
		return StatsResult{}, err
	}
	bebidas, err := s.eventRepo.CountByCategory(ctx, domain.EventBebidas)
	if err != nil {
		return StatsResult{}, err
	}
	educativo, err := s.eventRepo.CountByCategory(ctx, domain.EventEducativo)
	if err != nil {
		return StatsResult{}, err
	}

	return StatsResult{
		DatabaseStats: DatabaseStats{
			TotalRecords: userCount + storeCount + productCount + eventCount,
			Users:        userCount,
			Stores:       storeCount,
			Products:     productCount,
			Events:       eventCount,
		},
		MembershipDistribution: MembershipDistribution{Silver: silver, Gold: gold, Platinum: platinum},
		StoreCategories:        StoreCategoryCounts{Pizza: pizza, Sushi: sushi, Burger: burger},
		EventCategories:        EventCategoryCounts{Gastronomico: gastronomico, Bebidas: bebidas, Educativo: educativo},
		CheckedBy:              checkedBy,
		Timestamp:              time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// Backup records a stats snapshot. Actual dump scheduling lives with the
// hosting platform, not the API.
func (s *adminService) Backup(ctx context.Context, requestedBy string) (BackupResult, error) {
	stats, err := s.Stats(ctx, requestedBy)
	if err != nil {
		return BackupResult{}, err
	}

	return BackupResult{
		BackupCreated: true,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		Stats:         stats,
		Note:          "Snapshot recorded; physical backups are managed by the database platform",
	}, nil
}

func valueOrDefault(v *int, def int) int {
	if v == nil || *v <= 0 {
		return def
	}
	return *v
}
