package store

import (
	"context"
	"fmt"

	"myFoodMarket/domain"
	"myFoodMarket/pkg/logger"
	"myFoodMarket/pkg/metrics"

	"github.com/google/uuid"
)

// StoreRepository contract interface
type StoreRepository interface {
	Create(ctx context.Context, store *domain.Store) error
	FindByID(ctx context.Context, id uuid.UUID) (domain.Store, error)
	FindAll(ctx context.Context, page domain.Page) ([]domain.Store, error)
	Search(ctx context.Context, filter domain.StoreFilter) ([]domain.Store, error)
	FindByCategory(ctx context.Context, category domain.FoodCategory, page domain.Page) ([]domain.Store, error)
	FindNearby(ctx context.Context, box domain.BoundingBox, limit int) ([]domain.Store, error)
	FindFeatured(ctx context.Context, limit int) ([]domain.Store, error)
	FindOpen(ctx context.Context, limit int) ([]domain.Store, error)
	Update(ctx context.Context, store *domain.Store) error
	Delete(ctx context.Context, id uuid.UUID) error
	ApplyRating(ctx context.Context, id uuid.UUID, rating float64) (domain.Store, error)
}

// ProductRepository is the slice of the product repo the store service needs.
type ProductRepository interface {
	FindByStore(ctx context.Context, storeID uuid.UUID) ([]domain.Product, error)
}

type storeService struct {
	storeRepo   StoreRepository
	productRepo ProductRepository
}

func NewStoreService(storeRepo StoreRepository, productRepo ProductRepository) *storeService {
	return &storeService{
		storeRepo:   storeRepo,
		productRepo: productRepo,
	}
}

const featuredStoreLimit = 10

// StoreUpdate carries the optional fields of a store update; nil means keep.
type StoreUpdate struct {
	Name            *string
	Description     *string
	Category        *domain.FoodCategory
	DeliveryTime    *string
	Address         *string
	Phone           *string
	IsOpen          *bool
	Latitude        *float64
	Longitude       *float64
	Specialties     *[]string
	Features        *[]string
	PriceRange      *domain.PriceRange
	ImageName       *string
	BackgroundColor *string
}

func (s *storeService) GetAllStores(ctx context.Context, page domain.Page) ([]domain.Store, error) {
	return s.storeRepo.FindAll(ctx, page)
}

func (s *storeService) GetStore(ctx context.Context, id uuid.UUID) (domain.Store, error) {
	return s.storeRepo.FindByID(ctx, id)
}

func (s *storeService) SearchStores(ctx context.Context, filter domain.StoreFilter) ([]domain.Store, error) {
	return s.storeRepo.Search(ctx, filter)
}

func (s *storeService) GetStoresByCategory(ctx context.Context, category domain.FoodCategory, page domain.Page) ([]domain.Store, error) {
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: invalid category", domain.ErrValidation)
	}

	return s.storeRepo.FindByCategory(ctx, category, page)
}

func (s *storeService) GetNearbyStores(ctx context.Context, lat, lng, radiusKm float64, limit int) ([]domain.Store, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, fmt.Errorf("%w: coordinates out of range", domain.ErrValidation)
	}

	if radiusKm <= 0 {
		radiusKm = 5.0
	}

	return s.storeRepo.FindNearby(ctx, domain.NewBoundingBox(lat, lng, radiusKm), limit)
}

func (s *storeService) GetFeaturedStores(ctx context.Context) ([]domain.Store, error) {
	return s.storeRepo.FindFeatured(ctx, featuredStoreLimit)
}

func (s *storeService) GetOpenStores(ctx context.Context, limit int) ([]domain.Store, error) {
	return s.storeRepo.FindOpen(ctx, limit)
}

func (s *storeService) GetStoreProducts(ctx context.Context, storeID uuid.UUID) ([]domain.Product, error) {
	if _, err := s.storeRepo.FindByID(ctx, storeID); err != nil {
		return nil, err
	}

	return s.productRepo.FindByStore(ctx, storeID)
}

func (s *storeService) CreateStore(ctx context.Context, store *domain.Store) (domain.Store, error) {
	if store.Name == "" || store.Description == "" {
		return domain.Store{}, fmt.Errorf("%w: name and description are required", domain.ErrValidation)
	}

	if !store.Category.IsValid() {
		return domain.Store{}, fmt.Errorf("%w: invalid category", domain.ErrValidation)
	}

	if store.DeliveryTime == "" || store.Address == "" {
		return domain.Store{}, fmt.Errorf("%w: delivery time and address are required", domain.ErrValidation)
	}

	if store.Latitude != nil && (*store.Latitude < -90 || *store.Latitude > 90) {
		return domain.Store{}, fmt.Errorf("%w: latitude out of range", domain.ErrValidation)
	}

	if store.Longitude != nil && (*store.Longitude < -180 || *store.Longitude > 180) {
		return domain.Store{}, fmt.Errorf("%w: longitude out of range", domain.ErrValidation)
	}

	if store.PriceRange == "" {
		store.PriceRange = domain.PriceModerate
	}
	if !store.PriceRange.IsValid() {
		return domain.Store{}, fmt.Errorf("%w: invalid price range", domain.ErrValidation)
	}

	// New stores always start unrated.
	store.Rating = 0
	store.ReviewCount = 0

	if err := s.storeRepo.Create(ctx, store); err != nil {
		logger.Error("Failed to create store", err)
		return domain.Store{}, err
	}

	return *store, nil
}

func (s *storeService) UpdateStore(ctx context.Context, id uuid.UUID, update StoreUpdate) (domain.Store, error) {
	store, err := s.storeRepo.FindByID(ctx, id)
	if err != nil {
		return domain.Store{}, err
	}

	if update.Name != nil {
		store.Name = *update.Name
	}
	if update.Description != nil {
		store.Description = *update.Description
	}
	if update.Category != nil {
		if !update.Category.IsValid() {
			return domain.Store{}, fmt.Errorf("%w: invalid category", domain.ErrValidation)
		}
		store.Category = *update.Category
	}
	if update.DeliveryTime != nil {
		store.DeliveryTime = *update.DeliveryTime
	}
	if update.Address != nil {
		store.Address = *update.Address
	}
	if update.Phone != nil {
		store.Phone = update.Phone
	}
	if update.IsOpen != nil {
		store.IsOpen = *update.IsOpen
	}
	if update.Latitude != nil {
		store.Latitude = update.Latitude
	}
	if update.Longitude != nil {
		store.Longitude = update.Longitude
	}
	if update.Specialties != nil {
		store.Specialties = *update.Specialties
	}
	if update.Features != nil {
		store.Features = *update.Features
	}
	if update.PriceRange != nil {
		if !update.PriceRange.IsValid() {
			return domain.Store{}, fmt.Errorf("%w: invalid price range", domain.ErrValidation)
		}
		store.PriceRange = *update.PriceRange
	}
	if update.ImageName != nil {
		store.ImageName = update.ImageName
	}
	if update.BackgroundColor != nil {
		store.BackgroundColor = update.BackgroundColor
	}

	if err := s.storeRepo.Update(ctx, &store); err != nil {
		logger.Error("Failed to update store", err)
		return domain.Store{}, err
	}

	return store, nil
}

func (s *storeService) DeleteStore(ctx context.Context, id uuid.UUID) error {
	return s.storeRepo.Delete(ctx, id)
}

// RateStore validates the rating and delegates the running-average update to
// the repository, which applies it atomically.
func (s *storeService) RateStore(ctx context.Context, id uuid.UUID, rating float64) (domain.Store, error) {
	if rating < 1 || rating > 5 {
		return domain.Store{}, fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrValidation)
	}

	store, err := s.storeRepo.ApplyRating(ctx, id, rating)
	if err != nil {
		return domain.Store{}, err
	}

	metrics.RatingsSubmittedTotal.WithLabelValues("store").Inc()
	return store, nil
}
