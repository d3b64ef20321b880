package product

import (
	"context"
	"fmt"

	"myFoodMarket/domain"
	"myFoodMarket/pkg/logger"
	"myFoodMarket/pkg/metrics"

	"github.com/google/uuid"
)

// ProductRepository contract interface
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (domain.Product, error)
	FindAll(ctx context.Context, page domain.Page) ([]domain.Product, error)
	Search(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	FindByCategory(ctx context.Context, category domain.FoodCategory, page domain.Page) ([]domain.Product, error)
	FindFeatured(ctx context.Context, limit int) ([]domain.Product, error)
	FindDeals(ctx context.Context, limit int) ([]domain.Product, error)
	FindTrending(ctx context.Context, limit int) ([]domain.Product, error)
	FindHealthy(ctx context.Context, limit int) ([]domain.Product, error)
	FindQuick(ctx context.Context, limit int) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	ApplyRating(ctx context.Context, id uuid.UUID, rating float64) (domain.Product, error)
}

// StoreRepository is the slice of the store repo the product service needs.
type StoreRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (domain.Store, error)
}

type productService struct {
	productRepo ProductRepository
	storeRepo   StoreRepository
}

func NewProductService(productRepo ProductRepository, storeRepo StoreRepository) *productService {
	return &productService{
		productRepo: productRepo,
		storeRepo:   storeRepo,
	}
}

const (
	featuredProductLimit = 10
	dealsLimit           = 20
	trendingLimit        = 15
	healthyLimit         = 20
	quickLimit           = 20
)

// ProductUpdate carries the optional fields of a product update; nil means keep.
type ProductUpdate struct {
	Name            *string
	Description     *string
	FullDescription *string
	Category        *domain.FoodCategory
	BasePrice       *float64
	OriginalPrice   *float64
	PreparationTime *string
	Calories        *int
	IsOrganic       *bool
	IsVegan         *bool
	IsGlutenFree    *bool
	IsSpicy         *bool
	IsSponsored     *bool
	IsAvailable     *bool
	StockQuantity   *int
	Ingredients     *[]string
	Allergens       *[]string
	Tags            *[]string
	ImageName       *string
}

func (s *productService) GetAllProducts(ctx context.Context, page domain.Page) ([]domain.Product, error) {
	return s.productRepo.FindAll(ctx, page)
}

func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

func (s *productService) SearchProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	return s.productRepo.Search(ctx, filter)
}

func (s *productService) GetProductsByCategory(ctx context.Context, category domain.FoodCategory, page domain.Page) ([]domain.Product, error) {
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: invalid category", domain.ErrValidation)
	}

	return s.productRepo.FindByCategory(ctx, category, page)
}

func (s *productService) GetFeaturedProducts(ctx context.Context) ([]domain.Product, error) {
	return s.productRepo.FindFeatured(ctx, featuredProductLimit)
}

func (s *productService) GetDeals(ctx context.Context) ([]domain.Product, error) {
	return s.productRepo.FindDeals(ctx, dealsLimit)
}

func (s *productService) GetTrendingProducts(ctx context.Context) ([]domain.Product, error) {
	return s.productRepo.FindTrending(ctx, trendingLimit)
}

// GetHealthyProducts lists organic, vegan, or low-calorie items.
func (s *productService) GetHealthyProducts(ctx context.Context) ([]domain.Product, error) {
	return s.productRepo.FindHealthy(ctx, healthyLimit)
}

func (s *productService) GetQuickProducts(ctx context.Context) ([]domain.Product, error) {
	return s.productRepo.FindQuick(ctx, quickLimit)
}

// CreateProduct requires an existing parent store; every product belongs to
// exactly one store.
func (s *productService) CreateProduct(ctx context.Context, product *domain.Product) (domain.Product, error) {
	if product.Name == "" || product.Description == "" {
		return domain.Product{}, fmt.Errorf("%w: name and description are required", domain.ErrValidation)
	}

	if !product.Category.IsValid() {
		return domain.Product{}, fmt.Errorf("%w: invalid category", domain.ErrValidation)
	}

	if product.BasePrice <= 0 {
		return domain.Product{}, fmt.Errorf("%w: base price must be greater than 0", domain.ErrValidation)
	}

	if product.StoreID == uuid.Nil {
		return domain.Product{}, fmt.Errorf("%w: store id is required", domain.ErrValidation)
	}

	if _, err := s.storeRepo.FindByID(ctx, product.StoreID); err != nil {
		return domain.Product{}, err
	}

	if product.PreparationTime == "" {
		product.PreparationTime = "15 min"
	}

	// New products always start unrated.
	product.Rating = 0
	product.ReviewCount = 0

	if err := s.productRepo.Create(ctx, product); err != nil {
		logger.Error("Failed to create product", err)
		return domain.Product{}, err
	}

	return s.productRepo.FindByID(ctx, product.ID)
}

func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, update ProductUpdate) (domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	if update.Name != nil {
		product.Name = *update.Name
	}
	if update.Description != nil {
		product.Description = *update.Description
	}
	if update.FullDescription != nil {
		product.FullDescription = update.FullDescription
	}
	if update.Category != nil {
		if !update.Category.IsValid() {
			return domain.Product{}, fmt.Errorf("%w: invalid category", domain.ErrValidation)
		}
		product.Category = *update.Category
	}
	if update.BasePrice != nil {
		if *update.BasePrice <= 0 {
			return domain.Product{}, fmt.Errorf("%w: base price must be greater than 0", domain.ErrValidation)
		}
		product.BasePrice = *update.BasePrice
	}
	if update.OriginalPrice != nil {
		product.OriginalPrice = update.OriginalPrice
	}
	if update.PreparationTime != nil {
		product.PreparationTime = *update.PreparationTime
	}
	if update.Calories != nil {
		product.Calories = update.Calories
	}
	if update.IsOrganic != nil {
		product.IsOrganic = *update.IsOrganic
	}
	if update.IsVegan != nil {
		product.IsVegan = *update.IsVegan
	}
	if update.IsGlutenFree != nil {
		product.IsGlutenFree = *update.IsGlutenFree
	}
	if update.IsSpicy != nil {
		product.IsSpicy = *update.IsSpicy
	}
	if update.IsSponsored != nil {
		product.IsSponsored = *update.IsSponsored
	}
	if update.IsAvailable != nil {
		product.IsAvailable = *update.IsAvailable
	}
	if update.StockQuantity != nil {
		product.StockQuantity = update.StockQuantity
	}
	if update.Ingredients != nil {
		product.Ingredients = *update.Ingredients
	}
	if update.Allergens != nil {
		product.Allergens = *update.Allergens
	}
	if update.Tags != nil {
		product.Tags = *update.Tags
	}
	if update.ImageName != nil {
		product.ImageName = update.ImageName
	}

	if err := s.productRepo.Update(ctx, &product); err != nil {
		logger.Error("Failed to update product", err)
		return domain.Product{}, err
	}

	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.productRepo.Delete(ctx, id)
}

// RateProduct validates the rating and delegates the running-average update
// to the repository, which applies it atomically.
func (s *productService) RateProduct(ctx context.Context, id uuid.UUID, rating float64) (domain.Product, error) {
	if rating < 1 || rating > 5 {
		return domain.Product{}, fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrValidation)
	}

	product, err := s.productRepo.ApplyRating(ctx, id, rating)
	if err != nil {
		return domain.Product{}, err
	}

	metrics.RatingsSubmittedTotal.WithLabelValues("product").Inc()
	return product, nil
}
