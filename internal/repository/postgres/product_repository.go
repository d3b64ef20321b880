package postgres

import (
	"context"
	"errors"
	"fmt"

	"myFoodMarket/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{
		DB: db,
	}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := r.DB.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	var product domain.Product

	err := r.DB.WithContext(ctx).Preload("Store").First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Product{}, fmt.Errorf("%w: product %s", domain.ErrNotFound, id)
		}
		return domain.Product{}, fmt.Errorf("failed to find product: %w", err)
	}

	return product, nil
}

// FindAll returns the public listing: available products only.
func (r *ProductRepository) FindAll(ctx context.Context, page domain.Page) ([]domain.Product, error) {
	page = page.Normalize()

	var products []domain.Product
	err := r.DB.WithContext(ctx).
		Where("is_available = ?", true).
		Preload("Store").
		Order("rating DESC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}

	return products, nil
}

// applyProductFilter composes one AND predicate per present filter field.
// Availability and preloading are the caller's concern.
func applyProductFilter(query *gorm.DB, filter domain.ProductFilter) *gorm.DB {
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}

	if filter.StoreID != nil {
		query = query.Where("store_id = ?", *filter.StoreID)
	}

	if filter.MinPrice != nil {
		query = query.Where("base_price >= ?", *filter.MinPrice)
	}

	if filter.MaxPrice != nil {
		query = query.Where("base_price <= ?", *filter.MaxPrice)
	}

	if filter.MinRating != nil {
		query = query.Where("rating >= ?", *filter.MinRating)
	}

	if filter.IsOrganic != nil {
		query = query.Where("is_organic = ?", *filter.IsOrganic)
	}

	if filter.IsVegan != nil {
		query = query.Where("is_vegan = ?", *filter.IsVegan)
	}

	if filter.IsGlutenFree != nil {
		query = query.Where("is_gluten_free = ?", *filter.IsGlutenFree)
	}

	if filter.IsSpicy != nil {
		query = query.Where("is_spicy = ?", *filter.IsSpicy)
	}

	if filter.IsSponsored != nil {
		query = query.Where("is_sponsored = ?", *filter.IsSponsored)
	}

	if filter.MaxCalories != nil {
		query = query.Where("calories IS NOT NULL AND calories <= ?", *filter.MaxCalories)
	}

	if filter.Query != nil {
		like := "%" + *filter.Query + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", like, like)
	}

	return query
}

// healthyProducts matches organic, vegan, or low-calorie items.
func healthyProducts(query *gorm.DB) *gorm.DB {
	return query.Where(
		"is_organic = ? OR is_vegan = ? OR (calories IS NOT NULL AND calories <= ?)",
		true, true, 500,
	)
}

// quickPreparation matches short preparation times; the column is free text
// ("10 min"), so this is a pattern match, not an ordering.
func quickPreparation(query *gorm.DB) *gorm.DB {
	return query.Where(
		"preparation_time ILIKE ? OR preparation_time ILIKE ? OR preparation_time ILIKE ?",
		"%5%", "%10%", "%15%",
	)
}

// Search applies the filter on top of the implicit availability predicate
// every public listing carries.
func (r *ProductRepository) Search(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	query := applyProductFilter(
		r.DB.WithContext(ctx).Model(&domain.Product{}).Where("is_available = ?", true),
		filter,
	).Preload("Store")

	page := filter.Page.Normalize()

	var products []domain.Product
	err := query.
		Order(filter.Sort.OrderClause()).
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	return products, nil
}

func (r *ProductRepository) FindByCategory(ctx context.Context, category domain.FoodCategory, page domain.Page) ([]domain.Product, error) {
	page = page.Normalize()

	var products []domain.Product
	err := r.DB.WithContext(ctx).
		Where("category = ? AND is_available = ?", category, true).
		Preload("Store").
		Order("rating DESC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find products by category: %w", err)
	}

	return products, nil
}

func (r *ProductRepository) FindByStore(ctx context.Context, storeID uuid.UUID) ([]domain.Product, error) {
	var products []domain.Product
	err := r.DB.WithContext(ctx).
		Where("store_id = ? AND is_available = ?", storeID, true).
		Order("rating DESC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find store products: %w", err)
	}

	return products, nil
}

func (r *ProductRepository) FindFeatured(ctx context.Context, limit int) ([]domain.Product, error) {
	var products []domain.Product
	err := r.DB.WithContext(ctx).
		Where("is_sponsored = ? AND is_available = ?", true, true).
		Preload("Store").
		Order("rating DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find featured products: %w", err)
	}

	return products, nil
}

// FindDeals lists products carrying an original price, i.e. discounted ones.
func (r *ProductRepository) FindDeals(ctx context.Context, limit int) ([]domain.Product, error) {
	var products []domain.Product
	err := r.DB.WithContext(ctx).
		Where("original_price IS NOT NULL AND is_available = ?", true).
		Preload("Store").
		Order("rating DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find deals: %w", err)
	}

	return products, nil
}

func (r *ProductRepository) FindTrending(ctx context.Context, limit int) ([]domain.Product, error) {
	var products []domain.Product
	err := r.DB.WithContext(ctx).
		Where("rating >= ? AND review_count >= ? AND is_available = ?", 4.0, 10, true).
		Preload("Store").
		Order("review_count DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find trending products: %w", err)
	}

	return products, nil
}

func (r *ProductRepository) FindHealthy(ctx context.Context, limit int) ([]domain.Product, error) {
	var products []domain.Product
	err := healthyProducts(r.DB.WithContext(ctx).Model(&domain.Product{})).
		Where("is_available = ?", true).
		Preload("Store").
		Order("rating DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find healthy products: %w", err)
	}

	return products, nil
}

func (r *ProductRepository) FindQuick(ctx context.Context, limit int) ([]domain.Product, error) {
	var products []domain.Product
	err := quickPreparation(r.DB.WithContext(ctx).Model(&domain.Product{})).
		Where("is_available = ?", true).
		Preload("Store").
		Order("rating DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find quick products: %w", err)
	}

	return products, nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	result := r.DB.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", product.ID).
		Select("name", "description", "full_description", "category", "base_price",
			"original_price", "preparation_time", "calories", "is_organic", "is_vegan",
			"is_gluten_free", "is_spicy", "is_sponsored", "is_available", "stock_quantity",
			"ingredients", "allergens", "tags", "image_name", "updated_at").
		Updates(product)
	if result.Error != nil {
		return fmt.Errorf("failed to update product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: product %s", domain.ErrNotFound, product.ID)
	}

	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.DB.WithContext(ctx).Delete(&domain.Product{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: product %s", domain.ErrNotFound, id)
	}

	return nil
}

// ApplyRating folds the new rating into the running average in a single
// UPDATE; average and review count commit together.
func (r *ProductRepository) ApplyRating(ctx context.Context, id uuid.UUID, rating float64) (domain.Product, error) {
	var product domain.Product
	result := r.DB.WithContext(ctx).Model(&product).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"rating":       gorm.Expr("(rating * review_count + ?) / (review_count + 1)", rating),
			"review_count": gorm.Expr("review_count + 1"),
		})
	if result.Error != nil {
		return domain.Product{}, fmt.Errorf("failed to apply product rating: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.Product{}, fmt.Errorf("%w: product %s", domain.ErrNotFound, id)
	}

	return product, nil
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&domain.Product{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	return count, nil
}

func (r *ProductRepository) DeleteAll(ctx context.Context) error {
	if err := r.DB.WithContext(ctx).Where("1 = 1").Delete(&domain.Product{}).Error; err != nil {
		return fmt.Errorf("failed to clear products: %w", err)
	}

	return nil
}
