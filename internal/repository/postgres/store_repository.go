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

type StoreRepository struct {
	DB *gorm.DB
}

func NewStoreRepository(db *gorm.DB) *StoreRepository {
	return &StoreRepository{
		DB: db,
	}
}

func (r *StoreRepository) Create(ctx context.Context, store *domain.Store) error {
	if err := r.DB.WithContext(ctx).Create(store).Error; err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}

	return nil
}

func (r *StoreRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.Store, error) {
	var store domain.Store

	err := r.DB.WithContext(ctx).First(&store, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Store{}, fmt.Errorf("%w: store %s", domain.ErrNotFound, id)
		}
		return domain.Store{}, fmt.Errorf("failed to find store: %w", err)
	}

	return store, nil
}

func (r *StoreRepository) FindAll(ctx context.Context, page domain.Page) ([]domain.Store, error) {
	page = page.Normalize()

	var stores []domain.Store
	err := r.DB.WithContext(ctx).
		Order("rating DESC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&stores).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find stores: %w", err)
	}

	return stores, nil
}

// Search composes one AND predicate per present filter field.
func (r *StoreRepository) Search(ctx context.Context, filter domain.StoreFilter) ([]domain.Store, error) {
	query := r.DB.WithContext(ctx).Model(&domain.Store{})

	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}

	if filter.Location != nil {
		query = query.Where("address ILIKE ?", "%"+*filter.Location+"%")
	}

	if filter.IsOpen != nil {
		query = query.Where("is_open = ?", *filter.IsOpen)
	}

	if filter.MinRating != nil {
		query = query.Where("rating >= ?", *filter.MinRating)
	}

	if filter.PriceRange != nil {
		query = query.Where("price_range = ?", *filter.PriceRange)
	}

	if filter.Query != nil {
		like := "%" + *filter.Query + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", like, like)
	}

	if filter.Geo != nil {
		box := filter.Geo.Box()
		query = query.
			Where("latitude IS NOT NULL AND longitude IS NOT NULL").
			Where("latitude BETWEEN ? AND ?", box.MinLat, box.MaxLat).
			Where("longitude BETWEEN ? AND ?", box.MinLng, box.MaxLng)
	}

	page := filter.Page.Normalize()

	var stores []domain.Store
	err := query.
		Order(filter.Sort.OrderClause()).
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&stores).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search stores: %w", err)
	}

	return stores, nil
}

func (r *StoreRepository) FindByCategory(ctx context.Context, category domain.FoodCategory, page domain.Page) ([]domain.Store, error) {
	page = page.Normalize()

	var stores []domain.Store
	err := r.DB.WithContext(ctx).
		Where("category = ?", category).
		Order("rating DESC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&stores).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find stores by category: %w", err)
	}

	return stores, nil
}

// FindNearby filters to a bounding box around the center. Approximation only;
// no geodesic distance is computed.
func (r *StoreRepository) FindNearby(ctx context.Context, box domain.BoundingBox, limit int) ([]domain.Store, error) {
	if limit <= 0 || limit > domain.MaxPageLimit {
		limit = domain.DefaultPageLimit
	}

	var stores []domain.Store
	err := r.DB.WithContext(ctx).
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Where("latitude BETWEEN ? AND ?", box.MinLat, box.MaxLat).
		Where("longitude BETWEEN ? AND ?", box.MinLng, box.MaxLng).
		Order("rating DESC").
		Limit(limit).
		Find(&stores).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find nearby stores: %w", err)
	}

	return stores, nil
}

func (r *StoreRepository) FindFeatured(ctx context.Context, limit int) ([]domain.Store, error) {
	var stores []domain.Store
	err := r.DB.WithContext(ctx).
		Where("rating >= ?", 4.5).
		Order("review_count DESC").
		Limit(limit).
		Find(&stores).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find featured stores: %w", err)
	}

	return stores, nil
}

func (r *StoreRepository) FindOpen(ctx context.Context, limit int) ([]domain.Store, error) {
	if limit <= 0 || limit > domain.MaxPageLimit {
		limit = domain.DefaultPageLimit
	}

	var stores []domain.Store
	err := r.DB.WithContext(ctx).
		Where("is_open = ?", true).
		Order("rating DESC").
		Limit(limit).
		Find(&stores).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find open stores: %w", err)
	}

	return stores, nil
}

func (r *StoreRepository) Update(ctx context.Context, store *domain.Store) error {
	result := r.DB.WithContext(ctx).Model(&domain.Store{}).Where("id = ?", store.ID).
		Select("name", "description", "category", "delivery_time", "address", "phone",
			"is_open", "latitude", "longitude", "specialties", "features", "price_range",
			"image_name", "background_color", "updated_at").
		Updates(store)
	if result.Error != nil {
		return fmt.Errorf("failed to update store: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: store %s", domain.ErrNotFound, store.ID)
	}

	return nil
}

func (r *StoreRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.DB.WithContext(ctx).Delete(&domain.Store{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete store: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: store %s", domain.ErrNotFound, id)
	}

	return nil
}

// ApplyRating folds the new rating into the running average in a single
// UPDATE so concurrent ratings cannot lose updates. Average and review count
// commit together.
func (r *StoreRepository) ApplyRating(ctx context.Context, id uuid.UUID, rating float64) (domain.Store, error) {
	var store domain.Store
	result := r.DB.WithContext(ctx).Model(&store).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"rating":       gorm.Expr("(rating * review_count + ?) / (review_count + 1)", rating),
			"review_count": gorm.Expr("review_count + 1"),
		})
	if result.Error != nil {
		return domain.Store{}, fmt.Errorf("failed to apply store rating: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.Store{}, fmt.Errorf("%w: store %s", domain.ErrNotFound, id)
	}

	return store, nil
}

func (r *StoreRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&domain.Store{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count stores: %w", err)
	}

	return count, nil
}

func (r *StoreRepository) CountByCategory(ctx context.Context, category domain.FoodCategory) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&domain.Store{}).
		Where("category = ?", category).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count stores by category: %w", err)
	}

	return count, nil
}

func (r *StoreRepository) DeleteAll(ctx context.Context) error {
	if err := r.DB.WithContext(ctx).Where("1 = 1").Delete(&domain.Store{}).Error; err != nil {
		return fmt.Errorf("failed to clear stores: %w", err)
	}

	return nil
}
