package postgres

import (
	"context"
	"errors"
	"fmt"

	"myFoodMarket/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		DB: db,
	}
}

// Create inserts the user. The unique index on email is the source of truth
// for duplicates; a concurrent registration that slips past the service-level
// pre-check still surfaces as a conflict here, not as an internal error.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.DB.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: a user with this email already exists", domain.ErrConflict)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	var user domain.User

	err := r.DB.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, fmt.Errorf("%w: user %s", domain.ErrNotFound, id)
		}
		return domain.User{}, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// FindByEmail expects an already lower-cased email; the column stores the
// normalized form.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	var user domain.User

	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, fmt.Errorf("%w: user with email %s", domain.ErrNotFound, email)
		}
		return domain.User{}, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	result := r.DB.WithContext(ctx).Model(&domain.User{}).Where("id = ?", user.ID).
		Select("email", "password_hash", "first_name", "last_name", "phone", "avatar_url",
			"membership_level", "points", "email_verified", "updated_at").
		Updates(user)
	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: user %s", domain.ErrNotFound, user.ID)
	}

	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.DB.WithContext(ctx).Delete(&domain.User{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: user %s", domain.ErrNotFound, id)
	}

	return nil
}

// AddPoints increments the balance server-side so concurrent awards do not
// lose updates.
func (r *UserRepository) AddPoints(ctx context.Context, id uuid.UUID, points int) (domain.User, error) {
	result := r.DB.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).
		UpdateColumn("points", gorm.Expr("points + ?", points))
	if result.Error != nil {
		return domain.User{}, fmt.Errorf("failed to add points: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.User{}, fmt.Errorf("%w: user %s", domain.ErrNotFound, id)
	}

	return r.FindByID(ctx, id)
}

func (r *UserRepository) UpdateEmailVerification(ctx context.Context, id uuid.UUID, verified bool) error {
	result := r.DB.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).
		Update("email_verified", verified)
	if result.Error != nil {
		return fmt.Errorf("failed to update email verification: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: user %s", domain.ErrNotFound, id)
	}

	return nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&domain.User{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}

	return count, nil
}

func (r *UserRepository) CountByMembership(ctx context.Context, level domain.MembershipLevel) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&domain.User{}).
		Where("membership_level = ?", level).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count users by membership: %w", err)
	}

	return count, nil
}

func (r *UserRepository) DeleteAll(ctx context.Context) error {
	if err := r.DB.WithContext(ctx).Where("1 = 1").Delete(&domain.User{}).Error; err != nil {
		return fmt.Errorf("failed to clear users: %w", err)
	}

	return nil
}
