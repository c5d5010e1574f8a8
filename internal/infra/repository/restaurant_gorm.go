package repository

import (
	"context"
	"errors"

	"foodorder/internal/domain/model"
	repo "foodorder/internal/repository"

	"gorm.io/gorm"
)

type restaurantGormRepository struct {
	db *gorm.DB
}

func NewRestaurantGormRepository(db *gorm.DB) repo.RestaurantRepository {
	return &restaurantGormRepository{db: db}
}

func (r *restaurantGormRepository) Create(ctx context.Context, rest *model.Restaurant) error {
	if err := r.db.WithContext(ctx).Create(rest).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repo.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *restaurantGormRepository) FindByID(ctx context.Context, id int64) (model.Restaurant, error) {
	var rest model.Restaurant
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Restaurant{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Restaurant{}, err
	}
	return rest, nil
}

func (r *restaurantGormRepository) FindByOwnerID(ctx context.Context, ownerID int64) (model.Restaurant, error) {
	var rest model.Restaurant
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&rest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Restaurant{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Restaurant{}, err
	}
	return rest, nil
}

func (r *restaurantGormRepository) ListAll(ctx context.Context) ([]model.Restaurant, error) {
	var list []model.Restaurant
	if err := r.db.WithContext(ctx).Order("id desc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *restaurantGormRepository) ListApproved(ctx context.Context, withCoords bool) ([]model.Restaurant, error) {
	q := r.db.WithContext(ctx).Where("is_approved = ?", true)
	if withCoords {
		q = q.Where("lat IS NOT NULL AND lng IS NOT NULL")
	}
	var list []model.Restaurant
	if err := q.Order("created_at desc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *restaurantGormRepository) Update(ctx context.Context, rest model.Restaurant) error {
	res := r.db.WithContext(ctx).Save(&rest)
	if res.Error != nil {
		return res.Error
	}
	return nil
}

func (r *restaurantGormRepository) SetApproved(ctx context.Context, id int64, approved bool) (model.Restaurant, error) {
	res := r.db.WithContext(ctx).Model(&model.Restaurant{}).
		Where("id = ?", id).
		Update("is_approved", approved)
	if res.Error != nil {
		return model.Restaurant{}, res.Error
	}
	if res.RowsAffected == 0 {
		return model.Restaurant{}, repo.ErrNotFound
	}
	return r.FindByID(ctx, id)
}
