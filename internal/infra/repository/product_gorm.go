package repository

import (
	"context"
	"errors"
	"strings"

	"foodorder/internal/domain/model"
	repo "foodorder/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type productGormRepository struct {
	db *gorm.DB
}

func NewProductGormRepository(db *gorm.DB) repo.ProductRepository {
	return &productGormRepository{db: db}
}

// sortable whitelists the sort fields accepted from the query string.
var sortable = map[string]string{
	"created_at": "created_at",
	"price":      "price",
	"name":       "name",
	"category":   "category",
}

func buildOrderClause(sort string) string {
	field, dir := "created_at", "desc"
	if sort != "" {
		parts := strings.SplitN(sort, ":", 2)
		if col, ok := sortable[parts[0]]; ok {
			field = col
		}
		if len(parts) == 2 && strings.EqualFold(parts[1], "asc") {
			dir = "asc"
		}
	}
	return field + " " + dir
}

func (r *productGormRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	db := r.db.WithContext(ctx).Model(&model.Product{})
	if q.Search != "" {
		db = db.Where("name ILIKE ?", "%"+q.Search+"%")
	}
	if len(q.Categories) == 1 {
		db = db.Where("category = ?", q.Categories[0])
	} else if len(q.Categories) > 1 {
		db = db.Where("category IN ?", q.Categories)
	}
	if q.RestaurantID != nil {
		db = db.Where("restaurant_id = ?", *q.RestaurantID)
	}
	if q.MinPrice != nil {
		db = db.Where("price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		db = db.Where("price <= ?", *q.MaxPrice)
	}
	if q.IsAvailable != nil {
		db = db.Where("is_available = ?", *q.IsAvailable)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []model.Product
	err := db.Order(buildOrderClause(q.Sort)).
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *productGormRepository) Meta(ctx context.Context, restaurantID *int64, search string) (repo.ProductMeta, error) {
	db := r.db.WithContext(ctx).Model(&model.Product{})
	if restaurantID != nil {
		db = db.Where("restaurant_id = ?", *restaurantID)
	}
	if search != "" {
		db = db.Where("name ILIKE ?", "%"+search+"%")
	}

	var categories []string
	if err := db.Session(&gorm.Session{}).Distinct("category").Pluck("category", &categories).Error; err != nil {
		return repo.ProductMeta{}, err
	}

	var bounds struct {
		Min decimal.NullDecimal
		Max decimal.NullDecimal
	}
	if err := db.Session(&gorm.Session{}).
		Select("MIN(price) AS min, MAX(price) AS max").
		Scan(&bounds).Error; err != nil {
		return repo.ProductMeta{}, err
	}

	meta := repo.ProductMeta{Categories: categories}
	if bounds.Min.Valid {
		meta.PriceMin = bounds.Min.Decimal
	}
	if bounds.Max.Valid {
		meta.PriceMax = bounds.Max.Decimal
	}
	return meta, nil
}

func (r *productGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *productGormRepository) FindAvailableByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	var items []model.Product
	err := r.db.WithContext(ctx).
		Where("id IN ? AND is_available = ?", ids, true).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *productGormRepository) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productGormRepository) Update(ctx context.Context, p model.Product) error {
	res := r.db.WithContext(ctx).Save(&p)
	if res.Error != nil {
		return res.Error
	}
	return nil
}

func (r *productGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *productGormRepository) DeleteScoped(ctx context.Context, id int64, restaurantID int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND restaurant_id = ?", id, restaurantID).
		Delete(&model.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
