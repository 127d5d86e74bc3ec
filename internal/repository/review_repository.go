package repository

import (
	"github.com/vitrine-shop/vitrine/internal/models"

	"gorm.io/gorm"
)

// ReviewRepository 商品评价数据访问接口
type ReviewRepository interface {
	Create(review *models.Review) error
	ListByProductID(productID uint, pagination Pagination) ([]models.Review, int64, error)
	AverageRating(productID uint) (float64, error)
	Delete(id uint) error
}

// GormReviewRepository 评价仓储 GORM 实现
type GormReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建评价仓储
func NewReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// Create 创建评价
func (r *GormReviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

// ListByProductID 分页查询商品评价
func (r *GormReviewRepository) ListByProductID(productID uint, pagination Pagination) ([]models.Review, int64, error) {
	pagination = pagination.Normalize()
	query := r.db.Model(&models.Review{}).Where("product_id = ?", productID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []models.Review
	err := query.
		Order("created_at DESC, id DESC").
		Offset(pagination.Offset()).
		Limit(pagination.PageSize).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// AverageRating 计算商品平均评分，无评价时返回 0
func (r *GormReviewRepository) AverageRating(productID uint) (float64, error) {
	var avg *float64
	err := r.db.Model(&models.Review{}).
		Where("product_id = ?", productID).
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}

// Delete 软删除评价
func (r *GormReviewRepository) Delete(id uint) error {
	return r.db.Delete(&models.Review{}, id).Error
}
