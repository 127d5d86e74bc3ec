package repository

import (
	"errors"

	"github.com/vitrine-shop/vitrine/internal/models"

	"gorm.io/gorm"
)

// ProductVariantRepository 商品规格数据访问接口
type ProductVariantRepository interface {
	Create(variant *models.ProductVariant) error
	GetByID(id uint) (*models.ProductVariant, error)
	GetByIDWithProduct(id uint) (*models.ProductVariant, error)
	ListByProductID(productID uint) ([]models.ProductVariant, error)
	Update(variant *models.ProductVariant) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) ProductVariantRepository
}

// GormProductVariantRepository 商品规格仓储 GORM 实现
type GormProductVariantRepository struct {
	db *gorm.DB
}

// NewProductVariantRepository 创建商品规格仓储
func NewProductVariantRepository(db *gorm.DB) *GormProductVariantRepository {
	return &GormProductVariantRepository{db: db}
}

// WithTx 返回绑定到事务的仓储
func (r *GormProductVariantRepository) WithTx(tx *gorm.DB) ProductVariantRepository {
	return &GormProductVariantRepository{db: tx}
}

// Create 创建规格
func (r *GormProductVariantRepository) Create(variant *models.ProductVariant) error {
	return r.db.Create(variant).Error
}

// GetByID 按ID查询规格，不存在时返回 nil
func (r *GormProductVariantRepository) GetByID(id uint) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	err := r.db.First(&variant, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &variant, nil
}

// GetByIDWithProduct 按ID查询规格并加载商品，不存在时返回 nil
func (r *GormProductVariantRepository) GetByIDWithProduct(id uint) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	err := r.db.Preload("Product").First(&variant, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &variant, nil
}

// ListByProductID 查询商品的全部规格
func (r *GormProductVariantRepository) ListByProductID(productID uint) ([]models.ProductVariant, error) {
	var variants []models.ProductVariant
	err := r.db.Where("product_id = ?", productID).Order("id ASC").Find(&variants).Error
	if err != nil {
		return nil, err
	}
	return variants, nil
}

// Update 更新规格
func (r *GormProductVariantRepository) Update(variant *models.ProductVariant) error {
	return r.db.Save(variant).Error
}

// Delete 软删除规格
func (r *GormProductVariantRepository) Delete(id uint) error {
	return r.db.Delete(&models.ProductVariant{}, id).Error
}
