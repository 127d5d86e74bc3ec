package repository

import (
	"errors"

	"github.com/vitrine-shop/vitrine/internal/models"

	"gorm.io/gorm"
)

// BrandRepository 品牌数据访问接口
type BrandRepository interface {
	Create(brand *models.Brand) error
	GetByID(id uint) (*models.Brand, error)
	List() ([]models.Brand, error)
	Update(brand *models.Brand) error
	Delete(id uint) error
}

// GormBrandRepository 品牌仓储 GORM 实现
type GormBrandRepository struct {
	db *gorm.DB
}

// NewBrandRepository 创建品牌仓储
func NewBrandRepository(db *gorm.DB) *GormBrandRepository {
	return &GormBrandRepository{db: db}
}

// Create 创建品牌
func (r *GormBrandRepository) Create(brand *models.Brand) error {
	return r.db.Create(brand).Error
}

// GetByID 按ID查询品牌，不存在时返回 nil
func (r *GormBrandRepository) GetByID(id uint) (*models.Brand, error) {
	var brand models.Brand
	err := r.db.First(&brand, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &brand, nil
}

// List 查询全部品牌
func (r *GormBrandRepository) List() ([]models.Brand, error) {
	var brands []models.Brand
	err := r.db.Order("id ASC").Find(&brands).Error
	if err != nil {
		return nil, err
	}
	return brands, nil
}

// Update 更新品牌
func (r *GormBrandRepository) Update(brand *models.Brand) error {
	return r.db.Save(brand).Error
}

// Delete 软删除品牌
func (r *GormBrandRepository) Delete(id uint) error {
	return r.db.Delete(&models.Brand{}, id).Error
}
