package repository

import (
	"errors"

	"github.com/vitrine-shop/vitrine/internal/models"

	"gorm.io/gorm"
)

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	GetByIDAndUser(id, userID uint) (*models.Order, error)
	ListByUser(userID uint, pagination Pagination) ([]models.Order, int64, error)
	List(filter OrderListFilter) ([]models.Order, int64, error)
	UpdateFields(id uint, fields map[string]interface{}) error
	HardDelete(id uint) error
	WithTx(tx *gorm.DB) OrderRepository
}

// GormOrderRepository 订单仓储 GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 返回绑定到事务的仓储
func (r *GormOrderRepository) WithTx(tx *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: tx}
}

// Create 创建订单及订单项
func (r *GormOrderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

// GetByID 按ID查询订单（含订单项），不存在时返回 nil
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").Preload("User").First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByIDAndUser 按ID查询订单并校验归属用户，不存在时返回 nil
func (r *GormOrderRepository) GetByIDAndUser(id, userID uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").
		Where("id = ? AND user_id = ?", id, userID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// ListByUser 分页查询用户订单（按创建时间倒序）
func (r *GormOrderRepository) ListByUser(userID uint, pagination Pagination) ([]models.Order, int64, error) {
	pagination = pagination.Normalize()
	query := r.db.Model(&models.Order{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err := query.
		Preload("Items").
		Order("created_at DESC, id DESC").
		Offset(pagination.Offset()).
		Limit(pagination.PageSize).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// List 分页查询订单列表（管理端）
func (r *GormOrderRepository) List(filter OrderListFilter) ([]models.Order, int64, error) {
	pagination := filter.Pagination.Normalize()
	query := r.db.Model(&models.Order{})
	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.PaymentStatus != "" {
		query = query.Where("payment_status = ?", filter.PaymentStatus)
	}
	if filter.OrderNo != "" {
		query = query.Where("order_no = ?", filter.OrderNo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err := query.
		Preload("Items").
		Preload("User").
		Order("created_at DESC, id DESC").
		Offset(pagination.Offset()).
		Limit(pagination.PageSize).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateFields 按字段更新订单
func (r *GormOrderRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	return r.db.Model(&models.Order{}).Where("id = ?", id).Updates(fields).Error
}

// HardDelete 物理删除订单及订单项（仅管理端）
func (r *GormOrderRepository) HardDelete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Order{}, id).Error
	})
}
