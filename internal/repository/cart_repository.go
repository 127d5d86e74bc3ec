package repository

import (
	"errors"

	"github.com/vitrine-shop/vitrine/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	GetOrCreateByUser(userID uint) (*models.Cart, error)
	GetByUserWithItems(userID uint) (*models.Cart, error)
	GetItemByIDAndUser(itemID, userID uint) (*models.CartItem, error)
	GetItemByCartAndVariant(cartID, variantID uint) (*models.CartItem, error)
	ListItemsByCartID(cartID uint) ([]models.CartItem, error)
	UpsertItem(item *models.CartItem) error
	UpdateItem(item *models.CartItem) error
	DeleteItem(itemID uint) error
	DeleteItemsByCartID(cartID uint) (int64, error)
	UpdateTotal(cartID uint, total models.Money) error
	WithTx(tx *gorm.DB) CartRepository
}

// GormCartRepository 购物车仓储 GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 返回绑定到事务的仓储
func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	return &GormCartRepository{db: tx}
}

// GetOrCreateByUser 查询用户购物车，不存在时创建空购物车
func (r *GormCartRepository) GetOrCreateByUser(userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.Where("user_id = ?", userID).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart = models.Cart{UserID: userID}
	// user_id 唯一索引兜底并发创建
	createErr := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&cart).Error
	if createErr != nil {
		return nil, createErr
	}
	if cart.ID != 0 {
		return &cart, nil
	}
	if err := r.db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetByUserWithItems 查询用户购物车及全部条目（含规格与商品）
func (r *GormCartRepository) GetByUserWithItems(userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_items.created_at ASC, cart_items.id ASC")
		}).
		Preload("Items.Variant").
		Preload("Items.Variant.Product").
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// GetItemByIDAndUser 按条目ID查询并校验归属用户，不存在或不属于该用户时返回 nil
func (r *GormCartRepository) GetItemByIDAndUser(itemID, userID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("cart_items.id = ? AND carts.user_id = ?", itemID, userID).
		Preload("Variant").
		Preload("Variant.Product").
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetItemByCartAndVariant 按购物车与规格查询条目，不存在时返回 nil
func (r *GormCartRepository) GetItemByCartAndVariant(cartID, variantID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Where("cart_id = ? AND variant_id = ?", cartID, variantID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// ListItemsByCartID 查询购物车全部条目（按加入先后排序）
func (r *GormCartRepository) ListItemsByCartID(cartID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.Where("cart_id = ?", cartID).
		Order("created_at ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// UpsertItem 新增或合并购物车条目（同购物车同规格唯一）
func (r *GormCartRepository) UpsertItem(item *models.CartItem) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cart_id"}, {Name: "variant_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "price", "updated_at"}),
	}).Create(item).Error
}

// UpdateItem 更新购物车条目
func (r *GormCartRepository) UpdateItem(item *models.CartItem) error {
	return r.db.Save(item).Error
}

// DeleteItem 删除购物车条目
func (r *GormCartRepository) DeleteItem(itemID uint) error {
	return r.db.Delete(&models.CartItem{}, itemID).Error
}

// DeleteItemsByCartID 清空购物车条目，返回删除行数
func (r *GormCartRepository) DeleteItemsByCartID(cartID uint) (int64, error) {
	result := r.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}

// UpdateTotal 回写购物车总价缓存
func (r *GormCartRepository) UpdateTotal(cartID uint, total models.Money) error {
	return r.db.Model(&models.Cart{}).
		Where("id = ?", cartID).
		Update("total_price", total).Error
}
