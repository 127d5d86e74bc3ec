package service

import (
	"github.com/vitrine-shop/vitrine/internal/logger"
	"github.com/vitrine-shop/vitrine/internal/models"
	"github.com/vitrine-shop/vitrine/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartService 购物车业务逻辑
type CartService struct {
	db          *gorm.DB
	cartRepo    repository.CartRepository
	variantRepo repository.ProductVariantRepository
}

// NewCartService 创建购物车服务
func NewCartService(db *gorm.DB, cartRepo repository.CartRepository, variantRepo repository.ProductVariantRepository) *CartService {
	return &CartService{
		db:          db,
		cartRepo:    cartRepo,
		variantRepo: variantRepo,
	}
}

// GetCart 获取用户购物车（不存在时创建空购物车）
func (s *CartService) GetCart(userID uint) (*models.Cart, error) {
	if _, err := s.cartRepo.GetOrCreateByUser(userID); err != nil {
		return nil, err
	}
	cart, err := s.cartRepo.GetByUserWithItems(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return s.cartRepo.GetOrCreateByUser(userID)
	}
	return cart, nil
}

// AddItem 添加商品规格到购物车，同规格合并数量
// 行小计按当前生效单价重新快照
func (s *CartService) AddItem(userID, variantID uint, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, ErrQuantityInvalid
	}

	variant, err := s.variantRepo.GetByIDWithProduct(variantID)
	if err != nil {
		return nil, err
	}
	if variant == nil || !variant.IsActive || variant.Product == nil || !variant.Product.IsActive {
		return nil, ErrVariantNotFound
	}

	unitPrice := EffectiveUnitPrice(variant.Product, variant)

	cart, err := s.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)

		existing, err := cartRepo.GetItemByCartAndVariant(cart.ID, variantID)
		if err != nil {
			return err
		}

		totalQuantity := quantity
		if existing != nil {
			totalQuantity += existing.Quantity
		}

		item := &models.CartItem{
			CartID:    cart.ID,
			VariantID: variantID,
			Quantity:  totalQuantity,
			Price:     LineTotal(unitPrice, totalQuantity),
		}
		if existing != nil {
			item.ID = existing.ID
			item.CreatedAt = existing.CreatedAt
			if err := cartRepo.UpdateItem(item); err != nil {
				return err
			}
		} else if err := cartRepo.UpsertItem(item); err != nil {
			return err
		}

		return s.recomputeTotal(cartRepo, cart.ID)
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("cart_item_added", "user_id", userID, "variant_id", variantID, "quantity", quantity)
	return s.cartRepo.GetByUserWithItems(userID)
}

// UpdateItemQuantity 修改购物车条目数量，行小计按当前生效单价重新快照
func (s *CartService) UpdateItemQuantity(userID, itemID uint, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, ErrQuantityInvalid
	}

	item, err := s.cartRepo.GetItemByIDAndUser(itemID, userID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}
	if item.Variant == nil || item.Variant.Product == nil {
		return nil, ErrVariantNotFound
	}

	unitPrice := EffectiveUnitPrice(item.Variant.Product, item.Variant)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		item.Quantity = quantity
		item.Price = LineTotal(unitPrice, quantity)
		item.Variant = nil
		if err := cartRepo.UpdateItem(item); err != nil {
			return err
		}
		return s.recomputeTotal(cartRepo, item.CartID)
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("cart_item_updated", "user_id", userID, "item_id", itemID, "quantity", quantity)
	return s.cartRepo.GetByUserWithItems(userID)
}

// RemoveItem 删除购物车条目
func (s *CartService) RemoveItem(userID, itemID uint) (*models.Cart, error) {
	item, err := s.cartRepo.GetItemByIDAndUser(itemID, userID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		if err := cartRepo.DeleteItem(itemID); err != nil {
			return err
		}
		return s.recomputeTotal(cartRepo, item.CartID)
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("cart_item_removed", "user_id", userID, "item_id", itemID)
	return s.cartRepo.GetByUserWithItems(userID)
}

// Clear 清空购物车
func (s *CartService) Clear(userID uint) error {
	cart, err := s.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		if _, err := cartRepo.DeleteItemsByCartID(cart.ID); err != nil {
			return err
		}
		return cartRepo.UpdateTotal(cart.ID, models.NewMoneyFromInt(0))
	})
	if err != nil {
		return err
	}

	logger.Infow("cart_cleared", "user_id", userID)
	return nil
}

// recomputeTotal 重新计算购物车总价缓存（Σ 行小计）
func (s *CartService) recomputeTotal(cartRepo repository.CartRepository, cartID uint) error {
	items, err := cartRepo.ListItemsByCartID(cartID)
	if err != nil {
		return err
	}
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Decimal)
	}
	return cartRepo.UpdateTotal(cartID, models.NewMoneyFromDecimal(total))
}
