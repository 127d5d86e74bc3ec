package service

import (
	"github.com/vitrine-shop/vitrine/internal/logger"
	"github.com/vitrine-shop/vitrine/internal/models"
	"github.com/vitrine-shop/vitrine/internal/repository"
)

// ProductView 商品详情视图（附带生效价格）
type ProductView struct {
	models.Product
	EffectivePrice models.Money         `json:"effective_price"`
	VariantPrices  map[uint]models.Money `json:"variant_prices,omitempty"`
}

// ProductService 商品业务逻辑
type ProductService struct {
	productRepo repository.ProductRepository
	variantRepo repository.ProductVariantRepository
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository, variantRepo repository.ProductVariantRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		variantRepo: variantRepo,
	}
}

// List 分页查询商品列表（前台仅展示上架商品）
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// GetBySlug 查询商品详情（含各规格生效价格）
func (s *ProductService) GetBySlug(slug string) (*ProductView, error) {
	product, err := s.productRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}

	view := &ProductView{
		Product:        *product,
		EffectivePrice: EffectiveUnitPrice(product, nil),
	}
	if len(product.Variants) > 0 {
		view.VariantPrices = make(map[uint]models.Money, len(product.Variants))
		for i := range product.Variants {
			variant := &product.Variants[i]
			view.VariantPrices[variant.ID] = EffectiveUnitPrice(product, variant)
		}
	}
	return view, nil
}

// AdminCreate 管理端创建商品
func (s *ProductService) AdminCreate(product *models.Product) error {
	if err := s.productRepo.Create(product); err != nil {
		return err
	}
	logger.Infow("product_created", "product_id", product.ID, "slug", product.Slug)
	return nil
}

// AdminGet 管理端查询商品（含规格）
func (s *ProductService) AdminGet(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByIDWithVariants(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// AdminUpdate 管理端更新商品
func (s *ProductService) AdminUpdate(product *models.Product) error {
	existing, err := s.productRepo.GetByID(product.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrProductNotFound
	}
	if err := s.productRepo.Update(product); err != nil {
		return err
	}
	logger.Infow("product_updated", "product_id", product.ID, "slug", product.Slug)
	return nil
}

// AdminDelete 管理端下架并删除商品
func (s *ProductService) AdminDelete(id uint) error {
	existing, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrProductNotFound
	}
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}
	logger.Warnw("product_deleted", "product_id", id, "slug", existing.Slug)
	return nil
}

// AdminCreateVariant 管理端创建商品规格
func (s *ProductService) AdminCreateVariant(variant *models.ProductVariant) error {
	product, err := s.productRepo.GetByID(variant.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	return s.variantRepo.Create(variant)
}

// AdminGetVariant 管理端查询商品规格
func (s *ProductService) AdminGetVariant(id uint) (*models.ProductVariant, error) {
	variant, err := s.variantRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, ErrVariantNotFound
	}
	return variant, nil
}

// AdminUpdateVariant 管理端更新商品规格
func (s *ProductService) AdminUpdateVariant(variant *models.ProductVariant) error {
	existing, err := s.variantRepo.GetByID(variant.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrVariantNotFound
	}
	return s.variantRepo.Update(variant)
}

// AdminDeleteVariant 管理端删除商品规格
func (s *ProductService) AdminDeleteVariant(id uint) error {
	existing, err := s.variantRepo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrVariantNotFound
	}
	return s.variantRepo.Delete(id)
}
