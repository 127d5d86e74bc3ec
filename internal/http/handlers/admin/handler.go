package admin

import (
	"github.com/vitrine-shop/vitrine/internal/provider"
	"github.com/vitrine-shop/vitrine/internal/repository"
	"github.com/vitrine-shop/vitrine/internal/service"
)

// Handler 管理端接口处理器
type Handler struct {
	ProductService *service.ProductService
	ReviewService  *service.ReviewService
	OrderService   *service.OrderService
	BrandRepo      repository.BrandRepository
	CategoryRepo   repository.CategoryRepository
}

// NewHandler 创建管理端处理器
func NewHandler(c *provider.Container) *Handler {
	return &Handler{
		ProductService: c.ProductService,
		ReviewService:  c.ReviewService,
		OrderService:   c.OrderService,
		BrandRepo:      c.BrandRepo,
		CategoryRepo:   c.CategoryRepo,
	}
}
