package public

import (
	"github.com/vitrine-shop/vitrine/internal/provider"
	"github.com/vitrine-shop/vitrine/internal/repository"
	"github.com/vitrine-shop/vitrine/internal/service"
)

// Handler 前台接口处理器
type Handler struct {
	ProductService *service.ProductService
	ReviewService  *service.ReviewService
	CartService    *service.CartService
	OrderService   *service.OrderService
	PaymentService *service.PaymentService
	BrandRepo      repository.BrandRepository
	CategoryRepo   repository.CategoryRepository
}

// NewHandler 创建前台处理器
func NewHandler(c *provider.Container) *Handler {
	return &Handler{
		ProductService: c.ProductService,
		ReviewService:  c.ReviewService,
		CartService:    c.CartService,
		OrderService:   c.OrderService,
		PaymentService: c.PaymentService,
		BrandRepo:      c.BrandRepo,
		CategoryRepo:   c.CategoryRepo,
	}
}
