package provider

import (
	"github.com/vitrine-shop/vitrine/internal/authz"
	"github.com/vitrine-shop/vitrine/internal/cache"
	"github.com/vitrine-shop/vitrine/internal/config"
	"github.com/vitrine-shop/vitrine/internal/logger"
	"github.com/vitrine-shop/vitrine/internal/models"
	"github.com/vitrine-shop/vitrine/internal/queue"
	"github.com/vitrine-shop/vitrine/internal/repository"
	"github.com/vitrine-shop/vitrine/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo    repository.AdminRepository
	UserRepo     repository.UserRepository
	ProductRepo  repository.ProductRepository
	VariantRepo  repository.ProductVariantRepository
	CartRepo     repository.CartRepository
	OrderRepo    repository.OrderRepository
	BrandRepo    repository.BrandRepository
	CategoryRepo repository.CategoryRepository
	ReviewRepo   repository.ReviewRepository

	// Services
	AuthzService   *authz.Service
	EmailService   *service.EmailService
	Notifier       *service.Notifier
	ProductService *service.ProductService
	ReviewService  *service.ReviewService
	CartService    *service.CartService
	OrderService   *service.OrderService
	PaymentService *service.PaymentService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queue.NewClient(cfg.Queue, cfg.Redis),
	}

	c.initRepositories()
	c.initServices()
	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.VariantRepo = repository.NewProductVariantRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.BrandRepo = repository.NewBrandRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.EmailService = service.NewEmailService(c.Config.Email)
	c.Notifier = service.NewNotifier(c.QueueClient, c.EmailService, c.UserRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.VariantRepo)
	c.ReviewService = service.NewReviewService(c.ReviewRepo, c.ProductRepo)
	c.CartService = service.NewCartService(models.DB, c.CartRepo, c.VariantRepo)
	c.OrderService = service.NewOrderService(models.DB, c.OrderRepo, c.CartRepo, c.UserRepo, c.Notifier)
	c.PaymentService = service.NewPaymentService(c.Config.Payment.WebhookSecret, c.OrderService)
}
