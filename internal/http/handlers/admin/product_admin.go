package admin

import (
	"github.com/vitrine-shop/vitrine/internal/http/handlers/shared"
	"github.com/vitrine-shop/vitrine/internal/http/response"
	"github.com/vitrine-shop/vitrine/internal/models"
	"github.com/vitrine-shop/vitrine/internal/repository"

	"github.com/gin-gonic/gin"
)

// ProductRequest 商品创建/更新请求
type ProductRequest struct {
	BrandID         uint         `json:"brand_id"`
	CategoryID      uint         `json:"category_id" binding:"required"`
	Slug            string       `json:"slug" binding:"required"`
	Name            string       `json:"name" binding:"required"`
	Description     string       `json:"description"`
	Price           models.Money `json:"price"`
	IsOnSale        bool         `json:"is_on_sale"`
	DiscountPercent int          `json:"discount_percent"`
	Images          []string     `json:"images"`
	IsActive        *bool        `json:"is_active"`
	SortOrder       int          `json:"sort_order"`
}

func (r ProductRequest) apply(product *models.Product) {
	product.BrandID = r.BrandID
	product.CategoryID = r.CategoryID
	product.Slug = r.Slug
	product.Name = r.Name
	product.Description = r.Description
	product.Price = r.Price
	product.IsOnSale = r.IsOnSale
	product.DiscountPercent = r.DiscountPercent
	product.Images = models.StringArray(r.Images)
	product.SortOrder = r.SortOrder
	if r.IsActive != nil {
		product.IsActive = *r.IsActive
	}
}

// VariantRequest 商品规格创建/更新请求
type VariantRequest struct {
	Color         string        `json:"color" binding:"required"`
	Stock         int           `json:"stock"`
	PriceOverride *models.Money `json:"price_override"`
	Image         string        `json:"image"`
	IsActive      *bool         `json:"is_active"`
}

func (r VariantRequest) apply(variant *models.ProductVariant) {
	variant.Color = r.Color
	variant.Stock = r.Stock
	variant.PriceOverride = r.PriceOverride
	variant.Image = r.Image
	if r.IsActive != nil {
		variant.IsActive = *r.IsActive
	}
}

// ListProducts 商品列表（含下架商品）
func (h *Handler) ListProducts(c *gin.Context) {
	page, pageSize := shared.ParsePagination(c)
	filter := repository.ProductListFilter{
		Keyword:    c.Query("keyword"),
		Pagination: repository.Pagination{Page: page, PageSize: pageSize},
	}

	products, total, err := h.ProductService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "list products failed", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"products": products}, response.BuildPagination(page, pageSize, total))
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.ProductService.AdminGet(productID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, product)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	product := &models.Product{IsActive: true}
	req.apply(product)
	if err := h.ProductService.AdminCreate(product); err != nil {
		respondError(c, response.CodeInternal, "create product failed", err)
		return
	}
	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	product, err := h.ProductService.AdminGet(productID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	req.apply(product)
	if err := h.ProductService.AdminUpdate(product); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.ProductService.AdminDelete(productID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "product deleted", nil)
}

// CreateVariant 创建商品规格
func (h *Handler) CreateVariant(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	variant := &models.ProductVariant{ProductID: productID, IsActive: true}
	req.apply(variant)
	if err := h.ProductService.AdminCreateVariant(variant); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, variant)
}

// UpdateVariant 更新商品规格
func (h *Handler) UpdateVariant(c *gin.Context) {
	variantID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	variant, err := h.ProductService.AdminGetVariant(variantID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	req.apply(variant)
	if err := h.ProductService.AdminUpdateVariant(variant); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, variant)
}

// DeleteVariant 删除商品规格
func (h *Handler) DeleteVariant(c *gin.Context) {
	variantID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.ProductService.AdminDeleteVariant(variantID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "variant deleted", nil)
}
