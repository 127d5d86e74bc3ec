package admin

import (
	"github.com/vitrine-shop/vitrine/internal/http/response"
	"github.com/vitrine-shop/vitrine/internal/models"

	"github.com/gin-gonic/gin"
)

// BrandRequest 品牌创建请求
type BrandRequest struct {
	Slug string `json:"slug" binding:"required"`
	Name string `json:"name" binding:"required"`
	Logo string `json:"logo"`
}

// CategoryRequest 分类创建请求
type CategoryRequest struct {
	Slug      string `json:"slug" binding:"required"`
	Name      string `json:"name" binding:"required"`
	SortOrder int    `json:"sort_order"`
}

// ListBrands 品牌列表
func (h *Handler) ListBrands(c *gin.Context) {
	brands, err := h.BrandRepo.List()
	if err != nil {
		respondError(c, response.CodeInternal, "list brands failed", err)
		return
	}
	response.Success(c, gin.H{"brands": brands})
}

// CreateBrand 创建品牌
func (h *Handler) CreateBrand(c *gin.Context) {
	var req BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	brand := &models.Brand{Slug: req.Slug, Name: req.Name, Logo: req.Logo}
	if err := h.BrandRepo.Create(brand); err != nil {
		respondError(c, response.CodeInternal, "create brand failed", err)
		return
	}
	response.Success(c, brand)
}

// ListCategories 分类列表
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryRepo.List()
	if err != nil {
		respondError(c, response.CodeInternal, "list categories failed", err)
		return
	}
	response.Success(c, gin.H{"categories": categories})
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	category := &models.Category{Slug: req.Slug, Name: req.Name, SortOrder: req.SortOrder}
	if err := h.CategoryRepo.Create(category); err != nil {
		respondError(c, response.CodeInternal, "create category failed", err)
		return
	}
	response.Success(c, category)
}

// DeleteReview 删除商品评价
func (h *Handler) DeleteReview(c *gin.Context) {
	reviewID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.ReviewService.AdminDelete(reviewID); err != nil {
		respondError(c, response.CodeInternal, "delete review failed", err)
		return
	}
	response.SuccessWithMsg(c, "review deleted", nil)
}
