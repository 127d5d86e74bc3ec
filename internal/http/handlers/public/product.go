package public

import (
	"strconv"

	"github.com/vitrine-shop/vitrine/internal/http/handlers/shared"
	"github.com/vitrine-shop/vitrine/internal/http/response"
	"github.com/vitrine-shop/vitrine/internal/repository"
	"github.com/vitrine-shop/vitrine/internal/service"

	"github.com/gin-gonic/gin"
)

// ListProducts 商品列表（仅上架商品）
func (h *Handler) ListProducts(c *gin.Context) {
	page, pageSize := shared.ParsePagination(c)
	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 64)
	brandID, _ := strconv.ParseUint(c.Query("brand_id"), 10, 64)

	filter := repository.ProductListFilter{
		CategoryID: uint(categoryID),
		BrandID:    uint(brandID),
		Keyword:    c.Query("keyword"),
		OnSaleOnly: c.Query("on_sale") == "true",
		ActiveOnly: true,
		Pagination: repository.Pagination{Page: page, PageSize: pageSize},
	}

	products, total, err := h.ProductService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "list products failed", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"products": products}, response.BuildPagination(page, pageSize, total))
}

// GetProduct 商品详情（含规格与生效价格）
func (h *Handler) GetProduct(c *gin.Context) {
	view, err := h.ProductService.GetBySlug(c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, view)
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

// ListCategories 分类列表
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryRepo.List()
	if err != nil {
		respondError(c, response.CodeInternal, "list categories failed", err)
		return
	}
	response.Success(c, gin.H{"categories": categories})
}

// ListReviews 商品评价列表
func (h *Handler) ListReviews(c *gin.Context) {
	view, err := h.ProductService.GetBySlug(c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	page, pageSize := shared.ParsePagination(c)
	summary, err := h.ReviewService.ListByProduct(view.ID, repository.Pagination{Page: page, PageSize: pageSize})
	if err != nil {
		respondError(c, response.CodeInternal, "list reviews failed", err)
		return
	}
	response.SuccessWithPage(c, summary, response.BuildPagination(page, pageSize, summary.Total))
}

// CreateReviewRequest 创建评价请求
type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// CreateReview 创建商品评价
func (h *Handler) CreateReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	view, err := h.ProductService.GetBySlug(c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	review, err := h.ReviewService.Create(uid, view.ID, req.Rating, req.Comment)
	if err != nil {
		if err == service.ErrReviewRatingInvalid {
			respondError(c, response.CodeBadRequest, err.Error(), nil)
			return
		}
		respondServiceError(c, err)
		return
	}
	response.Success(c, review)
}
