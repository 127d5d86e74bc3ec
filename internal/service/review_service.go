package service

import (
	"github.com/vitrine-shop/vitrine/internal/models"
	"github.com/vitrine-shop/vitrine/internal/repository"
)

// ReviewSummary 商品评价汇总
type ReviewSummary struct {
	Reviews       []models.Review `json:"reviews"`
	Total         int64           `json:"total"`
	AverageRating float64         `json:"average_rating"`
}

// ReviewService 商品评价业务逻辑
type ReviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
}

// NewReviewService 创建评价服务
func NewReviewService(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
	}
}

// Create 创建商品评价
func (s *ReviewService) Create(userID, productID uint, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrReviewRatingInvalid
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	review := &models.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}
	return review, nil
}

// ListByProduct 查询商品评价及平均评分
func (s *ReviewService) ListByProduct(productID uint, pagination repository.Pagination) (*ReviewSummary, error) {
	reviews, total, err := s.reviewRepo.ListByProductID(productID, pagination)
	if err != nil {
		return nil, err
	}
	avg, err := s.reviewRepo.AverageRating(productID)
	if err != nil {
		return nil, err
	}
	return &ReviewSummary{
		Reviews:       reviews,
		Total:         total,
		AverageRating: avg,
	}, nil
}

// AdminDelete 管理端删除评价
func (s *ReviewService) AdminDelete(id uint) error {
	return s.reviewRepo.Delete(id)
}
