package repository

import (
	"context"
	"fmt"

	"github.com/Vladislav83530/Library/internal/http-api/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByBook(ctx context.Context, bookID int64) ([]models.Review, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create a new review
func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

// GetByBook retrieves all reviews for a book
func (r *reviewRepository) GetByBook(ctx context.Context, bookID int64) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.WithContext(ctx).
		Where("book_id = ?", bookID).
		Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("get reviews for book %d: %w", bookID, err)
	}
	return reviews, nil
}
