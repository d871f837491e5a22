package repository

import (
	"context"
	"fmt"

	"github.com/Vladislav83530/Library/internal/http-api/models"

	"gorm.io/gorm"
)

type RatingRepository interface {
	Create(ctx context.Context, rating *models.Rating) error
	GetByBook(ctx context.Context, bookID int64) ([]models.Rating, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Create a new rating
func (r *ratingRepository) Create(ctx context.Context, rating *models.Rating) error {
	if err := r.db.WithContext(ctx).Create(rating).Error; err != nil {
		return fmt.Errorf("create rating: %w", err)
	}
	return nil
}

// GetByBook retrieves all ratings for a book
func (r *ratingRepository) GetByBook(ctx context.Context, bookID int64) ([]models.Rating, error) {
	var ratings []models.Rating
	if err := r.db.WithContext(ctx).
		Where("book_id = ?", bookID).
		Find(&ratings).Error; err != nil {
		return nil, fmt.Errorf("get ratings for book %d: %w", bookID, err)
	}
	return ratings, nil
}
