package dto

import "github.com/Vladislav83530/Library/internal/http-api/models"

// SaveReviewDTO is the add-review payload.
type SaveReviewDTO struct {
	Message  string `json:"message" binding:"required"`
	Reviewer string `json:"reviewer" binding:"required"`
}

type ReviewResponse struct {
	ID       int64  `json:"id"`
	Message  string `json:"message"`
	Reviewer string `json:"reviewer"`
}

// FromModelToReviewResponse converts a Review model to ReviewResponse DTO.
func FromModelToReviewResponse(r *models.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:       r.ID,
		Message:  r.Message,
		Reviewer: r.Reviewer,
	}
}

// ToModel converts the payload into a Review record for the given book.
func (d *SaveReviewDTO) ToModel(bookID int64) *models.Review {
	return &models.Review{
		Message:  d.Message,
		Reviewer: d.Reviewer,
		BookID:   bookID,
	}
}
