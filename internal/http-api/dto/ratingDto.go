package dto

import "github.com/Vladislav83530/Library/internal/http-api/models"

// RateBookDTO is the add-rating payload. The score range is also enforced in
// the service so the rule holds for non-HTTP callers.
type RateBookDTO struct {
	Score int `json:"score" binding:"required,min=1,max=5"`
}

// ToModel converts the payload into a Rating record for the given book.
func (d *RateBookDTO) ToModel(bookID int64) *models.Rating {
	return &models.Rating{
		Score:  d.Score,
		BookID: bookID,
	}
}
