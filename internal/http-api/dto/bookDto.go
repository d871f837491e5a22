package dto

import (
	"github.com/samber/lo"

	"github.com/Vladislav83530/Library/internal/http-api/models"
)

// SaveBookDTO is the upsert payload. A present Id targets an existing book;
// an absent or unmatched Id inserts a new one.
type SaveBookDTO struct {
	ID      *int64 `json:"id" binding:"omitempty,min=0"`
	Title   string `json:"title" binding:"required"`
	Cover   string `json:"cover"`
	Content string `json:"content"`
	Genre   string `json:"genre"`
	Author  string `json:"author"`
}

// BookResponse is the summary shape returned by the listing and
// recommendation endpoints.
type BookResponse struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Rating        float64 `json:"rating"`
	ReviewsNumber int     `json:"reviewsNumber"`
	Cover         string  `json:"cover"`
}

// BookDetailsResponse carries the full book fields plus its reviews.
type BookDetailsResponse struct {
	ID      int64            `json:"id"`
	Title   string           `json:"title"`
	Author  string           `json:"author"`
	Genre   string           `json:"genre"`
	Cover   string           `json:"cover"`
	Content string           `json:"content"`
	Rating  float64          `json:"rating"`
	Reviews []ReviewResponse `json:"reviews"`
}

// FromModelToBookResponse converts a Book model to BookResponse DTO.
// The rating and review count are derived from the loaded children.
func FromModelToBookResponse(b *models.Book) *BookResponse {
	return &BookResponse{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		Rating:        b.AverageRating(),
		ReviewsNumber: len(b.Reviews),
		Cover:         b.Cover,
	}
}

// FromModelsToBookResponses converts a list of Book models.
func FromModelsToBookResponses(books []models.Book) []BookResponse {
	return lo.Map(books, func(b models.Book, _ int) BookResponse {
		return *FromModelToBookResponse(&b)
	})
}

// FromModelToBookDetailsResponse converts a Book model to the details DTO.
func FromModelToBookDetailsResponse(b *models.Book) *BookDetailsResponse {
	return &BookDetailsResponse{
		ID:      b.ID,
		Title:   b.Title,
		Author:  b.Author,
		Genre:   b.Genre,
		Cover:   b.Cover,
		Content: b.Content,
		Rating:  b.AverageRating(),
		Reviews: lo.Map(b.Reviews, func(r models.Review, _ int) ReviewResponse {
			return *FromModelToReviewResponse(&r)
		}),
	}
}

// ToModel converts the upsert payload into a Book record. The identifier is
// assigned by the caller (zero for inserts, the existing id for replacements).
func (d *SaveBookDTO) ToModel() *models.Book {
	return &models.Book{
		Title:   d.Title,
		Cover:   d.Cover,
		Content: d.Content,
		Genre:   d.Genre,
		Author:  d.Author,
	}
}
