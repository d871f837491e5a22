package service

import (
	"context"
	"errors"
	"regexp"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/Vladislav83530/Library/internal/http-api/dto"
	"github.com/Vladislav83530/Library/internal/http-api/models"
	"github.com/Vladislav83530/Library/internal/http-api/repository"
)

const (
	orderByAuthor = "author"
	orderByTitle  = "title"

	// recommendation thresholds
	minReviewsForRecommendation = 10
	maxRecommendedBooks         = 10
)

// coverPattern accepts covers submitted as base64 data URIs.
var coverPattern = regexp.MustCompile(`^data:image/[a-zA-Z]+;base64,([^\s]+)$`)

type LibraryService interface {
	GetAllBooks(ctx context.Context, order string) ([]dto.BookResponse, error)
	GetRecommendedBooks(ctx context.Context, genre string) ([]dto.BookResponse, error)
	GetBookDetails(ctx context.Context, id int64) (*dto.BookDetailsResponse, error)
	BookExists(ctx context.Context, id int64) (bool, error)
	SaveBook(ctx context.Context, book *dto.SaveBookDTO) (int64, error)
	SaveReview(ctx context.Context, bookID int64, review *dto.SaveReviewDTO) (int64, error)
	RateBook(ctx context.Context, bookID int64, rating *dto.RateBookDTO) error
	DeleteBook(ctx context.Context, id int64) error
}

type libraryService struct {
	bookRepo   repository.BookRepository
	reviewRepo repository.ReviewRepository
	ratingRepo repository.RatingRepository
}

func NewLibraryService(
	bookRepo repository.BookRepository,
	reviewRepo repository.ReviewRepository,
	ratingRepo repository.RatingRepository,
) LibraryService {
	return &libraryService{
		bookRepo:   bookRepo,
		reviewRepo: reviewRepo,
		ratingRepo: ratingRepo,
	}
}

// GetAllBooks returns every book with its computed average rating and review
// count, sorted ascending by the requested field. The order key is matched
// case-insensitively and must be "author" or "title".
func (s *libraryService) GetAllBooks(ctx context.Context, order string) ([]dto.BookResponse, error) {
	var less func(a, b *models.Book) bool
	switch strings.ToLower(order) {
	case orderByAuthor:
		less = func(a, b *models.Book) bool { return a.Author < b.Author }
	case orderByTitle:
		less = func(a, b *models.Book) bool { return a.Title < b.Title }
	default:
		return nil, ErrInvalidOrder
	}

	books, err := s.bookRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(books, func(i, j int) bool {
		return less(&books[i], &books[j])
	})

	return dto.FromModelsToBookResponses(books), nil
}

// GetRecommendedBooks returns at most ten books that have gathered at least
// ten reviews, best rated first. A non-empty genre narrows the candidates by
// exact match; genre values are compared byte for byte, without case folding
// or whitespace trimming (the catalog contains genres that differ only in
// trailing whitespace).
func (s *libraryService) GetRecommendedBooks(ctx context.Context, genre string) ([]dto.BookResponse, error) {
	books, err := s.bookRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	recommended := make([]models.Book, 0, len(books))
	for _, b := range books {
		if len(b.Reviews) < minReviewsForRecommendation {
			continue
		}
		if genre != "" && b.Genre != genre {
			continue
		}
		recommended = append(recommended, b)
	}

	sort.SliceStable(recommended, func(i, j int) bool {
		return recommended[i].AverageRating() > recommended[j].AverageRating()
	})

	if len(recommended) > maxRecommendedBooks {
		recommended = recommended[:maxRecommendedBooks]
	}

	return dto.FromModelsToBookResponses(recommended), nil
}

// GetBookDetails returns the full book fields, its average rating and all of
// its reviews.
func (s *libraryService) GetBookDetails(ctx context.Context, id int64) (*dto.BookDetailsResponse, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return dto.FromModelToBookDetailsResponse(book), nil
}

func (s *libraryService) BookExists(ctx context.Context, id int64) (bool, error) {
	return s.bookRepo.Exists(ctx, id)
}

// SaveBook inserts or replaces a book. An explicit existence check decides
// between insert and replace; a payload id that matches no book falls back to
// an insert with a store-generated id.
func (s *libraryService) SaveBook(ctx context.Context, book *dto.SaveBookDTO) (int64, error) {
	if book.Cover != "" && !coverPattern.MatchString(book.Cover) {
		return 0, ErrInvalidCover
	}

	record := book.ToModel()

	if book.ID != nil {
		exists, err := s.bookRepo.Exists(ctx, *book.ID)
		if err != nil {
			return 0, err
		}
		if exists {
			record.ID = *book.ID
			if err := s.bookRepo.Save(ctx, record); err != nil {
				return 0, err
			}
			return record.ID, nil
		}
	}

	if err := s.bookRepo.Create(ctx, record); err != nil {
		return 0, err
	}
	return record.ID, nil
}

// SaveReview attaches a review to an existing book and returns the review id.
func (s *libraryService) SaveReview(ctx context.Context, bookID int64, review *dto.SaveReviewDTO) (int64, error) {
	exists, err := s.bookRepo.Exists(ctx, bookID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, ErrBookNotFound
	}

	record := review.ToModel(bookID)
	if err := s.reviewRepo.Create(ctx, record); err != nil {
		return 0, err
	}
	return record.ID, nil
}

// RateBook attaches a rating to an existing book. The score must lie in the
// inclusive range [1,5].
func (s *libraryService) RateBook(ctx context.Context, bookID int64, rating *dto.RateBookDTO) error {
	if rating.Score < 1 || rating.Score > 5 {
		return ErrInvalidScore
	}

	exists, err := s.bookRepo.Exists(ctx, bookID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrBookNotFound
	}

	return s.ratingRepo.Create(ctx, rating.ToModel(bookID))
}

// DeleteBook removes a book and all of its reviews and ratings as one unit.
// Deleting an absent book is a no-op.
func (s *libraryService) DeleteBook(ctx context.Context, id int64) error {
	return s.bookRepo.DeleteWithChildren(ctx, id)
}
