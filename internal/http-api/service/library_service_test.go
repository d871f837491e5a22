package service_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Vladislav83530/Library/database"
	"github.com/Vladislav83530/Library/internal/http-api/dto"
	"github.com/Vladislav83530/Library/internal/http-api/models"
	"github.com/Vladislav83530/Library/internal/http-api/repository"
	"github.com/Vladislav83530/Library/internal/http-api/service"
)

type testEnv struct {
	db         *gorm.DB
	svc        service.LibraryService
	reviewRepo repository.ReviewRepository
	ratingRepo repository.RatingRepository
}

func setupService(t testing.TB) *testEnv {
	// a named shared-cache database keeps the schema visible across pooled
	// connections
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	bookRepo := repository.NewBookRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	ratingRepo := repository.NewRatingRepository(db)

	return &testEnv{
		db:         db,
		svc:        service.NewLibraryService(bookRepo, reviewRepo, ratingRepo),
		reviewRepo: reviewRepo,
		ratingRepo: ratingRepo,
	}
}

func (e *testEnv) seedBook(t testing.TB, b models.Book) int64 {
	require.NoError(t, e.db.Create(&b).Error)
	return b.ID
}

func (e *testEnv) seedReviews(t testing.TB, bookID int64, n int) {
	for i := 0; i < n; i++ {
		require.NoError(t, e.db.Create(&models.Review{
			Message:  fmt.Sprintf("review %d", i),
			Reviewer: fmt.Sprintf("reviewer %d", i),
			BookID:   bookID,
		}).Error)
	}
}

func (e *testEnv) seedRatings(t testing.TB, bookID int64, scores ...int) {
	for _, s := range scores {
		require.NoError(t, e.db.Create(&models.Rating{Score: s, BookID: bookID}).Error)
	}
}

func TestGetAllBooks(t *testing.T) {
	ctx := context.Background()

	t.Run("OrderByTitle", func(t *testing.T) {
		env := setupService(t)
		env.seedBook(t, models.Book{Title: "Dune", Author: "Herbert"})
		env.seedBook(t, models.Book{Title: "Carrie", Author: "King"})
		env.seedBook(t, models.Book{Title: "Emma", Author: "Austen"})

		books, err := env.svc.GetAllBooks(ctx, "title")
		require.NoError(t, err)
		require.Len(t, books, 3)
		for i := 1; i < len(books); i++ {
			assert.LessOrEqual(t, books[i-1].Title, books[i].Title)
		}
	})

	t.Run("OrderByAuthor", func(t *testing.T) {
		env := setupService(t)
		env.seedBook(t, models.Book{Title: "Dune", Author: "Herbert"})
		env.seedBook(t, models.Book{Title: "Carrie", Author: "King"})
		env.seedBook(t, models.Book{Title: "Emma", Author: "Austen"})

		books, err := env.svc.GetAllBooks(ctx, "author")
		require.NoError(t, err)
		require.Len(t, books, 3)
		for i := 1; i < len(books); i++ {
			assert.LessOrEqual(t, books[i-1].Author, books[i].Author)
		}
	})

	t.Run("OrderKeyIsCaseInsensitive", func(t *testing.T) {
		env := setupService(t)
		env.seedBook(t, models.Book{Title: "Dune", Author: "Herbert"})

		_, err := env.svc.GetAllBooks(ctx, "Title")
		assert.NoError(t, err)
		_, err = env.svc.GetAllBooks(ctx, "AUTHOR")
		assert.NoError(t, err)
	})

	t.Run("InvalidOrder", func(t *testing.T) {
		env := setupService(t)

		_, err := env.svc.GetAllBooks(ctx, "")
		assert.ErrorIs(t, err, service.ErrInvalidOrder)
		_, err = env.svc.GetAllBooks(ctx, "genre")
		assert.ErrorIs(t, err, service.ErrInvalidOrder)
	})

	t.Run("ComputesAggregates", func(t *testing.T) {
		env := setupService(t)
		rated := env.seedBook(t, models.Book{Title: "Dune", Author: "Herbert"})
		unrated := env.seedBook(t, models.Book{Title: "Emma", Author: "Austen"})
		env.seedRatings(t, rated, 3, 5)
		env.seedReviews(t, rated, 2)

		books, err := env.svc.GetAllBooks(ctx, "title")
		require.NoError(t, err)
		require.Len(t, books, 2)

		byID := map[int64]dto.BookResponse{}
		for _, b := range books {
			byID[b.ID] = b
		}
		assert.Equal(t, 4.0, byID[rated].Rating)
		assert.Equal(t, 2, byID[rated].ReviewsNumber)

		// a book with no ratings reports 0, never a fault
		assert.Equal(t, 0.0, byID[unrated].Rating)
		assert.Equal(t, 0, byID[unrated].ReviewsNumber)
	})
}

func TestGetRecommendedBooks(t *testing.T) {
	ctx := context.Background()

	t.Run("FiltersByReviewCount", func(t *testing.T) {
		env := setupService(t)
		popular := env.seedBook(t, models.Book{Title: "Dune", Genre: "sci-fi"})
		obscure := env.seedBook(t, models.Book{Title: "Emma", Genre: "romance"})
		env.seedReviews(t, popular, 10)
		env.seedReviews(t, obscure, 9)
		env.seedRatings(t, popular, 4)
		env.seedRatings(t, obscure, 5)

		books, err := env.svc.GetRecommendedBooks(ctx, "")
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, popular, books[0].ID)
	})

	t.Run("SortsByRatingDescendingAndCapsAtTen", func(t *testing.T) {
		env := setupService(t)
		for i := 0; i < 12; i++ {
			id := env.seedBook(t, models.Book{Title: fmt.Sprintf("Book %02d", i)})
			env.seedReviews(t, id, 10)
			// scores cycle 1..5
			env.seedRatings(t, id, i%5+1)
		}

		books, err := env.svc.GetRecommendedBooks(ctx, "")
		require.NoError(t, err)
		assert.Len(t, books, 10)
		for i := 1; i < len(books); i++ {
			assert.GreaterOrEqual(t, books[i-1].Rating, books[i].Rating)
		}
	})

	t.Run("GenreFilterIsExactAndCaseSensitive", func(t *testing.T) {
		env := setupService(t)
		horror := env.seedBook(t, models.Book{Title: "Carrie", Genre: "horror"})
		spaced := env.seedBook(t, models.Book{Title: "It", Genre: "horror "})
		for _, id := range []int64{horror, spaced} {
			env.seedReviews(t, id, 10)
			env.seedRatings(t, id, 5)
		}

		books, err := env.svc.GetRecommendedBooks(ctx, "horror")
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, horror, books[0].ID)

		// the trailing-space genre is its own value
		books, err = env.svc.GetRecommendedBooks(ctx, "horror ")
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, spaced, books[0].ID)

		books, err = env.svc.GetRecommendedBooks(ctx, "Horror")
		require.NoError(t, err)
		assert.Empty(t, books)
	})

	t.Run("FewerQualifyingBooksIsNotAnError", func(t *testing.T) {
		env := setupService(t)

		books, err := env.svc.GetRecommendedBooks(ctx, "")
		require.NoError(t, err)
		assert.Empty(t, books)
	})
}

func TestGetBookDetails(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		env := setupService(t)
		id := env.seedBook(t, models.Book{
			Title:   "Dune",
			Author:  "Herbert",
			Genre:   "sci-fi",
			Content: "full text",
		})
		env.seedRatings(t, id, 3, 5)
		env.seedReviews(t, id, 2)

		details, err := env.svc.GetBookDetails(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Dune", details.Title)
		assert.Equal(t, "sci-fi", details.Genre)
		assert.Equal(t, "full text", details.Content)
		assert.Equal(t, 4.0, details.Rating)
		assert.Len(t, details.Reviews, 2)
	})

	t.Run("NotFound", func(t *testing.T) {
		env := setupService(t)

		_, err := env.svc.GetBookDetails(ctx, 12345)
		assert.ErrorIs(t, err, service.ErrBookNotFound)
	})
}

func TestSaveBook(t *testing.T) {
	ctx := context.Background()

	t.Run("InsertWithoutID", func(t *testing.T) {
		env := setupService(t)

		id, err := env.svc.SaveBook(ctx, &dto.SaveBookDTO{Title: "Dune", Author: "Herbert"})
		require.NoError(t, err)
		assert.Positive(t, id)

		details, err := env.svc.GetBookDetails(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Dune", details.Title)
		assert.Equal(t, "Herbert", details.Author)
	})

	t.Run("ReplaceExisting", func(t *testing.T) {
		env := setupService(t)
		id := env.seedBook(t, models.Book{Title: "Dune", Author: "Herbert", Genre: "sci-fi"})

		got, err := env.svc.SaveBook(ctx, &dto.SaveBookDTO{
			ID:     &id,
			Title:  "Dune Messiah",
			Author: "Herbert",
		})
		require.NoError(t, err)
		assert.Equal(t, id, got)

		details, err := env.svc.GetBookDetails(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Dune Messiah", details.Title)
		// replace semantics: unsent fields are cleared, not merged
		assert.Empty(t, details.Genre)
	})

	t.Run("UnmatchedIDInsertsNew", func(t *testing.T) {
		env := setupService(t)
		missing := int64(999)

		id, err := env.svc.SaveBook(ctx, &dto.SaveBookDTO{ID: &missing, Title: "Emma"})
		require.NoError(t, err)
		assert.Positive(t, id)
	})

	t.Run("CoverValidation", func(t *testing.T) {
		env := setupService(t)

		_, err := env.svc.SaveBook(ctx, &dto.SaveBookDTO{Title: "Emma", Cover: "not-base64"})
		assert.ErrorIs(t, err, service.ErrInvalidCover)

		_, err = env.svc.SaveBook(ctx, &dto.SaveBookDTO{
			Title: "Emma",
			Cover: "data:image/png;base64,iVBORw0KGgo=",
		})
		assert.NoError(t, err)

		// an empty cover is allowed
		_, err = env.svc.SaveBook(ctx, &dto.SaveBookDTO{Title: "Emma"})
		assert.NoError(t, err)
	})
}

func TestSaveReview(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		env := setupService(t)
		bookID := env.seedBook(t, models.Book{Title: "Dune"})

		reviewID, err := env.svc.SaveReview(ctx, bookID, &dto.SaveReviewDTO{
			Message:  "great read",
			Reviewer: "alice",
		})
		require.NoError(t, err)
		assert.Positive(t, reviewID)

		details, err := env.svc.GetBookDetails(ctx, bookID)
		require.NoError(t, err)
		require.Len(t, details.Reviews, 1)
		assert.Equal(t, "great read", details.Reviews[0].Message)
		assert.Equal(t, "alice", details.Reviews[0].Reviewer)
	})

	t.Run("BookNotFound", func(t *testing.T) {
		env := setupService(t)

		_, err := env.svc.SaveReview(ctx, 12345, &dto.SaveReviewDTO{
			Message:  "great read",
			Reviewer: "alice",
		})
		assert.ErrorIs(t, err, service.ErrBookNotFound)
	})
}

func TestRateBook(t *testing.T) {
	ctx := context.Background()

	t.Run("BoundaryScores", func(t *testing.T) {
		env := setupService(t)
		bookID := env.seedBook(t, models.Book{Title: "Dune"})

		assert.ErrorIs(t, env.svc.RateBook(ctx, bookID, &dto.RateBookDTO{Score: 0}), service.ErrInvalidScore)
		assert.ErrorIs(t, env.svc.RateBook(ctx, bookID, &dto.RateBookDTO{Score: 6}), service.ErrInvalidScore)
		assert.NoError(t, env.svc.RateBook(ctx, bookID, &dto.RateBookDTO{Score: 1}))
		assert.NoError(t, env.svc.RateBook(ctx, bookID, &dto.RateBookDTO{Score: 5}))

		details, err := env.svc.GetBookDetails(ctx, bookID)
		require.NoError(t, err)
		assert.Equal(t, 3.0, details.Rating)
	})

	t.Run("BookNotFound", func(t *testing.T) {
		env := setupService(t)

		err := env.svc.RateBook(ctx, 12345, &dto.RateBookDTO{Score: 4})
		assert.ErrorIs(t, err, service.ErrBookNotFound)
	})
}

func TestDeleteBook(t *testing.T) {
	ctx := context.Background()

	t.Run("CascadesToChildren", func(t *testing.T) {
		env := setupService(t)
		bookID := env.seedBook(t, models.Book{Title: "Dune"})
		env.seedReviews(t, bookID, 3)
		env.seedRatings(t, bookID, 2, 4)

		require.NoError(t, env.svc.DeleteBook(ctx, bookID))

		_, err := env.svc.GetBookDetails(ctx, bookID)
		assert.ErrorIs(t, err, service.ErrBookNotFound)

		reviews, err := env.reviewRepo.GetByBook(ctx, bookID)
		require.NoError(t, err)
		assert.Empty(t, reviews)

		ratings, err := env.ratingRepo.GetByBook(ctx, bookID)
		require.NoError(t, err)
		assert.Empty(t, ratings)
	})

	t.Run("MissingBookIsNoOp", func(t *testing.T) {
		env := setupService(t)

		assert.NoError(t, env.svc.DeleteBook(ctx, 12345))
	})

	t.Run("OtherBooksAreUntouched", func(t *testing.T) {
		env := setupService(t)
		doomed := env.seedBook(t, models.Book{Title: "Dune"})
		kept := env.seedBook(t, models.Book{Title: "Emma"})
		env.seedReviews(t, kept, 1)
		env.seedRatings(t, kept, 5)

		require.NoError(t, env.svc.DeleteBook(ctx, doomed))

		details, err := env.svc.GetBookDetails(ctx, kept)
		require.NoError(t, err)
		assert.Len(t, details.Reviews, 1)
		assert.Equal(t, 5.0, details.Rating)
	})
}
