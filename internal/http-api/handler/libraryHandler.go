package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Vladislav83530/Library/internal/http-api/auth"
	"github.com/Vladislav83530/Library/internal/http-api/dto"
	"github.com/Vladislav83530/Library/internal/http-api/service"
)

type LibraryHandler struct {
	libraryService service.LibraryService
	deletePolicy   auth.DeletePolicy
}

func NewLibraryHandler(libraryService service.LibraryService, deletePolicy auth.DeletePolicy) *LibraryHandler {
	return &LibraryHandler{
		libraryService: libraryService,
		deletePolicy:   deletePolicy,
	}
}

// RegisterRoutes registers the library routes
func (h *LibraryHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/books", h.GetAllBooks)
	router.GET("/recommended", h.GetRecommendedBooks)
	router.GET("/books/:id", h.GetBookDetails)
	router.DELETE("/books/:id", h.DeleteBook)
	router.POST("/books/save", h.SaveBook)
	router.PUT("/books/:id/review", h.SaveReview)
	router.PUT("/books/:id/rate", h.RateBook)
}

// GetAllBooks lists every book with rating aggregates
// GET /api/books?order=author|title
func (h *LibraryHandler) GetAllBooks(c *gin.Context) {
	books, err := h.libraryService.GetAllBooks(c.Request.Context(), c.Query("order"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, books)
}

// GetRecommendedBooks returns the top rated books with enough reviews
// GET /api/recommended?genre=horror
func (h *LibraryHandler) GetRecommendedBooks(c *gin.Context) {
	books, err := h.libraryService.GetRecommendedBooks(c.Request.Context(), c.Query("genre"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, books)
}

// GetBookDetails returns the full book fields with its reviews
// GET /api/books/:id
func (h *LibraryHandler) GetBookDetails(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
		return
	}

	details, err := h.libraryService.GetBookDetails(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}

// DeleteBook removes a book with its reviews and ratings
// DELETE /api/books/:id?secret=qwerty
func (h *LibraryHandler) DeleteBook(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
		return
	}

	// The secret is checked before existence, so a wrong key yields 400 even
	// for books that are not there.
	if err := h.deletePolicy.Authorize(c.Query("secret")); err != nil {
		h.respondError(c, err)
		return
	}

	exists, err := h.libraryService.BookExists(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": service.ErrBookNotFound.Error()})
		return
	}

	if err := h.libraryService.DeleteBook(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// SaveBook inserts a new book or replaces an existing one
// POST /api/books/save
func (h *LibraryHandler) SaveBook(c *gin.Context) {
	var req dto.SaveBookDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.libraryService.SaveBook(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, id)
}

// SaveReview attaches a review to a book
// PUT /api/books/:id/review
func (h *LibraryHandler) SaveReview(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
		return
	}

	var req dto.SaveReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reviewID, err := h.libraryService.SaveReview(c.Request.Context(), id, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviewID)
}

// RateBook attaches a rating to a book
// PUT /api/books/:id/rate
func (h *LibraryHandler) RateBook(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
		return
	}

	var req dto.RateBookDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.libraryService.RateBook(c.Request.Context(), id, &req); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// respondError translates service errors into HTTP statuses. Unrecognized
// errors become a generic 500; the cause is only logged.
func (h *LibraryHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBookNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidOrder),
		errors.Is(err, service.ErrInvalidScore),
		errors.Is(err, service.ErrInvalidCover),
		errors.Is(err, auth.ErrInvalidSecret):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("[%s] %s %s failed: %v",
			c.GetString("requestID"), c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred."})
	}
}
