package repository

import (
	"context"
	"fmt"

	"github.com/Vladislav83530/Library/internal/http-api/models"

	"gorm.io/gorm"
)

type BookRepository interface {
	GetAll(ctx context.Context) ([]models.Book, error)
	GetByID(ctx context.Context, id int64) (*models.Book, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, b *models.Book) error
	Save(ctx context.Context, b *models.Book) error
	DeleteWithChildren(ctx context.Context, id int64) error
}

type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

// GetAll fetches every book with its reviews and ratings eagerly loaded,
// so aggregate computation for a listing needs no further round trips.
func (r *bookRepository) GetAll(ctx context.Context) ([]models.Book, error) {
	var list []models.Book
	if err := r.db.WithContext(ctx).
		Preload("Reviews").
		Preload("Ratings").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get all books: %w", err)
	}
	return list, nil
}

func (r *bookRepository) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	var b models.Book
	if err := r.db.WithContext(ctx).
		Preload("Reviews").
		Preload("Ratings").
		First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Book{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("check book exists: %w", err)
	}
	return count > 0, nil
}

func (r *bookRepository) Create(ctx context.Context, b *models.Book) error {
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		return fmt.Errorf("create book: %w", err)
	}
	// GORM populates b.ID
	return nil
}

// Save replaces all fields of an existing book.
func (r *bookRepository) Save(ctx context.Context, b *models.Book) error {
	if err := r.db.WithContext(ctx).Save(b).Error; err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	return nil
}

// DeleteWithChildren removes a book together with its reviews and ratings in
// a single transaction. A missing book is a no-op, not an error.
func (r *bookRepository) DeleteWithChildren(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", id).Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		if err := tx.Where("book_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Book{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}
	return nil
}
