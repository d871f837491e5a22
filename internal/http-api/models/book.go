package models

type Book struct {
	ID      int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Title   string `json:"title" gorm:"not null"`
	Author  string `json:"author"`
	Genre   string `json:"genre"`
	Cover   string `json:"cover" gorm:"type:text"`
	Content string `json:"content" gorm:"type:text"`

	// associations
	Reviews []Review `json:"reviews,omitempty" gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE;"`
	Ratings []Rating `json:"ratings,omitempty" gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE;"`
}

func (Book) TableName() string {
	return "books"
}

// AverageRating is the arithmetic mean of the book's rating scores.
// Defined as 0 for a book with no ratings.
func (b *Book) AverageRating() float64 {
	if len(b.Ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range b.Ratings {
		sum += r.Score
	}
	return float64(sum) / float64(len(b.Ratings))
}
