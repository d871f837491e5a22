package models

type Review struct {
	ID       int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Message  string `json:"message" gorm:"not null;type:text"`
	Reviewer string `json:"reviewer" gorm:"not null"`
	BookID   int64  `json:"book_id" gorm:"not null;index"`
}

func (Review) TableName() string {
	return "reviews"
}
