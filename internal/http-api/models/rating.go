package models

type Rating struct {
	ID     int64 `json:"id" gorm:"primaryKey;autoIncrement"`
	Score  int   `json:"score" gorm:"not null;check:score >= 1 AND score <= 5"`
	BookID int64 `json:"book_id" gorm:"not null;index"`
}

func (Rating) TableName() string {
	return "ratings"
}
