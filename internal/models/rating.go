package models

import "gorm.io/gorm"

// Rating is one star rating submitted by a user for a game. There is no
// (user, game) uniqueness: re-rating a game appends another row, and
// every row feeds the rating history sent to the scorer.
type Rating struct {
	gorm.Model
	UserID uint  `gorm:"not null;index"`
	GameID int64 `gorm:"not null;index"`
	Value  int   `gorm:"column:rating;not null"` // 1-5 stars
}

// TableName keeps the table name from the legacy schema.
func (Rating) TableName() string { return "user_ratings" }
