package models

// Game is one board-game catalog entry, keyed by its BoardGameGeek id.
// The catalog is reference data: the recommendation flow only reads it.
type Game struct {
	BGGID          int64  `gorm:"column:bggid;primaryKey"`
	Name           string `gorm:"size:255;not null;index"`
	Description    string
	YearPublished  int
	MinPlayers     int
	MaxPlayers     int
	AvgRating      float64 // 0-10 scale, as shipped in the BGG export
	NumUserRatings int
	ImagePath      string `gorm:"size:512"`
}

// TableName keeps the table name from the legacy schema.
func (Game) TableName() string { return "board_games" }
