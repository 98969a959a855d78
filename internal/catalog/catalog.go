package catalog

import (
	"context"
	"math"

	"github.com/brad50916/Board-Game-Recommendation/internal/logging"
	"github.com/brad50916/Board-Game-Recommendation/internal/models"

	"go.uber.org/zap"
)

// Lookup resolves catalog metadata for a game id; nil means the id is
// not in the catalog.
type Lookup interface {
	GameByID(ctx context.Context, gameID int64) (*models.Game, error)
}

// GameView is the display shape for one game in the recommendation grid.
type GameView struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Year           int     `json:"year"`
	Rating         float64 `json:"rating"` // 0-5 stars in 0.5 steps
	MinPlayers     int     `json:"minplayers"`
	MaxPlayers     int     `json:"maxplayers"`
	NumUserRatings int     `json:"numuserratings"`
	ImagePath      string  `json:"imagepath"`
}

// Stars converts the catalog's 0-10 average onto the 0-5 star widget
// scale, rounded to the nearest half star.
func Stars(avgRating float64) float64 {
	return math.Round(avgRating/2*2) / 2
}

// NewGameView builds the display record for one catalog entry.
func NewGameView(game models.Game) GameView {
	return GameView{
		ID:             game.BGGID,
		Title:          game.Name,
		Description:    game.Description,
		Year:           game.YearPublished,
		Rating:         Stars(game.AvgRating),
		MinPlayers:     game.MinPlayers,
		MaxPlayers:     game.MaxPlayers,
		NumUserRatings: game.NumUserRatings,
		ImagePath:      game.ImagePath,
	}
}

// Hydrator turns scorer-ordered game ids into displayable records.
type Hydrator struct {
	lookup Lookup
}

// NewHydrator wraps a catalog lookup.
func NewHydrator(lookup Lookup) *Hydrator {
	return &Hydrator{lookup: lookup}
}

// Hydrate resolves ids in their given order. An id missing from the
// catalog is logged and skipped so the rest of the list still renders;
// a lookup failure aborts the whole call.
func (h *Hydrator) Hydrate(ctx context.Context, gameIDs []int64) ([]GameView, error) {
	views := make([]GameView, 0, len(gameIDs))
	for _, id := range gameIDs {
		game, err := h.lookup.GameByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if game == nil {
			logging.L().Warn("recommended game missing from catalog", zap.Int64("game_id", id))
			continue
		}
		views = append(views, NewGameView(*game))
	}
	return views, nil
}
