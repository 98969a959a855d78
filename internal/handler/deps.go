package handler

import (
	"context"

	"github.com/brad50916/Board-Game-Recommendation/internal/catalog"
	"github.com/brad50916/Board-Game-Recommendation/internal/models"
	"github.com/brad50916/Board-Game-Recommendation/internal/recommender"
)

// Store is the slice of persistence the handlers use directly. The gorm
// implementation is internal/store.GormStore; tests swap in fakes.
type Store interface {
	InsertRating(ctx context.Context, userID uint, gameID int64, value int) (*models.Rating, error)
	LatestRating(ctx context.Context, userID uint, gameID int64) (*models.Rating, error)
	GameByID(ctx context.Context, gameID int64) (*models.Game, error)
	UsernameByID(ctx context.Context, userID uint) (string, error)
}

// Wiring for the recommendation flow, set once from main.
var (
	Recommender *recommender.Service
	Catalog     *catalog.Hydrator
	DataStore   Store
)
