package store

import (
	"context"
	"errors"

	"github.com/brad50916/Board-Game-Recommendation/internal/models"
	"github.com/brad50916/Board-Game-Recommendation/internal/recommender"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GormStore implements the persistence contract consumed by the
// recommendation orchestrator and the rating/catalog handlers.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps an open gorm connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// RatingsForUser returns the user's full rating history, oldest first.
func (s *GormStore) RatingsForUser(ctx context.Context, userID uint) ([]recommender.RatingPair, error) {
	var rows []models.Rating
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	pairs := make([]recommender.RatingPair, 0, len(rows))
	for _, r := range rows {
		pairs = append(pairs, recommender.RatingPair{GameID: r.GameID, Value: r.Value})
	}
	return pairs, nil
}

// PreferenceVector returns the stored taxonomy vector, nil when the user
// never submitted preferences.
func (s *GormStore) PreferenceVector(ctx context.Context, userID uint) ([]bool, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Select("preference_list1").First(&user, userID).Error; err != nil {
		return nil, err
	}
	if user.PreferenceVector == nil {
		return nil, nil
	}
	return []bool(user.PreferenceVector), nil
}

// SaveRecommendation overwrites the user's vector and cached ordering in
// a single UPDATE, so the two columns always move together.
func (s *GormStore) SaveRecommendation(ctx context.Context, userID uint, vector []bool, gameIDs []int64) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"preference_list":  pq.Int64Array(gameIDs),
		"preference_list1": pq.BoolArray(vector),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// HasRecommendationList reports whether a cached ordering exists. An
// empty ordering still counts: the gate asks "did the user ever submit",
// not "did the scorer return anything".
func (s *GormStore) HasRecommendationList(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND preference_list IS NOT NULL", userID).
		Count(&count).Error
	return count > 0, err
}

// InsertRating appends a rating row. No upsert: rating the same game
// again adds a second row on purpose.
func (s *GormStore) InsertRating(ctx context.Context, userID uint, gameID int64, value int) (*models.Rating, error) {
	rating := models.Rating{UserID: userID, GameID: gameID, Value: value}
	if err := s.db.WithContext(ctx).Create(&rating).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

// LatestRating returns the most recent rating the user gave a game, or
// nil when they never rated it.
func (s *GormStore) LatestRating(ctx context.Context, userID uint, gameID int64) (*models.Rating, error) {
	var rating models.Rating
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND game_id = ?", userID, gameID).
		Order("id DESC").
		First(&rating).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// GameByID returns catalog metadata for a game, nil when the id is not
// in the catalog.
func (s *GormStore) GameByID(ctx context.Context, gameID int64) (*models.Game, error) {
	var game models.Game
	err := s.db.WithContext(ctx).First(&game, "bggid = ?", gameID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// UsernameByID resolves the identity sent to the scorer.
func (s *GormStore) UsernameByID(ctx context.Context, userID uint) (string, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Select("username").First(&user, userID).Error; err != nil {
		return "", err
	}
	return user.Username, nil
}
