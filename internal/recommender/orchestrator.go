package recommender

import (
	"context"
	"fmt"

	"github.com/brad50916/Board-Game-Recommendation/internal/logging"

	"go.uber.org/zap"
)

// Store is the persistence surface the orchestrator depends on. The
// gorm-backed implementation lives in internal/store.
type Store interface {
	// RatingsForUser returns every rating row the user ever submitted,
	// oldest first. Re-rated games appear once per submission.
	RatingsForUser(ctx context.Context, userID uint) ([]RatingPair, error)

	// PreferenceVector returns the stored taxonomy vector, or nil when
	// the user has never submitted preferences.
	PreferenceVector(ctx context.Context, userID uint) ([]bool, error)

	// SaveRecommendation persists the vector and the scorer's ordering
	// together; a reader never observes one without the other.
	SaveRecommendation(ctx context.Context, userID uint, vector []bool, gameIDs []int64) error

	// HasRecommendationList reports whether a cached ordering exists.
	HasRecommendationList(ctx context.Context, userID uint) (bool, error)
}

// Scorer abstracts the external recommendation service.
type Scorer interface {
	Recommend(ctx context.Context, username string, ratings []RatingPair, preferences []bool) ([]int64, error)
}

// Service reconciles topic preferences and rating history into scorer
// calls, and keeps each user's cached recommendation list consistent
// with the inputs that produced it.
type Service struct {
	store  Store
	scorer Scorer
}

// NewService wires the orchestrator to its collaborators.
func NewService(store Store, scorer Scorer) *Service {
	return &Service{store: store, scorer: scorer}
}

// SubmitPreferences is the cold-start path: rank games from the topic
// vector alone, with an empty rating history, then persist both the
// vector and the returned ordering. Resubmitting overwrites both, so
// with a deterministic scorer the call is idempotent.
func (s *Service) SubmitPreferences(ctx context.Context, userID uint, username string, vector []bool) ([]int64, error) {
	if len(vector) != NumTopics {
		return nil, fmt.Errorf("preference vector has %d flags, want %d", len(vector), NumTopics)
	}

	gameIDs, err := s.scorer.Recommend(ctx, username, nil, vector)
	if err != nil {
		return nil, err
	}

	if err := s.store.SaveRecommendation(ctx, userID, vector, gameIDs); err != nil {
		return nil, err
	}

	logging.L().Info("cold-start recommendation stored",
		zap.Uint("user_id", userID),
		zap.Int("games", len(gameIDs)))

	return gameIDs, nil
}

// Refresh is the dashboard path: re-rank from the full rating history
// plus the last stored preference vector. The fresh ordering is served
// live and never written back; only a cold-start submission moves the
// cached list.
func (s *Service) Refresh(ctx context.Context, userID uint, username string) ([]int64, error) {
	ratings, err := s.store.RatingsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	// The stored vector is passed through even when the user has no
	// ratings yet; it is never replaced with a default here.
	vector, err := s.store.PreferenceVector(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.scorer.Recommend(ctx, username, ratings, vector)
}

// HasPreferences reports whether the user finished onboarding, i.e. a
// cached recommendation list exists from a past cold-start submission.
// This is a binary flag, not a freshness check.
func (s *Service) HasPreferences(ctx context.Context, userID uint) (bool, error) {
	return s.store.HasRecommendationList(ctx, userID)
}
