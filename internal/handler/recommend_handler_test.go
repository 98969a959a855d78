package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brad50916/Board-Game-Recommendation/internal/catalog"
	"github.com/brad50916/Board-Game-Recommendation/internal/models"
	"github.com/brad50916/Board-Game-Recommendation/internal/recommender"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeAppStore backs the handlers, the orchestrator and the hydrator in
// one in-memory value, standing in for GormStore.
type fakeAppStore struct {
	username string
	vector   []bool
	list     []int64
	hasList  bool
	rows     []models.Rating
	games    map[int64]*models.Game
	nextID   uint
}

func (s *fakeAppStore) RatingsForUser(ctx context.Context, userID uint) ([]recommender.RatingPair, error) {
	pairs := make([]recommender.RatingPair, 0, len(s.rows))
	for _, row := range s.rows {
		pairs = append(pairs, recommender.RatingPair{GameID: row.GameID, Value: row.Value})
	}
	return pairs, nil
}

func (s *fakeAppStore) PreferenceVector(ctx context.Context, userID uint) ([]bool, error) {
	return s.vector, nil
}

func (s *fakeAppStore) SaveRecommendation(ctx context.Context, userID uint, vector []bool, gameIDs []int64) error {
	s.vector = append([]bool(nil), vector...)
	s.list = append([]int64(nil), gameIDs...)
	s.hasList = true
	return nil
}

func (s *fakeAppStore) HasRecommendationList(ctx context.Context, userID uint) (bool, error) {
	return s.hasList, nil
}

func (s *fakeAppStore) InsertRating(ctx context.Context, userID uint, gameID int64, value int) (*models.Rating, error) {
	s.nextID++
	row := models.Rating{Model: gorm.Model{ID: s.nextID}, UserID: userID, GameID: gameID, Value: value}
	s.rows = append(s.rows, row)
	return &row, nil
}

func (s *fakeAppStore) LatestRating(ctx context.Context, userID uint, gameID int64) (*models.Rating, error) {
	for i := len(s.rows) - 1; i >= 0; i-- {
		if s.rows[i].UserID == userID && s.rows[i].GameID == gameID {
			row := s.rows[i]
			return &row, nil
		}
	}
	return nil, nil
}

func (s *fakeAppStore) GameByID(ctx context.Context, gameID int64) (*models.Game, error) {
	return s.games[gameID], nil
}

func (s *fakeAppStore) UsernameByID(ctx context.Context, userID uint) (string, error) {
	return s.username, nil
}

// newTestRouter wires the recommendation routes against the fake store
// and a scorer at the given URL, with user 1 pre-authenticated.
func newTestRouter(store *fakeAppStore, scorerURL string) *gin.Engine {
	DataStore = store
	Recommender = recommender.NewService(store, recommender.NewClient(scorerURL, time.Second))
	Catalog = catalog.NewHydrator(store)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userID", uint(1))
		c.Next()
	})
	router.POST("/preferences", SubmitPreferences)
	router.GET("/preferences/status", GetPreferenceStatus)
	router.GET("/recommendations", GetRecommendations)
	router.POST("/ratings", SubmitRating)
	router.GET("/ratings/:gameId", GetMyRating)
	return router
}

func newCatalogStore() *fakeAppStore {
	return &fakeAppStore{
		username: "ada",
		games: map[int64]*models.Game{
			42: {BGGID: 42, Name: "Gloomhaven", AvgRating: 8.6},
			7:  {BGGID: 7, Name: "Cathedral", AvgRating: 6.4},
		},
	}
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestPreferenceFlowEndToEnd(t *testing.T) {
	var scorerBodies []map[string]json.RawMessage
	scorer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("Failed to decode scorer request: %v", err)
		}
		scorerBodies = append(scorerBodies, body)
		w.Write([]byte(`{"recommendations": [[42, 0.9], [7, 0.5]]}`))
	}))
	defer scorer.Close()

	store := newCatalogStore()
	router := newTestRouter(store, scorer.URL)

	// Fresh user: gate is down.
	rec := doJSON(router, http.MethodGet, "/preferences/status", nil)
	if rec.Code != http.StatusOK || rec.Body.String() != `{"has_preferences":false}` {
		t.Fatalf("Expected gate false, got %d %s", rec.Code, rec.Body.String())
	}

	// Cold start: topic 0 only.
	rec = doJSON(router, http.MethodPost, "/preferences", gin.H{"preferences": gin.H{"fantasyMyth": true}})
	if rec.Code != http.StatusOK {
		t.Fatalf("SubmitPreferences: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	var resp RecommendationResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.GameIDs) != 2 || resp.GameIDs[0] != 42 || resp.GameIDs[1] != 7 {
		t.Errorf("Expected game_ids [42 7], got %v", resp.GameIDs)
	}
	if len(store.list) != 2 || store.list[0] != 42 || store.list[1] != 7 {
		t.Errorf("Cached list mismatch: %v", store.list)
	}

	// Gate flips immediately.
	rec = doJSON(router, http.MethodGet, "/preferences/status", nil)
	if rec.Body.String() != `{"has_preferences":true}` {
		t.Fatalf("Expected gate true, got %s", rec.Body.String())
	}

	// Dashboard refresh with no ratings yet.
	rec = doJSON(router, http.MethodGet, "/recommendations", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GetRecommendations: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	resp = RecommendationResponse{}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Games) != 2 || resp.Games[0].Title != "Gloomhaven" || resp.Games[1].Title != "Cathedral" {
		t.Errorf("Expected games 42 and 7 in scorer order, got %+v", resp.Games)
	}

	// Both scorer calls: empty rating history, topic-0 vector.
	if len(scorerBodies) != 2 {
		t.Fatalf("Expected 2 scorer calls, got %d", len(scorerBodies))
	}
	for i, body := range scorerBodies {
		if string(body["ratings"]) != "[]" {
			t.Errorf("Call %d: expected ratings [], got %s", i, body["ratings"])
		}
		var prefs []bool
		if err := json.Unmarshal(body["preferences"], &prefs); err != nil {
			t.Fatalf("Call %d: failed to decode preferences: %v", i, err)
		}
		if len(prefs) != recommender.NumTopics || !prefs[0] {
			t.Errorf("Call %d: unexpected preferences %v", i, prefs)
		}
		for j := 1; j < len(prefs); j++ {
			if prefs[j] {
				t.Errorf("Call %d: topic %d should be false", i, j)
			}
		}
	}
}

func TestSubmitPreferencesRejectsUnknownTopic(t *testing.T) {
	store := newCatalogStore()
	router := newTestRouter(store, "http://localhost:0")

	rec := doJSON(router, http.MethodPost, "/preferences", gin.H{"preferences": gin.H{"cooking": true}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
	if store.hasList {
		t.Error("Nothing may be persisted for an invalid submission")
	}
}

func TestGetRecommendationsScorerDown(t *testing.T) {
	scorer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := scorer.URL
	scorer.Close()

	store := newCatalogStore()
	store.vector = make([]bool, recommender.NumTopics)
	store.hasList = true
	router := newTestRouter(store, url)

	rec := doJSON(router, http.MethodGet, "/recommendations", nil)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("Expected 502, got %d (%s)", rec.Code, rec.Body.String())
	}
}

func TestRecommendationHydrationSkipsMissingGames(t *testing.T) {
	scorer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"recommendations": [[42, 0.9], [999, 0.7], [7, 0.5]]}`))
	}))
	defer scorer.Close()

	store := newCatalogStore()
	store.vector = make([]bool, recommender.NumTopics)
	store.hasList = true
	router := newTestRouter(store, scorer.URL)

	rec := doJSON(router, http.MethodGet, "/recommendations", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	var resp RecommendationResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	// Id 999 is not in the catalog: skipped from the grid, but the raw
	// ordering still reports it.
	if len(resp.GameIDs) != 3 {
		t.Errorf("Expected 3 raw ids, got %v", resp.GameIDs)
	}
	if len(resp.Games) != 2 || resp.Games[0].ID != 42 || resp.Games[1].ID != 7 {
		t.Errorf("Expected games [42 7] after skip, got %+v", resp.Games)
	}
}
