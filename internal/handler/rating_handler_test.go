package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestSubmitRatingAppendsRows(t *testing.T) {
	store := newCatalogStore()
	router := newTestRouter(store, "http://localhost:0")

	rec := doJSON(router, http.MethodPost, "/ratings", RatingInput{GameID: 10, Rating: 4})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	// Re-rating the same game adds a second row instead of updating.
	rec = doJSON(router, http.MethodPost, "/ratings", RatingInput{GameID: 10, Rating: 5})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	if len(store.rows) != 2 {
		t.Fatalf("Expected 2 rating rows, got %d", len(store.rows))
	}

	var resp RatingResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.GameID != 10 || resp.Rating != 5 {
		t.Errorf("Unexpected response row: %+v", resp)
	}
}

func TestSubmitRatingRejectsOutOfRange(t *testing.T) {
	store := newCatalogStore()
	router := newTestRouter(store, "http://localhost:0")

	for _, rating := range []int{0, 6} {
		rec := doJSON(router, http.MethodPost, "/ratings", gin.H{"game_id": 10, "rating": rating})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Rating %d: expected 400, got %d", rating, rec.Code)
		}
	}
	if len(store.rows) != 0 {
		t.Errorf("Invalid ratings must not be stored, got %d rows", len(store.rows))
	}
}

func TestGetMyRatingReturnsLatest(t *testing.T) {
	store := newCatalogStore()
	router := newTestRouter(store, "http://localhost:0")

	doJSON(router, http.MethodPost, "/ratings", RatingInput{GameID: 10, Rating: 2})
	doJSON(router, http.MethodPost, "/ratings", RatingInput{GameID: 10, Rating: 4})

	rec := doJSON(router, http.MethodGet, "/ratings/10", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	var resp RatingResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Rating != 4 {
		t.Errorf("Expected the most recent rating 4, got %d", resp.Rating)
	}
}

func TestGetMyRatingUnratedGameIsNull(t *testing.T) {
	store := newCatalogStore()
	router := newTestRouter(store, "http://localhost:0")

	rec := doJSON(router, http.MethodGet, "/ratings/42", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "null" {
		t.Errorf("Expected literal null body, got %s", rec.Body.String())
	}
}

func TestGetMyRatingBadGameID(t *testing.T) {
	router := newTestRouter(newCatalogStore(), "http://localhost:0")

	rec := doJSON(router, http.MethodGet, "/ratings/catan", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
}
