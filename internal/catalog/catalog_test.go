package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/brad50916/Board-Game-Recommendation/internal/models"
)

type fakeLookup struct {
	games map[int64]*models.Game
	err   error
}

func (f *fakeLookup) GameByID(ctx context.Context, gameID int64) (*models.Game, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.games[gameID], nil
}

func TestStars(t *testing.T) {
	t.Parallel()

	tests := []struct {
		avg  float64
		want float64
	}{
		{0, 0},
		{5.5, 3},
		{6.9, 3.5},
		{7.3, 3.5},
		{7.5, 4},
		{8.2, 4},
		{10, 5},
	}
	for _, tt := range tests {
		if got := Stars(tt.avg); got != tt.want {
			t.Errorf("Stars(%v): expected %v, got %v", tt.avg, tt.want, got)
		}
	}
}

func TestHydratePreservesOrder(t *testing.T) {
	t.Parallel()

	lookup := &fakeLookup{games: map[int64]*models.Game{
		42: {BGGID: 42, Name: "Gloomhaven", AvgRating: 8.6},
		7:  {BGGID: 7, Name: "Cathedral", AvgRating: 6.4},
	}}
	hydrator := NewHydrator(lookup)

	views, err := hydrator.Hydrate(context.Background(), []int64{42, 7})
	if err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("Expected 2 views, got %d", len(views))
	}
	if views[0].ID != 42 || views[1].ID != 7 {
		t.Errorf("Scorer order not preserved: %v, %v", views[0].ID, views[1].ID)
	}
	if views[0].Rating != 4.5 {
		t.Errorf("Expected 4.5 stars for 8.6 average, got %v", views[0].Rating)
	}
}

func TestHydrateSkipsMissingGames(t *testing.T) {
	t.Parallel()

	lookup := &fakeLookup{games: map[int64]*models.Game{
		42: {BGGID: 42, Name: "Gloomhaven"},
		7:  {BGGID: 7, Name: "Cathedral"},
	}}
	hydrator := NewHydrator(lookup)

	// 999 is not in the catalog: it is skipped, siblings still resolve.
	views, err := hydrator.Hydrate(context.Background(), []int64{42, 999, 7})
	if err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("Expected 2 views, got %d", len(views))
	}
	if views[0].ID != 42 || views[1].ID != 7 {
		t.Errorf("Unexpected ids after skip: %v, %v", views[0].ID, views[1].ID)
	}
}

func TestHydrateLookupFailureAborts(t *testing.T) {
	t.Parallel()

	lookupErr := errors.New("db down")
	hydrator := NewHydrator(&fakeLookup{err: lookupErr})

	if _, err := hydrator.Hydrate(context.Background(), []int64{42}); !errors.Is(err, lookupErr) {
		t.Fatalf("Expected lookup error to surface, got %v", err)
	}
}

func TestHydrateEmptyList(t *testing.T) {
	t.Parallel()

	hydrator := NewHydrator(&fakeLookup{})
	views, err := hydrator.Hydrate(context.Background(), nil)
	if err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}
	if len(views) != 0 {
		t.Errorf("Expected empty result, got %v", views)
	}
}
