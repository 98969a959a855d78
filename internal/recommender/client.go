package recommender

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/brad50916/Board-Game-Recommendation/internal/logging"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Failure classes for the scorer boundary. A scorer call is made at most
// once per orchestration: these surface directly to the caller, with no
// retry and no fallback ranking.
var (
	ErrScorerTimeout     = errors.New("recommender: scorer timed out")
	ErrScorerUnavailable = errors.New("recommender: scorer unreachable")
	ErrScorerBadResponse = errors.New("recommender: bad scorer response")
)

// RatingPair is one (game id, star value) element of a user's rating
// history. On the wire it is a two-element JSON array.
type RatingPair struct {
	GameID int64
	Value  int
}

// MarshalJSON emits the [gameId, rating] tuple shape the scorer expects.
func (p RatingPair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int64{p.GameID, int64(p.Value)})
}

// UnmarshalJSON accepts the same tuple shape.
func (p *RatingPair) UnmarshalJSON(data []byte) error {
	var raw [2]int64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.GameID = raw[0]
	p.Value = int(raw[1])
	return nil
}

// scoredGame mirrors one [gameId, score] pair of the scorer response.
type scoredGame struct {
	GameID int64
	Score  float64
}

func (g *scoredGame) UnmarshalJSON(data []byte) error {
	var raw []json.Number
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("recommendation pair has %d elements, want 2", len(raw))
	}

	id, err := raw[0].Int64()
	if err != nil {
		return fmt.Errorf("recommendation pair id: %w", err)
	}
	score, err := raw[1].Float64()
	if err != nil {
		return fmt.Errorf("recommendation pair score: %w", err)
	}

	g.GameID = id
	g.Score = score
	return nil
}

type recommendRequest struct {
	Username    string       `json:"username"`
	Ratings     []RatingPair `json:"ratings"`
	Preferences []bool       `json:"preferences"`
}

type recommendResponse struct {
	Recommendations []scoredGame `json:"recommendations"`
}

// Client calls the external recommendation scorer over HTTP. The scorer
// is treated as a pure function from (ratings, preferences) to a ranked
// game-id list; this client only knows the request/response shape.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a scorer client with a hard per-call timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Recommend asks the scorer to rank games for a user. Ratings may be
// empty (cold start) but preferences must be the full taxonomy vector.
// Only the game ids are returned, in the scorer's own rank order; the
// scores are not re-sorted or retained.
func (c *Client) Recommend(ctx context.Context, username string, ratings []RatingPair, preferences []bool) ([]int64, error) {
	if ratings == nil {
		// The scorer wants "ratings": [], not null.
		ratings = []RatingPair{}
	}

	body, err := json.Marshal(recommendRequest{
		Username:    username,
		Ratings:     ratings,
		Preferences: preferences,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/recommend", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			logging.L().Warn("scorer call timed out",
				zap.String("request_id", requestID),
				zap.Duration("after", time.Since(start)))
			return nil, fmt.Errorf("%w: %v", ErrScorerTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrScorerUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %s", ErrScorerBadResponse, resp.Status)
	}

	var out recommendResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScorerBadResponse, err)
	}

	gameIDs := make([]int64, 0, len(out.Recommendations))
	for _, rec := range out.Recommendations {
		gameIDs = append(gameIDs, rec.GameID)
	}

	logging.L().Debug("scorer responded",
		zap.String("request_id", requestID),
		zap.String("username", username),
		zap.Int("ratings_sent", len(ratings)),
		zap.Int("games_ranked", len(gameIDs)),
		zap.Duration("took", time.Since(start)))

	return gameIDs, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
