package handler

import (
	"errors"
	"net/http"

	"github.com/brad50916/Board-Game-Recommendation/internal/catalog"
	"github.com/brad50916/Board-Game-Recommendation/internal/logging"
	"github.com/brad50916/Board-Game-Recommendation/internal/recommender"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// region --- DTOs ---

// PreferenceInput carries the named topic map from the preference page.
// Topic names must come from the fixed taxonomy; omitted topics count as
// not selected.
type PreferenceInput struct {
	Preferences map[string]bool `json:"preferences" binding:"required"`
}

// RecommendationResponse is the ranked, hydrated game list.
type RecommendationResponse struct {
	GameIDs []int64            `json:"game_ids"`
	Games   []catalog.GameView `json:"games"`
}

// endregion

// SubmitPreferences godoc
// @Summary      Submit topic preferences
// @Description  Cold-start entry point: ranks games from the topic vector alone, stores the vector and the resulting ordering, and returns the hydrated list. Resubmitting overwrites the stored pair.
// @Tags         recommendations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body PreferenceInput true "Named topic flags"
// @Success      200  {object}  RecommendationResponse
// @Failure      400  {object}  ErrorResponse "Unknown topic name"
// @Failure      404  {object}  ErrorResponse "User not found"
// @Failure      502  {object}  ErrorResponse "Recommendation service failed"
// @Failure      504  {object}  ErrorResponse "Recommendation service timed out"
// @Router       /preferences [post]
func SubmitPreferences(c *gin.Context) {
	userID, _ := c.Get("userID")

	var input PreferenceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vector, err := recommender.VectorFromMap(input.Preferences)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	username, err := DataStore.UsernameByID(ctx, userID.(uint))
	if err != nil {
		respondUserLookupError(c, err)
		return
	}

	gameIDs, err := Recommender.SubmitPreferences(ctx, userID.(uint), username, vector)
	if err != nil {
		respondScorerError(c, err)
		return
	}

	games, err := Catalog.Hydrate(ctx, gameIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load game catalog"})
		return
	}

	c.JSON(http.StatusOK, RecommendationResponse{GameIDs: gameIDs, Games: games})
}

// GetRecommendations godoc
// @Summary      Get the recommendation dashboard
// @Description  Refresh entry point: re-ranks games from the full rating history plus the stored preference vector, and returns the hydrated list in scorer order. The stored list is not touched.
// @Tags         recommendations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  RecommendationResponse
// @Failure      404  {object}  ErrorResponse "User not found"
// @Failure      502  {object}  ErrorResponse "Recommendation service failed"
// @Failure      504  {object}  ErrorResponse "Recommendation service timed out"
// @Router       /recommendations [get]
func GetRecommendations(c *gin.Context) {
	userID, _ := c.Get("userID")
	ctx := c.Request.Context()

	username, err := DataStore.UsernameByID(ctx, userID.(uint))
	if err != nil {
		respondUserLookupError(c, err)
		return
	}

	gameIDs, err := Recommender.Refresh(ctx, userID.(uint), username)
	if err != nil {
		respondScorerError(c, err)
		return
	}

	games, err := Catalog.Hydrate(ctx, gameIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load game catalog"})
		return
	}

	c.JSON(http.StatusOK, RecommendationResponse{GameIDs: gameIDs, Games: games})
}

// GetPreferenceStatus godoc
// @Summary      Check onboarding status
// @Description  True once the user has completed a preference submission. Routes first-time users to the preference page and everyone else to the dashboard.
// @Tags         recommendations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]bool "{"has_preferences": true}"
// @Failure      500  {object}  ErrorResponse
// @Router       /preferences/status [get]
func GetPreferenceStatus(c *gin.Context) {
	userID, _ := c.Get("userID")

	hasPreferences, err := Recommender.HasPreferences(c.Request.Context(), userID.(uint))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load preference status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"has_preferences": hasPreferences})
}

func respondUserLookupError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
}

// respondScorerError maps the scorer failure classes onto gateway
// statuses; anything else is a persistence problem.
func respondScorerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, recommender.ErrScorerTimeout):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "Recommendation service timed out"})
	case errors.Is(err, recommender.ErrScorerUnavailable), errors.Is(err, recommender.ErrScorerBadResponse):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Recommendation service failed"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	default:
		logging.L().Error("recommendation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute recommendations"})
	}
}
