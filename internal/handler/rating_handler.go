package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// RatingInput defines the structure for a rating submission.
type RatingInput struct {
	GameID int64 `json:"game_id" binding:"required" example:"174430"`
	Rating int   `json:"rating" binding:"required,min=1,max=5" example:"4"`
}

// RatingResponse is one stored rating row.
type RatingResponse struct {
	ID     uint  `json:"id"`
	GameID int64 `json:"game_id"`
	Rating int   `json:"rating"`
}

// SubmitRating godoc
// @Summary      Rate a game
// @Description  Appends a star rating for a game. Rating the same game again adds a new row; every row counts toward future recommendations.
// @Tags         ratings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body RatingInput true "Rating"
// @Success      201  {object}  RatingResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /ratings [post]
func SubmitRating(c *gin.Context) {
	userID, _ := c.Get("userID")

	var input RatingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rating, err := DataStore.InsertRating(c.Request.Context(), userID.(uint), input.GameID, input.Rating)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save rating"})
		return
	}

	c.JSON(http.StatusCreated, RatingResponse{ID: rating.ID, GameID: rating.GameID, Rating: rating.Value})
}

// GetMyRating godoc
// @Summary      Get own rating for a game
// @Description  Returns the authenticated user's most recent rating for a game, or null if they never rated it.
// @Tags         ratings
// @Produce      json
// @Security     BearerAuth
// @Param        gameId path int true "Game ID (bggid)"
// @Success      200  {object}  RatingResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /ratings/{gameId} [get]
func GetMyRating(c *gin.Context) {
	userID, _ := c.Get("userID")

	gameID, err := strconv.ParseInt(c.Param("gameId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid game ID"})
		return
	}

	rating, err := DataStore.LatestRating(c.Request.Context(), userID.(uint), gameID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load rating"})
		return
	}
	if rating == nil {
		// The client checks for null to show an empty star widget.
		c.JSON(http.StatusOK, nil)
		return
	}

	c.JSON(http.StatusOK, RatingResponse{ID: rating.ID, GameID: rating.GameID, Rating: rating.Value})
}
