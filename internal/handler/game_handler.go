package handler

import (
	"net/http"
	"strconv"

	"github.com/brad50916/Board-Game-Recommendation/internal/catalog"
	"github.com/brad50916/Board-Game-Recommendation/internal/database"
	"github.com/brad50916/Board-Game-Recommendation/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// GameDetailResponse is one catalog entry plus the viewer's own rating
// when they are signed in.
type GameDetailResponse struct {
	catalog.GameView
	UserRating *int `json:"user_rating,omitempty"`
}

// GameInput defines the catalog fields for admin maintenance.
type GameInput struct {
	BGGID          int64   `json:"bggid" binding:"required"`
	Name           string  `json:"name" binding:"required"`
	Description    string  `json:"description"`
	YearPublished  int     `json:"yearpublished"`
	MinPlayers     int     `json:"minplayers"`
	MaxPlayers     int     `json:"maxplayers"`
	AvgRating      float64 `json:"avgrating"`
	NumUserRatings int     `json:"numuserratings"`
	ImagePath      string  `json:"imagepath"`
}

// endregion

// region --- Public Handlers ---

// GetGameByID godoc
// @Summary      Get a single game by ID
// @Description  Retrieves catalog details for one game. The rating field is on the 0-5 star scale. Signed-in viewers also get their own latest rating.
// @Tags         games
// @Produce      json
// @Param        id path int true "Game ID (bggid)"
// @Success      200 {object} GameDetailResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "Game not found"
// @Router       /games/{id} [get]
func GetGameByID(c *gin.Context) {
	gameID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid game ID"})
		return
	}

	ctx := c.Request.Context()
	game, err := DataStore.GameByID(ctx, gameID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load game"})
		return
	}
	if game == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	response := GameDetailResponse{GameView: catalog.NewGameView(*game)}

	// Optional auth: attach the viewer's latest rating when present.
	if userID, ok := c.Get("userID"); ok {
		rating, err := DataStore.LatestRating(ctx, userID.(uint), gameID)
		if err == nil && rating != nil {
			response.UserRating = &rating.Value
		}
	}

	c.JSON(http.StatusOK, response)
}

// SearchGames godoc
// @Summary      Search the game catalog
// @Description  Paginated name search over the board-game catalog.
// @Tags         games
// @Produce      json
// @Param        q     query  string  false  "Search query for game name"
// @Param        page  query  int     false  "Page number" default(1)
// @Param        limit query  int     false  "Items per page" default(20)
// @Success      200 {object} PaginatedResponse[catalog.GameView]
// @Failure      500 {object} ErrorResponse
// @Router       /games [get]
func SearchGames(c *gin.Context) {
	page, limit := pageParams(c)
	offset := (page - 1) * limit
	searchQuery := c.Query("q")

	dbQuery := database.DB.Model(&models.Game{})
	if searchQuery != "" {
		dbQuery = dbQuery.Where("name ILIKE ?", "%"+searchQuery+"%")
	}

	var totalItems int64
	if err := dbQuery.Count(&totalItems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count games"})
		return
	}

	var games []models.Game
	if err := dbQuery.Order("num_user_ratings DESC").Offset(offset).Limit(limit).Find(&games).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve games"})
		return
	}

	views := make([]catalog.GameView, 0, len(games))
	for _, game := range games {
		views = append(views, catalog.NewGameView(game))
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(views, totalItems, page, limit))
}

// endregion

// region --- Admin Handlers ---

// CreateGame godoc
// @Summary      Add a catalog entry
// @Description  Inserts one board game into the catalog. Used for seeding and maintenance; the recommendation flow itself never writes here.
// @Tags         admin-games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body GameInput true "Game Info"
// @Success      201  {object}  catalog.GameView
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Failure      409  {object}  ErrorResponse "Game already exists"
// @Router       /admin/games [post]
func CreateGame(c *gin.Context) {
	var input GameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game := models.Game{
		BGGID:          input.BGGID,
		Name:           input.Name,
		Description:    input.Description,
		YearPublished:  input.YearPublished,
		MinPlayers:     input.MinPlayers,
		MaxPlayers:     input.MaxPlayers,
		AvgRating:      input.AvgRating,
		NumUserRatings: input.NumUserRatings,
		ImagePath:      input.ImagePath,
	}
	if err := database.DB.Create(&game).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Game already exists or another error occurred"})
		return
	}

	c.JSON(http.StatusCreated, catalog.NewGameView(game))
}

// UpdateGame godoc
// @Summary      Update a catalog entry
// @Tags         admin-games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int       true  "Game ID (bggid)"
// @Param        input body      GameInput true  "New Game Info"
// @Success      200   {object}  catalog.GameView
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse "Admin access required"
// @Failure      404   {object}  ErrorResponse "Game not found"
// @Router       /admin/games/{id} [put]
func UpdateGame(c *gin.Context) {
	gameID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid game ID"})
		return
	}

	var game models.Game
	if err := database.DB.First(&game, "bggid = ?", gameID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	var input GameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game.Name = input.Name
	game.Description = input.Description
	game.YearPublished = input.YearPublished
	game.MinPlayers = input.MinPlayers
	game.MaxPlayers = input.MaxPlayers
	game.AvgRating = input.AvgRating
	game.NumUserRatings = input.NumUserRatings
	game.ImagePath = input.ImagePath

	if err := database.DB.Save(&game).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update game"})
		return
	}

	c.JSON(http.StatusOK, catalog.NewGameView(game))
}

// endregion
