package main

import (
	"log"
	"net/http"
	"time"

	"github.com/brad50916/Board-Game-Recommendation/internal/auth"
	"github.com/brad50916/Board-Game-Recommendation/internal/catalog"
	"github.com/brad50916/Board-Game-Recommendation/internal/config"
	"github.com/brad50916/Board-Game-Recommendation/internal/database"
	"github.com/brad50916/Board-Game-Recommendation/internal/handler"
	"github.com/brad50916/Board-Game-Recommendation/internal/logging"
	"github.com/brad50916/Board-Game-Recommendation/internal/recommender"
	"github.com/brad50916/Board-Game-Recommendation/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	limit "github.com/yangxikun/gin-limit-by-key"
	"golang.org/x/time/rate"

	// Swagger imports
	_ "github.com/brad50916/Board-Game-Recommendation/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
	logging.Init()
}

// @title           Board Game Recommendation API
// @version         1.0
// @description     This is the API for the board game recommendation service.
// @host            localhost:5001
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)

	// Wire the recommendation flow: gorm store, scorer client, orchestrator.
	dataStore := store.NewGormStore(database.DB)
	scorer := recommender.NewClient(
		config.AppConfig.RecommenderURL,
		time.Duration(config.AppConfig.RecommenderTimeout)*time.Second,
	)
	handler.DataStore = dataStore
	handler.Recommender = recommender.NewService(dataStore, scorer)
	handler.Catalog = catalog.NewHydrator(dataStore)

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// Slow down credential guessing per client IP.
	authLimiter := limit.NewRateLimiter(func(c *gin.Context) string {
		return c.ClientIP()
	}, func(c *gin.Context) (*rate.Limiter, time.Duration) {
		return rate.NewLimiter(rate.Every(time.Second), 10), 10 * time.Minute
	}, func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
	})

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		authRoutes.Use(authLimiter)
		{
			authRoutes.POST("/register", handler.RegisterUser)
			authRoutes.POST("/login", handler.LoginUser)
		}

		// Catalog routes: browsable anonymously, rating-aware when signed in
		gameRoutes := apiV1.Group("/games")
		gameRoutes.Use(auth.OptionalAuthMiddleware())
		{
			gameRoutes.GET("", handler.SearchGames)
			gameRoutes.GET("/:id", handler.GetGameByID)
		}

		// Protected routes
		protected := apiV1.Group("")
		protected.Use(auth.AuthMiddleware())
		{
			protected.GET("/verify", handler.VerifyToken)

			protected.GET("/users/me", handler.GetMe)
			protected.PUT("/users/me", handler.UpdateMe)
			protected.GET("/users/:id/name", handler.GetUserName)

			// Recommendation flow
			protected.POST("/preferences", handler.SubmitPreferences)
			protected.GET("/preferences/status", handler.GetPreferenceStatus)
			protected.GET("/recommendations", handler.GetRecommendations)

			// Ratings
			protected.POST("/ratings", handler.SubmitRating)
			protected.GET("/ratings/:gameId", handler.GetMyRating)
		}

		// Admin routes (catalog maintenance)
		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(auth.AuthMiddleware(), auth.AdminMiddleware())
		{
			adminRoutes.POST("/games", handler.CreateGame)
			adminRoutes.PUT("/games/:id", handler.UpdateGame)
		}
	}

	addr := ":" + config.AppConfig.Port
	log.Printf("Server is running on %s", addr)
	log.Printf("Swagger UI is available at http://localhost%s/swagger/index.html", addr)
	log.Fatal(router.Run(addr))
}
