package handler

import (
	"net/http"
	"strconv"

	"github.com/brad50916/Board-Game-Recommendation/internal/database"
	"github.com/brad50916/Board-Game-Recommendation/internal/models"

	"github.com/gin-gonic/gin"
)

// UserResponse defines the structure for a user's own profile.
type UserResponse struct {
	ID        uint   `json:"id" example:"1"`
	Firstname string `json:"firstname" example:"Ada"`
	Lastname  string `json:"lastname" example:"Lovelace"`
	Username  string `json:"username" example:"ada"`
	Email     string `json:"email" example:"ada@example.com"`
}

// UpdateUserInput defines the editable profile fields.
type UpdateUserInput struct {
	Firstname string `json:"firstname" binding:"required"`
	Lastname  string `json:"lastname" binding:"required"`
	Username  string `json:"username" binding:"required"`
}

func newUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Firstname: user.Firstname,
		Lastname:  user.Lastname,
		Username:  user.Username,
		Email:     user.Email,
	}
}

// GetMe godoc
// @Summary      Get current user's info
// @Description  Retrieves the profile for the currently authenticated user.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  UserResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/me [get]
func GetMe(c *gin.Context) {
	userID, _ := c.Get("userID")

	var user models.User
	if err := database.DB.First(&user, userID.(uint)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

// UpdateMe godoc
// @Summary      Update current user's info
// @Description  Updates the name fields of the authenticated user's profile.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body UpdateUserInput true "New profile info"
// @Success      200  {object}  UserResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Username already taken"
// @Router       /users/me [put]
func UpdateMe(c *gin.Context) {
	userID, _ := c.Get("userID")

	var input UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.First(&user, userID.(uint)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var other models.User
	if err := database.DB.Where("username = ? AND id <> ?", input.Username, user.ID).First(&other).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Username already taken"})
		return
	}

	user.Firstname = input.Firstname
	user.Lastname = input.Lastname
	user.Username = input.Username
	if err := database.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

// GetUserName godoc
// @Summary      Get a user's display name
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  map[string]string "{"username": "ada"}"
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id}/name [get]
func GetUserName(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var user models.User
	if err := database.DB.First(&user, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"username": user.Username})
}
