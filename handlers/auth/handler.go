package auth

import (
	"errors"
	"net/http"

	"blog-backend/config"
	"blog-backend/db"
	"blog-backend/models"
	"blog-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary user login
// @Description Exchange username and password for a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param user body models.UserLogin true "Credentials"
// @Success 200 {object} map[string]string "token: JWT"
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Wrong credentials"
// @Failure 422 {object} map[string]string "error: JWT not generated"
// @Router /login [post]
func Login(c *gin.Context) {
	var inputLogin models.UserLogin

	if err := c.ShouldBindJSON(&inputLogin); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid input: " + err.Error(),
		})
		return
	}

	var user models.User
	result := db.DB.Where("username = ?", inputLogin.Username).First(&user)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Wrong credentials",
			})
		} else {
			utils.LogError(result.Error, "Database error in Login")
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Database error: " + result.Error.Error(),
			})
		}
		return
	}

	if !utils.SamePassword(inputLogin.Password, user.Password) {
		utils.LogErrorWithUser(user.ID, nil, "Wrong password in Login")
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Wrong credentials",
		})
		return
	}

	token, err := utils.GenerateJWT(user, config.App.TokenTTL)
	if err != nil {
		utils.LogErrorWithUser(user.ID, err, "JWT generation failed in Login")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Error while creating the token"})
		return
	}

	utils.LogSuccessWithUser(user.ID, "User logged in")
	c.JSON(http.StatusOK, gin.H{
		"token": token,
	})
}
