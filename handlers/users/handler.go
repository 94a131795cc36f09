package users

import (
	"errors"
	"net/http"

	"blog-backend/db"
	"blog-backend/middleware"
	"blog-backend/models"
	"blog-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary List users
// @Description Return every username, ordered by id
// @Tags users
// @Produce json
// @Success 200 {array} string
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /users [get]
func GetAllUsers(c *gin.Context) {
	var usernames []string

	if err := db.DB.Model(&models.User{}).Order("id ASC").Pluck("username", &usernames).Error; err != nil {
		utils.LogError(err, "Error retrieving users in GetAllUsers")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving users: " + err.Error()})
		return
	}

	if usernames == nil {
		usernames = []string{}
	}
	c.JSON(http.StatusOK, usernames)
}

// @Summary Create a new user
// @Description Create a user; only an authenticated admin may create another admin
// @Tags users
// @Accept json
// @Produce json
// @Param user body models.UserCreate true "User information"
// @Success 201 {object} map[string]interface{} "message: User created successfully, id: user ID"
// @Failure 400 {object} map[string]string "error: Invalid input or username already exists"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /users [post]
func CreateUser(c *gin.Context) {
	var input models.UserCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if input.IsAdmin {
		actorID, ok := middleware.ActorID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Only administrators can create admin accounts"})
			return
		}
		admin, err := isAdmin(actorID)
		if err != nil {
			utils.LogErrorWithUser(actorID, err, "Error checking actor in CreateUser")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking permissions: " + err.Error()})
			return
		}
		if !admin {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Only administrators can create admin accounts"})
			return
		}
	}

	var existing models.User
	if err := db.DB.Where("username = ?", input.Username).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.LogError(err, "Error checking username in CreateUser")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking the username: " + err.Error()})
		return
	}

	passwordHash, err := utils.HashPassword(input.Password)
	if err != nil {
		utils.LogError(err, "Error hashing password in CreateUser")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error hashing the password"})
		return
	}

	user := models.User{
		Username: input.Username,
		Password: passwordHash,
		IsAdmin:  input.IsAdmin,
	}

	if err := db.DB.Create(&user).Error; err != nil {
		// course perdue contre une création concurrente du même username
		if utils.IsUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
			return
		}
		utils.LogError(err, "Error creating user in CreateUser")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating user: " + err.Error()})
		return
	}

	utils.LogSuccessWithUser(user.ID, "User successfully created in CreateUser")
	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"id":      user.ID,
	})
}

// @Summary Get a user
// @Description Retrieve a user's public profile
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.UserResponse
// @Failure 400 {object} map[string]string "error: Invalid user ID"
// @Failure 404 {object} map[string]string "error: User not found"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /users/{id} [get]
func GetUserByID(c *gin.Context) {
	userID, ok := utils.ParseID(c, "id", "user")
	if !ok {
		return
	}

	user, found := findUser(c, userID)
	if !found {
		return
	}

	c.JSON(http.StatusOK, models.UserResponse{
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
	})
}

// @Summary Update a user
// @Description Partial update; only the user or an admin may update, only an admin may change is_admin
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param user body models.UserUpdate true "Fields to update"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: User updated successfully"
// @Failure 400 {object} map[string]string "error: Invalid input or username already exists"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: User not found"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /users/{id} [put]
func UpdateUser(c *gin.Context) {
	actorID, exists := middleware.ActorID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	userID, ok := utils.ParseID(c, "id", "user")
	if !ok {
		return
	}

	user, found := findUser(c, userID)
	if !found {
		return
	}

	actorIsAdmin, allowed := authorize(c, actorID, user, "You are not authorized to update this user")
	if !allowed {
		return
	}

	var input models.UserUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if input.IsAdmin != nil && *input.IsAdmin != user.IsAdmin && !actorIsAdmin {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Only administrators can change the admin flag"})
		return
	}

	if input.Username != nil && *input.Username != user.Username {
		var existing models.User
		err := db.DB.Where("username = ? AND id <> ?", *input.Username, user.ID).First(&existing).Error
		if err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.LogErrorWithUser(actorID, err, "Error checking username in UpdateUser")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking the username: " + err.Error()})
			return
		}
		user.Username = *input.Username
	}

	if input.Password != nil {
		passwordHash, err := utils.HashPassword(*input.Password)
		if err != nil {
			utils.LogErrorWithUser(actorID, err, "Error hashing password in UpdateUser")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error hashing the password"})
			return
		}
		user.Password = passwordHash
	}

	if input.IsAdmin != nil {
		user.IsAdmin = *input.IsAdmin
	}

	if err := db.DB.Save(&user).Error; err != nil {
		if utils.IsUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
			return
		}
		utils.LogErrorWithUser(actorID, err, "Error updating user in UpdateUser")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating user: " + err.Error()})
		return
	}

	utils.LogSuccessWithUser(actorID, "User successfully updated in UpdateUser")
	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully"})
}

// @Summary Delete a user
// @Description Hard-delete a user and the likes they cast; refused while the user still owns posts
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: User deleted successfully"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: User not found"
// @Failure 409 {object} map[string]string "error: User still owns posts"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /users/{id} [delete]
func DeleteUser(c *gin.Context) {
	actorID, exists := middleware.ActorID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	userID, ok := utils.ParseID(c, "id", "user")
	if !ok {
		return
	}

	user, found := findUser(c, userID)
	if !found {
		return
	}

	if _, allowed := authorize(c, actorID, user, "You are not authorized to delete this user"); !allowed {
		return
	}

	var postCount int64
	if err := db.DB.Model(&models.Post{}).Where("user_id = ?", user.ID).Count(&postCount).Error; err != nil {
		utils.LogErrorWithUser(actorID, err, "Error counting posts in DeleteUser")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking user posts: " + err.Error()})
		return
	}
	if postCount > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "User still owns posts"})
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		utils.LogErrorWithUser(actorID, err, "Error deleting user in DeleteUser")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting user: " + err.Error()})
		return
	}

	utils.LogSuccessWithUser(actorID, "User successfully deleted in DeleteUser")
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

func findUser(c *gin.Context, userID uint) (models.User, bool) {
	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			utils.LogError(err, "Error retrieving user")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving user: " + err.Error()})
		}
		return models.User{}, false
	}
	return user, true
}

// authorize : l'appelant doit être l'utilisateur visé ou un admin.
// Le statut admin est lu en base, pas dans le token.
func authorize(c *gin.Context, actorID uint, target models.User, denied string) (actorIsAdmin bool, allowed bool) {
	if actorID == target.ID {
		return target.IsAdmin, true
	}

	admin, err := isAdmin(actorID)
	if err != nil {
		utils.LogErrorWithUser(actorID, err, "Error checking actor permissions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking permissions: " + err.Error()})
		return false, false
	}
	if !admin {
		c.JSON(http.StatusUnauthorized, gin.H{"error": denied})
		return false, false
	}
	return true, true
}

func isAdmin(actorID uint) (bool, error) {
	var actor models.User
	err := db.DB.Select("id", "is_admin").First(&actor, actorID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// token valide mais compte supprimé depuis
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return actor.IsAdmin, nil
}
