package likes

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

var errLikeChanged = errors.New("like changed concurrently")

// @Summary Toggle like on a post
// @Description Add the like when the (post_id, user_id) pair has none, remove it otherwise
// @Tags likes
// @Accept json
// @Produce json
// @Param like body models.LikeToggle true "Post and user"
// @Success 201 {object} map[string]string "message: Post liked successfully, status: liked"
// @Success 200 {object} map[string]string "message: Post unliked successfully, status: unliked"
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Post not found"
// @Failure 409 {object} map[string]string "error: Like changed concurrently"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /likes [post]
func ToggleLike(c *gin.Context) {
	var input models.LikeToggle
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if actorID, ok := middleware.ActorID(c); ok && actorID != input.UserID {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "You are not authorized to like as another user"})
		return
	}

	// Vérifier si le post et l'utilisateur existent
	if !exists(c, &models.Post{}, input.PostID, "Post not found") {
		return
	}
	if !exists(c, &models.User{}, input.UserID, "User not found") {
		return
	}

	var status models.LikeStatus
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var like models.Like
		err := tx.Where("post_id = ? AND user_id = ?", input.PostID, input.UserID).First(&like).Error
		switch {
		case err == nil:
			// Le like existe déjà, on le supprime
			result := tx.Delete(&like)
			if result.Error != nil {
				return result.Error
			}
			// une bascule concurrente l'a supprimé entre le SELECT et le DELETE
			if result.RowsAffected == 0 {
				return errLikeChanged
			}
			status = models.Unliked
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			like = models.Like{
				PostID: input.PostID,
				UserID: input.UserID,
			}
			if err := tx.Create(&like).Error; err != nil {
				return err
			}
			status = models.Liked
			return nil
		default:
			return err
		}
	})

	if err != nil {
		// Deux bascules simultanées: l'index unique a rejeté la seconde insertion,
		// ou la seconde suppression n'a plus rien trouvé
		if utils.IsUniqueViolation(err) || errors.Is(err, errLikeChanged) {
			c.JSON(http.StatusConflict, gin.H{"error": "Like changed concurrently, please retry"})
			return
		}
		utils.LogErrorWithUser(input.UserID, err, "Error toggling like in ToggleLike")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error toggling like: " + err.Error()})
		return
	}

	if status == models.Liked {
		utils.LogSuccessWithUser(input.UserID, "Post liked in ToggleLike")
		c.JSON(http.StatusCreated, gin.H{"message": "Post liked successfully", "status": status})
		return
	}
	utils.LogSuccessWithUser(input.UserID, "Post unliked in ToggleLike")
	c.JSON(http.StatusOK, gin.H{"message": "Post unliked successfully", "status": status})
}

// @Summary Update a like
// @Description Repoint a like; the pair must stay unique and keep the caller as its user
// @Tags likes
// @Accept json
// @Produce json
// @Param id path int true "Like ID"
// @Param like body models.LikeUpdate true "Fields to update"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Like updated successfully"
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Like not found"
// @Failure 409 {object} map[string]string "error: User already likes this post"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /likes/{id} [put]
func UpdateLike(c *gin.Context) {
	userID, ok := middleware.ActorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	likeID, ok := utils.ParseID(c, "id", "like")
	if !ok {
		return
	}

	like, found := findLike(c, likeID)
	if !found {
		return
	}

	if like.UserID != userID {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "You are not authorized to update this like"})
		return
	}

	var input models.LikeUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if input.UserID != nil && *input.UserID != userID {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "You are not authorized to attribute a like to another user"})
		return
	}

	if input.PostID == nil || *input.PostID == like.PostID {
		c.JSON(http.StatusOK, gin.H{"message": "Like updated successfully"})
		return
	}

	if !exists(c, &models.Post{}, *input.PostID, "Post not found") {
		return
	}

	var duplicate models.Like
	err := db.DB.Where("post_id = ? AND user_id = ? AND id <> ?", *input.PostID, like.UserID, like.ID).First(&duplicate).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User already likes this post"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.LogErrorWithUser(userID, err, "Error checking duplicate in UpdateLike")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking like: " + err.Error()})
		return
	}

	like.PostID = *input.PostID
	if err := db.DB.Save(&like).Error; err != nil {
		if utils.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "User already likes this post"})
			return
		}
		utils.LogErrorWithUser(userID, err, "Error updating like in UpdateLike")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating like: " + err.Error()})
		return
	}

	utils.LogSuccessWithUser(userID, "Like successfully updated in UpdateLike")
	c.JSON(http.StatusOK, gin.H{"message": "Like updated successfully"})
}

// @Summary Delete a like
// @Description Remove a like; only the user who cast it may delete it
// @Tags likes
// @Produce json
// @Param id path int true "Like ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Like deleted successfully"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Like not found"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /likes/{id} [delete]
func DeleteLike(c *gin.Context) {
	userID, ok := middleware.ActorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	likeID, ok := utils.ParseID(c, "id", "like")
	if !ok {
		return
	}

	like, found := findLike(c, likeID)
	if !found {
		return
	}

	if like.UserID != userID {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "You are not authorized to delete this like"})
		return
	}

	if err := db.DB.Delete(&like).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error deleting like in DeleteLike")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error removing like: " + err.Error()})
		return
	}

	utils.LogSuccessWithUser(userID, "Like successfully deleted in DeleteLike")
	c.JSON(http.StatusOK, gin.H{"message": "Like deleted successfully"})
}

// @Summary List likes of a post
// @Description Return the ids of the users who liked the post
// @Tags likes
// @Produce json
// @Param post_id path int true "Post ID"
// @Success 200 {array} models.LikeUser
// @Failure 400 {object} map[string]string "error: Invalid post ID"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /likes/{post_id} [get]
func GetLikesByPostID(c *gin.Context) {
	postID, ok := utils.ParseID(c, "post_id", "post")
	if !ok {
		return
	}

	likes := []models.LikeUser{}
	if err := db.DB.Model(&models.Like{}).Select("user_id").Where("post_id = ?", postID).Order("id ASC").Scan(&likes).Error; err != nil {
		utils.LogError(err, "Error retrieving likes in GetLikesByPostID")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving likes: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, likes)
}

func findLike(c *gin.Context, likeID uint) (models.Like, bool) {
	var like models.Like
	if err := db.DB.First(&like, likeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Like not found"})
		} else {
			utils.LogError(err, "Error retrieving like")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving like: " + err.Error()})
		}
		return models.Like{}, false
	}
	return like, true
}

// exists répond 404 avec notFound si aucune ligne ne porte cet id
func exists(c *gin.Context, model interface{}, id uint, notFound string) bool {
	var count int64
	if err := db.DB.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		utils.LogError(err, "Error checking existence")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		return false
	}
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
		return false
	}
	return true
}
