package posts

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

// @Summary Create a new post
// @Description Create a post for user_id; an authenticated caller may only post as themselves
// @Tags posts
// @Accept json
// @Produce json
// @Param post body models.PostCreate true "Post information"
// @Success 201 {object} map[string]interface{} "message: Post created successfully, id: post ID"
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: User not found"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /posts [post]
func CreatePost(c *gin.Context) {
	var input models.PostCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if actorID, ok := middleware.ActorID(c); ok && actorID != input.UserID {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "You are not authorized to post as another user"})
		return
	}

	var owner models.User
	if err := db.DB.Select("id").First(&owner, input.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		utils.LogError(err, "Error finding owner in CreatePost")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error finding user: " + err.Error()})
		return
	}

	isPublic := true
	if input.IsPublic != nil {
		isPublic = *input.IsPublic
	}

	post := models.Post{
		Title:    input.Title,
		Content:  input.Content,
		IsPublic: isPublic,
		UserID:   input.UserID,
	}

	if err := db.DB.Create(&post).Error; err != nil {
		utils.LogErrorWithUser(input.UserID, err, "Error creating post in CreatePost")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating post: " + err.Error()})
		return
	}

	utils.LogSuccessWithUser(input.UserID, "Post successfully created in CreatePost")
	c.JSON(http.StatusCreated, gin.H{
		"message": "Post created successfully",
		"id":      post.ID,
	})
}

// @Summary Get all posts
// @Description Public posts with their like count; an authenticated caller also sees their own private posts
// @Tags posts
// @Produce json
// @Success 200 {array} models.PostResponse
// @Failure 401 {object} map[string]string "error: Invalid token"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /posts [get]
func GetAllPosts(c *gin.Context) {
	query := db.DB.Table("posts").
		Select("posts.id, posts.user_id, posts.title, posts.content, posts.is_public, COUNT(likes.id) AS likes").
		Joins("LEFT JOIN likes ON likes.post_id = posts.id")

	if actorID, ok := middleware.ActorID(c); ok {
		query = query.Where("posts.is_public = ? OR posts.user_id = ?", true, actorID)
	} else {
		query = query.Where("posts.is_public = ?", true)
	}

	posts := []models.PostResponse{}
	if err := query.Group("posts.id").Order("posts.id ASC").Scan(&posts).Error; err != nil {
		utils.LogError(err, "Error retrieving posts in GetAllPosts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving posts: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, posts)
}

// @Summary Get a post by ID
// @Description Retrieve a post and its like count; private posts are only visible to their owner
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.PostResponse
// @Failure 400 {object} map[string]string "error: Invalid post ID"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Post not found"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /posts/{id} [get]
func GetPostByID(c *gin.Context) {
	postID, ok := utils.ParseID(c, "id", "post")
	if !ok {
		return
	}

	post, found := findPost(c, postID)
	if !found {
		return
	}

	if !post.IsPublic {
		actorID, ok := middleware.ActorID(c)
		if !ok || actorID != post.UserID {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "You are not authorized to view this post"})
			return
		}
	}

	var likes int64
	if err := db.DB.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&likes).Error; err != nil {
		utils.LogError(err, "Error counting likes in GetPostByID")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting likes: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, post.WithLikes(likes))
}

// @Summary Update a post
// @Description Partial update of title, content and visibility; owner only
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param post body models.PostUpdate true "Fields to update"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Post updated successfully"
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Post not found"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /posts/{id} [put]
func UpdatePost(c *gin.Context) {
	userID, exists := middleware.ActorID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	postID, ok := utils.ParseID(c, "id", "post")
	if !ok {
		return
	}

	post, found := findPost(c, postID)
	if !found {
		return
	}

	// Seul le propriétaire peut modifier, admin compris
	if post.UserID != userID {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "You are not authorized to update this post"})
		return
	}

	var input models.PostUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if input.Title != nil {
		post.Title = *input.Title
	}

	if input.Content != nil {
		post.Content = *input.Content
	}

	if input.IsPublic != nil {
		post.IsPublic = *input.IsPublic
	}

	if err := db.DB.Save(&post).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error updating post in UpdatePost")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating post: " + err.Error()})
		return
	}

	utils.LogSuccessWithUser(userID, "Post successfully updated in UpdatePost")
	c.JSON(http.StatusOK, gin.H{"message": "Post updated successfully"})
}

// @Summary Delete a post
// @Description Delete a post and its likes; owner only
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Post deleted successfully"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Post not found"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /posts/{id} [delete]
func DeletePost(c *gin.Context) {
	userID, exists := middleware.ActorID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	postID, ok := utils.ParseID(c, "id", "post")
	if !ok {
		return
	}

	post, found := findPost(c, postID)
	if !found {
		return
	}

	if post.UserID != userID {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "You are not authorized to delete this post"})
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error deleting post in DeletePost")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting post: " + err.Error()})
		return
	}

	utils.LogSuccessWithUser(userID, "Post successfully deleted in DeletePost")
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

func findPost(c *gin.Context, postID uint) (models.Post, bool) {
	var post models.Post
	if err := db.DB.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		} else {
			utils.LogError(err, "Error retrieving post")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving post: " + err.Error()})
		}
		return models.Post{}, false
	}
	return post, true
}
