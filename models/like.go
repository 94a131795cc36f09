package models

import (
	"time"
)

// Like : une seule ligne par couple (user_id, post_id)
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"column:user_id;not null;uniqueIndex:idx_like_user_post"`
	PostID    uint      `json:"post_id" gorm:"column:post_id;not null;uniqueIndex:idx_like_user_post"`
	CreatedAt time.Time `json:"created_at"`
}

type LikeToggle struct {
	PostID uint `json:"post_id" binding:"required" example:"1"`
	UserID uint `json:"user_id" binding:"required" example:"1"`
}

type LikeUpdate struct {
	PostID *uint `json:"post_id" example:"2"`
	UserID *uint `json:"user_id" example:"1"`
}

type LikeUser struct {
	UserID uint `json:"user_id"`
}

type LikeStatus string

const (
	Liked   LikeStatus = "liked"
	Unliked LikeStatus = "unliked"
)

func (Like) TableName() string {
	return "likes"
}
