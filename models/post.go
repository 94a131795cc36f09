package models

import (
	"time"
)

type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:100;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	IsPublic  bool      `json:"is_public" gorm:"not null"`
	UserID    uint      `json:"user_id" gorm:"column:user_id;not null;index"`
	Likes     []Like    `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PostCreate struct {
	Title    string `json:"title" binding:"required,max=100" example:"Hello"`
	Content  string `json:"content" binding:"required" example:"First post"`
	UserID   uint   `json:"user_id" binding:"required" example:"1"`
	IsPublic *bool  `json:"is_public" example:"true"`
}

// PostUpdate : omitempty ne saute que les champs absents, une chaîne vide est rejetée
type PostUpdate struct {
	Title    *string `json:"title" binding:"omitempty,min=1,max=100" example:"Hello again"`
	Content  *string `json:"content" binding:"omitempty,min=1" example:"Edited"`
	IsPublic *bool   `json:"is_public" example:"false"`
}

// PostResponse est un post accompagné de son nombre de likes
type PostResponse struct {
	ID       uint   `json:"id"`
	UserID   uint   `json:"user_id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	IsPublic bool   `json:"is_public"`
	Likes    int64  `json:"likes"`
}

func (Post) TableName() string {
	return "posts"
}

func (p Post) WithLikes(likes int64) PostResponse {
	return PostResponse{
		ID:       p.ID,
		UserID:   p.UserID,
		Title:    p.Title,
		Content:  p.Content,
		IsPublic: p.IsPublic,
		Likes:    likes,
	}
}
