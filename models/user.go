package models

import (
	"time"
)

// User représente un compte du blog
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"size:50;not null;uniqueIndex"`
	Password  string    `json:"-" gorm:"not null"`
	IsAdmin   bool      `json:"is_admin" gorm:"not null"`
	Posts     []Post    `json:"-" gorm:"foreignKey:UserID"`
	Likes     []Like    `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// UserCreate modèle pour créer un utilisateur
// @Description modèle pour créer un utilisateur
type UserCreate struct {
	Username string `json:"username" binding:"required,max=50" example:"jdupont"`
	Password string `json:"password" binding:"required" example:"Password123"`
	IsAdmin  bool   `json:"is_admin" example:"false"`
}

// UserUpdate ne modifie que les champs présents dans le body
type UserUpdate struct {
	Username *string `json:"username" binding:"omitempty,min=1,max=50" example:"jdupont"`
	Password *string `json:"password" binding:"omitempty,min=1" example:"Password123"`
	IsAdmin  *bool   `json:"is_admin" example:"false"`
}

type UserResponse struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

type UserLogin struct {
	Username string `json:"username" binding:"required" example:"jdupont"`
	Password string `json:"password" binding:"required" example:"Password123"`
}
