package model

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint `json:"id" gorm:"primaryKey"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
	Username     string         `json:"username" gorm:"unique;not null;size:64"` // stored lowercase
	Email        string         `json:"email" gorm:"unique;index;size:255;not null"`
	FullName     string         `json:"fullName" gorm:"not null;size:128"`
	Password     string         `json:"-" gorm:"not null"` // bcrypt hash, never the plaintext
	Avatar       string         `json:"avatar" gorm:"not null"`
	CoverImage   string         `json:"coverImage"`
	RefreshToken string         `json:"-"` // single active refresh token, empty when logged out
}
