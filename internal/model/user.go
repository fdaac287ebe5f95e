package model

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	Admin   UserRole = "ADMIN"
	Student UserRole = "STUDENT"
	Teacher UserRole = "TEACHER"
)

type LoginMethod string

const (
	LoginEmail  LoginMethod = "EMAIL"
	LoginGoogle LoginMethod = "GOOGLE"
)

// swagger:model User
type User struct {
	ID          string      `gorm:"primaryKey;type:varchar(36)" json:"userId"`
	Username    string      `gorm:"size:50;not null" json:"username"`
	Email       string      `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password    string      `gorm:"size:255;not null" json:"-"`
	Role        UserRole    `gorm:"size:20;not null;default:'STUDENT'" json:"role"`
	LoginMethod LoginMethod `gorm:"size:20;not null;default:'EMAIL'" json:"loginMethod"`
	AvatarURL   string      `gorm:"type:text" json:"avatarUrl"`
	IsActive    bool        `gorm:"not null;default:true" json:"isActive"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = NewID()
	}
	return nil
}
