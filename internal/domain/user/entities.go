package user

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleInvestor Role = "investor"
	RoleAdmin    Role = "admin"
)

type User struct {
	ID           uint64         `gorm:"primaryKey;column:id" json:"id"`
	Email        string         `gorm:"size:255;uniqueIndex:ux_users_email_active" json:"email"`
	PasswordHash string         `gorm:"size:128;column:password_hash" json:"-"`
	Name         string         `gorm:"size:128" json:"name"`
	Role         Role           `gorm:"size:16;default:'investor'" json:"role"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }
