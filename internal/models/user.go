package models

import (
	"time"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Username  string    `gorm:"size:32;uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"` // Hash
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
