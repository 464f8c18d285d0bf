package models

import (
	"time"
)

// Sub is a sub-community that posts belong to. Name is the public key used in URLs.
type Sub struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	ImageURN    string    `json:"imageUrn"`
	BannerURN   string    `json:"bannerUrn"`
	Username    string    `gorm:"not null;index" json:"username"` // Owner
	User        *User     `gorm:"foreignKey:Username;references:Username;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Posts       []Post    `gorm:"foreignKey:SubName;references:Name" json:"posts,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// 非数据库字段，响应前填充
	ImageURL  string `gorm:"-" json:"imageUrl"`
	BannerURL string `gorm:"-" json:"bannerUrl"`
}

const DefaultSubImage = "https://www.gravatar.com/avatar?d=mp&f=y"

// ResolveImageURLs fills ImageURL and BannerURL from the stored file names.
func (s *Sub) ResolveImageURLs(appURL string) {
	if s.ImageURN != "" {
		s.ImageURL = appURL + "/images/" + s.ImageURN
	} else {
		s.ImageURL = DefaultSubImage
	}
	if s.BannerURN != "" {
		s.BannerURL = appURL + "/images/" + s.BannerURN
	} else {
		s.BannerURL = ""
	}
}
