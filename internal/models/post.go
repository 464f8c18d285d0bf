package models

import (
	"fmt"
	"time"
)

type Post struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	Identifier string    `gorm:"index;size:7;not null" json:"identifier"`
	Title      string    `gorm:"not null" json:"title"`
	Slug       string    `gorm:"index;not null" json:"slug"`
	Body       string    `gorm:"type:text" json:"body"`
	SubName    string    `gorm:"not null;index" json:"subName"`
	Sub        *Sub      `gorm:"foreignKey:SubName;references:Name;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"sub,omitempty"`
	Username   string    `gorm:"not null;index" json:"username"`
	User       *User     `gorm:"foreignKey:Username;references:Username;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	// 非数据库字段，用于查询时填充
	URL          string `gorm:"-" json:"url"`
	BodyHTML     string `gorm:"-" json:"bodyHtml,omitempty"`
	CommentCount int    `gorm:"-" json:"commentCount"`
	VoteScore    int    `gorm:"-" json:"voteScore"`
	UserVote     *int   `gorm:"-" json:"userVote,omitempty"` // Only set when the viewer is known

	Comments []Comment `gorm:"-" json:"comments,omitempty"`
}

// Path is the frontend route of the post.
func (p *Post) Path() string {
	return fmt.Sprintf("/r/%s/%s/%s", p.SubName, p.Identifier, p.Slug)
}

func (p *Post) Subject() Subject {
	return Subject{Kind: SubjectPost, ID: p.ID}
}
