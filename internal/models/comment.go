package models

import (
	"time"
)

type Comment struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	Identifier string    `gorm:"index;size:8;not null" json:"identifier"`
	Body       string    `gorm:"type:text;not null" json:"body"`
	Username   string    `gorm:"not null;index" json:"username"`
	User       *User     `gorm:"foreignKey:Username;references:Username;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	PostID     uint      `gorm:"not null;index" json:"postId"`
	Post       *Post     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"post,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	BodyHTML  string `gorm:"-" json:"bodyHtml,omitempty"`
	VoteScore int    `gorm:"-" json:"voteScore"`
	UserVote  *int   `gorm:"-" json:"userVote,omitempty"`
}

func (c *Comment) Subject() Subject {
	return Subject{Kind: SubjectComment, ID: c.ID}
}
