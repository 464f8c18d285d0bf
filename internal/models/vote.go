package models

import (
	"time"
)

type SubjectKind string

const (
	SubjectPost    SubjectKind = "post"
	SubjectComment SubjectKind = "comment"
)

// Subject identifies something that can be voted on.
type Subject struct {
	Kind SubjectKind
	ID   uint
}

// Vote is one voter's vote on a post or comment. Value is -1, 0 or 1; an
// un-vote is stored as 0 rather than deleted.
// The unique index keeps a single live row per (subject, voter).
type Vote struct {
	ID          uint        `gorm:"primaryKey" json:"-"`
	SubjectKind SubjectKind `gorm:"type:varchar(16);not null;uniqueIndex:idx_vote_subject_voter,priority:1" json:"subjectKind"`
	SubjectID   uint        `gorm:"not null;uniqueIndex:idx_vote_subject_voter,priority:2" json:"subjectId"`
	Username    string      `gorm:"not null;uniqueIndex:idx_vote_subject_voter,priority:3" json:"username"`
	User        *User       `gorm:"foreignKey:Username;references:Username;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Value       int         `gorm:"not null;default:0" json:"value"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}
