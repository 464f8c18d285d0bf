// Package vote derives scores and per-viewer votes from vote rows.
// Nothing here touches storage; callers load rows first and persist the
// result of Apply themselves.
package vote

import (
	"errors"

	"agora/internal/models"
)

const (
	Down    = -1
	Neutral = 0
	Up      = 1
)

var ErrInvalidValue = errors.New("vote value must be -1, 0 or 1")

// Validate rejects anything outside {-1, 0, 1}.
func Validate(value int) error {
	switch value {
	case Down, Neutral, Up:
		return nil
	default:
		return ErrInvalidValue
	}
}

// Score sums the values of votes that all belong to the same subject.
func Score(votes []models.Vote) int {
	score := 0
	for _, v := range votes {
		score += v.Value
	}
	return score
}

// ViewerVote returns the viewer's own vote, or 0 when viewer is empty
// (anonymous) or has not voted.
func ViewerVote(votes []models.Vote, viewer string) int {
	if viewer == "" {
		return Neutral
	}
	for _, v := range votes {
		if v.Username == viewer {
			return v.Value
		}
	}
	return Neutral
}

// Apply computes the row to upsert for voter on subject. Casting the same
// value as the existing vote cancels it back to 0.
// requested must already have passed Validate.
func Apply(existing *models.Vote, subject models.Subject, voter string, requested int) models.Vote {
	next := models.Vote{
		SubjectKind: subject.Kind,
		SubjectID:   subject.ID,
		Username:    voter,
		Value:       requested,
	}
	if existing != nil && existing.Value == requested {
		next.Value = Neutral
	}
	return next
}
