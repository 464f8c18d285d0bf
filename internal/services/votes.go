package services

import (
	"errors"

	"agora/internal/db"
	"agora/internal/metrics"
	"agora/internal/models"
	"agora/internal/vote"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LoadVotes returns every vote row for the given subjects, grouped by subject ID.
func LoadVotes(conn *gorm.DB, kind models.SubjectKind, ids []uint) (map[uint][]models.Vote, error) {
	grouped := make(map[uint][]models.Vote, len(ids))
	if len(ids) == 0 {
		return grouped, nil
	}

	var rows []models.Vote
	if err := conn.Where("subject_kind = ? AND subject_id IN ?", kind, ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, v := range rows {
		grouped[v.SubjectID] = append(grouped[v.SubjectID], v)
	}
	return grouped, nil
}

// AttachPostVotes fills VoteScore, and UserVote when viewer is not empty.
func AttachPostVotes(posts []models.Post, viewer string) error {
	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	byPost, err := LoadVotes(db.DB, models.SubjectPost, ids)
	if err != nil {
		return err
	}
	for i := range posts {
		votes := byPost[posts[i].ID]
		posts[i].VoteScore = vote.Score(votes)
		posts[i].UserVote = viewerVote(votes, viewer)
	}
	return nil
}

func AttachCommentVotes(comments []models.Comment, viewer string) error {
	ids := make([]uint, len(comments))
	for i, c := range comments {
		ids[i] = c.ID
	}
	byComment, err := LoadVotes(db.DB, models.SubjectComment, ids)
	if err != nil {
		return err
	}
	for i := range comments {
		votes := byComment[comments[i].ID]
		comments[i].VoteScore = vote.Score(votes)
		comments[i].UserVote = viewerVote(votes, viewer)
	}
	return nil
}

func viewerVote(votes []models.Vote, viewer string) *int {
	if viewer == "" {
		return nil
	}
	v := vote.ViewerVote(votes, viewer)
	return &v
}

// CastVote applies the toggle rule to the voter's current vote on subject and
// upserts the result. Concurrent casts by the same voter collapse onto the
// unique (subject, voter) row; the last write wins.
func CastVote(voter string, subject models.Subject, requested int) (models.Vote, error) {
	if err := vote.Validate(requested); err != nil {
		return models.Vote{}, err
	}

	var next models.Vote
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var existing *models.Vote
		var current models.Vote
		err := tx.Where("subject_kind = ? AND subject_id = ? AND username = ?", subject.Kind, subject.ID, voter).
			First(&current).Error
		switch {
		case err == nil:
			existing = &current
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		next = vote.Apply(existing, subject, voter, requested)
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "subject_kind"}, {Name: "subject_id"}, {Name: "username"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&next).Error
	})
	if err != nil {
		return models.Vote{}, err
	}
	metrics.RecordVote(string(subject.Kind), next.Value)
	return next, nil
}
