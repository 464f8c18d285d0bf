package services

import (
	"testing"

	"agora/internal/db"
	"agora/internal/metrics"
	"agora/internal/models"
	"agora/internal/testutil"
	"agora/internal/vote"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCastVoteToggleSequence(t *testing.T) {
	conn := testutil.NewDB(t)
	testutil.CreateUser(t, conn, "u1", "password")
	testutil.CreateSub(t, conn, "golang", "u1")
	post := testutil.CreatePost(t, conn, "golang", "u1", "Hello")

	ups := promtest.ToFloat64(metrics.VotesCast.WithLabelValues("post", "up"))
	nones := promtest.ToFloat64(metrics.VotesCast.WithLabelValues("post", "none"))

	for i, want := range []int{1, 0, 1} {
		v, err := CastVote("u1", post.Subject(), vote.Up)
		require.NoError(t, err)
		assert.Equal(t, want, v.Value, "cast #%d", i+1)
	}

	var count int64
	db.DB.Model(&models.Vote{}).Where("subject_kind = ? AND subject_id = ?", models.SubjectPost, post.ID).Count(&count)
	assert.Equal(t, int64(1), count, "one row per voter and subject")
	assert.Equal(t, ups+2, promtest.ToFloat64(metrics.VotesCast.WithLabelValues("post", "up")))
	assert.Equal(t, nones+1, promtest.ToFloat64(metrics.VotesCast.WithLabelValues("post", "none")))
}

func TestCastVoteSwitchPolarity(t *testing.T) {
	conn := testutil.NewDB(t)
	testutil.CreateUser(t, conn, "u1", "password")
	testutil.CreateSub(t, conn, "golang", "u1")
	post := testutil.CreatePost(t, conn, "golang", "u1", "Hello")
	comment := testutil.CreateComment(t, conn, post, "u1", "hi")

	_, err := CastVote("u1", comment.Subject(), vote.Up)
	require.NoError(t, err)
	v, err := CastVote("u1", comment.Subject(), vote.Down)
	require.NoError(t, err)
	assert.Equal(t, vote.Down, v.Value)

	votes, err := LoadVotes(db.DB, models.SubjectComment, []uint{comment.ID})
	require.NoError(t, err)
	assert.Equal(t, -1, vote.Score(votes[comment.ID]))

	// a post and a comment sharing a numeric ID do not see each other's votes
	postVotes, err := LoadVotes(db.DB, models.SubjectPost, []uint{comment.ID})
	require.NoError(t, err)
	assert.Empty(t, postVotes[comment.ID])
}

func TestCastVoteRejectsInvalidValue(t *testing.T) {
	testutil.NewDB(t)
	_, err := CastVote("u1", models.Subject{Kind: models.SubjectPost, ID: 1}, 2)
	assert.ErrorIs(t, err, vote.ErrInvalidValue)
}

func TestAttachPostVotes(t *testing.T) {
	conn := testutil.NewDB(t)
	for _, u := range []string{"u1", "u2", "u3"} {
		testutil.CreateUser(t, conn, u, "password")
	}
	testutil.CreateSub(t, conn, "golang", "u1")
	p1 := testutil.CreatePost(t, conn, "golang", "u1", "First")
	p2 := testutil.CreatePost(t, conn, "golang", "u1", "Second")

	testutil.CreateVote(t, conn, p1.Subject(), "u1", 1)
	testutil.CreateVote(t, conn, p1.Subject(), "u2", 1)
	testutil.CreateVote(t, conn, p1.Subject(), "u3", -1)

	posts := []models.Post{*p1, *p2}
	require.NoError(t, AttachPostVotes(posts, "u2"))
	assert.Equal(t, 1, posts[0].VoteScore)
	require.NotNil(t, posts[0].UserVote)
	assert.Equal(t, 1, *posts[0].UserVote)
	assert.Equal(t, 0, posts[1].VoteScore)
	require.NotNil(t, posts[1].UserVote)
	assert.Equal(t, 0, *posts[1].UserVote)

	anon := []models.Post{*p1}
	require.NoError(t, AttachPostVotes(anon, ""))
	assert.Equal(t, 1, anon[0].VoteScore)
	assert.Nil(t, anon[0].UserVote)
}

func TestAttachCommentVotes(t *testing.T) {
	conn := testutil.NewDB(t)
	testutil.CreateUser(t, conn, "u1", "password")
	testutil.CreateUser(t, conn, "u2", "password")
	testutil.CreateSub(t, conn, "golang", "u1")
	post := testutil.CreatePost(t, conn, "golang", "u1", "Hello")
	c := testutil.CreateComment(t, conn, post, "u2", "reply")

	testutil.CreateVote(t, conn, c.Subject(), "u1", -1)

	comments := []models.Comment{*c}
	require.NoError(t, AttachCommentVotes(comments, "u9"))
	assert.Equal(t, -1, comments[0].VoteScore)
	require.NotNil(t, comments[0].UserVote)
	assert.Equal(t, 0, *comments[0].UserVote)
}
