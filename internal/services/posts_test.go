package services

import (
	"math"
	"testing"
	"time"

	"agora/internal/db"
	"agora/internal/models"
	"agora/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPostsPaging(t *testing.T) {
	conn := testutil.NewDB(t)
	testutil.CreateUser(t, conn, "u1", "password")
	testutil.CreateSub(t, conn, "golang", "u1")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 10; i++ {
		p := testutil.CreatePost(t, conn, "golang", "u1", "post")
		require.NoError(t, db.DB.Model(p).UpdateColumn("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
	}

	first, err := ListPosts(0, 4)
	require.NoError(t, err)
	require.Len(t, first, 4)
	assert.True(t, first[0].CreatedAt.After(first[3].CreatedAt))
	require.NotNil(t, first[0].Sub)
	assert.Equal(t, "golang", first[0].Sub.Name)

	last, err := ListPosts(2, 4)
	require.NoError(t, err)
	assert.Len(t, last, 2)

	def, err := ListPosts(-1, 0)
	require.NoError(t, err)
	assert.Len(t, def, DefaultPageSize)
}

func TestListPostsFarPages(t *testing.T) {
	conn := testutil.NewDB(t)
	testutil.CreateUser(t, conn, "u1", "password")
	testutil.CreateSub(t, conn, "golang", "u1")
	for i := 0; i < 3; i++ {
		testutil.CreatePost(t, conn, "golang", "u1", "post")
	}

	for _, page := range []int{math.MaxInt, 1 << 60, math.MaxInt / DefaultPageSize, 100} {
		posts, err := ListPosts(page, DefaultPageSize)
		require.NoError(t, err)
		assert.Empty(t, posts, "page %d", page)
	}
}

func TestFindPostAndComment(t *testing.T) {
	conn := testutil.NewDB(t)
	testutil.CreateUser(t, conn, "u1", "password")
	testutil.CreateSub(t, conn, "golang", "u1")
	post := testutil.CreatePost(t, conn, "golang", "u1", "Hello World")
	comment := testutil.CreateComment(t, conn, post, "u1", "nice")

	found, err := FindPost(post.Identifier, "hello-world")
	require.NoError(t, err)
	assert.Equal(t, post.ID, found.ID)

	_, err = FindPost(post.Identifier, "wrong-slug")
	assert.ErrorIs(t, err, ErrNotFound)

	c, err := FindComment(post.ID, comment.Identifier)
	require.NoError(t, err)
	assert.Equal(t, comment.ID, c.ID)

	_, err = FindComment(post.ID+1, comment.Identifier)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDecoratePosts(t *testing.T) {
	conn := testutil.NewDB(t)
	testutil.CreateUser(t, conn, "u1", "password")
	testutil.CreateSub(t, conn, "golang", "u1")
	post := testutil.CreatePost(t, conn, "golang", "u1", "Hello")
	testutil.CreateComment(t, conn, post, "u1", "one")
	testutil.CreateComment(t, conn, post, "u1", "two")
	testutil.CreateVote(t, conn, post.Subject(), "u1", 1)

	posts, err := ListPosts(0, 8)
	require.NoError(t, err)
	require.NoError(t, DecoratePosts(posts, "u1", "http://api.test", true))

	p := posts[0]
	assert.Equal(t, 2, p.CommentCount)
	assert.Equal(t, 1, p.VoteScore)
	assert.Equal(t, "/r/golang/"+post.Identifier+"/hello", p.URL)
	assert.Equal(t, models.DefaultSubImage, p.Sub.ImageURL)
	assert.Contains(t, p.BodyHTML, "body of Hello")
}
