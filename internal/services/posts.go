package services

import (
	"errors"
	"math"

	"agora/internal/db"
	"agora/internal/models"
	"agora/internal/utils"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("not found")

const (
	DefaultPageSize = 8
	MaxPageSize     = 50
)

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// FindPost looks a post up by its public identifier and slug.
func FindPost(identifier, slug string) (*models.Post, error) {
	var post models.Post
	err := db.DB.Preload("Sub").
		Where("identifier = ? AND slug = ?", identifier, slug).
		First(&post).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &post, nil
}

func FindComment(postID uint, identifier string) (*models.Comment, error) {
	var comment models.Comment
	err := db.DB.Where("post_id = ? AND identifier = ?", postID, identifier).First(&comment).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &comment, nil
}

// ListPosts returns one page of posts, newest first.
func ListPosts(page, count int) ([]models.Post, error) {
	if page < 0 {
		page = 0
	}
	if count <= 0 {
		count = DefaultPageSize
	}
	if count > MaxPageSize {
		count = MaxPageSize
	}
	// page*count would overflow; nothing lives that far out anyway
	if page > math.MaxInt/count {
		return []models.Post{}, nil
	}

	var posts []models.Post
	err := db.DB.Preload("Sub").
		Order("created_at DESC").
		Order("id DESC").
		Offset(page * count).
		Limit(count).
		Find(&posts).Error
	return posts, err
}

func ListComments(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := db.DB.Where("post_id = ?", postID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&comments).Error
	return comments, err
}

// FillCommentCounts sets CommentCount on every post with one grouped query.
func FillCommentCounts(posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	type CountResult struct {
		PostID uint
		Count  int
	}
	var results []CountResult
	err := db.DB.Model(&models.Comment{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&results).Error
	if err != nil {
		return err
	}

	countMap := make(map[uint]int, len(results))
	for _, r := range results {
		countMap[r.PostID] = r.Count
	}
	for i := range posts {
		posts[i].CommentCount = countMap[posts[i].ID]
	}
	return nil
}

// DecoratePosts fills every derived field of the posts for the given viewer.
func DecoratePosts(posts []models.Post, viewer, appURL string, renderBody bool) error {
	if err := FillCommentCounts(posts); err != nil {
		return err
	}
	if err := AttachPostVotes(posts, viewer); err != nil {
		return err
	}
	for i := range posts {
		posts[i].URL = posts[i].Path()
		if posts[i].Sub != nil {
			posts[i].Sub.ResolveImageURLs(appURL)
		}
		if renderBody {
			posts[i].BodyHTML = string(utils.RenderMarkdown(posts[i].Body))
		}
	}
	return nil
}

func DecorateComments(comments []models.Comment, viewer string) error {
	if err := AttachCommentVotes(comments, viewer); err != nil {
		return err
	}
	for i := range comments {
		comments[i].BodyHTML = string(utils.RenderMarkdown(comments[i].Body))
		if comments[i].Post != nil {
			comments[i].Post.URL = comments[i].Post.Path()
		}
	}
	return nil
}
