package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"agora/internal/cache"
	"agora/internal/config"
	"agora/internal/db"
	"agora/internal/middleware"
	"agora/internal/models"
	"agora/internal/services"
	"agora/internal/utils"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	cfg   *config.Config
	cache cache.Store
}

func NewPostHandler(cfg *config.Config, store cache.Store) *PostHandler {
	return &PostHandler{cfg: cfg, cache: store}
}

type createPostRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Sub   string `json:"sub"`
}

type createCommentRequest struct {
	Body string `json:"body"`
}

// List 首页帖子流，按页加载
func (h *PostHandler) List(c *gin.Context) {
	page := utils.StringToInt(c.Query("page"), 0)
	count := utils.StringToInt(c.Query("count"), services.DefaultPageSize)

	posts, err := services.ListPosts(page, count)
	if err == nil {
		err = services.DecoratePosts(posts, viewerName(c), h.cfg.AppURL, false)
	}
	if err != nil {
		log.Printf("list posts: %v", err)
		jsonError(c, http.StatusInternalServerError, "something went wrong")
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}
	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) Get(c *gin.Context) {
	post, ok := h.findPost(c)
	if !ok {
		return
	}

	posts := []models.Post{*post}
	if err := services.DecoratePosts(posts, viewerName(c), h.cfg.AppURL, true); err != nil {
		log.Printf("decorate post %s: %v", post.Identifier, err)
		jsonError(c, http.StatusInternalServerError, "something went wrong")
		return
	}
	c.JSON(http.StatusOK, posts[0])
}

func (h *PostHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req createPostRequest
	if !bindJSON(c, &req) {
		return
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"title": "title must not be empty"})
		return
	}

	var sub models.Sub
	if err := db.DB.Where("name = ?", req.Sub).First(&sub).Error; err != nil {
		jsonError(c, http.StatusNotFound, "sub not found")
		return
	}

	post := models.Post{
		Identifier: utils.RandomString(7),
		Title:      title,
		Slug:       utils.Slugify(title),
		Body:       req.Body,
		SubName:    sub.Name,
		Username:   user.Username,
	}
	if err := db.DB.Create(&post).Error; err != nil {
		log.Printf("create post: %v", err)
		jsonError(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	invalidateTopSubs(c, h.cache)

	post.Sub = &sub
	posts := []models.Post{post}
	if err := services.DecoratePosts(posts, user.Username, h.cfg.AppURL, true); err != nil {
		log.Printf("decorate post %s: %v", post.Identifier, err)
	}
	c.JSON(http.StatusOK, posts[0])
}

func (h *PostHandler) CreateComment(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req createCommentRequest
	if !bindJSON(c, &req) {
		return
	}
	if strings.TrimSpace(req.Body) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"body": "body must not be empty"})
		return
	}

	post, ok := h.findPost(c)
	if !ok {
		return
	}

	comment := models.Comment{
		Identifier: utils.RandomString(8),
		Body:       req.Body,
		Username:   user.Username,
		PostID:     post.ID,
	}
	if err := db.DB.Create(&comment).Error; err != nil {
		log.Printf("create comment on %s: %v", post.Identifier, err)
		jsonError(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	comments := []models.Comment{comment}
	if err := services.DecorateComments(comments, user.Username); err != nil {
		log.Printf("decorate comment %s: %v", comment.Identifier, err)
	}
	c.JSON(http.StatusOK, comments[0])
}

func (h *PostHandler) ListComments(c *gin.Context) {
	post, ok := h.findPost(c)
	if !ok {
		return
	}

	comments, err := services.ListComments(post.ID)
	if err == nil {
		err = services.DecorateComments(comments, viewerName(c))
	}
	if err != nil {
		log.Printf("list comments of %s: %v", post.Identifier, err)
		jsonError(c, http.StatusInternalServerError, "something went wrong")
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	c.JSON(http.StatusOK, comments)
}

// findPost resolves :identifier/:slug and writes the error response itself.
func (h *PostHandler) findPost(c *gin.Context) (*models.Post, bool) {
	post, err := services.FindPost(c.Param("identifier"), c.Param("slug"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			jsonError(c, http.StatusNotFound, "post not found")
		} else {
			log.Printf("find post: %v", err)
			jsonError(c, http.StatusInternalServerError, "something went wrong")
		}
		return nil, false
	}
	return post, true
}
