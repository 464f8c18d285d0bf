package handlers

import (
	"log"
	"net/http"
	"slices"
	"time"

	"agora/internal/config"
	"agora/internal/db"
	"agora/internal/models"
	"agora/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	cfg *config.Config
}

func NewUserHandler(cfg *config.Config) *UserHandler {
	return &UserHandler{cfg: cfg}
}

type publicUser struct {
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

type postActivity struct {
	Type string `json:"type"`
	models.Post
}

type commentActivity struct {
	Type string `json:"type"`
	models.Comment
}

type activity struct {
	createdAt time.Time
	item      any
}

// Profile returns a user's posts and comments merged, newest first.
func (h *UserHandler) Profile(c *gin.Context) {
	var user models.User
	if err := db.DB.Where("username = ?", c.Param("username")).First(&user).Error; err != nil {
		jsonError(c, http.StatusNotFound, "user not found")
		return
	}
	viewer := viewerName(c)

	var posts []models.Post
	err := db.DB.Preload("Sub").Where("username = ?", user.Username).Find(&posts).Error
	if err == nil {
		err = services.DecoratePosts(posts, viewer, h.cfg.AppURL, false)
	}
	if err != nil {
		log.Printf("posts of %s: %v", user.Username, err)
		jsonError(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	var comments []models.Comment
	err = db.DB.Preload("Post").Where("username = ?", user.Username).Find(&comments).Error
	if err == nil {
		err = services.DecorateComments(comments, viewer)
	}
	if err != nil {
		log.Printf("comments of %s: %v", user.Username, err)
		jsonError(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	merged := make([]activity, 0, len(posts)+len(comments))
	for _, p := range posts {
		merged = append(merged, activity{p.CreatedAt, postActivity{Type: "Post", Post: p}})
	}
	for _, cm := range comments {
		merged = append(merged, activity{cm.CreatedAt, commentActivity{Type: "Comment", Comment: cm}})
	}
	slices.SortStableFunc(merged, func(a, b activity) int {
		return b.createdAt.Compare(a.createdAt)
	})

	userData := make([]any, len(merged))
	for i, a := range merged {
		userData[i] = a.item
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     publicUser{Username: user.Username, CreatedAt: user.CreatedAt},
		"userData": userData,
	})
}
