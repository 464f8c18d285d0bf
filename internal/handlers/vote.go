package handlers

import (
	"errors"
	"log"
	"net/http"

	"agora/internal/config"
	"agora/internal/middleware"
	"agora/internal/models"
	"agora/internal/services"
	"agora/internal/vote"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	cfg *config.Config
}

func NewVoteHandler(cfg *config.Config) *VoteHandler {
	return &VoteHandler{cfg: cfg}
}

type voteRequest struct {
	Identifier        string `json:"identifier" binding:"required"`
	Slug              string `json:"slug" binding:"required"`
	CommentIdentifier string `json:"commentIdentifier"`
	Value             *int   `json:"value" binding:"required"`
}

// Vote casts (or toggles off) the current user's vote on a post or one of
// its comments and returns the post with fresh scores.
func (h *VoteHandler) Vote(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req voteRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := vote.Validate(*req.Value); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"value": err.Error()})
		return
	}

	post, err := services.FindPost(req.Identifier, req.Slug)
	if err != nil {
		h.lookupError(c, "post", err)
		return
	}

	subject := post.Subject()
	if req.CommentIdentifier != "" {
		comment, err := services.FindComment(post.ID, req.CommentIdentifier)
		if err != nil {
			h.lookupError(c, "comment", err)
			return
		}
		subject = comment.Subject()
	}

	if _, err := services.CastVote(user.Username, subject, *req.Value); err != nil {
		log.Printf("cast vote by %s on %s %d: %v", user.Username, subject.Kind, subject.ID, err)
		jsonError(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	posts := []models.Post{*post}
	if err := services.DecoratePosts(posts, user.Username, h.cfg.AppURL, true); err != nil {
		log.Printf("decorate post %s: %v", post.Identifier, err)
		jsonError(c, http.StatusInternalServerError, "something went wrong")
		return
	}
	comments, err := services.ListComments(post.ID)
	if err == nil {
		err = services.DecorateComments(comments, user.Username)
	}
	if err != nil {
		log.Printf("comments of %s: %v", post.Identifier, err)
		jsonError(c, http.StatusInternalServerError, "something went wrong")
		return
	}
	posts[0].Comments = comments

	c.JSON(http.StatusOK, posts[0])
}

func (h *VoteHandler) lookupError(c *gin.Context, what string, err error) {
	if errors.Is(err, services.ErrNotFound) {
		jsonError(c, http.StatusNotFound, what+" not found")
		return
	}
	log.Printf("find %s: %v", what, err)
	jsonError(c, http.StatusInternalServerError, "something went wrong")
}
