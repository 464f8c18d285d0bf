package handlers

import (
	"errors"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"agora/internal/cache"
	"agora/internal/config"
	"agora/internal/db"
	"agora/internal/middleware"
	"agora/internal/models"
	"agora/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	topSubsKey = "subs:top"
	topSubsTTL = time.Minute
	subKey     = "sub"
)

var subNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{1,32}$`)

type SubHandler struct {
	cfg   *config.Config
	cache cache.Store
}

func NewSubHandler(cfg *config.Config, store cache.Store) *SubHandler {
	return &SubHandler{cfg: cfg, cache: store}
}

type createSubRequest struct {
	Name        string `json:"name" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// TopSub is one row of the top communities sidebar.
type TopSub struct {
	Title     string `json:"title"`
	Name      string `json:"name"`
	ImageURL  string `json:"imageUrl"`
	PostCount int    `json:"postCount"`
}

// Get 展示社区及其帖子
func (h *SubHandler) Get(c *gin.Context) {
	var sub models.Sub
	if err := db.DB.Where("name = ?", c.Param("name")).First(&sub).Error; err != nil {
		jsonError(c, http.StatusNotFound, "sub not found")
		return
	}

	var posts []models.Post
	if err := db.DB.Where("sub_name = ?", sub.Name).Order("created_at DESC").Find(&posts).Error; err != nil {
		log.Printf("list posts of %s: %v", sub.Name, err)
		jsonError(c, http.StatusInternalServerError, "something went wrong")
		return
	}
	if err := services.DecoratePosts(posts, viewerName(c), h.cfg.AppURL, false); err != nil {
		log.Printf("decorate posts of %s: %v", sub.Name, err)
		jsonError(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	sub.Posts = posts
	sub.ResolveImageURLs(h.cfg.AppURL)
	c.JSON(http.StatusOK, sub)
}

func (h *SubHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req createSubRequest
	if !bindJSON(c, &req) {
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Title = strings.TrimSpace(req.Title)

	errs := gin.H{}
	if !subNamePattern.MatchString(req.Name) {
		errs["name"] = "name may only contain letters, digits and underscores"
	}
	if req.Title == "" {
		errs["title"] = "title must not be empty"
	}
	var existing models.Sub
	if err := db.DB.Where("lower(name) = ?", strings.ToLower(req.Name)).First(&existing).Error; err == nil {
		errs["name"] = "a sub with this name already exists"
	}
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, errs)
		return
	}

	sub := models.Sub{
		Name:        req.Name,
		Title:       req.Title,
		Description: req.Description,
		Username:    user.Username,
	}
	if err := db.DB.Create(&sub).Error; err != nil {
		log.Printf("create sub %s: %v", req.Name, err)
		jsonError(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	h.invalidateTopSubs(c)
	sub.ResolveImageURLs(h.cfg.AppURL)
	c.JSON(http.StatusOK, sub)
}

// TopSubs lists the five subs with the most posts.
func (h *SubHandler) TopSubs(c *gin.Context) {
	var subs []TopSub
	err := cache.Aside(c.Request.Context(), h.cache, topSubsKey, &subs, topSubsTTL, func() error {
		return db.DB.Raw(`
			SELECT s.title, s.name,
				COALESCE(CAST(? AS TEXT) || NULLIF(s.image_urn, ''), CAST(? AS TEXT)) AS image_url,
				COUNT(p.id) AS post_count
			FROM subs s
			LEFT JOIN posts p ON s.name = p.sub_name
			GROUP BY s.title, s.name, s.image_urn
			ORDER BY post_count DESC, s.name ASC
			LIMIT 5`, h.cfg.AppURL+"/images/", models.DefaultSubImage).
			Scan(&subs).Error
	})
	if err != nil {
		log.Printf("top subs: %v", err)
		jsonError(c, http.StatusInternalServerError, "something went wrong")
		return
	}
	if subs == nil {
		subs = []TopSub{}
	}
	c.JSON(http.StatusOK, subs)
}

// OwnSub only lets the owner of the sub through.
func (h *SubHandler) OwnSub(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var sub models.Sub
	if err := db.DB.Where("name = ?", c.Param("name")).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			jsonError(c, http.StatusNotFound, "sub not found")
		} else {
			jsonError(c, http.StatusInternalServerError, "something went wrong")
		}
		c.Abort()
		return
	}
	if sub.Username != user.Username {
		jsonError(c, http.StatusForbidden, "you do not own this sub")
		c.Abort()
		return
	}
	c.Set(subKey, &sub)
	c.Next()
}

// UploadImage replaces the sub's image or banner.
func (h *SubHandler) UploadImage(c *gin.Context) {
	sub := c.MustGet(subKey).(*models.Sub)

	kind := c.PostForm("type")
	if kind != "image" && kind != "banner" {
		jsonError(c, http.StatusBadRequest, "type must be image or banner")
		return
	}
	header, err := c.FormFile("file")
	if err != nil {
		jsonError(c, http.StatusBadRequest, "file is required")
		return
	}

	name, err := services.SaveImage(h.cfg.UploadDir, header)
	if err != nil {
		if errors.Is(err, services.ErrNotImage) || errors.Is(err, services.ErrImageTooLarge) {
			jsonError(c, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("save image for %s: %v", sub.Name, err)
		jsonError(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	var old, column string
	if kind == "image" {
		old, column = sub.ImageURN, "image_urn"
		sub.ImageURN = name
	} else {
		old, column = sub.BannerURN, "banner_urn"
		sub.BannerURN = name
	}
	if err := db.DB.Model(sub).Update(column, name).Error; err != nil {
		_ = services.RemoveImage(h.cfg.UploadDir, name)
		log.Printf("update %s of %s: %v", column, sub.Name, err)
		jsonError(c, http.StatusInternalServerError, "something went wrong")
		return
	}
	if err := services.RemoveImage(h.cfg.UploadDir, old); err != nil {
		log.Printf("remove old image %s: %v", old, err)
	}

	h.invalidateTopSubs(c)
	sub.ResolveImageURLs(h.cfg.AppURL)
	c.JSON(http.StatusOK, sub)
}

func (h *SubHandler) invalidateTopSubs(c *gin.Context) {
	invalidateTopSubs(c, h.cache)
}

func invalidateTopSubs(c *gin.Context, store cache.Store) {
	if err := store.Delete(c.Request.Context(), topSubsKey); err != nil {
		log.Printf("invalidate top subs: %v", err)
	}
}
