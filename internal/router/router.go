package router

import (
	"net/http"

	"agora/internal/cache"
	"agora/internal/config"
	"agora/internal/handlers"
	"agora/internal/metrics"
	"agora/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the JSON API. LoadUser must already be installed on r.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, store cache.Store) {
	// Handlers
	authHandler := handlers.NewAuthHandler(cfg)
	subHandler := handlers.NewSubHandler(cfg, store)
	postHandler := handlers.NewPostHandler(cfg, store)
	voteHandler := handlers.NewVoteHandler(cfg)
	userHandler := handlers.NewUserHandler(cfg)

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "running")
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	requireAuth := middleware.AuthRequired()

	// 认证 (Auth)
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", requireAuth, authHandler.Me)
		auth.POST("/logout", requireAuth, authHandler.Logout)
	}

	// 社区 (Subs)
	subs := api.Group("/subs")
	{
		subs.GET("/sub/topSubs", subHandler.TopSubs) // 热门社区
		subs.GET("/sub/topsSubs", subHandler.TopSubs) // path the existing web client requests
		subs.GET("/:name", subHandler.Get)
		subs.POST("", requireAuth, subHandler.Create)
		subs.POST("/:name/upload", requireAuth, subHandler.OwnSub, subHandler.UploadImage) // 上传头像或横幅
	}

	// 帖子与评论 (Posts)
	posts := api.Group("/posts")
	{
		posts.GET("", postHandler.List)
		posts.GET("/:identifier/:slug", postHandler.Get)
		posts.POST("", requireAuth, postHandler.Create)
		posts.GET("/:identifier/:slug/comments", postHandler.ListComments)
		posts.POST("/:identifier/:slug/comments", requireAuth, postHandler.CreateComment)
	}

	api.POST("/votes", requireAuth, voteHandler.Vote) // 投票/取消投票

	api.GET("/users/:username", userHandler.Profile) // 用户主页
}
