package handlers

import (
	"log"
	"net/http"
	"strings"

	"agora/internal/config"
	"agora/internal/db"
	"agora/internal/middleware"
	"agora/internal/models"
	"agora/internal/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	cfg *config.Config
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=32"`
	Password string `json:"password" binding:"required,min=6,max=255"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Me returns the logged in user.
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentUser(c))
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.TrimSpace(req.Username)

	errs := gin.H{}
	var emails, usernames int64
	err := db.DB.Model(&models.User{}).Where("email = ?", req.Email).Count(&emails).Error
	if err == nil {
		err = db.DB.Model(&models.User{}).Where("username = ?", req.Username).Count(&usernames).Error
	}
	if err != nil {
		log.Printf("check existing user %s: %v", req.Username, err)
		jsonError(c, http.StatusInternalServerError, "something went wrong")
		return
	}
	if emails > 0 {
		errs["email"] = "email address is already in use"
	}
	if usernames > 0 {
		errs["username"] = "username is already taken"
	}
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, errs)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Printf("hash password: %v", err)
		jsonError(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hash,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		// lost a race against another registration with the same name
		log.Printf("create user %s: %v", req.Username, err)
		c.JSON(http.StatusBadRequest, gin.H{"username": "username or email is already in use"})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)

	errs := gin.H{}
	if req.Username == "" {
		errs["username"] = "username must not be empty"
	}
	if req.Password == "" {
		errs["password"] = "password must not be empty"
	}
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, errs)
		return
	}

	var user models.User
	if err := db.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"username": "username is not registered"})
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"password": "password is incorrect"})
		return
	}

	token, err := middleware.IssueToken(h.cfg.JWTSecret, user.Username)
	if err != nil {
		log.Printf("issue token: %v", err)
		jsonError(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	h.setTokenCookie(c, token, int(middleware.TokenTTL.Seconds()))
	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.setTokenCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AuthHandler) setTokenCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.TokenCookie, token, maxAge, "/", "", h.cfg.IsProduction(), true)
}
