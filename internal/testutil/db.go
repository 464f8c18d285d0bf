// Package testutil holds helpers shared by package tests.
package testutil

import (
	"testing"

	"agora/internal/db"
	"agora/internal/models"
	"agora/internal/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB installs a migrated in-memory SQLite database as db.DB.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// every connection to :memory: is a separate database
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(conn))
	db.DB = conn
	t.Cleanup(func() { _ = sqlDB.Close() })
	return conn
}

func CreateUser(t *testing.T, conn *gorm.DB, username, password string) *models.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	u := &models.User{Username: username, Email: username + "@example.com", Password: hash}
	require.NoError(t, conn.Create(u).Error)
	return u
}

func CreateSub(t *testing.T, conn *gorm.DB, name, owner string) *models.Sub {
	t.Helper()
	s := &models.Sub{Name: name, Title: name + " title", Username: owner}
	require.NoError(t, conn.Create(s).Error)
	return s
}

func CreatePost(t *testing.T, conn *gorm.DB, sub, author, title string) *models.Post {
	t.Helper()
	p := &models.Post{
		Identifier: utils.RandomString(7),
		Title:      title,
		Slug:       utils.Slugify(title),
		Body:       "body of " + title,
		SubName:    sub,
		Username:   author,
	}
	require.NoError(t, conn.Create(p).Error)
	return p
}

func CreateComment(t *testing.T, conn *gorm.DB, post *models.Post, author, body string) *models.Comment {
	t.Helper()
	c := &models.Comment{
		Identifier: utils.RandomString(8),
		Body:       body,
		Username:   author,
		PostID:     post.ID,
	}
	require.NoError(t, conn.Create(c).Error)
	return c
}

func CreateVote(t *testing.T, conn *gorm.DB, subject models.Subject, username string, value int) {
	t.Helper()
	v := models.Vote{SubjectKind: subject.Kind, SubjectID: subject.ID, Username: username, Value: value}
	require.NoError(t, conn.Create(&v).Error)
}
