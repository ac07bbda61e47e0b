package repository

import (
	"testing"

	"gorm.io/driver/sqlite"
	stdgorm "gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/webfolio/api/database"
)

func makeTestConnection(t *testing.T) *database.Connection {
	t.Helper()

	driver, err := stdgorm.Open(sqlite.Open(":memory:"), &stdgorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})

	if err != nil {
		t.Fatalf("open sqlite err: %v", err)
	}

	err = driver.AutoMigrate(
		&database.User{},
		&database.Tag{},
		&database.Post{},
		&database.Project{},
		&database.PostTag{},
		&database.ProjectTag{},
		&database.Image{},
	)

	if err != nil {
		t.Fatalf("migrate err: %v", err)
	}

	return database.NewConnectionFromGorm(driver)
}

func seedUser(t *testing.T, conn *database.Connection, username string) *database.User {
	t.Helper()

	user, err := Users{DB: conn}.Create(database.UsersAttrs{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
	})

	if err != nil {
		t.Fatalf("seed user err: %v", err)
	}

	return user
}

func makePostAttrs(userID uint64, title string) database.PostsAttrs {
	return database.PostsAttrs{
		UserID:    userID,
		Title:     title,
		Excerpt:   "A short excerpt.",
		Content:   "Some body content worth reading.",
		Author:    "Gus Soto",
		Category:  "engineering",
		Published: true,
	}
}

func makeProjectAttrs(userID uint64, title string) database.ProjectsAttrs {
	return database.ProjectsAttrs{
		UserID:      userID,
		Title:       title,
		Description: "A small tool.",
		Content:     "Detailed project write-up.",
		Category:    "tooling",
		Status:      database.StatusPlanned,
		Published:   true,
	}
}
