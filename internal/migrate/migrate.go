package migrate

import (
	"social-api/internal/comment"
	"social-api/internal/like"
	"social-api/internal/post"
	"social-api/internal/user"

	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&post.Post{},
		&comment.Comment{},
		&like.Like{},
	)
}
