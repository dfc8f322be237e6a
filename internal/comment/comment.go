package comment

import (
	"time"

	"social-api/internal/user"
)

// Comment is a single self-referencing table: top-level comments have a
// nil ParentID, replies point at a top-level comment on the same post.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"index" json:"post_id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	ParentID  *uint     `gorm:"index" json:"parent_id"`
	Comment   string    `gorm:"size:1000" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Reply is a child comment annotated with its author.
type Reply struct {
	Comment
	User user.Author `json:"user"`
}

// Node is a top-level comment annotated with its author and ordered
// replies. ReplyComment is always a list, never null.
type Node struct {
	Comment
	User         user.Author `json:"user"`
	ReplyComment []Reply     `json:"reply_comment"`
}
