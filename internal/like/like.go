package like

import "time"

// Like rows are unique per (user, post); the composite primary key is
// what makes concurrent toggles safe.
type Like struct {
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	PostID    uint      `gorm:"primaryKey;index" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
