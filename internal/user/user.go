package user

import "time"

type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255" json:"name"`
	Email       string    `gorm:"uniqueIndex;size:255" json:"email"`
	Password    string    `gorm:"size:255" json:"-"`
	UserProfile string    `gorm:"size:512" json:"user_profile"`
	ShortBio    string    `gorm:"size:500" json:"short_bio"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Author is the restricted view of a user attached to comments and
// replies: id, name and profile image only.
type Author struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	UserProfile string `json:"user_profile"`
}

func (u *User) Author() Author {
	return Author{ID: u.ID, Name: u.Name, UserProfile: u.UserProfile}
}
