package domain

import "time"

// User is an account that can create tasks, be assigned tasks, and hold
// at most one live session token. Users are never deleted.
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CurrentToken *string   `gorm:"size:1024" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasToken reports whether the given bearer token is the user's current
// session token. A user with no live session matches nothing.
func (u *User) HasToken(token string) bool {
	return u.CurrentToken != nil && *u.CurrentToken == token
}
