// Package user provides the user identity types shared across modules.
package user

import (
	"time"
)

// User represents a registered account. The ID is the opaque owner identifier
// stamped onto every todo the user creates.
type User struct {
	ID           string `gorm:"primaryKey;size:36"`
	Email        string `gorm:"uniqueIndex;not null;size:255"`
	PasswordHash string `gorm:"not null;size:255"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for the User entity.
func (User) TableName() string {
	return "users"
}

// TokenPair holds the access and refresh tokens issued at login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// Claims is the verified identity extracted from an access token.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}
