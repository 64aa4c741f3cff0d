package user

import "time"

// User is an account. PasswordHash is empty for accounts created through an
// OAuth provider; those log in via the provider instead.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:255;not null;uniqueIndex:idx_user_email" json:"email"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	PasswordHash string    `gorm:"size:255" json:"-"`
	Provider     string    `gorm:"size:32" json:"provider,omitempty"`
	ProviderID   string    `gorm:"size:255;index:idx_user_provider" json:"-"`
	CreatedAt    time.Time `gorm:"not null;default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:current_timestamp;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// PasswordReset is a single-use reset token. Tokens expire and are consumed
// on first successful use.
type PasswordReset struct {
	ID        uint       `gorm:"primaryKey" json:"-"`
	UserID    uint       `gorm:"not null;index" json:"-"`
	Token     string     `gorm:"size:64;not null;uniqueIndex:idx_password_reset_token" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"-"`
	UsedAt    *time.Time `json:"-"`
	CreatedAt time.Time  `gorm:"not null;default:current_timestamp" json:"-"`
}

func (PasswordReset) TableName() string {
	return "password_resets"
}

type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

// AuthResult pairs the authenticated user with a signed access token.
type AuthResult struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type ChangePasswordInput struct {
	UserID          uint
	CurrentPassword string
	NewPassword     string
}

type UpdateProfileInput struct {
	Name  *string
	Email *string
}
