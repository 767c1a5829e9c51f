package domain

import (
	"context"
	"time"
)

const (
	DefaultBio    = "insert bio here"
	DefaultAvatar = "avatar-01"
)

type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"user_id"`
	Email        string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	Name         string    `gorm:"size:64;not null" json:"name"`
	PasswordHash string    `gorm:"size:191;not null" json:"-"`
	Bio          string    `gorm:"size:512" json:"bio"`
	Avatar       string    `gorm:"column:profile_picture;size:255" json:"profile_picture"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"-"`
}

func (User) TableName() string { return "users" }

// ResetToken is a single-use credential mailed out for password resets.
type ResetToken struct {
	Token     string    `gorm:"primaryKey;size:64"`
	UserID    string    `gorm:"size:36;index;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	UsedAt    *time.Time
	CreatedAt time.Time
}

func (ResetToken) TableName() string { return "reset_tokens" }

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	// UpdateFields applies an allow-listed partial update and reports the
	// number of affected rows.
	UpdateFields(ctx context.Context, id string, fields map[string]any) (int64, error)
	// Delete removes the user and everything they own: personal tasks,
	// owned lists with their members and tasks, memberships, reset tokens.
	Delete(ctx context.Context, id string) (int64, error)

	CreateResetToken(ctx context.Context, t *ResetToken) error
	FindResetToken(ctx context.Context, token string) (*ResetToken, error)
	ConsumeResetToken(ctx context.Context, token string) error
}
