package domain

import (
	"context"
	"time"
)

type List struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	OwnerID   string    `gorm:"size:36;index;not null" json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (List) TableName() string { return "lists" }

// ListMember is one row of the list→user relation. The composite unique
// index is the authoritative guard against duplicate membership; the
// autoincrement id preserves order of addition.
type ListMember struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	ListID    string `gorm:"size:36;uniqueIndex:idx_list_user;not null"`
	UserID    string `gorm:"size:36;uniqueIndex:idx_list_user;index;not null"`
	CreatedAt time.Time
}

func (ListMember) TableName() string { return "list_members" }

// Member is the projection returned by the members endpoint.
type Member struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

type ListRepository interface {
	// Create stores the list and its owner membership in one transaction.
	Create(ctx context.Context, l *List) error
	FindByID(ctx context.Context, id string) (*List, error)
	// VisibleTo returns lists the user owns and lists shared with them.
	VisibleTo(ctx context.Context, userID string) (owned, shared []List, err error)
	// AddMember relies on the unique index to reject duplicates.
	AddMember(ctx context.Context, listID, userID string) error
	// RemoveMember reports the number of rows removed (0 when absent).
	RemoveMember(ctx context.Context, listID, userID string) (int64, error)
	IsMember(ctx context.Context, listID, userID string) (bool, error)
	Members(ctx context.Context, listID string) ([]Member, error)
}
