package service

import (
	"context"
	"net/mail"
	"strings"

	"toodoo/internal/domain"
	"toodoo/internal/repo"
	"toodoo/pkg/utils"
)

// CollabService owns the list→members relation and answers every "may this
// subject touch this list" question.
type CollabService struct {
	lists domain.ListRepository
	users domain.UserRepository
}

func NewCollabService(lists domain.ListRepository, users domain.UserRepository) *CollabService {
	return &CollabService{lists: lists, users: users}
}

func (s *CollabService) CreateList(ctx context.Context, ownerID, name string) (*domain.List, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Validation("list name is required")
	}
	l := &domain.List{ID: utils.NewID(), Name: name, OwnerID: ownerID}
	if err := s.lists.Create(ctx, l); err != nil {
		return nil, domain.Storage("create list", err)
	}
	return l, nil
}

func (s *CollabService) Visible(ctx context.Context, uid string) (owned, shared []domain.List, err error) {
	owned, shared, err = s.lists.VisibleTo(ctx, uid)
	if err != nil {
		return nil, nil, domain.Storage("list lists", err)
	}
	if owned == nil {
		owned = []domain.List{}
	}
	if shared == nil {
		shared = []domain.List{}
	}
	return owned, shared, nil
}

// Authorize verifies the list exists and the subject belongs to it. The
// owner always counts as a member.
func (s *CollabService) Authorize(ctx context.Context, listID, uid string) (*domain.List, error) {
	l, err := s.lists.FindByID(ctx, listID)
	if err != nil {
		return nil, domain.Storage("lookup list", err)
	}
	if l == nil {
		return nil, domain.NotFound("list not found")
	}
	if l.OwnerID == uid {
		return l, nil
	}
	ok, err := s.lists.IsMember(ctx, listID, uid)
	if err != nil {
		return nil, domain.Storage("check membership", err)
	}
	if !ok {
		return nil, domain.Forbidden("not a member of this list")
	}
	return l, nil
}

func (s *CollabService) Members(ctx context.Context, listID, uid string) ([]domain.Member, error) {
	if _, err := s.Authorize(ctx, listID, uid); err != nil {
		return nil, err
	}
	ms, err := s.lists.Members(ctx, listID)
	if err != nil {
		return nil, domain.Storage("list members", err)
	}
	return ms, nil
}

func (s *CollabService) AddMember(ctx context.Context, requesterID, listID, email string) error {
	l, err := s.lists.FindByID(ctx, listID)
	if err != nil {
		return domain.Storage("lookup list", err)
	}
	if l == nil {
		return domain.NotFound("list not found")
	}
	if l.OwnerID != requesterID {
		return domain.Forbidden("only the list owner can add members")
	}

	email = strings.TrimSpace(strings.ToLower(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.Validation("invalid email address")
	}
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return domain.Storage("lookup user", err)
	}
	if u == nil {
		return domain.NotFound("user not found")
	}

	// Fast path for a friendly message; the unique index on
	// (list_id,user_id) is the authoritative guard.
	ok, err := s.lists.IsMember(ctx, listID, u.ID)
	if err != nil {
		return domain.Storage("check membership", err)
	}
	if ok {
		return domain.Conflict("already a member")
	}
	if err := s.lists.AddMember(ctx, listID, u.ID); err != nil {
		if repo.IsDupKey(err) {
			return domain.Conflict("already a member")
		}
		return domain.Storage("add member", err)
	}
	return nil
}

// RemoveMember is owner-only and idempotent: removing an absent member is a
// no-op. The owner themselves can never be removed.
func (s *CollabService) RemoveMember(ctx context.Context, requesterID, listID, targetUserID string) error {
	l, err := s.lists.FindByID(ctx, listID)
	if err != nil {
		return domain.Storage("lookup list", err)
	}
	if l == nil {
		return domain.NotFound("list not found")
	}
	if l.OwnerID != requesterID {
		return domain.Forbidden("only the list owner can remove members")
	}
	if targetUserID == l.OwnerID {
		return domain.Forbidden("the owner cannot be removed")
	}
	if _, err := s.lists.RemoveMember(ctx, listID, targetUserID); err != nil {
		return domain.Storage("remove member", err)
	}
	return nil
}
