package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"gorm.io/gorm"

	"toodoo/internal/core/cache"
	"toodoo/internal/domain"
	"toodoo/internal/repo"
	"toodoo/pkg/utils"
)

const profileTTL = 5 * time.Minute

type UserService struct {
	users domain.UserRepository
	cache *cache.Cache // nil when redis is not configured
}

func NewUserService(users domain.UserRepository, c *cache.Cache) *UserService {
	return &UserService{users: users, cache: c}
}

type Profile struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Bio    string `json:"bio"`
	Avatar string `json:"profile_picture"`
}

// ProfilePatch holds the allow-listed mutable profile fields; nil means
// "not supplied". Arbitrary client keys never reach the storage layer.
type ProfilePatch struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Bio    *string `json:"bio"`
	Avatar *string `json:"profile_picture"`
}

func profileKey(uid string) string { return "profile:" + uid }

func (s *UserService) Profile(ctx context.Context, uid string) (*Profile, error) {
	load := func(ctx context.Context) (*Profile, error) {
		u, err := s.users.FindByID(ctx, uid)
		if err != nil {
			return nil, domain.Storage("lookup user", err)
		}
		if u == nil {
			return nil, domain.NotFound("user not found")
		}
		return &Profile{Name: u.Name, Email: u.Email, Bio: u.Bio, Avatar: u.Avatar}, nil
	}
	if s.cache == nil {
		return load(ctx)
	}
	p, err := cache.GetOrLoadJSON[Profile](s.cache, ctx, profileKey(uid), profileTTL, load)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound("user not found")
	}
	return p, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, uid string, patch ProfilePatch) (int64, error) {
	fields := map[string]any{}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return 0, domain.Validation("name must not be empty")
		}
		fields["name"] = name
	}
	if patch.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*patch.Email))
		if _, err := mail.ParseAddress(email); err != nil {
			return 0, domain.Validation("invalid email address")
		}
		fields["email"] = email
	}
	if patch.Bio != nil {
		fields["bio"] = *patch.Bio
	}
	if patch.Avatar != nil {
		fields["profile_picture"] = *patch.Avatar
	}
	if len(fields) == 0 {
		return 0, domain.Validation("no fields to update")
	}

	n, err := s.users.UpdateFields(ctx, uid, fields)
	if err != nil {
		if repo.IsDupKey(err) {
			return 0, domain.Conflict("email already in use")
		}
		return 0, domain.Storage("update profile", err)
	}
	if n == 0 {
		return 0, domain.NotFound("user not found")
	}
	s.invalidate(ctx, uid)
	return n, nil
}

func (s *UserService) ChangePassword(ctx context.Context, uid, oldPassword, newPassword string) error {
	if len(newPassword) < minPasswordLen {
		return domain.Validation("password must be at least 8 characters")
	}
	u, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return domain.Storage("lookup user", err)
	}
	if u == nil {
		return domain.NotFound("user not found")
	}
	if !utils.CheckPassword(oldPassword, u.PasswordHash) {
		return domain.Unauthorized("incorrect password")
	}
	if _, err := s.users.UpdateFields(ctx, uid, map[string]any{
		"password_hash": utils.HashPassword(newPassword),
	}); err != nil {
		return domain.Storage("update password", err)
	}
	s.invalidate(ctx, uid)
	return nil
}

func (s *UserService) DeleteAccount(ctx context.Context, uid string) (int64, error) {
	n, err := s.users.Delete(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, domain.NotFound("user not found")
		}
		return 0, domain.Storage("delete account", err)
	}
	s.invalidate(ctx, uid)
	return n, nil
}

func (s *UserService) invalidate(ctx context.Context, uid string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, profileKey(uid))
	}
}
