package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"go.uber.org/zap"

	"toodoo/internal/core/auth"
	coremail "toodoo/internal/core/mail"
	"toodoo/internal/domain"
	"toodoo/internal/repo"
	"toodoo/pkg/utils"
)

const (
	minPasswordLen = 8
	resetTokenTTL  = time.Hour
)

type AuthService struct {
	users    domain.UserRepository
	jwter    *auth.JWTer
	mailer   coremail.Mailer
	resetURL string
	log      *zap.Logger
}

func NewAuthService(users domain.UserRepository, jwter *auth.JWTer, mailer coremail.Mailer, resetURL string, log *zap.Logger) *AuthService {
	return &AuthService{users: users, jwter: jwter, mailer: mailer, resetURL: resetURL, log: log}
}

// Session is what a successful signup or login hands back.
type Session struct {
	Token string
	User  *domain.User
}

func (s *AuthService) Signup(ctx context.Context, name, email, password, confirm string) (*Session, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))

	if name == "" {
		return nil, domain.Validation("name is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domain.Validation("invalid email address")
	}
	if len(password) < minPasswordLen {
		return nil, domain.Validation("password must be at least 8 characters")
	}
	if password != confirm {
		return nil, domain.Validation("passwords do not match")
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.Storage("lookup user", err)
	}
	if existing != nil {
		return nil, domain.Conflict("email already registered")
	}

	u := &domain.User{
		ID:           utils.NewID(),
		Email:        email,
		Name:         name,
		PasswordHash: utils.HashPassword(password),
		Bio:          domain.DefaultBio,
		Avatar:       domain.DefaultAvatar,
	}
	if err := s.users.Create(ctx, u); err != nil {
		// Two concurrent signups can both pass the lookup; the unique
		// index decides.
		if repo.IsDupKey(err) {
			return nil, domain.Conflict("email already registered")
		}
		return nil, domain.Storage("create user", err)
	}
	return s.session(u)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.Storage("lookup user", err)
	}
	// Same answer for unknown email and wrong password.
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return nil, domain.Unauthorized("invalid email or password")
	}
	return s.session(u)
}

// RequestReset always succeeds from the caller's point of view: the answer
// must not reveal whether the address is registered.
func (s *AuthService) RequestReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return domain.Storage("lookup user", err)
	}
	if u == nil {
		return nil
	}

	t := &domain.ResetToken{
		Token:     utils.NewResetToken(),
		UserID:    u.ID,
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := s.users.CreateResetToken(ctx, t); err != nil {
		return domain.Storage("store reset token", err)
	}

	link := fmt.Sprintf("%s?token=%s", s.resetURL, t.Token)
	body := "A password reset was requested for your account.\n\n" +
		"Open this link to choose a new password (valid for 1 hour):\n\n" + link +
		"\n\nIf you did not request this, ignore this email."
	if err := s.mailer.Send(u.Email, "Reset your password", body); err != nil {
		s.log.Error("reset mail send failed", zap.Error(err))
		return domain.Storage("could not send reset email", err)
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < minPasswordLen {
		return domain.Validation("password must be at least 8 characters")
	}
	t, err := s.users.FindResetToken(ctx, token)
	if err != nil {
		return domain.Storage("lookup reset token", err)
	}
	if t == nil || t.UsedAt != nil || time.Now().After(t.ExpiresAt) {
		return domain.Validation("invalid or expired reset token")
	}

	if _, err := s.users.UpdateFields(ctx, t.UserID, map[string]any{
		"password_hash": utils.HashPassword(newPassword),
	}); err != nil {
		return domain.Storage("update password", err)
	}
	if err := s.users.ConsumeResetToken(ctx, token); err != nil {
		return domain.Storage("consume reset token", err)
	}
	return nil
}

func (s *AuthService) session(u *domain.User) (*Session, error) {
	tok, err := s.jwter.Issue(u.ID)
	if err != nil {
		return nil, domain.Storage("issue token", err)
	}
	return &Session{Token: tok, User: u}, nil
}
