package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"toodoo/internal/core/auth"
	"toodoo/internal/domain"
	"toodoo/internal/repo"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.ResetToken{},
		&domain.PersonalTask{},
		&domain.List{},
		&domain.ListMember{},
		&domain.CollabTask{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// recordingMailer captures outbound mail instead of delivering it.
type recordingMailer struct {
	to      []string
	bodies  []string
	sendErr error
}

func (m *recordingMailer) Send(to, subject, body string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.to = append(m.to, to)
	m.bodies = append(m.bodies, body)
	return nil
}

// resetTokenFromBody digs the token out of a captured reset mail.
func resetTokenFromBody(t *testing.T, body string) string {
	t.Helper()
	i := strings.Index(body, "token=")
	if i < 0 {
		t.Fatalf("no token in mail body: %q", body)
	}
	token := body[i+len("token="):]
	if j := strings.IndexAny(token, " \n"); j >= 0 {
		token = token[:j]
	}
	return token
}

type env struct {
	db     *gorm.DB
	auth   *AuthService
	users  *UserService
	tasks  *TaskService
	collab *CollabService
	mailer *recordingMailer
}

func setupEnv(t *testing.T) *env {
	t.Helper()
	db := setupTestDB(t)
	jwter := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: time.Hour}
	mailer := &recordingMailer{}

	userRepo := repo.NewUserRepo(db)
	listRepo := repo.NewListRepo(db)
	collabSvc := NewCollabService(listRepo, userRepo)

	return &env{
		db:     db,
		auth:   NewAuthService(userRepo, jwter, mailer, "http://test/reset", zap.NewNop()),
		users:  NewUserService(userRepo, nil),
		tasks:  NewTaskService(repo.NewPersonalTaskRepo(db), repo.NewCollabTaskRepo(db), collabSvc),
		collab: collabSvc,
		mailer: mailer,
	}
}

func (e *env) signup(t *testing.T, name, email string) *domain.User {
	t.Helper()
	s, err := e.auth.Signup(context.Background(), name, email, "password123", "password123")
	if err != nil {
		t.Fatalf("signup %s: %v", email, err)
	}
	return s.User
}

func wantKind(t *testing.T, err error, k domain.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error of kind %v, got nil", k)
	}
	if got := domain.KindOf(err); got != k {
		t.Fatalf("error kind = %v (%v), want %v", got, err, k)
	}
}
