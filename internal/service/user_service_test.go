package service

import (
	"context"
	"testing"

	"toodoo/internal/domain"
)

func TestProfileRoundTrip(t *testing.T) {
	e := setupEnv(t)
	ctx := context.Background()
	u := e.signup(t, "Alice", "alice@example.com")

	p, err := e.users.Profile(ctx, u.ID)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if p.Name != "Alice" || p.Email != "alice@example.com" {
		t.Errorf("profile = %+v", p)
	}
	if p.Bio != domain.DefaultBio || p.Avatar != domain.DefaultAvatar {
		t.Errorf("defaults not applied: %+v", p)
	}
}

func TestUpdateProfile(t *testing.T) {
	e := setupEnv(t)
	ctx := context.Background()
	u := e.signup(t, "Alice", "alice@example.com")

	// Empty patch is rejected before any storage call.
	_, err := e.users.UpdateProfile(ctx, u.ID, ProfilePatch{})
	wantKind(t, err, domain.KindValidation)

	_, err = e.users.UpdateProfile(ctx, u.ID, ProfilePatch{Email: strptr("not-an-email")})
	wantKind(t, err, domain.KindValidation)

	n, err := e.users.UpdateProfile(ctx, u.ID, ProfilePatch{
		Bio:    strptr("gopher"),
		Avatar: strptr("avatar-07"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if n != 1 {
		t.Errorf("updated = %d, want 1", n)
	}
	p, err := e.users.Profile(ctx, u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if p.Bio != "gopher" || p.Avatar != "avatar-07" {
		t.Errorf("profile after update = %+v", p)
	}
}

func TestUpdateProfileEmailConflict(t *testing.T) {
	e := setupEnv(t)
	ctx := context.Background()
	e.signup(t, "Alice", "alice@example.com")
	bob := e.signup(t, "Bob", "bob@example.com")

	_, err := e.users.UpdateProfile(ctx, bob.ID, ProfilePatch{Email: strptr("alice@example.com")})
	wantKind(t, err, domain.KindConflict)
}

func TestChangePassword(t *testing.T) {
	e := setupEnv(t)
	ctx := context.Background()
	u := e.signup(t, "Alice", "alice@example.com")

	err := e.users.ChangePassword(ctx, u.ID, "wrongwrong", "newpassword1")
	wantKind(t, err, domain.KindUnauthorized)

	err = e.users.ChangePassword(ctx, u.ID, "password123", "short")
	wantKind(t, err, domain.KindValidation)

	if err := e.users.ChangePassword(ctx, u.ID, "password123", "newpassword1"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, err := e.auth.Login(ctx, "alice@example.com", "newpassword1"); err != nil {
		t.Fatalf("login after change: %v", err)
	}
}

func TestDeleteAccountCascades(t *testing.T) {
	e := setupEnv(t)
	ctx := context.Background()
	alice := e.signup(t, "Alice", "alice@example.com")
	bob := e.signup(t, "Bob", "bob@example.com")

	if _, err := e.tasks.CreatePersonal(ctx, alice.ID, TaskInput{Name: "mine"}); err != nil {
		t.Fatal(err)
	}
	l := e.createList(t, alice.ID, "Trip")
	if err := e.collab.AddMember(ctx, alice.ID, l.ID, "bob@example.com"); err != nil {
		t.Fatal(err)
	}
	if _, err := e.tasks.CreateCollab(ctx, bob.ID, l.ID, TaskInput{Name: "shared"}); err != nil {
		t.Fatal(err)
	}

	n, err := e.users.DeleteAccount(ctx, alice.ID)
	if err != nil {
		t.Fatalf("delete account: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted = %d, want 1", n)
	}

	// The user, their tasks, their lists and the lists' contents are gone.
	var users, tasks, lists, members, collabTasks int64
	e.db.Model(&domain.User{}).Where("id = ?", alice.ID).Count(&users)
	e.db.Model(&domain.PersonalTask{}).Where("user_id = ?", alice.ID).Count(&tasks)
	e.db.Model(&domain.List{}).Where("owner_id = ?", alice.ID).Count(&lists)
	e.db.Model(&domain.ListMember{}).Where("list_id = ?", l.ID).Count(&members)
	e.db.Model(&domain.CollabTask{}).Where("list_id = ?", l.ID).Count(&collabTasks)
	if users+tasks+lists+members+collabTasks != 0 {
		t.Errorf("cascade left rows behind: users=%d tasks=%d lists=%d members=%d collabTasks=%d",
			users, tasks, lists, members, collabTasks)
	}

	// Bob is untouched.
	if _, err := e.users.Profile(ctx, bob.ID); err != nil {
		t.Errorf("bob's profile gone: %v", err)
	}

	_, err = e.users.DeleteAccount(ctx, alice.ID)
	wantKind(t, err, domain.KindNotFound)
}
