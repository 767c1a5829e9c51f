package service

import (
	"context"
	"testing"

	"toodoo/internal/domain"
)

func (e *env) createList(t *testing.T, ownerID, name string) *domain.List {
	t.Helper()
	l, err := e.collab.CreateList(context.Background(), ownerID, name)
	if err != nil {
		t.Fatalf("create list: %v", err)
	}
	return l
}

func TestCreateListValidation(t *testing.T) {
	e := setupEnv(t)
	u := e.signup(t, "Alice", "alice@example.com")
	_, err := e.collab.CreateList(context.Background(), u.ID, "  ")
	wantKind(t, err, domain.KindValidation)
}

func TestOwnerIsMemberOfOwnList(t *testing.T) {
	e := setupEnv(t)
	ctx := context.Background()
	alice := e.signup(t, "Alice", "alice@example.com")
	l := e.createList(t, alice.ID, "Trip")

	if _, err := e.collab.Authorize(ctx, l.ID, alice.ID); err != nil {
		t.Fatalf("owner not authorized on own list: %v", err)
	}
	ms, err := e.collab.Members(ctx, l.ID, alice.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(ms) != 1 || ms[0].UserID != alice.ID {
		t.Fatalf("member set = %+v, want just the owner", ms)
	}
}

// Scenario: Alice shares "Trip" with Bob; Bob can read it, Carol cannot.
func TestMembershipAuthorization(t *testing.T) {
	e := setupEnv(t)
	ctx := context.Background()
	alice := e.signup(t, "Alice", "alice@example.com")
	bob := e.signup(t, "Bob", "bob@example.com")
	carol := e.signup(t, "Carol", "carol@example.com")
	l := e.createList(t, alice.ID, "Trip")

	if err := e.collab.AddMember(ctx, alice.ID, l.ID, "bob@example.com"); err != nil {
		t.Fatalf("add member: %v", err)
	}

	if _, err := e.tasks.ListCollab(ctx, bob.ID, l.ID, ""); err != nil {
		t.Fatalf("member cannot list tasks: %v", err)
	}

	// Every collaborative operation fails for the non-member.
	_, err := e.tasks.ListCollab(ctx, carol.ID, l.ID, "")
	wantKind(t, err, domain.KindForbidden)
	_, err = e.tasks.CreateCollab(ctx, carol.ID, l.ID, TaskInput{Name: "sneaky"})
	wantKind(t, err, domain.KindForbidden)
	_, err = e.collab.Members(ctx, l.ID, carol.ID)
	wantKind(t, err, domain.KindForbidden)

	task, err := e.tasks.CreateCollab(ctx, bob.ID, l.ID, TaskInput{Name: "book hotel"})
	if err != nil {
		t.Fatal(err)
	}
	_, err = e.tasks.UpdateCollab(ctx, carol.ID, task.ID, TaskPatch{Status: strptr(domain.StatusDone)})
	wantKind(t, err, domain.KindForbidden)
	_, err = e.tasks.SoftDeleteCollab(ctx, carol.ID, task.ID)
	wantKind(t, err, domain.KindForbidden)
	_, err = e.tasks.UndoCollab(ctx, carol.ID, task.ID)
	wantKind(t, err, domain.KindForbidden)
}

func TestAddMemberRules(t *testing.T) {
	e := setupEnv(t)
	ctx := context.Background()
	alice := e.signup(t, "Alice", "alice@example.com")
	bob := e.signup(t, "Bob", "bob@example.com")
	e.signup(t, "Carol", "carol@example.com")
	l := e.createList(t, alice.ID, "Trip")

	// Only the owner may add.
	err := e.collab.AddMember(ctx, bob.ID, l.ID, "carol@example.com")
	wantKind(t, err, domain.KindForbidden)

	// Unknown users cannot be added.
	err = e.collab.AddMember(ctx, alice.ID, l.ID, "ghost@example.com")
	wantKind(t, err, domain.KindNotFound)

	if err := e.collab.AddMember(ctx, alice.ID, l.ID, "bob@example.com"); err != nil {
		t.Fatalf("add member: %v", err)
	}

	// Adding twice conflicts and leaves the member set unchanged.
	err = e.collab.AddMember(ctx, alice.ID, l.ID, "bob@example.com")
	wantKind(t, err, domain.KindConflict)

	ms, err := e.collab.Members(ctx, l.ID, alice.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(ms) != 2 {
		t.Fatalf("member count = %d, want 2", len(ms))
	}
	// Order of addition is preserved: owner first, then Bob.
	if ms[0].UserID != alice.ID || ms[1].UserID != bob.ID {
		t.Errorf("member order = %+v", ms)
	}
}

func TestRemoveMemberRules(t *testing.T) {
	e := setupEnv(t)
	ctx := context.Background()
	alice := e.signup(t, "Alice", "alice@example.com")
	bob := e.signup(t, "Bob", "bob@example.com")
	l := e.createList(t, alice.ID, "Trip")
	if err := e.collab.AddMember(ctx, alice.ID, l.ID, "bob@example.com"); err != nil {
		t.Fatal(err)
	}

	// The owner can never be removed, not even by themselves.
	err := e.collab.RemoveMember(ctx, alice.ID, l.ID, alice.ID)
	wantKind(t, err, domain.KindForbidden)

	// Non-owners cannot remove anyone.
	err = e.collab.RemoveMember(ctx, bob.ID, l.ID, bob.ID)
	wantKind(t, err, domain.KindForbidden)

	if err := e.collab.RemoveMember(ctx, alice.ID, l.ID, bob.ID); err != nil {
		t.Fatalf("remove member: %v", err)
	}
	_, err = e.tasks.ListCollab(ctx, bob.ID, l.ID, "")
	wantKind(t, err, domain.KindForbidden)

	// Removing an absent member is an idempotent no-op.
	if err := e.collab.RemoveMember(ctx, alice.ID, l.ID, bob.ID); err != nil {
		t.Fatalf("second remove should be a no-op: %v", err)
	}

	ms, err := e.collab.Members(ctx, l.ID, alice.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(ms) != 1 || ms[0].UserID != alice.ID {
		t.Fatalf("owner missing from member set: %+v", ms)
	}
}

func TestVisiblePartition(t *testing.T) {
	e := setupEnv(t)
	ctx := context.Background()
	alice := e.signup(t, "Alice", "alice@example.com")
	bob := e.signup(t, "Bob", "bob@example.com")

	trip := e.createList(t, alice.ID, "Trip")
	chores := e.createList(t, bob.ID, "Chores")
	if err := e.collab.AddMember(ctx, bob.ID, chores.ID, "alice@example.com"); err != nil {
		t.Fatal(err)
	}

	owned, shared, err := e.collab.Visible(ctx, alice.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(owned) != 1 || owned[0].ID != trip.ID {
		t.Errorf("owned = %+v, want just %s", owned, trip.ID)
	}
	if len(shared) != 1 || shared[0].ID != chores.ID {
		t.Errorf("shared = %+v, want just %s", shared, chores.ID)
	}

	// Carol has nothing; both partitions are empty but present.
	carol := e.signup(t, "Carol", "carol@example.com")
	owned, shared, err = e.collab.Visible(ctx, carol.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(owned) != 0 || len(shared) != 0 {
		t.Errorf("carol sees owned=%d shared=%d, want 0/0", len(owned), len(shared))
	}
}

func TestCollabTaskLifecycle(t *testing.T) {
	e := setupEnv(t)
	ctx := context.Background()
	alice := e.signup(t, "Alice", "alice@example.com")
	bob := e.signup(t, "Bob", "bob@example.com")
	l := e.createList(t, alice.ID, "Trip")
	if err := e.collab.AddMember(ctx, alice.ID, l.ID, "bob@example.com"); err != nil {
		t.Fatal(err)
	}

	task, err := e.tasks.CreateCollab(ctx, bob.ID, l.ID, TaskInput{Name: "book hotel"})
	if err != nil {
		t.Fatal(err)
	}
	if task.CreatedBy != bob.ID || task.ListID != l.ID {
		t.Errorf("task ownership: %+v", task)
	}

	// Any member may delete and any member may undo.
	snapshot, err := e.tasks.SoftDeleteCollab(ctx, alice.ID, task.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if snapshot.Name != "book hotel" {
		t.Errorf("snapshot = %+v", snapshot)
	}
	ts, err := e.tasks.ListCollab(ctx, bob.ID, l.ID, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(ts) != 0 {
		t.Error("tombstoned task still listed")
	}
	if _, err := e.tasks.UndoCollab(ctx, bob.ID, task.ID); err != nil {
		t.Fatalf("undo: %v", err)
	}
	ts, err = e.tasks.ListCollab(ctx, bob.ID, l.ID, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(ts) != 1 {
		t.Error("restored task missing")
	}
}
