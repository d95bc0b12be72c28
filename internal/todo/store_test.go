package todo

import "testing"

func TestCreateAssignsSequentialIDs(t *testing.T) {
	store := NewStore()

	first := store.Create("alice", "first")
	second := store.Create("alice", "second")

	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("ids = %d, %d, want 1, 2", first.ID, second.ID)
	}
	if first.Status != StatusPending {
		t.Errorf("status = %q, want %q", first.Status, StatusPending)
	}
	if first.Owner != "alice" {
		t.Errorf("owner = %q, want %q", first.Owner, "alice")
	}
}

func TestIDsNotReusedAfterDelete(t *testing.T) {
	store := NewStore()
	store.Create("alice", "first")
	second := store.Create("alice", "second")

	if !store.Delete("alice", second.ID) {
		t.Fatal("delete failed")
	}

	third := store.Create("alice", "third")
	if third.ID != 3 {
		t.Fatalf("id after delete = %d, want 3", third.ID)
	}
}

func TestListScopedToOwner(t *testing.T) {
	store := NewStore()
	store.Create("alice", "first")
	store.Create("bob", "intruder")
	store.Create("alice", "second")

	todos := store.ListByOwner("alice")
	if len(todos) != 2 {
		t.Fatalf("len = %d, want 2", len(todos))
	}
	if todos[0].Title != "first" || todos[1].Title != "second" {
		t.Errorf("titles = %q, %q, want creation order", todos[0].Title, todos[1].Title)
	}

	empty := store.ListByOwner("carol")
	if empty == nil || len(empty) != 0 {
		t.Errorf("ListByOwner for unknown owner = %#v, want empty slice", empty)
	}
}

func TestUpdatePatchesOnlyProvidedFields(t *testing.T) {
	store := NewStore()
	created := store.Create("alice", "buy milk")

	status := "completed"
	updated, found := store.Update("alice", created.ID, nil, &status)
	if !found {
		t.Fatal("todo not found")
	}
	if updated.Title != "buy milk" {
		t.Errorf("title = %q, want unchanged %q", updated.Title, "buy milk")
	}
	if updated.Status != "completed" {
		t.Errorf("status = %q, want %q", updated.Status, "completed")
	}

	// 両方 nil でも更新自体は成功する
	same, found := store.Update("alice", created.ID, nil, nil)
	if !found || same.Title != "buy milk" || same.Status != "completed" {
		t.Errorf("no-op update changed the todo: %#v", same)
	}
}

func TestUpdateHidesForeignTodos(t *testing.T) {
	store := NewStore()
	created := store.Create("alice", "buy milk")

	title := "stolen"
	if _, found := store.Update("bob", created.ID, &title, nil); found {
		t.Fatal("expected foreign todo to be invisible")
	}
}

func TestDeleteRemovesTodo(t *testing.T) {
	store := NewStore()
	created := store.Create("alice", "buy milk")

	if !store.Delete("alice", created.ID) {
		t.Fatal("delete failed")
	}
	if store.Delete("alice", created.ID) {
		t.Fatal("second delete should report not found")
	}
	if len(store.ListByOwner("alice")) != 0 {
		t.Error("todo still listed after delete")
	}
}

func TestDeleteHidesForeignTodos(t *testing.T) {
	store := NewStore()
	created := store.Create("alice", "buy milk")

	if store.Delete("bob", created.ID) {
		t.Fatal("expected foreign todo to be invisible")
	}
	if len(store.ListByOwner("alice")) != 1 {
		t.Error("foreign delete removed the todo")
	}
}
