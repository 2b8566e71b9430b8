package model

import (
	"encoding/json"
	"testing"
)

func TestBookUnmarshalNumericID(t *testing.T) {
	var b Book
	if err := json.Unmarshal([]byte(`{"id":42,"title":"The Hobbit","author":"Tolkien"}`), &b); err != nil {
		t.Fatalf("Unmarshal() unexpected error: %v", err)
	}
	if b.ID != "42" {
		t.Errorf("ID = %q, want %q", b.ID, "42")
	}
	if b.Title != "The Hobbit" || b.Author != "Tolkien" {
		t.Errorf("unexpected book: %+v", b)
	}
}

func TestBookUnmarshalMongoID(t *testing.T) {
	var b Book
	if err := json.Unmarshal([]byte(`{"_id":"65f0c1","title":"Dune","author":"Herbert","description":"spice"}`), &b); err != nil {
		t.Fatalf("Unmarshal() unexpected error: %v", err)
	}
	if b.ID != "65f0c1" {
		t.Errorf("ID = %q, want %q", b.ID, "65f0c1")
	}
	if b.Description != "spice" {
		t.Errorf("Description = %q, want %q", b.Description, "spice")
	}
}

func TestCursorWithSearchResetsPage(t *testing.T) {
	c := NewCursor("Hobbit", 3, 5)

	same := c.WithSearch("Hobbit")
	if same.Page != 3 {
		t.Errorf("unchanged search Page = %d, want 3", same.Page)
	}

	changed := c.WithSearch("Dune")
	if changed.Page != 1 {
		t.Errorf("changed search Page = %d, want 1", changed.Page)
	}
	if changed.Search != "Dune" || changed.Limit != 5 {
		t.Errorf("unexpected cursor: %+v", changed)
	}
}

func TestCursorPaging(t *testing.T) {
	c := NewCursor("", 0, 5)
	if c.Page != 1 {
		t.Fatalf("NewCursor() Page = %d, want 1", c.Page)
	}
	if got := c.Prev().Page; got != 1 {
		t.Errorf("Prev() Page = %d, want 1", got)
	}
	if got := c.Next().Next().Prev().Page; got != 2 {
		t.Errorf("Next().Next().Prev() Page = %d, want 2", got)
	}
}

func TestCursorHasMore(t *testing.T) {
	c := NewCursor("Hobbit", 1, 5)
	if !c.HasMore(5) {
		t.Error("HasMore(5) = false, want true for a full page")
	}
	if c.Next().HasMore(2) {
		t.Error("HasMore(2) = true, want false for a short page")
	}
	if c.HasMore(0) {
		t.Error("HasMore(0) = true, want false")
	}
}

func TestProfileMemberSince(t *testing.T) {
	p := Profile{CreatedAt: "2024-03-01T10:00:00.000Z"}
	got, ok := p.MemberSince()
	if !ok {
		t.Fatal("MemberSince() ok = false, want true")
	}
	if got.Format("2006-01-02") != "2024-03-01" {
		t.Errorf("MemberSince() = %v, want 2024-03-01", got)
	}

	if _, ok := (Profile{CreatedAt: "yesterday"}).MemberSince(); ok {
		t.Error("MemberSince() ok = true for unparseable value")
	}
}

func TestUserResponseProfile(t *testing.T) {
	var u UserResponse
	if err := json.Unmarshal([]byte(`{"id":7,"username":"bilbo","email":"b@shire.me"}`), &u); err != nil {
		t.Fatalf("Unmarshal() unexpected error: %v", err)
	}
	p := u.Profile()
	if p.ID != "7" || p.Name != "bilbo" || p.Email != "b@shire.me" {
		t.Errorf("Profile() = %+v", p)
	}
	if p.Unverified() {
		t.Error("Profile() from API reported as unverified")
	}
}
