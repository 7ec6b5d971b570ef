package definition

import (
	"errors"
	"testing"
)

func TestRegisterAndLookup(t *testing.T) {
	reg := NewRegistry[int]("number")
	if err := reg.Register("one", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := reg.Register("two", 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := reg.Lookup("two")
	if err != nil || got != 2 {
		t.Errorf("Expected 2, got %d (%v)", got, err)
	}
	names := reg.Names()
	if len(names) != 2 || names[0] != "one" || names[1] != "two" {
		t.Errorf("Expected registration order, got %v", names)
	}
}

func TestDuplicateRegistrationFails(t *testing.T) {
	reg := NewRegistry[string]("tile")
	if err := reg.Register("Floor", "a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := reg.Register("Floor", "b"); err == nil {
		t.Error("Expected duplicate registration error")
	}
	if err := reg.Register("", "c"); err == nil {
		t.Error("Expected empty name error")
	}
}

func TestLookupMissingReturnsNotFound(t *testing.T) {
	reg := NewRegistry[string]("motif")
	_, err := reg.Lookup("Nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Kind != "motif" || nf.Name != "Nope" {
		t.Errorf("Expected NotFoundError{motif, Nope}, got %+v", nf)
	}
}

func TestRemove(t *testing.T) {
	reg := NewRegistry[int]("number")
	_ = reg.Register("one", 1)
	_ = reg.Register("two", 2)
	reg.Remove("one")
	reg.Remove("missing")

	if reg.Has("one") || reg.Len() != 1 {
		t.Error("Expected one to be removed")
	}
	if names := reg.Names(); len(names) != 1 || names[0] != "two" {
		t.Errorf("Expected [two], got %v", names)
	}
}

func TestReset(t *testing.T) {
	reg := NewRegistry[int]("number")
	_ = reg.Register("one", 1)
	reg.Reset()
	if reg.Len() != 0 || reg.Has("one") {
		t.Error("Expected empty registry after reset")
	}
}
