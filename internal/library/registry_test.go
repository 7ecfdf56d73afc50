package library

import (
	"errors"
	"testing"
)

func newRegistryLib(id string) *Library {
	return New(Options{ID: id, Store: &fakeStore{}, Notifier: &fakeNotifier{}, Provider: &fakeProvider{}})
}

func TestRegistry_ResolveExact(t *testing.T) {
	reg := NewRegistry()
	main := newRegistryLib("main")
	kids := newRegistryLib("kids")
	reg.Register(main)
	reg.Register(kids)

	got, err := reg.Resolve("kids")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != kids {
		t.Fatalf("expected kids instance, got %q", got.ID)
	}
}

func TestRegistry_ResolveFallback(t *testing.T) {
	reg := NewRegistry()
	reg.Register(newRegistryLib("zeta"))
	reg.Register(newRegistryLib("alpha"))

	for _, id := range []string{"", "unknown"} {
		got, err := reg.Resolve(id)
		if err != nil {
			t.Fatalf("resolve %q: %v", id, err)
		}
		if got.ID != "alpha" {
			t.Fatalf("resolve %q: expected deterministic fallback to alpha, got %q", id, got.ID)
		}
	}
}

func TestRegistry_ResolveEmpty(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.Resolve("any"); !errors.Is(err, ErrNoLibrary) {
		t.Fatalf("expected ErrNoLibrary, got %v", err)
	}
}

func TestRegistry_Deregister(t *testing.T) {
	reg := NewRegistry()
	reg.Register(newRegistryLib("main"))
	reg.Deregister("main")
	if _, err := reg.Resolve("main"); !errors.Is(err, ErrNoLibrary) {
		t.Fatalf("expected ErrNoLibrary after deregister, got %v", err)
	}
}
