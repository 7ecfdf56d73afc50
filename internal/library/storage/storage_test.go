package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/example/dvd-catalog/internal/library"
)

var (
	_ library.Store = (*Memory)(nil)
	_ library.Store = (*SQLite)(nil)
	_ library.Store = (*Postgres)(nil)
)

func TestMemory_RoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	items, err := m.Load(ctx)
	if err != nil || items != nil {
		t.Fatalf("fresh store should load (nil, nil), got %v, %v", items, err)
	}

	box := 3
	in := []library.Item{
		{Title: "Dune", Year: "1984", ImdbID: "tt0087182", Box: &box},
		{Barcode: "5050070"},
	}
	if err := m.Save(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Mutating the caller slice must not leak into the store.
	in[0].Title = "mutated"

	items, err = m.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(items) != 2 || items[0].Title != "Dune" {
		t.Fatalf("unexpected load result: %+v", items)
	}
	if items[0].Box == nil || *items[0].Box != 3 {
		t.Fatalf("box lost in round trip: %v", items[0].Box)
	}
}

func TestMemory_SaveEmptyIsNotAbsent(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	if err := m.Save(ctx, nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	items, err := m.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if items == nil {
		t.Fatal("a saved-empty store should load an empty collection, not absent")
	}
}

func TestSQLite_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.db")

	s, err := OpenSQLite(path, "main")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = s.Close() }()

	items, err := s.Load(ctx)
	if err != nil || items != nil {
		t.Fatalf("fresh db should load (nil, nil), got %v, %v", items, err)
	}

	box := 7
	in := []library.Item{
		{Title: "Alien", Year: "1979", ImdbID: "tt0078748", Box: &box, Director: "Ridley Scott"},
	}
	if err := s.Save(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	// Saving twice exercises the upsert path.
	in[0].AddedBy = "alice"
	if err := s.Save(ctx, in); err != nil {
		t.Fatalf("second save: %v", err)
	}

	items, err = s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(items) != 1 || items[0].AddedBy != "alice" || items[0].Director != "Ridley Scott" {
		t.Fatalf("unexpected load result: %+v", items)
	}
	if items[0].Box == nil || *items[0].Box != 7 {
		t.Fatalf("box lost in round trip: %v", items[0].Box)
	}
}

func TestSQLite_IsolatesLibraries(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.db")

	main, err := OpenSQLite(path, "main")
	if err != nil {
		t.Fatalf("open main: %v", err)
	}
	defer func() { _ = main.Close() }()
	kids, err := OpenSQLite(path, "kids")
	if err != nil {
		t.Fatalf("open kids: %v", err)
	}
	defer func() { _ = kids.Close() }()

	if err := main.Save(ctx, []library.Item{{Title: "Heat"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	items, err := kids.Load(ctx)
	if err != nil || items != nil {
		t.Fatalf("kids library should be empty, got %v, %v", items, err)
	}
}

func TestSQLite_CorruptPayload(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.db")

	s, err := OpenSQLite(path, "main")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = s.Close() }()

	_, err = s.db.ExecContext(ctx, `
INSERT INTO documents (id, version, payload) VALUES (?, ?, ?)`,
		"main", docVersion, []byte("{not json"))
	if err != nil {
		t.Fatalf("seed corrupt row: %v", err)
	}

	if _, err := s.Load(ctx); err == nil {
		t.Fatal("expected decode error for corrupt payload")
	}
}
