package catalog

import (
	"math/rand/v2"
	"testing"

	"github.com/matzehuels/roomgen/pkg/errors"
)

func tmpl(name string, w, h int, spawn bool, entrances ...Entrance) Template {
	return Template{Name: name, Width: w, Height: h, Spawn: spawn, Entrances: entrances}
}

func testLibrary(t *testing.T) *Library {
	t.Helper()
	lib, err := NewLibrary(
		tmpl("closet", 1, 1, false, Entrance{East, 0}),
		tmpl("corridor", 2, 2, false, Entrance{West, 0}, Entrance{East, 0}),
		tmpl("bend", 2, 2, false, Entrance{West, 0}, Entrance{North, 1}),
		tmpl("vault-a", 3, 3, true, Entrance{South, 1}),
		tmpl("vault-b", 3, 3, true, Entrance{North, 1}),
	)
	if err != nil {
		t.Fatalf("NewLibrary() error: %v", err)
	}
	return lib
}

func TestNewLibraryEmptyIsFatal(t *testing.T) {
	_, err := NewLibrary()
	if !errors.Is(err, errors.ErrCodeEmptyCatalog) {
		t.Fatalf("NewLibrary() error = %v, want %v", err, errors.ErrCodeEmptyCatalog)
	}
}

func TestNewLibraryRejectsDuplicateNames(t *testing.T) {
	_, err := NewLibrary(
		tmpl("closet", 1, 1, false, Entrance{East, 0}),
		tmpl("closet", 1, 1, false, Entrance{West, 0}),
	)
	if !errors.Is(err, errors.ErrCodeInvalidTemplate) {
		t.Fatalf("error = %v, want %v", err, errors.ErrCodeInvalidTemplate)
	}
}

func TestLibraryMaxima(t *testing.T) {
	lib := testLibrary(t)
	if lib.EntranceMax() != 2 {
		t.Errorf("EntranceMax() = %d, want 2", lib.EntranceMax())
	}
	if lib.SizeMax() != 3 {
		t.Errorf("SizeMax() = %d, want 3", lib.SizeMax())
	}
	if lib.Len() != 5 {
		t.Errorf("Len() = %d, want 5", lib.Len())
	}

	if err := lib.Add(tmpl("wide", 6, 2, false, Entrance{West, 0}, Entrance{East, 0}, Entrance{North, 5})); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if lib.EntranceMax() != 3 || lib.SizeMax() != 6 {
		t.Errorf("after Add maxima = %d, %d; want 3, 6", lib.EntranceMax(), lib.SizeMax())
	}
}

func TestLibraryGetInsertionOrder(t *testing.T) {
	lib := testLibrary(t)

	tests := []struct {
		entrances int
		want      []string
	}{
		{1, []string{"closet", "vault-a", "vault-b"}},
		{2, []string{"corridor", "bend"}},
		{3, nil},
	}

	for _, tt := range tests {
		got := lib.Get(tt.entrances)
		if len(got) != len(tt.want) {
			t.Fatalf("Get(%d) = %d templates, want %d", tt.entrances, len(got), len(tt.want))
		}
		for i, name := range tt.want {
			if got[i].Name != name {
				t.Errorf("Get(%d)[%d] = %q, want %q", tt.entrances, i, got[i].Name, name)
			}
		}
	}
}

func TestLibraryGetRandomExactMatchOnly(t *testing.T) {
	lib := testLibrary(t)
	rng := rand.New(rand.NewPCG(1, 2))

	for range 200 {
		got, ok := lib.GetRandom(rng, 1, Square(3))
		if !ok {
			t.Fatal("GetRandom(1, 3x3) found nothing")
		}
		if got.EntranceCount() != 1 || got.Size() != Square(3) {
			t.Fatalf("GetRandom(1, 3x3) = %s (%d entrances, %s)", got.Name, got.EntranceCount(), got.Size())
		}
	}

	misses := []struct {
		entrances int
		size      Size
	}{
		{1, Square(2)},
		{2, Square(3)},
		{4, Square(1)},
	}
	for _, m := range misses {
		if got, ok := lib.GetRandom(rng, m.entrances, m.size); ok {
			t.Errorf("GetRandom(%d, %s) = %s, want no match", m.entrances, m.size, got.Name)
		}
	}
}

func TestLibraryGetRandomSurfacesEveryMatch(t *testing.T) {
	lib := testLibrary(t)
	rng := rand.New(rand.NewPCG(7, 7^0xdeadbeef))

	seen := map[string]int{}
	for range 500 {
		got, _ := lib.GetRandom(rng, 2, Square(2))
		seen[got.Name]++
	}
	for _, name := range []string{"corridor", "bend"} {
		if seen[name] == 0 {
			t.Errorf("GetRandom never returned %q: %v", name, seen)
		}
	}
}

func TestLibraryFind(t *testing.T) {
	lib := testLibrary(t)
	if got, ok := lib.Find("bend"); !ok || got.EntranceCount() != 2 {
		t.Errorf("Find(bend) = %v, %v", got, ok)
	}
	if _, ok := lib.Find("missing"); ok {
		t.Error("Find(missing) should fail")
	}
}

func TestBuiltinLibrary(t *testing.T) {
	lib := BuiltinLibrary()
	if lib.Len() != len(Builtin()) {
		t.Errorf("Len() = %d, want %d", lib.Len(), len(Builtin()))
	}
	if lib.EntranceMax() != 8 {
		t.Errorf("EntranceMax() = %d, want 8", lib.EntranceMax())
	}
	if len(lib.Get(1)) == 0 {
		t.Error("builtins need at least one dead-end template")
	}

	spawns := 0
	for _, tpl := range lib.Templates() {
		if tpl.Spawn {
			spawns++
		}
	}
	if spawns < 2 {
		t.Errorf("builtins have %d spawn templates, want at least 2", spawns)
	}
}
