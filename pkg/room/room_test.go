package room

import (
	"math/rand/v2"
	"testing"

	"github.com/matzehuels/roomgen/pkg/catalog"
	"github.com/matzehuels/roomgen/pkg/geom"
)

var (
	closet   = catalog.Template{Name: "closet", Width: 1, Height: 1, Entrances: []catalog.Entrance{{Side: catalog.East}}}
	corridor = catalog.Template{Name: "corridor", Width: 2, Height: 2, Entrances: []catalog.Entrance{{Side: catalog.West}, {Side: catalog.East}}}
	junction = catalog.Template{Name: "junction", Width: 3, Height: 3, Entrances: []catalog.Entrance{
		{Side: catalog.West, Offset: 1}, {Side: catalog.East, Offset: 1}, {Side: catalog.North, Offset: 1},
	}}
	vault = catalog.Template{Name: "vault", Width: 3, Height: 3, Spawn: true, Entrances: []catalog.Entrance{{Side: catalog.South, Offset: 1}}}
)

type fixture struct {
	arena *geom.Arena
	world geom.ID
	rng   *rand.Rand
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	a := geom.NewArena()
	w, err := a.Register(geom.New(a, 0, 0, 0, 0))
	if err != nil {
		t.Fatalf("register world: %v", err)
	}
	return fixture{arena: a, world: w, rng: rand.New(rand.NewPCG(3, 3^0xdeadbeef))}
}

func (f fixture) place(t *testing.T, tpl catalog.Template, at geom.Point) *Instance {
	t.Helper()
	r := New(tpl, f.arena, f.world, f.rng)
	if err := r.PlaceAt(at); err != nil {
		t.Fatalf("PlaceAt(%v) error: %v", at, err)
	}
	return r
}

func update(rooms []Room) int {
	total := 0
	for _, r := range rooms {
		r.UpdateAvailableEntrances(rooms)
		total += r.AvailableEntrances()
	}
	return total
}

func TestPlaceAtMovesEntrances(t *testing.T) {
	f := newFixture(t)
	r := f.place(t, corridor, geom.Pt(10, 4))

	if r.Footprint().Depth() != 1 {
		t.Errorf("footprint depth = %d, want 1", r.Footprint().Depth())
	}
	if got := r.Footprint().Position(0); got != geom.Pt(10, 4) {
		t.Errorf("footprint at %v, want (10,4)", got)
	}
	for _, e := range r.Entrances() {
		if e.Depth() != 2 {
			t.Errorf("entrance depth = %d, want 2", e.Depth())
		}
	}

	want := []Doorway{
		{At: geom.Pt(9, 4), Side: catalog.West},
		{At: geom.Pt(12, 4), Side: catalog.East},
	}
	for i, d := range r.Doorways() {
		if d != want[i] {
			t.Errorf("doorway %d = %+v, want %+v", i, d, want[i])
		}
	}
}

func TestLoneRoomHasAllEntrancesOpen(t *testing.T) {
	f := newFixture(t)
	rooms := []Room{f.place(t, corridor, geom.Origin)}

	if got := update(rooms); got != 2 {
		t.Errorf("available = %d, want 2", got)
	}
	if got := len(rooms[0].OpenDoorways()); got != 2 {
		t.Errorf("open doorways = %d, want 2", got)
	}
}

func TestTryAddJoinsThroughFacingDoorways(t *testing.T) {
	f := newFixture(t)
	seed := f.place(t, corridor, geom.Origin)
	rooms := []Room{seed}
	update(rooms)

	c := New(closet, f.arena, f.world, f.rng)
	if !c.TryAdd(rooms) {
		t.Fatal("TryAdd() = false, want true")
	}
	rooms = append(rooms, c)

	links := Links(rooms)
	if len(links) != 1 || links[0] != (Link{A: 0, B: 1}) {
		t.Errorf("Links() = %v, want [{0 1}]", links)
	}
	a, _ := seed.Footprint().ToDepth(0)
	b, _ := c.Footprint().ToDepth(0)
	if a.Overlaps(b) {
		t.Errorf("joined rooms overlap: %v %v", a, b)
	}
	if got := update(rooms); got != 1 {
		t.Errorf("available after closing one side = %d, want 1", got)
	}
}

func TestAvailableEntrancesDelta(t *testing.T) {
	tests := []struct {
		name string
		tpl  catalog.Template
	}{
		{"dead end", closet},
		{"pass through", corridor},
		{"junction", junction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			rooms := []Room{f.place(t, corridor, geom.Origin)}
			before := update(rooms)

			r := New(tt.tpl, f.arena, f.world, f.rng)
			if !r.TryAdd(rooms) {
				t.Fatal("TryAdd() = false")
			}
			rooms = append(rooms, r)
			after := update(rooms)

			if after-before != tt.tpl.EntranceCount()-2 {
				t.Errorf("available %d -> %d, delta want %d", before, after, tt.tpl.EntranceCount()-2)
			}
		})
	}
}

func TestSealedEntranceIsUnavailable(t *testing.T) {
	f := newFixture(t)
	seed := f.place(t, closet, geom.Origin)
	// Sits exactly where a closing room for seed's doorway would go.
	blocker := f.place(t, closet, geom.Pt(2, 0))

	seed.UpdateAvailableEntrances([]Room{seed, blocker})
	if seed.AvailableEntrances() != 0 {
		t.Errorf("available = %d, want 0", seed.AvailableEntrances())
	}
	if len(seed.OpenDoorways()) != 0 {
		t.Errorf("open doorways = %v, want none", seed.OpenDoorways())
	}
}

func TestTryAddRejectsOverlap(t *testing.T) {
	f := newFixture(t)
	seed := f.place(t, closet, geom.Origin)
	blocker := f.place(t, closet, geom.Pt(2, 2))
	rooms := []Room{seed, blocker}
	seed.UpdateAvailableEntrances(rooms)
	if seed.AvailableEntrances() != 1 {
		t.Fatalf("seed available = %d, want 1", seed.AvailableEntrances())
	}

	registered := f.arena.Len()
	v := New(vault, f.arena, f.world, f.rng)
	if v.TryAdd(rooms) {
		t.Fatalf("vault placed at %v despite blocker", v.Footprint().Position(0))
	}
	if f.arena.Len() != registered {
		t.Errorf("rejected candidate registered in arena: %d -> %d", registered, f.arena.Len())
	}

	c := New(closet, f.arena, f.world, f.rng)
	if !c.TryAdd(rooms) {
		t.Fatal("closet should still fit")
	}
	if got := c.Footprint().Position(0); got != geom.Pt(2, 0) {
		t.Errorf("closet at %v, want (2,0)", got)
	}
}

func TestTryAddTurnsTemplate(t *testing.T) {
	f := newFixture(t)
	seed := f.place(t, closet, geom.Origin)
	rooms := []Room{seed}
	update(rooms)

	// The vault's only entrance faces south; joining an east doorway needs a
	// west-facing one.
	v := New(vault, f.arena, f.world, f.rng)
	if !v.TryAdd(rooms) {
		t.Fatal("TryAdd() = false")
	}
	if got := v.Template().Entrances[0].Side; got != catalog.West {
		t.Errorf("placed entrance faces %s, want west", got)
	}
	if got := v.Footprint().Position(0); got != geom.Pt(2, -1) {
		t.Errorf("vault at %v, want (2,-1)", got)
	}
}

func TestAdjacency(t *testing.T) {
	f := newFixture(t)
	seed := f.place(t, corridor, geom.Origin)
	rooms := []Room{seed}
	for range 2 {
		update(rooms)
		c := New(closet, f.arena, f.world, f.rng)
		if !c.TryAdd(rooms) {
			t.Fatal("TryAdd() = false")
		}
		rooms = append(rooms, c)
	}

	adj := Adjacency(rooms)
	if len(adj[0]) != 2 || len(adj[1]) != 1 || len(adj[2]) != 1 {
		t.Errorf("Adjacency() = %v", adj)
	}
}
