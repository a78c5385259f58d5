// Package room implements the placeable room the level generator assembles.
//
// A room's footprint is a depth-1 [geom.Container] owned by the level's world
// frame and authored at its local origin; placing the room only changes the
// footprint's relative position. Entrances are 1×1 depth-2 containers owned
// by the footprint, so they follow the room wherever it is placed.
//
// Rooms connect through doorways: the cell just outside an entrance. Two
// entrances are joined when their doorways coincide and they face each other,
// which leaves a one-cell passage between the rooms. Because overlap uses
// closed intervals, that passage is what keeps joined rooms from being
// reported as overlapping.
package room

import (
	"math/rand/v2"

	"github.com/zyedidia/generic/mapset"

	"github.com/matzehuels/roomgen/pkg/catalog"
	"github.com/matzehuels/roomgen/pkg/geom"
)

// Room is what the generator needs from a placed or candidate room.
type Room interface {
	Name() string
	Footprint() geom.Container
	EntranceCount() int
	SpawnCapable() bool

	// AvailableEntrances returns the count cached by the last
	// UpdateAvailableEntrances call.
	AvailableEntrances() int
	UpdateAvailableEntrances(all []Room)

	// TryAdd aligns the room with a free entrance of some room in all.
	// It reports whether the room was placed; on false the room must be
	// discarded.
	TryAdd(all []Room) bool

	// PlaceAt commits the room with its bottom-left corner at p in the
	// world frame.
	PlaceAt(p geom.Point) error

	Doorways() []Doorway
	OpenDoorways() []Doorway
}

// Doorway is the root-frame cell just outside an entrance, together with the
// side the entrance faces.
type Doorway struct {
	At   geom.Point   `json:"at"`
	Side catalog.Side `json:"side"`
}

// Instance is the [Room] built from a catalog template.
type Instance struct {
	base  catalog.Template
	tmpl  catalog.Template
	arena *geom.Arena
	world geom.ID
	rng   *rand.Rand

	id        geom.ID
	footprint geom.Container
	entrances []geom.Container
	open      []bool
	available int
}

var _ Room = (*Instance)(nil)

// New creates an unplaced room from t inside the world frame of arena.
func New(t catalog.Template, arena *geom.Arena, world geom.ID, rng *rand.Rand) *Instance {
	return &Instance{
		base:      t,
		tmpl:      t,
		arena:     arena,
		world:     world,
		rng:       rng,
		footprint: geom.NewOwned(arena, world, geom.Origin, t.Size().Point()),
	}
}

func (r *Instance) Name() string { return r.tmpl.Name }

// Template returns the template as placed, including any turn.
func (r *Instance) Template() catalog.Template { return r.tmpl }

func (r *Instance) Footprint() geom.Container { return r.footprint }

func (r *Instance) EntranceCount() int { return r.tmpl.EntranceCount() }

func (r *Instance) SpawnCapable() bool { return r.tmpl.Spawn }

func (r *Instance) AvailableEntrances() int { return r.available }

// Placed reports whether the room has been committed to the arena.
func (r *Instance) Placed() bool { return r.id != geom.NoOwner }

// ID returns the footprint's arena ID, or [geom.NoOwner] before placement.
func (r *Instance) ID() geom.ID { return r.id }

// Entrances returns the entrance cells as depth-2 containers. It is empty
// before placement.
func (r *Instance) Entrances() []geom.Container { return r.entrances }

// PlaceAt is used for the seed room, which has nothing to align with.
func (r *Instance) PlaceAt(p geom.Point) error {
	fp := r.footprint
	fp.SetRelative(p)
	return r.commit(r.tmpl, fp)
}

// TryAdd visits open doorways of the rooms in all in a shuffled order and
// places the room at the first doorway where some orientation fits without
// overlapping any room.
func (r *Instance) TryAdd(all []Room) bool {
	if r.Placed() {
		return false
	}
	var targets []Doorway
	for _, other := range all {
		targets = append(targets, other.OpenDoorways()...)
	}
	r.rng.Shuffle(len(targets), func(i, j int) { targets[i], targets[j] = targets[j], targets[i] })

	start := r.rng.IntN(4)
	for _, target := range targets {
		want := target.Side.Opposite()
		for q := range 4 {
			t := r.base.TurnCCW(start + q)
			for _, e := range t.Entrances {
				if e.Side != want {
					continue
				}
				rel := target.At.Sub(t.Doorway(e))
				fp := geom.NewOwned(r.arena, r.world, rel, t.Size().Point())
				if overlapsAny(fp, all) {
					continue
				}
				return r.commit(t, fp) == nil
			}
		}
	}
	return false
}

func (r *Instance) commit(t catalog.Template, fp geom.Container) error {
	id, err := r.arena.Register(fp)
	if err != nil {
		return err
	}
	r.tmpl = t
	r.id = id
	r.footprint = r.arena.Get(id)
	r.entrances = make([]geom.Container, len(t.Entrances))
	for i, e := range t.Entrances {
		r.entrances[i] = geom.NewOwnedAt(r.arena, id, geom.Origin, t.Cell(e), geom.Pt(1, 1))
	}
	r.open = make([]bool, len(t.Entrances))
	return nil
}

// Doorways returns one doorway per entrance in template order.
func (r *Instance) Doorways() []Doorway {
	out := make([]Doorway, len(r.tmpl.Entrances))
	for i, e := range r.tmpl.Entrances {
		var cell geom.Point
		if r.Placed() {
			cell = r.entrances[i].Position(0)
		} else {
			cell = r.footprint.Position(0).Add(r.tmpl.Cell(e))
		}
		out[i] = Doorway{At: cell.Add(e.Side.Delta()), Side: e.Side}
	}
	return out
}

// OpenDoorways returns the doorways of entrances marked available by the last
// UpdateAvailableEntrances call.
func (r *Instance) OpenDoorways() []Doorway {
	if !r.Placed() {
		return nil
	}
	var out []Doorway
	for i, d := range r.Doorways() {
		if r.open[i] {
			out = append(out, d)
		}
	}
	return out
}

// UpdateAvailableEntrances recomputes which entrances are still usable. An
// entrance is available when no room joins it and a 1×1 room could still be
// attached beyond its doorway.
func (r *Instance) UpdateAvailableEntrances(all []Room) {
	if !r.Placed() {
		r.available = 0
		return
	}
	joined := mapset.New[Doorway]()
	for _, other := range all {
		if other == Room(r) {
			continue
		}
		for _, d := range other.Doorways() {
			joined.Put(Doorway{At: d.At, Side: d.Side.Opposite()})
		}
	}

	r.available = 0
	for i, d := range r.Doorways() {
		r.open[i] = !joined.Has(d) && !overlapsAny(r.plug(d), all)
		if r.open[i] {
			r.available++
		}
	}
}

// plug is the smallest room that could close the entrance behind d: a 1×1
// footprint one cell beyond the doorway.
func (r *Instance) plug(d Doorway) geom.Container {
	return geom.NewOwned(r.arena, r.world, d.At.Add(d.Side.Delta()), geom.Pt(1, 1))
}

// overlapsAny compares footprints in the root frame.
func overlapsAny(fp geom.Container, all []Room) bool {
	c, _ := fp.ToDepth(0)
	for _, other := range all {
		o, _ := other.Footprint().ToDepth(0)
		if c.Overlaps(o) {
			return true
		}
	}
	return false
}
