package level

import (
	"context"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/roomgen/pkg/catalog"
	"github.com/matzehuels/roomgen/pkg/errors"
	"github.com/matzehuels/roomgen/pkg/geom"
	"github.com/matzehuels/roomgen/pkg/room"
)

// Status is the outcome of a [Generator.Step].
type Status int

const (
	InProgress Status = iota
	Done
	Failed
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "in-progress"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Phase is the placement strategy the next step will use.
type Phase int

const (
	Growing Phase = iota
	Filling
)

func (p Phase) String() string {
	if p == Growing {
		return "growing"
	}
	return "filling"
}

// cancelCheckEvery is how many growth samples run between context checks.
const cancelCheckEvery = 1024

// Factory turns a template into a candidate room inside the world frame.
type Factory func(t catalog.Template, arena *geom.Arena, world geom.ID, rng *rand.Rand) room.Room

// NewRoom is the default [Factory].
func NewRoom(t catalog.Template, arena *geom.Arena, world geom.ID, rng *rand.Rand) room.Room {
	return room.New(t, arena, world, rng)
}

// Option configures a [Generator].
type Option func(*Generator)

// WithConfig sets the generator thresholds.
func WithConfig(cfg Config) Option {
	return func(g *Generator) { g.cfg = cfg }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithContext makes long steps cancellable. A step checks ctx while it
// samples and fails with ctx's error once it is done.
func WithContext(ctx context.Context) Option {
	return func(g *Generator) {
		if ctx != nil {
			g.ctx = ctx
		}
	}
}

// WithFactory replaces the room factory.
func WithFactory(f Factory) Option {
	return func(g *Generator) {
		if f != nil {
			g.factory = f
		}
	}
}

// Generator is the step-driven level state machine.
type Generator struct {
	ctx     context.Context
	lib     *catalog.Library
	rng     *rand.Rand
	cfg     Config
	logger  *log.Logger
	factory Factory

	arena *geom.Arena
	world geom.ID
	rooms []room.Room
	spawn []room.Room

	status    Status
	err       error
	available int
	steps     int
	resets    int
	attempts  int
	justReset bool
	result    *Result
}

// New builds a generator over lib and places the seed room. rng is the only
// source of randomness; the same seed and catalog replay the same level.
func New(lib *catalog.Library, rng *rand.Rand, opts ...Option) (*Generator, error) {
	if lib == nil || lib.Len() == 0 {
		return nil, errors.New(errors.ErrCodeEmptyCatalog, "generator needs at least one room template")
	}
	if rng == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "generator needs a random source")
	}
	g := &Generator{
		ctx:     context.Background(),
		lib:     lib,
		rng:     rng,
		logger:  log.NewWithOptions(io.Discard, log.Options{}),
		factory: NewRoom,
		arena:   geom.NewArena(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.cfg.SetDefaults()
	if err := g.cfg.Validate(); err != nil {
		return nil, err
	}
	if g.cfg.SeedTemplate != "" {
		if _, ok := lib.Find(g.cfg.SeedTemplate); !ok {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "seed template %q is not in the catalog", g.cfg.SeedTemplate)
		}
	}
	if err := g.reset(); err != nil {
		return nil, err
	}
	return g, nil
}

// Step places at most one room and evaluates the attempt. Stepping a
// generator that is Done or Failed returns the same status again.
func (g *Generator) Step() (Status, error) {
	switch g.status {
	case Done:
		return Done, nil
	case Failed:
		return Failed, g.err
	}

	g.justReset = false
	g.steps++

	phase := g.Phase()
	var placed bool
	if phase == Growing {
		placed = g.grow()
	} else {
		placed = g.fill()
	}
	if !placed {
		if err := g.ctx.Err(); err != nil {
			return g.fail(err)
		}
		return g.fail(errors.New(errors.ErrCodeGenerationStalled,
			"%s step placed no room after %d attempts (%d rooms, %d open entrances)",
			phase, g.cfg.MaxAttempts, len(g.rooms), g.available))
	}

	g.available = g.countAvailable()
	if g.available > 0 {
		return InProgress, nil
	}

	if len(g.spawn) >= g.cfg.RequiredSpawnRooms() {
		g.accept()
		return Done, nil
	}

	g.logger.Warn("Rejecting level", "rooms", len(g.rooms), "spawn_rooms", len(g.spawn), "required", g.cfg.RequiredSpawnRooms())
	if err := g.reset(); err != nil {
		return g.fail(err)
	}
	g.resets++
	g.justReset = true
	return InProgress, nil
}

func (g *Generator) fail(err error) (Status, error) {
	g.status = Failed
	g.err = err
	g.logger.Error("Generation failed", "error", err)
	return Failed, err
}

// grow samples entrance count and size until a matching template attaches.
func (g *Generator) grow() bool {
	lo, hi := 2, g.lib.EntranceMax()
	if hi < lo {
		g.attempts = 0
		return false
	}
	for g.attempts = 1; g.attempts <= g.cfg.MaxAttempts; g.attempts++ {
		if g.attempts%cancelCheckEvery == 0 && g.ctx.Err() != nil {
			return false
		}
		e := lo + g.rng.IntN(hi-lo+1)
		s := 1 + g.rng.IntN(g.lib.SizeMax())
		t, ok := g.lib.GetRandom(g.rng, e, catalog.Square(s))
		if !ok {
			continue
		}
		if g.tryPlace(t) {
			return true
		}
	}
	return false
}

// fill scans entrance counts upwards and each count's templates in reverse
// insertion order. One full scan is one attempt.
func (g *Generator) fill() bool {
	for g.attempts = 1; g.attempts <= g.cfg.MaxAttempts; g.attempts++ {
		if g.ctx.Err() != nil {
			return false
		}
		for e := 1; e <= g.lib.EntranceMax(); e++ {
			ts := g.lib.Get(e)
			for i := len(ts) - 1; i >= 0; i-- {
				if g.tryPlace(ts[i]) {
					return true
				}
			}
		}
	}
	return false
}

func (g *Generator) tryPlace(t catalog.Template) bool {
	r := g.factory(t, g.arena, g.world, g.rng)
	if !r.TryAdd(g.rooms) {
		return false
	}
	g.add(r)
	g.logger.Debug("Placed room", "template", t.Name, "at", r.Footprint().Position(0), "rooms", len(g.rooms))
	return true
}

func (g *Generator) add(r room.Room) {
	g.rooms = append(g.rooms, r)
	if r.SpawnCapable() {
		g.spawn = append(g.spawn, r)
	}
	for _, x := range g.rooms {
		x.UpdateAvailableEntrances(g.rooms)
	}
}

func (g *Generator) countAvailable() int {
	total := 0
	for _, r := range g.rooms {
		total += r.AvailableEntrances()
	}
	return total
}

// reset discards the current attempt and reseeds. The arena is cleared
// before the new seed room is created.
func (g *Generator) reset() error {
	clear(g.rooms)
	clear(g.spawn)
	g.rooms = g.rooms[:0]
	g.spawn = g.spawn[:0]
	g.available = 0
	g.attempts = 0

	g.arena.Reset()
	world, err := g.arena.Register(geom.New(g.arena, 0, 0, 0, 0))
	if err != nil {
		return err
	}
	g.world = world

	seed := g.factory(g.seedTemplate(), g.arena, g.world, g.rng)
	if err := seed.PlaceAt(geom.Origin); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "place seed room")
	}
	g.add(seed)
	g.available = g.countAvailable()
	g.logger.Debug("Seeded level", "template", seed.Name(), "open_entrances", g.available)
	return nil
}

func (g *Generator) seedTemplate() catalog.Template {
	if g.cfg.SeedTemplate != "" {
		t, _ := g.lib.Find(g.cfg.SeedTemplate)
		return t
	}
	ts := g.lib.Get(g.lib.EntranceMax())
	return ts[g.rng.IntN(len(ts))]
}

func (g *Generator) accept() {
	a, b := SpawnPair(g.spawn)
	g.status = Done
	g.result = &Result{
		RunID:      uuid.NewString(),
		Rooms:      g.Rooms(),
		SpawnRooms: g.SpawnRooms(),
		SpawnA:     anchor(g.spawn[a]),
		SpawnB:     anchor(g.spawn[b]),
		SpawnIndex: [2]int{g.indexOf(g.spawn[a]), g.indexOf(g.spawn[b])},
		Steps:      g.steps,
		Resets:     g.resets,
	}
	g.logger.Info("Level accepted",
		"rooms", len(g.rooms),
		"spawn_rooms", len(g.spawn),
		"spawn_a", g.result.SpawnA,
		"spawn_b", g.result.SpawnB,
		"steps", g.steps,
		"resets", g.resets)
}

func (g *Generator) indexOf(r room.Room) int {
	for i, x := range g.rooms {
		if x == r {
			return i
		}
	}
	return -1
}

// Status returns the current status.
func (g *Generator) Status() Status { return g.status }

// Err returns the failure cause once the generator has Failed.
func (g *Generator) Err() error { return g.err }

// Phase returns the strategy the next step will use.
func (g *Generator) Phase() Phase {
	if len(g.rooms) < g.cfg.AccelerateUntil {
		return Growing
	}
	return Filling
}

// Config returns the effective configuration.
func (g *Generator) Config() Config { return g.cfg }

// Library returns the catalog the generator draws from.
func (g *Generator) Library() *catalog.Library { return g.lib }

// Rooms returns a copy of the placed rooms in placement order.
func (g *Generator) Rooms() []room.Room { return append([]room.Room(nil), g.rooms...) }

// SpawnRooms returns a copy of the placed spawn-capable rooms.
func (g *Generator) SpawnRooms() []room.Room { return append([]room.Room(nil), g.spawn...) }

// AvailableEntrances returns the open-entrance total after the last step.
func (g *Generator) AvailableEntrances() int { return g.available }

// Steps returns the number of steps taken across all attempts.
func (g *Generator) Steps() int { return g.steps }

// Attempts returns the number of samples the last step used.
func (g *Generator) Attempts() int { return g.attempts }

// Resets returns how many attempts were rejected.
func (g *Generator) Resets() int { return g.resets }

// JustReset reports whether the last step rejected the attempt and reseeded.
func (g *Generator) JustReset() bool { return g.justReset }

// Result returns the accepted level once the generator is Done.
func (g *Generator) Result() (Result, bool) {
	if g.result == nil {
		return Result{}, false
	}
	return *g.result, true
}
