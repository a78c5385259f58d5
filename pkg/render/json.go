package render

import (
	"encoding/json"

	"github.com/zyedidia/generic/mapset"

	"github.com/matzehuels/roomgen/pkg/catalog"
	"github.com/matzehuels/roomgen/pkg/geom"
	"github.com/matzehuels/roomgen/pkg/level"
	"github.com/matzehuels/roomgen/pkg/room"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	seed    uint64
	hasSeed bool
	config  *level.Config
}

// WithJSONSeed records the seed the level was generated from, so the same
// level can be regenerated later.
func WithJSONSeed(seed uint64) JSONOption {
	return func(r *jsonRenderer) { r.seed = seed; r.hasSeed = true }
}

// WithJSONConfig records the generator settings in the output.
func WithJSONConfig(c level.Config) JSONOption { return func(r *jsonRenderer) { r.config = &c } }

type jsonOutput struct {
	RunID  string        `json:"run_id"`
	Seed   *uint64       `json:"seed,omitempty"`
	Config *level.Config `json:"config,omitempty"`
	Steps  int           `json:"steps"`
	Resets int           `json:"resets"`
	Bounds jsonRect      `json:"bounds"`
	SpawnA jsonAnchor    `json:"spawn_a"`
	SpawnB jsonAnchor    `json:"spawn_b"`
	Rooms  []jsonRoom    `json:"rooms"`
	Links  []jsonLink    `json:"links,omitempty"`
}

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonAnchor struct {
	Room int `json:"room"`
	X    int `json:"x"`
	Y    int `json:"y"`
}

type jsonRoom struct {
	Index     int            `json:"index"`
	Template  string         `json:"template"`
	Spawn     bool           `json:"spawn,omitempty"`
	Rect      jsonRect       `json:"rect"`
	Entrances []jsonEntrance `json:"entrances"`
}

type jsonEntrance struct {
	X      int          `json:"x"`
	Y      int          `json:"y"`
	Side   catalog.Side `json:"side"`
	Joined bool         `json:"joined"`
}

type jsonLink struct {
	A int `json:"a"`
	B int `json:"b"`
}

// RenderJSON serializes an accepted level. Coordinates are world cells with
// the seed room's bottom-left corner at the origin; entrance coordinates
// are the doorway cells.
func RenderJSON(res level.Result, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		RunID:  res.RunID,
		Config: r.config,
		Steps:  res.Steps,
		Resets: res.Resets,
		SpawnA: jsonAnchor{Room: res.SpawnIndex[0], X: res.SpawnA.X, Y: res.SpawnA.Y},
		SpawnB: jsonAnchor{Room: res.SpawnIndex[1], X: res.SpawnB.X, Y: res.SpawnB.Y},
		Rooms:  make([]jsonRoom, 0, len(res.Rooms)),
	}
	if r.hasSeed {
		out.Seed = &r.seed
	}
	if len(res.Rooms) > 0 {
		env, err := res.Bounds()
		if err != nil {
			return nil, err
		}
		out.Bounds = rect(env)
	}

	joined := joinedDoorways(res.Rooms)
	for i, rm := range res.Rooms {
		fp, _ := rm.Footprint().ToDepth(0)
		jr := jsonRoom{
			Index:    i,
			Template: rm.Name(),
			Spawn:    rm.SpawnCapable(),
			Rect:     rect(fp),
		}
		for _, d := range rm.Doorways() {
			jr.Entrances = append(jr.Entrances, jsonEntrance{
				X:      d.At.X,
				Y:      d.At.Y,
				Side:   d.Side,
				Joined: joined.Has(d),
			})
		}
		out.Rooms = append(out.Rooms, jr)
	}
	for _, l := range room.Links(res.Rooms) {
		out.Links = append(out.Links, jsonLink{A: l.A, B: l.B})
	}

	return json.MarshalIndent(out, "", "  ")
}

func rect(c geom.Container) jsonRect {
	return jsonRect{X: c.Left(0), Y: c.Bottom(0), W: c.Width(), H: c.Height()}
}

// joinedDoorways returns every doorway matched by a facing doorway of
// another room.
func joinedDoorways(rooms []room.Room) mapset.Set[room.Doorway] {
	all := mapset.New[room.Doorway]()
	for _, rm := range rooms {
		for _, d := range rm.Doorways() {
			all.Put(d)
		}
	}
	out := mapset.New[room.Doorway]()
	for _, rm := range rooms {
		for _, d := range rm.Doorways() {
			if all.Has(room.Doorway{At: d.At, Side: d.Side.Opposite()}) {
				out.Put(d)
			}
		}
	}
	return out
}
