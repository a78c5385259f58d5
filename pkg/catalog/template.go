package catalog

import (
	"fmt"

	"github.com/matzehuels/roomgen/pkg/errors"
	"github.com/matzehuels/roomgen/pkg/geom"
)

// Size is a template footprint in cells.
type Size struct {
	W int `json:"w"`
	H int `json:"h"`
}

// Square returns an n×n size.
func Square(n int) Size { return Size{n, n} }

// Max returns the larger of the two sides.
func (s Size) Max() int { return max(s.W, s.H) }

// Point returns the size as a dimension vector.
func (s Size) Point() geom.Point { return geom.Pt(s.W, s.H) }

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.W, s.H) }

// Entrance is a connection point on a room's perimeter.
type Entrance struct {
	Side   Side `toml:"side" json:"side"`
	Offset int  `toml:"offset" json:"offset"`
}

func (e Entrance) String() string { return fmt.Sprintf("%s@%d", e.Side, e.Offset) }

// Template describes a room in its local frame, bottom-left at the origin.
type Template struct {
	Name      string     `toml:"name" json:"name"`
	Width     int        `toml:"width" json:"width"`
	Height    int        `toml:"height" json:"height"`
	Spawn     bool       `toml:"spawn,omitempty" json:"spawn,omitempty"`
	Entrances []Entrance `toml:"entrances" json:"entrances"`
}

// Size returns the template's footprint.
func (t Template) Size() Size { return Size{t.Width, t.Height} }

// EntranceCount returns the number of entrances.
func (t Template) EntranceCount() int { return len(t.Entrances) }

// sideLength returns how many cells lie along side s.
func (t Template) sideLength(s Side) int {
	if s == East || s == West {
		return t.Height
	}
	return t.Width
}

// Cell returns the local cell an entrance occupies inside the room.
func (t Template) Cell(e Entrance) geom.Point {
	switch e.Side {
	case East:
		return geom.Pt(t.Width-1, e.Offset)
	case North:
		return geom.Pt(e.Offset, t.Height-1)
	case West:
		return geom.Pt(0, e.Offset)
	default:
		return geom.Pt(e.Offset, 0)
	}
}

// Doorway returns the local cell just outside an entrance. Two rooms connect
// through a pair of entrances when their doorways coincide.
func (t Template) Doorway(e Entrance) geom.Point {
	return t.Cell(e).Add(e.Side.Delta())
}

// TurnCCW returns the template rotated counter-clockwise by n quarter turns
// about its own frame. Odd turns swap width and height.
func (t Template) TurnCCW(n int) Template {
	n = ((n % 4) + 4) % 4
	out := t
	out.Entrances = append([]Entrance(nil), t.Entrances...)
	for range n {
		out = out.quarterTurn()
	}
	return out
}

// quarterTurn maps cell (x, y) of a w×h room to (h-1-y, x) of an h×w room.
func (t Template) quarterTurn() Template {
	out := Template{Name: t.Name, Width: t.Height, Height: t.Width, Spawn: t.Spawn}
	out.Entrances = make([]Entrance, len(t.Entrances))
	for i, e := range t.Entrances {
		switch e.Side {
		case East, West:
			out.Entrances[i] = Entrance{Side: e.Side.TurnCCW(1), Offset: t.Height - 1 - e.Offset}
		default:
			out.Entrances[i] = Entrance{Side: e.Side.TurnCCW(1), Offset: e.Offset}
		}
	}
	return out
}

// Validate checks that t can be placed: a valid name, a positive size, at
// least one entrance, offsets inside their side and no duplicate entrance.
func (t Template) Validate() error {
	if err := errors.ValidateTemplateName(t.Name); err != nil {
		return err
	}
	if t.Width < 1 || t.Height < 1 {
		return errors.New(errors.ErrCodeInvalidTemplate, "template %q: size %s must be positive", t.Name, t.Size())
	}
	if len(t.Entrances) == 0 {
		return errors.New(errors.ErrCodeInvalidTemplate, "template %q has no entrances", t.Name)
	}
	seen := make(map[Entrance]bool, len(t.Entrances))
	for _, e := range t.Entrances {
		if !e.Side.Valid() {
			return errors.New(errors.ErrCodeInvalidTemplate, "template %q: invalid side %d", t.Name, uint8(e.Side))
		}
		if n := t.sideLength(e.Side); e.Offset < 0 || e.Offset >= n {
			return errors.New(errors.ErrCodeInvalidTemplate, "template %q: entrance %s outside side of length %d", t.Name, e, n)
		}
		if seen[e] {
			return errors.New(errors.ErrCodeInvalidTemplate, "template %q: duplicate entrance %s", t.Name, e)
		}
		seen[e] = true
	}
	return nil
}
