package catalog

import (
	"fmt"
	"strings"

	"github.com/matzehuels/roomgen/pkg/geom"
)

// Side is the edge of a room an entrance sits on.
type Side uint8

const (
	East Side = iota
	North
	West
	South
)

var sideNames = [...]string{East: "east", North: "north", West: "west", South: "south"}

// Sides lists every side in counter-clockwise order starting at East.
var Sides = []Side{East, North, West, South}

// Valid reports whether s is one of the four sides.
func (s Side) Valid() bool { return s <= South }

// Opposite returns the side facing s.
func (s Side) Opposite() Side { return (s + 2) % 4 }

// TurnCCW returns s rotated counter-clockwise by n quarter turns.
func (s Side) TurnCCW(n int) Side { return Side((int(s) + ((n%4)+4)%4) % 4) }

// Delta is the unit step leaving a room through side s.
func (s Side) Delta() geom.Point {
	switch s {
	case East:
		return geom.Pt(1, 0)
	case North:
		return geom.Pt(0, 1)
	case West:
		return geom.Pt(-1, 0)
	default:
		return geom.Pt(0, -1)
	}
}

func (s Side) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Side(%d)", uint8(s))
	}
	return sideNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s Side) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid side %d", uint8(s))
	}
	return []byte(sideNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Single-letter
// abbreviations are accepted.
func (s *Side) UnmarshalText(b []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(b)))
	for i, name := range sideNames {
		if v == name || v == name[:1] {
			*s = Side(i)
			return nil
		}
	}
	return fmt.Errorf("unknown side %q (must be one of: %s)", v, strings.Join(sideNames[:], ", "))
}
