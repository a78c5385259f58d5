package level

import (
	"math"

	"github.com/matzehuels/roomgen/pkg/geom"
	"github.com/matzehuels/roomgen/pkg/room"
)

// SpawnPair returns the indices of the two rooms whose centers are farthest
// apart, measured between exact centers so rooms of odd and even size
// compare fairly. Pairs are visited as i <= j in order and only a strictly
// larger distance replaces the best, so the first maximum wins. A single
// room pairs with itself.
func SpawnPair(rooms []room.Room) (a, b int) {
	best := -1.0
	for i := range rooms {
		xi, yi := rooms[i].Footprint().Centroid(0)
		for j := i; j < len(rooms); j++ {
			xj, yj := rooms[j].Footprint().Centroid(0)
			if d := math.Hypot(xi-xj, yi-yj); d > best {
				best, a, b = d, i, j
			}
		}
	}
	return a, b
}

// anchor is the spawn coordinate a room offers: its integer center in the
// root frame.
func anchor(r room.Room) geom.Point {
	return r.Footprint().Center(0)
}
