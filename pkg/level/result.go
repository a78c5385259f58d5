package level

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/matzehuels/roomgen/pkg/geom"
	"github.com/matzehuels/roomgen/pkg/room"
)

// Result is an accepted level.
type Result struct {
	RunID      string
	Rooms      []room.Room
	SpawnRooms []room.Room

	// SpawnA and SpawnB are the team anchors in the root frame.
	SpawnA geom.Point
	SpawnB geom.Point

	// SpawnIndex holds the indices into Rooms of the anchor rooms.
	SpawnIndex [2]int

	Steps  int
	Resets int
}

// Bounds returns the root-frame envelope of every room. An empty result has
// a zero envelope.
func (r Result) Bounds() (geom.Container, error) {
	var env geom.Container
	for i, rm := range r.Rooms {
		fp, err := rm.Footprint().ToDepth(0)
		if err != nil {
			return geom.Container{}, err
		}
		if i == 0 {
			env = fp
			continue
		}
		if env, err = env.Join(fp); err != nil {
			return geom.Container{}, err
		}
	}
	return env, nil
}

// Connected reports whether every room is reachable from the first through
// joined doorways.
func (r Result) Connected() bool {
	if len(r.Rooms) == 0 {
		return true
	}
	adj := room.Adjacency(r.Rooms)
	visited := mapset.New[int]()
	queue := []int{0}
	visited.Put(0)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range adj[cur] {
			if !visited.Has(next) {
				visited.Put(next)
				queue = append(queue, next)
			}
		}
	}
	return visited.Size() == len(r.Rooms)
}
