package render

import (
	"math/rand/v2"
	"testing"

	"github.com/matzehuels/roomgen/pkg/catalog"
	"github.com/matzehuels/roomgen/pkg/geom"
	"github.com/matzehuels/roomgen/pkg/level"
	"github.com/matzehuels/roomgen/pkg/room"
)

// fixture is a closet joined to the west entrance of a corridor at the
// origin, leaving the corridor's east entrance open:
//
//	......
//	...##.
//	.#+##o
//	......
func fixture(t *testing.T) level.Result {
	t.Helper()
	a := geom.NewArena()
	world, err := a.Register(geom.New(a, 0, 0, 0, 0))
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewPCG(1, 1^0xdeadbeef))

	corridor := room.New(catalog.Template{
		Name: "corridor", Width: 2, Height: 2,
		Entrances: []catalog.Entrance{{Side: catalog.West}, {Side: catalog.East}},
	}, a, world, rng)
	closet := room.New(catalog.Template{
		Name: "closet", Width: 1, Height: 1, Spawn: true,
		Entrances: []catalog.Entrance{{Side: catalog.East}},
	}, a, world, rng)

	if err := corridor.PlaceAt(geom.Origin); err != nil {
		t.Fatal(err)
	}
	if err := closet.PlaceAt(geom.Pt(-2, 0)); err != nil {
		t.Fatal(err)
	}
	rooms := []room.Room{corridor, closet}
	for _, r := range rooms {
		r.UpdateAvailableEntrances(rooms)
	}

	return level.Result{
		RunID:      "run-1",
		Rooms:      rooms,
		SpawnRooms: []room.Room{closet},
		SpawnA:     geom.Pt(0, 1),
		SpawnB:     geom.Pt(1, 1),
		SpawnIndex: [2]int{0, 1},
		Steps:      3,
		Resets:     1,
	}
}
