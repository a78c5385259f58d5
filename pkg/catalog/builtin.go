package catalog

// Builtin returns the default template set. Order matters: filling tries each
// entrance count's templates from last to first.
func Builtin() []Template {
	return []Template{
		{Name: "closet", Width: 1, Height: 1, Entrances: []Entrance{
			{East, 0},
		}},
		{Name: "alcove", Width: 2, Height: 2, Entrances: []Entrance{
			{South, 0},
		}},
		{Name: "spawn-vault", Width: 3, Height: 3, Spawn: true, Entrances: []Entrance{
			{South, 1},
		}},
		{Name: "corridor", Width: 2, Height: 2, Entrances: []Entrance{
			{West, 0}, {East, 0},
		}},
		{Name: "bend", Width: 2, Height: 2, Entrances: []Entrance{
			{West, 0}, {North, 1},
		}},
		{Name: "gallery", Width: 4, Height: 2, Entrances: []Entrance{
			{West, 0}, {East, 1},
		}},
		{Name: "spawn-hall", Width: 5, Height: 5, Spawn: true, Entrances: []Entrance{
			{West, 2}, {East, 2},
		}},
		{Name: "junction", Width: 3, Height: 3, Entrances: []Entrance{
			{West, 1}, {East, 1}, {North, 1},
		}},
		{Name: "crossroads", Width: 3, Height: 3, Entrances: []Entrance{
			{West, 1}, {East, 1}, {North, 1}, {South, 1},
		}},
		{Name: "hall", Width: 5, Height: 5, Entrances: []Entrance{
			{West, 2}, {East, 2}, {North, 2}, {South, 2},
		}},
		{Name: "atrium", Width: 7, Height: 7, Entrances: []Entrance{
			{West, 1}, {West, 5}, {East, 1}, {East, 5},
			{North, 1}, {North, 5}, {South, 1}, {South, 5},
		}},
	}
}

// BuiltinLibrary returns a library over [Builtin].
func BuiltinLibrary() *Library {
	lib, err := NewLibrary(Builtin()...)
	if err != nil {
		panic(err)
	}
	return lib
}
