package room

// Link is a pair of room indices joined through facing doorways, with A < B.
type Link struct {
	A, B int
}

// Links returns every joined pair in rooms, ordered by A then by discovery.
func Links(rooms []Room) []Link {
	at := make(map[Doorway]int)
	for i, r := range rooms {
		for _, d := range r.Doorways() {
			at[d] = i
		}
	}

	var links []Link
	for i, r := range rooms {
		for _, d := range r.Doorways() {
			j, ok := at[Doorway{At: d.At, Side: d.Side.Opposite()}]
			if ok && j > i {
				links = append(links, Link{A: i, B: j})
			}
		}
	}
	return links
}

// Adjacency returns, for each room, the indices of rooms joined to it.
func Adjacency(rooms []Room) [][]int {
	adj := make([][]int, len(rooms))
	for _, l := range Links(rooms) {
		adj[l.A] = append(adj[l.A], l.B)
		adj[l.B] = append(adj[l.B], l.A)
	}
	return adj
}
