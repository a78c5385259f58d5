// Package catalog holds the room templates a level is assembled from.
//
// A [Template] describes a rectangular room in its own local frame: a width,
// a height, a spawn flag and the entrances on its perimeter. A [Library]
// indexes templates by entrance count and then by size so the generator can
// ask either for "every template with e entrances" ([Library.Get]) or for a
// random template with an exact entrance count and size
// ([Library.GetRandom]).
//
// # Template Supply
//
// Templates come from an explicit registration list. [Builtin] returns the
// default set; [LoadFile] and [Decode] read the same shape from TOML:
//
//	[[template]]
//	name = "corridor"
//	width = 2
//	height = 2
//	entrances = [
//	  { side = "west", offset = 0 },
//	  { side = "east", offset = 0 },
//	]
//
// An empty supply is a configuration error; [NewLibrary] refuses it with
// EMPTY_CATALOG before any generation attempt starts.
//
// # Entrances
//
// An [Entrance] sits on one [Side] of the room. Its offset is counted from the
// bottom for east and west entrances and from the left for north and south
// entrances, so offsets on a side of length n lie in [0, n).
package catalog
