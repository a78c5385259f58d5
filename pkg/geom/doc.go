// Package geom implements depth-relative, axis-aligned integer rectangles.
//
// A [Container] is a rectangle whose bounds are stored in the frame of the
// depth at which it was created. Containers can be owned by another container,
// in which case their relative position is an offset inside the owner's frame.
// Re-projecting a container into an ancestor frame ([Container.ToDepth]) walks
// the ownership chain one level at a time, so a room authored in local space
// can be placed anywhere and every sub-feature it owns follows automatically.
//
// # Depth
//
// Depth 0 is the root (world) frame. A container's depth is its owner's depth
// plus one, or 0 when it has no owner. Depth is never cached: it is derived
// from the owner chain every time it is read.
//
// # Arena
//
// Owners live in an [Arena] and are addressed by [ID]. A container can only be
// registered when its owner is already registered, so IDs strictly increase
// away from the root and the chain cannot form a cycle.
//
//	arena := geom.NewArena()
//	world, _ := arena.Register(geom.New(arena, 0, 0, 0, 0))
//	room := geom.NewOwned(arena, world, geom.Pt(10, 4), geom.Pt(3, 3))
//	room.Left(0)   // 10
//	room.Bottom(0) // 4
//
// # Overlap
//
// [Container.Overlaps] uses closed intervals: rectangles whose edges only
// touch are reported as overlapping.
package geom
