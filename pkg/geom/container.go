package geom

import (
	"fmt"

	"github.com/matzehuels/roomgen/pkg/errors"
)

// Container is a rectangle whose bounds are expressed in the frame of its own
// creation depth. A Container is a value; registering it in an [Arena] lets
// other containers use it as their owner.
//
// right >= left and top >= bottom is a caller contract and is not enforced.
type Container struct {
	arena *Arena
	owner ID
	rel   Point

	left, right, top, bottom int
}

// New creates an ownerless container from absolute bounds.
func New(a *Arena, left, right, top, bottom int) Container {
	return Container{arena: a, left: left, right: right, top: top, bottom: bottom}
}

// NewOwned creates a container owned by owner, offset by rel inside the
// owner's frame, positioned at the local origin.
func NewOwned(a *Arena, owner ID, rel, dim Point) Container {
	return NewOwnedAt(a, owner, rel, Origin, dim)
}

// NewOwnedAt is like [NewOwned] with an explicit position inside the
// container's own frame.
func NewOwnedAt(a *Arena, owner ID, rel, pos, dim Point) Container {
	return Container{
		arena:  a,
		owner:  owner,
		rel:    rel,
		left:   pos.X,
		right:  pos.X + dim.X,
		top:    pos.Y + dim.Y,
		bottom: pos.Y,
	}
}

// Owner returns the owner's ID, or [NoOwner].
func (c Container) Owner() ID { return c.owner }

// Relative returns the offset of this container inside its owner's frame.
func (c Container) Relative() Point { return c.rel }

// SetRelative re-anchors the container inside its owner's frame.
func (c *Container) SetRelative(p Point) { c.rel = p }

// Depth derives the container's depth from its owner chain.
func (c Container) Depth() Depth {
	if c.owner == NoOwner {
		return 0
	}
	return c.arena.Depth(c.owner) + 1
}

// Width returns right - left.
func (c Container) Width() int { return c.right - c.left }

// Height returns top - bottom.
func (c Container) Height() int { return c.top - c.bottom }

// Dimension returns (width, height).
func (c Container) Dimension() Point { return Point{c.Width(), c.Height()} }

// PositionAtCurrentDepth returns the bottom-left corner in the container's
// own frame.
func (c Container) PositionAtCurrentDepth() Point { return Point{c.left, c.bottom} }

// SetPositionAtCurrentDepth translates the whole rectangle so that its
// bottom-left corner lands on p. Dimensions are unchanged.
func (c *Container) SetPositionAtCurrentDepth(p Point) {
	diff := c.PositionAtCurrentDepth().Sub(p)
	c.left -= diff.X
	c.right -= diff.X
	c.top -= diff.Y
	c.bottom -= diff.Y
}

// ToDepth re-expresses the container in the frame of its ancestor at depth d.
// d must lie in [0, c.Depth()].
func (c Container) ToDepth(d Depth) (Container, error) {
	own := c.Depth()
	if d < 0 || d > own {
		return Container{}, errors.New(errors.ErrCodeInvalidDepth, "cannot project depth %d container to depth %d", own, d)
	}
	out := c
	for ; own > d; own-- {
		out = out.unwind()
	}
	return out, nil
}

// unwind moves the container one level up: the result is owned by the
// grandparent and carries the parent's relative position.
func (c Container) unwind() Container {
	if c.owner == NoOwner {
		return c
	}
	parent := c.arena.Get(c.owner)
	return NewOwnedAt(c.arena, parent.owner, parent.rel, c.PositionAtCurrentDepth().Add(c.rel), c.Dimension())
}

func (c Container) mustToDepth(d Depth) Container {
	out, err := c.ToDepth(d)
	if err != nil {
		panic(err)
	}
	return out
}

// Left returns the left bound in the frame at depth d. It panics if d is not
// an ancestor depth of c.
func (c Container) Left(d Depth) int { return c.mustToDepth(d).left }

// Right returns the right bound at depth d.
func (c Container) Right(d Depth) int { return c.mustToDepth(d).right }

// Top returns the top bound at depth d.
func (c Container) Top(d Depth) int { return c.mustToDepth(d).top }

// Bottom returns the bottom bound at depth d.
func (c Container) Bottom(d Depth) int { return c.mustToDepth(d).bottom }

// Position returns the bottom-left corner at depth d.
func (c Container) Position(d Depth) Point { return c.mustToDepth(d).PositionAtCurrentDepth() }

// Center returns the integer center at depth d, rounding toward the
// bottom-left.
func (c Container) Center(d Depth) Point {
	p := c.mustToDepth(d)
	return Point{p.left + p.Width()/2, p.bottom + p.Height()/2}
}

// Centroid returns the exact center at depth d.
func (c Container) Centroid(d Depth) (x, y float64) {
	p := c.mustToDepth(d)
	return float64(p.left+p.right) / 2, float64(p.bottom+p.top) / 2
}

// Join returns the bounding box of c and other computed one level up, owned
// by c's ancestor at that level.
//
// Both containers must have the same depth. When they do not, the envelope is
// still computed at the shallower depth and returned together with a
// DEPTH_MISMATCH error. Joining two root containers yields an ownerless
// envelope in the root frame.
func (c Container) Join(other Container) (Container, error) {
	var err error
	d := c.Depth()
	if od := other.Depth(); od != d {
		err = errors.New(errors.ErrCodeDepthMismatch, "joining containers of different depth: %d and %d", d, od)
		d = min(d, od)
	}

	if d == 0 {
		a, b := c.mustToDepth(0), other.mustToDepth(0)
		return New(c.arena,
			min(a.left, b.left),
			max(a.right, b.right),
			max(a.top, b.top),
			min(a.bottom, b.bottom)), err
	}

	a, b := c.mustToDepth(d-1), other.mustToDepth(d-1)
	left, right := min(a.left, b.left), max(a.right, b.right)
	top, bottom := max(a.top, b.top), min(a.bottom, b.bottom)
	owner := c.mustToDepth(d).owner
	return NewOwned(c.arena, owner, Point{left, bottom}, Point{right - left, top - bottom}), err
}

// Overlaps reports whether c and other intersect, treating both as closed
// rectangles in a shared frame. Touching edges count as overlap.
func (c Container) Overlaps(other Container) bool {
	if c.right < other.left || other.right < c.left || c.top < other.bottom || other.top < c.bottom {
		return false
	}
	return true
}

// ContainsCell reports whether the unit cell whose bottom-left corner is p
// lies inside c.
func (c Container) ContainsCell(p Point) bool {
	return p.X >= c.left && p.X < c.right && p.Y >= c.bottom && p.Y < c.top
}

func (c Container) String() string {
	return fmt.Sprintf("Container(depth=%d pos=%s dim=%s L%d R%d T%d B%d)",
		c.Depth(), c.PositionAtCurrentDepth(), c.Dimension(), c.left, c.right, c.top, c.bottom)
}
