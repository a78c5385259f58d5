package render

import (
	"strings"

	"github.com/matzehuels/roomgen/pkg/geom"
	"github.com/matzehuels/roomgen/pkg/room"
)

// Map glyphs.
const (
	GlyphEmpty   = '.'
	GlyphRoom    = '#'
	GlyphPassage = '+'
	GlyphOpen    = 'o'
	GlyphSpawnA  = 'A'
	GlyphSpawnB  = 'B'
)

// TextOption configures [Text].
type TextOption func(*textRenderer)

type textRenderer struct {
	anchors []geom.Point
	open    bool
	margin  int
}

// WithAnchors marks the two spawn anchors.
func WithAnchors(a, b geom.Point) TextOption {
	return func(r *textRenderer) { r.anchors = []geom.Point{a, b} }
}

// WithOpenDoorways draws doorways of entrances that are still available.
func WithOpenDoorways() TextOption { return func(r *textRenderer) { r.open = true } }

// WithMargin pads the map with empty cells on every side.
func WithMargin(n int) TextOption { return func(r *textRenderer) { r.margin = max(n, 0) } }

// Text draws rooms as an ASCII map, north up. An empty room list yields an
// empty string.
func Text(rooms []room.Room, opts ...TextOption) string {
	r := textRenderer{margin: 1}
	for _, opt := range opts {
		opt(&r)
	}
	if len(rooms) == 0 {
		return ""
	}

	left, right, top, bottom := bounds(rooms)
	left -= r.margin
	bottom -= r.margin
	right += r.margin
	top += r.margin

	w, h := right-left, top-bottom
	grid := make([][]byte, h)
	for y := range grid {
		grid[y] = []byte(strings.Repeat(string(GlyphEmpty), w))
	}
	set := func(p geom.Point, c byte) {
		x, y := p.X-left, p.Y-bottom
		if x >= 0 && x < w && y >= 0 && y < h {
			grid[y][x] = c
		}
	}

	for _, rm := range rooms {
		fp, _ := rm.Footprint().ToDepth(0)
		for y := fp.Bottom(0); y < fp.Top(0); y++ {
			for x := fp.Left(0); x < fp.Right(0); x++ {
				set(geom.Pt(x, y), GlyphRoom)
			}
		}
	}
	joinedDoorways(rooms).Each(func(d room.Doorway) { set(d.At, GlyphPassage) })
	if r.open {
		for _, rm := range rooms {
			for _, d := range rm.OpenDoorways() {
				set(d.At, GlyphOpen)
			}
		}
	}
	if len(r.anchors) == 2 {
		set(r.anchors[0], GlyphSpawnA)
		set(r.anchors[1], GlyphSpawnB)
	}

	var b strings.Builder
	for y := h - 1; y >= 0; y-- {
		b.Write(grid[y])
		b.WriteByte('\n')
	}
	return b.String()
}

func bounds(rooms []room.Room) (left, right, top, bottom int) {
	for i, rm := range rooms {
		fp, _ := rm.Footprint().ToDepth(0)
		if i == 0 {
			left, right, top, bottom = fp.Left(0), fp.Right(0), fp.Top(0), fp.Bottom(0)
			continue
		}
		left = min(left, fp.Left(0))
		right = max(right, fp.Right(0))
		top = max(top, fp.Top(0))
		bottom = min(bottom, fp.Bottom(0))
	}
	return left, right, top, bottom
}
