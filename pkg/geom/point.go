package geom

import (
	"fmt"
	"math"
)

// Point is an integer 2D vector.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Origin is the local origin of every frame.
var Origin = Point{}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(float64(p.X-q.X), float64(p.Y-q.Y))
}

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Depth is the ordinal distance of a frame from the root frame.
type Depth int
