package lattice

import "fmt"

// Point is a position in pixels. Unless noted otherwise a Point is relative
// to the origin of some widget's parent.
type Point struct {
	X, Y int
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// DisplayPoint is a Point in display (screen) coordinates. It is a distinct
// type so that local and display positions cannot be mixed by accident.
type DisplayPoint struct {
	X, Y int
}

// Add returns p+q.
func (p DisplayPoint) Add(q Point) DisplayPoint {
	return DisplayPoint{p.X + q.X, p.Y + q.Y}
}

// Sub returns p-q.
func (p DisplayPoint) Sub(q Point) DisplayPoint {
	return DisplayPoint{p.X - q.X, p.Y - q.Y}
}

func (p DisplayPoint) String() string {
	return fmt.Sprintf("display(%d,%d)", p.X, p.Y)
}

// Size is a width and height in pixels.
type Size struct {
	Width, Height int
}

// Empty reports whether either dimension is zero or negative.
func (s Size) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward. Rectangles are half-open: the
// pixel column X+Width and row Y+Height are outside.
type Rect struct {
	X, Y, Width, Height int
}

// RectFrom builds a Rect from a point and a size.
func RectFrom(p Point, s Size) Rect {
	return Rect{p.X, p.Y, s.Width, s.Height}
}

// Point returns the top-left corner.
func (r Rect) Point() Point {
	return Point{r.X, r.Y}
}

// Size returns the dimensions.
func (r Rect) Size() Size {
	return Size{r.Width, r.Height}
}

// Right returns the first column past the rectangle.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the first row past the rectangle.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Center returns the center point, rounded toward the top-left.
func (r Rect) Center() Point {
	return Point{r.X + r.Width/2, r.Y + r.Height/2}
}

// Area returns Width*Height, or 0 for an empty rectangle.
func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return r.Width * r.Height
}

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() &&
		p.Y >= r.Y && p.Y < r.Bottom()
}

// ContainsRect reports whether o lies completely inside r.
func (r Rect) ContainsRect(o Rect) bool {
	return o.X >= r.X && o.Right() <= r.Right() &&
		o.Y >= r.Y && o.Bottom() <= r.Bottom()
}

// Intersects reports whether r and other share at least one pixel.
func (r Rect) Intersects(other Rect) bool {
	if r.Empty() || other.Empty() {
		return false
	}
	return r.X < other.Right() && other.X < r.Right() &&
		r.Y < other.Bottom() && other.Y < r.Bottom()
}

// Touches reports whether r and other overlap or share an edge.
func (r Rect) Touches(other Rect) bool {
	if r.Empty() || other.Empty() {
		return false
	}
	return r.X <= other.Right() && other.X <= r.Right() &&
		r.Y <= other.Bottom() && other.Y <= r.Bottom()
}

// Intersect returns the overlapping part of r and other. The result is the
// zero Rect when they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	x0 := max(r.X, other.X)
	y0 := max(r.Y, other.Y)
	x1 := min(r.Right(), other.Right())
	y1 := min(r.Bottom(), other.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

// Union returns the smallest rectangle containing both r and other. An empty
// operand is ignored.
func (r Rect) Union(other Rect) Rect {
	if r.Empty() {
		return other
	}
	if other.Empty() {
		return r
	}
	x0 := min(r.X, other.X)
	y0 := min(r.Y, other.Y)
	x1 := max(r.Right(), other.Right())
	y1 := max(r.Bottom(), other.Bottom())
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

// Add translates the rectangle by p.
func (r Rect) Add(p Point) Rect {
	return Rect{r.X + p.X, r.Y + p.Y, r.Width, r.Height}
}

// Sub translates the rectangle by -p.
func (r Rect) Sub(p Point) Rect {
	return Rect{r.X - p.X, r.Y - p.Y, r.Width, r.Height}
}

// Inset shrinks the rectangle by n on every side. The result never has a
// negative size.
func (r Rect) Inset(n int) Rect {
	out := Rect{r.X + n, r.Y + n, r.Width - 2*n, r.Height - 2*n}
	if out.Width < 0 {
		out.Width = 0
	}
	if out.Height < 0 {
		out.Height = 0
	}
	return out
}

func (r Rect) String() string {
	return fmt.Sprintf("[%d,%d %dx%d]", r.X, r.Y, r.Width, r.Height)
}
