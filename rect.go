package firecad

import "math"

// Rect is an axis-aligned rectangle given by its min and max corners.
// It is the kernel's bounding-box type; the Rectangle primitive wraps it.
type Rect struct {
	Min, Max Point
}

// R creates a Rect from two corner coordinates, normalizing the order.
func R(x0, y0, x1, y1 float64) Rect {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	return Rect{Min: Pt(x0, y0), Max: Pt(x1, y1)}
}

// RectAround returns the square box of half-size r centered on p.
func RectAround(p Point, r float64) Rect {
	return Rect{Min: Pt(p.X-r, p.Y-r), Max: Pt(p.X+r, p.Y+r)}
}

// BoundsOf returns the bounding box of a set of points.
// Returns an empty Rect when pts is empty.
func BoundsOf(pts ...Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	r := Rect{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		r.Min.X = math.Min(r.Min.X, p.X)
		r.Min.Y = math.Min(r.Min.Y, p.Y)
		r.Max.X = math.Max(r.Max.X, p.X)
		r.Max.Y = math.Max(r.Max.Y, p.Y)
	}
	return r
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Center returns the center point.
func (r Rect) Center() Point {
	return Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y
}

// Contains reports whether p lies inside or on the boundary of r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X &&
		p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Intersects reports whether two rectangles overlap (touching counts).
func (r Rect) Intersects(o Rect) bool {
	return r.Min.X <= o.Max.X && o.Min.X <= r.Max.X &&
		r.Min.Y <= o.Max.Y && o.Min.Y <= r.Max.Y
}

// Union returns the smallest rectangle covering both r and o.
// A zero-value Rect is treated as empty and yields the other operand.
func (r Rect) Union(o Rect) Rect {
	if r == (Rect{}) {
		return o
	}
	if o == (Rect{}) {
		return r
	}
	return Rect{
		Min: Pt(math.Min(r.Min.X, o.Min.X), math.Min(r.Min.Y, o.Min.Y)),
		Max: Pt(math.Max(r.Max.X, o.Max.X), math.Max(r.Max.Y, o.Max.Y)),
	}
}

// Expand returns the rectangle grown by d on every side.
// Negative d shrinks; the result is not re-normalized.
func (r Rect) Expand(d float64) Rect {
	return Rect{
		Min: Pt(r.Min.X-d, r.Min.Y-d),
		Max: Pt(r.Max.X+d, r.Max.Y+d),
	}
}

// Corners returns the four corners in clockwise order from Min.
func (r Rect) Corners() [4]Point {
	return [4]Point{
		r.Min,
		Pt(r.Max.X, r.Min.Y),
		r.Max,
		Pt(r.Min.X, r.Max.Y),
	}
}
