package firecad

import (
	"math"

	"github.com/google/uuid"
)

// Primitive is a drawable model-space entity. Primitives are created by
// drafting tools or the DXF importer, mutated or replaced by the
// modification tools, and removed by explicit deletion.
//
// Transform and Clone return copies; a primitive value already placed in a
// Scene is never mutated behind the Scene's back.
type Primitive interface {
	// ID returns the stable identity of the primitive. Transformed and
	// cloned copies keep the same ID; they are the same entity moved.
	ID() uuid.UUID
	// Bounds returns a bounding box. Arc bounds are conservative
	// (the full circle's box).
	Bounds() Rect
	// Transform returns a copy with the affine transform applied.
	Transform(m Matrix) Primitive
	// Clone returns a deep copy with the same ID.
	Clone() Primitive
}

// Line is a straight segment between two endpoints.
type Line struct {
	id   uuid.UUID
	A, B Point
}

// NewLine creates a line between two points.
func NewLine(a, b Point) *Line {
	return &Line{id: uuid.New(), A: a, B: b}
}

func (l *Line) ID() uuid.UUID { return l.id }

func (l *Line) Bounds() Rect { return BoundsOf(l.A, l.B) }

// Dir returns the unit direction from A to B.
func (l *Line) Dir() Point { return l.B.Sub(l.A).Normalize() }

// Mid returns the midpoint of the segment.
func (l *Line) Mid() Point { return l.A.Mid(l.B) }

func (l *Line) Transform(m Matrix) Primitive {
	return &Line{id: l.id, A: m.TransformPoint(l.A), B: m.TransformPoint(l.B)}
}

func (l *Line) Clone() Primitive {
	c := *l
	return &c
}

// Circle is a full circle with a strictly positive radius.
type Circle struct {
	id     uuid.UUID
	Center Point
	Radius float64
}

// NewCircle creates a circle. The radius must be strictly positive.
func NewCircle(center Point, radius float64) *Circle {
	return &Circle{id: uuid.New(), Center: center, Radius: radius}
}

func (c *Circle) ID() uuid.UUID { return c.id }

func (c *Circle) Bounds() Rect { return RectAround(c.Center, c.Radius) }

func (c *Circle) Transform(m Matrix) Primitive {
	return &Circle{
		id:     c.id,
		Center: m.TransformPoint(c.Center),
		Radius: c.Radius * m.ScaleFactor(),
	}
}

func (c *Circle) Clone() Primitive {
	cp := *c
	return &cp
}

// Arc is a circular arc: center, radius, start angle and signed sweep,
// both in radians. The sweep magnitude stays within one full turn.
type Arc struct {
	id     uuid.UUID
	Center Point
	Radius float64
	Start  float64
	Sweep  float64
}

// NewArc creates an arc. The radius must be strictly positive and the
// sweep magnitude is clamped to one full turn.
func NewArc(center Point, radius, start, sweep float64) *Arc {
	if sweep > 2*math.Pi {
		sweep = 2 * math.Pi
	}
	if sweep < -2*math.Pi {
		sweep = -2 * math.Pi
	}
	return &Arc{id: uuid.New(), Center: center, Radius: radius, Start: start, Sweep: sweep}
}

func (a *Arc) ID() uuid.UUID { return a.id }

func (a *Arc) Bounds() Rect { return RectAround(a.Center, a.Radius) }

// StartPoint returns the point at the start angle.
func (a *Arc) StartPoint() Point { return a.PointAt(a.Start) }

// EndPoint returns the point at the end of the sweep.
func (a *Arc) EndPoint() Point { return a.PointAt(a.Start + a.Sweep) }

// PointAt returns the point on the arc's circle at the given angle.
func (a *Arc) PointAt(angle float64) Point {
	return Pt(a.Center.X+a.Radius*math.Cos(angle), a.Center.Y+a.Radius*math.Sin(angle))
}

func (a *Arc) Transform(m Matrix) Primitive {
	// Carry the start angle through the linear part; a mirror flips the
	// sweep direction.
	startVec := m.TransformVector(Pt(math.Cos(a.Start), math.Sin(a.Start)))
	sweep := a.Sweep
	if m.Det() < 0 {
		sweep = -sweep
	}
	return &Arc{
		id:     a.id,
		Center: m.TransformPoint(a.Center),
		Radius: a.Radius * m.ScaleFactor(),
		Start:  startVec.Angle(),
		Sweep:  sweep,
	}
}

func (a *Arc) Clone() Primitive {
	c := *a
	return &c
}

// Flatten approximates the arc with n straight segments, returning n+1
// points from start to end.
func (a *Arc) Flatten(n int) []Point {
	if n < 1 {
		n = 1
	}
	pts := make([]Point, 0, n+1)
	for i := 0; i <= n; i++ {
		angle := a.Start + a.Sweep*float64(i)/float64(n)
		pts = append(pts, a.PointAt(angle))
	}
	return pts
}

// Polyline is an ordered sequence of two or more points, optionally closed.
type Polyline struct {
	id     uuid.UUID
	Points []Point
	Closed bool
}

// NewPolyline creates a polyline from a point sequence.
// The sequence must contain at least two points.
func NewPolyline(points []Point, closed bool) *Polyline {
	return &Polyline{id: uuid.New(), Points: points, Closed: closed}
}

func (p *Polyline) ID() uuid.UUID { return p.id }

func (p *Polyline) Bounds() Rect { return BoundsOf(p.Points...) }

// Segments returns the endpoint pairs of each segment, including the
// closing segment when the polyline is closed.
func (p *Polyline) Segments() [][2]Point {
	if len(p.Points) < 2 {
		return nil
	}
	segs := make([][2]Point, 0, len(p.Points))
	for i := 1; i < len(p.Points); i++ {
		segs = append(segs, [2]Point{p.Points[i-1], p.Points[i]})
	}
	if p.Closed {
		segs = append(segs, [2]Point{p.Points[len(p.Points)-1], p.Points[0]})
	}
	return segs
}

func (p *Polyline) Transform(m Matrix) Primitive {
	pts := make([]Point, len(p.Points))
	for i, pt := range p.Points {
		pts[i] = m.TransformPoint(pt)
	}
	return &Polyline{id: p.id, Points: pts, Closed: p.Closed}
}

func (p *Polyline) Clone() Primitive {
	pts := make([]Point, len(p.Points))
	copy(pts, p.Points)
	return &Polyline{id: p.id, Points: pts, Closed: p.Closed}
}

// Rectangle is an axis-aligned rectangle primitive (sketch type "rect").
// Transforming a rectangle by anything other than a translation converts
// it to the bounding box of its transformed corners.
type Rectangle struct {
	id   uuid.UUID
	Rect Rect
}

// NewRectangle creates a rectangle primitive.
func NewRectangle(r Rect) *Rectangle {
	return &Rectangle{id: uuid.New(), Rect: r}
}

func (r *Rectangle) ID() uuid.UUID { return r.id }

func (r *Rectangle) Bounds() Rect { return r.Rect }

func (r *Rectangle) Transform(m Matrix) Primitive {
	c := r.Rect.Corners()
	var pts [4]Point
	for i, p := range c {
		pts[i] = m.TransformPoint(p)
	}
	return &Rectangle{id: r.id, Rect: BoundsOf(pts[:]...)}
}

func (r *Rectangle) Clone() Primitive {
	c := *r
	return &c
}

// Text is an annotation anchored at a point. The kernel treats text as
// geometry only: its bounds are estimated from the glyph height, and no
// shaping or font metrics are involved.
type Text struct {
	id      uuid.UUID
	Anchor  Point
	Content string
	Height  float64
}

// NewText creates a text annotation.
func NewText(anchor Point, content string, height float64) *Text {
	return &Text{id: uuid.New(), Anchor: anchor, Content: content, Height: height}
}

func (t *Text) ID() uuid.UUID { return t.id }

func (t *Text) Bounds() Rect {
	// Rough advance estimate; good enough for snap-box queries.
	w := 0.6 * t.Height * float64(len([]rune(t.Content)))
	return R(t.Anchor.X, t.Anchor.Y-t.Height, t.Anchor.X+w, t.Anchor.Y)
}

func (t *Text) Transform(m Matrix) Primitive {
	return &Text{
		id:      t.id,
		Anchor:  m.TransformPoint(t.Anchor),
		Content: t.Content,
		Height:  t.Height * m.ScaleFactor(),
	}
}

func (t *Text) Clone() Primitive {
	c := *t
	return &c
}

// RestoreID stamps a primitive with a previously persisted identity.
// It is intended for persistence round-trips (project store, DXF re-import),
// not for general use.
func RestoreID(p Primitive, id uuid.UUID) Primitive {
	switch v := p.(type) {
	case *Line:
		v.id = id
	case *Circle:
		v.id = id
	case *Arc:
		v.id = id
	case *Polyline:
		v.id = id
	case *Rectangle:
		v.id = id
	case *Text:
		v.id = id
	}
	return p
}
