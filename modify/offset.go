package modify

import "github.com/firecad/firecad"

// applyOffset offsets the picked primitive by the signed parameter
// distance. Lines and open polylines translate perpendicular to their
// local direction; rectangles and circles inflate or deflate uniformly
// (not a true parallel-curve offset). The copy flag inserts a new
// primitive instead of replacing the original.
func (t *Tool) applyOffset() error {
	prim, ok := t.scene.Get(t.picks[0].Target)
	if !ok {
		return ErrUnknownTarget
	}

	var result firecad.Primitive
	switch v := prim.(type) {
	case *firecad.Line:
		n := offsetNormal(v.Dir(), v.Mid(), t.params.Side)
		if n == (firecad.Point{}) {
			return ErrDegenerateResult
		}
		shift := n.Mul(t.params.Distance)
		if t.params.Copy {
			result = firecad.NewLine(v.A.Add(shift), v.B.Add(shift))
		} else {
			c := v.Clone().(*firecad.Line)
			c.A = c.A.Add(shift)
			c.B = c.B.Add(shift)
			result = c
		}

	case *firecad.Polyline:
		pts, err := offsetPolyline(v, t.params.Distance, t.params.Side)
		if err != nil {
			return err
		}
		if t.params.Copy {
			result = firecad.NewPolyline(pts, v.Closed)
		} else {
			c := v.Clone().(*firecad.Polyline)
			c.Points = pts
			result = c
		}

	case *firecad.Circle:
		r := v.Radius + t.params.Distance
		if r <= 0 {
			return ErrDegenerateResult
		}
		if t.params.Copy {
			result = firecad.NewCircle(v.Center, r)
		} else {
			c := v.Clone().(*firecad.Circle)
			c.Radius = r
			result = c
		}

	case *firecad.Rectangle:
		nr := v.Rect.Expand(t.params.Distance)
		if nr.IsEmpty() {
			return ErrDegenerateResult
		}
		if t.params.Copy {
			result = firecad.NewRectangle(nr)
		} else {
			c := v.Clone().(*firecad.Rectangle)
			c.Rect = nr
			result = c
		}

	default:
		return ErrUnsupported
	}

	if t.params.Copy {
		t.scene.Insert(result)
	} else {
		t.scene.Replace(result)
	}
	return nil
}

// offsetNormal returns the unit perpendicular of dir, oriented toward the
// side indicator when one is given. A zero dir yields the zero point.
func offsetNormal(dir, on, side firecad.Point) firecad.Point {
	n := dir.Perp()
	if n == (firecad.Point{}) {
		return n
	}
	if side != (firecad.Point{}) && n.Dot(side.Sub(on)) < 0 {
		n = n.Mul(-1)
	}
	return n
}

// offsetPolyline shifts every vertex perpendicular to its local segment
// direction: each vertex follows the segment leading into it, the first
// vertex follows the first segment. This mirrors the shape for piecewise
// straight runs; it is not a parallel-curve offset at corners.
func offsetPolyline(p *firecad.Polyline, dist float64, side firecad.Point) ([]firecad.Point, error) {
	if len(p.Points) < 2 {
		return nil, ErrDegenerateResult
	}
	first := p.Points[1].Sub(p.Points[0]).Normalize()
	ref := offsetNormal(first, p.Points[0].Mid(p.Points[1]), side)
	if ref == (firecad.Point{}) {
		return nil, ErrDegenerateResult
	}
	// Orientation picked on the first segment carries to the rest so the
	// whole run shifts to one side.
	flip := 1.0
	if ref != first.Perp() {
		flip = -1
	}

	out := make([]firecad.Point, len(p.Points))
	for i := range p.Points {
		var dir firecad.Point
		if i == 0 {
			dir = first
		} else {
			dir = p.Points[i].Sub(p.Points[i-1]).Normalize()
		}
		n := dir.Perp()
		if n == (firecad.Point{}) {
			return nil, ErrDegenerateResult
		}
		out[i] = p.Points[i].Add(n.Mul(flip * dist))
	}
	return out, nil
}
