package modify

import (
	"math"

	"github.com/firecad/firecad"
)

// degenerate corner threshold: about 0.06 degrees.
const cornerEps = 1e-3

// applyFillet joins the two picked lines with a sharp corner (radius 0) or
// a tangent arc (radius > 0).
func (t *Tool) applyFillet() error {
	l1, err := t.lineAt(t.picks[0])
	if err != nil {
		return err
	}
	l2, err := t.lineAt(t.picks[1])
	if err != nil {
		return err
	}

	x, ok := firecad.IntersectLines(l1.A, l1.B, l2.A, l2.B)
	if !ok {
		return ErrParallel
	}

	if t.params.Radius <= 0 {
		// Sharp corner: each line's nearer endpoint moves to the true
		// (possibly extrapolated) intersection.
		n1 := withNearEndpoint(l1, x, x)
		n2 := withNearEndpoint(l2, x, x)
		t.scene.Replace(n1)
		t.scene.Replace(n2)
		return nil
	}

	r := t.params.Radius

	// Unit directions from the intersection toward each pick point; the
	// picks disambiguate which side of the corner keeps the arc.
	u1, err := dirToward(l1, x, t.picks[0].At)
	if err != nil {
		return err
	}
	u2, err := dirToward(l2, x, t.picks[1].At)
	if err != nil {
		return err
	}

	cos := clamp(u1.Dot(u2), -1, 1)
	theta := math.Acos(cos)
	if theta < cornerEps || theta > math.Pi-cornerEps {
		return ErrDegenerateCorner
	}

	// Tangent points sit at the tangent-trim distance from the
	// intersection along each line; the arc center sits on the angle
	// bisector at r/sin(theta/2).
	trim := r / math.Tan(theta/2)
	t1 := x.Add(u1.Mul(trim))
	t2 := x.Add(u2.Mul(trim))
	center := x.Add(u1.Add(u2).Normalize().Mul(r / math.Sin(theta/2)))

	a1 := t1.Sub(center).Angle()
	a2 := t2.Sub(center).Angle()
	sweep := normalizeSweep(a2 - a1)

	n1 := withNearEndpoint(l1, x, t1)
	n2 := withNearEndpoint(l2, x, t2)
	t.scene.Replace(n1)
	t.scene.Replace(n2)
	t.scene.Insert(firecad.NewArc(center, r, a1, sweep))
	return nil
}

// withNearEndpoint returns a copy of the line with the endpoint nearer to
// ref replaced by p.
func withNearEndpoint(l *firecad.Line, ref, p firecad.Point) *firecad.Line {
	n := l.Clone().(*firecad.Line)
	if l.A.Distance(ref) <= l.B.Distance(ref) {
		n.A = p
	} else {
		n.B = p
	}
	return n
}

// dirToward returns the unit direction of the line oriented from x toward
// the pick point.
func dirToward(l *firecad.Line, x, pick firecad.Point) (firecad.Point, error) {
	d := l.Dir()
	if d == (firecad.Point{}) {
		return firecad.Point{}, ErrDegenerateCorner
	}
	if d.Dot(pick.Sub(x)) < 0 {
		d = d.Mul(-1)
	}
	return d, nil
}

// normalizeSweep wraps an angle difference into (-pi, pi], selecting the
// short way around, which is always the interior corner for a fillet.
func normalizeSweep(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
