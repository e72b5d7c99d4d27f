package firecad

// IntersectLines returns the intersection of the two infinite lines through
// a1-a2 and b1-b2. ok is false when the lines are parallel, coincident, or
// either direction is degenerate.
func IntersectLines(a1, a2, b1, b2 Point) (Point, bool) {
	da := a2.Sub(a1)
	db := b2.Sub(b1)
	denom := da.Cross(db)
	if denom > -1e-9 && denom < 1e-9 {
		return Point{}, false
	}
	t := b1.Sub(a1).Cross(db) / denom
	return a1.Add(da.Mul(t)), true
}

// SegmentParam returns the parameter t of the perpendicular projection of p
// onto the segment a-b, with t=0 at a and t=1 at b. The value is not
// clamped; t outside [0,1] means the foot lies beyond the segment's span.
// A degenerate segment yields t=0.
func SegmentParam(p, a, b Point) float64 {
	d := b.Sub(a)
	len2 := d.Dot(d)
	if len2 == 0 {
		return 0
	}
	return p.Sub(a).Dot(d) / len2
}

// DistanceToSegment returns the distance from p to the segment a-b.
func DistanceToSegment(p, a, b Point) float64 {
	t := SegmentParam(p, a, b)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return p.Distance(a.Lerp(b, t))
}
