package modify

import "github.com/firecad/firecad"

// applyChamfer bevels the corner of the two picked lines using two
// independent trim distances. Each line's near endpoint moves back from
// the intersection by its own distance along its own direction; no
// connecting segment is inserted, the bevel is implied by the two new
// endpoints.
func (t *Tool) applyChamfer() error {
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

	n1, err := chamferLine(l1, x, t.params.Dist1)
	if err != nil {
		return err
	}
	n2, err := chamferLine(l2, x, t.params.Dist2)
	if err != nil {
		return err
	}
	t.scene.Replace(n1)
	t.scene.Replace(n2)
	return nil
}

// chamferLine moves the endpoint nearer to x back by d along the line,
// away from the intersection toward the far endpoint.
func chamferLine(l *firecad.Line, x firecad.Point, d float64) (*firecad.Line, error) {
	far := l.B
	if l.A.Distance(x) > l.B.Distance(x) {
		far = l.A
	}
	away := far.Sub(x).Normalize()
	if away == (firecad.Point{}) {
		return nil, ErrDegenerateCorner
	}
	return withNearEndpoint(l, x, x.Add(away.Mul(d))), nil
}
