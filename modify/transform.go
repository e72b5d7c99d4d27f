package modify

import (
	"math"

	"github.com/firecad/firecad"
)

// applyMirror reflects the selected primitives across the axis defined by
// the two picked points.
func (t *Tool) applyMirror() error {
	sel := t.scene.Selection()
	if len(sel) == 0 {
		return ErrEmptySelection
	}
	a, b := t.picks[0].At, t.picks[1].At
	if a.Distance(b) < 1e-9 {
		return ErrDegenerateResult
	}
	m := firecad.MirrorAcross(a, b)
	for _, p := range sel {
		t.scene.Replace(p.Transform(m))
	}
	return nil
}

// applyTransform rotates or uniformly scales the selected primitives about
// the picked base point.
func (t *Tool) applyTransform() error {
	sel := t.scene.Selection()
	if len(sel) == 0 {
		return ErrEmptySelection
	}
	base := t.picks[0].At

	var m firecad.Matrix
	switch t.kind {
	case KindRotate:
		m = firecad.RotateAbout(base, t.params.AngleDeg*math.Pi/180)
	case KindScale:
		if t.params.Factor == 0 {
			return ErrDegenerateResult
		}
		m = firecad.ScaleAbout(base, t.params.Factor)
	}
	for _, p := range sel {
		t.scene.Replace(p.Transform(m))
	}
	return nil
}
