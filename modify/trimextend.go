package modify

import "github.com/firecad/firecad"

// applyTrimExtend shortens or lengthens the target line to meet the
// boundary line at their infinite-line intersection. The first pick is the
// boundary, the second the target; the target endpoint nearer the pick
// point is the one replaced. For extend this moves it past the original
// segment's reach, which is the same computation.
func (t *Tool) applyTrimExtend() error {
	boundary, err := t.lineAt(t.picks[0])
	if err != nil {
		return err
	}
	target, err := t.lineAt(t.picks[1])
	if err != nil {
		return err
	}

	x, ok := firecad.IntersectLines(boundary.A, boundary.B, target.A, target.B)
	if !ok {
		return ErrNoIntersection
	}

	t.scene.Replace(withNearEndpoint(target, t.picks[1].At, x))
	return nil
}
