package snap

import (
	"math"
	"testing"

	"github.com/firecad/firecad"
)

func sceneWith(snaps firecad.SnapSettings, prims ...firecad.Primitive) *firecad.Scene {
	s := firecad.NewScene(firecad.NewConfig(firecad.WithSnap(snaps)))
	for _, p := range prims {
		s.Insert(p)
	}
	return s
}

func onlyKind(k string) firecad.SnapSettings {
	s := firecad.SnapSettings{RadiusPx: 8}
	switch k {
	case "endpoint":
		s.Endpoint = true
	case "midpoint":
		s.Midpoint = true
	case "center":
		s.Center = true
	case "intersection":
		s.Intersection = true
	case "perpendicular":
		s.Perpendicular = true
	}
	return s
}

func TestMidpointAtZeroDistance(t *testing.T) {
	line := firecad.NewLine(firecad.Pt(0, 0), firecad.Pt(10, 0))
	s := sceneWith(onlyKind("midpoint"), line)

	r := Resolve(s, Query{Cursor: firecad.Pt(5, 0), ViewScale: 1})
	got := r.Active()
	if got.Kind != KindMidpoint {
		t.Fatalf("active kind = %v, want MIDPOINT", got.Kind)
	}
	if got.Distance != 0 {
		t.Errorf("distance = %v, want 0", got.Distance)
	}
	if got.Point != firecad.Pt(5, 0) {
		t.Errorf("point = %v, want (5,0)", got.Point)
	}
}

func TestEndpointOrderingAndCycle(t *testing.T) {
	line := firecad.NewLine(firecad.Pt(0, 0), firecad.Pt(10, 0))
	s := sceneWith(onlyKind("endpoint"), line)

	r := Resolve(s, Query{Cursor: firecad.Pt(3, 0), ViewScale: 1})
	cands := r.Candidates()
	if len(cands) != 2 {
		t.Fatalf("candidates = %d, want 2", len(cands))
	}
	if cands[0].Point != firecad.Pt(0, 0) {
		t.Errorf("closest = %v, want (0,0)", cands[0].Point)
	}

	first := r.Active()
	r.Cycle()
	second := r.Active()
	if first.Point == second.Point {
		t.Error("cycle did not advance")
	}
	r.Cycle()
	if r.Active().Point != first.Point {
		t.Error("cycle did not wrap around")
	}
}

func TestIntersectionSnap(t *testing.T) {
	l1 := firecad.NewLine(firecad.Pt(-10, 0), firecad.Pt(10, 0))
	l2 := firecad.NewLine(firecad.Pt(0, -10), firecad.Pt(0, 10))
	s := sceneWith(onlyKind("intersection"), l1, l2)

	r := Resolve(s, Query{Cursor: firecad.Pt(1, 1), ViewScale: 1})
	got := r.Active()
	if got.Kind != KindIntersection {
		t.Fatalf("kind = %v, want INTERSECTION", got.Kind)
	}
	if got.Point != firecad.Pt(0, 0) {
		t.Errorf("point = %v, want (0,0)", got.Point)
	}
}

func TestPerpendicularWithinSpanOnly(t *testing.T) {
	line := firecad.NewLine(firecad.Pt(0, 0), firecad.Pt(10, 0))

	s := sceneWith(onlyKind("perpendicular"), line)
	r := Resolve(s, Query{Cursor: firecad.Pt(4, 3), ViewScale: 1})
	got := r.Active()
	if got.Kind != KindPerpendicular {
		t.Fatalf("kind = %v, want PERPENDICULAR", got.Kind)
	}
	if got.Point != firecad.Pt(4, 0) {
		t.Errorf("foot = %v, want (4,0)", got.Point)
	}

	// Foot beyond the segment span: no perpendicular candidate.
	r = Resolve(s, Query{Cursor: firecad.Pt(14, 3), ViewScale: 1})
	if r.Active().Kind == KindPerpendicular {
		t.Error("perpendicular reported for foot outside segment span")
	}
}

func TestCenterSnap(t *testing.T) {
	c := firecad.NewCircle(firecad.Pt(5, 5), 20)
	s := sceneWith(onlyKind("center"), c)

	r := Resolve(s, Query{Cursor: firecad.Pt(6, 5), ViewScale: 1})
	got := r.Active()
	if got.Kind != KindCenter || got.Point != firecad.Pt(5, 5) {
		t.Errorf("active = %v %v, want CENTER (5,5)", got.Kind, got.Point)
	}
}

func TestRadiusScalesWithView(t *testing.T) {
	line := firecad.NewLine(firecad.Pt(0, 0), firecad.Pt(10, 0))
	s := sceneWith(onlyKind("endpoint"), line)

	// At 2x zoom the 8 px screen radius is 4 model px; the nearest
	// endpoint sits sqrt(17) px away and must not snap.
	r := Resolve(s, Query{Cursor: firecad.Pt(6, 1), ViewScale: 2})
	if r.Active().Kind == KindEndpoint {
		t.Error("endpoint beyond the zoom-adjusted radius snapped")
	}

	// Zoomed out 0.5x the radius covers 16 model px, so it snaps.
	r = Resolve(s, Query{Cursor: firecad.Pt(6, 1), ViewScale: 0.5})
	if r.Active().Kind != KindEndpoint {
		t.Error("endpoint inside the zoom-adjusted radius missed")
	}
}

func TestGridFallback(t *testing.T) {
	snaps := firecad.SnapSettings{RadiusPx: 8, Grid: true}
	s := firecad.NewScene(firecad.NewConfig(
		firecad.WithPxPerFt(24),
		firecad.WithGridStep(6), // 6 in = 12 px at 24 px/ft
		firecad.WithSnap(snaps),
	))

	r := Resolve(s, Query{Cursor: firecad.Pt(13, 22), ViewScale: 1})
	got := r.Active()
	if got.Kind != KindGrid {
		t.Fatalf("kind = %v, want GRID", got.Kind)
	}
	if got.Point != firecad.Pt(12, 24) {
		t.Errorf("grid point = %v, want (12,24)", got.Point)
	}
}

func TestRawFallback(t *testing.T) {
	s := firecad.NewScene(firecad.NewConfig(firecad.WithSnap(firecad.SnapSettings{RadiusPx: 8})))
	cursor := firecad.Pt(3.7, -2.2)
	r := Resolve(s, Query{Cursor: cursor, ViewScale: 1})
	got := r.Active()
	if got.Kind != KindRaw || got.Point != cursor {
		t.Errorf("fallback = %v %v, want RAW at cursor", got.Kind, got.Point)
	}
}

func TestDedupeCoincidentEndpoints(t *testing.T) {
	// Two lines sharing a corner: the shared endpoint must appear once.
	l1 := firecad.NewLine(firecad.Pt(0, 0), firecad.Pt(10, 0))
	l2 := firecad.NewLine(firecad.Pt(10, 0), firecad.Pt(10, 10))
	s := sceneWith(onlyKind("endpoint"), l1, l2)

	r := Resolve(s, Query{Cursor: firecad.Pt(10, 1), ViewScale: 1})
	count := 0
	for _, c := range r.Candidates() {
		if c.Point == firecad.Pt(10, 0) {
			count++
		}
	}
	if count != 1 {
		t.Errorf("shared endpoint appears %d times, want 1", count)
	}
}

func TestResolveDoesNotMutateScene(t *testing.T) {
	line := firecad.NewLine(firecad.Pt(0, 0), firecad.Pt(10, 0))
	s := sceneWith(firecad.DefaultSnapSettings(), line)
	before := s.Len()

	for i := 0; i < 5; i++ {
		Resolve(s, Query{Cursor: firecad.Pt(float64(i), 0), ViewScale: 1})
	}
	if s.Len() != before {
		t.Error("resolve mutated the scene")
	}
	got, _ := s.Get(line.ID())
	if got.(*firecad.Line).B != firecad.Pt(10, 0) {
		t.Error("resolve altered primitive geometry")
	}
}

func TestDeterministicAcrossRuns(t *testing.T) {
	prims := []firecad.Primitive{
		firecad.NewLine(firecad.Pt(0, 0), firecad.Pt(10, 0)),
		firecad.NewLine(firecad.Pt(0, 2), firecad.Pt(10, 2)),
		firecad.NewCircle(firecad.Pt(5, 1), 3),
	}
	s := sceneWith(firecad.DefaultSnapSettings(), prims...)
	q := Query{Cursor: firecad.Pt(5, 1), ViewScale: 1}

	first := Resolve(s, q).Candidates()
	for i := 0; i < 3; i++ {
		again := Resolve(s, q).Candidates()
		if len(again) != len(first) {
			t.Fatalf("run %d: %d candidates, want %d", i, len(again), len(first))
		}
		for j := range first {
			if first[j].Point != again[j].Point || first[j].Kind != again[j].Kind {
				t.Fatalf("run %d: candidate %d differs", i, j)
			}
		}
	}
}

func TestMidpointDistanceMath(t *testing.T) {
	line := firecad.NewLine(firecad.Pt(0, 0), firecad.Pt(8, 6))
	s := sceneWith(onlyKind("midpoint"), line)

	r := Resolve(s, Query{Cursor: firecad.Pt(4, 0), ViewScale: 1})
	got := r.Active()
	if got.Kind != KindMidpoint {
		t.Fatalf("kind = %v, want MIDPOINT", got.Kind)
	}
	want := math.Hypot(0, 3)
	if math.Abs(got.Distance-want) > 1e-9 {
		t.Errorf("distance = %v, want %v", got.Distance, want)
	}
}
