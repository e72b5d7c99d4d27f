// Package snap resolves candidate lock points near a cursor position.
//
// Given a cursor point in model space, the enabled snap kinds and a fixed
// on-screen search radius, Resolve returns an ordered list of candidates
// (closest first). Resolution is deterministic and side-effect-free: it
// never mutates the scene it queries.
package snap

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/firecad/firecad"
)

// Kind identifies how a candidate lock point was derived.
type Kind int

const (
	KindEndpoint Kind = iota
	KindMidpoint
	KindCenter
	KindIntersection
	KindPerpendicular
	KindGrid
	KindRaw
)

// String returns the kind name for status displays.
func (k Kind) String() string {
	switch k {
	case KindEndpoint:
		return "ENDPOINT"
	case KindMidpoint:
		return "MIDPOINT"
	case KindCenter:
		return "CENTER"
	case KindIntersection:
		return "INTERSECTION"
	case KindPerpendicular:
		return "PERPENDICULAR"
	case KindGrid:
		return "GRID"
	case KindRaw:
		return "RAW"
	default:
		return "UNKNOWN"
	}
}

// Candidate is one resolved lock point.
type Candidate struct {
	Point firecad.Point
	Kind  Kind
	// Owner is the primitive the candidate was derived from.
	// Grid and raw candidates have a nil owner; intersections carry the
	// first of the two source primitives.
	Owner    uuid.UUID
	Distance float64
}

// Result is the ordered candidate list of one query. The first candidate
// is the active snap; Cycle advances to the next without recomputation.
type Result struct {
	candidates []Candidate
	active     int
}

// Active returns the currently active candidate.
func (r Result) Active() Candidate {
	return r.candidates[r.active]
}

// Candidates returns all candidates, closest first.
func (r Result) Candidates() []Candidate { return r.candidates }

// Cycle advances the active candidate, wrapping around.
func (r *Result) Cycle() {
	r.active = (r.active + 1) % len(r.candidates)
}

// Query is one snap request.
type Query struct {
	// Cursor is the cursor position in model space.
	Cursor firecad.Point
	// ViewScale is the current screen px per model px, used to convert the
	// configured screen radius to a model distance so the reach stays
	// visually constant under zoom. Values <= 0 are treated as 1.
	ViewScale float64
}

// segment is a straight span a candidate can be derived from.
type segment struct {
	a, b  firecad.Point
	owner uuid.UUID
}

// Resolve finds lock candidates near the query cursor using the scene's
// snap settings. When no primitive-based candidate is in reach it falls
// back to the grid (if enabled) and finally to the raw cursor point, so
// the result always holds at least one candidate.
func Resolve(s *firecad.Scene, q Query) Result {
	cfg := s.Config()
	scale := q.ViewScale
	if scale <= 0 {
		scale = 1
	}
	radius := cfg.Snap.RadiusPx / scale
	box := firecad.RectAround(q.Cursor, radius)

	var cands []Candidate
	add := func(p firecad.Point, kind Kind, owner uuid.UUID) {
		d := p.Distance(q.Cursor)
		if d <= radius {
			cands = append(cands, Candidate{Point: p, Kind: kind, Owner: owner, Distance: d})
		}
	}

	var segs []segment
	for _, prim := range s.Primitives() {
		if !prim.Bounds().Intersects(box) {
			continue
		}
		switch v := prim.(type) {
		case *firecad.Line:
			segs = append(segs, segment{v.A, v.B, v.ID()})
			if cfg.Snap.Endpoint {
				add(v.A, KindEndpoint, v.ID())
				add(v.B, KindEndpoint, v.ID())
			}
			if cfg.Snap.Midpoint {
				add(v.Mid(), KindMidpoint, v.ID())
			}
		case *firecad.Polyline:
			for _, sg := range v.Segments() {
				segs = append(segs, segment{sg[0], sg[1], v.ID()})
				if cfg.Snap.Midpoint {
					add(sg[0].Mid(sg[1]), KindMidpoint, v.ID())
				}
			}
			if cfg.Snap.Endpoint {
				for _, pt := range v.Points {
					add(pt, KindEndpoint, v.ID())
				}
			}
		case *firecad.Rectangle:
			corners := v.Rect.Corners()
			for i := range corners {
				next := corners[(i+1)%4]
				segs = append(segs, segment{corners[i], next, v.ID()})
				if cfg.Snap.Endpoint {
					add(corners[i], KindEndpoint, v.ID())
				}
				if cfg.Snap.Midpoint {
					add(corners[i].Mid(next), KindMidpoint, v.ID())
				}
			}
			if cfg.Snap.Center {
				add(v.Rect.Center(), KindCenter, v.ID())
			}
		case *firecad.Circle:
			if cfg.Snap.Center {
				add(v.Center, KindCenter, v.ID())
			}
		case *firecad.Arc:
			if cfg.Snap.Endpoint {
				add(v.StartPoint(), KindEndpoint, v.ID())
				add(v.EndPoint(), KindEndpoint, v.ID())
			}
			if cfg.Snap.Center {
				add(v.Center, KindCenter, v.ID())
			}
		}
	}

	if cfg.Snap.Intersection {
		for i := 0; i < len(segs); i++ {
			for j := i + 1; j < len(segs); j++ {
				if segs[i].owner == segs[j].owner {
					continue
				}
				p, ok := firecad.IntersectLines(segs[i].a, segs[i].b, segs[j].a, segs[j].b)
				if ok {
					add(p, KindIntersection, segs[i].owner)
				}
			}
		}
	}

	if cfg.Snap.Perpendicular {
		for _, sg := range segs {
			t := firecad.SegmentParam(q.Cursor, sg.a, sg.b)
			if t >= 0 && t <= 1 {
				add(sg.a.Lerp(sg.b, t), KindPerpendicular, sg.owner)
			}
		}
	}

	cands = dedupe(cands)
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].Distance < cands[j].Distance
	})

	firecad.Logger().Debug("snap resolved",
		"candidates", len(cands),
		"radius", radius,
		"segments", len(segs))

	if len(cands) > 0 {
		return Result{candidates: cands}
	}

	// Fallback: grid snap, then the raw cursor.
	if cfg.Snap.Grid {
		step := cfg.GridStepPx()
		p := firecad.Pt(
			math.Round(q.Cursor.X/step)*step,
			math.Round(q.Cursor.Y/step)*step,
		)
		return Result{candidates: []Candidate{{
			Point: p, Kind: KindGrid, Distance: p.Distance(q.Cursor),
		}}}
	}
	return Result{candidates: []Candidate{{Point: q.Cursor, Kind: KindRaw}}}
}

// dedupe drops candidates that round to the same coordinate at fixed
// precision, keeping the first occurrence.
func dedupe(cands []Candidate) []Candidate {
	type key struct{ x, y int64 }
	seen := make(map[key]struct{}, len(cands))
	out := cands[:0]
	for _, c := range cands {
		k := key{int64(math.Round(c.Point.X * 1e6)), int64(math.Round(c.Point.Y * 1e6))}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, c)
	}
	return out
}
