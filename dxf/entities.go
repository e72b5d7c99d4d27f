package dxf

import (
	"fmt"
	"math"

	"github.com/firecad/firecad"
)

const (
	ellipseSegments = 32
	splineSamples   = 24
	maxInsertDepth  = 8
)

// mergedEntities resolves legacy POLYLINE/VERTEX/SEQEND runs into single
// polyline entities so the converter sees one entity per shape.
func mergedEntities(list []entity) []entity {
	out := make([]entity, 0, len(list))
	for i := 0; i < len(list); i++ {
		e := list[i]
		if e.kind != "POLYLINE" {
			if e.kind == "VERTEX" || e.kind == "SEQEND" {
				continue // stray vertex outside a POLYLINE run
			}
			out = append(out, e)
			continue
		}
		for j := i + 1; j < len(list); j++ {
			if list[j].kind == "VERTEX" {
				e.tags = append(e.tags, list[j].tags...)
				i = j
				continue
			}
			if list[j].kind == "SEQEND" {
				i = j
			}
			break
		}
		out = append(out, e)
	}
	return out
}

// vertices collects repeated 10/20 coordinate pairs from an entity's tags
// in order of appearance.
func (e *entity) vertices() []firecad.Point {
	var pts []firecad.Point
	var x float64
	haveX := false
	for _, t := range e.tags {
		switch t.Code {
		case 10:
			x = t.Float()
			haveX = true
		case 20:
			if haveX {
				pts = append(pts, firecad.Pt(x, t.Float()))
				haveX = false
			}
		}
	}
	return pts
}

// convert turns one raw entity into primitives, applying the accumulated
// transform m (global normalization composed with any block-insert
// transforms). Unknown entity kinds yield no primitives and no error.
func (d *document) convert(e *entity, m firecad.Matrix, depth int) ([]firecad.Primitive, error) {
	switch e.kind {
	case "LINE":
		a := firecad.Pt(e.float(10, 0), e.float(20, 0))
		b := firecad.Pt(e.float(11, 0), e.float(21, 0))
		return []firecad.Primitive{firecad.NewLine(a, b).Transform(m)}, nil

	case "CIRCLE":
		c := firecad.Pt(e.float(10, 0), e.float(20, 0))
		r := e.float(40, 0)
		if r <= 0 {
			return nil, fmt.Errorf("dxf: CIRCLE with radius %v", r)
		}
		return []firecad.Primitive{firecad.NewCircle(c, r).Transform(m)}, nil

	case "ARC":
		c := firecad.Pt(e.float(10, 0), e.float(20, 0))
		r := e.float(40, 0)
		if r <= 0 {
			return nil, fmt.Errorf("dxf: ARC with radius %v", r)
		}
		start := e.float(50, 0) * math.Pi / 180
		end := e.float(51, 0) * math.Pi / 180
		sweep := end - start
		for sweep <= 0 {
			sweep += 2 * math.Pi
		}
		return []firecad.Primitive{firecad.NewArc(c, r, start, sweep).Transform(m)}, nil

	case "LWPOLYLINE", "POLYLINE":
		pts := e.vertices()
		if len(pts) < 2 {
			return nil, fmt.Errorf("dxf: polyline with %d vertices", len(pts))
		}
		// Bulge arc segments are flattened to straight chords.
		closed := e.int(70, 0)&1 != 0
		return []firecad.Primitive{firecad.NewPolyline(pts, closed).Transform(m)}, nil

	case "ELLIPSE":
		return convertEllipse(e, m)

	case "SPLINE":
		return convertSpline(e, m)

	case "INSERT":
		return d.convertInsert(e, m, depth)
	}
	return nil, nil
}

// convertEllipse samples the ellipse at fixed resolution into a polyline.
func convertEllipse(e *entity, m firecad.Matrix) ([]firecad.Primitive, error) {
	center := firecad.Pt(e.float(10, 0), e.float(20, 0))
	major := firecad.Pt(e.float(11, 0), e.float(21, 0))
	ratio := e.float(40, 0)
	if major == (firecad.Point{}) || ratio <= 0 {
		return nil, fmt.Errorf("dxf: degenerate ELLIPSE")
	}
	start := e.float(41, 0)
	end := e.float(42, 2*math.Pi)
	for end <= start {
		end += 2 * math.Pi
	}
	minor := firecad.Pt(-major.Y, major.X).Mul(ratio)

	pts := make([]firecad.Point, 0, ellipseSegments+1)
	for i := 0; i <= ellipseSegments; i++ {
		t := start + (end-start)*float64(i)/ellipseSegments
		p := center.Add(major.Mul(math.Cos(t))).Add(minor.Mul(math.Sin(t)))
		pts = append(pts, p)
	}
	closed := math.Abs((end-start)-2*math.Pi) < 1e-9
	if closed {
		pts = pts[:len(pts)-1]
	}
	return []firecad.Primitive{firecad.NewPolyline(pts, closed).Transform(m)}, nil
}

// convertSpline approximates the spline with a fixed-count polyline. With
// four or more control points a uniform cubic B-spline is sampled;
// degenerate splines fall back to the control polygon.
func convertSpline(e *entity, m firecad.Matrix) ([]firecad.Primitive, error) {
	ctrl := e.vertices()
	if len(ctrl) < 2 {
		return nil, fmt.Errorf("dxf: SPLINE with %d control points", len(ctrl))
	}
	if len(ctrl) < 4 {
		return []firecad.Primitive{firecad.NewPolyline(ctrl, false).Transform(m)}, nil
	}

	pts := make([]firecad.Point, 0, splineSamples+1)
	spans := len(ctrl) - 3
	for i := 0; i <= splineSamples; i++ {
		u := float64(i) / splineSamples * float64(spans)
		span := int(u)
		if span >= spans {
			span = spans - 1
		}
		t := u - float64(span)
		pts = append(pts, deBoorCubic(ctrl[span], ctrl[span+1], ctrl[span+2], ctrl[span+3], t))
	}
	return []firecad.Primitive{firecad.NewPolyline(pts, false).Transform(m)}, nil
}

// deBoorCubic evaluates one span of a uniform cubic B-spline.
func deBoorCubic(p0, p1, p2, p3 firecad.Point, t float64) firecad.Point {
	t2 := t * t
	t3 := t2 * t
	b0 := (1 - 3*t + 3*t2 - t3) / 6
	b1 := (4 - 6*t2 + 3*t3) / 6
	b2 := (1 + 3*t + 3*t2 - 3*t3) / 6
	b3 := t3 / 6
	return p0.Mul(b0).Add(p1.Mul(b1)).Add(p2.Mul(b2)).Add(p3.Mul(b3))
}

// convertInsert expands a block reference to its constituent entities
// (virtual instancing) and converts each with the composed transform.
func (d *document) convertInsert(e *entity, m firecad.Matrix, depth int) ([]firecad.Primitive, error) {
	if depth >= maxInsertDepth {
		return nil, fmt.Errorf("dxf: INSERT nesting deeper than %d", maxInsertDepth)
	}
	name := e.str(2)
	block, ok := d.blocks[name]
	if !ok {
		return nil, fmt.Errorf("dxf: INSERT of unknown block %q", name)
	}

	at := firecad.Pt(e.float(10, 0), e.float(20, 0))
	sx := e.float(41, 1)
	sy := e.float(42, 1)
	rot := e.float(50, 0) * math.Pi / 180
	local := firecad.Translate(at.X, at.Y).
		Multiply(firecad.Rotate(rot)).
		Multiply(firecad.Scale(sx, sy)).
		Multiply(firecad.Translate(-block.baseX, -block.baseY))
	sub := m.Multiply(local)

	var out []firecad.Primitive
	for _, be := range mergedEntities(block.entities) {
		prims, err := d.convert(&be, sub, depth+1)
		if err != nil {
			// One bad entity inside a block never aborts the insert.
			firecad.Logger().Warn("dxf: skipping block entity",
				"block", name, "kind", be.kind, "err", err)
			continue
		}
		out = append(out, prims...)
	}
	return out, nil
}
