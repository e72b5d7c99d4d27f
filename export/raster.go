// Package export renders print proofs: a sheet's viewports rasterized to
// an RGBA image at a fixed dpi. Sheet space is measured in paper inches,
// so one raster pixel is 1/dpi of a paper inch.
//
// The proof is a stroke-only rendering. Fills, line weights per layer and
// plot styles belong to a real print pipeline, not the kernel.
package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/firecad/firecad"
	"github.com/firecad/firecad/sheet"
)

const (
	circleSegments = 64
	arcSegments    = 32
)

// Options control the proof rendering.
type Options struct {
	// DPI is the output resolution. Zero selects 150.
	DPI float64
	// LineWidth is the stroke width in output pixels. Zero selects 1.
	LineWidth float64
	// Background fills the page. The zero value selects white.
	Background color.Color
	// Stroke draws the geometry. The zero value selects black.
	Stroke color.Color
}

func (o Options) withDefaults() Options {
	if o.DPI <= 0 {
		o.DPI = 150
	}
	if o.LineWidth <= 0 {
		o.LineWidth = 1
	}
	if o.Background == nil {
		o.Background = color.White
	}
	if o.Stroke == nil {
		o.Stroke = color.Black
	}
	return o
}

// Proof renders every viewport of sh over the scene's geometry and
// returns the page image. Geometry outside a viewport's frame is clipped
// to that frame.
func Proof(sc *firecad.Scene, sh *sheet.Sheet, opts Options) (*image.RGBA, error) {
	if sh == nil {
		return nil, fmt.Errorf("export: nil sheet")
	}
	opts = opts.withDefaults()

	w, h := sheet.OutputPixels(sh.Size, sh.Orientation, opts.DPI)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("export: page rasterizes to %dx%d at %v dpi", w, h, opts.DPI)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	prims := sc.Primitives()
	for _, vp := range sh.Viewports {
		if err := renderViewport(img, prims, vp, opts); err != nil {
			return nil, err
		}
	}
	firecad.Logger().Info("export: proof rendered",
		"sheet", sh.Name, "size", sh.Size.String(), "dpi", opts.DPI,
		"viewports", len(sh.Viewports))
	return img, nil
}

// renderViewport strokes the scene into one viewport's frame. Each
// viewport gets its own rasterizer sized to its frame, which doubles as
// the clip region.
func renderViewport(img *image.RGBA, prims []firecad.Primitive, vp *sheet.Viewport, opts Options) error {
	if vp.ScaleFactor <= 0 {
		return fmt.Errorf("export: viewport %s scale %v", vp.ID, vp.ScaleFactor)
	}
	x0 := int(math.Floor(vp.Rect.Min.X * opts.DPI))
	y0 := int(math.Floor(vp.Rect.Min.Y * opts.DPI))
	x1 := int(math.Ceil(vp.Rect.Max.X * opts.DPI))
	y1 := int(math.Ceil(vp.Rect.Max.Y * opts.DPI))
	if x1 <= x0 || y1 <= y0 {
		return nil
	}

	// Model px -> paper inches -> raster px, then into frame-local coords.
	device := firecad.Scale(opts.DPI, opts.DPI).Multiply(vp.Matrix())
	origin := firecad.Pt(float64(x0), float64(y0))

	r := vector.NewRasterizer(x1-x0, y1-y0)
	for _, p := range prims {
		for _, seg := range segmentsOf(p) {
			a := device.TransformPoint(seg[0]).Sub(origin)
			b := device.TransformPoint(seg[1]).Sub(origin)
			strokeSegment(r, a, b, opts.LineWidth)
		}
	}

	frame := image.Rect(x0, y0, x1, y1).Intersect(img.Bounds())
	r.Draw(img, frame, image.NewUniform(opts.Stroke), image.Point{})
	return nil
}

// segmentsOf flattens a primitive to straight stroke segments.
// Text renders as an underline tick at the anchor; glyph rendering is
// out of scope for a proof.
func segmentsOf(p firecad.Primitive) [][2]firecad.Point {
	switch v := p.(type) {
	case *firecad.Line:
		return [][2]firecad.Point{{v.A, v.B}}
	case *firecad.Polyline:
		return v.Segments()
	case *firecad.Circle:
		pts := make([]firecad.Point, circleSegments+1)
		for i := 0; i <= circleSegments; i++ {
			t := 2 * math.Pi * float64(i) / circleSegments
			pts[i] = v.Center.Add(firecad.Pt(math.Cos(t), math.Sin(t)).Mul(v.Radius))
		}
		return chain(pts)
	case *firecad.Arc:
		return chain(v.Flatten(arcSegments))
	case *firecad.Rectangle:
		c := v.Rect.Corners()
		return [][2]firecad.Point{{c[0], c[1]}, {c[1], c[2]}, {c[2], c[3]}, {c[3], c[0]}}
	case *firecad.Text:
		end := v.Anchor.Add(firecad.Pt(0.6*v.Height*float64(len([]rune(v.Content))), 0))
		return [][2]firecad.Point{{v.Anchor, end}}
	}
	return nil
}

func chain(pts []firecad.Point) [][2]firecad.Point {
	if len(pts) < 2 {
		return nil
	}
	segs := make([][2]firecad.Point, 0, len(pts)-1)
	for i := 1; i < len(pts); i++ {
		segs = append(segs, [2]firecad.Point{pts[i-1], pts[i]})
	}
	return segs
}

// strokeSegment adds a filled quad covering the segment at the given
// width to the rasterizer.
func strokeSegment(r *vector.Rasterizer, a, b firecad.Point, width float64) {
	d := b.Sub(a)
	if d.Length() < 1e-9 {
		return
	}
	n := d.Normalize().Perp().Mul(width / 2)
	p0 := a.Add(n)
	p1 := b.Add(n)
	p2 := b.Sub(n)
	p3 := a.Sub(n)
	r.MoveTo(float32(p0.X), float32(p0.Y))
	r.LineTo(float32(p1.X), float32(p1.Y))
	r.LineTo(float32(p2.X), float32(p2.Y))
	r.LineTo(float32(p3.X), float32(p3.Y))
	r.ClosePath()
}
