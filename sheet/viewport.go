package sheet

import (
	"math"

	"github.com/google/uuid"

	"github.com/firecad/firecad"
)

// Viewport maps a rectangle of sheet space to a scaled, re-centered view
// of model space. SrcCenter is the model-space point shown at the
// viewport's center; ScaleFactor is sheet px per model px and stays
// strictly positive.
type Viewport struct {
	ID          uuid.UUID
	Rect        firecad.Rect
	ScaleFactor float64
	SrcCenter   firecad.Point
}

// ModelToSheet converts a model-space point to sheet space.
func (v *Viewport) ModelToSheet(p firecad.Point) firecad.Point {
	return v.Rect.Center().Add(p.Sub(v.SrcCenter).Mul(v.ScaleFactor))
}

// SheetToModel converts a sheet-space point back to model space.
func (v *Viewport) SheetToModel(p firecad.Point) firecad.Point {
	return v.SrcCenter.Add(p.Sub(v.Rect.Center()).Div(v.ScaleFactor))
}

// Matrix returns the model-to-sheet transform as an affine matrix.
func (v *Viewport) Matrix() firecad.Matrix {
	c := v.Rect.Center()
	return firecad.Translate(c.X, c.Y).
		Multiply(firecad.Scale(v.ScaleFactor, v.ScaleFactor)).
		Multiply(firecad.Translate(-v.SrcCenter.X, -v.SrcCenter.Y))
}

// AutoFit centers the viewport on the content bounding box and derives
// the default scale: the larger of the width and height ratios, padded
// by 10 percent. Empty content leaves a unit scale at the origin.
func (v *Viewport) AutoFit(content firecad.Rect) {
	if content.IsEmpty() {
		v.ScaleFactor = 1
		v.SrcCenter = firecad.Point{}
		return
	}
	wr := v.Rect.Width() / content.Width()
	hr := v.Rect.Height() / content.Height()
	v.ScaleFactor = math.Max(wr, hr) * 1.1
	v.SrcCenter = content.Center()
}
