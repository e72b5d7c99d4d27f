package sheet

import (
	"math"
	"testing"

	"github.com/firecad/firecad"
)

func TestPageDimensions(t *testing.T) {
	tests := []struct {
		size PageSize
		o    Orientation
		w, h float64
	}{
		{Letter, Portrait, 8.5, 11},
		{Letter, Landscape, 11, 8.5},
		{Tabloid, Portrait, 11, 17},
		{A3, Landscape, 16.54, 11.69},
	}
	for _, tt := range tests {
		t.Run(tt.size.String()+" "+tt.o.String(), func(t *testing.T) {
			s := NewSheet("s", tt.size, tt.o, 0.5)
			w, h := s.PageIn()
			if w != tt.w || h != tt.h {
				t.Errorf("PageIn() = %v x %v, want %v x %v", w, h, tt.w, tt.h)
			}
		})
	}
}

func TestViewportMappingRoundTrip(t *testing.T) {
	v := &Viewport{
		Rect:        firecad.R(100, 100, 300, 200),
		ScaleFactor: 0.5,
		SrcCenter:   firecad.Pt(40, 60),
	}

	// The source center lands on the viewport center.
	c := v.ModelToSheet(firecad.Pt(40, 60))
	if c != firecad.Pt(200, 150) {
		t.Errorf("center maps to %v, want (200,150)", c)
	}

	p := firecad.Pt(12.5, -8)
	back := v.SheetToModel(v.ModelToSheet(p))
	if math.Abs(back.X-p.X) > 1e-9 || math.Abs(back.Y-p.Y) > 1e-9 {
		t.Errorf("round trip moved %v to %v", p, back)
	}

	// The affine form agrees with the direct mapping.
	mp := v.Matrix().TransformPoint(p)
	dp := v.ModelToSheet(p)
	if math.Abs(mp.X-dp.X) > 1e-9 || math.Abs(mp.Y-dp.Y) > 1e-9 {
		t.Errorf("matrix maps %v, direct maps %v", mp, dp)
	}
}

func TestViewportAutoFit(t *testing.T) {
	v := &Viewport{Rect: firecad.R(0, 0, 200, 100)}
	content := firecad.R(0, 0, 50, 50)
	v.AutoFit(content)

	if v.SrcCenter != firecad.Pt(25, 25) {
		t.Errorf("src center = %v, want content center (25,25)", v.SrcCenter)
	}
	// width ratio 4, height ratio 2: the larger ratio padded by 10%.
	want := 4 * 1.1
	if math.Abs(v.ScaleFactor-want) > 1e-9 {
		t.Errorf("scale = %v, want %v", v.ScaleFactor, want)
	}
}

func TestViewportAutoFitEmptyContent(t *testing.T) {
	v := &Viewport{Rect: firecad.R(0, 0, 200, 100)}
	v.AutoFit(firecad.Rect{})
	if v.ScaleFactor != 1 {
		t.Errorf("scale for empty content = %v, want 1", v.ScaleFactor)
	}
}

func TestManagerActivation(t *testing.T) {
	m := NewManager()
	if m.Active() != nil {
		t.Fatal("fresh manager should display model space")
	}

	s1 := m.CreateSheet("Floor 1", Letter, Landscape, 0.5)
	s2 := m.CreateSheet("Floor 2", Tabloid, Portrait, 0.5)

	if !m.ActivateSheet(s2.ID) {
		t.Fatal("activate failed")
	}
	if got := m.Active(); got == nil || got.ID != s2.ID {
		t.Error("active sheet mismatch")
	}

	m.ActivateModel()
	if m.Active() != nil {
		t.Error("model space not active after ActivateModel")
	}

	// Removing the active sheet falls back to model space.
	m.ActivateSheet(s1.ID)
	if !m.RemoveSheet(s1.ID) {
		t.Fatal("remove failed")
	}
	if m.Active() != nil {
		t.Error("display should fall back to model space")
	}
	if len(m.Sheets()) != 1 || m.Sheets()[0].ID != s2.ID {
		t.Error("wrong sheet removed")
	}
}

func TestActivationDoesNotTouchModelGeometry(t *testing.T) {
	scene := firecad.NewScene(firecad.NewConfig())
	l := firecad.NewLine(firecad.Pt(0, 0), firecad.Pt(10, 0))
	scene.Insert(l)

	m := NewManager()
	s := m.CreateSheet("s", Letter, Portrait, 0.5)
	m.ActivateSheet(s.ID)
	m.ActivateModel()

	got, _ := scene.Get(l.ID())
	if got.(*firecad.Line).B != firecad.Pt(10, 0) {
		t.Error("display switching altered model geometry")
	}
}

func TestPrintScaleMath(t *testing.T) {
	// 1/4" = 1' at 300 dpi with 24 px per model foot:
	// one model foot is 0.25 in = 75 output px, from 24 model px.
	got := PageToModelScale(300, 0.25, 24)
	want := 75.0 / 24.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("PageToModelScale = %v, want %v", got, want)
	}
}

func TestOutputPixels(t *testing.T) {
	w, h := OutputPixels(Letter, Landscape, 300)
	if w != 3300 || h != 2550 {
		t.Errorf("OutputPixels = %dx%d, want 3300x2550", w, h)
	}
}
