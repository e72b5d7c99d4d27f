package project

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/firecad/firecad"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "job.fcproj"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleState() *State {
	cfg := firecad.NewConfig(
		firecad.WithPxPerFt(48),
		firecad.WithGridStep(6),
		firecad.WithSnap(firecad.SnapSettings{
			RadiusPx: 10, Endpoint: true, Intersection: true, Grid: true,
		}))
	return &State{
		Config: cfg,
		Primitives: []firecad.Primitive{
			firecad.NewLine(firecad.Pt(0, 0), firecad.Pt(10, 0)),
			firecad.NewCircle(firecad.Pt(5, 5), 2),
			firecad.NewArc(firecad.Pt(0, 0), 3, 0, 1.5),
			firecad.NewPolyline([]firecad.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 3}}, true),
			firecad.NewRectangle(firecad.R(1, 1, 9, 6)),
			firecad.NewText(firecad.Pt(2, 2), "SD-1", 12),
		},
		Underlays: []Underlay{{
			ID:        uuid.New(),
			Path:      "floor1.dxf",
			Transform: firecad.Scale(2, -2),
		}},
		Layers: []Layer{{
			Name:    "Walls",
			Color:   color.RGBA{R: 255, A: 255},
			Visible: true,
			Print:   true,
		}},
		Wires: []Wire{{
			ID: uuid.New(), A: firecad.Pt(0, 0), B: firecad.Pt(10, 10), Circuit: "SLC-1",
		}},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := tempStore(t)
	want := sampleState()
	want.Connections = []Connection{{
		ID: uuid.New(), From: want.Primitives[0].ID(), To: want.Primitives[1].ID(),
	}}

	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got.Config != want.Config {
		t.Errorf("config = %+v, want %+v", got.Config, want.Config)
	}
	if len(got.Primitives) != len(want.Primitives) {
		t.Fatalf("loaded %d primitives, want %d", len(got.Primitives), len(want.Primitives))
	}
	byID := make(map[uuid.UUID]firecad.Primitive, len(got.Primitives))
	for _, p := range got.Primitives {
		byID[p.ID()] = p
	}
	for _, p := range want.Primitives {
		q, ok := byID[p.ID()]
		if !ok {
			t.Errorf("primitive %s missing after load", p.ID())
			continue
		}
		if q.Bounds() != p.Bounds() {
			t.Errorf("primitive %T bounds = %v, want %v", p, q.Bounds(), p.Bounds())
		}
	}

	if len(got.Underlays) != 1 || got.Underlays[0] != want.Underlays[0] {
		t.Errorf("underlays = %+v, want %+v", got.Underlays, want.Underlays)
	}
	if len(got.Layers) != 1 || got.Layers[0] != want.Layers[0] {
		t.Errorf("layers = %+v, want %+v", got.Layers, want.Layers)
	}
	if len(got.Wires) != 1 || got.Wires[0] != want.Wires[0] {
		t.Errorf("wires = %+v, want %+v", got.Wires, want.Wires)
	}
	if len(got.Connections) != 1 || got.Connections[0] != want.Connections[0] {
		t.Errorf("connections = %+v, want %+v", got.Connections, want.Connections)
	}
}

func TestGeometryFieldsSurvive(t *testing.T) {
	s := tempStore(t)
	arc := firecad.NewArc(firecad.Pt(3, 4), 5, 0.25, -2)
	text := firecad.NewText(firecad.Pt(1, 1), "FACP", 18)
	if err := s.Save(&State{Config: firecad.NewConfig(), Primitives: []firecad.Primitive{arc, text}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for _, p := range got.Primitives {
		switch v := p.(type) {
		case *firecad.Arc:
			if v.Center != arc.Center || v.Radius != arc.Radius || v.Start != arc.Start || v.Sweep != arc.Sweep {
				t.Errorf("arc = %+v, want %+v", v, arc)
			}
		case *firecad.Text:
			if v.Anchor != text.Anchor || v.Content != text.Content || v.Height != text.Height {
				t.Errorf("text = %+v, want %+v", v, text)
			}
		default:
			t.Errorf("unexpected primitive %T", p)
		}
	}
}

func TestSaveReplacesPreviousState(t *testing.T) {
	s := tempStore(t)
	if err := s.Save(sampleState()); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	second := &State{
		Config:     firecad.NewConfig(),
		Primitives: []firecad.Primitive{firecad.NewLine(firecad.Pt(0, 0), firecad.Pt(1, 1))},
	}
	if err := s.Save(second); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Primitives) != 1 || len(got.Wires) != 0 || len(got.Layers) != 0 {
		t.Errorf("stale rows survived: %d primitives, %d wires, %d layers",
			len(got.Primitives), len(got.Wires), len(got.Layers))
	}
}

func TestLoadEmptyStoreYieldsDefaults(t *testing.T) {
	s := tempStore(t)
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Config != firecad.NewConfig() {
		t.Errorf("config = %+v, want defaults", got.Config)
	}
	if len(got.Primitives) != 0 {
		t.Errorf("fresh store has %d primitives", len(got.Primitives))
	}
}

func TestStateSceneReconstruction(t *testing.T) {
	st := sampleState()
	sc := st.Scene()
	if sc.Len() != len(st.Primitives) {
		t.Fatalf("scene has %d primitives, want %d", sc.Len(), len(st.Primitives))
	}
	for _, p := range st.Primitives {
		if _, ok := sc.Get(p.ID()); !ok {
			t.Errorf("primitive %s missing from scene", p.ID())
		}
	}
}

func TestSceneUndoStopsAtLoadedState(t *testing.T) {
	st := sampleState()
	sc := st.Scene()

	// The loaded state is the oldest snapshot; undo from it is a no-op.
	if sc.Undo() {
		t.Error("undo past the loaded baseline should report false")
	}
	if sc.Len() != len(st.Primitives) {
		t.Fatalf("baseline undo changed the scene: %d primitives, want %d",
			sc.Len(), len(st.Primitives))
	}

	// A committed edit undoes back to the loaded state, not to empty.
	sc.Insert(firecad.NewLine(firecad.Pt(0, 0), firecad.Pt(1, 1)))
	sc.Commit()
	if !sc.Undo() {
		t.Fatal("undo after a commit should succeed")
	}
	if sc.Len() != len(st.Primitives) {
		t.Errorf("undo restored %d primitives, want the loaded %d",
			sc.Len(), len(st.Primitives))
	}
}
