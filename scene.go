package firecad

import "github.com/google/uuid"

// Scene is the primitive collection of one model space together with the
// active configuration, the selection set and the undo history.
//
// A Scene assumes exclusive, serialized access: every mutation happens
// synchronously on the caller's goroutine, and tools mutate only on
// explicit commit.
type Scene struct {
	cfg      Config
	prims    []Primitive
	selected map[uuid.UUID]struct{}
	history  *History
}

// NewScene creates an empty scene. The empty state is recorded as the
// first history snapshot so the first committed mutation can be undone.
func NewScene(cfg Config) *Scene {
	return NewSceneWith(cfg)
}

// NewSceneWith creates a scene seeded with primitives. The seeded state is
// the first history snapshot, so undo can never reach past it to an empty
// drawing. Used when reopening a persisted project.
func NewSceneWith(cfg Config, prims ...Primitive) *Scene {
	s := &Scene{
		cfg:      cfg,
		selected: make(map[uuid.UUID]struct{}),
		history:  NewHistory(0),
	}
	s.prims = append(s.prims, prims...)
	s.history.Push(s.snapshot())
	return s
}

// Config returns the active configuration.
func (s *Scene) Config() Config { return s.cfg }

// SetConfig replaces the active configuration.
// The change participates in history on the next Commit.
func (s *Scene) SetConfig(cfg Config) { s.cfg = cfg }

// Insert adds a primitive to the scene.
func (s *Scene) Insert(p Primitive) {
	s.prims = append(s.prims, p)
}

// Get returns the primitive with the given ID.
func (s *Scene) Get(id uuid.UUID) (Primitive, bool) {
	for _, p := range s.prims {
		if p.ID() == id {
			return p, true
		}
	}
	return nil, false
}

// Replace swaps the stored primitive sharing the given primitive's ID.
// Returns false when no such primitive exists.
func (s *Scene) Replace(p Primitive) bool {
	for i, q := range s.prims {
		if q.ID() == p.ID() {
			s.prims[i] = p
			return true
		}
	}
	return false
}

// Delete removes the primitive with the given ID.
func (s *Scene) Delete(id uuid.UUID) bool {
	for i, p := range s.prims {
		if p.ID() == id {
			s.prims = append(s.prims[:i], s.prims[i+1:]...)
			delete(s.selected, id)
			return true
		}
	}
	return false
}

// Primitives returns the primitives in insertion order.
// The returned slice is shared; callers must not mutate it.
func (s *Scene) Primitives() []Primitive { return s.prims }

// Len returns the number of primitives.
func (s *Scene) Len() int { return len(s.prims) }

// Bounds returns the bounding box of all primitives.
func (s *Scene) Bounds() Rect {
	var r Rect
	for _, p := range s.prims {
		r = r.Union(p.Bounds())
	}
	return r
}

// Select adds primitives to the selection set. Unknown IDs are ignored.
func (s *Scene) Select(ids ...uuid.UUID) {
	for _, id := range ids {
		if _, ok := s.Get(id); ok {
			s.selected[id] = struct{}{}
		}
	}
}

// ClearSelection empties the selection set.
func (s *Scene) ClearSelection() {
	s.selected = make(map[uuid.UUID]struct{})
}

// Selection returns the selected primitives in insertion order.
func (s *Scene) Selection() []Primitive {
	var sel []Primitive
	for _, p := range s.prims {
		if _, ok := s.selected[p.ID()]; ok {
			sel = append(sel, p)
		}
	}
	return sel
}

// HasSelection reports whether any primitive is selected.
func (s *Scene) HasSelection() bool { return len(s.selected) > 0 }

// Commit records the current state as a new history snapshot.
// Committing after an undo truncates the redo tail.
func (s *Scene) Commit() {
	s.history.Push(s.snapshot())
}

// Undo restores the previous snapshot. Returns false at the oldest state.
func (s *Scene) Undo() bool {
	snap := s.history.Undo()
	if snap == nil {
		return false
	}
	s.restore(snap)
	return true
}

// Redo restores the next snapshot. Returns false at the newest state.
func (s *Scene) Redo() bool {
	snap := s.history.Redo()
	if snap == nil {
		return false
	}
	s.restore(snap)
	return true
}

// History exposes the undo stack, primarily for inspection in tests and
// status displays.
func (s *Scene) History() *History { return s.history }

func (s *Scene) snapshot() Snapshot {
	prims := make([]Primitive, len(s.prims))
	for i, p := range s.prims {
		prims[i] = p.Clone()
	}
	return Snapshot{prims: prims, cfg: s.cfg}
}

func (s *Scene) restore(snap *Snapshot) {
	s.prims = snap.prims
	s.cfg = snap.cfg
	// Selection does not survive a history jump.
	s.ClearSelection()
}
