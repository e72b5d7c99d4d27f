package firecad

// Snapshot is an immutable full-state copy of the primitive collection and
// the settings in effect, taken after every committed mutation.
type Snapshot struct {
	prims []Primitive
	cfg   Config
}

// History manages undo/redo as a bounded stack of full-state snapshots.
// Committing after an undo truncates the redo tail. Underflow and overflow
// are no-ops: Undo at the oldest state and Redo at the newest return nil.
type History struct {
	states  []Snapshot
	current int
	max     int
}

// NewHistory creates a history keeping at most max snapshots.
func NewHistory(max int) *History {
	if max <= 0 {
		max = 50
	}
	return &History{
		states:  make([]Snapshot, 0, max),
		current: -1,
		max:     max,
	}
}

// Push records a new snapshot, truncating any redo tail.
// If the stack is full the oldest snapshot is dropped.
func (h *History) Push(s Snapshot) {
	if h.current < len(h.states)-1 {
		h.states = h.states[:h.current+1]
	}
	h.states = append(h.states, s)
	if len(h.states) > h.max {
		h.states = h.states[1:]
	} else {
		h.current++
	}
}

// CanUndo reports whether an earlier snapshot exists.
func (h *History) CanUndo() bool { return h.current > 0 }

// CanRedo reports whether a later snapshot exists.
func (h *History) CanRedo() bool { return h.current < len(h.states)-1 }

// Undo steps back one snapshot. Returns nil at the oldest state.
// The returned snapshot's primitives are clones so later edits cannot
// corrupt history.
func (h *History) Undo() *Snapshot {
	if !h.CanUndo() {
		return nil
	}
	h.current--
	s := h.states[h.current].clone()
	return &s
}

// Redo steps forward one snapshot. Returns nil at the newest state.
func (h *History) Redo() *Snapshot {
	if !h.CanRedo() {
		return nil
	}
	h.current++
	s := h.states[h.current].clone()
	return &s
}

// Stats returns the current position (1-based) and total snapshot count.
func (h *History) Stats() (current, total int) {
	return h.current + 1, len(h.states)
}

func (s Snapshot) clone() Snapshot {
	prims := make([]Primitive, len(s.prims))
	for i, p := range s.prims {
		prims[i] = p.Clone()
	}
	return Snapshot{prims: prims, cfg: s.cfg}
}
