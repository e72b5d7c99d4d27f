// Package modify implements the interactive modification tools: fillet,
// chamfer, trim, extend, offset, mirror, rotate and scale.
//
// All tools share one pick/cancel/commit state machine; each kind supplies
// only its geometry function. A tool mutates the scene exclusively on a
// successful commit, which also pushes an undo snapshot. Failed or
// cancelled operations leave the scene and its history untouched.
package modify

import (
	"github.com/google/uuid"

	"github.com/firecad/firecad"
)

// State is the position of a tool in its pick cycle.
type State int

const (
	StateIdle State = iota
	StateAwaitingPick1
	StateAwaitingPick2
	StateAwaitingParameter
)

// String returns the state name for status displays.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateAwaitingPick1:
		return "PICK1"
	case StateAwaitingPick2:
		return "PICK2"
	case StateAwaitingParameter:
		return "PARAM"
	default:
		return "UNKNOWN"
	}
}

// Kind selects the geometry operation a Tool performs.
type Kind int

const (
	KindFillet Kind = iota
	KindChamfer
	KindTrim
	KindExtend
	KindOffset
	KindMirror
	KindRotate
	KindScale
)

// String returns the kind name for status displays.
func (k Kind) String() string {
	switch k {
	case KindFillet:
		return "FILLET"
	case KindChamfer:
		return "CHAMFER"
	case KindTrim:
		return "TRIM"
	case KindExtend:
		return "EXTEND"
	case KindOffset:
		return "OFFSET"
	case KindMirror:
		return "MIRROR"
	case KindRotate:
		return "ROTATE"
	case KindScale:
		return "SCALE"
	default:
		return "UNKNOWN"
	}
}

// Pick is one user pick: a primitive (or uuid.Nil for a free-space point)
// and the picked position in model space.
type Pick struct {
	Target uuid.UUID
	At     firecad.Point
}

// Params carries the numeric inputs of the parameterized tools. Numeric
// range validation happens in the calling UI layer; the kernel validates
// geometric feasibility only.
type Params struct {
	Radius       float64       // fillet: 0 for a sharp corner, >0 for a tangent arc
	Dist1, Dist2 float64       // chamfer trim distances
	Distance     float64       // offset: signed perpendicular distance
	Side         firecad.Point // offset: side indicator pick
	Copy         bool          // offset: insert a copy instead of replacing
	AngleDeg     float64       // rotate: angle in degrees
	Factor       float64       // scale: uniform factor
}

// flow describes the pick cycle of one tool kind.
type flow struct {
	picks     int
	needParam bool
}

var flows = map[Kind]flow{
	KindFillet:  {picks: 2},
	KindChamfer: {picks: 2, needParam: true},
	KindTrim:    {picks: 2},
	KindExtend:  {picks: 2},
	KindOffset:  {picks: 1, needParam: true},
	KindMirror:  {picks: 2},
	KindRotate:  {picks: 1, needParam: true},
	KindScale:   {picks: 1, needParam: true},
}

// Tool is one in-flight modification. The zero state is Idle; Start begins
// the pick cycle and Cancel returns to Idle from anywhere, discarding any
// partial state without touching the scene.
type Tool struct {
	kind      Kind
	scene     *firecad.Scene
	state     State
	picks     []Pick
	params    Params
	hasParams bool
}

// New creates a tool of the given kind operating on the scene.
func New(kind Kind, scene *firecad.Scene) *Tool {
	return &Tool{kind: kind, scene: scene}
}

// Kind returns the tool's operation.
func (t *Tool) Kind() Kind { return t.kind }

// State returns the tool's current state.
func (t *Tool) State() State { return t.state }

// Start begins the pick cycle.
func (t *Tool) Start() {
	t.reset()
	t.state = StateAwaitingPick1
}

// Cancel discards any partial state and returns to Idle. The scene is
// never touched.
func (t *Tool) Cancel() {
	t.reset()
}

// SetParams records the numeric parameters. When all picks have already
// been made the operation applies immediately; otherwise the parameters
// are held for the commit.
func (t *Tool) SetParams(p Params) error {
	if t.state == StateIdle {
		return ErrBadState
	}
	t.params = p
	t.hasParams = true
	if len(t.picks) == flows[t.kind].picks {
		return t.apply()
	}
	return nil
}

// Pick advances the tool with one pick. When the pick cycle completes and
// no parameter is pending, the operation applies and commits; an error
// means the operation aborted with no mutation and the tool is Idle again.
func (t *Tool) Pick(p Pick) error {
	switch t.state {
	case StateAwaitingPick1, StateAwaitingPick2:
	default:
		return ErrBadState
	}
	t.picks = append(t.picks, p)
	f := flows[t.kind]
	if len(t.picks) < f.picks {
		t.state = StateAwaitingPick2
		return nil
	}
	if f.needParam && !t.hasParams {
		t.state = StateAwaitingParameter
		return nil
	}
	return t.apply()
}

// apply dispatches to the kind's geometry function. Every geometry
// function validates fully before its first scene mutation, so an error
// return implies an untouched scene. Success commits one history snapshot.
func (t *Tool) apply() error {
	defer t.reset()

	var err error
	switch t.kind {
	case KindFillet:
		err = t.applyFillet()
	case KindChamfer:
		err = t.applyChamfer()
	case KindTrim, KindExtend:
		err = t.applyTrimExtend()
	case KindOffset:
		err = t.applyOffset()
	case KindMirror:
		err = t.applyMirror()
	case KindRotate, KindScale:
		err = t.applyTransform()
	}
	if err != nil {
		firecad.Logger().Debug("tool aborted", "kind", t.kind.String(), "err", err)
		return err
	}
	t.scene.Commit()
	return nil
}

func (t *Tool) reset() {
	t.state = StateIdle
	t.picks = nil
	t.params = Params{}
	t.hasParams = false
}

// lineAt resolves a pick to a line primitive in the scene.
func (t *Tool) lineAt(p Pick) (*firecad.Line, error) {
	prim, ok := t.scene.Get(p.Target)
	if !ok {
		return nil, ErrUnknownTarget
	}
	line, ok := prim.(*firecad.Line)
	if !ok {
		return nil, ErrNotALine
	}
	return line, nil
}
