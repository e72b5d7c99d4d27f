package modify

import "errors"

// Tool failures abort the operation with no mutation; the caller surfaces
// them as non-fatal status messages.
var (
	ErrParallel         = errors.New("modify: lines are parallel or coincident")
	ErrNoIntersection   = errors.New("modify: no intersection")
	ErrDegenerateCorner = errors.New("modify: corner angle too close to 0 or 180 degrees")
	ErrEmptySelection   = errors.New("modify: selection is empty")
	ErrNotALine         = errors.New("modify: picked primitive is not a line")
	ErrUnknownTarget    = errors.New("modify: picked primitive not in scene")
	ErrUnsupported      = errors.New("modify: primitive kind not supported by this tool")
	ErrDegenerateResult = errors.New("modify: result would have non-positive size")
	ErrBadState         = errors.New("modify: call not valid in current tool state")
)
