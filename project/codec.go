package project

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/firecad/firecad"
)

// Primitive geometry is stored as a kind discriminator plus the JSON of
// the exported geometry fields. The identity travels in its own column.

func encodePrimitive(p firecad.Primitive) (string, []byte, error) {
	var kind string
	switch p.(type) {
	case *firecad.Line:
		kind = "line"
	case *firecad.Circle:
		kind = "circle"
	case *firecad.Arc:
		kind = "arc"
	case *firecad.Polyline:
		kind = "polyline"
	case *firecad.Rectangle:
		kind = "rect"
	case *firecad.Text:
		kind = "text"
	default:
		return "", nil, fmt.Errorf("unknown primitive type %T", p)
	}
	data, err := json.Marshal(p)
	if err != nil {
		return "", nil, err
	}
	return kind, data, nil
}

func decodePrimitive(kind string, data []byte, id uuid.UUID) (firecad.Primitive, error) {
	var p firecad.Primitive
	switch kind {
	case "line":
		p = &firecad.Line{}
	case "circle":
		p = &firecad.Circle{}
	case "arc":
		p = &firecad.Arc{}
	case "polyline":
		p = &firecad.Polyline{}
	case "rect":
		p = &firecad.Rectangle{}
	case "text":
		p = &firecad.Text{}
	default:
		return nil, fmt.Errorf("unknown primitive kind %q", kind)
	}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, err
	}
	return firecad.RestoreID(p, id), nil
}
