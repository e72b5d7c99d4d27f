package dxf

import (
	"fmt"
	"image/color"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/firecad/firecad"
)

// LayerGroup holds the imported primitives of one source layer together
// with the layer's display state.
type LayerGroup struct {
	Name       string
	Color      color.RGBA
	Visible    bool
	Locked     bool
	Print      bool
	Primitives []firecad.Primitive
}

// Result is a completed import. Bounds covers every imported primitive
// in scene pixels.
type Result struct {
	Bounds firecad.Rect
	Layers map[string]*LayerGroup
}

// feetPerUnit maps the $INSUNITS header value to a feet-per-drawing-unit
// factor. Unitless files are treated as drawn in feet.
func feetPerUnit(insunits int) float64 {
	switch insunits {
	case 1: // inches
		return 1.0 / 12
	case 2: // feet
		return 1
	case 4: // millimeters
		return 1.0 / 304.8
	case 5: // centimeters
		return 1.0 / 30.48
	case 6: // meters
		return 1.0 / 0.3048
	case 7: // kilometers
		return 3280.84
	default:
		return 1
	}
}

// codepages maps $DWGCODEPAGE values to their Windows charmaps.
var codepages = map[string]*charmap.Charmap{
	"ANSI_1250": charmap.Windows1250,
	"ANSI_1251": charmap.Windows1251,
	"ANSI_1252": charmap.Windows1252,
	"ANSI_1253": charmap.Windows1253,
	"ANSI_1254": charmap.Windows1254,
	"ANSI_1255": charmap.Windows1255,
	"ANSI_1256": charmap.Windows1256,
	"ANSI_1257": charmap.Windows1257,
}

// Import reads a DXF file and converts its entities to scene primitives,
// normalized to scene pixels with pxPerFt pixels per model foot and the
// vertical axis flipped to screen-down.
//
// Parsing is strict first; on a strict failure the file is re-scanned in
// recovery mode, which skips malformed tag pairs. Only a file with no
// recognizable content at all fails the import. Individual entities that
// cannot be converted are skipped with a warning.
func Import(path string, pxPerFt float64) (*Result, error) {
	if pxPerFt <= 0 {
		return nil, fmt.Errorf("dxf: import %s: pixels per foot %v", path, pxPerFt)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dxf: import: %w", err)
	}

	doc, err := parseBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("dxf: import %s: %w", path, err)
	}

	scale := feetPerUnit(doc.insunits) * pxPerFt
	norm := firecad.Scale(scale, -scale)

	res := &Result{Layers: make(map[string]*LayerGroup)}
	for _, e := range mergedEntities(doc.entities) {
		prims, err := doc.convert(&e, norm, 0)
		if err != nil {
			firecad.Logger().Warn("dxf: skipping entity", "kind", e.kind, "err", err)
			continue
		}
		if len(prims) == 0 {
			continue
		}
		group := res.layer(doc, e.str(8))
		group.Primitives = append(group.Primitives, prims...)
	}

	for _, g := range res.Layers {
		for _, p := range g.Primitives {
			res.Bounds = res.Bounds.Union(p.Bounds())
		}
	}
	return res, nil
}

// parseBytes decodes the file content and parses it, retrying in
// recovery mode when the strict pass fails. Non-UTF-8 content is decoded
// through the charmap named by $DWGCODEPAGE when one is declared.
func parseBytes(raw []byte) (*document, error) {
	text := string(raw)
	doc, strictErr := parse(text, false)
	if strictErr != nil {
		firecad.Logger().Warn("dxf: strict parse failed, retrying in recovery mode", "err", strictErr)
		doc, strictErr = parse(text, true)
		if strictErr != nil {
			return nil, strictErr
		}
	}

	if !utf8.ValidString(text) {
		if cm, ok := codepages[strings.ToUpper(doc.codepage)]; ok {
			decoded, err := cm.NewDecoder().String(text)
			if err == nil {
				if redone, err := parse(decoded, true); err == nil {
					return redone, nil
				}
			}
		}
	}
	return doc, nil
}

// layer returns the group for a layer name, creating it from the layer
// table on first use. Entities with no layer tag land on layer "0".
func (r *Result) layer(doc *document, name string) *LayerGroup {
	if name == "" {
		name = "0"
	}
	if g, ok := r.Layers[name]; ok {
		return g
	}
	g := &LayerGroup{
		Name:    name,
		Color:   defaultGray,
		Visible: true,
		Print:   true,
	}
	if def, ok := doc.layers[name]; ok {
		g.Color = resolveColor(def.colorIndex)
		g.Visible = !def.frozen
		g.Locked = def.locked
		g.Print = def.plot
	}
	r.Layers[name] = g
	return g
}

// Names returns the imported layer names in sorted order.
func (r *Result) Names() []string {
	names := make([]string, 0, len(r.Layers))
	for name := range r.Layers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
