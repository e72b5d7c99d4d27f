package dxf

import "fmt"

// entity is one raw DXF entity: its type name and the tags up to the next
// entity marker.
type entity struct {
	kind string
	tags []Tag
}

// tag returns the first tag with the given code.
func (e *entity) tag(code int) (Tag, bool) {
	for _, t := range e.tags {
		if t.Code == code {
			return t, true
		}
	}
	return Tag{}, false
}

// float returns the value of the first tag with the given code, or def.
func (e *entity) float(code int, def float64) float64 {
	if t, ok := e.tag(code); ok {
		return t.Float()
	}
	return def
}

func (e *entity) int(code int, def int) int {
	if t, ok := e.tag(code); ok {
		return t.Int()
	}
	return def
}

func (e *entity) str(code int) string {
	if t, ok := e.tag(code); ok {
		return t.Value
	}
	return ""
}

// layerDef is a layer row from the TABLES section.
type layerDef struct {
	name       string
	colorIndex int
	frozen     bool
	locked     bool
	plot       bool
}

// blockDef is a named block definition from the BLOCKS section.
type blockDef struct {
	name     string
	baseX    float64
	baseY    float64
	entities []entity
}

// document is the parsed shape of one DXF file: header variables, layer
// table, block definitions and the model-space entity list.
type document struct {
	insunits int
	codepage string
	layers   map[string]*layerDef
	blocks   map[string]*blockDef
	entities []entity
}

// parse walks the tag stream into a document. In strict mode any
// structural anomaly aborts; in tolerant mode the scanner resynchronizes
// and unknown content is skipped.
func parse(text string, tolerant bool) (*document, error) {
	s := newScanner(text, tolerant)
	doc := &document{
		layers: make(map[string]*layerDef),
		blocks: make(map[string]*blockDef),
	}

	var section string
	var curEntity *entity
	var curBlock *blockDef
	var headerVar string

	flushEntity := func() {
		if curEntity == nil {
			return
		}
		if curBlock != nil {
			curBlock.entities = append(curBlock.entities, *curEntity)
		} else {
			doc.entities = append(doc.entities, *curEntity)
		}
		curEntity = nil
	}

scan:
	for {
		t, ok, err := s.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		if t.Code == 0 {
			switch t.Value {
			case "SECTION":
				nt, ok2, err2 := s.next()
				if err2 != nil {
					return nil, err2
				}
				if !ok2 {
					return nil, fmt.Errorf("dxf: truncated SECTION header")
				}
				if nt.Code == 2 {
					section = nt.Value
				} else if !tolerant {
					return nil, fmt.Errorf("dxf: SECTION without name")
				}
				continue
			case "ENDSEC":
				flushEntity()
				curBlock = nil
				section = ""
				continue
			case "EOF":
				break scan
			}

			switch section {
			case "TABLES":
				flushEntity()
				if t.Value == "LAYER" {
					curEntity = &entity{kind: "LAYER"}
				}
			case "BLOCKS":
				switch t.Value {
				case "BLOCK":
					flushEntity()
					curBlock = &blockDef{}
					curEntity = &entity{kind: "BLOCK"}
				case "ENDBLK":
					flushBlockHeader(curBlock, &curEntity)
					flushEntity()
					if curBlock != nil && curBlock.name != "" {
						doc.blocks[curBlock.name] = curBlock
					}
					curBlock = nil
				default:
					// Block interior entity.
					flushBlockHeader(curBlock, &curEntity)
					flushEntity()
					curEntity = &entity{kind: t.Value}
				}
			case "ENTITIES":
				flushEntity()
				curEntity = &entity{kind: t.Value}
			default:
				flushEntity()
			}
			continue
		}

		// Header variables: a 9-code names the variable, the following
		// value tags belong to it.
		if section == "HEADER" {
			if t.Code == 9 {
				headerVar = t.Value
				continue
			}
			switch headerVar {
			case "$INSUNITS":
				if t.Code == 70 {
					doc.insunits = t.Int()
				}
			case "$DWGCODEPAGE":
				if t.Code == 3 {
					doc.codepage = t.Value
				}
			}
			continue
		}

		if curEntity != nil {
			curEntity.tags = append(curEntity.tags, t)
			continue
		}
	}

	flushEntity()
	doc.harvestLayers()

	// A file with no recognizable structure at all is a parse failure
	// even in tolerant mode.
	if len(doc.entities) == 0 && len(doc.blocks) == 0 && len(doc.layers) == 0 &&
		doc.insunits == 0 && doc.codepage == "" {
		return nil, fmt.Errorf("dxf: no recognizable content")
	}
	return doc, nil
}

// flushBlockHeader captures the BLOCK header entity (name, base point)
// into the open block definition before its interior entities start.
func flushBlockHeader(b *blockDef, cur **entity) {
	if b == nil || *cur == nil || (*cur).kind != "BLOCK" {
		return
	}
	e := *cur
	b.name = e.str(2)
	b.baseX = e.float(10, 0)
	b.baseY = e.float(20, 0)
	*cur = nil
}

// harvestLayers converts raw LAYER entities captured in the TABLES walk
// into layer definitions.
func (d *document) harvestLayers() {
	remaining := d.entities[:0]
	for i := range d.entities {
		e := &d.entities[i]
		if e.kind != "LAYER" {
			remaining = append(remaining, *e)
			continue
		}
		name := e.str(2)
		if name == "" {
			continue
		}
		ci := e.int(62, 7)
		flags := e.int(70, 0)
		plot := e.int(290, 1)
		d.layers[name] = &layerDef{
			name:       name,
			colorIndex: ci,
			frozen:     flags&1 != 0 || ci < 0,
			locked:     flags&4 != 0,
			plot:       plot != 0,
		}
	}
	d.entities = remaining
}
