// Package dxf imports external DXF drawings into the primitive model.
//
// The importer normalizes drawing units to model-space pixels, inverts the
// Y axis to the screen-down convention, flattens curved entities, expands
// block inserts, and groups the result by source layer. A malformed entity
// is skipped with a warning; a structurally malformed file gets one
// tolerant recovery parse before a hard failure is surfaced.
package dxf

import (
	"fmt"
	"strconv"
	"strings"
)

// Tag is one DXF group: a numeric group code and its raw value line.
type Tag struct {
	Code  int
	Value string
}

// Float parses the value as a float, returning 0 on malformed input.
// Bad numerics inside a single entity are an entity-level problem and are
// handled by the per-entity skip, not the scanner.
func (t Tag) Float() float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(t.Value), 64)
	return v
}

// Int parses the value as an integer, returning 0 on malformed input.
func (t Tag) Int() int {
	v, _ := strconv.Atoi(strings.TrimSpace(t.Value))
	return v
}

// scanner walks a DXF text as a sequence of code/value tag pairs.
// In strict mode a non-numeric code line is a structural error; in
// tolerant mode the scanner resynchronizes by skipping single lines until
// a numeric code appears.
type scanner struct {
	lines    []string
	pos      int
	tolerant bool
}

func newScanner(text string, tolerant bool) *scanner {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return &scanner{lines: strings.Split(text, "\n"), tolerant: tolerant}
}

// next returns the next tag. ok is false at end of input.
func (s *scanner) next() (tag Tag, ok bool, err error) {
	for {
		if s.pos+1 >= len(s.lines) {
			return Tag{}, false, nil
		}
		codeLine := strings.TrimSpace(s.lines[s.pos])
		value := s.lines[s.pos+1]
		code, convErr := strconv.Atoi(codeLine)
		if convErr != nil {
			if !s.tolerant {
				return Tag{}, false, fmt.Errorf("dxf: line %d: bad group code %q", s.pos+1, codeLine)
			}
			// Resync one line at a time.
			s.pos++
			continue
		}
		s.pos += 2
		return Tag{Code: code, Value: strings.TrimRight(value, " \t")}, true, nil
	}
}
