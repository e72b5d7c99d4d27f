// Package sheet manages the paper-space side of the kernel: named sheets
// with page size, orientation and margin, the viewports that map sheet
// space to model space, and the print-scale math.
//
// Switching the active display between model space and a sheet is
// view-only and never mutates model-space geometry.
package sheet

import (
	"github.com/google/uuid"

	"github.com/firecad/firecad"
)

// PageSize enumerates the supported page formats.
type PageSize int

const (
	Letter PageSize = iota
	Tabloid
	A0
	A1
	A2
	A3
)

// String returns the page size name.
func (p PageSize) String() string {
	switch p {
	case Letter:
		return "Letter"
	case Tabloid:
		return "Tabloid"
	case A0:
		return "A0"
	case A1:
		return "A1"
	case A2:
		return "A2"
	case A3:
		return "A3"
	default:
		return "Unknown"
	}
}

// DimensionsIn returns the portrait page dimensions in inches.
func (p PageSize) DimensionsIn() (w, h float64) {
	switch p {
	case Letter:
		return 8.5, 11
	case Tabloid:
		return 11, 17
	case A0:
		return 33.11, 46.81
	case A1:
		return 23.39, 33.11
	case A2:
		return 16.54, 23.39
	case A3:
		return 11.69, 16.54
	default:
		return 8.5, 11
	}
}

// Orientation selects portrait or landscape.
type Orientation int

const (
	Portrait Orientation = iota
	Landscape
)

// String returns the orientation name.
func (o Orientation) String() string {
	if o == Landscape {
		return "Landscape"
	}
	return "Portrait"
}

// Sheet is one paper-space page owning zero or more viewports.
type Sheet struct {
	ID          uuid.UUID
	Name        string
	Size        PageSize
	Orientation Orientation
	MarginIn    float64
	Viewports   []*Viewport
}

// NewSheet creates a sheet with the given page setup.
func NewSheet(name string, size PageSize, o Orientation, marginIn float64) *Sheet {
	return &Sheet{
		ID:          uuid.New(),
		Name:        name,
		Size:        size,
		Orientation: o,
		MarginIn:    marginIn,
	}
}

// PageIn returns the oriented page dimensions in inches.
func (s *Sheet) PageIn() (w, h float64) {
	w, h = s.Size.DimensionsIn()
	if s.Orientation == Landscape {
		w, h = h, w
	}
	return w, h
}

// AddViewport places a viewport on the sheet and returns it.
func (s *Sheet) AddViewport(rect firecad.Rect) *Viewport {
	v := &Viewport{ID: uuid.New(), Rect: rect, ScaleFactor: 1}
	s.Viewports = append(s.Viewports, v)
	return v
}

// RemoveViewport removes the viewport with the given ID.
func (s *Sheet) RemoveViewport(id uuid.UUID) bool {
	for i, v := range s.Viewports {
		if v.ID == id {
			s.Viewports = append(s.Viewports[:i], s.Viewports[i+1:]...)
			return true
		}
	}
	return false
}

// Manager owns the named sheets and the active display selection.
// The active display is pure view state; activating a sheet never touches
// model-space geometry.
type Manager struct {
	sheets []*Sheet
	// active is the index of the displayed sheet, or -1 for model space.
	active int
}

// NewManager creates a manager displaying model space.
func NewManager() *Manager {
	return &Manager{active: -1}
}

// CreateSheet creates, registers and returns a new sheet.
func (m *Manager) CreateSheet(name string, size PageSize, o Orientation, marginIn float64) *Sheet {
	s := NewSheet(name, size, o, marginIn)
	m.sheets = append(m.sheets, s)
	return s
}

// RemoveSheet removes the sheet with the given ID. Removing the active
// sheet switches the display back to model space.
func (m *Manager) RemoveSheet(id uuid.UUID) bool {
	for i, s := range m.sheets {
		if s.ID == id {
			m.sheets = append(m.sheets[:i], m.sheets[i+1:]...)
			if m.active == i {
				m.active = -1
			} else if m.active > i {
				m.active--
			}
			return true
		}
	}
	return false
}

// Sheets returns the sheets in creation order.
func (m *Manager) Sheets() []*Sheet { return m.sheets }

// Get returns the sheet with the given ID.
func (m *Manager) Get(id uuid.UUID) (*Sheet, bool) {
	for _, s := range m.sheets {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

// ActivateModel switches the display to model space.
func (m *Manager) ActivateModel() { m.active = -1 }

// ActivateSheet switches the display to the sheet with the given ID.
func (m *Manager) ActivateSheet(id uuid.UUID) bool {
	for i, s := range m.sheets {
		if s.ID == id {
			m.active = i
			return true
		}
	}
	return false
}

// Active returns the displayed sheet, or nil when model space is shown.
func (m *Manager) Active() *Sheet {
	if m.active < 0 || m.active >= len(m.sheets) {
		return nil
	}
	return m.sheets[m.active]
}
