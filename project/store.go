// Package project persists a complete project to a single SQLite file:
// kernel configuration, sketch primitives, underlay references with their
// placement transforms, per-layer display state, wire segments and device
// connections. One file holds one project.
package project

import (
	"database/sql"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/firecad/firecad"
)

// Underlay is a referenced DXF backdrop and its placement in the model.
type Underlay struct {
	ID        uuid.UUID
	Path      string
	Transform firecad.Matrix
}

// Layer is the persisted display state of one imported layer.
type Layer struct {
	Name    string
	Color   color.RGBA
	Visible bool
	Locked  bool
	Print   bool
}

// Wire is a routed wire segment between two model points.
type Wire struct {
	ID      uuid.UUID
	A, B    firecad.Point
	Circuit string
}

// Connection records that two devices are wired together.
type Connection struct {
	ID       uuid.UUID
	From, To uuid.UUID
}

// State is everything the store persists. Load returns an equivalent
// State for what Save was given.
type State struct {
	Config      firecad.Config
	Primitives  []firecad.Primitive
	Underlays   []Underlay
	Layers      []Layer
	Wires       []Wire
	Connections []Connection
}

// Scene builds a fresh Scene from the persisted configuration and
// primitives. The loaded state is the history baseline: undoing from it
// is a no-op rather than a jump to an empty drawing.
func (st *State) Scene() *firecad.Scene {
	return firecad.NewSceneWith(st.Config, st.Primitives...)
}

// Store is a SQLite-backed project file.
type Store struct {
	conn *sql.DB
	path string
}

// Open opens (or creates) the project file at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("project: create directory: %w", err)
	}
	conn, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("project: open sqlite: %w", err)
	}
	// SQLite only supports one writer; a single connection prevents
	// SQLITE_BUSY under concurrent saves.
	conn.SetMaxOpenConns(1)

	s := &Store{conn: conn, path: path}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("project: migrate: %w", err)
	}
	firecad.Logger().Info("project: opened", "path", path)
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Path returns the project file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS settings (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			px_per_ft REAL NOT NULL,
			grid_step_in REAL NOT NULL DEFAULT 0,
			snap_radius_px REAL NOT NULL DEFAULT 8,
			snap_endpoint INTEGER NOT NULL DEFAULT 1,
			snap_midpoint INTEGER NOT NULL DEFAULT 1,
			snap_center INTEGER NOT NULL DEFAULT 1,
			snap_intersection INTEGER NOT NULL DEFAULT 1,
			snap_perpendicular INTEGER NOT NULL DEFAULT 0,
			snap_grid INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS primitives (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			geometry_json TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS underlays (
			id TEXT PRIMARY KEY,
			path TEXT NOT NULL,
			a REAL NOT NULL, b REAL NOT NULL, c REAL NOT NULL,
			d REAL NOT NULL, e REAL NOT NULL, f REAL NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS layers (
			name TEXT PRIMARY KEY,
			color_r INTEGER NOT NULL, color_g INTEGER NOT NULL,
			color_b INTEGER NOT NULL, color_a INTEGER NOT NULL,
			visible INTEGER NOT NULL DEFAULT 1,
			locked INTEGER NOT NULL DEFAULT 0,
			print INTEGER NOT NULL DEFAULT 1
		)`,
		`CREATE TABLE IF NOT EXISTS wires (
			id TEXT PRIMARY KEY,
			ax REAL NOT NULL, ay REAL NOT NULL,
			bx REAL NOT NULL, by REAL NOT NULL,
			circuit TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS connections (
			id TEXT PRIMARY KEY,
			from_id TEXT NOT NULL,
			to_id TEXT NOT NULL
		)`,
	}
	for _, m := range migrations {
		if _, err := s.conn.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// Save replaces the stored project with st in one transaction.
func (s *Store) Save(st *State) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("project: save: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"settings", "primitives", "underlays", "layers", "wires", "connections"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("project: save: clear %s: %w", table, err)
		}
	}

	cfg := st.Config
	_, err = tx.Exec(`INSERT INTO settings
		(id, px_per_ft, grid_step_in, snap_radius_px,
		 snap_endpoint, snap_midpoint, snap_center,
		 snap_intersection, snap_perpendicular, snap_grid)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		cfg.PxPerFt, cfg.GridStepIn, cfg.Snap.RadiusPx,
		cfg.Snap.Endpoint, cfg.Snap.Midpoint, cfg.Snap.Center,
		cfg.Snap.Intersection, cfg.Snap.Perpendicular, cfg.Snap.Grid)
	if err != nil {
		return fmt.Errorf("project: save settings: %w", err)
	}

	for _, p := range st.Primitives {
		kind, data, err := encodePrimitive(p)
		if err != nil {
			return fmt.Errorf("project: save primitive %s: %w", p.ID(), err)
		}
		if _, err := tx.Exec(
			`INSERT INTO primitives (id, kind, geometry_json) VALUES (?, ?, ?)`,
			p.ID().String(), kind, string(data)); err != nil {
			return fmt.Errorf("project: save primitive %s: %w", p.ID(), err)
		}
	}

	for _, u := range st.Underlays {
		m := u.Transform
		if _, err := tx.Exec(
			`INSERT INTO underlays (id, path, a, b, c, d, e, f) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			u.ID.String(), u.Path, m.A, m.B, m.C, m.D, m.E, m.F); err != nil {
			return fmt.Errorf("project: save underlay %s: %w", u.Path, err)
		}
	}

	for _, l := range st.Layers {
		if _, err := tx.Exec(
			`INSERT INTO layers (name, color_r, color_g, color_b, color_a, visible, locked, print)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			l.Name, l.Color.R, l.Color.G, l.Color.B, l.Color.A,
			l.Visible, l.Locked, l.Print); err != nil {
			return fmt.Errorf("project: save layer %s: %w", l.Name, err)
		}
	}

	for _, w := range st.Wires {
		if _, err := tx.Exec(
			`INSERT INTO wires (id, ax, ay, bx, by, circuit) VALUES (?, ?, ?, ?, ?, ?)`,
			w.ID.String(), w.A.X, w.A.Y, w.B.X, w.B.Y, w.Circuit); err != nil {
			return fmt.Errorf("project: save wire %s: %w", w.ID, err)
		}
	}

	for _, c := range st.Connections {
		if _, err := tx.Exec(
			`INSERT INTO connections (id, from_id, to_id) VALUES (?, ?, ?)`,
			c.ID.String(), c.From.String(), c.To.String()); err != nil {
			return fmt.Errorf("project: save connection %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("project: save: %w", err)
	}
	firecad.Logger().Info("project: saved",
		"path", s.path, "primitives", len(st.Primitives), "wires", len(st.Wires))
	return nil
}

// Load reads the stored project back into a State.
func (s *Store) Load() (*State, error) {
	st := &State{Config: firecad.NewConfig()}

	var snap firecad.SnapSettings
	var pxPerFt, gridStepIn float64
	err := s.conn.QueryRow(`SELECT px_per_ft, grid_step_in, snap_radius_px,
		snap_endpoint, snap_midpoint, snap_center,
		snap_intersection, snap_perpendicular, snap_grid FROM settings WHERE id = 1`).
		Scan(&pxPerFt, &gridStepIn, &snap.RadiusPx,
			&snap.Endpoint, &snap.Midpoint, &snap.Center,
			&snap.Intersection, &snap.Perpendicular, &snap.Grid)
	switch {
	case err == sql.ErrNoRows:
		// Fresh file; defaults stand.
	case err != nil:
		return nil, fmt.Errorf("project: load settings: %w", err)
	default:
		st.Config = firecad.NewConfig(
			firecad.WithPxPerFt(pxPerFt),
			firecad.WithGridStep(gridStepIn),
			firecad.WithSnap(snap))
	}

	if err := s.loadPrimitives(st); err != nil {
		return nil, err
	}
	if err := s.loadUnderlays(st); err != nil {
		return nil, err
	}
	if err := s.loadLayers(st); err != nil {
		return nil, err
	}
	if err := s.loadWires(st); err != nil {
		return nil, err
	}
	if err := s.loadConnections(st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *Store) loadPrimitives(st *State) error {
	rows, err := s.conn.Query(`SELECT id, kind, geometry_json FROM primitives ORDER BY id`)
	if err != nil {
		return fmt.Errorf("project: load primitives: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var idStr, kind, data string
		if err := rows.Scan(&idStr, &kind, &data); err != nil {
			return fmt.Errorf("project: load primitives: %w", err)
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return fmt.Errorf("project: load primitive id %q: %w", idStr, err)
		}
		p, err := decodePrimitive(kind, []byte(data), id)
		if err != nil {
			return fmt.Errorf("project: load primitive %s: %w", idStr, err)
		}
		st.Primitives = append(st.Primitives, p)
	}
	return rows.Err()
}

func (s *Store) loadUnderlays(st *State) error {
	rows, err := s.conn.Query(`SELECT id, path, a, b, c, d, e, f FROM underlays ORDER BY id`)
	if err != nil {
		return fmt.Errorf("project: load underlays: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var u Underlay
		var idStr string
		if err := rows.Scan(&idStr, &u.Path,
			&u.Transform.A, &u.Transform.B, &u.Transform.C,
			&u.Transform.D, &u.Transform.E, &u.Transform.F); err != nil {
			return fmt.Errorf("project: load underlays: %w", err)
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return fmt.Errorf("project: load underlay id %q: %w", idStr, err)
		}
		u.ID = id
		st.Underlays = append(st.Underlays, u)
	}
	return rows.Err()
}

func (s *Store) loadLayers(st *State) error {
	rows, err := s.conn.Query(`SELECT name, color_r, color_g, color_b, color_a,
		visible, locked, print FROM layers ORDER BY name`)
	if err != nil {
		return fmt.Errorf("project: load layers: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l Layer
		if err := rows.Scan(&l.Name, &l.Color.R, &l.Color.G, &l.Color.B, &l.Color.A,
			&l.Visible, &l.Locked, &l.Print); err != nil {
			return fmt.Errorf("project: load layers: %w", err)
		}
		st.Layers = append(st.Layers, l)
	}
	return rows.Err()
}

func (s *Store) loadWires(st *State) error {
	rows, err := s.conn.Query(`SELECT id, ax, ay, bx, by, circuit FROM wires ORDER BY id`)
	if err != nil {
		return fmt.Errorf("project: load wires: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var w Wire
		var idStr string
		if err := rows.Scan(&idStr, &w.A.X, &w.A.Y, &w.B.X, &w.B.Y, &w.Circuit); err != nil {
			return fmt.Errorf("project: load wires: %w", err)
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return fmt.Errorf("project: load wire id %q: %w", idStr, err)
		}
		w.ID = id
		st.Wires = append(st.Wires, w)
	}
	return rows.Err()
}

func (s *Store) loadConnections(st *State) error {
	rows, err := s.conn.Query(`SELECT id, from_id, to_id FROM connections ORDER BY id`)
	if err != nil {
		return fmt.Errorf("project: load connections: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c Connection
		var idStr, fromStr, toStr string
		if err := rows.Scan(&idStr, &fromStr, &toStr); err != nil {
			return fmt.Errorf("project: load connections: %w", err)
		}
		var err error
		if c.ID, err = uuid.Parse(idStr); err != nil {
			return fmt.Errorf("project: load connection id %q: %w", idStr, err)
		}
		if c.From, err = uuid.Parse(fromStr); err != nil {
			return fmt.Errorf("project: load connection from %q: %w", fromStr, err)
		}
		if c.To, err = uuid.Parse(toStr); err != nil {
			return fmt.Errorf("project: load connection to %q: %w", toStr, err)
		}
		st.Connections = append(st.Connections, c)
	}
	return rows.Err()
}
