// Package firecad is the geometry kernel of a 2D CAD drafting application
// for fire-alarm device layouts.
//
// # Overview
//
// The kernel covers the algorithmic core of the drafting application: the
// primitive model (lines, arcs, circles, polylines), snap resolution,
// the line/arc modification tools, the model/sheet/viewport coordinate
// spaces, and the DXF geometry normalizer. UI, device catalog, reports and
// electrical calculations live outside the kernel and talk to it through
// plain values.
//
// # Quick Start
//
//	import "github.com/firecad/firecad"
//
//	cfg := firecad.NewConfig(firecad.WithPxPerFt(24))
//	scene := firecad.NewScene(cfg)
//	scene.Insert(firecad.NewLine(firecad.Pt(0, 0), firecad.Pt(240, 0)))
//	scene.Commit()
//
// # Architecture
//
// The kernel is organized into:
//   - Root package: Point, Matrix, primitives, Scene, Config
//   - snap: lock-point resolution near a cursor position
//   - modify: fillet, chamfer, trim, extend, offset, mirror, rotate, scale
//   - sheet: paper-space sheets, viewports and print-scale math
//   - dxf: external drawing import and unit normalization
//   - project: SQLite persistence of kernel state
//   - export: print-proof rasterization of a sheet
//
// # Coordinate System
//
// Model space uses screen conventions:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - One foot equals Config.PxPerFt pixels
//   - Angles in radians unless a tool takes degrees explicitly
//
// # Concurrency
//
// The kernel is single-threaded: every mutation happens
// synchronously on the caller's goroutine in response to a pick or a
// parameter commit. The dxf.Watcher and project.Store run on caller
// goroutines and only deliver values; they never touch a Scene.
package firecad
