package firecad

// SnapSettings selects which lock-point kinds the snap resolver considers
// and how far it searches. The radius is expressed in screen pixels and is
// converted to a model distance per query, so the reach stays visually
// constant regardless of zoom.
type SnapSettings struct {
	RadiusPx      float64
	Endpoint      bool
	Midpoint      bool
	Center        bool
	Intersection  bool
	Perpendicular bool
	Grid          bool
}

// DefaultSnapSettings enables the common snap kinds with an 8 px reach.
func DefaultSnapSettings() SnapSettings {
	return SnapSettings{
		RadiusPx:     8,
		Endpoint:     true,
		Midpoint:     true,
		Center:       true,
		Intersection: true,
	}
}

// Config is the kernel configuration: the model-space scale and the grid
// and snap preferences. Config is an immutable value; the With methods
// return derived copies and never mutate shared state.
type Config struct {
	// PxPerFt converts real-world feet to model-space pixels. Always > 0.
	PxPerFt float64
	// GridStepIn is the grid cell size in inches. Zero selects the
	// default cell of one foot.
	GridStepIn float64
	Snap       SnapSettings
}

// Option configures a Config during creation.
type Option func(*Config)

// WithPxPerFt sets the model scale in pixels per foot.
// Non-positive values are ignored.
func WithPxPerFt(v float64) Option {
	return func(c *Config) {
		if v > 0 {
			c.PxPerFt = v
		}
	}
}

// WithGridStep sets the grid step in inches.
// Non-positive values restore the default cell.
func WithGridStep(inches float64) Option {
	return func(c *Config) {
		if inches > 0 {
			c.GridStepIn = inches
		} else {
			c.GridStepIn = 0
		}
	}
}

// WithSnap replaces the snap settings.
func WithSnap(s SnapSettings) Option {
	return func(c *Config) { c.Snap = s }
}

// NewConfig returns a Config with defaults applied, then options.
// The default scale is 24 px per foot with the common snaps enabled.
func NewConfig(opts ...Option) Config {
	c := Config{
		PxPerFt: 24,
		Snap:    DefaultSnapSettings(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithScale returns a copy of the Config with a new px-per-ft scale.
// Non-positive values leave the scale unchanged.
func (c Config) WithScale(pxPerFt float64) Config {
	if pxPerFt > 0 {
		c.PxPerFt = pxPerFt
	}
	return c
}

// WithGridStepIn returns a copy of the Config with a new grid step.
func (c Config) WithGridStepIn(inches float64) Config {
	if inches > 0 {
		c.GridStepIn = inches
	} else {
		c.GridStepIn = 0
	}
	return c
}

// WithSnapSettings returns a copy of the Config with new snap settings.
func (c Config) WithSnapSettings(s SnapSettings) Config {
	c.Snap = s
	return c
}

// GridStepPx returns the grid cell size in model pixels.
func (c Config) GridStepPx() float64 {
	if c.GridStepIn > 0 {
		return c.GridStepIn / 12 * c.PxPerFt
	}
	return c.PxPerFt // default cell: one foot
}
