package wave

import (
	"math/rand"

	"github.com/iburimskiy/liquid-view/internal/config"
)

// TicksPerSecond is the default number of Advance calls per second. The
// velocity profile is stated at this rate.
const TicksPerSecond = config.TicksPerSecond

// Direction is the vertical travel direction of a node.
type Direction int

const (
	Up Direction = iota
	Down
)

// Inverse returns the opposite direction.
func (d Direction) Inverse() Direction {
	if d == Up {
		return Down
	}
	return Up
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return "unknown"
}

// RandomDirection picks Up or Down with equal probability.
func RandomDirection(rng *rand.Rand) Direction {
	return Direction(rng.Intn(2))
}

// UpdateStyle decides how a node scales the template peak and nadir.
type UpdateStyle struct {
	random bool
	min    int
}

// ConstStyle keeps every node at the full template amplitude.
func ConstStyle() UpdateStyle { return UpdateStyle{} }

// RandomStyle scales each node by a factor in (min/100, 1].
func RandomStyle(min int) UpdateStyle { return UpdateStyle{random: true, min: min} }

func (s UpdateStyle) IsRandom() bool { return s.random }

// MinPercent is the exclusive lower bound of the damping factor, in percent.
func (s UpdateStyle) MinPercent() int { return s.min }

// Config holds the shape and timing parameters shared by all generated nodes.
// Periods are in seconds.
type Config struct {
	Peak             float64
	Nadir            float64
	Segment          float64
	VerticalPeriod   float64
	HorizontalPeriod float64
	InitialDirection Direction
	UpdateStyle      UpdateStyle

	// TicksPerSecond is the rate at which nodes are advanced. Zero means
	// TicksPerSecond.
	TicksPerSecond int
}

// DefaultConfig returns the stock liquid shape.
func DefaultConfig() Config {
	return Config{
		Peak:             config.DefaultPeak,
		Nadir:            config.DefaultNadir,
		Segment:          config.DefaultSegment,
		VerticalPeriod:   config.DefaultVerticalPeriod,
		HorizontalPeriod: config.DefaultHorizontalPeriod,
		InitialDirection: Up,
		UpdateStyle:      RandomStyle(config.DefaultMinDamping),
	}
}

// WithAmplitude sets a symmetric peak and nadir.
func (c Config) WithAmplitude(amplitude float64) Config {
	c.Peak = amplitude
	c.Nadir = amplitude
	return c
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case !(c.Peak > 0):
		return invalid("peak must be positive, got %v", c.Peak)
	case !(c.Nadir > 0):
		return invalid("nadir must be positive, got %v", c.Nadir)
	case !(c.Segment > 0):
		return invalid("node segment must be positive, got %v", c.Segment)
	case !(c.VerticalPeriod > 0):
		return invalid("vertical period must be positive, got %v", c.VerticalPeriod)
	case !(c.HorizontalPeriod > 0):
		return invalid("horizontal period must be positive, got %v", c.HorizontalPeriod)
	case c.InitialDirection != Up && c.InitialDirection != Down:
		return invalid("unknown initial direction %d", int(c.InitialDirection))
	case c.UpdateStyle.random && (c.UpdateStyle.min < 0 || c.UpdateStyle.min >= 100):
		return invalid("random damping minimum must be in [0, 100), got %d", c.UpdateStyle.min)
	case c.TicksPerSecond < 0:
		return invalid("ticks per second must not be negative, got %d", c.TicksPerSecond)
	}
	return nil
}

// Node is a single oscillating sample of the wave. Nodes are plain values:
// the generator copies the template and mutates its own copies.
type Node struct {
	peak             float64
	nadir            float64
	segment          float64
	verticalPeriod   float64
	horizontalPeriod float64
	tickRate         float64
	style            UpdateStyle

	direction    Direction
	altitude     float64
	translation  float64
	currentPeak  float64
	currentNadir float64
}

// NewNode validates cfg and returns a template node. The template has not
// rolled its damping yet; its current peak and nadir equal the configured ones.
func NewNode(cfg Config) (Node, error) {
	if err := cfg.Validate(); err != nil {
		return Node{}, err
	}
	rate := cfg.TicksPerSecond
	if rate == 0 {
		rate = TicksPerSecond
	}
	return Node{
		peak:             cfg.Peak,
		nadir:            cfg.Nadir,
		segment:          cfg.Segment,
		verticalPeriod:   cfg.VerticalPeriod,
		horizontalPeriod: cfg.HorizontalPeriod,
		tickRate:         float64(rate),
		style:            cfg.UpdateStyle,
		direction:        cfg.InitialDirection,
		currentPeak:      cfg.Peak,
		currentNadir:     cfg.Nadir,
	}, nil
}

func (n Node) Peak() float64             { return n.peak }
func (n Node) Nadir() float64            { return n.nadir }
func (n Node) Segment() float64          { return n.segment }
func (n Node) VerticalPeriod() float64   { return n.verticalPeriod }
func (n Node) HorizontalPeriod() float64 { return n.horizontalPeriod }
func (n Node) TickRate() float64         { return n.tickRate }
func (n Node) Direction() Direction      { return n.direction }
func (n Node) Altitude() float64         { return n.altitude }
func (n Node) Translation() float64      { return n.translation }
func (n Node) CurrentPeak() float64      { return n.currentPeak }
func (n Node) CurrentNadir() float64     { return n.currentNadir }

// RefDistance is the bound currently in effect: the peak above the baseline,
// the nadir below it, and at the baseline whichever one the node travels to.
func (n Node) RefDistance() float64 {
	switch {
	case n.altitude > 0:
		return n.currentPeak
	case n.altitude < 0:
		return n.currentNadir
	case n.direction == Up:
		return n.currentPeak
	default:
		return n.currentNadir
	}
}

// AltitudeRatio is the altitude relative to RefDistance, in [-1, 1].
func (n Node) AltitudeRatio() float64 {
	d := n.RefDistance()
	if d == 0 {
		return 0
	}
	return n.altitude / d
}

// UpdatePeakAndNadir rolls the damping factor of the node. It must be called
// once, when the node is created.
func (n *Node) UpdatePeakAndNadir(rng *rand.Rand) {
	delta := 1.0
	if n.style.random {
		delta = 1 - float64(rng.Intn(100-n.style.min))/100
	}
	n.currentPeak = n.peak * delta
	n.currentNadir = n.nadir * delta
}

// SetAltitudeRatio places the node at ratio of the bound on the side the
// ratio points to. A zero ratio puts it on the baseline.
func (n *Node) SetAltitudeRatio(ratio float64) {
	switch {
	case ratio > 0:
		n.setAltitude(ratio * n.currentPeak)
	case ratio < 0:
		n.setAltitude(ratio * n.currentNadir)
	default:
		n.setAltitude(0)
	}
}

// setAltitude stores alt clamped to [-currentNadir, currentPeak] and flips the
// direction when a bound is reached.
func (n *Node) setAltitude(alt float64) {
	if alt >= n.currentPeak {
		alt = n.currentPeak
		n.direction = Down
	}
	if alt <= -n.currentNadir {
		alt = -n.currentNadir
		n.direction = Up
	}
	n.altitude = alt
}

// VerticalStep is the altitude change of the next tick. Motion is fastest
// around the baseline and slows down in two tiers towards the bounds. Steps
// are scaled so the motion per second does not depend on the tick rate.
func (n Node) VerticalStep() float64 {
	d := n.RefDistance()
	vp := n.verticalPeriod
	scale := TicksPerSecond / n.tickRate
	switch a := n.altitude; {
	case a > -0.2*d && a < 0.2*d:
		return d / (20 * vp) * scale
	case a > -0.4*d && a < 0.4*d:
		return d / (40 * vp) * scale
	}
	return d / (60 * vp) * scale
}

// HorizontalStep is the constant translation per tick: one segment per
// horizontal period.
func (n Node) HorizontalStep() float64 {
	return n.segment / (n.tickRate * n.horizontalPeriod)
}

// Advance performs one simulation step.
func (n *Node) Advance() {
	n.stepAltitude()
	n.stepTranslation()
}

func (n *Node) stepAltitude() {
	step := n.VerticalStep()
	if n.direction == Up {
		n.setAltitude(n.altitude + step)
	} else {
		n.setAltitude(n.altitude - step)
	}
}

func (n *Node) stepTranslation() {
	n.translation += n.HorizontalStep()
}
