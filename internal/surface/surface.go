// Package surface drives a liquid wave: it owns the node generator and the
// boundary builder and exposes the two tick rates a host has to call.
package surface

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"

	"github.com/iburimskiy/liquid-view/internal/boundary"
	"github.com/iburimskiy/liquid-view/internal/config"
	"github.com/iburimskiy/liquid-view/internal/wave"
)

// ErrInvalidOptions is the cause of errors returned by New for options that
// are not covered by wave or boundary validation.
var ErrInvalidOptions = errors.New("invalid surface options")

// Options configures a Surface.
type Options struct {
	Width  float64
	Height float64
	Wave   wave.Config
	Shadow bool

	// TicksPerSecond is the rate at which the host calls Update. Zero means
	// config.TicksPerSecond. It overrides Wave.TicksPerSecond so node steps
	// and node creation run on the same clock.
	TicksPerSecond int

	// Rand seeds node damping. Nil uses a time-seeded source.
	Rand *rand.Rand
}

// Surface is the toolkit-independent core of a liquid view. All methods must
// be called from the same goroutine.
type Surface struct {
	template  wave.Node
	generator *wave.Generator
	builder   *boundary.Builder

	framesPerSlowTick int
	frames            int
	frame             uint64
	paused            bool
}

// MaxNodeCount is the number of node segments that span a view of the given
// width plus one segment of overscan on each side.
func MaxNodeCount(width, segment float64) int {
	return int(math.Ceil((width + 2*segment) / segment))
}

// New validates opts and builds a surface. Call Begin to start the wave.
func New(opts Options) (*Surface, error) {
	tps := opts.TicksPerSecond
	if tps == 0 {
		tps = config.TicksPerSecond
	}
	if tps < 0 {
		return nil, errors.Wrapf(ErrInvalidOptions, "ticks per second must be positive, got %d", tps)
	}
	cfg := opts.Wave
	cfg.TicksPerSecond = tps
	template, err := wave.NewNode(cfg)
	if err != nil {
		return nil, err
	}

	var bopts []boundary.Option
	if opts.Shadow {
		bopts = append(bopts, boundary.WithShadow())
	}
	builder, err := boundary.NewBuilder(opts.Width, opts.Height, template, bopts...)
	if err != nil {
		return nil, err
	}

	var gopts []wave.GeneratorOption
	if opts.Rand != nil {
		gopts = append(gopts, wave.WithRand(opts.Rand))
	}
	generator, err := wave.NewGenerator(template, MaxNodeCount(opts.Width, template.Segment()), gopts...)
	if err != nil {
		return nil, err
	}

	every := int(math.Round(cfg.HorizontalPeriod * float64(tps)))
	if every < 1 {
		every = 1
	}
	return &Surface{
		template:          template,
		generator:         generator,
		builder:           builder,
		framesPerSlowTick: every,
	}, nil
}

// Begin starts the wave with a single node on the baseline.
func (s *Surface) Begin() {
	s.generator.Begin()
	s.frames = 0
}

// TickSlow creates a node and retires the ones that left the window. Hosts
// that call Update do not need to call it.
func (s *Surface) TickSlow() error {
	if s.paused {
		return nil
	}
	return s.generator.TickSlow()
}

// TickFast advances every node one step and then rebuilds the paths. With no
// nodes the previous paths stay in effect.
func (s *Surface) TickFast() {
	if s.paused || s.generator.Len() == 0 {
		return
	}
	s.generator.UpdateNodes()
	s.builder.Rebuild(s.generator.Nodes())
	s.frame++
}

// Update is the per-frame entry point for a host running at TicksPerSecond.
// It fires TickFast on every frame and TickSlow once every horizontal period,
// counted in frames. A new node joins after the frame's advance, so every
// node moves exactly FramesPerSlowTick steps before its successor appears.
// Paused frames are not counted.
func (s *Surface) Update() error {
	if s.paused {
		return nil
	}
	s.TickFast()
	if !s.generator.Started() {
		return nil
	}
	s.frames++
	if s.frames < s.framesPerSlowTick {
		return nil
	}
	s.frames = 0
	return s.TickSlow()
}

// Pause freezes the wave. Ticks received while paused are dropped.
func (s *Surface) Pause() {
	s.paused = true
	s.generator.Pause()
}

// Resume continues from the frozen state.
func (s *Surface) Resume() {
	s.paused = false
	s.generator.Resume()
}

func (s *Surface) Paused() bool { return s.paused }

// Template is the node all generated nodes derive from.
func (s *Surface) Template() wave.Node { return s.template }

// Nodes is a snapshot of the live nodes, oldest first.
func (s *Surface) Nodes() []wave.Node { return s.generator.Nodes() }

// Path is the current liquid boundary.
func (s *Surface) Path() boundary.Path { return s.builder.Path() }

// ShadowPath is the current shadow strip, empty without shadow.
func (s *Surface) ShadowPath() boundary.Path { return s.builder.ShadowPath() }

func (s *Surface) HasShadow() bool { return s.builder.HasShadow() }

// Frame counts the fast ticks that rebuilt the paths.
func (s *Surface) Frame() uint64 { return s.frame }

// FramesPerSlowTick is the number of Update calls between node creations.
func (s *Surface) FramesPerSlowTick() int { return s.framesPerSlowTick }

// MaxNodeCount is the eviction window of the generator, in segments.
func (s *Surface) MaxNodeCount() int { return s.generator.MaxNodeCount() }

// Reference returns the reference rectangle of the builder.
func (s *Surface) Reference() (x, y, w, h float64) { return s.builder.Reference() }
