package wave

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"
)

// Generator owns the time-ordered sequence of live nodes. The oldest node
// comes first; the newest node has the smallest translation.
//
// A Generator is not safe for concurrent use. It is meant to be driven from
// a single loop that calls TickSlow at the horizontal period and UpdateNodes
// once per frame.
type Generator struct {
	template     Node
	nodes        []Node
	maxNodeCount int
	rng          *rand.Rand
	started      bool
	paused       bool
}

// GeneratorOption customizes a Generator.
type GeneratorOption func(*Generator)

// WithRand sets the random source used for node damping.
func WithRand(rng *rand.Rand) GeneratorOption {
	return func(g *Generator) { g.rng = rng }
}

// NewGenerator returns a generator deriving nodes from template. Nodes that
// translate past template.Segment()*maxNodeCount are evicted.
func NewGenerator(template Node, maxNodeCount int, opts ...GeneratorOption) (*Generator, error) {
	if maxNodeCount < 1 {
		return nil, invalid("max node count must be at least 1, got %d", maxNodeCount)
	}
	if !(template.segment > 0) || !(template.verticalPeriod > 0) || !(template.horizontalPeriod > 0) || !(template.tickRate > 0) {
		return nil, invalid("template node was not built with NewNode")
	}
	g := &Generator{
		template:     template,
		maxNodeCount: maxNodeCount,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return g, nil
}

func (g *Generator) Template() Node    { return g.template }
func (g *Generator) MaxNodeCount() int { return g.maxNodeCount }
func (g *Generator) Len() int          { return len(g.nodes) }
func (g *Generator) Started() bool     { return g.started }

// Threshold is the translation past which a node is evicted.
func (g *Generator) Threshold() float64 {
	return g.template.segment * float64(g.maxNodeCount)
}

// Nodes returns a snapshot of the live nodes, oldest first.
func (g *Generator) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Begin resets the sequence to a single initial node on the baseline.
func (g *Generator) Begin() {
	g.nodes = append(g.nodes[:0], g.initialNode())
	g.started = true
}

func (g *Generator) initialNode() Node {
	n := g.template
	n.UpdatePeakAndNadir(g.rng)
	n.altitude = 0
	n.translation = 0
	return n
}

// nextNode derives a successor from the newest node. The successor travels
// the other way and starts at the mirrored altitude ratio, which keeps the
// oscillation phase-continuous across nodes of different amplitude.
func (g *Generator) nextNode() (Node, error) {
	if len(g.nodes) == 0 {
		return Node{}, errors.WithStack(ErrNoNodes)
	}
	last := g.nodes[len(g.nodes)-1]
	n := g.template
	n.UpdatePeakAndNadir(g.rng)
	n.altitude = 0
	n.translation = 0
	n.direction = last.direction.Inverse()
	n.SetAltitudeRatio(-last.AltitudeRatio())
	return n, nil
}

// TickSlow appends a successor node and evicts every node that scrolled past
// the threshold. It does nothing while paused or before Begin.
func (g *Generator) TickSlow() error {
	if g.paused || !g.started {
		return nil
	}
	n, err := g.nextNode()
	if err != nil {
		return err
	}
	g.nodes = append(g.nodes, n)
	g.evict()
	return nil
}

func (g *Generator) evict() {
	limit := g.Threshold()
	kept := g.nodes[:0]
	for _, n := range g.nodes {
		if n.translation <= limit {
			kept = append(kept, n)
		}
	}
	// Clear the tail so evicted nodes do not linger in the backing array.
	for i := len(kept); i < len(g.nodes); i++ {
		g.nodes[i] = Node{}
	}
	g.nodes = kept
}

// UpdateNodes advances every live node by one step.
func (g *Generator) UpdateNodes() {
	if g.paused {
		return
	}
	for i := range g.nodes {
		g.nodes[i].Advance()
	}
}

// Pause suspends TickSlow and UpdateNodes without touching state.
func (g *Generator) Pause() { g.paused = true }

// Resume continues from the state at Pause. Missed ticks are not replayed.
func (g *Generator) Resume() { g.paused = false }

func (g *Generator) Paused() bool { return g.paused }
