package boundary

import (
	"github.com/pkg/errors"

	"github.com/iburimskiy/liquid-view/internal/config"
	"github.com/iburimskiy/liquid-view/internal/wave"
)

// ErrInvalidBounds is returned for a view without area.
var ErrInvalidBounds = errors.New("invalid view bounds")

// Builder turns the live wave nodes into the closed liquid boundary, and
// optionally a thin strip along the wave used to cast a shadow.
//
// The reference rectangle extends the view by one segment on each side and
// leaves peak+nadir of headroom at the top, so wave excursions never clip.
type Builder struct {
	segment float64
	peak    float64
	nadir   float64

	refX, refY          float64
	refWidth, refHeight float64

	initial     Point
	bottomRight Point
	bottomLeft  Point
	topLeft     Point

	shadow     bool
	path       Path
	shadowPath Path
}

// Option customizes a Builder.
type Option func(*Builder)

// WithShadow makes the builder maintain a shadow strip path.
func WithShadow() Option {
	return func(b *Builder) { b.shadow = true }
}

// NewBuilder returns a builder for a view of the given size. Until the first
// Rebuild with nodes, Path is the static reference rectangle.
func NewBuilder(width, height float64, template wave.Node, opts ...Option) (*Builder, error) {
	if !(width > 0) || !(height > 0) {
		return nil, errors.Wrapf(ErrInvalidBounds, "%vx%v", width, height)
	}
	b := &Builder{
		segment: template.Segment(),
		peak:    template.Peak(),
		nadir:   template.Nadir(),
	}
	for _, opt := range opts {
		opt(b)
	}

	b.refX = -b.segment
	b.refY = b.peak + b.nadir
	b.refWidth = width + 2*b.segment
	b.refHeight = height - b.peak - b.nadir

	b.initial = Point{X: b.refX + b.refWidth, Y: b.refY}
	b.bottomRight = Point{X: b.refX + b.refWidth, Y: b.refY + b.refHeight}
	b.bottomLeft = Point{X: b.refX, Y: b.refY + b.refHeight}
	b.topLeft = Point{X: b.refX, Y: b.refY}

	b.path = Rect(b.refX, b.refY, b.refWidth, b.refHeight)
	if b.shadow {
		b.shadowPath = Rect(b.refX, b.refY, b.refWidth, 2)
	}
	return b, nil
}

// Corners returns the reference corners: top-right (the start point),
// bottom-right, bottom-left and top-left.
func (b *Builder) Corners() (initial, bottomRight, bottomLeft, topLeft Point) {
	return b.initial, b.bottomRight, b.bottomLeft, b.topLeft
}

// Reference returns the reference rectangle.
func (b *Builder) Reference() (x, y, w, h float64) {
	return b.refX, b.refY, b.refWidth, b.refHeight
}

func (b *Builder) HasShadow() bool { return b.shadow }

// Path is the current liquid boundary.
func (b *Builder) Path() Path { return b.path.Clone() }

// ShadowPath is the current shadow strip. It is empty without WithShadow.
func (b *Builder) ShadowPath() Path { return b.shadowPath.Clone() }

// Rebuild recomputes the paths from nodes, oldest first. Without nodes it
// leaves the previous paths in place.
func (b *Builder) Rebuild(nodes []wave.Node) {
	if len(nodes) == 0 {
		return
	}

	var liquid Path
	liquid.MoveTo(b.initial)
	liquid.LineTo(b.bottomRight)
	liquid.LineTo(b.bottomLeft)
	liquid.LineTo(b.topLeft)

	var shadow Path
	if b.shadow {
		shadow.MoveTo(b.topLeft)
	}

	for i := len(nodes) - 1; i >= 0; i-- {
		end := b.nodePoint(nodes[i], i == 0)
		liquid.SmoothCurveTo(end)
		if b.shadow {
			shadow.SmoothCurveTo(end)
		}
	}

	liquid.LineTo(b.initial)
	liquid.ClosePath()
	b.path = liquid

	if b.shadow {
		depth := b.peak + b.nadir
		shadow.LineTo(b.initial)
		shadow.LineTo(Point{X: b.initial.X, Y: b.initial.Y + depth})
		shadow.LineTo(Point{X: b.topLeft.X, Y: b.topLeft.Y + depth})
		shadow.ClosePath()
		shadow.Translate(0, config.ShadowPathAdjust)
		b.shadowPath = shadow
	}
}

// nodePoint maps a node to view coordinates. The oldest node is pinned to
// the baseline half a segment further on, so the curve meets the right wall
// flat.
func (b *Builder) nodePoint(n wave.Node, oldest bool) Point {
	if oldest {
		return Point{X: n.Translation() + b.refX + b.segment/2, Y: b.refY}
	}
	return Point{X: n.Translation() + b.refX, Y: b.refY + n.Altitude()}
}
