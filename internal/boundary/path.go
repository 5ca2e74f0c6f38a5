package boundary

import (
	"slices"

	"honnef.co/go/curve"
)

// Point is a position in view coordinates, y pointing down.
type Point = curve.Point

// Path is a liquid outline made of MoveTo, LineTo, CubicTo and ClosePath
// elements. The zero value is an empty path.
type Path struct {
	curve.BezPath
}

// Rect returns the closed rectangle path with origin (x, y).
func Rect(x, y, w, h float64) Path {
	var p Path
	p.MoveTo(Point{X: x, Y: y})
	p.LineTo(Point{X: x + w, Y: y})
	p.LineTo(Point{X: x + w, Y: y + h})
	p.LineTo(Point{X: x, Y: y + h})
	p.ClosePath()
	return p
}

// SmoothCurveTo appends an S-shaped cubic to end whose control points sit at
// the horizontal midpoint, level with each endpoint. The curve is flat at
// both ends.
func (p *Path) SmoothCurveTo(end Point) {
	start := p.Current()
	midX := (start.X + end.X) / 2
	p.CubicTo(Point{X: midX, Y: start.Y}, Point{X: midX, Y: end.Y}, end)
}

// Current is the pen position after the last element.
func (p Path) Current() Point {
	var start, pen Point
	for _, el := range p.BezPath {
		switch el.Kind {
		case curve.MoveToKind:
			start, pen = el.P0, el.P0
		case curve.LineToKind:
			pen = el.P0
		case curve.QuadToKind:
			pen = el.P1
		case curve.CubicToKind:
			pen = el.P2
		case curve.ClosePathKind:
			pen = start
		}
	}
	return pen
}

func (p Path) Len() int { return len(p.BezPath) }

// Clone returns a path that shares no storage with p.
func (p Path) Clone() Path {
	return Path{slices.Clone(p.BezPath)}
}

// Translate moves every point of the path by (dx, dy).
func (p *Path) Translate(dx, dy float64) {
	p.BezPath = p.BezPath.Transform(curve.Translate(curve.Vec2{X: dx, Y: dy}))
}

// Flatten approximates the path by line elements within tolerance and
// returns their points. Subpaths are concatenated.
func (p Path) Flatten(tolerance float64) []Point {
	var out []Point
	for el := range curve.Flatten(slices.Values(p.BezPath), tolerance) {
		if el.Kind == curve.MoveToKind || el.Kind == curve.LineToKind {
			out = append(out, el.P0)
		}
	}
	return out
}

// Bounds is the bounding box of the path.
func (p Path) Bounds() curve.Rect {
	return p.BoundingBox()
}
