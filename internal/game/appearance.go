package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/liquid-view/internal/config"
)

// BackKind selects how the liquid body is painted.
type BackKind int

const (
	BackColor BackKind = iota
	BackGradient
	BackImage
)

// Back describes the layer that the liquid boundary masks.
type Back struct {
	Kind  BackKind
	Color color.Color

	// Axial gradient. Start and End are in unit view coordinates; Locations
	// are the stop positions for Colors, evenly spaced when nil.
	Colors    []color.Color
	Locations []float64
	Start     [2]float64
	End       [2]float64

	// Image is stretched over the view.
	Image *ebiten.Image
}

// Shadow describes the shadow cast under the wave. A zero Opacity disables it.
type Shadow struct {
	Opacity float64
	Radius  float64
	OffsetX float64
	OffsetY float64
	Color   color.Color
}

func (s Shadow) enabled() bool { return s.Opacity > 0 }

// Appearance is the visual configuration of a LiquidView.
type Appearance struct {
	Back   Back
	Shadow Shadow
}

// DefaultAppearance is a plain red liquid without shadow.
func DefaultAppearance() Appearance {
	return Appearance{
		Back: Back{Kind: BackColor, Color: color.RGBA{R: 255, A: 255}},
	}
}

// DefaultShadow is a soft black shadow above the wave.
func DefaultShadow() Shadow {
	return Shadow{
		Opacity: config.ShadowOpacity,
		Radius:  config.ShadowRadius,
		OffsetX: config.ShadowOffsetX,
		OffsetY: config.ShadowOffsetY,
		Color:   color.Black,
	}
}

// colorAt returns the back color at unit view position (u, v).
func (b Back) colorAt(u, v float64) color.Color {
	switch b.Kind {
	case BackGradient:
		return b.gradientAt(u, v)
	case BackImage:
		return color.White
	}
	if b.Color == nil {
		return color.White
	}
	return b.Color
}

func (b Back) gradientAt(u, v float64) color.Color {
	switch len(b.Colors) {
	case 0:
		return color.White
	case 1:
		return b.Colors[0]
	}
	dx, dy := b.End[0]-b.Start[0], b.End[1]-b.Start[1]
	t := 0.0
	if l2 := dx*dx + dy*dy; l2 > 0 {
		t = clamp01(((u-b.Start[0])*dx + (v-b.Start[1])*dy) / l2)
	}

	loc := func(i int) float64 {
		if i < len(b.Locations) {
			return b.Locations[i]
		}
		return float64(i) / float64(len(b.Colors)-1)
	}
	if t <= loc(0) {
		return b.Colors[0]
	}
	for i := 1; i < len(b.Colors); i++ {
		lo, hi := loc(i-1), loc(i)
		if t > hi {
			continue
		}
		f := 0.0
		if hi > lo {
			f = (t - lo) / (hi - lo)
		}
		return lerpColor(b.Colors[i-1], b.Colors[i], f)
	}
	return b.Colors[len(b.Colors)-1]
}

func lerpColor(a, b color.Color, f float64) color.Color {
	ar, ag, ab, aa := rgbaFloats(a)
	br, bg, bb, ba := rgbaFloats(b)
	mix := func(x, y float64) uint8 { return uint8((x + (y-x)*f) * 255) }
	return color.NRGBA{R: mix(ar, br), G: mix(ag, bg), B: mix(ab, bb), A: mix(aa, ba)}
}
