package game

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"honnef.co/go/curve"

	"github.com/iburimskiy/liquid-view/internal/boundary"
	"github.com/iburimskiy/liquid-view/internal/config"
	"github.com/iburimskiy/liquid-view/internal/surface"
)

var whiteSubImage *ebiten.Image

// whitePixel is the 1x1 source image for flat-colored triangles.
func whitePixel() *ebiten.Image {
	if whiteSubImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// LiquidView renders a surface at a fixed frame on the screen. The liquid body
// is clipped to the frame; the shadow is not.
type LiquidView struct {
	X, Y          float64
	Width, Height float64

	surface    *surface.Surface
	appearance Appearance

	canvas   *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
}

func NewLiquidView(x, y, width, height float64, s *surface.Surface, appearance Appearance) *LiquidView {
	return &LiquidView{
		X:          x,
		Y:          y,
		Width:      width,
		Height:     height,
		surface:    s,
		appearance: appearance,
	}
}

func (v *LiquidView) Surface() *surface.Surface { return v.surface }

func (v *LiquidView) Update() error {
	return v.surface.Update()
}

func (v *LiquidView) Draw(screen *ebiten.Image) {
	sh := v.appearance.Shadow
	if sh.enabled() && v.surface.HasShadow() {
		v.drawShadow(screen, sh)
	}

	w, h := int(v.Width), int(v.Height)
	if w <= 0 || h <= 0 {
		return
	}
	if v.canvas == nil || v.canvas.Bounds().Dx() != w || v.canvas.Bounds().Dy() != h {
		v.canvas = ebiten.NewImage(w, h)
	}
	v.canvas.Clear()

	back := v.appearance.Back
	src := whitePixel()
	if back.Kind == BackImage && back.Image != nil {
		src = back.Image
	}
	v.fill(v.canvas, src, v.surface.Path(), 0, 0, func(vx *ebiten.Vertex) {
		v.paintBack(vx, back)
	})

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(v.X, v.Y)
	screen.DrawImage(v.canvas, op)
}

func (v *LiquidView) paintBack(vx *ebiten.Vertex, back Back) {
	u := float64(vx.DstX) / v.Width
	t := float64(vx.DstY) / v.Height
	if back.Kind == BackImage && back.Image != nil {
		b := back.Image.Bounds()
		vx.SrcX = float32(float64(b.Min.X) + u*float64(b.Dx()))
		vx.SrcY = float32(float64(b.Min.Y) + t*float64(b.Dy()))
		vx.ColorR, vx.ColorG, vx.ColorB, vx.ColorA = 1, 1, 1, 1
		return
	}
	vx.SrcX, vx.SrcY = 1, 1
	r, g, b, a := rgbaFloats(back.colorAt(u, t))
	vx.ColorR, vx.ColorG, vx.ColorB, vx.ColorA = float32(r), float32(g), float32(b), float32(a)
}

// drawShadow approximates a blurred shadow by stacking translucent copies of
// the strip spread over the radius.
func (v *LiquidView) drawShadow(screen *ebiten.Image, sh Shadow) {
	path := v.surface.ShadowPath()
	if path.Len() == 0 {
		return
	}
	c := sh.Color
	if c == nil {
		c = color.Black
	}
	r, g, b, _ := rgbaFloats(c)
	layers := config.ShadowLayers
	alpha := float32(sh.Opacity / float64(layers))

	ox := v.X + sh.OffsetX
	oy := v.Y + sh.OffsetY - config.ShadowPathAdjust
	for i := 0; i < layers; i++ {
		spread := sh.Radius * float64(i) / float64(layers)
		for _, dy := range []float64{-spread, spread} {
			v.fill(screen, whitePixel(), path, ox, oy+dy, func(vx *ebiten.Vertex) {
				vx.SrcX, vx.SrcY = 1, 1
				vx.ColorR, vx.ColorG, vx.ColorB, vx.ColorA = float32(r), float32(g), float32(b), alpha
			})
			if spread == 0 {
				break
			}
		}
	}
}

func (v *LiquidView) fill(dst, src *ebiten.Image, p boundary.Path, ox, oy float64, paint func(*ebiten.Vertex)) {
	var vp vector.Path
	appendBoundary(&vp, p, ox, oy)
	v.vertices, v.indices = vp.AppendVerticesAndIndicesForFilling(v.vertices[:0], v.indices[:0])
	for i := range v.vertices {
		paint(&v.vertices[i])
	}
	op := &ebiten.DrawTrianglesOptions{}
	op.FillRule = ebiten.EvenOdd
	dst.DrawTriangles(v.vertices, v.indices, src, op)
}

// appendBoundary replays p into an ebiten vector path, offset by (ox, oy).
func appendBoundary(dst *vector.Path, p boundary.Path, ox, oy float64) {
	pt := func(q boundary.Point) (float32, float32) {
		return float32(q.X + ox), float32(q.Y + oy)
	}
	for _, el := range p.BezPath {
		switch el.Kind {
		case curve.MoveToKind:
			dst.MoveTo(pt(el.P0))
		case curve.LineToKind:
			dst.LineTo(pt(el.P0))
		case curve.QuadToKind:
			x1, y1 := pt(el.P0)
			x2, y2 := pt(el.P1)
			dst.QuadTo(x1, y1, x2, y2)
		case curve.CubicToKind:
			x1, y1 := pt(el.P0)
			x2, y2 := pt(el.P1)
			x3, y3 := pt(el.P2)
			dst.CubicTo(x1, y1, x2, y2, x3, y3)
		case curve.ClosePathKind:
			dst.Close()
		}
	}
}
