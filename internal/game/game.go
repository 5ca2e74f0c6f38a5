package game

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"math/rand"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/pkg/errors"

	"github.com/iburimskiy/liquid-view/internal/config"
	"github.com/iburimskiy/liquid-view/internal/surface"
	"github.com/iburimskiy/liquid-view/internal/wave"
)

// Options configures the demo scene.
type Options struct {
	Width  int
	Height int

	// Wave drives the front view.
	Wave   wave.Config
	Shadow bool

	// Backdrop adds a taller, slower view behind the front one.
	Backdrop bool

	Seed      int64
	AudioPath string
}

// Game hosts the liquid views in an ebiten window.
type Game struct {
	width, height int
	views         []*LiquidView
	audio         ambient

	time       float64
	colorPhase float64

	userPaused bool
	focusLost  bool

	lastErr error
}

// New builds the scene. Configuration errors are returned before anything
// is drawn.
func New(opts Options) (*Game, error) {
	g := &Game{width: opts.Width, height: opts.Height}
	rng := rand.New(rand.NewSource(opts.Seed))
	w, h := float64(opts.Width), float64(opts.Height)

	if opts.Backdrop {
		back := wave.DefaultConfig()
		back.InitialDirection = wave.Down
		back.Peak, back.Nadir = 30, 10
		y := h/2 - 20
		v, err := g.newView(0, y, w, h-y, back, false, Appearance{
			Back: Back{Kind: BackColor, Color: hsvColor(0, 0.9, 0.9)},
		}, rng)
		if err != nil {
			return nil, errors.Wrap(err, "backdrop view")
		}
		g.views = append(g.views, v)
	}

	front := Appearance{
		Back: Back{
			Kind:      BackGradient,
			Colors:    []color.Color{hsvColor(0, 1, 1), hsvColor(240, 1, 1)},
			Locations: []float64{0, 1},
			Start:     [2]float64{0, 0},
			End:       [2]float64{1, 1},
		},
	}
	if opts.Shadow {
		front.Shadow = DefaultShadow()
	}
	v, err := g.newView(0, h/2, w, h/2, opts.Wave, opts.Shadow, front, rng)
	if err != nil {
		return nil, errors.Wrap(err, "front view")
	}
	g.views = append(g.views, v)

	for _, v := range g.views {
		v.Surface().Begin()
	}

	if opts.AudioPath != "" {
		if err := g.audio.load(opts.AudioPath); err != nil {
			log.Printf("ambient audio: %v", err)
			g.lastErr = err
		}
	}
	return g, nil
}

func (g *Game) newView(x, y, w, h float64, cfg wave.Config, shadow bool, app Appearance, rng *rand.Rand) (*LiquidView, error) {
	s, err := surface.New(surface.Options{
		Width:  w,
		Height: h,
		Wave:   cfg,
		Shadow: shadow,
		Rand:   rand.New(rand.NewSource(rng.Int63())),
	})
	if err != nil {
		return nil, err
	}
	log.Printf("liquid view %.0fx%.0f at (%.0f, %.0f): %d nodes max, new node every %d frames",
		w, h, x, y, s.MaxNodeCount(), s.FramesPerSlowTick())
	return NewLiquidView(x, y, w, h, s, app), nil
}

func (g *Game) Views() []*LiquidView { return g.views }

func (g *Game) paused() bool { return g.userPaused || g.focusLost }

func (g *Game) applyPause() {
	p := g.paused()
	for _, v := range g.views {
		if p {
			v.Surface().Pause()
		} else {
			v.Surface().Resume()
		}
	}
	g.audio.setPaused(p)
}

// SetFocused forwards the window lifecycle: losing focus suspends the views,
// regaining it resumes them unless the user paused.
func (g *Game) SetFocused(focused bool) {
	if g.focusLost == !focused {
		return
	}
	g.focusLost = !focused
	log.Printf("window focus %v, paused=%v", focused, g.paused())
	g.applyPause()
}

// TogglePause flips the user pause.
func (g *Game) TogglePause() {
	g.userPaused = !g.userPaused
	log.Printf("user pause %v", g.userPaused)
	g.applyPause()
}

func (g *Game) Update() error {
	g.SetFocused(ebiten.IsFocused())

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		if err := g.openAmbient(); err != nil {
			log.Printf("ambient audio: %v", err)
			g.lastErr = err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	return g.step()
}

// step advances every view by one frame.
func (g *Game) step() error {
	if !g.paused() {
		g.time += 1.0 / config.TicksPerSecond
		g.colorPhase += config.ColorCycleHz / config.TicksPerSecond
	}
	for _, v := range g.views {
		if err := v.Update(); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) openAmbient() error {
	path, err := openAmbientDialog()
	if err != nil || path == "" {
		return err
	}
	return g.audio.load(path)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawBackground(screen)
	for _, v := range g.views {
		v.Draw(screen)
	}
	g.drawHUD(screen)
}

func (g *Game) drawBackground(screen *ebiten.Image) {
	for y := 0; y < g.height; y += 4 {
		ratio := float64(y) / float64(g.height)
		hue := (g.colorPhase + ratio*0.15) * 360
		c := hsvColor(hue+200, 0.35, 0.18+0.05*math.Sin(g.time*0.5+ratio*math.Pi))
		vector.DrawFilledRect(screen, 0, float32(y), float32(g.width), 4, c, false)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	status := "Playing - Space to pause, O to open ambient audio, Esc/Q to quit"
	switch {
	case g.focusLost:
		status = "Suspended - window lost focus"
	case g.userPaused:
		status = "Paused - Space to resume"
	}
	if len(g.views) > 0 {
		s := g.views[len(g.views)-1].Surface()
		status += fmt.Sprintf(" | nodes %d/%d frame %d", len(s.Nodes()), s.MaxNodeCount(), s.Frame())
	}
	if g.audio.loaded() {
		pos, length := g.audio.position()
		status += " | " + filepath.Base(g.audio.path) + " " + formatDuration(pos) + "/" + formatDuration(length)
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, config.HUDX, config.HUDY)

	if !g.audio.loaded() {
		return
	}
	level := g.audio.level()
	x, y := float32(config.LevelBarX), float32(config.LevelBarY)
	w, h := float32(config.LevelBarW), float32(config.LevelBarH)
	vector.DrawFilledRect(screen, x, y, w, h, color.RGBA{R: 20, G: 25, B: 35, A: 200}, false)
	vector.DrawFilledRect(screen, x, y, w*float32(level), h, hsvColor(120-120*level, 0.8, 0.9), false)
	vector.StrokeRect(screen, x, y, w, h, 1, color.RGBA{R: 100, G: 110, B: 130, A: 255}, false)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// Close stops the ambient audio.
func (g *Game) Close() {
	g.audio.close()
}
