package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"
	"github.com/pkg/errors"

	"github.com/iburimskiy/liquid-view/internal/game"
	"github.com/iburimskiy/liquid-view/internal/wave"
)

const appTitle = "Liquid View"

func parseDirection(s string, rng *rand.Rand) (wave.Direction, error) {
	switch strings.ToLower(s) {
	case "up":
		return wave.Up, nil
	case "down":
		return wave.Down, nil
	case "random":
		return wave.RandomDirection(rng), nil
	}
	return 0, errors.Wrapf(wave.ErrInvalidConfig, "unknown direction %q", s)
}

// waveConfig builds the front view configuration from the flags.
func waveConfig(rng *rand.Rand) (wave.Config, error) {
	dir, err := parseDirection(*directionFlag, rng)
	if err != nil {
		return wave.Config{}, err
	}
	style := wave.ConstStyle()
	if *minDampingFlag > 0 {
		style = wave.RandomStyle(*minDampingFlag)
	}
	cfg := wave.Config{
		Peak:             *peakFlag,
		Nadir:            *nadirFlag,
		Segment:          *segmentFlag,
		VerticalPeriod:   *verticalPeriodFlag,
		HorizontalPeriod: *horizontalPeriodFlag,
		InitialDirection: dir,
		UpdateStyle:      style,
	}
	return cfg, cfg.Validate()
}

// fail reports a startup error on stderr and in a dialog, then exits.
func fail(err error) {
	log.Printf("fatal: %+v", err)
	fmt.Fprintln(os.Stderr, "liquid-view:", err)
	_ = zenity.Error(err.Error(), zenity.Title(appTitle), zenity.ErrorIcon)
	os.Exit(1)
}

func main() {
	flag.Parse()

	if f := setupLogging(*debugFlag); f != nil {
		defer f.Close()
	}

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Printf("starting with seed %d", seed)

	cfg, err := waveConfig(rand.New(rand.NewSource(seed)))
	if err != nil {
		fail(err)
	}

	g, err := game.New(game.Options{
		Width:     *widthFlag,
		Height:    *heightFlag,
		Wave:      cfg,
		Shadow:    *shadowFlag,
		Backdrop:  *backdropFlag,
		Seed:      seed,
		AudioPath: *audioFlag,
	})
	if err != nil {
		fail(err)
	}
	defer g.Close()

	ebiten.SetWindowSize(*widthFlag, *heightFlag)
	ebiten.SetWindowTitle(appTitle + " - Space: pause, O: ambient audio, Esc/Q: quit")
	ebiten.SetRunnableOnUnfocused(true)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Printf("run: %+v", err)
		panic(err)
	}
}
