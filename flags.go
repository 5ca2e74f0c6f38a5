package main

import (
	"flag"

	"github.com/iburimskiy/liquid-view/internal/config"
)

// Command-line flags. The wave flags configure the front view; the backdrop
// view keeps its own preset.
var (
	widthFlag  = flag.Int("width", config.WindowWidth, "window width in pixels")
	heightFlag = flag.Int("height", config.WindowHeight, "window height in pixels")

	peakFlag    = flag.Float64("peak", 20, "upward wave excursion in pixels")
	nadirFlag   = flag.Float64("nadir", 15, "downward wave excursion in pixels")
	segmentFlag = flag.Float64("segment", 300, "horizontal distance between wave nodes in pixels")

	// Periods are in seconds at 60 ticks per second.
	verticalPeriodFlag   = flag.Float64("vperiod", config.DefaultVerticalPeriod, "vertical oscillation period in seconds")
	horizontalPeriodFlag = flag.Float64("hperiod", 2, "seconds for a node to travel one segment")

	directionFlag = flag.String("direction", "up", "initial direction of the first node: up, down or random")

	// minDampingFlag of 0 keeps every node at full amplitude.
	minDampingFlag = flag.Int("min-damping", config.DefaultMinDamping, "lower bound in percent of the random per-node amplitude; 0 disables damping")

	shadowFlag   = flag.Bool("shadow", true, "cast a shadow above the front wave")
	backdropFlag = flag.Bool("backdrop", true, "draw a second liquid view behind the front one")
	seedFlag     = flag.Int64("seed", 0, "random seed; 0 uses the current time")
	audioFlag    = flag.String("audio", "", "ambient audio file (wav, mp3 or flac) to loop")

	debugFlag = flag.Bool("debug", false, "write a debug log to "+logDir)
)
