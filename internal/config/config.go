package config

const (
	WindowWidth  = 1024
	WindowHeight = 512

	// Simulation rate the wave profile is tuned for.
	TicksPerSecond = 60

	AudioRingSize   = 4096
	SmoothingFactor = 0.6

	// Default wave shape
	DefaultPeak             = 15.0
	DefaultNadir            = 15.0
	DefaultSegment          = 360.0
	DefaultVerticalPeriod   = 6.0
	DefaultHorizontalPeriod = 3.0
	DefaultMinDamping       = 70

	// Shadow strip
	ShadowPathAdjust = 4.0
	ShadowOpacity    = 0.5
	ShadowRadius     = 10.0
	ShadowOffsetX    = 0.0
	ShadowOffsetY    = -5.0
	ShadowLayers     = 4

	// HUD
	HUDX         = 12
	HUDY         = 12
	LevelBarX    = 12
	LevelBarY    = 32
	LevelBarW    = 160
	LevelBarH    = 8
	ColorCycleHz = 0.01
)
