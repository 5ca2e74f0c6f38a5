package wave

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
)

const epsilon = 1e-9

func testConfig() Config {
	return Config{
		Peak:             10,
		Nadir:            10,
		Segment:          100,
		VerticalPeriod:   1,
		HorizontalPeriod: 2,
		InitialDirection: Up,
		UpdateStyle:      ConstStyle(),
	}
}

func mustNode(t *testing.T, cfg Config) Node {
	t.Helper()
	n, err := NewNode(cfg)
	if err != nil {
		t.Fatalf("NewNode: %v", err)
	}
	return n
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		valid  bool
	}{
		{"Valid", func(c *Config) {}, true},
		{"Valid random style", func(c *Config) { c.UpdateStyle = RandomStyle(70) }, true},
		{"Valid zero minimum", func(c *Config) { c.UpdateStyle = RandomStyle(0) }, true},
		{"Zero peak", func(c *Config) { c.Peak = 0 }, false},
		{"Negative nadir", func(c *Config) { c.Nadir = -1 }, false},
		{"NaN peak", func(c *Config) { c.Peak = math.NaN() }, false},
		{"Zero segment", func(c *Config) { c.Segment = 0 }, false},
		{"Zero vertical period", func(c *Config) { c.VerticalPeriod = 0 }, false},
		{"Negative horizontal period", func(c *Config) { c.HorizontalPeriod = -2 }, false},
		{"Unknown direction", func(c *Config) { c.InitialDirection = Direction(7) }, false},
		{"Random minimum of 100", func(c *Config) { c.UpdateStyle = RandomStyle(100) }, false},
		{"Negative random minimum", func(c *Config) { c.UpdateStyle = RandomStyle(-1) }, false},
		{"Explicit tick rate", func(c *Config) { c.TicksPerSecond = 120 }, true},
		{"Negative tick rate", func(c *Config) { c.TicksPerSecond = -30 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.valid && err != nil {
				t.Fatalf("Expected valid config, got %v", err)
			}
			if !tt.valid {
				if err == nil {
					t.Fatal("Expected an error")
				}
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("Expected ErrInvalidConfig cause, got %v", err)
				}
				if _, nerr := NewNode(cfg); nerr == nil {
					t.Error("Expected NewNode to reject the config")
				}
			}
		})
	}
}

func TestWithAmplitude(t *testing.T) {
	cfg := testConfig().WithAmplitude(25)
	if cfg.Peak != 25 || cfg.Nadir != 25 {
		t.Errorf("Expected symmetric 25/25, got %v/%v", cfg.Peak, cfg.Nadir)
	}
}

func TestDirectionInverse(t *testing.T) {
	if Up.Inverse() != Down {
		t.Error("Expected Up.Inverse() == Down")
	}
	if Down.Inverse() != Up {
		t.Error("Expected Down.Inverse() == Up")
	}
}

func TestRandomDirectionPicksBoth(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	seen := map[Direction]int{}
	for i := 0; i < 200; i++ {
		seen[RandomDirection(rng)]++
	}
	if seen[Up] == 0 || seen[Down] == 0 {
		t.Errorf("Expected both directions, got %v", seen)
	}
}

func TestUpdatePeakAndNadir(t *testing.T) {
	t.Run("Const", func(t *testing.T) {
		n := mustNode(t, testConfig())
		n.UpdatePeakAndNadir(rand.New(rand.NewSource(1)))
		if n.CurrentPeak() != 10 || n.CurrentNadir() != 10 {
			t.Errorf("Expected undamped 10/10, got %v/%v", n.CurrentPeak(), n.CurrentNadir())
		}
	})

	t.Run("Random", func(t *testing.T) {
		cfg := testConfig()
		cfg.Peak, cfg.Nadir = 20, 15
		cfg.UpdateStyle = RandomStyle(70)
		n := mustNode(t, cfg)
		rng := rand.New(rand.NewSource(42))
		damped := false
		for i := 0; i < 500; i++ {
			n.UpdatePeakAndNadir(rng)
			delta := n.CurrentPeak() / 20
			if delta <= 0.7 || delta > 1 {
				t.Fatalf("Damping %v outside (0.7, 1]", delta)
			}
			if math.Abs(n.CurrentNadir()-15*delta) > epsilon {
				t.Fatalf("Peak and nadir damped differently: %v vs %v", n.CurrentNadir(), 15*delta)
			}
			if delta < 1 {
				damped = true
			}
		}
		if !damped {
			t.Error("Expected at least one damped node")
		}
	})
}

func TestRefDistance(t *testing.T) {
	cfg := testConfig()
	cfg.Peak, cfg.Nadir = 20, 5
	tests := []struct {
		name      string
		altitude  float64
		direction Direction
		want      float64
	}{
		{"Above baseline", 3, Down, 20},
		{"Below baseline", -3, Up, 5},
		{"Baseline going up", 0, Up, 20},
		{"Baseline going down", 0, Down, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := mustNode(t, cfg)
			n.altitude = tt.altitude
			n.direction = tt.direction
			if got := n.RefDistance(); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestVerticalStepProfile(t *testing.T) {
	n := mustNode(t, testConfig())
	tests := []struct {
		name     string
		altitude float64
		want     float64
	}{
		{"Near baseline", 1, 10.0 / 20},
		{"Below baseline near", -1.5, 10.0 / 20},
		{"Middle band", 3, 10.0 / 40},
		{"Middle band boundary", 2, 10.0 / 40},
		{"Outer band", 5, 10.0 / 60},
		{"Outer band boundary", 4, 10.0 / 60},
		{"At peak", 10, 10.0 / 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n.altitude = tt.altitude
			if got := n.VerticalStep(); math.Abs(got-tt.want) > epsilon {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}

	n.altitude = 1
	near := n.VerticalStep()
	n.altitude = 5
	far := n.VerticalStep()
	if !(near > far) {
		t.Errorf("Expected faster motion near the baseline: near=%v far=%v", near, far)
	}
}

func TestHorizontalStep(t *testing.T) {
	n := mustNode(t, testConfig())
	want := 100.0 / (60 * 2)
	if got := n.HorizontalStep(); math.Abs(got-want) > epsilon {
		t.Errorf("Expected %v, got %v", want, got)
	}
	for i := 0; i < 120; i++ {
		n.Advance()
	}
	if math.Abs(n.Translation()-100) > 1e-6 {
		t.Errorf("Expected one segment after one horizontal period, got %v", n.Translation())
	}
}

func TestStepsFollowTickRate(t *testing.T) {
	base := mustNode(t, testConfig())
	for _, tps := range []int{30, 60, 120} {
		cfg := testConfig()
		cfg.TicksPerSecond = tps
		n := mustNode(t, cfg)
		ratio := float64(TicksPerSecond) / float64(tps)

		if got, want := n.HorizontalStep(), base.HorizontalStep()*ratio; math.Abs(got-want) > epsilon {
			t.Errorf("%d tps: expected horizontal step %v, got %v", tps, want, got)
		}
		if got, want := n.VerticalStep(), base.VerticalStep()*ratio; math.Abs(got-want) > epsilon {
			t.Errorf("%d tps: expected vertical step %v, got %v", tps, want, got)
		}

		ticks := int(cfg.HorizontalPeriod) * tps
		for i := 0; i < ticks; i++ {
			n.Advance()
		}
		if math.Abs(n.Translation()-cfg.Segment) > 1e-6 {
			t.Errorf("%d tps: expected one segment per horizontal period, got %v", tps, n.Translation())
		}
	}
}

func TestAdvanceFlipsAtPeak(t *testing.T) {
	n := mustNode(t, testConfig())
	n.UpdatePeakAndNadir(rand.New(rand.NewSource(1)))

	flipped := -1
	for i := 0; i < 60; i++ {
		before := n.Altitude()
		n.Advance()
		if n.Altitude() > n.CurrentPeak() {
			t.Fatalf("Tick %d: altitude %v exceeds peak", i, n.Altitude())
		}
		if n.Direction() == Down && flipped < 0 {
			flipped = i
			if n.Altitude() != n.CurrentPeak() {
				t.Errorf("Expected flip exactly at the peak, altitude %v", n.Altitude())
			}
			if before >= n.CurrentPeak() {
				t.Errorf("Peak reached before the flip tick")
			}
		}
		if flipped < 0 && n.Altitude() >= n.CurrentPeak() {
			t.Fatalf("Tick %d: reached the peak without flipping", i)
		}
	}
	if flipped < 0 {
		t.Fatal("Expected direction to flip within 60 ticks")
	}
	if n.Altitude() >= n.CurrentPeak() {
		t.Errorf("Expected the node to descend after the flip, altitude %v", n.Altitude())
	}
}

func TestAltitudeStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 20; trial++ {
		cfg := Config{
			Peak:             1 + rng.Float64()*40,
			Nadir:            1 + rng.Float64()*40,
			Segment:          50 + rng.Float64()*300,
			VerticalPeriod:   0.2 + rng.Float64()*6,
			HorizontalPeriod: 0.5 + rng.Float64()*4,
			InitialDirection: RandomDirection(rng),
			UpdateStyle:      RandomStyle(rng.Intn(100)),
		}
		n := mustNode(t, cfg)
		n.UpdatePeakAndNadir(rng)
		lastTranslation := 0.0
		for i := 0; i < 3000; i++ {
			n.Advance()
			if n.Altitude() > n.CurrentPeak()+epsilon || n.Altitude() < -n.CurrentNadir()-epsilon {
				t.Fatalf("Trial %d tick %d: altitude %v outside [-%v, %v]",
					trial, i, n.Altitude(), n.CurrentNadir(), n.CurrentPeak())
			}
			if n.Translation() < lastTranslation {
				t.Fatalf("Trial %d tick %d: translation decreased", trial, i)
			}
			lastTranslation = n.Translation()
		}
	}
}

func TestSetAltitudeRatio(t *testing.T) {
	cfg := testConfig()
	cfg.Peak, cfg.Nadir = 20, 10
	tests := []struct {
		name          string
		ratio         float64
		wantAltitude  float64
		wantDirection Direction
	}{
		{"Half up", 0.5, 10, Up},
		{"Half down", -0.5, -5, Up},
		{"Baseline", 0, 0, Up},
		{"Full peak flips", 1, 20, Down},
		{"Full nadir flips", -1, -10, Up},
		{"Overshoot clamps", 1.5, 20, Down},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := mustNode(t, cfg)
			n.SetAltitudeRatio(tt.ratio)
			if math.Abs(n.Altitude()-tt.wantAltitude) > epsilon {
				t.Errorf("Expected altitude %v, got %v", tt.wantAltitude, n.Altitude())
			}
			if n.Direction() != tt.wantDirection {
				t.Errorf("Expected direction %v, got %v", tt.wantDirection, n.Direction())
			}
		})
	}
}
