package gates

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/gate-runner/internal/config"
)

const eps = 1e-9

func newTestGenerator(cfg config.GatesConfig, seed int64) *Generator {
	return newGenerator(cfg, config.NewProgression(cfg), rand.New(rand.NewSource(seed)), &invariants{strict: true, logger: orDiscard(nil)})
}

// checkGate asserts that g is anchored to both walls and its gap has the expected height.
func checkGate(t *testing.T, name string, g Gate, ry, minGap, maxGap float64) {
	t.Helper()

	if math.Abs(g.Top.Top()-ry) > eps {
		t.Errorf("%s: top piece ends at %f, expected %f", name, g.Top.Top(), ry)
	}
	if math.Abs(g.Bottom.Bottom()+ry) > eps {
		t.Errorf("%s: bottom piece starts at %f, expected %f", name, g.Bottom.Bottom(), -ry)
	}
	for _, p := range g.Pieces() {
		if p.Top() > ry+eps || p.Bottom() < -ry-eps || p.Radius.Y <= 0 {
			t.Errorf("%s: piece %+v outside court", name, p)
		}
	}
	if g.Gap < minGap-eps || g.Gap > maxGap+eps {
		t.Errorf("%s: gap %f outside [%f, %f]", name, g.Gap, minGap, maxGap)
	}
	if math.Abs(g.GapHeight()-2*g.Gap*ry) > eps {
		t.Errorf("%s: court gap height %f, expected %f", name, g.GapHeight(), 2*g.Gap*ry)
	}
}

func TestGenerateGapBounds(t *testing.T) {
	cfg := config.DefaultGatesConfig()
	gen := newTestGenerator(cfg, 1)
	ry := cfg.Court.RadiusY

	for score := 0; score < 300; score++ {
		p := gen.Generate(Request{Score: score, PaddleY: 100})
		checkGate(t, "forward", p.Forward, ry, cfg.Gates.MinGap, cfg.Gates.MaxGap)

		top := p.Forward.GapTop
		if top < p.Forward.Gap+cfg.Gates.MinBottom-eps || top > cfg.Gates.MaxTop+eps {
			t.Errorf("score %d: gap top %f out of range", score, top)
		}
		if p.Forward.Top.Center.X != cfg.Gates.X {
			t.Errorf("score %d: forward gate at x=%f, expected %f", score, p.Forward.Top.Center.X, cfg.Gates.X)
		}
	}
}

func TestGenerateEarlierGate(t *testing.T) {
	cfg := config.DefaultGatesConfig()
	gen := newTestGenerator(cfg, 7)
	ry := cfg.Court.RadiusY
	g := cfg.Gates

	if math.Abs(gen.EarlierX()-2.5) > eps {
		t.Fatalf("EarlierX() = %f, expected 2.5", gen.EarlierX())
	}

	for score := 0; score < 300; score++ {
		p := gen.Generate(Request{Score: score, PaddleY: 100, UseEarlier: true})
		checkGate(t, "earlier", p.Earlier, ry, g.MinGap, g.MaxGap)

		if p.Earlier.Gap != p.Forward.Gap {
			t.Errorf("score %d: earlier gap %f differs from forward %f", score, p.Earlier.Gap, p.Forward.Gap)
		}
		if p.Earlier.GapTop > g.MaxTop+eps || p.Earlier.GapTop-p.Earlier.Gap < g.MinBottom-eps {
			t.Errorf("score %d: earlier gap [%f, %f] outside [%f, %f]", score,
				p.Earlier.GapTop-p.Earlier.Gap, p.Earlier.GapTop, g.MinBottom, g.MaxTop)
		}

		drift := math.Abs(p.Earlier.GapTop - p.Forward.GapTop)
		base := g.Slope * g.EarlierOffset
		lo := base + p.Forward.Gap/g.MaxDivisor
		hi := base + p.Forward.Gap/g.MinDivisor
		if drift < lo-eps || drift > hi+eps {
			t.Errorf("score %d: drift %f outside [%f, %f]", score, drift, lo, hi)
		}
	}
}

func TestEarlierTopDirection(t *testing.T) {
	cfg := config.DefaultGatesConfig()
	gap := 0.28 // drift in (0.168, 0.262]

	tests := []struct {
		name      string
		top       float64
		wantAbove bool
		wantBelow bool
	}{
		{"both fit", 0.64, true, true},
		{"near max top", cfg.Gates.MaxTop, false, true},
		{"near min bottom", gap + cfg.Gates.MinBottom, true, false},
	}

	const draws = 2000
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gen := newTestGenerator(cfg, 11)
			above, below := 0, 0
			for range draws {
				if gen.earlierTop(tc.top, gap) > tc.top {
					above++
				} else {
					below++
				}
			}

			switch {
			case tc.wantAbove && tc.wantBelow:
				if above < draws*4/10 || below < draws*4/10 {
					t.Errorf("above=%d below=%d, expected roughly even shares", above, below)
				}
			case tc.wantAbove:
				if below != 0 {
					t.Errorf("below=%d, expected every draw above", below)
				}
			case tc.wantBelow:
				if above != 0 {
					t.Errorf("above=%d, expected every draw below", above)
				}
			}
		})
	}
}

func TestGenerateAvoidsPaddle(t *testing.T) {
	cfg := config.DefaultGatesConfig()

	for seed := int64(0); seed < 50; seed++ {
		gen := newTestGenerator(cfg, seed)
		for _, useEarlier := range []bool{false, true} {
			p := gen.Generate(Request{Score: 0, PaddleY: 0, UseEarlier: useEarlier})
			if p.Attempts < 1 || p.Attempts > cfg.Gates.MaxAttempts {
				t.Fatalf("seed %d: Attempts = %d, expected 1..%d", seed, p.Attempts, cfg.Gates.MaxAttempts)
			}
			if p.Attempts == cfg.Gates.MaxAttempts {
				continue
			}
			active := p.Forward
			if useEarlier {
				active = p.Earlier
			}
			if math.Abs(active.GapCenter()) <= active.GapHeight()/2 {
				t.Errorf("seed %d: accepted gap centered on the paddle after %d attempts", seed, p.Attempts)
			}
		}
	}
}

func TestGenerateRetryBound(t *testing.T) {
	cfg := config.DefaultGatesConfig()
	gen := newTestGenerator(cfg, 3)

	// Pin the paddle at the center of whatever gap came out last time.
	paddle := 0.0
	for range 100 {
		p := gen.Generate(Request{Score: 0, PaddleY: paddle})
		if p.Attempts > cfg.Gates.MaxAttempts {
			t.Fatalf("Attempts = %d exceeds %d", p.Attempts, cfg.Gates.MaxAttempts)
		}
		paddle = p.Forward.GapCenter()
	}
}

func TestGenerateGivesUpAfterMaxAttempts(t *testing.T) {
	cfg := config.DefaultGatesConfig()
	// A gap covering almost the whole court always contains the paddle.
	cfg.Gates.MinGap = 0.9
	cfg.Gates.MaxGap = 0.9

	gen := NewGenerator(cfg, config.NewProgression(cfg), rand.New(rand.NewSource(1)), nil)
	p := gen.Generate(Request{Score: 0, PaddleY: 0})
	if p.Attempts != cfg.Gates.MaxAttempts {
		t.Errorf("Attempts = %d, expected %d", p.Attempts, cfg.Gates.MaxAttempts)
	}
	// The earlier gate had no room and was clamped into the court.
	if p.Earlier.GapTop > cfg.Gates.MaxTop+eps || p.Earlier.GapTop-p.Earlier.Gap < cfg.Gates.MinBottom-eps {
		t.Errorf("clamped earlier gap [%f, %f] escaped the court", p.Earlier.GapTop-p.Earlier.Gap, p.Earlier.GapTop)
	}
}

func TestGenerateStrictInvariantPanics(t *testing.T) {
	cfg := config.DefaultGatesConfig()
	cfg.Gates.MinGap = 0.9
	cfg.Gates.MaxGap = 0.9
	gen := newTestGenerator(cfg, 1)

	defer func() {
		if recover() == nil {
			t.Error("expected panic for an earlier gate with no room")
		}
	}()
	gen.Generate(Request{Score: 0, PaddleY: 100})
}

func TestGenerateDeterminism(t *testing.T) {
	cfg := config.DefaultGatesConfig()
	a := newTestGenerator(cfg, 42)
	b := newTestGenerator(cfg, 42)

	for score := range 50 {
		req := Request{Score: score, PaddleY: float64(score%7) - 3, UseEarlier: score > 20}
		pa, pb := a.Generate(req), b.Generate(req)
		if pa != pb {
			t.Fatalf("score %d: placements differ:\n%+v\n%+v", score, pa, pb)
		}
	}
}

func TestGenerateLevel(t *testing.T) {
	cfg := config.DefaultGatesConfig()
	gen := newTestGenerator(cfg, 1)

	if p := gen.Generate(Request{Score: 0, PaddleY: 100}); p.Level != 1 {
		t.Errorf("Level = %d, expected 1", p.Level)
	}
	if p := gen.Generate(Request{Score: 3, PaddleY: 100}); p.Level != 2 {
		t.Errorf("Level = %d, expected 2", p.Level)
	}
}
