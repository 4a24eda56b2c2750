package gates

import (
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gate-runner/internal/config"
	"github.com/vovakirdan/gate-runner/internal/core"
)

// Gate is a pair of solid pieces whose inner edges bound the passable gap.
// Heights are kept both normalized (GapTop, Gap) and in court units (Top, Bottom).
type Gate struct {
	Top    core.Box
	Bottom core.Box
	GapTop float64 // normalized height of the gap's upper edge
	Gap    float64 // normalized gap height
}

// GapLow returns the court y of the gap's lower edge.
func (g Gate) GapLow() float64 {
	return g.Bottom.Top()
}

// GapHigh returns the court y of the gap's upper edge.
func (g Gate) GapHigh() float64 {
	return g.Top.Bottom()
}

// GapCenter returns the court y of the middle of the gap.
func (g Gate) GapCenter() float64 {
	return (g.GapLow() + g.GapHigh()) / 2
}

// GapHeight returns the gap height in court units.
func (g Gate) GapHeight() float64 {
	return g.GapHigh() - g.GapLow()
}

// Pieces returns the solid rectangles, top first.
func (g Gate) Pieces() [2]core.Box {
	return [2]core.Box{g.Top, g.Bottom}
}

// Placement is one full gate generation: both gates are always computed,
// the engine decides whether the earlier one is in play.
type Placement struct {
	Forward  Gate
	Earlier  Gate
	Level    int
	Attempts int // number of placements computed, at most the configured limit
}

// Request carries what the generator needs from the engine.
type Request struct {
	Score      int
	PaddleY    float64
	UseEarlier bool
}

// Generator places gates. It keeps no state between calls besides its RNG.
type Generator struct {
	court    core.Vec2
	gates    config.GateConfig
	prog     *config.Progression
	rng      *rand.Rand
	check    *invariants
	earlierX float64
}

// NewGenerator creates a generator drawing from rng.
// A nil logger discards invariant warnings.
func NewGenerator(cfg config.GatesConfig, prog *config.Progression, rng *rand.Rand, logger *log.Logger) *Generator {
	return newGenerator(cfg, prog, rng, &invariants{logger: orDiscard(logger)})
}

func newGenerator(cfg config.GatesConfig, prog *config.Progression, rng *rand.Rand, check *invariants) *Generator {
	g := cfg.Gates
	return &Generator{
		court:    core.V2(cfg.Court.RadiusX, cfg.Court.RadiusY),
		gates:    g,
		prog:     prog,
		rng:      rng,
		check:    check,
		earlierX: g.X - g.EarlierOffset*2*cfg.Court.RadiusX - 2*g.HalfWidth,
	}
}

// EarlierX returns the x of the earlier gate column.
func (gen *Generator) EarlierX() float64 {
	return gen.earlierX
}

// Generate places a forward and an earlier gate for the request.
// Placements whose active gap is centered on the paddle are redrawn,
// up to the configured number of attempts; the last one is kept regardless.
func (gen *Generator) Generate(req Request) Placement {
	limit := max(gen.gates.MaxAttempts, 1)

	var p Placement
	for attempt := 1; attempt <= limit; attempt++ {
		p = gen.place(req.Score)
		p.Attempts = attempt

		active := p.Forward
		if req.UseEarlier {
			active = p.Earlier
		}
		if math.Abs(active.GapCenter()-req.PaddleY) > active.GapHeight()/2 {
			break
		}
	}
	return p
}

func (gen *Generator) place(score int) Placement {
	gap := gen.prog.GapSize(score)
	if gap < gen.gates.MinGap-1e-9 {
		gen.check.fail("gap below minimum", "gap", gap, "min", gen.gates.MinGap)
		gap = gen.gates.MinGap
	}

	lo := gap + gen.gates.MinBottom
	top := lo + gen.rng.Float64()*(gen.gates.MaxTop-lo)

	p := Placement{
		Forward: gen.gate(gen.gates.X, top, gap),
		Earlier: gen.gate(gen.earlierX, gen.earlierTop(top, gap), gap),
		Level:   gen.prog.Level(score),
	}
	gen.verify(p.Forward)
	gen.verify(p.Earlier)
	return p
}

// verify checks that both pieces are anchored to the walls and the gap is open.
func (gen *Generator) verify(g Gate) {
	const eps = 1e-9
	ry := gen.court.Y
	if math.Abs(g.Bottom.Bottom()+ry) > eps || math.Abs(g.Top.Top()-ry) > eps {
		gen.check.fail("gate piece detached from wall", "bottom", g.Bottom.Bottom(), "top", g.Top.Top())
	}
	if g.Top.Top() <= g.Bottom.Top() || g.GapHeight() <= 0 {
		gen.check.fail("gate gap closed", "low", g.GapLow(), "high", g.GapHigh())
	}
}

// earlierTop derives the earlier gap's top edge from the forward one,
// shifted up or down by a drift that keeps a straight-ish line between them reachable.
func (gen *Generator) earlierTop(top, gap float64) float64 {
	g := gen.gates
	divisor := g.MinDivisor + gen.rng.Float64()*(g.MaxDivisor-g.MinDivisor)
	drift := g.Slope*g.EarlierOffset + gap/divisor

	up := top + drift
	down := top - drift
	upOK := up <= g.MaxTop
	downOK := down-gap >= g.MinBottom

	switch {
	case upOK && downOK:
		if gen.rng.Float64() >= 0.5 {
			return down
		}
		return up
	case upOK:
		return up
	case downOK:
		return down
	}

	// Validate rules this out for shipped configs; stay inside the court anyway.
	gen.check.fail("earlier gate has no room", "top", top, "gap", gap, "drift", drift)
	if up-g.MaxTop < (g.MinBottom+gap)-down {
		return g.MaxTop
	}
	return g.MinBottom + gap
}

// gate builds the two pieces for a gap whose normalized top edge is top.
// The top piece runs from the gap to the top wall, the bottom piece from
// the bottom wall to the gap.
func (gen *Generator) gate(x, top, gap float64) Gate {
	ry := gen.court.Y
	hw := gen.gates.HalfWidth

	gapHigh := (2*top - 1) * ry
	gapLow := (2*(top-gap) - 1) * ry

	return Gate{
		Top:    core.NewBox(core.V2(x, (gapHigh+ry)/2), core.V2(hw, (ry-gapHigh)/2)),
		Bottom: core.NewBox(core.V2(x, (gapLow-ry)/2), core.V2(hw, (gapLow+ry)/2)),
		GapTop: top,
		Gap:    gap,
	}
}
