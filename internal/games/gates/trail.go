package gates

import (
	"github.com/vovakirdan/gate-runner/internal/core"
)

// TrailSample is one recorded ball position and how long ago it was recorded.
type TrailSample struct {
	Pos core.Vec2
	Age float64
}

// Trail is the ball's recent path, oldest sample first.
// It always holds at least two samples and its second sample is never older than MaxAge,
// so the path covering [0, MaxAge] can always be interpolated.
type Trail struct {
	samples []TrailSample
	maxAge  float64
}

// NewTrail seeds a trail at pos as if the ball had rested there for maxAge seconds.
func NewTrail(pos core.Vec2, maxAge float64) Trail {
	return Trail{
		samples: []TrailSample{
			{Pos: pos, Age: maxAge},
			{Pos: pos, Age: 0},
		},
		maxAge: maxAge,
	}
}

// Advance ages every sample, appends pos and drops samples that fell out of range.
func (t *Trail) Advance(pos core.Vec2, elapsed float64) {
	for i := range t.samples {
		t.samples[i].Age += elapsed
	}
	t.samples = append(t.samples, TrailSample{Pos: pos})

	drop := 0
	for len(t.samples)-drop > 2 && t.samples[drop+1].Age > t.maxAge {
		drop++
	}
	if drop > 0 {
		t.samples = append(t.samples[:0], t.samples[drop:]...)
	}
}

// Len returns the number of samples.
func (t *Trail) Len() int { return len(t.samples) }

// MaxAge returns the trail duration in seconds.
func (t *Trail) MaxAge() float64 { return t.maxAge }

// Samples returns a copy of the samples, oldest first.
func (t *Trail) Samples() []TrailSample {
	out := make([]TrailSample, len(t.samples))
	copy(out, t.samples)
	return out
}

// At returns where the ball was age seconds ago, interpolating between samples.
// ok is false when age is older than the oldest sample.
func (t *Trail) At(age float64) (core.Vec2, bool) {
	for i := 1; i < len(t.samples); i++ {
		b := t.samples[i]
		if b.Age > age {
			continue
		}
		a := t.samples[i-1]
		if age > a.Age {
			return core.Vec2{}, false
		}
		if a.Age > b.Age {
			f := (a.Age - age) / (a.Age - b.Age)
			return a.Pos.Add(b.Pos.Sub(a.Pos).Scale(f)), true
		}
		return b.Pos, true
	}
	return core.Vec2{}, false
}
