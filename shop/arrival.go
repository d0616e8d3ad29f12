package shop

// RandSource provides the randomness behind stochastic decisions. A
// *rand.Rand satisfies it; tests substitute a deterministic source.
type RandSource interface {
	Float64() float64
}

// An ArrivalGenerator decides whether a walk-in customer shows up within one
// time step. It approximates a Poisson arrival process with a single
// Bernoulli trial per step, which only holds up for small steps: a high rate
// or a long step saturates the probability at 1.
type ArrivalGenerator struct {
	src RandSource
}

// NewArrivalGenerator creates an ArrivalGenerator drawing from src.
func NewArrivalGenerator(src RandSource) *ArrivalGenerator {
	return &ArrivalGenerator{src: src}
}

// ShouldArrive runs one Bernoulli trial with success probability
// (ratePerMinute/60)*deltaTime, clamped to [0, 1].
func (g *ArrivalGenerator) ShouldArrive(
	ratePerMinute float64,
	deltaTime VTimeInSec,
) bool {
	p := ratePerMinute / 60.0 * float64(deltaTime)

	if p <= 0 {
		return false
	}

	if p >= 1 {
		return true
	}

	return g.src.Float64() < p
}
