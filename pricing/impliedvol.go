package pricing

import "math"

const (
	defaultMaxIterations = 100
	defaultTolerance     = 1e-4
	initialSigma         = 0.3
	sigmaFloor           = 0.01
)

// IVSolver recovers the volatility implied by a market price using
// Newton-Raphson iteration on the pricing formula.
type IVSolver struct {
	MaxIterations int
	Tolerance     float64
}

// DefaultIVSolver returns a solver with a 100-iteration budget and a 1e-4
// price tolerance.
func DefaultIVSolver() IVSolver {
	return IVSolver{
		MaxIterations: defaultMaxIterations,
		Tolerance:     defaultTolerance,
	}
}

// SolveResult carries the recovered volatility. Converged is false when the
// iteration budget ran out or the vega derivative underflowed; Volatility
// then holds the last (best-effort) estimate.
type SolveResult struct {
	Volatility float64 `json:"volatility"`
	Converged  bool    `json:"converged"`
	Iterations int     `json:"iterations"`
}

// Solve iterates sigma from a 30% starting guess until the model price is
// within Tolerance of marketPrice. A non-positive trial sigma is clamped to
// a 0.01 floor so the iteration never leaves the formula's domain.
func (iv IVSolver) Solve(marketPrice, s, k, t, r float64, typ OptionType) (SolveResult, error) {
	if marketPrice <= 0 || math.IsNaN(marketPrice) {
		return SolveResult{}, &InvalidParameterError{Param: "marketPrice", Value: marketPrice}
	}

	sigma := initialSigma
	for i := 0; i < iv.MaxIterations; i++ {
		c, err := NewContract(s, k, t, r, sigma)
		if err != nil {
			return SolveResult{}, err
		}

		diff := c.Price(typ) - marketPrice
		if math.Abs(diff) < iv.Tolerance {
			return SolveResult{Volatility: sigma, Converged: true, Iterations: i}, nil
		}

		// Vega is quoted per 1%; the Newton step needs dPrice/dSigma.
		vega := c.Vega() * 100
		if math.Abs(vega) < iv.Tolerance {
			// Deep ITM/OTM or near-zero expiry: the step would blow up.
			return SolveResult{Volatility: sigma, Converged: false, Iterations: i}, nil
		}

		sigma -= diff / vega
		if sigma <= 0 {
			sigma = sigmaFloor
		}
	}

	return SolveResult{Volatility: sigma, Converged: false, Iterations: iv.MaxIterations}, nil
}

// ImpliedVolatility solves with the default iteration budget and tolerance.
func ImpliedVolatility(marketPrice, s, k, t, r float64, typ OptionType) (SolveResult, error) {
	return DefaultIVSolver().Solve(marketPrice, s, k, t, r, typ)
}
