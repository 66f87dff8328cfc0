package pricing

import "math"

const parityTolerance = 1e-4

// ParityResult reports whether put-call parity holds for a contract and the
// signed discrepancy between the two sides.
type ParityResult struct {
	Holds      bool    `json:"holds"`
	Difference float64 `json:"difference"`
}

// PutCallParity checks C - P = S - K*e^(-rT) within an absolute tolerance
// of 1e-4. Both sides derive from the same formulas, so this is a
// self-consistency diagnostic rather than a correctness oracle.
func (c Contract) PutCallParity() ParityResult {
	diff := c.CallPrice() - c.PutPrice() - (c.s - c.k*math.Exp(-c.r*c.t))
	return ParityResult{
		Holds:      math.Abs(diff) < parityTolerance,
		Difference: diff,
	}
}

// Moneyness is a qualitative spot/strike classification.
type Moneyness string

const (
	InTheMoney    Moneyness = "in-the-money"
	AtTheMoney    Moneyness = "at-the-money"
	OutOfTheMoney Moneyness = "out-of-the-money"
)

// Moneyness classifies S/K with 0.95 and 1.05 thresholds. The label is
// applied identically to calls and puts; it is a display heuristic, not a
// per-type ITM/OTM determination.
func (c Contract) Moneyness() Moneyness {
	ratio := c.s / c.k
	switch {
	case ratio > 1.05:
		return InTheMoney
	case ratio < 0.95:
		return OutOfTheMoney
	}
	return AtTheMoney
}

// MoneynessRatio returns the raw S/K ratio behind the classification.
func (c Contract) MoneynessRatio() float64 {
	return c.s / c.k
}

// TimeValue is the option premium in excess of intrinsic value.
func (c Contract) TimeValue(typ OptionType) float64 {
	if typ == Put {
		return c.PutPrice() - math.Max(c.k-c.s, 0)
	}
	return c.CallPrice() - math.Max(c.s-c.k, 0)
}
