package pricing

import (
	"fmt"
	"math"
)

// OptionType distinguishes the two European payoffs.
type OptionType string

const (
	Call OptionType = "call"
	Put  OptionType = "put"
)

// ParseOptionType normalizes a caller-supplied option type string.
func ParseOptionType(s string) (OptionType, error) {
	switch OptionType(s) {
	case Call, Put:
		return OptionType(s), nil
	case "":
		return Call, nil
	}
	return "", fmt.Errorf("pricing: unknown option type %q", s)
}

// InvalidParameterError reports a contract parameter outside the domain of
// the Black-Scholes-Merton formulas.
type InvalidParameterError struct {
	Param string
	Value float64
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("pricing: %s must be positive, got %g", e.Param, e.Value)
}

// Contract is an immutable snapshot of the five Black-Scholes-Merton
// parameters. Any parameter change means constructing a new contract, so
// every price and Greek derived from a value is consistent with a single
// snapshot.
type Contract struct {
	s     float64
	k     float64
	t     float64
	r     float64
	sigma float64

	d1 float64
	d2 float64
}

// NewContract validates the parameters and precomputes d1/d2. Spot, strike,
// time to expiry and volatility must be strictly positive; the risk-free
// rate carries no sign constraint.
func NewContract(s, k, t, r, sigma float64) (Contract, error) {
	params := []struct {
		name  string
		value float64
	}{
		{"spot", s},
		{"strike", k},
		{"timeToExpiry", t},
		{"volatility", sigma},
	}
	for _, p := range params {
		if p.value <= 0 || math.IsNaN(p.value) {
			return Contract{}, &InvalidParameterError{Param: p.name, Value: p.value}
		}
	}

	c := Contract{s: s, k: k, t: t, r: r, sigma: sigma}
	c.d1 = (math.Log(s/k) + (r+0.5*sigma*sigma)*t) / (sigma * math.Sqrt(t))
	c.d2 = c.d1 - sigma*math.Sqrt(t)
	return c, nil
}

func (c Contract) Spot() float64         { return c.s }
func (c Contract) Strike() float64       { return c.k }
func (c Contract) TimeToExpiry() float64 { return c.t }
func (c Contract) RiskFreeRate() float64 { return c.r }
func (c Contract) Volatility() float64   { return c.sigma }

// D1 returns the cached d1 term. Validation rules out sigma*sqrt(T) == 0,
// but near-zero products still make d1 numerically unstable.
func (c Contract) D1() float64 { return c.d1 }

// D2 returns the cached d2 term, d1 - sigma*sqrt(T).
func (c Contract) D2() float64 { return c.d2 }
