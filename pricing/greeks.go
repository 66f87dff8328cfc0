package pricing

import "math"

// Greeks holds the five first-order sensitivities for one option type.
// Theta is per calendar day; Vega and Rho are per one percentage point of
// volatility and rate respectively. Gamma and Vega do not depend on the
// option type.
type Greeks struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
	Rho   float64 `json:"rho"`
}

// Delta is the price sensitivity to the underlying: N(d1) for calls,
// N(d1)-1 for puts.
func (c Contract) Delta(typ OptionType) float64 {
	if typ == Put {
		return normCDF(c.d1) - 1
	}
	return normCDF(c.d1)
}

// Gamma is the rate of change of delta, phi(d1)/(S*sigma*sqrt(T)).
func (c Contract) Gamma() float64 {
	return normPDF(c.d1) / (c.s * c.sigma * math.Sqrt(c.t))
}

// Theta returns daily time decay (annual theta divided by 365).
func (c Contract) Theta(typ OptionType) float64 {
	decay := -(c.s * normPDF(c.d1) * c.sigma) / (2 * math.Sqrt(c.t))
	carry := c.r * c.k * math.Exp(-c.r*c.t)
	if typ == Put {
		return (decay + carry*normCDF(-c.d2)) / 365
	}
	return (decay - carry*normCDF(c.d2)) / 365
}

// Vega returns the sensitivity to a one-percentage-point volatility move,
// S*phi(d1)*sqrt(T)/100.
func (c Contract) Vega() float64 {
	return c.s * normPDF(c.d1) * math.Sqrt(c.t) / 100
}

// Rho returns the sensitivity to a one-percentage-point rate move.
func (c Contract) Rho(typ OptionType) float64 {
	discounted := c.k * c.t * math.Exp(-c.r*c.t)
	if typ == Put {
		return -discounted * normCDF(-c.d2) / 100
	}
	return discounted * normCDF(c.d2) / 100
}

// AllGreeks computes the full set of sensitivities for one option type.
func (c Contract) AllGreeks(typ OptionType) Greeks {
	return Greeks{
		Delta: c.Delta(typ),
		Gamma: c.Gamma(),
		Theta: c.Theta(typ),
		Vega:  c.Vega(),
		Rho:   c.Rho(typ),
	}
}
