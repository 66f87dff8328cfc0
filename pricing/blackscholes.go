package pricing

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

func normCDF(x float64) float64 {
	return stdNormal.CDF(x)
}

func normPDF(x float64) float64 {
	return stdNormal.Prob(x)
}

// CallPrice returns the closed-form European call price,
// S*N(d1) - K*e^(-rT)*N(d2).
func (c Contract) CallPrice() float64 {
	return c.s*normCDF(c.d1) - c.k*math.Exp(-c.r*c.t)*normCDF(c.d2)
}

// PutPrice returns the closed-form European put price,
// K*e^(-rT)*N(-d2) - S*N(-d1).
func (c Contract) PutPrice() float64 {
	return c.k*math.Exp(-c.r*c.t)*normCDF(-c.d2) - c.s*normCDF(-c.d1)
}

// Price returns the closed-form price for the given option type.
func (c Contract) Price(typ OptionType) float64 {
	if typ == Put {
		return c.PutPrice()
	}
	return c.CallPrice()
}
